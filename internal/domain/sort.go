package domain

import "golang.org/x/exp/constraints"

// Sort orders s ascending in place and returns it.
func Sort[T constraints.Ordered](s []T) []T {
	return SortRange(s, 0, len(s)-1)
}

// SortRange orders the inclusive range s[low..high] ascending in place and
// returns s. Ranges with fewer than two elements are left untouched, so
// low >= high is a no-op. Callers must keep 0 <= low and high < len(s).
func SortRange[T constraints.Ordered](s []T, low, high int) []T {
	for low < high {
		p := partition(s, low, high)
		// Recurse into the smaller side, loop on the larger.
		if p-low < high-p {
			SortRange(s, low, p-1)
			low = p + 1
		} else {
			SortRange(s, p+1, high)
			high = p - 1
		}
	}
	return s
}

// partition places s[high] at its final sorted position within [low, high]
// and returns that position. Elements <= pivot end up to its left.
func partition[T constraints.Ordered](s []T, low, high int) int {
	pivot := s[high]
	i := low
	for j := low; j < high; j++ {
		if s[j] <= pivot {
			s[i], s[j] = s[j], s[i]
			i++
		}
	}
	s[i], s[high] = s[high], s[i]
	return i
}
