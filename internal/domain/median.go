package domain

import "errors"

// ErrEmptyInput is returned when a median is requested for no values.
var ErrEmptyInput = errors.New("empty input")

// Median sorts s in place and returns its median: the middle element for odd
// lengths, the mean of the two middle elements for even lengths. Callers that
// need the original order must pass a copy. NaN values are not supported.
func Median(s []float64) (float64, error) {
	n := len(s)
	if n == 0 {
		return 0, ErrEmptyInput
	}

	Sort(s)

	if n%2 == 0 {
		return (s[n/2-1] + s[n/2]) / 2, nil
	}
	return s[n/2], nil
}
