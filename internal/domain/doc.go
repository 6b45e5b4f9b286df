// Package domain holds the numeric and weather models shared by the median
// and weather commands.
//
// # Median Engine
//
// [Sort] is an in-place partition-exchange sort (quicksort) using the last
// element of each range as pivot:
//
//	pivot := s[high]
//	i := low
//	for j in [low, high-1]: if s[j] <= pivot { swap(s[i], s[j]); i++ }
//	swap(s[i], s[high])  →  i is the pivot's final position
//
// The sort is not stable. Sorted and reverse-sorted inputs hit the O(n²)
// worst case because the pivot is never randomized; this is accepted. Stack
// depth is kept at O(log n) by recursing into the smaller side only and
// looping on the larger side, which performs the same partitions as the
// textbook two-call recursion.
//
// [Median] sorts its argument in place and returns the middle element for odd
// lengths or the mean of the two middle elements for even lengths. An empty
// slice fails with [ErrEmptyInput] before anything is touched.
//
// # Weather Observations
//
// An [Observation] is the current weather for one city as reported by a
// [WeatherProvider]. Temperatures are Celsius, wind speed is metres per
// second, and humidity is a percentage. [FormatObservation] renders the
// single-line form printed by the weather shell:
//
//	London: 11.2°C, light rain | Humidity 81% | Wind 4.6 m/s
package domain
