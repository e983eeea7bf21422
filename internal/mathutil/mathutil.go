// Package mathutil provides small numeric helpers shared by the UI.
package mathutil

import "cmp"

// Clamp restricts val to [low, high].
func Clamp[T cmp.Ordered](val, low, high T) T {
	if val < low {
		return low
	}
	if val > high {
		return high
	}
	return val
}

// Wrap maps i onto [0, n), wrapping negative values from the end.
// It returns 0 when n is not positive.
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
