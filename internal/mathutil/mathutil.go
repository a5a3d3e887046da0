// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"cmp"
	"math"
)

// Clamp restricts a value to be within a specified range.
// Returns low if val < low, high if val > high, otherwise returns val.
func Clamp[T cmp.Ordered](val, low, high T) T {
	if val < low {
		return low
	}
	if val > high {
		return high
	}
	return val
}

// Lerp interpolates between lo and hi at t. t=0 yields lo and t=1 yields hi
// exactly, regardless of rounding in between.
func Lerp(lo, hi, t float64) float64 {
	switch t {
	case 0:
		return lo
	case 1:
		return hi
	}
	return lo + (hi-lo)*t
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RoundInt rounds v to the nearest int.
func RoundInt(v float64) int {
	return int(math.Round(v))
}
