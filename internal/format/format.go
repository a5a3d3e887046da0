// Package format provides number formatting for axes, labels and status text.
package format

import (
	"fmt"
	"math"
	"strconv"
)

// Tick formats an axis tick value with the shortest representation that
// round-trips, so 6 prints as "6", 2.5 as "2.5" and 1980 as "1980".
func Tick(v float64) string {
	if v == 0 {
		// Avoid "-0".
		return "0"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ShortNumber formats a number into a compact 4-char max string (e.g., 999, 9.9K, 120K).
func ShortNumber(n float64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	var out string
	switch {
	case n < 1_000:
		out = fmt.Sprintf("%d", int64(n))
	case n < 10_000:
		out = fmt.Sprintf("%.1fK", n/1_000)
	case n < 1_000_000:
		out = fmt.Sprintf("%dK", int64(n/1_000))
	case n < 10_000_000:
		out = fmt.Sprintf("%.1fM", n/1_000_000)
	case n < 1_000_000_000:
		out = fmt.Sprintf("%dM", int64(n/1_000_000))
	case n < 10_000_000_000:
		out = fmt.Sprintf("%.1fB", n/1_000_000_000)
	default:
		out = fmt.Sprintf("%dB", int64(n/1_000_000_000))
	}
	return sign + out
}

// Measure formats a metric value with at most two decimals.
func Measure(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
