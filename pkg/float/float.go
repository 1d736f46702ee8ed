// Package float holds tolerant comparisons and formatting for coordinates.
package float

import (
	"math"
	"strconv"

	"otdconvert/pkg/cfg"
)

// ApproxEq reports whether a and b differ by less than cfg.Eps.
func ApproxEq(a, b float64) bool {
	return math.Abs(a-b) < cfg.Eps
}

func ApproxZero(a float64) bool {
	return math.Abs(a) < cfg.Eps
}

// InRange reports whether min <= a <= max, widened by cfg.Eps on both sides.
func InRange(a, min, max float64) bool {
	return a >= min-cfg.Eps && a <= max+cfg.Eps
}

// Format returns the shortest decimal representation of v that round-trips,
// without exponent notation.
func Format(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RoundHalfAway rounds v to the given number of decimal places, with ties
// rounded away from zero.
func RoundHalfAway(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	scaled := v * scale
	if scaled >= 0 {
		return math.Floor(scaled+0.5) / scale
	}
	return math.Ceil(scaled-0.5) / scale
}
