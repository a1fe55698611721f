package core

import (
	"errors"
	"math"
)

// Epsilon is the absolute tolerance, scaled by input magnitude above 1, used by
// every membership test.
const Epsilon = 1e-7

// ErrInvalidArgument is wrapped by every construction failure
var ErrInvalidArgument = errors.New("invalid argument")

// tolerance returns Epsilon scaled to the magnitude of the compared values
func tolerance(a, b float64) float64 {
	return Epsilon * math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// NearlyEqual reports whether a and b differ by no more than the scaled tolerance
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance(a, b)
}

// WithinRange reports whether lo <= x <= hi, inclusive, within tolerance
func WithinRange(x, lo, hi float64) bool {
	return x >= lo-tolerance(x, lo) && x <= hi+tolerance(x, hi)
}
