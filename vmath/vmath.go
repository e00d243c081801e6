package vmath

import (
	"math"

	"github.com/chewxy/math32"
)

// Epsilon is the tolerance used by all approximate comparisons
const Epsilon = 1e-6

// --- Scalar compare ---

// FloatEqual reports whether a and b differ by less than Epsilon
func FloatEqual(a, b float32) bool {
	return math32.Abs(a-b) < Epsilon
}

// DoubleEqual reports whether a and b differ by less than Epsilon
func DoubleEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DegToRad converts degrees to radians
func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// RadToDeg converts radians to degrees
func RadToDeg(rad float32) float32 {
	return rad * 180 / math32.Pi
}
