package vmath

import (
	"math"
)

// DVector is a double precision 3D vector used for world positions
type DVector struct {
	X, Y, Z float64
}

func DVAdd(a, b DVector) DVector {
	return DVector{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func DVSub(a, b DVector) DVector {
	return DVector{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func DVScale(v DVector, s float64) DVector {
	return DVector{v.X * s, v.Y * s, v.Z * s}
}

func DVDot(a, b DVector) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func DVLengthSq(v DVector) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func DVLength(v DVector) float64 {
	return math.Sqrt(DVLengthSq(v))
}

func DVDistance(a, b DVector) float64 {
	return DVLength(DVSub(a, b))
}

func DVNormalize(v DVector) DVector {
	l := DVLength(v)
	if l == 0 {
		return DVector{}
	}
	return DVScale(v, 1/l)
}

// DVLerp interpolates from a to b, t in [0,1]
func DVLerp(a, b DVector, t float64) DVector {
	return DVector{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t, a.Z + (b.Z-a.Z)*t}
}

// DVEqual compares component-wise within Epsilon
func DVEqual(a, b DVector) bool {
	return DoubleEqual(a.X, b.X) && DoubleEqual(a.Y, b.Y) && DoubleEqual(a.Z, b.Z)
}

// ToVector narrows to single precision
func (v DVector) ToVector() Vector {
	return Vector{float32(v.X), float32(v.Y), float32(v.Z)}
}
