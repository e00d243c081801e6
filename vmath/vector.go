package vmath

import (
	"github.com/chewxy/math32"
)

// Vector is a single precision 3D vector used for local geometry
type Vector struct {
	X, Y, Z float32
}

func VAdd(a, b Vector) Vector {
	return Vector{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func VSub(a, b Vector) Vector {
	return Vector{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func VScale(v Vector, s float32) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

// VMul multiplies component-wise
func VMul(a, b Vector) Vector {
	return Vector{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

func VDot(a, b Vector) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func VCross(a, b Vector) Vector {
	return Vector{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func VLengthSq(v Vector) float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func VLength(v Vector) float32 {
	return math32.Sqrt(VLengthSq(v))
}

func VDistance(a, b Vector) float32 {
	return VLength(VSub(a, b))
}

func VNormalize(v Vector) Vector {
	l := VLength(v)
	if l == 0 {
		return Vector{}
	}
	return VScale(v, 1/l)
}

func VLerp(a, b Vector, t float32) Vector {
	return Vector{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t, a.Z + (b.Z-a.Z)*t}
}

func VMin(a, b Vector) Vector {
	return Vector{math32.Min(a.X, b.X), math32.Min(a.Y, b.Y), math32.Min(a.Z, b.Z)}
}

func VMax(a, b Vector) Vector {
	return Vector{math32.Max(a.X, b.X), math32.Max(a.Y, b.Y), math32.Max(a.Z, b.Z)}
}

func VAbs(v Vector) Vector {
	return Vector{math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z)}
}

// VEqual compares component-wise within Epsilon
func VEqual(a, b Vector) bool {
	return FloatEqual(a.X, b.X) && FloatEqual(a.Y, b.Y) && FloatEqual(a.Z, b.Z)
}

// ToDVector widens to double precision
func (v Vector) ToDVector() DVector {
	return DVector{float64(v.X), float64(v.Y), float64(v.Z)}
}
