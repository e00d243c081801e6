package vmath

import (
	"github.com/chewxy/math32"
)

// Quaternion is a unit rotation quaternion
type Quaternion struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the no-rotation quaternion
func QuatIdentity() Quaternion {
	return Quaternion{W: 1}
}

// QuatFromAxisAngle builds a rotation of angle radians around axis
func QuatFromAxisAngle(axis Vector, angle float32) Quaternion {
	a := VNormalize(axis)
	s, c := math32.Sincos(angle * 0.5)
	return Quaternion{a.X * s, a.Y * s, a.Z * s, c}
}

// QuatFromEuler builds a rotation from euler angles in radians, applied Y then X then Z
func QuatFromEuler(x, y, z float32) Quaternion {
	qy := QuatFromAxisAngle(Vector{0, 1, 0}, y)
	qx := QuatFromAxisAngle(Vector{1, 0, 0}, x)
	qz := QuatFromAxisAngle(Vector{0, 0, 1}, z)
	return QuatMul(QuatMul(qy, qx), qz)
}

// QuatMul returns a*b; rotating by the result applies b first
func QuatMul(a, b Quaternion) Quaternion {
	return Quaternion{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

// QuatConjugate is the inverse for unit quaternions
func QuatConjugate(q Quaternion) Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

// QuatRotate rotates v by q
func QuatRotate(q Quaternion, v Vector) Vector {
	u := Vector{q.X, q.Y, q.Z}
	t := VScale(VCross(u, v), 2)
	return VAdd(VAdd(v, VScale(t, q.W)), VCross(u, t))
}

// QuatRotateD rotates a double vector by q
func QuatRotateD(q Quaternion, v DVector) DVector {
	ux, uy, uz, w := float64(q.X), float64(q.Y), float64(q.Z), float64(q.W)
	tx := 2 * (uy*v.Z - uz*v.Y)
	ty := 2 * (uz*v.X - ux*v.Z)
	tz := 2 * (ux*v.Y - uy*v.X)
	return DVector{
		X: v.X + w*tx + (uy*tz - uz*ty),
		Y: v.Y + w*ty + (uz*tx - ux*tz),
		Z: v.Z + w*tz + (ux*ty - uy*tx),
	}
}

// QuatEqual compares component-wise within Epsilon
func QuatEqual(a, b Quaternion) bool {
	return FloatEqual(a.X, b.X) && FloatEqual(a.Y, b.Y) && FloatEqual(a.Z, b.Z) && FloatEqual(a.W, b.W)
}
