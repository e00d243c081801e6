package vmath

// Transform is a rigid transform with non-uniform scaling
type Transform struct {
	Position    DVector
	Orientation Quaternion
	Scale       Vector
}

// NewTransform returns a transform without scaling
func NewTransform(position DVector, orientation Quaternion) Transform {
	return Transform{Position: position, Orientation: orientation, Scale: Vector{1, 1, 1}}
}

// Identity returns the identity transform
func Identity() Transform {
	return NewTransform(DVector{}, QuatIdentity())
}

// ToWorld maps a local point into world space
func (t Transform) ToWorld(p Vector) DVector {
	scaled := VMul(p, t.scale())
	return DVAdd(t.Position, QuatRotate(t.Orientation, scaled).ToDVector())
}

// ToWorldD maps a double precision local point into world space
func (t Transform) ToWorldD(p DVector) DVector {
	s := t.scale()
	scaled := DVector{p.X * float64(s.X), p.Y * float64(s.Y), p.Z * float64(s.Z)}
	return DVAdd(t.Position, QuatRotateD(t.Orientation, scaled))
}

// ToLocal maps a world point into local space
func (t Transform) ToLocal(p DVector) Vector {
	rel := QuatRotateD(QuatConjugate(t.Orientation), DVSub(p, t.Position)).ToVector()
	s := t.scale()
	return Vector{safeDiv(rel.X, s.X), safeDiv(rel.Y, s.Y), safeDiv(rel.Z, s.Z)}
}

// DirectionToLocal rotates and scales a world direction into local space
func (t Transform) DirectionToLocal(d Vector) Vector {
	rel := QuatRotate(QuatConjugate(t.Orientation), d)
	s := t.scale()
	return Vector{safeDiv(rel.X, s.X), safeDiv(rel.Y, s.Y), safeDiv(rel.Z, s.Z)}
}

// zero scale means unscaled
func (t Transform) scale() Vector {
	if t.Scale == (Vector{}) {
		return Vector{1, 1, 1}
	}
	return t.Scale
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}
