// Package shape holds collision shape values used by navigation blockers and colliders
package shape

import (
	"github.com/chewxy/math32"

	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// Kind identifies the concrete shape
type Kind uint8

const (
	KindSphere Kind = iota
	KindBox
	KindCapsule
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	case KindCapsule:
		return "capsule"
	default:
		return "unknown"
	}
}

// Shape is a solid volume in shape-local coordinates
type Shape interface {
	Kind() Kind
	// Contains tests the point against the closed volume
	Contains(p vmath.Vector) bool
	// RayHit returns the fraction along dir where origin+t*dir first touches the volume
	RayHit(origin, dir vmath.Vector) (float32, bool)
	Bounds() (min, max vmath.Vector)
	// Inflate returns a copy grown by r in every direction
	Inflate(r float32) Shape
}

// --- Sphere ---

type Sphere struct {
	Center vmath.Vector
	Radius float32
}

func (s Sphere) Kind() Kind { return KindSphere }

func (s Sphere) Contains(p vmath.Vector) bool {
	return vmath.VDistance(p, s.Center) <= s.Radius
}

func (s Sphere) RayHit(origin, dir vmath.Vector) (float32, bool) {
	return vmath.RaySphere(origin, dir, s.Center, s.Radius)
}

func (s Sphere) Bounds() (vmath.Vector, vmath.Vector) {
	r := vmath.Vector{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return vmath.VSub(s.Center, r), vmath.VAdd(s.Center, r)
}

func (s Sphere) Inflate(r float32) Shape {
	return Sphere{Center: s.Center, Radius: s.Radius + r}
}

// --- Box ---

// Box is axis aligned in shape-local space
type Box struct {
	Center      vmath.Vector
	HalfExtents vmath.Vector
}

func (b Box) Kind() Kind { return KindBox }

func (b Box) Contains(p vmath.Vector) bool {
	d := vmath.VAbs(vmath.VSub(p, b.Center))
	return d.X <= b.HalfExtents.X && d.Y <= b.HalfExtents.Y && d.Z <= b.HalfExtents.Z
}

func (b Box) RayHit(origin, dir vmath.Vector) (float32, bool) {
	lo, hi := b.Bounds()
	return vmath.RayAABB(origin, dir, lo, hi)
}

func (b Box) Bounds() (vmath.Vector, vmath.Vector) {
	return vmath.VSub(b.Center, b.HalfExtents), vmath.VAdd(b.Center, b.HalfExtents)
}

// Inflate grows the half extents; corners stay square
func (b Box) Inflate(r float32) Shape {
	return Box{Center: b.Center, HalfExtents: vmath.VAdd(b.HalfExtents, vmath.Vector{X: r, Y: r, Z: r})}
}

// --- Capsule ---

// Capsule is the set of points within Radius of segment A-B
type Capsule struct {
	A, B   vmath.Vector
	Radius float32
}

func (c Capsule) Kind() Kind { return KindCapsule }

func (c Capsule) distance(p vmath.Vector) float32 {
	q, _ := vmath.ClosestPointOnSegment(p, c.A, c.B)
	return vmath.VDistance(p, q) - c.Radius
}

func (c Capsule) Contains(p vmath.Vector) bool {
	return c.distance(p) <= 0
}

// RayHit minimizes the convex signed distance along the ray, then bisects to the surface
func (c Capsule) RayHit(origin, dir vmath.Vector) (float32, bool) {
	at := func(t float32) vmath.Vector { return vmath.VAdd(origin, vmath.VScale(dir, t)) }
	if c.distance(origin) <= 0 {
		return 0, true
	}

	lo, hi := float32(0), float32(1)
	for i := 0; i < 48; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if c.distance(at(m1)) < c.distance(at(m2)) {
			hi = m2
		} else {
			lo = m1
		}
	}
	tMin := (lo + hi) * 0.5
	if c.distance(at(tMin)) > 0 {
		return 0, false
	}

	lo, hi = 0, tMin
	for i := 0; i < 48; i++ {
		mid := (lo + hi) * 0.5
		if c.distance(at(mid)) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi, true
}

func (c Capsule) Bounds() (vmath.Vector, vmath.Vector) {
	r := vmath.Vector{X: c.Radius, Y: c.Radius, Z: c.Radius}
	return vmath.VSub(vmath.VMin(c.A, c.B), r), vmath.VAdd(vmath.VMax(c.A, c.B), r)
}

func (c Capsule) Inflate(r float32) Shape {
	return Capsule{A: c.A, B: c.B, Radius: c.Radius + r}
}

// BoundingRadius returns the radius of the sphere around the local origin enclosing s
func BoundingRadius(s Shape) float32 {
	lo, hi := s.Bounds()
	return math32.Max(vmath.VLength(lo), vmath.VLength(hi))
}
