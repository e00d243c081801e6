package physics

import (
	"github.com/chewxy/math32"

	"github.com/LordOfDragons/dragengine-sub060/vmath"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// Overlapping tests the bounding spheres of two colliders
func Overlapping(a, b *world.Collider) bool {
	reach := float64(a.Shapes().BoundingRadius() + b.Shapes().BoundingRadius())
	if reach <= 0 {
		return false
	}
	return vmath.DVLengthSq(vmath.DVSub(b.Position(), a.Position())) < reach*reach
}

// ElasticCollision resolves velocities of two approaching bodies along the contact normal
// Returns false if the bodies coincide or separate already
func ElasticCollision(posA, posB vmath.DVector, velA, velB *vmath.Vector, massA, massB, restitution float32) bool {
	delta := vmath.DVSub(posB, posA).ToVector()
	distSq := vmath.VLengthSq(delta)
	if distSq == 0 {
		return false
	}
	n := vmath.VScale(delta, 1/math32.Sqrt(distSq))

	vn := vmath.VDot(vmath.VSub(*velA, *velB), n)
	if vn <= 0 {
		return false
	}

	invA := 1 / massA
	invB := 1 / massB
	invSum := invA + invB
	if invSum == 0 {
		return false
	}
	j := (1 + restitution) * vn / invSum

	*velA = vmath.VSub(*velA, vmath.VScale(n, j*invA))
	*velB = vmath.VAdd(*velB, vmath.VScale(n, j*invB))
	return true
}

// Collide bounces two overlapping colliders of equal mass
func Collide(a, b *world.Collider, restitution float32) bool {
	if !Overlapping(a, b) {
		return false
	}
	return ElasticCollision(a.Position(), b.Position(), &a.Velocity, &b.Velocity, 1, 1, restitution)
}
