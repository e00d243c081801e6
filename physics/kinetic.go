package physics

import (
	"github.com/LordOfDragons/dragengine-sub060/vmath"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// Integrate performs semi-implicit Euler integration: v = v + a*dt; p = p + v*dt
func Integrate(c *world.Collider, accel vmath.Vector, dt float32) {
	c.Velocity = vmath.VAdd(c.Velocity, vmath.VScale(accel, dt))
	c.SetPosition(vmath.DVAdd(c.Position(), vmath.VScale(c.Velocity, dt).ToDVector()))
}

// ApplyImpulse adds velocity delta (momentum transfer)
func ApplyImpulse(c *world.Collider, dv vmath.Vector) {
	c.Velocity = vmath.VAdd(c.Velocity, dv)
}

// SetImpulse overrides velocity (hard redirect)
func SetImpulse(c *world.Collider, v vmath.Vector) {
	c.Velocity = v
}

// reflectAxis clamps p into [-half, half] and flips v when it left the range
func reflectAxis(p *float64, v *float32, half float64) bool {
	switch {
	case *p < -half:
		*p = -half
		*v = -*v
		return true
	case *p > half:
		*p = half
		*v = -*v
		return true
	}
	return false
}

// ReflectBounds keeps the collider inside the box of half extents centered on the origin
// Returns true if any axis reflected
func ReflectBounds(c *world.Collider, half vmath.DVector) bool {
	p := c.Position()
	rx := reflectAxis(&p.X, &c.Velocity.X, half.X)
	ry := reflectAxis(&p.Y, &c.Velocity.Y, half.Y)
	rz := reflectAxis(&p.Z, &c.Velocity.Z, half.Z)
	if rx || ry || rz {
		c.SetPosition(p)
		return true
	}
	return false
}

// RestOnTerrain lifts the collider so its lowest shape point sits on the terrain
// Downward velocity is reflected scaled by restitution. Returns true on contact
func RestOnTerrain(c *world.Collider, h *world.HeightTerrain, restitution float32) bool {
	if h == nil {
		return false
	}
	var bottom float32
	if lo, _, ok := c.Shapes().Bounds(); ok {
		bottom = lo.Y
	}
	p := c.Position()
	ground := float64(h.HeightAt(p.X, p.Z))
	if p.Y+float64(bottom) >= ground {
		return false
	}
	p.Y = ground - float64(bottom)
	c.SetPosition(p)
	if c.Velocity.Y < 0 {
		c.Velocity.Y = -c.Velocity.Y * restitution
	}
	return true
}
