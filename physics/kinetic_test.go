package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LordOfDragons/dragengine-sub060/shape"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

func ball(x, y, z float64, radius float32) *world.Collider {
	c := world.NewCollider("ball", shape.NewList(shape.Sphere{Radius: radius}))
	c.SetPosition(vmath.DVector{X: x, Y: y, Z: z})
	return c
}

func TestIntegrate(t *testing.T) {
	c := ball(0, 0, 0, 1)
	Integrate(c, vmath.Vector{Y: -10}, 0.5)
	assert.InDelta(t, -5, c.Velocity.Y, 1e-6)
	assert.InDelta(t, -2.5, c.Position().Y, 1e-6)

	ApplyImpulse(c, vmath.Vector{X: 2})
	assert.InDelta(t, 2, c.Velocity.X, 1e-6)
	SetImpulse(c, vmath.Vector{})
	assert.Equal(t, vmath.Vector{}, c.Velocity)
}

func TestReflectBounds(t *testing.T) {
	half := vmath.DVector{X: 5, Y: 5, Z: 5}

	c := ball(6, 0, -7, 1)
	c.Velocity = vmath.Vector{X: 1, Z: -2}
	require.True(t, ReflectBounds(c, half))
	assert.Equal(t, vmath.DVector{X: 5, Z: -5}, c.Position())
	assert.Equal(t, vmath.Vector{X: -1, Z: 2}, c.Velocity)

	inside := ball(1, 1, 1, 1)
	inside.Velocity = vmath.Vector{X: 3}
	assert.False(t, ReflectBounds(inside, half))
	assert.Equal(t, vmath.Vector{X: 3}, inside.Velocity)
}

func TestRestOnTerrain(t *testing.T) {
	terrain, err := world.NewHeightTerrain(10, 2)
	require.NoError(t, err)

	c := ball(0, 0.2, 0, 0.5)
	c.Velocity = vmath.Vector{Y: -2}
	require.True(t, RestOnTerrain(c, terrain, 0.5))
	assert.InDelta(t, 0.5, c.Position().Y, 1e-6)
	assert.InDelta(t, 1, c.Velocity.Y, 1e-6)

	high := ball(0, 3, 0, 0.5)
	assert.False(t, RestOnTerrain(high, terrain, 0.5))
	assert.False(t, RestOnTerrain(c, nil, 0.5), "no terrain")
}

func TestElasticCollision(t *testing.T) {
	velA, velB := vmath.Vector{X: 1}, vmath.Vector{}
	require.True(t, ElasticCollision(vmath.DVector{}, vmath.DVector{X: 1}, &velA, &velB, 1, 1, 1))
	assert.InDelta(t, 0, velA.X, 1e-6)
	assert.InDelta(t, 1, velB.X, 1e-6)

	// Separating
	velA = vmath.Vector{X: -1}
	assert.False(t, ElasticCollision(vmath.DVector{}, vmath.DVector{X: 1}, &velA, &velB, 1, 1, 1))

	// Coincident
	assert.False(t, ElasticCollision(vmath.DVector{}, vmath.DVector{}, &velA, &velB, 1, 1, 1))
}

func TestOverlapping(t *testing.T) {
	assert.True(t, Overlapping(ball(0, 0, 0, 0.5), ball(0.9, 0, 0, 0.5)))
	assert.False(t, Overlapping(ball(0, 0, 0, 0.5), ball(1.1, 0, 0, 0.5)))
	assert.False(t, Overlapping(world.NewCollider("a", nil), world.NewCollider("b", nil)), "shapeless")
}
