package vmath

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQuatRotate checks a quarter turn around Y maps +X to -Z
func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vector{0, 1, 0}, math32.Pi/2)
	r := QuatRotate(q, Vector{1, 0, 0})
	assert.InDelta(t, 0, r.X, 1e-5)
	assert.InDelta(t, 0, r.Y, 1e-5)
	assert.InDelta(t, -1, r.Z, 1e-5)

	rd := QuatRotateD(q, DVector{1, 0, 0})
	assert.InDelta(t, -1, rd.Z, 1e-5)
}

// TestTransformRoundTrip verifies ToLocal inverts ToWorld
func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{
		Position:    DVector{10, 2, -4},
		Orientation: QuatFromEuler(0.3, 1.1, -0.2),
		Scale:       Vector{2, 1, 0.5},
	}
	local := Vector{1.5, -2, 3}
	back := tr.ToLocal(tr.ToWorld(local))
	assert.InDelta(t, local.X, back.X, 1e-4)
	assert.InDelta(t, local.Y, back.Y, 1e-4)
	assert.InDelta(t, local.Z, back.Z, 1e-4)
}

// TestTransformZeroScale treats the zero scale as unscaled
func TestTransformZeroScale(t *testing.T) {
	tr := Transform{Position: DVector{1, 0, 0}, Orientation: QuatIdentity()}
	assert.Equal(t, DVector{2, 0, 0}, tr.ToWorld(Vector{1, 0, 0}))
}

// TestEpsilonCompare covers the tolerance boundary
func TestEpsilonCompare(t *testing.T) {
	assert.True(t, FloatEqual(1, 1+1e-7))
	assert.False(t, FloatEqual(1, 1.001))
	assert.True(t, DoubleEqual(3, 3+1e-9))
	assert.True(t, DVEqual(DVector{1, 2, 3}, DVector{1, 2, 3}))
}

// TestSegmentIntersectXZ checks crossing and parallel segments
func TestSegmentIntersectXZ(t *testing.T) {
	tt, u, ok := SegmentIntersectXZ(Vector{0, 0, 0}, Vector{2, 0, 0}, Vector{1, 0, -1}, Vector{1, 0, 1})
	require.True(t, ok)
	assert.InDelta(t, 0.5, tt, 1e-6)
	assert.InDelta(t, 0.5, u, 1e-6)

	_, _, ok = SegmentIntersectXZ(Vector{0, 0, 0}, Vector{1, 0, 0}, Vector{0, 0, 1}, Vector{1, 0, 1})
	assert.False(t, ok)
}

// TestPolygonXZ covers inside tests and nearest boundary points
func TestPolygonXZ(t *testing.T) {
	square := []Vector{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}
	assert.True(t, PointInPolygonXZ(Vector{0.5, 5, 0.5}, square))
	assert.False(t, PointInPolygonXZ(Vector{1.5, 0, 0.5}, square))

	c := ClosestPointOnPolygonXZ(Vector{2, 0, 0.5}, square)
	assert.InDelta(t, 1, c.X, 1e-6)
	assert.InDelta(t, 0.5, c.Z, 1e-6)

	assert.Equal(t, Vector{0.5, 0, 0.5}, Centroid(square))
}

// TestRays covers sphere and box hits and misses
func TestRays(t *testing.T) {
	hit, ok := RaySphere(Vector{-5, 0, 0}, Vector{10, 0, 0}, Vector{}, 1)
	require.True(t, ok)
	assert.InDelta(t, 0.4, hit, 1e-5)

	_, ok = RaySphere(Vector{-5, 3, 0}, Vector{10, 0, 0}, Vector{}, 1)
	assert.False(t, ok)

	hit, ok = RayAABB(Vector{-5, 0, 0}, Vector{10, 0, 0}, Vector{-1, -1, -1}, Vector{1, 1, 1})
	require.True(t, ok)
	assert.InDelta(t, 0.4, hit, 1e-5)

	_, ok = RayAABB(Vector{-5, 0, 0}, Vector{2, 0, 0}, Vector{-1, -1, -1}, Vector{1, 1, 1})
	assert.False(t, ok)
}
