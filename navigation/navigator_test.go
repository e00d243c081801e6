package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// TestNavigatorDefaults pins the constructor values
func TestNavigatorDefaults(t *testing.T) {
	n := NewNavigator()
	assert.Equal(t, 0, n.Layer())
	assert.Equal(t, SpaceMesh, n.SpaceType())
	assert.Equal(t, float32(0.5), n.MaxOutsideDistance())
	assert.Equal(t, float32(0), n.DefaultFixCost())
	assert.Equal(t, float32(1), n.DefaultCostPerMeter())
	assert.Equal(t, float32(1000), n.BlockingCost())
	assert.Equal(t, 0, n.TypeCount())
	assert.Nil(t, n.PeerAI())
}

// TestAddTypeIdempotent adds the same tag twice and expects one entry
func TestAddTypeIdempotent(t *testing.T) {
	n := NewNavigator()
	first := n.AddType(5)
	first.SetFixCost(2)
	second := n.AddType(5)

	assert.Equal(t, 1, n.TypeCount())
	assert.Same(t, first, second)
	assert.Equal(t, 5, second.Type)
	assert.Equal(t, float32(2), second.FixCost)
}

// TestTypeWithSetFixCost sets a cost through the looked up entry
func TestTypeWithSetFixCost(t *testing.T) {
	n := NewNavigator()
	created := n.AddType(1)
	assert.Equal(t, float32(0), created.FixCost)
	assert.Equal(t, float32(1), created.CostPerMeter)

	n.TypeWith(1).SetFixCost(3.5)
	assert.Equal(t, float32(3.5), n.TypeWith(1).FixCost)
	assert.Equal(t, 1, n.TypeCount())
	assert.Nil(t, n.TypeWith(2))
}

// TestRemoveTypeMissing expects an invalid parameter error and no change
func TestRemoveTypeMissing(t *testing.T) {
	n := NewNavigator()
	n.AddType(1)
	n.AddType(2)

	err := n.RemoveType(99)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParam)
	assert.Equal(t, 2, n.TypeCount())

	assert.ErrorIs(t, n.RemoveTypeWith(&NavigatorType{Type: 1}), ErrInvalidParam)
	assert.Equal(t, 2, n.TypeCount())
}

// TestRemoveTypeKeepsOrder removes from the middle and checks the shift
func TestRemoveTypeKeepsOrder(t *testing.T) {
	n := NewNavigator()
	for _, tag := range []int{4, 8, 15, 16} {
		n.AddType(tag)
	}
	require.NoError(t, n.RemoveType(8))
	require.NoError(t, n.RemoveTypeWith(n.TypeWith(16)))

	require.Equal(t, 2, n.TypeCount())
	first, err := n.TypeAt(0)
	require.NoError(t, err)
	second, err := n.TypeAt(1)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Type)
	assert.Equal(t, 15, second.Type)

	_, err = n.TypeAt(2)
	assert.ErrorIs(t, err, ErrInvalidParam)
}

// TestRemoveAllTypesKeepsCapacity clears without reallocating
func TestRemoveAllTypesKeepsCapacity(t *testing.T) {
	n := NewNavigator()
	for tag := 0; tag < 6; tag++ {
		n.AddType(tag)
	}
	capBefore := cap(n.types)
	n.RemoveAllTypes()
	assert.Equal(t, 0, n.TypeCount())
	assert.Equal(t, capBefore, cap(n.types))
}

// TestCostFor falls back to defaults for unknown tags
func TestCostFor(t *testing.T) {
	n := NewNavigator()
	n.SetDefaultFixCost(2)
	n.SetDefaultCostPerMeter(3)
	n.SetTypeFixCost(1, 10)
	n.SetTypeCostPerMeter(1, 0.5)

	fix, perMeter := n.CostFor(1)
	assert.Equal(t, float32(10), fix)
	assert.Equal(t, float32(0.5), perMeter)
	assert.Equal(t, float32(2), n.TypeFixCost(9))
	assert.Equal(t, float32(3), n.TypeCostPerMeter(9))
}

// TestSetterSkipsUnchanged checks each setter fires its own signal once
func TestSetterSkipsUnchanged(t *testing.T) {
	n := NewNavigator()
	peer := newSpyNavigatorPeer()
	n.SetPeerAI(peer)

	n.SetBlockingCost(50)
	n.SetBlockingCost(50)
	n.SetBlockingCost(50 + 1e-8)
	assert.Equal(t, 1, peer.calls["costs"])

	n.SetDefaultFixCost(1)
	n.SetDefaultCostPerMeter(1)
	assert.Equal(t, 2, peer.calls["costs"])

	n.SetLayer(0)
	n.SetLayer(3)
	n.SetLayer(3)
	assert.Equal(t, 1, peer.calls["layer"])

	n.SetSpaceType(SpaceMesh)
	n.SetSpaceType(SpaceGrid)
	assert.Equal(t, 1, peer.calls["spaceType"])

	n.SetMaxOutsideDistance(0.5)
	n.SetMaxOutsideDistance(2)
	assert.Equal(t, 1, peer.calls["parameters"])

	assert.Zero(t, peer.calls["types"])
	n.AddType(1)
	n.AddType(2)
	assert.Zero(t, peer.calls["types"])
	n.NotifyTypesChanged()
	assert.Equal(t, 1, peer.calls["types"])
}

// TestFindPathWithoutPeer clears a stale path
func TestFindPathWithoutPeer(t *testing.T) {
	n := NewNavigator()
	path := NewPathFrom(vmath.DVector{X: 1}, vmath.DVector{X: 2}, vmath.DVector{X: 3})

	n.FindPath(path, vmath.DVector{}, vmath.DVector{X: 10})
	assert.Equal(t, 0, path.Count())
}

// TestFindPathForwards clears, then lets the peer fill
func TestFindPathForwards(t *testing.T) {
	n := NewNavigator()
	peer := newSpyNavigatorPeer()
	peer.findPath = []vmath.DVector{{X: 5}, {X: 10}}
	n.SetPeerAI(peer)

	path := NewPathFrom(vmath.DVector{Y: 99})
	n.FindPath(path, vmath.DVector{}, vmath.DVector{X: 10})
	require.Equal(t, 2, path.Count())
	first, _ := path.At(0)
	assert.Equal(t, vmath.DVector{X: 5}, first)
	assert.Equal(t, 1, peer.calls["findPath"])
}

// TestQueriesWithoutPeer covers every soft failure result
func TestQueriesWithoutPeer(t *testing.T) {
	n := NewNavigator()
	path := NewPathFrom(vmath.DVector{}, vmath.DVector{X: 1})

	_, _, ok := n.NearestPoint(vmath.DVector{}, 1)
	assert.False(t, ok)

	d, ok := n.LineCollide(vmath.DVector{}, vmath.Vector{X: 1})
	assert.False(t, ok)
	assert.Equal(t, float32(1), d)

	_, _, ok = n.PathCollideRay(path, nil)
	assert.False(t, ok)
	_, _, ok = n.PathCollideRayRange(path, nil, vmath.DVector{}, 0, 1)
	assert.False(t, ok)
	_, _, ok = n.PathCollideShape(path, nil, nil)
	assert.False(t, ok)
	_, _, ok = n.PathCollideShapeRange(path, nil, nil, vmath.DVector{}, 0, 1)
	assert.False(t, ok)
}

// TestNearestPointClampsRadius hands the peer a non-negative radius
func TestNearestPointClampsRadius(t *testing.T) {
	n := NewNavigator()
	peer := newSpyNavigatorPeer()
	n.SetPeerAI(peer)

	_, tag, ok := n.NearestPoint(vmath.DVector{X: 1}, -5)
	assert.True(t, ok)
	assert.Equal(t, 7, tag)
	assert.Equal(t, float32(0), peer.radius)
}

// TestSetPeerDisposesPrevious keeps exactly one peer alive
func TestSetPeerDisposesPrevious(t *testing.T) {
	n := NewNavigator()
	first := newSpyNavigatorPeer()
	second := newSpyNavigatorPeer()

	n.SetPeerAI(first)
	n.SetPeerAI(first)
	assert.Zero(t, first.calls["dispose"])

	n.SetPeerAI(second)
	assert.Equal(t, 1, first.calls["dispose"])
	n.SetPeerAI(nil)
	assert.Equal(t, 1, second.calls["dispose"])
	assert.Nil(t, n.PeerAI())
}
