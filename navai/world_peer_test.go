package navai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

const frame = 16 * time.Millisecond

// TestGraphCachedUntilDirty rebuilds only after a space change
func TestGraphCachedUntilDirty(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.addSpace(t, gridSpace(t, 3, 1, nil))
	n := f.navigator(t, navigation.SpaceGrid)
	path := navigation.NewPath()

	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))
	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))
	assert.EqualValues(t, 1, f.counter("ai.graph_rebuilds"))

	s.SetPosition(dv(0, 0, 0.1))
	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))
	assert.EqualValues(t, 2, f.counter("ai.graph_rebuilds"))
	last, err := path.At(path.Count() - 1)
	require.NoError(t, err)
	assert.Equal(t, dv(2, 0, 0), last)
}

// TestOtherLayerKeepsGraph ignores blockers until they move onto the layer
func TestOtherLayerKeepsGraph(t *testing.T) {
	f := newFixture(t, Options{})
	f.addSpace(t, gridSpace(t, 3, 1, nil))
	n := f.navigator(t, navigation.SpaceGrid)
	path := navigation.NewPath()
	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))

	b := boxBlocker(navigation.SpaceGrid, dv(1, 0, 0), 0.2)
	b.SetLayer(1)
	f.addBlocker(t, b)
	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))
	assert.EqualValues(t, 1, f.counter("ai.graph_rebuilds"))
	assert.Equal(t, 2, path.Count())

	b.SetLayer(0)
	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))
	assert.EqualValues(t, 2, f.counter("ai.graph_rebuilds"))
	assert.Zero(t, path.Count())
}

// TestSpaceLayerMove invalidates the layer the space leaves
func TestSpaceLayerMove(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.addSpace(t, gridSpace(t, 3, 1, nil))
	n := f.navigator(t, navigation.SpaceGrid)
	path := navigation.NewPath()
	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))
	require.Equal(t, 2, path.Count())

	s.SetLayer(1)
	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))
	assert.Zero(t, path.Count())
}

// TestUpdateThrottle rebuilds a dirty graph after the configured frame count
func TestUpdateThrottle(t *testing.T) {
	f := newFixture(t, Options{RebuildInterval: 3})
	s := f.addSpace(t, gridSpace(t, 3, 1, nil))
	n := f.navigator(t, navigation.SpaceGrid)
	n.FindPath(navigation.NewPath(), dv(0, 0, 0), dv(2, 0, 0))
	require.EqualValues(t, 1, f.counter("ai.graph_rebuilds"))

	s.NotifyLayoutChanged()
	f.world.Update(frame)
	f.world.Update(frame)
	assert.EqualValues(t, 1, f.counter("ai.graph_rebuilds"))
	f.world.Update(frame)
	assert.EqualValues(t, 2, f.counter("ai.graph_rebuilds"))

	f.world.Update(frame)
	assert.EqualValues(t, 2, f.counter("ai.graph_rebuilds"), "clean graphs stay")
}

// TestRemoveSpaceInvalidates drops the removed space from the graph
func TestRemoveSpaceInvalidates(t *testing.T) {
	f := newFixture(t, Options{})
	s := f.addSpace(t, gridSpace(t, 3, 1, nil))
	n := f.navigator(t, navigation.SpaceGrid)
	path := navigation.NewPath()
	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))
	require.Equal(t, 2, path.Count())

	require.NoError(t, f.world.RemoveNavigationSpace(s))
	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))
	assert.Zero(t, path.Count())

	require.NoError(t, f.world.AddNavigationSpace(s))
	f.world.RemoveAllNavigationSpaces()
	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))
	assert.Zero(t, path.Count())
}

// TestTerrainInvalidates rebuilds after terrain replacement and height edits
func TestTerrainInvalidates(t *testing.T) {
	f := newFixture(t, Options{})
	f.addSpace(t, gridSpace(t, 3, 1, nil))
	n := f.navigator(t, navigation.SpaceGrid)
	n.FindPath(navigation.NewPath(), dv(0, 0, 0), dv(2, 0, 0))

	terrain, err := world.NewHeightTerrain(10, 2)
	require.NoError(t, err)
	require.NoError(t, f.world.SetHeightTerrain(terrain))
	require.NotNil(t, terrain.PeerAI())
	n.FindPath(navigation.NewPath(), dv(0, 0, 0), dv(2, 0, 0))
	assert.EqualValues(t, 2, f.counter("ai.graph_rebuilds"))

	require.NoError(t, terrain.SetHeight(0, 0, 1))
	terrain.NotifyHeightChanged()
	n.FindPath(navigation.NewPath(), dv(0, 0, 0), dv(2, 0, 0))
	assert.EqualValues(t, 3, f.counter("ai.graph_rebuilds"))
}

// TestForeignWorldSoftFails answers nothing for a navigator outside a navai world
func TestForeignWorldSoftFails(t *testing.T) {
	m := New(Options{})
	n := navigation.NewNavigator()
	n.SetPeerAI(m.CreateNavigator(n))

	path := navigation.NewPath()
	n.FindPath(path, dv(0, 0, 0), dv(1, 0, 0))
	assert.Zero(t, path.Count())
	_, _, ok := n.NearestPoint(dv(0, 0, 0), 1)
	assert.False(t, ok)
	d, ok := n.LineCollide(dv(0, 0, 0), vmath.Vector{X: 1})
	assert.False(t, ok)
	assert.Equal(t, float32(1), d)
}

// TestDeveloperDrawers publishes graph, blocked and path drawers and removes them on stop
func TestDeveloperDrawers(t *testing.T) {
	f := newFixture(t, Options{DeveloperMode: true})
	f.addSpace(t, gridSpace(t, 3, 3, nil))
	f.addBlocker(t, boxBlocker(navigation.SpaceGrid, dv(1, 0, 1), 0.2))
	n := f.navigator(t, navigation.SpaceGrid)

	path := navigation.NewPath()
	n.FindPath(path, dv(0, 0, 1), dv(2, 0, 1))
	require.Equal(t, 3, f.world.DebugDrawerCount())

	byName := map[string]*world.DebugDrawer{}
	for d := range f.world.DebugDrawers().All() {
		byName[d.Name] = d
	}
	require.Contains(t, byName, "navai:0:grid:nodes")
	require.Contains(t, byName, "navai:0:grid:blocked")
	assert.Equal(t, 8, byName["navai:0:grid:nodes"].Shapes.Count())
	assert.Equal(t, 1, byName["navai:0:grid:blocked"].Shapes.Count())

	var pathDrawer *world.DebugDrawer
	for name, d := range byName {
		if name != "navai:0:grid:nodes" && name != "navai:0:grid:blocked" {
			pathDrawer = d
		}
	}
	require.NotNil(t, pathDrawer)
	assert.True(t, pathDrawer.Visible)
	assert.Equal(t, path.Count(), pathDrawer.Shapes.Count())

	n.FindPath(path, dv(0, 0, 1), dv(9, 0, 9))
	assert.False(t, pathDrawer.Visible, "failed search hides the path")

	require.NoError(t, f.system.Stop())
	assert.Zero(t, f.world.DebugDrawerCount())
}

// TestPathDrawerFollowsNavigator moves the path drawer with a navigator changing worlds
func TestPathDrawerFollowsNavigator(t *testing.T) {
	f := newFixture(t, Options{DeveloperMode: true})
	f.addSpace(t, gridSpace(t, 3, 1, nil))
	n := f.navigator(t, navigation.SpaceGrid)
	path := navigation.NewPath()
	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))
	require.Equal(t, 3, f.world.DebugDrawerCount())

	other := world.New("other")
	require.NoError(t, f.system.RegisterWorld(other))
	require.NoError(t, other.AddNavigationSpace(gridSpace(t, 3, 1, nil)))
	require.NoError(t, f.world.RemoveNavigator(n))
	require.NoError(t, other.AddNavigator(n))

	n.FindPath(path, dv(0, 0, 0), dv(2, 0, 0))
	require.Equal(t, 2, path.Count())
	assert.Equal(t, 2, f.world.DebugDrawerCount(), "graph drawers stay, path drawer left")
	assert.Equal(t, 3, other.DebugDrawerCount())
	for d := range other.DebugDrawers().All() {
		assert.Same(t, other, d.ParentWorld())
	}
}
