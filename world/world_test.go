package world

import (
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// TestSpaceAddRemove adds a grid space and removes it
func TestSpaceAddRemove(t *testing.T) {
	w := New("w")
	s := navigation.NewSpace()
	s.SetType(navigation.SpaceGrid)
	s.SetLayer(0)

	require.NoError(t, w.AddNavigationSpace(s))
	assert.Equal(t, 1, w.NavigationSpaceCount())
	assert.Same(t, w, s.ParentWorld())

	require.NoError(t, w.RemoveNavigationSpace(s))
	assert.Equal(t, 0, w.NavigationSpaceCount())
	assert.Nil(t, s.ParentWorld())
}

// TestSingleOwnership rejects adding a resource to a second world
func TestSingleOwnership(t *testing.T) {
	w1, w2 := New("one"), New("two")

	s := navigation.NewSpace()
	b := navigation.NewBlocker()
	n := navigation.NewNavigator()
	require.NoError(t, w1.AddNavigationSpace(s))
	require.NoError(t, w1.AddNavigationBlocker(b))
	require.NoError(t, w1.AddNavigator(n))

	assert.ErrorIs(t, w2.AddNavigationSpace(s), ErrInvalidParam)
	assert.ErrorIs(t, w2.AddNavigationBlocker(b), ErrInvalidParam)
	assert.ErrorIs(t, w2.AddNavigator(n), ErrInvalidParam)
	assert.ErrorIs(t, w1.AddNavigator(n), ErrInvalidParam, "twice into the same world")

	assert.Same(t, w1, s.ParentWorld())
	assert.Same(t, w1, b.ParentWorld())
	assert.Same(t, w1, n.ParentWorld())
	assert.Equal(t, 0, w2.NavigatorCount())
	assert.Equal(t, 1, w1.NavigatorCount())
}

// TestRemoveInvalid rejects nil and foreign resources
func TestRemoveInvalid(t *testing.T) {
	w1, w2 := New("one"), New("two")
	n := navigation.NewNavigator()
	require.NoError(t, w1.AddNavigator(n))

	assert.ErrorIs(t, w2.RemoveNavigator(n), ErrInvalidParam)
	assert.ErrorIs(t, w1.RemoveNavigator(nil), ErrInvalidParam)
	assert.ErrorIs(t, w1.AddNavigator(nil), ErrInvalidParam)
	assert.ErrorIs(t, w1.RemoveNavigationSpace(navigation.NewSpace()), ErrInvalidParam)
	assert.Equal(t, 1, w1.NavigatorCount())
}

// TestListConsistency walks both directions after every random operation
func TestListConsistency(t *testing.T) {
	w := New("w")
	rng := rand.New(rand.NewSource(7))
	var live []*navigation.Space

	for step := 0; step < 300; step++ {
		if len(live) == 0 || rng.Intn(3) > 0 {
			s := navigation.NewSpace()
			require.NoError(t, w.AddNavigationSpace(s))
			live = append(live, s)
		} else {
			i := rng.Intn(len(live))
			require.NoError(t, w.RemoveNavigationSpace(live[i]))
			live = slices.Delete(live, i, i+1)
		}

		forward := slices.Collect(w.NavigationSpaces().All())
		backward := slices.Collect(w.NavigationSpaces().Backward())
		require.Len(t, forward, w.NavigationSpaceCount())
		require.Len(t, backward, w.NavigationSpaceCount())
		slices.Reverse(backward)
		require.Equal(t, forward, backward)
		require.Equal(t, live, forward, "insertion order kept")
		for i, s := range forward {
			require.Equal(t, i, w.NavigationSpaces().IndexOf(s))
		}
	}
}

// TestRemoveAllUsesBulkHook fires the bulk hook once and no per-item hook
func TestRemoveAllUsesBulkHook(t *testing.T) {
	w, log, _ := newSpyWorld()
	navigators := make([]*navigation.Navigator, 5)
	for i := range navigators {
		navigators[i] = navigation.NewNavigator()
		require.NoError(t, w.AddNavigator(navigators[i]))
	}

	w.RemoveAllNavigators()
	assert.Equal(t, 1, log.count("ai.allNavigators"))
	assert.Zero(t, log.count("ai.navigatorRemoved"))
	assert.Equal(t, 0, w.NavigatorCount())
	for _, n := range navigators {
		assert.Nil(t, n.ParentWorld())
	}

	require.NoError(t, New("other").AddNavigator(navigators[0]), "released resources can move")
}

// TestAddHookSeesMember calls the AI hook after linking
func TestAddHookSeesMember(t *testing.T) {
	w, log, ai := newSpyWorld()
	n := navigation.NewNavigator()
	require.NoError(t, w.AddNavigator(n))
	require.NoError(t, w.RemoveNavigator(n))

	assert.Equal(t, []bool{true}, ai.seenLinked)
	assert.Equal(t, 1, log.count("ai.navigatorAdded"))
	assert.Equal(t, 1, log.count("ai.navigatorRemoved"))
}

// TestLoaderFailureRollsBack leaves the world untouched when a peer cannot be created
func TestLoaderFailureRollsBack(t *testing.T) {
	w, log, _ := newSpyWorld()
	loader := &failingLoader{}
	w.SetPeerLoader(loader)

	require.NoError(t, w.AddNavigationSpace(navigation.NewSpace()))
	assert.Equal(t, 1, loader.loaded)

	n := navigation.NewNavigator()
	err := w.AddNavigator(n)
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoPeer)
	assert.Equal(t, 0, w.NavigatorCount())
	assert.Nil(t, n.ParentWorld())
	assert.Zero(t, log.count("ai.navigatorAdded"))
}

// TestUpdateOrder runs graphic, physics, audio, AI every frame
func TestUpdateOrder(t *testing.T) {
	w, log, _ := newSpyWorld()
	w.Update(16 * time.Millisecond)
	w.Update(16 * time.Millisecond)
	assert.Equal(t, []string{
		"graphic.update", "physics.update", "audio.update", "ai.update",
		"graphic.update", "physics.update", "audio.update", "ai.update",
	}, log.calls)

	log.calls = nil
	w.ProcessPhysics(time.Millisecond)
	assert.Equal(t, []string{"physics.process"}, log.calls)
}

// TestUpdatePanicPropagates skips the remaining peers
func TestUpdatePanicPropagates(t *testing.T) {
	w, log, _ := newSpyWorld()
	w.SetPeerPhysics(panicPhysics{})
	assert.Panics(t, func() { w.Update(time.Millisecond) })
	assert.Equal(t, []string{"physics.dispose", "graphic.update"}, log.calls)
}

type panicPhysics struct{ BasePhysicsPeer }

func (panicPhysics) Update(time.Duration) { panic("physics failure") }

// TestAttributeNotifications routes each attribute to its peers
func TestAttributeNotifications(t *testing.T) {
	w, log, _ := newSpyWorld()

	w.SetSize(DefaultSize)
	assert.Empty(t, log.calls)
	w.SetSize(vmath.DVector{X: 10, Y: 10, Z: 10})
	assert.Equal(t, []string{"graphic.size", "physics.size", "audio.size"}, log.calls)

	log.calls = nil
	w.SetGravity(vmath.Vector{Y: -1})
	w.SetGravity(vmath.Vector{Y: -1})
	w.SetSpeakerGain(0.5)
	w.SetSpeakerGain(0.5)
	assert.Equal(t, []string{"physics.changed", "audio.changed"}, log.calls)

	log.calls = nil
	terrain, err := NewHeightTerrain(100, 3)
	require.NoError(t, err)
	require.NoError(t, w.SetHeightTerrain(terrain))
	assert.Equal(t, []string{"graphic.terrain", "physics.terrain", "ai.terrain"}, log.calls)
	assert.Same(t, w, terrain.ParentWorld())

	other := New("other")
	assert.ErrorIs(t, other.SetHeightTerrain(terrain), ErrInvalidParam)

	require.NoError(t, w.SetHeightTerrain(nil))
	assert.Nil(t, terrain.ParentWorld())
}

// TestSetPeerDisposesPrevious keeps one peer per system
func TestSetPeerDisposesPrevious(t *testing.T) {
	w, log, ai := newSpyWorld()
	w.SetPeerAI(ai)
	assert.Zero(t, log.count("ai.dispose"))

	w.SetPeerAI(&spyAI{log: log, world: w})
	assert.Equal(t, 1, log.count("ai.dispose"))

	w.SetPeerGraphic(nil)
	assert.Equal(t, 1, log.count("graphic.dispose"))
	assert.Nil(t, w.PeerGraphic())
}

// TestDisposeSkipsResourceHooks drops peers before clearing
func TestDisposeSkipsResourceHooks(t *testing.T) {
	w, log, _ := newSpyWorld()
	network := &spyNetwork{log: log}
	w.SetPeerNetwork(network)
	require.NoError(t, w.AddNavigationSpace(navigation.NewSpace()))
	require.NoError(t, w.AddNavigator(navigation.NewNavigator()))
	log.calls = nil

	w.Dispose()
	assert.Equal(t, []string{"ai.dispose", "network.dispose", "physics.dispose", "audio.dispose", "graphic.dispose"}, log.calls)
	assert.Equal(t, 0, w.NavigationSpaceCount())
	assert.Equal(t, 0, w.NavigatorCount())
}

// TestClearOrder removes navigation resources last
func TestClearOrder(t *testing.T) {
	w, log, _ := newSpyWorld()
	require.NoError(t, w.AddCollider(NewCollider("c", nil)))
	log.calls = nil

	w.Clear()
	assert.Equal(t, []string{
		"audio.allSpeakers", "physics.allColliders",
		"ai.allNavigators", "ai.allBlockers", "ai.allSpaces",
	}, log.calls)
	assert.Equal(t, 0, w.ColliderCount())
}

// TestListeners receive events until removed
func TestListeners(t *testing.T) {
	w := New("events")
	var got []Event
	remove := w.AddListener(ListenerFunc(func(e Event) { got = append(got, e) }))
	network := &spyNetwork{log: &callLog{}}
	w.SetPeerNetwork(network)

	s := navigation.NewSpace()
	require.NoError(t, w.AddNavigationSpace(s))
	require.NoError(t, w.RemoveNavigationSpace(s))
	w.SetGravity(vmath.Vector{})

	require.Len(t, got, 3)
	assert.Equal(t, Event{World: "events", Kind: EventAdded, Resource: ResourceNavigationSpace, Count: 1}, got[0])
	assert.Equal(t, EventRemoved, got[1].Kind)
	assert.Equal(t, "gravity", got[2].Attribute)
	assert.Equal(t, got, network.events)

	remove()
	remove()
	assert.Equal(t, 0, w.ListenerCount())
	w.SetGravity(vmath.Vector{Y: 1})
	assert.Len(t, got, 3)
}

// TestOtherResourceKinds route to their own system peers
func TestOtherResourceKinds(t *testing.T) {
	w, log, _ := newSpyWorld()
	c := NewCollider("box", nil)
	require.NoError(t, w.AddCollider(c))
	assert.Equal(t, 1, log.count("physics.colliderAdded"))
	assert.ErrorIs(t, New("x").AddCollider(c), ErrInvalidParam)

	sp := NewSpeaker("s", "tone")
	require.NoError(t, w.AddSpeaker(sp))
	require.NoError(t, w.RemoveSpeaker(sp))
	assert.ErrorIs(t, w.RemoveSpeaker(sp), ErrInvalidParam)

	d := NewDebugDrawer("d")
	require.NoError(t, w.AddDebugDrawer(d))
	assert.Equal(t, 1, w.DebugDrawerCount())
	require.NoError(t, w.RemoveDebugDrawer(d))
}

// TestHeightTerrainSampling interpolates between samples and clamps outside
func TestHeightTerrainSampling(t *testing.T) {
	h, err := NewHeightTerrain(2, 3)
	require.NoError(t, err)
	require.NoError(t, h.SetHeight(2, 1, 4))
	assert.ErrorIs(t, h.SetHeight(3, 0, 1), ErrInvalidParam)

	assert.InDelta(t, 4, h.HeightAt(1, 0), 1e-6)
	assert.InDelta(t, 2, h.HeightAt(0.5, 0), 1e-6)
	assert.InDelta(t, 4, h.HeightAt(50, 0), 1e-6)

	_, err = NewHeightTerrain(0, 3)
	assert.ErrorIs(t, err, ErrInvalidParam)
}
