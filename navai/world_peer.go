package navai

import (
	"cmp"
	"slices"
	"time"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// worldPeer owns the graph caches of one world
type worldPeer struct {
	module *Module
	world  *world.World
	caches map[layerKey]*graphCache

	// developer mode drawers per graph
	drawers map[layerKey]*graphDrawers
}

var _ world.AIPeer = (*worldPeer)(nil)

func newWorldPeer(m *Module, w *world.World) *worldPeer {
	return &worldPeer{
		module:  m,
		world:   w,
		caches:  make(map[layerKey]*graphCache),
		drawers: make(map[layerKey]*graphDrawers),
	}
}

// graph returns the graph for key, building it now when it is missing or dirty
func (wp *worldPeer) graph(key layerKey) *graph {
	return wp.cache(key).Current(wp.build)
}

func (wp *worldPeer) cache(key layerKey) *graphCache {
	c, ok := wp.caches[key]
	if !ok {
		c = newGraphCache(key, wp.module.opts.RebuildInterval)
		wp.caches[key] = c
	}
	return c
}

func (wp *worldPeer) build(key layerKey) *graph {
	spaces := slices.Collect(wp.world.NavigationSpaces().All())
	blockers := slices.Collect(wp.world.NavigationBlockers().All())
	g := buildGraph(key, spaces, blockers, wp.module.logger)
	wp.module.graphRebuilds.Add(1)
	wp.module.logger.Debug("graph rebuilt", "world", wp.world.Name(), "layer", key.layer, "type", key.spaceType, "nodes", len(g.nodes))
	if wp.module.opts.DeveloperMode {
		wp.showGraph(g)
	}
	return g
}

func (wp *worldPeer) markLayerDirty(layer int) {
	for key, c := range wp.caches {
		if key.layer == layer {
			c.MarkDirty()
		}
	}
}

func (wp *worldPeer) markAllDirty() {
	for _, c := range wp.caches {
		c.MarkDirty()
	}
}

// sortedKeys orders the caches so frame rebuilds run deterministically
func (wp *worldPeer) sortedKeys() []layerKey {
	keys := make([]layerKey, 0, len(wp.caches))
	for key := range wp.caches {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b layerKey) int {
		if c := cmp.Compare(a.layer, b.layer); c != 0 {
			return c
		}
		return cmp.Compare(a.spaceType, b.spaceType)
	})
	return keys
}

// --- world.AIPeer ---

// Update rebuilds dirty graphs whose throttle interval has passed
func (wp *worldPeer) Update(time.Duration) {
	for _, key := range wp.sortedKeys() {
		wp.caches[key].Tick(wp.build)
	}
}

func (wp *worldPeer) HeightTerrainChanged() { wp.markAllDirty() }

func (wp *worldPeer) NavigationSpaceAdded(s *navigation.Space)   { wp.markLayerDirty(s.Layer()) }
func (wp *worldPeer) NavigationSpaceRemoved(s *navigation.Space) { wp.markLayerDirty(s.Layer()) }
func (wp *worldPeer) AllNavigationSpacesRemoved()                { wp.markAllDirty() }

func (wp *worldPeer) NavigationBlockerAdded(b *navigation.Blocker)   { wp.markLayerDirty(b.Layer()) }
func (wp *worldPeer) NavigationBlockerRemoved(b *navigation.Blocker) { wp.markLayerDirty(b.Layer()) }
func (wp *worldPeer) AllNavigationBlockersRemoved()                  { wp.markAllDirty() }

// Navigators read the graphs on demand and need no bookkeeping here
func (wp *worldPeer) NavigatorAdded(*navigation.Navigator)   {}
func (wp *worldPeer) NavigatorRemoved(*navigation.Navigator) {}
func (wp *worldPeer) AllNavigatorsRemoved()                  {}

// Dispose drops the caches and takes the developer drawers out of the world
func (wp *worldPeer) Dispose() {
	for _, d := range wp.drawers {
		d.remove(wp.world)
	}
	clear(wp.drawers)
	clear(wp.caches)
}
