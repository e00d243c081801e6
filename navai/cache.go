package navai

import (
	"github.com/LordOfDragons/dragengine-sub060/navigation"
)

// layerKey selects the spaces searched together
type layerKey struct {
	layer     int
	spaceType navigation.SpaceType
}

// graphCache manages graph rebuilds with throttling
type graphCache struct {
	key   layerKey
	Graph *graph

	// Rebuild throttling for frame updates
	TicksSinceBuild      int // Frames since last build
	MinTicksBetweenBuild int // Minimum frames between rebuilds

	// PendingUpdate latches true on any state change, cleared after build
	PendingUpdate bool
}

// newGraphCache creates a cache that builds on first use
func newGraphCache(key layerKey, minTicks int) *graphCache {
	return &graphCache{
		key:                  key,
		TicksSinceBuild:      minTicks, // Allow immediate first build
		MinTicksBetweenBuild: minTicks,
		PendingUpdate:        true, // Force initial build
	}
}

// Tick advances the frame counter and rebuilds once the throttle allows it
// Returns true if the graph was rebuilt this frame
func (c *graphCache) Tick(build func(layerKey) *graph) bool {
	c.TicksSinceBuild++
	if c.PendingUpdate && c.TicksSinceBuild >= c.MinTicksBetweenBuild {
		c.rebuild(build)
		return true
	}
	return false
}

// Current returns an up to date graph, rebuilding immediately when dirty
func (c *graphCache) Current(build func(layerKey) *graph) *graph {
	if c.PendingUpdate || c.Graph == nil {
		c.rebuild(build)
	}
	return c.Graph
}

func (c *graphCache) rebuild(build func(layerKey) *graph) {
	c.Graph = build(c.key)
	c.TicksSinceBuild = 0
	c.PendingUpdate = false
}

// MarkDirty forces a rebuild on the next query or eligible frame
func (c *graphCache) MarkDirty() {
	c.PendingUpdate = true
}

// IsValid reports whether a built graph is current
func (c *graphCache) IsValid() bool {
	return c.Graph != nil && !c.PendingUpdate
}
