// Package navai is the reference AI module
//
// It builds one search graph per layer and space type from the navigation
// spaces of a world, removes the nodes covered by blockers, and answers
// navigator queries with A* on that graph.
package navai

import (
	"log/slog"
	"sync/atomic"

	"github.com/LordOfDragons/dragengine-sub060/ai"
	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/status"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// ModuleName identifies the module in configuration
const ModuleName = "navai"

// DefaultRebuildInterval is the number of frames a dirty graph waits in Update
const DefaultRebuildInterval = 4

// Options configures the module
type Options struct {
	// DeveloperMode publishes graphs, blockers and found paths as debug drawers
	DeveloperMode bool
	// RebuildInterval is the minimum frame count between two graph rebuilds in Update
	// Queries always rebuild a dirty graph immediately
	RebuildInterval int

	Logger  *slog.Logger
	Metrics *status.Registry
}

// Module creates the navai peers
type Module struct {
	opts   Options
	logger *slog.Logger

	searches       *atomic.Int64
	searchesFailed *atomic.Int64
	graphRebuilds  *atomic.Int64
	nodesExpanded  *atomic.Int64
}

var _ ai.Module = (*Module)(nil)

func New(opts Options) *Module {
	if opts.RebuildInterval <= 0 {
		opts.RebuildInterval = DefaultRebuildInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	return &Module{
		opts:           opts,
		logger:         logger.With("module", ModuleName),
		searches:       metrics.Counter("ai.searches"),
		searchesFailed: metrics.Counter("ai.searches_failed"),
		graphRebuilds:  metrics.Counter("ai.graph_rebuilds"),
		nodesExpanded:  metrics.Counter("ai.nodes_expanded"),
	}
}

func (m *Module) Name() string { return ModuleName }

func (m *Module) DeveloperMode() bool { return m.opts.DeveloperMode }

// --- Factories ---

func (m *Module) CreateWorld(w *world.World) world.AIPeer {
	return newWorldPeer(m, w)
}

func (m *Module) CreateNavigationSpace(s *navigation.Space) navigation.SpacePeer {
	return &spacePeer{space: s, layer: s.Layer()}
}

func (m *Module) CreateNavigationBlocker(b *navigation.Blocker) navigation.BlockerPeer {
	return &blockerPeer{blocker: b, layer: b.Layer()}
}

func (m *Module) CreateNavigator(n *navigation.Navigator) navigation.NavigatorPeer {
	return newNavigatorPeer(m, n)
}

func (m *Module) CreateHeightTerrain(h *world.HeightTerrain) world.HeightTerrainPeer {
	return &terrainPeer{terrain: h}
}

// peerOf finds the navai world peer of the world a resource belongs to
// Returns nil while the resource is outside a world or the world runs another module
func peerOf(c navigation.Container) *worldPeer {
	w, ok := c.(*world.World)
	if !ok || w == nil {
		return nil
	}
	wp, _ := w.PeerAI().(*worldPeer)
	return wp
}
