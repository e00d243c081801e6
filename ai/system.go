package ai

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/service"
	"github.com/LordOfDragons/dragengine-sub060/status"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// ServiceName registers the system in the service hub
const ServiceName = "ai"

// Options configures the AI system
type Options struct {
	Logger  *slog.Logger
	Metrics *status.Registry
}

// System owns the active module and the AI peers of registered worlds
//
// System runs on the frame goroutine together with the worlds it manages.
type System struct {
	logger *slog.Logger
	module Module
	worlds []*world.World
	// attached drops every resource peer this system created, linked or not
	attached map[any]func()

	running bool

	peersCreated *atomic.Int64
	peerFailures *atomic.Int64
	worldCount   *status.Gauge
}

var (
	_ service.Service  = (*System)(nil)
	_ world.PeerLoader = (*System)(nil)
)

func NewSystem(opts Options) *System {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = status.NewRegistry()
	}
	return &System{
		logger:       logger.With("system", ServiceName),
		attached:     make(map[any]func()),
		peersCreated: metrics.Counter("ai.peers_created"),
		peerFailures: metrics.Counter("ai.peer_failures"),
		worldCount:   metrics.Gauge("ai.worlds"),
	}
}

// --- service.Service ---

func (s *System) Name() string           { return ServiceName }
func (s *System) Dependencies() []string { return nil }

// Init activates the first Module found in args
func (s *System) Init(args ...any) error {
	if m, ok := service.Arg[Module](args); ok {
		return s.SetActiveModule(m)
	}
	return nil
}

// Start creates peers for every resource of every registered world
func (s *System) Start() error {
	if s.running {
		return nil
	}
	if s.module == nil {
		return ErrNoModule
	}
	s.running = true

	var errs []error
	for _, w := range s.worlds {
		if err := s.loadWorld(w); err != nil {
			errs = append(errs, fmt.Errorf("world %q: %w", w.Name(), err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.unloadAll()
		s.running = false
		return err
	}
	s.logger.Info("ai system started", "module", s.module.Name(), "worlds", len(s.worlds))
	return nil
}

// Stop removes all AI peers; safe to call repeatedly
func (s *System) Stop() error {
	if !s.running {
		return nil
	}
	s.unloadAll()
	s.running = false
	s.logger.Info("ai system stopped")
	return nil
}

// --- module ---

func (s *System) IsRunning() bool { return s.running }

func (s *System) ActiveModule() Module { return s.module }

// SetActiveModule replaces the module; only allowed while stopped
func (s *System) SetActiveModule(m Module) error {
	if s.running {
		return ErrRunning
	}
	s.module = m
	return nil
}

// --- worlds ---

// RegisterWorld puts w under management; peers follow immediately when running
func (s *System) RegisterWorld(w *world.World) error {
	if slices.Contains(s.worlds, w) {
		return fmt.Errorf("world %q already registered: %w", w.Name(), navigation.ErrInvalidParam)
	}
	s.worlds = append(s.worlds, w)
	w.SetPeerLoader(s)
	s.worldCount.Set(float64(len(s.worlds)))

	if s.running {
		if err := s.loadWorld(w); err != nil {
			s.unloadWorld(w)
			w.SetPeerLoader(nil)
			s.worlds = s.worlds[:len(s.worlds)-1]
			s.worldCount.Set(float64(len(s.worlds)))
			return fmt.Errorf("register world %q: %w", w.Name(), err)
		}
	}
	return nil
}

// UnregisterWorld drops the peers of w and stops managing it
func (s *System) UnregisterWorld(w *world.World) {
	i := slices.Index(s.worlds, w)
	if i == -1 {
		return
	}
	if s.running {
		s.unloadWorld(w)
	}
	w.SetPeerLoader(nil)
	s.worlds = slices.Delete(s.worlds, i, i+1)
	s.worldCount.Set(float64(len(s.worlds)))
}

func (s *System) Worlds() []*world.World { return slices.Clone(s.worlds) }

// loadWorld creates the world peer first so resource peers can reach it
func (s *System) loadWorld(w *world.World) error {
	if w.PeerAI() == nil {
		p := s.module.CreateWorld(w)
		if p == nil {
			s.peerFailures.Add(1)
			return fmt.Errorf("world peer: %w", ErrPeerCreation)
		}
		w.SetPeerAI(p)
		s.peersCreated.Add(1)
	}

	for sp := range w.NavigationSpaces().All() {
		if err := s.LoadNavigationSpace(w, sp); err != nil {
			return err
		}
	}
	for b := range w.NavigationBlockers().All() {
		if err := s.LoadNavigationBlocker(w, b); err != nil {
			return err
		}
	}
	for n := range w.Navigators().All() {
		if err := s.LoadNavigator(w, n); err != nil {
			return err
		}
	}
	if h := w.HeightTerrain(); h != nil {
		if err := s.LoadHeightTerrain(w, h); err != nil {
			return err
		}
	}
	return nil
}

// unloadWorld drops resource peers before the world peer
func (s *System) unloadWorld(w *world.World) {
	for n := range w.Navigators().All() {
		n.SetPeerAI(nil)
		delete(s.attached, n)
	}
	for b := range w.NavigationBlockers().All() {
		b.SetPeerAI(nil)
		delete(s.attached, b)
	}
	for sp := range w.NavigationSpaces().All() {
		sp.SetPeerAI(nil)
		delete(s.attached, sp)
	}
	if h := w.HeightTerrain(); h != nil {
		h.SetPeerAI(nil)
		delete(s.attached, h)
	}
	w.SetPeerAI(nil)
}

// unloadAll also drops peers of resources removed from their world meanwhile
func (s *System) unloadAll() {
	for _, drop := range s.attached {
		drop()
	}
	clear(s.attached)
	for _, w := range s.worlds {
		s.unloadWorld(w)
	}
}

// --- world.PeerLoader ---

func (s *System) LoadNavigationSpace(_ *world.World, sp *navigation.Space) error {
	return loadPeer(s, "navigation space", sp, sp.PeerAI, func() navigation.SpacePeer {
		return s.module.CreateNavigationSpace(sp)
	}, sp.SetPeerAI)
}

func (s *System) LoadNavigationBlocker(_ *world.World, b *navigation.Blocker) error {
	return loadPeer(s, "navigation blocker", b, b.PeerAI, func() navigation.BlockerPeer {
		return s.module.CreateNavigationBlocker(b)
	}, b.SetPeerAI)
}

func (s *System) LoadNavigator(_ *world.World, n *navigation.Navigator) error {
	return loadPeer(s, "navigator", n, n.PeerAI, func() navigation.NavigatorPeer {
		return s.module.CreateNavigator(n)
	}, n.SetPeerAI)
}

func (s *System) LoadHeightTerrain(_ *world.World, h *world.HeightTerrain) error {
	return loadPeer(s, "height terrain", h, h.PeerAI, func() world.HeightTerrainPeer {
		return s.module.CreateHeightTerrain(h)
	}, h.SetPeerAI)
}

// loadPeer creates a peer unless stopped or one is already attached
func loadPeer[P comparable](s *System, kind string, resource any, current func() P, create func() P, set func(P)) error {
	var zero P
	if !s.running || current() != zero {
		return nil
	}
	p := create()
	if p == zero {
		s.peerFailures.Add(1)
		s.logger.Error("module returned no peer", "module", s.module.Name(), "resource", kind)
		return fmt.Errorf("%s peer: %w", kind, ErrPeerCreation)
	}
	set(p)
	s.attached[resource] = func() { set(zero) }
	s.peersCreated.Add(1)
	return nil
}
