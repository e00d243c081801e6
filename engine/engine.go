// Package engine wires the engine systems together and drives the worlds frame by frame
//
// The engine owns the service hub with the AI system and the network
// inspector, plus the module instances creating the graphic, physics and
// audio world peers. Every world created through the engine gets one peer
// per system and is registered with the AI system.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"

	"github.com/LordOfDragons/dragengine-sub060/ai"
	"github.com/LordOfDragons/dragengine-sub060/audio"
	"github.com/LordOfDragons/dragengine-sub060/config"
	"github.com/LordOfDragons/dragengine-sub060/navai"
	"github.com/LordOfDragons/dragengine-sub060/network"
	"github.com/LordOfDragons/dragengine-sub060/physics"
	"github.com/LordOfDragons/dragengine-sub060/render"
	"github.com/LordOfDragons/dragengine-sub060/service"
	"github.com/LordOfDragons/dragengine-sub060/status"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

var (
	ErrWorldExists = errors.New("world already exists")
	ErrStopRun     = errors.New("stop run loop")
)

// Headless render buffer size
const (
	headlessWidth  = 80
	headlessHeight = 24
)

// maxPhysicsSteps bounds the catch-up after a long frame; older debt is dropped
const maxPhysicsSteps = 16

type Options struct {
	// Screen nil renders into an off-screen buffer
	Screen tcell.Screen
	// Sink receives the mixed audio; nil discards it
	Sink    audio.Sink
	Clock   Clock
	Logger  *slog.Logger
	Metrics *status.Registry
}

// Engine is driven from a single goroutine, like the worlds it owns
type Engine struct {
	cfg        config.Config
	baseLogger *slog.Logger
	logger     *slog.Logger
	metrics    *status.Registry
	clock      Clock

	hub     *service.Hub
	ai      *ai.System
	navai   *navai.Module
	network *network.Service
	physics *physics.Module
	audio   *audio.Module
	render  *render.Module

	worlds  []*world.World
	running bool
	paused  atomic.Bool

	frameInterval   time.Duration
	physicsInterval time.Duration
	physicsDebt     time.Duration

	frames       *atomic.Int64
	physicsSteps *atomic.Int64
	droppedSteps *atomic.Int64
	worldCount   *status.Gauge
}

// New builds the systems from cfg; nothing runs until Start
func New(cfg config.Config, opts Options) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry()
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}

	library, err := cfg.Audio.Library()
	if err != nil {
		return nil, fmt.Errorf("audio library: %w", err)
	}

	e := &Engine{
		cfg:           cfg,
		baseLogger:    opts.Logger,
		logger:        opts.Logger.With("component", "engine"),
		metrics:       opts.Metrics,
		clock:         opts.Clock,
		hub:           service.NewHub(opts.Logger),
		frameInterval: time.Second / time.Duration(cfg.Engine.FrameRate),
		frames:        opts.Metrics.Counter("engine.frames"),
		physicsSteps:  opts.Metrics.Counter("engine.physics_steps"),
		droppedSteps:  opts.Metrics.Counter("engine.physics_dropped"),
		worldCount:    opts.Metrics.Gauge("engine.worlds"),
	}
	if cfg.Engine.PhysicsRate > 0 {
		e.physicsInterval = time.Second / time.Duration(cfg.Engine.PhysicsRate)
	}

	e.navai = navai.New(navai.Options{
		DeveloperMode:   cfg.AI.DeveloperMode,
		RebuildInterval: cfg.AI.RebuildInterval,
		Logger:          opts.Logger,
		Metrics:         opts.Metrics,
	})
	e.ai = ai.NewSystem(ai.Options{Logger: opts.Logger, Metrics: opts.Metrics})
	e.network = network.NewService()
	e.physics = physics.New(physics.Options{
		Restitution: cfg.Physics.Restitution,
		MaxStep:     cfg.Physics.MaxStep.Std(),
		Logger:      opts.Logger,
		Metrics:     opts.Metrics,
	})
	e.audio = audio.New(audio.Options{
		SampleRate: beep.SampleRate(cfg.Audio.SampleRate),
		Library:    library,
		Sink:       opts.Sink,
		Logger:     opts.Logger,
		Metrics:    opts.Metrics,
	})
	e.render = render.New(render.Options{
		Screen:        opts.Screen,
		Width:         headlessWidth,
		Height:        headlessHeight,
		Scale:         cfg.Render.Scale,
		StatusLine:    cfg.Render.StatusLine,
		HideColliders: !cfg.Render.ShowColliders,
		Logger:        opts.Logger,
		Metrics:       opts.Metrics,
	})

	for _, svc := range []service.Service{e.ai, e.network} {
		if err := e.hub.Register(svc); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// --- Accessors ---

func (e *Engine) Config() config.Config        { return e.cfg }
func (e *Engine) Logger() *slog.Logger         { return e.logger }
func (e *Engine) Metrics() *status.Registry    { return e.metrics }
func (e *Engine) Hub() *service.Hub            { return e.hub }
func (e *Engine) AI() *ai.System               { return e.ai }
func (e *Engine) Network() *network.Service    { return e.network }
func (e *Engine) Sounds() *audio.Library       { return e.audio.Library() }
func (e *Engine) FrameInterval() time.Duration { return e.frameInterval }
func (e *Engine) Running() bool                { return e.running }

// --- Lifecycle ---

// Start initializes and starts the services; AI peers of existing worlds are created here
func (e *Engine) Start() error {
	if e.running {
		return nil
	}
	if err := e.hub.InitAll(e.navai, e.cfg.Inspect.Network(), e.metrics, e.baseLogger); err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	if err := e.hub.StartAll(); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	e.running = true
	e.logger.Info("engine started", "services", e.hub.Order(), "worlds", len(e.worlds))
	return nil
}

// Stop stops the services in reverse order; worlds stay alive without AI peers
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.hub.StopAll()
	e.running = false
	e.logger.Info("engine stopped", "frames", e.frames.Load())
}

// Close stops the engine and destroys every world
func (e *Engine) Close() {
	e.Stop()
	for _, w := range slices.Clone(e.worlds) {
		e.DestroyWorld(w)
	}
}

// Pause stops world updates in Run; Step still advances when called directly
func (e *Engine) Pause()       { e.paused.Store(true) }
func (e *Engine) Resume()      { e.paused.Store(false) }
func (e *Engine) Paused() bool { return e.paused.Load() }

// --- Worlds ---

// CreateWorld creates a world with one peer per engine system
func (e *Engine) CreateWorld(name string) (*world.World, error) {
	if _, ok := e.World(name); ok {
		return nil, fmt.Errorf("%q: %w", name, ErrWorldExists)
	}
	w := world.New(name, world.WithLogger(e.logger))
	w.SetSpeakerGain(e.cfg.Audio.Gain)
	w.SetPeerGraphic(e.render.CreateWorld(w))
	w.SetPeerPhysics(e.physics.CreateWorld(w))
	w.SetPeerAudio(e.audio.CreateWorld(w))
	w.SetPeerNetwork(e.network.CreateWorld(w))

	if err := e.ai.RegisterWorld(w); err != nil {
		w.Dispose()
		return nil, err
	}
	e.worlds = append(e.worlds, w)
	e.worldCount.Set(float64(len(e.worlds)))
	e.logger.Info("world created", "world", name)
	return w, nil
}

// DestroyWorld drops the peers of w and clears it; unknown worlds are ignored
func (e *Engine) DestroyWorld(w *world.World) {
	i := slices.Index(e.worlds, w)
	if i == -1 {
		return
	}
	e.ai.UnregisterWorld(w)
	w.Dispose()
	e.worlds = slices.Delete(e.worlds, i, i+1)
	e.worldCount.Set(float64(len(e.worlds)))
	e.logger.Info("world destroyed", "world", w.Name())
}

func (e *Engine) World(name string) (*world.World, bool) {
	for _, w := range e.worlds {
		if w.Name() == name {
			return w, true
		}
	}
	return nil, false
}

func (e *Engine) Worlds() []*world.World { return slices.Clone(e.worlds) }

// --- Frame ---

// Step runs the physics at the configured rate, then updates every world
// A physics rate of zero steps the physics once with the full elapsed time
func (e *Engine) Step(elapsed time.Duration) {
	if e.physicsInterval > 0 {
		e.physicsDebt += elapsed
		steps := 0
		for e.physicsDebt >= e.physicsInterval && steps < maxPhysicsSteps {
			e.processPhysics(e.physicsInterval)
			e.physicsDebt -= e.physicsInterval
			steps++
		}
		if e.physicsDebt >= e.physicsInterval {
			e.droppedSteps.Add(int64(e.physicsDebt / e.physicsInterval))
			e.physicsDebt %= e.physicsInterval
		}
	} else if elapsed > 0 {
		e.processPhysics(elapsed)
	}

	for _, w := range e.worlds {
		w.Update(elapsed)
	}
	e.frames.Add(1)
}

func (e *Engine) processPhysics(elapsed time.Duration) {
	for _, w := range e.worlds {
		w.ProcessPhysics(elapsed)
	}
	e.physicsSteps.Add(1)
}
