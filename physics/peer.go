// Package physics moves world colliders under gravity and keeps them inside the world
package physics

import (
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/LordOfDragons/dragengine-sub060/status"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// DefaultRestitution is the bounce factor for terrain and body contacts
const DefaultRestitution = 0.5

type Options struct {
	// Restitution zero selects DefaultRestitution
	Restitution float32
	// MaxStep splits longer steps into several integrations
	MaxStep time.Duration
	Logger  *slog.Logger
	Metrics *status.Registry
}

// Module creates physics world peers sharing one configuration
type Module struct {
	opts   Options
	logger *slog.Logger

	steps      *atomic.Int64
	contacts   *atomic.Int64
	collisions *atomic.Int64
	bodies     *status.Gauge
}

func New(opts Options) *Module {
	if opts.Restitution <= 0 {
		opts.Restitution = DefaultRestitution
	}
	if opts.MaxStep <= 0 {
		opts.MaxStep = 50 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry()
	}
	return &Module{
		opts:       opts,
		logger:     opts.Logger.With("module", "physics"),
		steps:      opts.Metrics.Counter("physics.steps"),
		contacts:   opts.Metrics.Counter("physics.terrain_contacts"),
		collisions: opts.Metrics.Counter("physics.collisions"),
		bodies:     opts.Metrics.Gauge("physics.bodies"),
	}
}

// CreateWorld returns the peer simulating w
func (m *Module) CreateWorld(w *world.World) world.PhysicsPeer {
	p := &worldPeer{module: m, world: w}
	p.SizeChanged()
	p.PhysicsChanged()
	p.HeightTerrainChanged()
	for c := range w.Colliders().All() {
		p.bodies = append(p.bodies, c)
	}
	m.bodies.Add(float64(len(p.bodies)))
	return p
}

type worldPeer struct {
	world.BasePhysicsPeer

	module  *Module
	world   *world.World
	bodies  []*world.Collider
	half    vmath.DVector
	gravity vmath.Vector
	terrain *world.HeightTerrain
}

// ProcessPhysics integrates every body, then resolves terrain, bounds and body contacts
func (p *worldPeer) ProcessPhysics(elapsed time.Duration) {
	for elapsed > 0 {
		step := min(elapsed, p.module.opts.MaxStep)
		p.step(float32(step.Seconds()))
		elapsed -= step
	}
}

func (p *worldPeer) step(dt float32) {
	p.module.steps.Add(1)
	rest := p.module.opts.Restitution

	for _, c := range p.bodies {
		var accel vmath.Vector
		if c.GravityEnabled {
			accel = p.gravity
		}
		Integrate(c, accel, dt)
		if RestOnTerrain(c, p.terrain, rest) {
			p.module.contacts.Add(1)
		}
		ReflectBounds(c, p.half)
	}

	for i, a := range p.bodies {
		for _, b := range p.bodies[i+1:] {
			if Collide(a, b, rest) {
				p.module.collisions.Add(1)
			}
		}
	}
}

func (p *worldPeer) SizeChanged() {
	p.half = vmath.DVScale(p.world.Size(), 0.5)
}

func (p *worldPeer) PhysicsChanged() {
	p.gravity = p.world.Gravity()
}

func (p *worldPeer) HeightTerrainChanged() {
	p.terrain = p.world.HeightTerrain()
}

func (p *worldPeer) ColliderAdded(c *world.Collider) {
	p.bodies = append(p.bodies, c)
	p.module.bodies.Add(1)
}

func (p *worldPeer) ColliderRemoved(c *world.Collider) {
	if i := slices.Index(p.bodies, c); i >= 0 {
		p.bodies = slices.Delete(p.bodies, i, i+1)
		p.module.bodies.Add(-1)
	}
}

func (p *worldPeer) AllCollidersRemoved() {
	p.module.bodies.Add(-float64(len(p.bodies)))
	p.bodies = nil
}

func (p *worldPeer) Dispose() {
	p.AllCollidersRemoved()
	p.terrain = nil
	p.module.logger.Debug("physics peer disposed", "world", p.world.Name())
}
