// Package render draws a top-down terminal view of a world with tcell
package render

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/LordOfDragons/dragengine-sub060/shape"
	"github.com/LordOfDragons/dragengine-sub060/status"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

const (
	colliderGlyph = '@'
	colliderColor = 0xffffff
	statusColor   = 0xa0a0a0
)

type Options struct {
	// Screen nil renders into a Width x Height buffer only
	Screen tcell.Screen
	Width  int
	Height int
	// Scale is world units per cell; zero fits the world size into the screen
	Scale      float64
	Center     vmath.DVector
	StatusLine bool
	// HideColliders draws debug drawers only
	HideColliders bool
	Logger     *slog.Logger
	Metrics    *status.Registry
}

// Module creates graphic world peers drawing onto one screen
type Module struct {
	opts   Options
	logger *slog.Logger

	frames *atomic.Int64
	cells  *status.Gauge
}

func New(opts Options) *Module {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry()
	}
	return &Module{
		opts:   opts,
		logger: opts.Logger.With("module", "render"),
		frames: opts.Metrics.Counter("render.frames"),
		cells:  opts.Metrics.Gauge("render.cells"),
	}
}

// CreateWorld returns the peer drawing w
func (m *Module) CreateWorld(w *world.World) world.GraphicPeer {
	p := &worldPeer{module: m, world: w, buffer: NewBuffer(0, 0)}
	p.view.Center = m.opts.Center
	p.SizeChanged()
	return p
}

type worldPeer struct {
	world.BaseGraphicPeer

	module *Module
	world  *world.World
	buffer *Buffer
	view   View
	drawn  int
}

func (p *worldPeer) Buffer() *Buffer { return p.buffer }
func (p *worldPeer) View() View      { return p.view }

// Update composes the frame and flushes it to the screen
func (p *worldPeer) Update(time.Duration) {
	p.resize()
	p.buffer.Clear()
	p.drawn = 0

	for d := range p.world.DebugDrawers().All() {
		if d.Visible {
			p.drawShapes(d.Position, d.Shapes, d.Glyph, d.Color)
		}
	}
	if !p.module.opts.HideColliders {
		for c := range p.world.Colliders().All() {
			p.drawShapes(c.Position(), c.Shapes(), colliderGlyph, colliderColor)
		}
	}
	if p.module.opts.StatusLine {
		p.buffer.Text(0, 0, fmt.Sprintf("%s colliders:%d drawers:%d",
			p.world.Name(), p.world.ColliderCount(), p.world.DebugDrawerCount()), statusColor)
	}

	p.module.frames.Add(1)
	p.module.cells.Set(float64(p.drawn))
	if screen := p.module.opts.Screen; screen != nil {
		p.buffer.Flush(screen, tcell.StyleDefault)
	}
}

// resize follows the screen size and refits the scale when it is automatic
func (p *worldPeer) resize() {
	w, h := p.module.opts.Width, p.module.opts.Height
	if screen := p.module.opts.Screen; screen != nil {
		w, h = screen.Size()
	}
	if w == p.buffer.Width() && h == p.buffer.Height() {
		return
	}
	p.buffer.Resize(w, h)
	p.view.Width, p.view.Height = w, h
	p.fit()
}

func (p *worldPeer) fit() {
	if p.module.opts.Scale > 0 {
		p.view.Scale = p.module.opts.Scale
		return
	}
	p.view.Fit(p.world.Size())
}

// drawShapes fills the cells whose centers lie inside a shape at its mid height
// The cell holding the shape center is always marked so small shapes stay visible
func (p *worldPeer) drawShapes(origin vmath.DVector, shapes *shape.List, glyph rune, color uint32) {
	for i := range shapes.Count() {
		s := shapes.At(i)
		lo, hi := s.Bounds()
		mid := vmath.VScale(vmath.VAdd(lo, hi), 0.5)

		x0, y0, _ := p.view.ToCell(vmath.DVAdd(origin, lo.ToDVector()))
		x1, y1, _ := p.view.ToCell(vmath.DVAdd(origin, hi.ToDVector()))
		for y := max(y0, 0); y <= min(y1, p.view.Height-1); y++ {
			for x := max(x0, 0); x <= min(x1, p.view.Width-1); x++ {
				wx, wz := p.view.ToWorld(x, y)
				local := vmath.Vector{X: float32(wx - origin.X), Y: mid.Y, Z: float32(wz - origin.Z)}
				if s.Contains(local) {
					p.plot(x, y, glyph, color)
				}
			}
		}
		if x, y, ok := p.view.ToCell(vmath.DVAdd(origin, mid.ToDVector())); ok {
			p.plot(x, y, glyph, color)
		}
	}
}

func (p *worldPeer) plot(x, y int, glyph rune, color uint32) {
	if p.buffer.At(x, y).Rune == 0 {
		p.drawn++
	}
	p.buffer.Set(x, y, glyph, color)
}

func (p *worldPeer) SizeChanged() {
	p.fit()
}

func (p *worldPeer) Dispose() {
	if screen := p.module.opts.Screen; screen != nil {
		screen.Clear()
		screen.Show()
	}
	p.module.logger.Debug("graphic peer disposed", "world", p.world.Name())
}
