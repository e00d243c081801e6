package navai

import (
	"fmt"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/shape"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// Developer mode drawer look
const (
	debugNodeRadius = 0.1
	debugPathRadius = 0.15

	colorNode    = 0x40c040
	colorBlocked = 0xc04040
	colorPath    = 0x4080ff
)

// graphDrawers shows the nodes of a graph and the positions removed by blockers
type graphDrawers struct {
	nodes   *world.DebugDrawer
	blocked *world.DebugDrawer
}

func (d *graphDrawers) remove(w *world.World) {
	removeDrawer(w, d.nodes)
	removeDrawer(w, d.blocked)
}

func (wp *worldPeer) showGraph(g *graph) {
	d, ok := wp.drawers[g.key]
	if !ok {
		name := fmt.Sprintf("navai:%d:%s", g.key.layer, g.key.spaceType)
		d = &graphDrawers{
			nodes:   newDrawer(name+":nodes", '.', colorNode),
			blocked: newDrawer(name+":blocked", 'x', colorBlocked),
		}
		wp.drawers[g.key] = d
	}

	nodes := shape.NewList()
	for _, n := range g.nodes {
		nodes.Add(shape.Sphere{Center: n.pos.ToVector(), Radius: debugNodeRadius})
	}
	blocked := shape.NewList()
	for _, p := range g.blocked {
		blocked.Add(shape.Sphere{Center: p.ToVector(), Radius: debugNodeRadius})
	}
	showDrawer(wp.world, d.nodes, nodes)
	showDrawer(wp.world, d.blocked, blocked)
}

// showPath replaces the path drawer content; nil hides it
func (p *navigatorPeer) showPath(path *navigation.Path) {
	if !p.module.opts.DeveloperMode {
		return
	}
	w, ok := p.navigator.ParentWorld().(*world.World)
	if !ok {
		return
	}
	if p.drawer == nil {
		p.drawer = newDrawer(fmt.Sprintf("navai:path:%p", p.navigator), 'o', colorPath)
	}
	if path == nil {
		p.drawer.Visible = false
		p.drawer.Shapes = shape.NewList()
	} else {
		p.drawer.Visible = true
		p.drawer.Shapes = path.DebugShapes(debugPathRadius)
	}
	if owner, ok := p.drawer.ParentWorld().(*world.World); ok && owner != w {
		// the navigator moved; the drawer follows it
		removeDrawer(owner, p.drawer)
	}
	if !p.drawer.Linked() {
		if err := w.AddDebugDrawer(p.drawer); err != nil {
			p.module.logger.Warn("path drawer not added", "error", err)
		}
	}
}

func (p *navigatorPeer) removeDrawer() {
	if p.drawer == nil {
		return
	}
	if w, ok := p.drawer.ParentWorld().(*world.World); ok {
		removeDrawer(w, p.drawer)
	}
	p.drawer = nil
}

func newDrawer(name string, glyph rune, color uint32) *world.DebugDrawer {
	d := world.NewDebugDrawer(name)
	d.Position = vmath.DVector{}
	d.Glyph = glyph
	d.Color = color
	return d
}

// showDrawer sets the shapes and puts the drawer back into w if it was removed
func showDrawer(w *world.World, d *world.DebugDrawer, shapes *shape.List) {
	d.Shapes = shapes
	d.Visible = shapes.Count() > 0
	if !d.Linked() {
		_ = w.AddDebugDrawer(d)
	}
}

func removeDrawer(w *world.World, d *world.DebugDrawer) {
	if d != nil && d.ParentWorld() == navigation.Container(w) {
		_ = w.RemoveDebugDrawer(d)
	}
}
