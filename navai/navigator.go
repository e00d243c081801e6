package navai

import (
	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

type costPair struct {
	fixCost, costPerMeter float32
}

// navigatorPeer answers the queries of one navigator
//
// Each change signal invalidates only the state it affects: the cost table
// on cost and type changes, the graph selection on layer and space type
// changes, and the outside distance on parameter changes.
type navigatorPeer struct {
	module    *Module
	navigator *navigation.Navigator

	key        layerKey
	maxOutside float32
	costs      map[int]costPair // filled lazily, nil when stale

	// developer mode visualization of the last found path
	drawer *world.DebugDrawer
}

var _ navigation.NavigatorPeer = (*navigatorPeer)(nil)

func newNavigatorPeer(m *Module, n *navigation.Navigator) *navigatorPeer {
	return &navigatorPeer{
		module:     m,
		navigator:  n,
		key:        layerKey{layer: n.Layer(), spaceType: n.SpaceType()},
		maxOutside: n.MaxOutsideDistance(),
	}
}

// --- Signals ---

func (p *navigatorPeer) LayerChanged()      { p.key.layer = p.navigator.Layer() }
func (p *navigatorPeer) SpaceTypeChanged()  { p.key.spaceType = p.navigator.SpaceType() }
func (p *navigatorPeer) CostsChanged()      { p.costs = nil }
func (p *navigatorPeer) TypesChanged()      { p.costs = nil }
func (p *navigatorPeer) ParametersChanged() { p.maxOutside = p.navigator.MaxOutsideDistance() }

func (p *navigatorPeer) Dispose() {
	p.removeDrawer()
	p.costs = nil
}

func (p *navigatorPeer) cost(tag int) (float32, float32) {
	if p.costs == nil {
		p.costs = make(map[int]costPair, p.navigator.TypeCount()+1)
	}
	c, ok := p.costs[tag]
	if !ok {
		c.fixCost, c.costPerMeter = p.navigator.CostFor(tag)
		p.costs[tag] = c
	}
	return c.fixCost, c.costPerMeter
}

// graph returns the current graph of the navigator layer, nil outside a navai world
func (p *navigatorPeer) graph() *graph {
	wp := peerOf(p.navigator.ParentWorld())
	if wp == nil {
		return nil
	}
	return wp.graph(p.key)
}

// --- Queries ---

func (p *navigatorPeer) FindPath(path *navigation.Path, start, goal vmath.DVector) {
	g := p.graph()
	if g == nil {
		return
	}
	m := p.module
	m.searches.Add(1)

	points, expanded, ok := g.findPath(start, goal, p.maxOutside, p.cost, p.navigator.BlockingCost())
	m.nodesExpanded.Add(int64(expanded))
	if !ok {
		m.searchesFailed.Add(1)
		m.logger.Debug("no path found", "layer", p.key.layer, "type", p.key.spaceType, "expanded", expanded)
		p.showPath(nil)
		return
	}
	for _, pt := range points {
		path.Add(pt)
	}
	p.showPath(path)
}

func (p *navigatorPeer) NearestPoint(point vmath.DVector, radius float32) (vmath.DVector, int, bool) {
	g := p.graph()
	if g == nil {
		return vmath.DVector{}, 0, false
	}
	return g.nearestPoint(point, radius)
}

func (p *navigatorPeer) LineCollide(origin vmath.DVector, direction vmath.Vector) (float32, bool) {
	g := p.graph()
	if g == nil {
		return noHitDistance, false
	}
	return g.lineCollide(origin, direction)
}

func (p *navigatorPeer) PathCollideRay(path *navigation.Path, collider navigation.Collider) (int, float32, bool) {
	return collidePath(path, collider, collider.Shapes(), wholePath())
}

func (p *navigatorPeer) PathCollideRayRange(path *navigation.Path, collider navigation.Collider, startPosition vmath.DVector, nextPoint int, maxDistance float32) (int, float32, bool) {
	return collidePath(path, collider, collider.Shapes(), pathRange(startPosition, nextPoint, maxDistance))
}

func (p *navigatorPeer) PathCollideShape(path *navigation.Path, collider, agent navigation.Collider) (int, float32, bool) {
	return collidePath(path, collider, agentShapes(collider, agent), wholePath())
}

func (p *navigatorPeer) PathCollideShapeRange(path *navigation.Path, collider, agent navigation.Collider, startPosition vmath.DVector, nextPoint int, maxDistance float32) (int, float32, bool) {
	return collidePath(path, collider, agentShapes(collider, agent), pathRange(startPosition, nextPoint, maxDistance))
}
