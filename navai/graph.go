package navai

import (
	"log/slog"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// noTag marks a grid node reached without traversing an edge
const noTag = -1

// node is a searchable location: a grid vertex or a mesh face
type node struct {
	pos   vmath.DVector
	space *navigation.Space
	index int // vertex or face index inside space
	tag   int // face type for meshes, noTag for grids
	// mesh face outline in world coordinates
	poly  []vmath.Vector
	links []link
}

// link leads from one node to a neighbour
type link struct {
	to  int
	tag int
	// waypoint is the point a path passes: the neighbour vertex or the shared portal midpoint
	waypoint vmath.DVector
}

// segment is a grid edge or an open mesh edge in world coordinates
type segment struct {
	a, b vmath.DVector
	tag  int
}

// graph holds all nodes of one layer and space type
type graph struct {
	key   layerKey
	nodes []node
	// grid edges between navigable vertices
	edges []segment
	// mesh edges without a neighbour face
	boundary []segment
	// node positions removed by blockers
	blocked []vmath.DVector
}

// --- Blocking ---

// blocking collects everything that may remove nodes from a space
type blocking struct {
	blockers []*navigation.Blocker
	spaces   []*navigation.Space
}

func (b *blocking) covers(s *navigation.Space, p vmath.DVector) bool {
	for _, bl := range b.blockers {
		if navigation.BlockerAffects(bl, s) && bl.Contains(p) {
			return true
		}
	}
	for _, other := range b.spaces {
		if navigation.SpaceBlockerAffects(other, s) && other.BlockerShapeList().Contains(other.Transform().ToLocal(p)) {
			return true
		}
	}
	return false
}

// --- Building ---

// buildGraph collects the spaces matching key into one graph
// Spaces failing Verify are skipped with a warning
func buildGraph(key layerKey, spaces []*navigation.Space, blockers []*navigation.Blocker, logger *slog.Logger) *graph {
	g := &graph{key: key}
	blk := &blocking{blockers: blockers, spaces: spaces}
	var open []openEdge

	for _, s := range spaces {
		if s.Layer() != key.layer || s.Type() != key.spaceType {
			continue
		}
		if !s.Verify() {
			logger.Warn("navigation space skipped, invalid layout", "layer", key.layer, "type", key.spaceType)
			continue
		}
		switch key.spaceType {
		case navigation.SpaceGrid:
			g.addGrid(s, blk)
		case navigation.SpaceMesh:
			open = append(open, g.addMesh(s, blk)...)
		}
	}
	if key.spaceType == navigation.SpaceMesh {
		g.linkSpaces(open)
	}
	return g
}

func (g *graph) link(from, to, tag int, waypoint vmath.DVector) {
	g.nodes[from].links = append(g.nodes[from].links, link{to: to, tag: tag, waypoint: waypoint})
}

func (g *graph) addGrid(s *navigation.Space, blk *blocking) {
	tf := s.Transform()
	ids := make([]int, s.VertexCount())
	for i, v := range s.Vertices() {
		p := tf.ToWorld(v)
		if blk.covers(s, p) {
			ids[i] = -1
			g.blocked = append(g.blocked, p)
			continue
		}
		ids[i] = len(g.nodes)
		g.nodes = append(g.nodes, node{pos: p, space: s, index: i, tag: noTag})
	}

	for _, e := range s.Edges() {
		a, b := ids[e.Vertex1], ids[e.Vertex2]
		if a < 0 || b < 0 || a == b {
			continue
		}
		pa, pb := g.nodes[a].pos, g.nodes[b].pos
		g.link(a, b, int(e.Type1), pb)
		g.link(b, a, int(e.Type2), pa)
		g.edges = append(g.edges, segment{a: pa, b: pb, tag: int(e.Type1)})
	}
}

// openEdge is a face edge without a neighbour in its own space
type openEdge struct {
	node   int
	a, b   vmath.DVector
	snap   float64
	linked bool
}

type edgeKey struct{ lo, hi uint16 }

func newEdgeKey(a, b uint16) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// addMesh adds one node per unblocked face and links faces sharing a vertex pair
func (g *graph) addMesh(s *navigation.Space, blk *blocking) []openEdge {
	tf := s.Transform()
	verts := make([]vmath.DVector, s.VertexCount())
	for i, v := range s.Vertices() {
		verts[i] = tf.ToWorld(v)
	}

	type faceEdge struct {
		node int
		key  edgeKey
		a, b uint16
	}
	var pending []faceEdge
	owners := make(map[edgeKey][]int)

	corners := s.Corners()
	first := 0
	for fi, f := range s.Faces() {
		count := int(f.CornerCount)
		cs := corners[first : first+count]
		first += count

		poly := make([]vmath.Vector, count)
		for k, c := range cs {
			poly[k] = verts[c.Vertex].ToVector()
		}
		center := vmath.Centroid(poly).ToDVector()
		if blk.covers(s, center) {
			g.blocked = append(g.blocked, center)
			continue
		}

		id := len(g.nodes)
		g.nodes = append(g.nodes, node{pos: center, space: s, index: fi, tag: int(f.Type), poly: poly})
		for k := range cs {
			a, b := cs[k].Vertex, cs[(k+1)%count].Vertex
			key := newEdgeKey(a, b)
			owners[key] = append(owners[key], id)
			pending = append(pending, faceEdge{node: id, key: key, a: a, b: b})
		}
	}

	var open []openEdge
	for _, fe := range pending {
		pa, pb := verts[fe.a], verts[fe.b]
		shared := false
		for _, other := range owners[fe.key] {
			if other == fe.node {
				continue
			}
			shared = true
			g.link(fe.node, other, g.nodes[other].tag, vmath.DVLerp(pa, pb, 0.5))
		}
		if !shared {
			open = append(open, openEdge{node: fe.node, a: pa, b: pb, snap: float64(s.SnapDistance())})
		}
	}
	return open
}

// linkSpaces joins open edges of different spaces whose end points coincide within the snap distance
// Edges left unjoined become the navigable boundary
func (g *graph) linkSpaces(open []openEdge) {
	for i := range open {
		for j := i + 1; j < len(open); j++ {
			ei, ej := &open[i], &open[j]
			if g.nodes[ei.node].space == g.nodes[ej.node].space {
				continue
			}
			snap := max(ei.snap, ej.snap)
			near := func(p, q vmath.DVector) bool { return vmath.DVDistance(p, q) <= snap }
			if !(near(ei.a, ej.a) && near(ei.b, ej.b)) && !(near(ei.a, ej.b) && near(ei.b, ej.a)) {
				continue
			}
			portal := vmath.DVLerp(ei.a, ei.b, 0.5)
			g.link(ei.node, ej.node, g.nodes[ej.node].tag, portal)
			g.link(ej.node, ei.node, g.nodes[ei.node].tag, portal)
			ei.linked, ej.linked = true, true
		}
	}
	for _, e := range open {
		if !e.linked {
			g.boundary = append(g.boundary, segment{a: e.a, b: e.b, tag: g.nodes[e.node].tag})
		}
	}
}

// --- Lookup ---

// nearestNode returns the node closest to p, the closest point on it, and the distance
// Returns -1 for an empty graph
func (g *graph) nearestNode(p vmath.DVector) (int, vmath.DVector, float64) {
	best, bestDist := -1, 0.0
	var bestPoint vmath.DVector
	for i := range g.nodes {
		point := g.closestOn(i, p)
		d := vmath.DVDistance(p, point)
		if best < 0 || d < bestDist {
			best, bestDist, bestPoint = i, d, point
		}
	}
	return best, bestPoint, bestDist
}

// closestOn returns the closest point of node i to p
func (g *graph) closestOn(i int, p vmath.DVector) vmath.DVector {
	n := &g.nodes[i]
	if n.poly == nil {
		return n.pos
	}
	return vmath.ClosestPointOnPolygonXZ(p.ToVector(), n.poly).ToDVector()
}

// faceAt returns the node whose outline contains p in XZ, or -1
func (g *graph) faceAt(p vmath.DVector) int {
	flat := p.ToVector()
	for i := range g.nodes {
		if g.nodes[i].poly != nil && vmath.PointInPolygonXZ(flat, g.nodes[i].poly) {
			return i
		}
	}
	return -1
}
