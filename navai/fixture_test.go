package navai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LordOfDragons/dragengine-sub060/ai"
	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/shape"
	"github.com/LordOfDragons/dragengine-sub060/status"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// fixture is a running AI system with navai active and one registered world
type fixture struct {
	world   *world.World
	system  *ai.System
	module  *Module
	metrics *status.Registry
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	metrics := status.NewRegistry()
	opts.Metrics = metrics
	m := New(opts)

	sys := ai.NewSystem(ai.Options{Metrics: metrics})
	require.NoError(t, sys.SetActiveModule(m))
	require.NoError(t, sys.Start())

	w := world.New("nav")
	require.NoError(t, sys.RegisterWorld(w))
	t.Cleanup(func() { _ = sys.Stop() })

	return &fixture{world: w, system: sys, module: m, metrics: metrics}
}

func (f *fixture) counter(name string) int64 {
	return f.metrics.Counter(name).Load()
}

func (f *fixture) addSpace(t *testing.T, s *navigation.Space) *navigation.Space {
	t.Helper()
	require.NoError(t, f.world.AddNavigationSpace(s))
	return s
}

func (f *fixture) addBlocker(t *testing.T, b *navigation.Blocker) *navigation.Blocker {
	t.Helper()
	require.NoError(t, f.world.AddNavigationBlocker(b))
	return b
}

func (f *fixture) navigator(t *testing.T, spaceType navigation.SpaceType) *navigation.Navigator {
	t.Helper()
	n := navigation.NewNavigator()
	n.SetSpaceType(spaceType)
	require.NoError(t, f.world.AddNavigator(n))
	return n
}

// --- Geometry builders ---

// gridSpace builds a cols x rows grid with unit spacing in XZ and 4-neighbour edges
// tag picks the edge type from the two vertex coordinates, nil means type 0
func gridSpace(t *testing.T, cols, rows int, tag func(x0, z0, x1, z1 int) uint16) *navigation.Space {
	t.Helper()
	s := navigation.NewSpace()
	s.SetType(navigation.SpaceGrid)

	require.NoError(t, s.SetVertexCount(cols*rows))
	index := func(x, z int) uint16 { return uint16(z*cols + x) }
	for z := 0; z < rows; z++ {
		for x := 0; x < cols; x++ {
			require.NoError(t, s.SetVertexAt(int(index(x, z)), vmath.Vector{X: float32(x), Z: float32(z)}))
		}
	}

	var edges []navigation.Edge
	edge := func(x0, z0, x1, z1 int) {
		var tg uint16
		if tag != nil {
			tg = tag(x0, z0, x1, z1)
		}
		edges = append(edges, navigation.Edge{Vertex1: index(x0, z0), Vertex2: index(x1, z1), Type1: tg, Type2: tg})
	}
	for z := 0; z < rows; z++ {
		for x := 0; x < cols; x++ {
			if x+1 < cols {
				edge(x, z, x+1, z)
			}
			if z+1 < rows {
				edge(x, z, x, z+1)
			}
		}
	}
	require.NoError(t, s.SetEdgeCount(len(edges)))
	for i, e := range edges {
		require.NoError(t, s.SetEdgeAt(i, e))
	}
	s.NotifyLayoutChanged()
	return s
}

type meshFace struct {
	corners []uint16
	tag     uint16
}

// meshSpace builds a mesh space from vertices and faces given as vertex index loops
func meshSpace(t *testing.T, vertices []vmath.Vector, faces ...meshFace) *navigation.Space {
	t.Helper()
	s := navigation.NewSpace()
	s.SetType(navigation.SpaceMesh)

	require.NoError(t, s.SetVertexCount(len(vertices)))
	for i, v := range vertices {
		require.NoError(t, s.SetVertexAt(i, v))
	}

	var corners []navigation.Corner
	require.NoError(t, s.SetFaceCount(len(faces)))
	for i, f := range faces {
		for _, v := range f.corners {
			corners = append(corners, navigation.Corner{Vertex: v})
		}
		require.NoError(t, s.SetFaceAt(i, navigation.Face{CornerCount: uint16(len(f.corners)), Type: f.tag}))
	}
	require.NoError(t, s.SetCornerCount(len(corners)))
	for i, c := range corners {
		require.NoError(t, s.SetCornerAt(i, c))
	}
	s.NotifyLayoutChanged()
	return s
}

// unitSquare is one face covering x,z in [0,1]
func unitSquare(t *testing.T) *navigation.Space {
	return meshSpace(t, []vmath.Vector{{X: 0}, {X: 1}, {X: 1, Z: 1}, {Z: 1}}, meshFace{corners: []uint16{0, 1, 2, 3}})
}

// twoSquares has faces [0,1] and [1,2] in x sharing the edge at x=1
func twoSquares(t *testing.T, leftTag, rightTag uint16) *navigation.Space {
	return meshSpace(t,
		[]vmath.Vector{{X: 0}, {X: 1}, {X: 1, Z: 1}, {Z: 1}, {X: 2}, {X: 2, Z: 1}},
		meshFace{corners: []uint16{0, 1, 2, 3}, tag: leftTag},
		meshFace{corners: []uint16{1, 4, 5, 2}, tag: rightTag},
	)
}

// boxBlocker covers a cube of half size around position
func boxBlocker(spaceType navigation.SpaceType, position vmath.DVector, half float32) *navigation.Blocker {
	b := navigation.NewBlocker()
	b.SetSpaceType(spaceType)
	b.SetPosition(position)
	b.SetShapeList(shape.NewList(shape.Box{HalfExtents: vmath.Vector{X: half, Y: half, Z: half}}))
	return b
}

func points(p *navigation.Path) []vmath.DVector {
	var out []vmath.DVector
	for _, pt := range p.Points() {
		out = append(out, pt)
	}
	return out
}

func dv(x, y, z float64) vmath.DVector { return vmath.DVector{X: x, Y: y, Z: z} }
