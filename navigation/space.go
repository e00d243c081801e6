package navigation

import (
	"fmt"

	"github.com/LordOfDragons/dragengine-sub060/shape"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// Space is a static navigation graph description placed in a world layer
//
// Geometry edits are batched: Set*Count and Set*At never notify the peer,
// callers finish their edits and then call NotifyLayoutChanged once.
// Attribute setters notify immediately and only when the value changes.
type Space struct {
	Link

	spaceType   SpaceType
	layer       int
	position    vmath.DVector
	orientation vmath.Quaternion

	vertices []vmath.Vector
	edges    []Edge
	corners  []Corner
	faces    []Face
	walls    []Wall
	rooms    []Room

	snapDistance float32
	snapAngle    float32 // radians

	blockerShapes    *shape.List
	blockingPriority int

	peerAI SpacePeer
}

// NewSpace returns an empty grid space on layer 0
func NewSpace() *Space {
	return &Space{
		spaceType:     SpaceGrid,
		orientation:   vmath.QuatIdentity(),
		snapDistance:  0.001,
		snapAngle:     vmath.DegToRad(180),
		blockerShapes: shape.NewList(),
	}
}

// --- Attributes ---

func (s *Space) Type() SpaceType { return s.spaceType }

func (s *Space) SetType(t SpaceType) {
	setIfChanged(&s.spaceType, t, exact[SpaceType], s.notify(SpacePeer.TypeChanged))
}

func (s *Space) Layer() int { return s.layer }

func (s *Space) SetLayer(layer int) {
	setIfChanged(&s.layer, layer, exact[int], s.notify(SpacePeer.LayerChanged))
}

func (s *Space) Position() vmath.DVector { return s.position }

func (s *Space) SetPosition(p vmath.DVector) {
	setIfChanged(&s.position, p, dvEqual, s.notify(SpacePeer.PositionChanged))
}

func (s *Space) Orientation() vmath.Quaternion { return s.orientation }

func (s *Space) SetOrientation(q vmath.Quaternion) {
	setIfChanged(&s.orientation, q, quatEqual, s.notify(SpacePeer.OrientationChanged))
}

// Transform places local geometry in the world
func (s *Space) Transform() vmath.Transform {
	return vmath.NewTransform(s.position, s.orientation)
}

func (s *Space) SnapDistance() float32 { return s.snapDistance }

func (s *Space) SetSnapDistance(d float32) {
	setIfChanged(&s.snapDistance, max(d, 0), floatEqual, s.notify(SpacePeer.SnappingChanged))
}

// SnapAngle is in radians
func (s *Space) SnapAngle() float32 { return s.snapAngle }

func (s *Space) SetSnapAngle(rad float32) {
	setIfChanged(&s.snapAngle, max(rad, 0), floatEqual, s.notify(SpacePeer.SnappingChanged))
}

func (s *Space) BlockingPriority() int { return s.blockingPriority }

func (s *Space) SetBlockingPriority(p int) {
	setIfChanged(&s.blockingPriority, p, exact[int], s.notify(SpacePeer.BlockingPriorityChanged))
}

// BlockerShapeList blocks spaces of equal or lower priority on the same layer
func (s *Space) BlockerShapeList() *shape.List { return s.blockerShapes }

// SetBlockerShapeList stores a copy; call NotifyBlockerShapeListChanged afterwards
func (s *Space) SetBlockerShapeList(l *shape.List) {
	s.blockerShapes = l.Clone()
}

func (s *Space) NotifyBlockerShapeListChanged() {
	if s.peerAI != nil {
		s.peerAI.BlockerShapeChanged()
	}
}

// --- Geometry ---

func (s *Space) VertexCount() int { return len(s.vertices) }
func (s *Space) EdgeCount() int   { return len(s.edges) }
func (s *Space) CornerCount() int { return len(s.corners) }
func (s *Space) FaceCount() int   { return len(s.faces) }
func (s *Space) WallCount() int   { return len(s.walls) }
func (s *Space) RoomCount() int   { return len(s.rooms) }

func (s *Space) SetVertexCount(n int) error { return resize(&s.vertices, n, "vertex") }
func (s *Space) SetEdgeCount(n int) error   { return resize(&s.edges, n, "edge") }
func (s *Space) SetCornerCount(n int) error { return resize(&s.corners, n, "corner") }
func (s *Space) SetFaceCount(n int) error   { return resize(&s.faces, n, "face") }
func (s *Space) SetWallCount(n int) error   { return resize(&s.walls, n, "wall") }
func (s *Space) SetRoomCount(n int) error   { return resize(&s.rooms, n, "room") }

func (s *Space) VertexAt(i int) (vmath.Vector, error) { return at(s.vertices, i, "vertex") }
func (s *Space) EdgeAt(i int) (Edge, error)           { return at(s.edges, i, "edge") }
func (s *Space) CornerAt(i int) (Corner, error)       { return at(s.corners, i, "corner") }
func (s *Space) FaceAt(i int) (Face, error)           { return at(s.faces, i, "face") }
func (s *Space) WallAt(i int) (Wall, error)           { return at(s.walls, i, "wall") }
func (s *Space) RoomAt(i int) (Room, error)           { return at(s.rooms, i, "room") }

func (s *Space) SetVertexAt(i int, v vmath.Vector) error { return setAt(s.vertices, i, v, "vertex") }
func (s *Space) SetEdgeAt(i int, e Edge) error           { return setAt(s.edges, i, e, "edge") }
func (s *Space) SetCornerAt(i int, c Corner) error       { return setAt(s.corners, i, c, "corner") }
func (s *Space) SetFaceAt(i int, f Face) error           { return setAt(s.faces, i, f, "face") }
func (s *Space) SetWallAt(i int, w Wall) error           { return setAt(s.walls, i, w, "wall") }
func (s *Space) SetRoomAt(i int, r Room) error           { return setAt(s.rooms, i, r, "room") }

// Read-only views for peers; valid until the next resize
func (s *Space) Vertices() []vmath.Vector { return s.vertices }
func (s *Space) Edges() []Edge            { return s.edges }
func (s *Space) Corners() []Corner        { return s.corners }
func (s *Space) Faces() []Face            { return s.faces }
func (s *Space) Walls() []Wall            { return s.walls }
func (s *Space) Rooms() []Room            { return s.rooms }

// NotifyLayoutChanged closes a batch of geometry edits
func (s *Space) NotifyLayoutChanged() {
	if s.peerAI != nil {
		s.peerAI.LayoutChanged()
	}
}

// Verify checks index consistency of the geometry active for the space type
func (s *Space) Verify() bool {
	nv := len(s.vertices)
	switch s.spaceType {
	case SpaceGrid:
		for _, e := range s.edges {
			if int(e.Vertex1) >= nv || int(e.Vertex2) >= nv {
				return false
			}
		}
		return true
	case SpaceMesh:
		return s.verifyMesh()
	case SpaceVolume:
		if !s.verifyMesh() {
			return false
		}
		nf := len(s.faces)
		for _, w := range s.walls {
			if int(w.Face) >= nf {
				return false
			}
		}
		walls := 0
		for _, r := range s.rooms {
			walls += int(r.FrontWallCount) + int(r.BackWallCount)
		}
		return walls == len(s.walls)
	}
	return false
}

func (s *Space) verifyMesh() bool {
	nv := len(s.vertices)
	for _, c := range s.corners {
		if int(c.Vertex) >= nv {
			return false
		}
	}
	corners := 0
	for _, f := range s.faces {
		if f.CornerCount < 3 {
			return false
		}
		corners += int(f.CornerCount)
	}
	return corners == len(s.corners)
}

// Copy replaces everything but world membership and peer; nothing is notified
func (s *Space) Copy(other *Space) {
	s.spaceType = other.spaceType
	s.layer = other.layer
	s.position = other.position
	s.orientation = other.orientation
	s.vertices = append(s.vertices[:0], other.vertices...)
	s.edges = append(s.edges[:0], other.edges...)
	s.corners = append(s.corners[:0], other.corners...)
	s.faces = append(s.faces[:0], other.faces...)
	s.walls = append(s.walls[:0], other.walls...)
	s.rooms = append(s.rooms[:0], other.rooms...)
	s.snapDistance = other.snapDistance
	s.snapAngle = other.snapAngle
	s.blockerShapes = other.blockerShapes.Clone()
	s.blockingPriority = other.blockingPriority
}

// --- Peer ---

func (s *Space) PeerAI() SpacePeer { return s.peerAI }

// SetPeerAI disposes the previous peer before storing p
func (s *Space) SetPeerAI(p SpacePeer) {
	if s.peerAI == p {
		return
	}
	if s.peerAI != nil {
		s.peerAI.Dispose()
	}
	s.peerAI = p
}

func (s *Space) notify(signal func(SpacePeer)) func() {
	return func() {
		if s.peerAI != nil {
			signal(s.peerAI)
		}
	}
}

// --- slice helpers shared by resources ---

func resize[T any](slice *[]T, n int, what string) error {
	if n < 0 {
		return fmt.Errorf("%s count %d: %w", what, n, ErrInvalidParam)
	}
	if n <= cap(*slice) {
		old := len(*slice)
		*slice = (*slice)[:n]
		var zero T
		for i := old; i < n; i++ {
			(*slice)[i] = zero
		}
		return nil
	}
	grown := make([]T, n)
	copy(grown, *slice)
	*slice = grown
	return nil
}

func at[T any](slice []T, i int, what string) (T, error) {
	if i < 0 || i >= len(slice) {
		var zero T
		return zero, fmt.Errorf("%s index %d of %d: %w", what, i, len(slice), ErrInvalidParam)
	}
	return slice[i], nil
}

func setAt[T any](slice []T, i int, v T, what string) error {
	if i < 0 || i >= len(slice) {
		return fmt.Errorf("%s index %d of %d: %w", what, i, len(slice), ErrInvalidParam)
	}
	slice[i] = v
	return nil
}
