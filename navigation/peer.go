package navigation

import (
	"github.com/LordOfDragons/dragengine-sub060/shape"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// SpacePeer is the AI module object backing one Space
type SpacePeer interface {
	TypeChanged()
	LayerChanged()
	PositionChanged()
	OrientationChanged()
	SnappingChanged()
	BlockingPriorityChanged()
	BlockerShapeChanged()
	// LayoutChanged follows a batch of geometry edits
	LayoutChanged()
	Dispose()
}

// BlockerPeer is the AI module object backing one Blocker
type BlockerPeer interface {
	PositionChanged()
	OrientationChanged()
	ScalingChanged()
	LayerChanged()
	SpaceTypeChanged()
	BlockingPriorityChanged()
	EnabledChanged()
	ShapeChanged()
	Dispose()
}

// Collider is the obstacle side of path collision tests
type Collider interface {
	Position() vmath.DVector
	Orientation() vmath.Quaternion
	Shapes() *shape.List
}

// NavigatorPeer is the AI module object backing one Navigator
// Queries fail soft: an empty path or ok=false means nothing found
type NavigatorPeer interface {
	LayerChanged()
	SpaceTypeChanged()
	CostsChanged()
	TypesChanged()
	ParametersChanged()

	// FindPath appends the found points to an already cleared path
	FindPath(path *Path, start, goal vmath.DVector)
	NearestPoint(point vmath.DVector, radius float32) (vmath.DVector, int, bool)
	LineCollide(origin vmath.DVector, direction vmath.Vector) (float32, bool)

	PathCollideRay(path *Path, collider Collider) (int, float32, bool)
	PathCollideRayRange(path *Path, collider Collider, startPosition vmath.DVector, nextPoint int, maxDistance float32) (int, float32, bool)
	PathCollideShape(path *Path, collider, agent Collider) (int, float32, bool)
	PathCollideShapeRange(path *Path, collider, agent Collider, startPosition vmath.DVector, nextPoint int, maxDistance float32) (int, float32, bool)

	Dispose()
}

// --- No-op bases, embed to override selectively ---

type BaseSpacePeer struct{}

func (BaseSpacePeer) TypeChanged()             {}
func (BaseSpacePeer) LayerChanged()            {}
func (BaseSpacePeer) PositionChanged()         {}
func (BaseSpacePeer) OrientationChanged()      {}
func (BaseSpacePeer) SnappingChanged()         {}
func (BaseSpacePeer) BlockingPriorityChanged() {}
func (BaseSpacePeer) BlockerShapeChanged()     {}
func (BaseSpacePeer) LayoutChanged()           {}
func (BaseSpacePeer) Dispose()                 {}

type BaseBlockerPeer struct{}

func (BaseBlockerPeer) PositionChanged()         {}
func (BaseBlockerPeer) OrientationChanged()      {}
func (BaseBlockerPeer) ScalingChanged()          {}
func (BaseBlockerPeer) LayerChanged()            {}
func (BaseBlockerPeer) SpaceTypeChanged()        {}
func (BaseBlockerPeer) BlockingPriorityChanged() {}
func (BaseBlockerPeer) EnabledChanged()          {}
func (BaseBlockerPeer) ShapeChanged()            {}
func (BaseBlockerPeer) Dispose()                 {}

type BaseNavigatorPeer struct{}

func (BaseNavigatorPeer) LayerChanged()                                {}
func (BaseNavigatorPeer) SpaceTypeChanged()                            {}
func (BaseNavigatorPeer) CostsChanged()                                {}
func (BaseNavigatorPeer) TypesChanged()                                {}
func (BaseNavigatorPeer) ParametersChanged()                           {}
func (BaseNavigatorPeer) FindPath(*Path, vmath.DVector, vmath.DVector) {}
func (BaseNavigatorPeer) Dispose()                                     {}

func (BaseNavigatorPeer) NearestPoint(vmath.DVector, float32) (vmath.DVector, int, bool) {
	return vmath.DVector{}, 0, false
}

func (BaseNavigatorPeer) LineCollide(vmath.DVector, vmath.Vector) (float32, bool) {
	return 1, false
}

func (BaseNavigatorPeer) PathCollideRay(*Path, Collider) (int, float32, bool) {
	return -1, 0, false
}

func (BaseNavigatorPeer) PathCollideRayRange(*Path, Collider, vmath.DVector, int, float32) (int, float32, bool) {
	return -1, 0, false
}

func (BaseNavigatorPeer) PathCollideShape(*Path, Collider, Collider) (int, float32, bool) {
	return -1, 0, false
}

func (BaseNavigatorPeer) PathCollideShapeRange(*Path, Collider, Collider, vmath.DVector, int, float32) (int, float32, bool) {
	return -1, 0, false
}
