package navigation

import (
	"github.com/LordOfDragons/dragengine-sub060/shape"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// Blocker is a movable shape list suppressing navigation in spaces
// of the same layer and type with equal or lower blocking priority
type Blocker struct {
	Link

	position         vmath.DVector
	orientation      vmath.Quaternion
	scaling          vmath.Vector
	layer            int
	spaceType        SpaceType
	blockingPriority int
	enabled          bool
	shapes           *shape.List

	peerAI BlockerPeer
}

// NewBlocker returns an enabled mesh blocker without shapes
func NewBlocker() *Blocker {
	return &Blocker{
		orientation: vmath.QuatIdentity(),
		scaling:     vmath.Vector{X: 1, Y: 1, Z: 1},
		spaceType:   SpaceMesh,
		enabled:     true,
		shapes:      shape.NewList(),
	}
}

func (b *Blocker) Position() vmath.DVector { return b.position }

func (b *Blocker) SetPosition(p vmath.DVector) {
	setIfChanged(&b.position, p, dvEqual, b.notify(BlockerPeer.PositionChanged))
}

func (b *Blocker) Orientation() vmath.Quaternion { return b.orientation }

func (b *Blocker) SetOrientation(q vmath.Quaternion) {
	setIfChanged(&b.orientation, q, quatEqual, b.notify(BlockerPeer.OrientationChanged))
}

func (b *Blocker) Scaling() vmath.Vector { return b.scaling }

func (b *Blocker) SetScaling(s vmath.Vector) {
	setIfChanged(&b.scaling, s, vEqual, b.notify(BlockerPeer.ScalingChanged))
}

func (b *Blocker) Layer() int { return b.layer }

func (b *Blocker) SetLayer(layer int) {
	setIfChanged(&b.layer, layer, exact[int], b.notify(BlockerPeer.LayerChanged))
}

func (b *Blocker) SpaceType() SpaceType { return b.spaceType }

func (b *Blocker) SetSpaceType(t SpaceType) {
	setIfChanged(&b.spaceType, t, exact[SpaceType], b.notify(BlockerPeer.SpaceTypeChanged))
}

func (b *Blocker) BlockingPriority() int { return b.blockingPriority }

func (b *Blocker) SetBlockingPriority(p int) {
	setIfChanged(&b.blockingPriority, p, exact[int], b.notify(BlockerPeer.BlockingPriorityChanged))
}

// Enabled false makes the blocker transparent while it stays in the world
func (b *Blocker) Enabled() bool { return b.enabled }

func (b *Blocker) SetEnabled(enabled bool) {
	setIfChanged(&b.enabled, enabled, exact[bool], b.notify(BlockerPeer.EnabledChanged))
}

func (b *Blocker) ShapeList() *shape.List { return b.shapes }

// SetShapeList stores a copy; call NotifyShapeListChanged afterwards
func (b *Blocker) SetShapeList(l *shape.List) {
	b.shapes = l.Clone()
}

func (b *Blocker) NotifyShapeListChanged() {
	if b.peerAI != nil {
		b.peerAI.ShapeChanged()
	}
}

// Transform maps shape-local coordinates into the world
func (b *Blocker) Transform() vmath.Transform {
	return vmath.Transform{Position: b.position, Orientation: b.orientation, Scale: b.scaling}
}

// Contains tests a world point against the scaled shape list
func (b *Blocker) Contains(p vmath.DVector) bool {
	return b.shapes.Contains(b.Transform().ToLocal(p))
}

func (b *Blocker) PeerAI() BlockerPeer { return b.peerAI }

// SetPeerAI disposes the previous peer before storing p
func (b *Blocker) SetPeerAI(p BlockerPeer) {
	if b.peerAI == p {
		return
	}
	if b.peerAI != nil {
		b.peerAI.Dispose()
	}
	b.peerAI = p
}

func (b *Blocker) notify(signal func(BlockerPeer)) func() {
	return func() {
		if b.peerAI != nil {
			signal(b.peerAI)
		}
	}
}
