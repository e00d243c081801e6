package navigation

import (
	"fmt"

	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// Default navigator parameters
const (
	DefaultMaxOutsideDistance = 0.5
	DefaultFixCost            = 0
	DefaultCostPerMeter       = 1
	DefaultBlockingCost       = 1000
	DefaultNavigatorSpaceType = SpaceMesh
	noHitDistance             = 1
)

// Navigator finds paths through the spaces of its layer and space type
//
// All graph work happens in the AI peer. Without a peer every query
// fails soft: empty path, ok=false.
type Navigator struct {
	Link

	layer               int
	spaceType           SpaceType
	maxOutsideDistance  float32
	defaultFixCost      float32
	defaultCostPerMeter float32
	blockingCost        float32
	types               []NavigatorType

	peerAI NavigatorPeer
}

func NewNavigator() *Navigator {
	return &Navigator{
		spaceType:           DefaultNavigatorSpaceType,
		maxOutsideDistance:  DefaultMaxOutsideDistance,
		defaultFixCost:      DefaultFixCost,
		defaultCostPerMeter: DefaultCostPerMeter,
		blockingCost:        DefaultBlockingCost,
	}
}

// --- Parameters ---

func (n *Navigator) Layer() int { return n.layer }

func (n *Navigator) SetLayer(layer int) {
	setIfChanged(&n.layer, layer, exact[int], n.notify(NavigatorPeer.LayerChanged))
}

func (n *Navigator) SpaceType() SpaceType { return n.spaceType }

func (n *Navigator) SetSpaceType(t SpaceType) {
	setIfChanged(&n.spaceType, t, exact[SpaceType], n.notify(NavigatorPeer.SpaceTypeChanged))
}

// MaxOutsideDistance is how far start and goal may lie from navigable space
func (n *Navigator) MaxOutsideDistance() float32 { return n.maxOutsideDistance }

func (n *Navigator) SetMaxOutsideDistance(d float32) {
	setIfChanged(&n.maxOutsideDistance, max(d, 0), floatEqual, n.notify(NavigatorPeer.ParametersChanged))
}

// DefaultFixCost applies to elements whose type has no entry
func (n *Navigator) DefaultFixCost() float32 { return n.defaultFixCost }

func (n *Navigator) SetDefaultFixCost(cost float32) {
	setIfChanged(&n.defaultFixCost, cost, floatEqual, n.notify(NavigatorPeer.CostsChanged))
}

func (n *Navigator) DefaultCostPerMeter() float32 { return n.defaultCostPerMeter }

func (n *Navigator) SetDefaultCostPerMeter(cost float32) {
	setIfChanged(&n.defaultCostPerMeter, cost, floatEqual, n.notify(NavigatorPeer.CostsChanged))
}

// BlockingCost is the accumulated cost at which search stops expanding
func (n *Navigator) BlockingCost() float32 { return n.blockingCost }

func (n *Navigator) SetBlockingCost(cost float32) {
	setIfChanged(&n.blockingCost, cost, floatEqual, n.notify(NavigatorPeer.CostsChanged))
}

// --- Types ---

func (n *Navigator) TypeCount() int { return len(n.types) }

// TypeAt returns the entry at index
// The pointer is valid until the next AddType, RemoveType* or RemoveAllTypes
func (n *Navigator) TypeAt(index int) (*NavigatorType, error) {
	if index < 0 || index >= len(n.types) {
		return nil, fmt.Errorf("type index %d of %d: %w", index, len(n.types), ErrInvalidParam)
	}
	return &n.types[index], nil
}

// IndexOfType returns the index of tag or -1
func (n *Navigator) IndexOfType(tag int) int {
	for i := range n.types {
		if n.types[i].Type == tag {
			return i
		}
	}
	return -1
}

func (n *Navigator) HasType(tag int) bool {
	return n.IndexOfType(tag) != -1
}

// TypeWith returns the entry for tag or nil
// The pointer is valid until the next AddType, RemoveType* or RemoveAllTypes
func (n *Navigator) TypeWith(tag int) *NavigatorType {
	if i := n.IndexOfType(tag); i != -1 {
		return &n.types[i]
	}
	return nil
}

// AddType returns the entry for tag, appending one with default costs if missing
// The pointer is valid until the next AddType, RemoveType* or RemoveAllTypes
func (n *Navigator) AddType(tag int) *NavigatorType {
	if t := n.TypeWith(tag); t != nil {
		return t
	}
	n.types = append(n.types, newNavigatorType(tag))
	return &n.types[len(n.types)-1]
}

// RemoveType deletes the entry for tag keeping the order of the rest
func (n *Navigator) RemoveType(tag int) error {
	i := n.IndexOfType(tag)
	if i == -1 {
		return fmt.Errorf("remove type %d: %w", tag, ErrInvalidParam)
	}
	n.removeTypeAt(i)
	return nil
}

// RemoveTypeWith deletes the entry t points at
func (n *Navigator) RemoveTypeWith(t *NavigatorType) error {
	for i := range n.types {
		if &n.types[i] == t {
			n.removeTypeAt(i)
			return nil
		}
	}
	return fmt.Errorf("remove type entry: %w", ErrInvalidParam)
}

func (n *Navigator) removeTypeAt(i int) {
	copy(n.types[i:], n.types[i+1:])
	n.types = n.types[:len(n.types)-1]
}

// RemoveAllTypes empties the type list keeping its capacity
func (n *Navigator) RemoveAllTypes() {
	n.types = n.types[:0]
}

// NotifyTypesChanged closes a batch of type edits
func (n *Navigator) NotifyTypesChanged() {
	if n.peerAI != nil {
		n.peerAI.TypesChanged()
	}
}

// CostFor returns the cost model for tag, falling back to the defaults
func (n *Navigator) CostFor(tag int) (fixCost, costPerMeter float32) {
	if t := n.TypeWith(tag); t != nil {
		return t.FixCost, t.CostPerMeter
	}
	return n.defaultFixCost, n.defaultCostPerMeter
}

// SetTypeFixCost adds tag if needed, updates its fix cost and notifies TypesChanged
func (n *Navigator) SetTypeFixCost(tag int, cost float32) {
	n.AddType(tag).SetFixCost(cost)
	n.NotifyTypesChanged()
}

// SetTypeCostPerMeter adds tag if needed, updates its cost per meter and notifies TypesChanged
func (n *Navigator) SetTypeCostPerMeter(tag int, cost float32) {
	n.AddType(tag).SetCostPerMeter(cost)
	n.NotifyTypesChanged()
}

// TypeFixCost returns the fix cost used for tag
func (n *Navigator) TypeFixCost(tag int) float32 {
	fix, _ := n.CostFor(tag)
	return fix
}

// TypeCostPerMeter returns the cost per meter used for tag
func (n *Navigator) TypeCostPerMeter(tag int) float32 {
	_, perMeter := n.CostFor(tag)
	return perMeter
}

// --- Queries ---

// FindPath clears path and lets the peer fill it; an empty path means no path
func (n *Navigator) FindPath(path *Path, start, goal vmath.DVector) {
	path.RemoveAll()
	if n.peerAI != nil {
		n.peerAI.FindPath(path, start, goal)
	}
}

// NearestPoint finds the closest navigable point within radius and its type tag
func (n *Navigator) NearestPoint(point vmath.DVector, radius float32) (vmath.DVector, int, bool) {
	if n.peerAI == nil {
		return vmath.DVector{}, 0, false
	}
	return n.peerAI.NearestPoint(point, max(radius, 0))
}

// LineCollide returns the fraction of direction travelled before leaving navigable space
// Returns 1 and false when no boundary is crossed
func (n *Navigator) LineCollide(origin vmath.DVector, direction vmath.Vector) (float32, bool) {
	if n.peerAI == nil {
		return noHitDistance, false
	}
	d, ok := n.peerAI.LineCollide(origin, direction)
	if !ok {
		return noHitDistance, false
	}
	return d, true
}

// PathCollideRay tests the whole path against the collider shapes
// hitAfterPoint is the index of the path point preceding the hit, hitDistance the fraction along that segment
func (n *Navigator) PathCollideRay(path *Path, collider Collider) (hitAfterPoint int, hitDistance float32, ok bool) {
	if n.peerAI == nil || collider == nil {
		return -1, 0, false
	}
	return n.peerAI.PathCollideRay(path, collider)
}

// PathCollideRayRange tests from startPosition through path[nextPoint:] up to maxDistance
func (n *Navigator) PathCollideRayRange(path *Path, collider Collider, startPosition vmath.DVector, nextPoint int, maxDistance float32) (hitAfterPoint int, hitDistance float32, ok bool) {
	if n.peerAI == nil || collider == nil {
		return -1, 0, false
	}
	return n.peerAI.PathCollideRayRange(path, collider, startPosition, nextPoint, maxDistance)
}

// PathCollideShape sweeps the agent shapes along the whole path
func (n *Navigator) PathCollideShape(path *Path, collider, agent Collider) (hitAfterPoint int, hitDistance float32, ok bool) {
	if n.peerAI == nil || collider == nil || agent == nil {
		return -1, 0, false
	}
	return n.peerAI.PathCollideShape(path, collider, agent)
}

// PathCollideShapeRange sweeps the agent from startPosition through path[nextPoint:] up to maxDistance
func (n *Navigator) PathCollideShapeRange(path *Path, collider, agent Collider, startPosition vmath.DVector, nextPoint int, maxDistance float32) (hitAfterPoint int, hitDistance float32, ok bool) {
	if n.peerAI == nil || collider == nil || agent == nil {
		return -1, 0, false
	}
	return n.peerAI.PathCollideShapeRange(path, collider, agent, startPosition, nextPoint, maxDistance)
}

// --- Peer ---

func (n *Navigator) PeerAI() NavigatorPeer { return n.peerAI }

// SetPeerAI disposes the previous peer before storing p
func (n *Navigator) SetPeerAI(p NavigatorPeer) {
	if n.peerAI == p {
		return
	}
	if n.peerAI != nil {
		n.peerAI.Dispose()
	}
	n.peerAI = p
}

func (n *Navigator) notify(signal func(NavigatorPeer)) func() {
	return func() {
		if n.peerAI != nil {
			signal(n.peerAI)
		}
	}
}
