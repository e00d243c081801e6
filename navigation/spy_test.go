package navigation

import (
	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// signalCounter records peer callbacks by name
type signalCounter map[string]int

type spySpacePeer struct {
	BaseSpacePeer
	calls signalCounter
}

func newSpySpacePeer() *spySpacePeer { return &spySpacePeer{calls: signalCounter{}} }

func (p *spySpacePeer) TypeChanged()             { p.calls["type"]++ }
func (p *spySpacePeer) LayerChanged()            { p.calls["layer"]++ }
func (p *spySpacePeer) PositionChanged()         { p.calls["position"]++ }
func (p *spySpacePeer) OrientationChanged()      { p.calls["orientation"]++ }
func (p *spySpacePeer) SnappingChanged()         { p.calls["snapping"]++ }
func (p *spySpacePeer) BlockingPriorityChanged() { p.calls["priority"]++ }
func (p *spySpacePeer) BlockerShapeChanged()     { p.calls["blockerShape"]++ }
func (p *spySpacePeer) LayoutChanged()           { p.calls["layout"]++ }
func (p *spySpacePeer) Dispose()                 { p.calls["dispose"]++ }

type spyBlockerPeer struct {
	BaseBlockerPeer
	calls signalCounter
}

func newSpyBlockerPeer() *spyBlockerPeer { return &spyBlockerPeer{calls: signalCounter{}} }

func (p *spyBlockerPeer) PositionChanged()         { p.calls["position"]++ }
func (p *spyBlockerPeer) ScalingChanged()          { p.calls["scaling"]++ }
func (p *spyBlockerPeer) EnabledChanged()          { p.calls["enabled"]++ }
func (p *spyBlockerPeer) BlockingPriorityChanged() { p.calls["priority"]++ }
func (p *spyBlockerPeer) ShapeChanged()            { p.calls["shape"]++ }

type spyNavigatorPeer struct {
	BaseNavigatorPeer
	calls    signalCounter
	findPath []vmath.DVector
	radius   float32
}

func newSpyNavigatorPeer() *spyNavigatorPeer { return &spyNavigatorPeer{calls: signalCounter{}} }

func (p *spyNavigatorPeer) LayerChanged()      { p.calls["layer"]++ }
func (p *spyNavigatorPeer) SpaceTypeChanged()  { p.calls["spaceType"]++ }
func (p *spyNavigatorPeer) CostsChanged()      { p.calls["costs"]++ }
func (p *spyNavigatorPeer) TypesChanged()      { p.calls["types"]++ }
func (p *spyNavigatorPeer) ParametersChanged() { p.calls["parameters"]++ }
func (p *spyNavigatorPeer) Dispose()           { p.calls["dispose"]++ }

func (p *spyNavigatorPeer) FindPath(path *Path, start, goal vmath.DVector) {
	p.calls["findPath"]++
	for _, pt := range p.findPath {
		path.Add(pt)
	}
}

func (p *spyNavigatorPeer) NearestPoint(point vmath.DVector, radius float32) (vmath.DVector, int, bool) {
	p.radius = radius
	return point, 7, true
}
