package navai

import (
	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// --- Space ---

// spacePeer marks the graphs of its layer dirty on every change
// It remembers the layer so a layer move invalidates both layers.
type spacePeer struct {
	navigation.BaseSpacePeer
	space *navigation.Space
	layer int
}

func (p *spacePeer) dirty() {
	if wp := peerOf(p.space.ParentWorld()); wp != nil {
		wp.markLayerDirty(p.layer)
		if p.space.Layer() != p.layer {
			wp.markLayerDirty(p.space.Layer())
		}
	}
	p.layer = p.space.Layer()
}

func (p *spacePeer) TypeChanged()             { p.dirty() }
func (p *spacePeer) LayerChanged()            { p.dirty() }
func (p *spacePeer) PositionChanged()         { p.dirty() }
func (p *spacePeer) OrientationChanged()      { p.dirty() }
func (p *spacePeer) SnappingChanged()         { p.dirty() }
func (p *spacePeer) BlockingPriorityChanged() { p.dirty() }
func (p *spacePeer) BlockerShapeChanged()     { p.dirty() }
func (p *spacePeer) LayoutChanged()           { p.dirty() }

// --- Blocker ---

type blockerPeer struct {
	navigation.BaseBlockerPeer
	blocker *navigation.Blocker
	layer   int
}

func (p *blockerPeer) dirty() {
	if wp := peerOf(p.blocker.ParentWorld()); wp != nil {
		wp.markLayerDirty(p.layer)
		if p.blocker.Layer() != p.layer {
			wp.markLayerDirty(p.blocker.Layer())
		}
	}
	p.layer = p.blocker.Layer()
}

func (p *blockerPeer) PositionChanged()         { p.dirty() }
func (p *blockerPeer) OrientationChanged()      { p.dirty() }
func (p *blockerPeer) ScalingChanged()          { p.dirty() }
func (p *blockerPeer) LayerChanged()            { p.dirty() }
func (p *blockerPeer) SpaceTypeChanged()        { p.dirty() }
func (p *blockerPeer) BlockingPriorityChanged() { p.dirty() }
func (p *blockerPeer) EnabledChanged()          { p.dirty() }
func (p *blockerPeer) ShapeChanged()            { p.dirty() }

// --- Height terrain ---

// terrainPeer invalidates every graph when the terrain heights change
type terrainPeer struct {
	terrain *world.HeightTerrain
}

func (p *terrainPeer) HeightChanged() {
	if wp := peerOf(p.terrain.ParentWorld()); wp != nil {
		wp.markAllDirty()
	}
}

func (p *terrainPeer) Dispose() {}
