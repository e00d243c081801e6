package world

import (
	"fmt"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/shape"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// Collider is a moving physics body; it doubles as an obstacle for path collision
type Collider struct {
	navigation.Link

	Name           string
	position       vmath.DVector
	orientation    vmath.Quaternion
	Velocity       vmath.Vector
	GravityEnabled bool
	shapes         *shape.List
}

func NewCollider(name string, shapes *shape.List) *Collider {
	return &Collider{
		Name:           name,
		orientation:    vmath.QuatIdentity(),
		GravityEnabled: true,
		shapes:         shapes.Clone(),
	}
}

func (c *Collider) Position() vmath.DVector           { return c.position }
func (c *Collider) SetPosition(p vmath.DVector)       { c.position = p }
func (c *Collider) Orientation() vmath.Quaternion     { return c.orientation }
func (c *Collider) SetOrientation(q vmath.Quaternion) { c.orientation = q }
func (c *Collider) Shapes() *shape.List               { return c.shapes }
func (c *Collider) SetShapes(l *shape.List)           { c.shapes = l.Clone() }

var _ navigation.Collider = (*Collider)(nil)

// Speaker plays a named sound at a position
type Speaker struct {
	navigation.Link

	Name     string
	Sound    string
	Position vmath.DVector
	Volume   float32
	Looping  bool
	playing  bool
}

func NewSpeaker(name, sound string) *Speaker {
	return &Speaker{Name: name, Sound: sound, Volume: 1}
}

func (s *Speaker) Playing() bool { return s.playing }
func (s *Speaker) Play()         { s.playing = true }
func (s *Speaker) Stop()         { s.playing = false }

// DebugDrawer is a developer visualization of shapes at a position
type DebugDrawer struct {
	navigation.Link

	Name     string
	Position vmath.DVector
	Shapes   *shape.List
	Visible  bool
	// Glyph drawn for the shape cells in terminal views
	Glyph rune
	Color uint32
}

func NewDebugDrawer(name string) *DebugDrawer {
	return &DebugDrawer{Name: name, Shapes: shape.NewList(), Visible: true, Glyph: '*', Color: 0xffffff}
}

// HeightTerrain is a regular height grid centered on the world origin
type HeightTerrain struct {
	navigation.Link

	SectorSize float64
	resolution int
	heights    []float32
	peerAI     HeightTerrainPeer
}

// NewHeightTerrain returns a flat terrain of resolution x resolution samples
func NewHeightTerrain(sectorSize float64, resolution int) (*HeightTerrain, error) {
	if resolution < 2 || sectorSize <= 0 {
		return nil, fmt.Errorf("height terrain %d samples, size %g: %w", resolution, sectorSize, ErrInvalidParam)
	}
	return &HeightTerrain{
		SectorSize: sectorSize,
		resolution: resolution,
		heights:    make([]float32, resolution*resolution),
	}, nil
}

func (h *HeightTerrain) Resolution() int { return h.resolution }

func (h *HeightTerrain) SetHeight(x, z int, height float32) error {
	if x < 0 || z < 0 || x >= h.resolution || z >= h.resolution {
		return fmt.Errorf("height sample %d,%d: %w", x, z, ErrInvalidParam)
	}
	h.heights[z*h.resolution+x] = height
	return nil
}

// NotifyHeightChanged closes a batch of SetHeight edits
func (h *HeightTerrain) NotifyHeightChanged() {
	if h.peerAI != nil {
		h.peerAI.HeightChanged()
	}
}

// HeightAt samples the grid bilinearly; outside the sector it clamps to the border
func (h *HeightTerrain) HeightAt(x, z float64) float32 {
	step := h.SectorSize / float64(h.resolution-1)
	fx := (x + h.SectorSize/2) / step
	fz := (z + h.SectorSize/2) / step
	limit := float64(h.resolution - 1)
	fx = min(max(fx, 0), limit)
	fz = min(max(fz, 0), limit)

	x0, z0 := int(fx), int(fz)
	x1, z1 := min(x0+1, h.resolution-1), min(z0+1, h.resolution-1)
	tx, tz := float32(fx-float64(x0)), float32(fz-float64(z0))

	sample := func(ix, iz int) float32 { return h.heights[iz*h.resolution+ix] }
	top := sample(x0, z0)*(1-tx) + sample(x1, z0)*tx
	bottom := sample(x0, z1)*(1-tx) + sample(x1, z1)*tx
	return top*(1-tz) + bottom*tz
}

func (h *HeightTerrain) PeerAI() HeightTerrainPeer { return h.peerAI }

// SetPeerAI disposes the previous peer before storing p
func (h *HeightTerrain) SetPeerAI(p HeightTerrainPeer) {
	if h.peerAI == p {
		return
	}
	if h.peerAI != nil {
		h.peerAI.Dispose()
	}
	h.peerAI = p
}
