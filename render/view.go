package render

import (
	"math"

	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// View maps the world XZ plane onto terminal cells, +X right and +Z down
type View struct {
	Center vmath.DVector
	// Scale is world units per cell
	Scale  float64
	Width  int
	Height int
}

// Fit picks the scale showing a world of the given size in the view
func (v *View) Fit(size vmath.DVector) {
	if v.Width <= 0 || v.Height <= 0 {
		return
	}
	v.Scale = max(size.X/float64(v.Width), size.Z/float64(v.Height), 1e-6)
}

// ToCell returns the cell holding the world point
func (v View) ToCell(p vmath.DVector) (x, y int, visible bool) {
	if v.Scale <= 0 {
		return 0, 0, false
	}
	x = int(math.Floor((p.X-v.Center.X)/v.Scale)) + v.Width/2
	y = int(math.Floor((p.Z-v.Center.Z)/v.Scale)) + v.Height/2
	return x, y, x >= 0 && x < v.Width && y >= 0 && y < v.Height
}

// ToWorld returns the world XZ point at the center of a cell
func (v View) ToWorld(x, y int) (wx, wz float64) {
	wx = (float64(x-v.Width/2)+0.5)*v.Scale + v.Center.X
	wz = (float64(y-v.Height/2)+0.5)*v.Scale + v.Center.Z
	return wx, wz
}
