package shape

import (
	"github.com/chewxy/math32"

	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// List is an ordered shape collection
type List struct {
	shapes []Shape
}

// NewList returns a list holding shapes in order
func NewList(shapes ...Shape) *List {
	l := &List{}
	l.shapes = append(l.shapes, shapes...)
	return l
}

func (l *List) Add(s Shape) {
	l.shapes = append(l.shapes, s)
}

func (l *List) Count() int {
	if l == nil {
		return 0
	}
	return len(l.shapes)
}

// At panics on out of range like slice indexing
func (l *List) At(i int) Shape {
	return l.shapes[i]
}

func (l *List) Clear() {
	l.shapes = l.shapes[:0]
}

// Clone returns an independent copy; shapes are values
func (l *List) Clone() *List {
	if l == nil {
		return &List{}
	}
	return NewList(l.shapes...)
}

// Contains reports whether any shape contains p
func (l *List) Contains(p vmath.Vector) bool {
	for _, s := range l.all() {
		if s.Contains(p) {
			return true
		}
	}
	return false
}

// RayHit returns the nearest hit fraction over all shapes
func (l *List) RayHit(origin, dir vmath.Vector) (float32, bool) {
	best := float32(math32.MaxFloat32)
	found := false
	for _, s := range l.all() {
		if t, ok := s.RayHit(origin, dir); ok && t < best {
			best = t
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return best, true
}

// Bounds returns the union of all shape bounds; ok is false for an empty list
func (l *List) Bounds() (lo, hi vmath.Vector, ok bool) {
	for i, s := range l.all() {
		a, b := s.Bounds()
		if i == 0 {
			lo, hi = a, b
			continue
		}
		lo = vmath.VMin(lo, a)
		hi = vmath.VMax(hi, b)
	}
	return lo, hi, l.Count() > 0
}

// Inflate returns a new list with every shape grown by r
func (l *List) Inflate(r float32) *List {
	out := &List{shapes: make([]Shape, 0, l.Count())}
	for _, s := range l.all() {
		out.shapes = append(out.shapes, s.Inflate(r))
	}
	return out
}

// BoundingRadius is the largest bounding radius of any shape
func (l *List) BoundingRadius() float32 {
	var r float32
	for _, s := range l.all() {
		r = math32.Max(r, BoundingRadius(s))
	}
	return r
}

func (l *List) all() []Shape {
	if l == nil {
		return nil
	}
	return l.shapes
}
