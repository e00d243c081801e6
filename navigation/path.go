package navigation

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/LordOfDragons/dragengine-sub060/shape"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

const (
	pathGrowStep      = 10
	pathFormatVersion = 1
	pathReadChunk     = 1024
)

// Path is an ordered list of world points produced by FindPath
type Path struct {
	points []vmath.DVector
}

func NewPath() *Path {
	return &Path{}
}

// NewPathFrom returns a path holding points in order
func NewPathFrom(points ...vmath.DVector) *Path {
	p := &Path{}
	for _, pt := range points {
		p.Add(pt)
	}
	return p
}

func (p *Path) Count() int { return len(p.points) }

func (p *Path) At(i int) (vmath.DVector, error) {
	if i < 0 || i >= len(p.points) {
		return vmath.DVector{}, fmt.Errorf("path index %d of %d: %w", i, len(p.points), ErrInvalidParam)
	}
	return p.points[i], nil
}

func (p *Path) SetAt(i int, pt vmath.DVector) error {
	if i < 0 || i >= len(p.points) {
		return fmt.Errorf("path index %d of %d: %w", i, len(p.points), ErrInvalidParam)
	}
	p.points[i] = pt
	return nil
}

// Add appends a point, growing capacity in steps of pathGrowStep
func (p *Path) Add(pt vmath.DVector) {
	p.reserve(1)
	p.points = append(p.points, pt)
}

// AddPath appends all points of other
func (p *Path) AddPath(other *Path) {
	p.reserve(len(other.points))
	p.points = append(p.points, other.points...)
}

// RemoveFrom removes the point at index i
func (p *Path) RemoveFrom(i int) error {
	if i < 0 || i >= len(p.points) {
		return fmt.Errorf("path index %d of %d: %w", i, len(p.points), ErrInvalidParam)
	}
	copy(p.points[i:], p.points[i+1:])
	p.points = p.points[:len(p.points)-1]
	return nil
}

// Truncate drops the point at index i and all following points
func (p *Path) Truncate(i int) error {
	if i < 0 || i > len(p.points) {
		return fmt.Errorf("path truncate %d of %d: %w", i, len(p.points), ErrInvalidParam)
	}
	p.points = p.points[:i]
	return nil
}

// RemoveAll empties the path keeping capacity
func (p *Path) RemoveAll() {
	p.points = p.points[:0]
}

// Assign replaces the content with a copy of other
func (p *Path) Assign(other *Path) {
	if p == other {
		return
	}
	p.points = p.points[:0]
	p.AddPath(other)
}

func (p *Path) Clone() *Path {
	c := &Path{}
	c.AddPath(p)
	return c
}

// Equal compares point by point within epsilon
func (p *Path) Equal(other *Path) bool {
	if len(p.points) != len(other.points) {
		return false
	}
	for i := range p.points {
		if !vmath.DVEqual(p.points[i], other.points[i]) {
			return false
		}
	}
	return true
}

// Points iterates index and point in order
func (p *Path) Points() iter.Seq2[int, vmath.DVector] {
	return func(yield func(int, vmath.DVector) bool) {
		for i, pt := range p.points {
			if !yield(i, pt) {
				return
			}
		}
	}
}

func (p *Path) reserve(extra int) {
	need := len(p.points) + extra
	if need <= cap(p.points) {
		return
	}
	capacity := cap(p.points)
	for capacity < need {
		capacity += pathGrowStep
	}
	grown := make([]vmath.DVector, len(p.points), capacity)
	copy(grown, p.points)
	p.points = grown
}

// --- Length ---

// Length sums the segment lengths of the whole path
func (p *Path) Length() float64 {
	return p.lengthRange(0, len(p.points)-1)
}

// LengthTo sums segments from the first point up to point i
func (p *Path) LengthTo(i int) (float64, error) {
	if i < 0 || i >= len(p.points) {
		return 0, fmt.Errorf("path index %d of %d: %w", i, len(p.points), ErrInvalidParam)
	}
	return p.lengthRange(0, i), nil
}

// LengthFrom sums segments from point i to the last point
func (p *Path) LengthFrom(i int) (float64, error) {
	if i < 0 || i >= len(p.points) {
		return 0, fmt.Errorf("path index %d of %d: %w", i, len(p.points), ErrInvalidParam)
	}
	return p.lengthRange(i, len(p.points)-1), nil
}

// LengthBetween sums segments from point from to point to, from <= to
func (p *Path) LengthBetween(from, to int) (float64, error) {
	if from < 0 || to >= len(p.points) || from > to {
		return 0, fmt.Errorf("path range %d..%d of %d: %w", from, to, len(p.points), ErrInvalidParam)
	}
	return p.lengthRange(from, to), nil
}

func (p *Path) lengthRange(from, to int) float64 {
	var total float64
	for i := from; i < to; i++ {
		total += vmath.DVDistance(p.points[i], p.points[i+1])
	}
	return total
}

// --- Transform ---

// Transform maps every point from local space into world space of t
func (p *Path) Transform(t vmath.Transform) {
	for i, pt := range p.points {
		p.points[i] = t.ToWorldD(pt)
	}
}

// Transformed returns a transformed copy
func (p *Path) Transformed(t vmath.Transform) *Path {
	c := p.Clone()
	c.Transform(t)
	return c
}

// --- Persistence ---

// WriteTo stores version, count and the points little endian
func (p *Path) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 0, 6+24*len(p.points))
	buf = binary.LittleEndian.AppendUint16(buf, pathFormatVersion)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(p.points)))
	for _, pt := range p.points {
		buf = appendFloat64(buf, pt.X)
		buf = appendFloat64(buf, pt.Y)
		buf = appendFloat64(buf, pt.Z)
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// ReadFrom replaces the content with a path stored by WriteTo
func (p *Path) ReadFrom(r io.Reader) (int64, error) {
	var header struct {
		Version uint16
		Count   uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return 0, fmt.Errorf("read path header: %w", err)
	}
	if header.Version != pathFormatVersion {
		return 6, fmt.Errorf("path version %d: %w", header.Version, ErrInvalidParam)
	}
	// the count is untrusted; memory grows only with points actually read
	var points []vmath.DVector
	chunk := make([]vmath.DVector, min(header.Count, pathReadChunk))
	for remaining := header.Count; remaining > 0; {
		batch := chunk[:min(remaining, uint32(len(chunk)))]
		if err := binary.Read(r, binary.LittleEndian, batch); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return 6 + 24*int64(len(points)), fmt.Errorf("read path points: %w", err)
		}
		points = append(points, batch...)
		remaining -= uint32(len(batch))
	}
	p.points = p.points[:0]
	p.reserve(len(points))
	p.points = append(p.points, points...)
	return 6 + 24*int64(header.Count), nil
}

func appendFloat64(buf []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
}

// --- Debug ---

// DebugShapes returns one sphere per point, in world coordinates narrowed to float
func (p *Path) DebugShapes(radius float32) *shape.List {
	l := shape.NewList()
	for _, pt := range p.points {
		l.Add(shape.Sphere{Center: pt.ToVector(), Radius: radius})
	}
	return l
}
