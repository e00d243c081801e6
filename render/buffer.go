package render

import "github.com/gdamore/tcell/v2"

// Cell is one terminal character with its foreground color
type Cell struct {
	Rune  rune
	Color uint32
}

// Buffer is a cell grid composed per frame and flushed to a tcell screen
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a cell; out of bounds writes are dropped
func (b *Buffer) Set(x, y int, r rune, color uint32) {
	if !b.inBounds(x, y) {
		return
	}
	i := y*b.width + x
	b.cells[i] = Cell{Rune: r, Color: color}
	b.touched[i] = true
}

// Text writes s left to right from x, clipped at the right edge
func (b *Buffer) Text(x, y int, s string, color uint32) {
	for _, r := range s {
		b.Set(x, y, r, color)
		x++
	}
}

func (b *Buffer) At(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Flush writes touched cells to the screen and blanks the rest
func (b *Buffer) Flush(screen tcell.Screen, background tcell.Style) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			i := y*b.width + x
			if !b.touched[i] {
				screen.SetContent(x, y, ' ', nil, background)
				continue
			}
			c := b.cells[i]
			style := background.Foreground(tcell.NewHexColor(int32(c.Color & 0xffffff)))
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	screen.Show()
}
