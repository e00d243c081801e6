package scenario

import (
	"math/rand/v2"

	"github.com/LordOfDragons/dragengine-sub060/config"
)

// Maze is a wall map over the scenario cells, indexed [z][x]
//
// Rooms sit on odd coordinates of the odd sized core; a trailing even
// column or row outside the core stays open.
type Maze struct {
	Columns, Rows int
	walls         [][]bool
}

var steps = [4]config.Cell{{X: 0, Z: -1}, {X: 0, Z: 1}, {X: -1, Z: 0}, {X: 1, Z: 0}}

// GenerateMaze carves a recursive backtracker maze and opens start and goal
func GenerateMaze(columns, rows int, settings config.Maze, start, goal config.Cell) *Maze {
	m := &Maze{Columns: columns, Rows: rows, walls: make([][]bool, rows)}
	coreCols, coreRows := oddFloor(columns), oddFloor(rows)
	for z := range m.walls {
		m.walls[z] = make([]bool, columns)
		for x := range m.walls[z] {
			m.walls[z][x] = x < coreCols && z < coreRows
		}
	}

	seed := settings.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	m.carve(config.Cell{X: 1, Z: 1}, coreCols, coreRows, rng)
	if settings.Braiding > 0 {
		m.braid(coreCols, coreRows, settings.Braiding, rng)
	}
	m.connect(start, coreCols, coreRows)
	m.connect(goal, coreCols, coreRows)
	return m
}

func oddFloor(n int) int {
	if n < 3 {
		return n
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

func (m *Maze) inside(c config.Cell) bool {
	return c.X >= 0 && c.Z >= 0 && c.X < m.Columns && c.Z < m.Rows
}

// Wall reports whether c is blocked; cells outside the maze are walls
func (m *Maze) Wall(c config.Cell) bool {
	return !m.inside(c) || m.walls[c.Z][c.X]
}

// Walls lists the blocked cells row by row
func (m *Maze) Walls() []config.Cell {
	var out []config.Cell
	for z, row := range m.walls {
		for x, wall := range row {
			if wall {
				out = append(out, config.Cell{X: x, Z: z})
			}
		}
	}
	return out
}

func (m *Maze) carve(start config.Cell, cols, rows int, rng *rand.Rand) {
	if cols < 3 || rows < 3 {
		return
	}
	m.walls[start.Z][start.X] = false
	stack := []config.Cell{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		var options []config.Cell
		for _, d := range steps {
			next := config.Cell{X: cur.X + 2*d.X, Z: cur.Z + 2*d.Z}
			if next.X > 0 && next.Z > 0 && next.X < cols-1 && next.Z < rows-1 && m.walls[next.Z][next.X] {
				options = append(options, d)
			}
		}
		if len(options) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := options[rng.IntN(len(options))]
		m.walls[cur.Z+d.Z][cur.X+d.X] = false
		next := config.Cell{X: cur.X + 2*d.X, Z: cur.Z + 2*d.Z}
		m.walls[next.Z][next.X] = false
		stack = append(stack, next)
	}
}

// braid knocks one wall out of dead end rooms with the given probability
// A wall stays when removing it would open a 2x2 plaza
func (m *Maze) braid(cols, rows int, probability float64, rng *rand.Rand) {
	for z := 1; z < rows-1; z += 2 {
		for x := 1; x < cols-1; x += 2 {
			room := config.Cell{X: x, Z: z}
			if m.Wall(room) || m.exits(room) != 1 || rng.Float64() >= probability {
				continue
			}
			var candidates []config.Cell
			for _, d := range steps {
				wall := config.Cell{X: x + d.X, Z: z + d.Z}
				beyond := config.Cell{X: x + 2*d.X, Z: z + 2*d.Z}
				if wall.X <= 0 || wall.Z <= 0 || wall.X >= cols-1 || wall.Z >= rows-1 {
					continue
				}
				if m.Wall(wall) && !m.Wall(beyond) && !m.opensPlaza(wall) {
					candidates = append(candidates, wall)
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.IntN(len(candidates))]
				m.walls[c.Z][c.X] = false
			}
		}
	}
}

func (m *Maze) exits(c config.Cell) int {
	n := 0
	for _, d := range steps {
		if !m.Wall(config.Cell{X: c.X + d.X, Z: c.Z + d.Z}) {
			n++
		}
	}
	return n
}

func (m *Maze) opensPlaza(c config.Cell) bool {
	open := func(dx, dz int) bool { return !m.Wall(config.Cell{X: c.X + dx, Z: c.Z + dz}) }
	for _, q := range [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if open(q[0], 0) && open(0, q[1]) && open(q[0], q[1]) {
			return true
		}
	}
	return false
}

// connect opens c and an L shaped corridor to the nearest room
func (m *Maze) connect(c config.Cell, cols, rows int) {
	if !m.inside(c) {
		return
	}
	m.walls[c.Z][c.X] = false
	if cols < 3 || rows < 3 {
		return
	}
	room := config.Cell{X: min(c.X|1, cols-2), Z: min(c.Z|1, rows-2)}
	for x := c.X; x != room.X; x += sign(room.X - x) {
		m.walls[c.Z][x] = false
	}
	for z := c.Z; z != room.Z; z += sign(room.Z - z) {
		m.walls[z][room.X] = false
	}
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

// Solve is the breadth first shortest route from start to goal, both included
// It is nil when goal cannot be reached
func (m *Maze) Solve(start, goal config.Cell) []config.Cell {
	if m.Wall(start) || m.Wall(goal) {
		return nil
	}
	from := map[config.Cell]config.Cell{start: start}
	queue := []config.Cell{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			var route []config.Cell
			for c := goal; c != start; c = from[c] {
				route = append(route, c)
			}
			route = append(route, start)
			for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
				route[i], route[j] = route[j], route[i]
			}
			return route
		}
		for _, d := range steps {
			next := config.Cell{X: cur.X + d.X, Z: cur.Z + d.Z}
			if _, seen := from[next]; seen || m.Wall(next) {
				continue
			}
			from[next] = cur
			queue = append(queue, next)
		}
	}
	return nil
}
