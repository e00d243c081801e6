// Package scenario builds the navigation demo world: a grid of cells, blocked
// cells or a generated maze, and an agent walking from start to goal
package scenario

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/LordOfDragons/dragengine-sub060/config"
	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/shape"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
	"github.com/LordOfDragons/dragengine-sub060/world"
)

// Sounds played by the scene; both exist in the default sound library
const (
	SoundMoving  = "hum"
	SoundArrived = "chime"
)

const (
	arriveThreshold = 1e-3
	maxMovesPerStep = 64
	worldHeight     = 10
)

// State is the progress of the agent
type State uint8

const (
	StateIdle State = iota
	StateMoving
	StateStuck
	StateArrived
)

var stateNames = [...]string{"idle", "moving", "stuck", "arrived"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", s)
}

// Scene holds the resources added to the world and moves the agent
//
// The agent is kinematic: Advance places it along the path and the
// physics only sees its position. The path is searched again at every
// waypoint so blocker changes are picked up on the way.
type Scene struct {
	World     *world.World
	Space     *navigation.Space
	Walls     *navigation.Blocker
	Navigator *navigation.Navigator
	Agent     *world.Collider
	// Maze is nil unless the scenario generates one
	Maze *Maze

	Start, Goal config.Cell
	Blocked     []config.Cell

	cfg    config.Scenario
	logger *slog.Logger

	path   *navigation.Path
	next   int
	replan bool
	state  State
	plans  int

	moving  *world.Speaker
	arrived *world.Speaker
}

// Build adds the scenario resources to w
// The navigator settings must select the grid space type.
func Build(w *world.World, sc config.Scenario, nav config.Navigator) (*Scene, error) {
	if t, _ := navigation.ParseSpaceType(nav.SpaceType); t != navigation.SpaceGrid {
		return nil, fmt.Errorf("scenario needs a grid navigator, got %q: %w", nav.SpaceType, config.ErrInvalid)
	}

	s := &Scene{
		World:   w,
		Start:   sc.Start,
		Goal:    sc.Goal,
		Blocked: sc.Blocked,
		cfg:     sc,
		logger:  w.Logger().With("component", "scenario"),
		path:    navigation.NewPath(),
		replan:  true,
	}
	if sc.Maze.Enabled {
		s.Maze = GenerateMaze(sc.Columns, sc.Rows, sc.Maze, sc.Start, sc.Goal)
		s.Blocked = s.Maze.Walls()
	}

	margin := 2 * sc.Spacing
	w.SetSize(vmath.DVector{
		X: float64(sc.Columns)*sc.Spacing + margin,
		Y: worldHeight,
		Z: float64(sc.Rows)*sc.Spacing + margin,
	})

	var err error
	if s.Space, err = s.gridSpace(); err != nil {
		return nil, err
	}
	s.Walls = s.wallBlocker()
	s.Navigator = navigation.NewNavigator()
	nav.Apply(s.Navigator)

	radius := float32(sc.Spacing * 0.3)
	s.Agent = world.NewCollider("agent", shape.NewList(shape.Sphere{Radius: radius}))
	s.Agent.GravityEnabled = false
	s.Agent.SetPosition(s.CellPosition(sc.Start))

	s.moving = world.NewSpeaker("agent-moving", SoundMoving)
	s.moving.Looping = true
	s.moving.Volume = 0.3
	s.arrived = world.NewSpeaker("agent-arrived", SoundArrived)
	s.arrived.Position = s.CellPosition(sc.Goal)

	adds := []func() error{
		func() error { return w.AddNavigationSpace(s.Space) },
		func() error { return w.AddNavigationBlocker(s.Walls) },
		func() error { return w.AddNavigator(s.Navigator) },
		func() error { return w.AddCollider(s.Agent) },
		func() error { return w.AddSpeaker(s.moving) },
		func() error { return w.AddSpeaker(s.arrived) },
		func() error { return w.AddDebugDrawer(s.wallDrawer()) },
		func() error { return w.AddDebugDrawer(s.marker("start", sc.Start, 'S', 0x40c0c0)) },
		func() error { return w.AddDebugDrawer(s.marker("goal", sc.Goal, 'G', 0xffc040)) },
	}
	for _, add := range adds {
		if err := add(); err != nil {
			return nil, fmt.Errorf("build scenario: %w", err)
		}
	}
	s.logger.Info("scenario built",
		"columns", sc.Columns, "rows", sc.Rows, "blocked", len(s.Blocked), "maze", s.Maze != nil)
	return s, nil
}

// CellPosition is the world position of a cell; the grid is centered on the origin
func (s *Scene) CellPosition(c config.Cell) vmath.DVector {
	sp := s.cfg.Spacing
	return vmath.DVector{
		X: (float64(c.X) - float64(s.cfg.Columns-1)/2) * sp,
		Z: (float64(c.Z) - float64(s.cfg.Rows-1)/2) * sp,
	}
}

// gridSpace has one vertex per cell and edges between 4-neighbours
func (s *Scene) gridSpace() (*navigation.Space, error) {
	cols, rows := s.cfg.Columns, s.cfg.Rows
	sp := navigation.NewSpace()
	sp.SetType(navigation.SpaceGrid)
	if err := sp.SetVertexCount(cols * rows); err != nil {
		return nil, err
	}
	index := func(x, z int) uint16 { return uint16(z*cols + x) }
	for z := range rows {
		for x := range cols {
			if err := sp.SetVertexAt(int(index(x, z)), s.CellPosition(config.Cell{X: x, Z: z}).ToVector()); err != nil {
				return nil, err
			}
		}
	}

	var edges []navigation.Edge
	for z := range rows {
		for x := range cols {
			if x+1 < cols {
				edges = append(edges, navigation.Edge{Vertex1: index(x, z), Vertex2: index(x+1, z)})
			}
			if z+1 < rows {
				edges = append(edges, navigation.Edge{Vertex1: index(x, z), Vertex2: index(x, z+1)})
			}
		}
	}
	if err := sp.SetEdgeCount(len(edges)); err != nil {
		return nil, err
	}
	for i, e := range edges {
		if err := sp.SetEdgeAt(i, e); err != nil {
			return nil, err
		}
	}
	sp.NotifyLayoutChanged()
	return sp, nil
}

// wallBoxes has one box per blocked cell, relative to the origin
func (s *Scene) wallBoxes() *shape.List {
	half := float32(s.cfg.Spacing * 0.4)
	boxes := shape.NewList()
	for _, c := range s.Blocked {
		boxes.Add(shape.Box{
			Center:      s.CellPosition(c).ToVector(),
			HalfExtents: vmath.Vector{X: half, Y: half, Z: half},
		})
	}
	return boxes
}

func (s *Scene) wallBlocker() *navigation.Blocker {
	b := navigation.NewBlocker()
	b.SetSpaceType(navigation.SpaceGrid)
	b.SetShapeList(s.wallBoxes())
	return b
}

func (s *Scene) wallDrawer() *world.DebugDrawer {
	d := world.NewDebugDrawer("walls")
	d.Shapes = s.wallBoxes()
	d.Glyph = '#'
	d.Color = 0x808080
	return d
}

func (s *Scene) marker(name string, c config.Cell, glyph rune, color uint32) *world.DebugDrawer {
	d := world.NewDebugDrawer(name)
	d.Position = s.CellPosition(c)
	d.Shapes = shape.NewList(shape.Sphere{Radius: float32(s.cfg.Spacing * 0.2)})
	d.Glyph = glyph
	d.Color = color
	return d
}

// --- Movement ---

func (s *Scene) State() State { return s.state }

// Path is the last searched path; empty while stuck
func (s *Scene) Path() *navigation.Path { return s.path }

// Plans counts path searches so far
func (s *Scene) Plans() int { return s.plans }

// Plan searches a path from the agent to the goal and reports the point count
func (s *Scene) Plan() int {
	s.plans++
	s.Navigator.FindPath(s.path, s.Agent.Position(), s.CellPosition(s.Goal))
	s.next = 0
	s.replan = false
	return s.path.Count()
}

// Advance moves the agent up to speed x elapsed along the path
func (s *Scene) Advance(elapsed time.Duration) {
	if s.state == StateArrived {
		return
	}
	goal := s.CellPosition(s.Goal)
	pos := s.Agent.Position()
	budget := float64(s.cfg.AgentSpeed) * elapsed.Seconds()

	for range maxMovesPerStep {
		if vmath.DVDistance(pos, goal) <= arriveThreshold {
			s.Agent.SetPosition(goal)
			s.arrive()
			return
		}
		if budget <= 0 {
			break
		}
		if s.replan || s.next >= s.path.Count() {
			s.Agent.SetPosition(pos)
			if s.Plan() == 0 {
				s.setState(StateStuck)
				break
			}
		}
		s.setState(StateMoving)

		target, _ := s.path.At(s.next)
		d := vmath.DVDistance(pos, target)
		if d <= budget {
			pos = target
			budget -= d
			s.next++
			s.replan = true
			continue
		}
		pos = vmath.DVLerp(pos, target, budget/d)
		budget = 0
	}
	s.Agent.SetPosition(pos)
	s.moving.Position = pos
}

func (s *Scene) arrive() {
	s.moving.Stop()
	s.arrived.Play()
	s.setState(StateArrived)
}

func (s *Scene) setState(state State) {
	if s.state == state {
		return
	}
	s.logger.Debug("agent state", "from", s.state, "to", state, "plans", s.plans)
	s.state = state
	switch state {
	case StateMoving:
		s.moving.Play()
	case StateStuck:
		s.moving.Stop()
	}
}
