package navai

import (
	"container/heap"

	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// pathThreshold merges the goal into a last waypoint closer than this
const pathThreshold = 0.001

// costFunc returns the fix cost and cost per meter for a type tag
type costFunc func(tag int) (fixCost, costPerMeter float32)

// --- Open list for A* ---

type heapEntry struct {
	idx  int     // Node index
	cost float32 // Estimated total cost f = g + h
}

// openList orders entries by ascending f through container/heap
type openList []heapEntry

func (o openList) Len() int           { return len(o) }
func (o openList) Less(i, j int) bool { return o[i].cost < o[j].cost }
func (o openList) Swap(i, j int)      { o[i], o[j] = o[j], o[i] }

func (o *openList) Push(x any) { *o = append(*o, x.(heapEntry)) }

func (o *openList) Pop() any {
	old := *o
	e := old[len(old)-1]
	*o = old[:len(old)-1]
	return e
}

// --- Search ---

const (
	stateFree uint8 = iota
	stateOpen
	stateClosed
)

// search runs A* from start to goal and returns the waypoints after start
// Entering a link whose tag differs from the tag the node was reached with adds
// the fix cost of the new tag; every link adds cost per meter times its length.
// Nodes whose estimated total reaches blockingCost are never opened.
func (g *graph) search(start, goal int, costs costFunc, blockingCost float32) (waypoints []vmath.DVector, expanded int, found bool) {
	n := len(g.nodes)
	gCost := make([]float32, n)
	parent := make([]int, n)
	via := make([]int, n) // link index in the parent used to reach the node
	arrival := make([]int, n)
	state := make([]uint8, n)
	for i := range parent {
		parent[i] = -1
	}

	target := g.nodes[goal].pos
	heuristic := func(i int) float32 {
		return float32(vmath.DVDistance(g.nodes[i].pos, target))
	}

	open := make(openList, 0, 16)
	arrival[start] = g.nodes[start].tag
	state[start] = stateOpen
	heap.Push(&open, heapEntry{idx: start, cost: heuristic(start)})

	for len(open) > 0 {
		cur := heap.Pop(&open).(heapEntry).idx
		if state[cur] == stateClosed {
			continue
		}
		state[cur] = stateClosed
		expanded++

		if cur == goal {
			return g.unwind(goal, parent, via), expanded, true
		}

		from := &g.nodes[cur]
		for li, l := range from.links {
			if state[l.to] == stateClosed {
				continue
			}
			fixCost, costPerMeter := costs(l.tag)
			cost := gCost[cur] + costPerMeter*float32(vmath.DVDistance(from.pos, g.nodes[l.to].pos))
			if l.tag != arrival[cur] {
				cost += fixCost
			}
			total := cost + heuristic(l.to)
			if total >= blockingCost {
				continue
			}
			if state[l.to] == stateOpen && cost >= gCost[l.to] {
				continue
			}
			gCost[l.to] = cost
			parent[l.to] = cur
			via[l.to] = li
			arrival[l.to] = l.tag
			state[l.to] = stateOpen
			heap.Push(&open, heapEntry{idx: l.to, cost: total})
		}
	}
	return nil, expanded, false
}

// unwind collects the link waypoints from the start to goal, start excluded
func (g *graph) unwind(goal int, parent, via []int) []vmath.DVector {
	var reversed []vmath.DVector
	for cur := goal; parent[cur] >= 0; cur = parent[cur] {
		reversed = append(reversed, g.nodes[parent[cur]].links[via[cur]].waypoint)
	}
	out := make([]vmath.DVector, len(reversed))
	for i, p := range reversed {
		out[len(reversed)-1-i] = p
	}
	return out
}

// findPath snaps both points to the graph and searches between them
// The goal point closes the path unless the last waypoint already lies on it.
func (g *graph) findPath(start, goal vmath.DVector, maxOutside float32, costs costFunc, blockingCost float32) ([]vmath.DVector, int, bool) {
	if len(g.nodes) == 0 {
		return nil, 0, false
	}
	from, _, d := g.nearestNode(start)
	if d > float64(maxOutside) {
		return nil, 0, false
	}
	to, _, d := g.nearestNode(goal)
	if d > float64(maxOutside) {
		return nil, 0, false
	}

	waypoints, expanded, ok := g.search(from, to, costs, blockingCost)
	if !ok {
		return nil, expanded, false
	}
	if len(waypoints) == 0 || vmath.DVDistance(waypoints[len(waypoints)-1], goal) > pathThreshold {
		waypoints = append(waypoints, goal)
	}
	return waypoints, expanded, true
}
