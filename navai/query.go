package navai

import (
	"github.com/chewxy/math32"

	"github.com/LordOfDragons/dragengine-sub060/navigation"
	"github.com/LordOfDragons/dragengine-sub060/shape"
	"github.com/LordOfDragons/dragengine-sub060/vmath"
)

// nearestPoint returns the closest navigable point within radius and its type tag
// Grids consider their edges, meshes the XZ projection of their faces
func (g *graph) nearestPoint(p vmath.DVector, radius float32) (vmath.DVector, int, bool) {
	best := float64(radius)
	var point vmath.DVector
	tag, found := 0, false

	switch g.key.spaceType {
	case navigation.SpaceGrid:
		for _, e := range g.edges {
			c := closestOnSegment(p, e.a, e.b)
			if d := vmath.DVDistance(p, c); d <= best {
				best, point, tag, found = d, c, e.tag, true
			}
		}
	case navigation.SpaceMesh:
		for i := range g.nodes {
			c := g.closestOn(i, p)
			if d := vmath.DVDistance(p, c); d <= best {
				best, point, tag, found = d, c, g.nodes[i].tag, true
			}
		}
	}
	return point, tag, found
}

// closestOnSegment works relative to a to keep double precision positions exact
func closestOnSegment(p, a, b vmath.DVector) vmath.DVector {
	rel, t := vmath.ClosestPointOnSegment(vmath.DVSub(p, a).ToVector(), vmath.Vector{}, vmath.DVSub(b, a).ToVector())
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	return vmath.DVAdd(a, rel.ToDVector())
}

// lineCollide walks origin+direction in XZ and reports where it first leaves the mesh
// The origin has to lie inside a navigable face; grids never collide
func (g *graph) lineCollide(origin vmath.DVector, direction vmath.Vector) (float32, bool) {
	if g.key.spaceType != navigation.SpaceMesh || g.faceAt(origin) < 0 {
		return noHitDistance, false
	}
	end := vmath.DVAdd(origin, direction.ToDVector())
	o, e := vmath.Vector{}, vmath.DVSub(end, origin).ToVector()

	best, hit := float32(noHitDistance), false
	for _, b := range g.boundary {
		t, _, ok := vmath.SegmentIntersectXZ(o, e, vmath.DVSub(b.a, origin).ToVector(), vmath.DVSub(b.b, origin).ToVector())
		if ok && t < best {
			best, hit = t, true
		}
	}
	return best, hit
}

const noHitDistance = 1

// --- Path collision ---

// pathRay describes which part of a path a collision test covers
type pathRay struct {
	// origin replaces the first point when fromOrigin is set
	origin     vmath.DVector
	fromOrigin bool
	nextPoint  int
	// maxDistance limits the tested length when limited is set
	maxDistance float32
	limited     bool
}

// wholePath tests every segment of the path
func wholePath() pathRay {
	return pathRay{nextPoint: 1}
}

// pathRange tests from origin through path[nextPoint:] for at most maxDistance
func pathRange(origin vmath.DVector, nextPoint int, maxDistance float32) pathRay {
	return pathRay{origin: origin, fromOrigin: true, nextPoint: nextPoint, maxDistance: maxDistance, limited: true}
}

// collidePath tests the path segments against shapes placed at collider
// hitAfterPoint is the index of the path point preceding the hit, -1 for a hit
// between origin and the first path point; hitDistance is the fraction along that segment.
func collidePath(path *navigation.Path, collider navigation.Collider, shapes *shape.List, r pathRay) (hitAfterPoint int, hitDistance float32, ok bool) {
	if path == nil || shapes.Count() == 0 || r.nextPoint < 0 || r.nextPoint >= path.Count() {
		return -1, 0, false
	}
	tf := vmath.NewTransform(collider.Position(), collider.Orientation())

	prev := r.origin
	if !r.fromOrigin {
		prev, _ = path.At(r.nextPoint - 1)
	}
	remaining := float64(r.maxDistance)
	if r.limited && remaining <= 0 {
		return -1, 0, false
	}

	for i := r.nextPoint; i < path.Count(); i++ {
		next, _ := path.At(i)
		length := vmath.DVDistance(prev, next)
		end, span := next, float32(1)
		if r.limited && length > remaining {
			span = float32(remaining / length)
			end = vmath.DVLerp(prev, next, remaining/length)
		}

		a := tf.ToLocal(prev)
		b := tf.ToLocal(end)
		if t, hit := shapes.RayHit(a, vmath.VSub(b, a)); hit {
			return i - 1, math32.Min(t*span, 1), true
		}

		if r.limited {
			remaining -= length
			if remaining <= 0 {
				break
			}
		}
		prev = next
	}
	return -1, 0, false
}

// agentShapes grows the obstacle shapes by the bounding radius of the agent
func agentShapes(collider, agent navigation.Collider) *shape.List {
	return collider.Shapes().Inflate(agent.Shapes().BoundingRadius())
}
