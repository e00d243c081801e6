package vmath

import (
	"github.com/chewxy/math32"
)

// ClosestPointOnSegment returns the point on segment ab closest to p and its parameter t in [0,1]
func ClosestPointOnSegment(p, a, b Vector) (Vector, float32) {
	ab := VSub(b, a)
	lenSq := VLengthSq(ab)
	if lenSq == 0 {
		return a, 0
	}
	t := Clamp(VDot(VSub(p, a), ab)/lenSq, 0, 1)
	return VAdd(a, VScale(ab, t)), t
}

// --- XZ plane ---

// cross2 is the z component of the 2D cross product in the XZ plane
func cross2(ax, az, bx, bz float32) float32 {
	return ax*bz - az*bx
}

// SegmentIntersectXZ intersects segments p0p1 and q0q1 projected onto XZ
// Returns the parameters along both segments
func SegmentIntersectXZ(p0, p1, q0, q1 Vector) (t, u float32, ok bool) {
	rx, rz := p1.X-p0.X, p1.Z-p0.Z
	sx, sz := q1.X-q0.X, q1.Z-q0.Z
	denom := cross2(rx, rz, sx, sz)
	if math32.Abs(denom) < Epsilon {
		return 0, 0, false
	}
	qpx, qpz := q0.X-p0.X, q0.Z-p0.Z
	t = cross2(qpx, qpz, sx, sz) / denom
	u = cross2(qpx, qpz, rx, rz) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return t, u, false
	}
	return t, u, true
}

// PointInPolygonXZ tests p against a convex or concave polygon in XZ using the crossing rule
func PointInPolygonXZ(p Vector, poly []Vector) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Z > p.Z) != (b.Z > p.Z) {
			x := (b.X-a.X)*(p.Z-a.Z)/(b.Z-a.Z) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ClosestPointOnPolygonXZ returns the closest point in the XZ projection of poly to p
// Y is interpolated from the nearest boundary or the polygon centroid plane
func ClosestPointOnPolygonXZ(p Vector, poly []Vector) Vector {
	flat := Vector{p.X, 0, p.Z}
	if PointInPolygonXZ(flat, poly) {
		return Vector{p.X, PolygonHeightAt(poly, p.X, p.Z), p.Z}
	}
	best := poly[0]
	bestDist := float32(math32.MaxFloat32)
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		c, t := ClosestPointOnSegment(flat, Vector{a.X, 0, a.Z}, Vector{b.X, 0, b.Z})
		if d := VDistance(c, flat); d < bestDist {
			bestDist = d
			best = VLerp(a, b, t)
		}
	}
	return best
}

// PolygonHeightAt evaluates the plane through the first three vertices of poly at x,z
func PolygonHeightAt(poly []Vector, x, z float32) float32 {
	if len(poly) < 3 {
		if len(poly) == 0 {
			return 0
		}
		return poly[0].Y
	}
	n := VCross(VSub(poly[1], poly[0]), VSub(poly[2], poly[0]))
	if math32.Abs(n.Y) < Epsilon {
		return poly[0].Y
	}
	return poly[0].Y - (n.X*(x-poly[0].X)+n.Z*(z-poly[0].Z))/n.Y
}

// Centroid averages the points
func Centroid(points []Vector) Vector {
	if len(points) == 0 {
		return Vector{}
	}
	var sum Vector
	for _, p := range points {
		sum = VAdd(sum, p)
	}
	return VScale(sum, 1/float32(len(points)))
}

// --- Rays ---

// RaySphere intersects origin+t*dir with a sphere, returns the smallest t in [0,1]
func RaySphere(origin, dir, center Vector, radius float32) (float32, bool) {
	m := VSub(origin, center)
	c := VLengthSq(m) - radius*radius
	if c <= 0 {
		return 0, true
	}
	a := VLengthSq(dir)
	if a == 0 {
		return 0, false
	}
	b := VDot(m, dir)
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	t := (-b - math32.Sqrt(disc)) / a
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// RayAABB intersects origin+t*dir with an axis aligned box, returns the entry t in [0,1]
func RayAABB(origin, dir, minB, maxB Vector) (float32, bool) {
	tmin, tmax := float32(0), float32(1)
	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{minB.X, minB.Y, minB.Z}
	hi := [3]float32{maxB.X, maxB.Y, maxB.Z}
	for i := 0; i < 3; i++ {
		if math32.Abs(d[i]) < Epsilon {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d[i]
		t1 := (lo[i] - o[i]) * inv
		t2 := (hi[i] - o[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
