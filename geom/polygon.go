package geom

import "math"

// Epsilon is the snapping tolerance used by the geometric predicates.
const Epsilon = 1e-9

// RoundToZero snaps values within Epsilon of zero to exactly zero.
func RoundToZero(v float64) float64 {
	if v > -Epsilon && v < Epsilon {
		return 0
	}
	return v
}

// Polygon is an ordered ring of points. The closing edge from the last
// point back to the first is implicit.
type Polygon []Point

// SignedArea returns the shoelace area of the polygon. With Y growing down,
// clockwise rings on screen have positive area.
func SignedArea(poly Polygon) float64 {
	if len(poly) < 3 {
		return 0
	}
	var area float64
	last := len(poly) - 1
	for i := 0; i < last; i++ {
		area += poly[i].Cross(poly[i+1])
	}
	area += poly[last].Cross(poly[0])
	return area / 2
}

// TriangleArea returns the signed area of the triangle (a, b, c).
func TriangleArea(a, b, c Point) float64 {
	return SignedArea(Polygon{a, b, c})
}

// Inside reports whether p lies inside the polygon using an even-odd
// crossing count. Points within Epsilon of a horizontal vertex row are
// nudged upward so shared vertices are counted once.
func Inside(poly Polygon, p Point) bool {
	if len(poly) < 3 {
		return false
	}
	count := 0
	curr := poly[len(poly)-1]
	for _, next := range poly {
		lo, hi := curr, next
		if curr.Y >= next.Y {
			lo, hi = next, curr
		}
		if lo.Y < p.Y+Epsilon && hi.Y > p.Y+Epsilon &&
			hi.Sub(lo).Cross(p.Sub(lo)) > 0 {
			count++
		}
		curr = next
	}
	return count%2 != 0
}

// SegmentsIntersect reports whether segments (a0,a1) and (b0,b1) cross at a
// single interior point. Touching endpoints and collinear overlaps do not
// count.
func SegmentsIntersect(a0, a1, b0, b1 Point) bool {
	if math.Min(a0.X, a1.X) >= math.Max(b0.X, b1.X) ||
		math.Min(a0.Y, a1.Y) >= math.Max(b0.Y, b1.Y) ||
		math.Min(b0.X, b1.X) >= math.Max(a0.X, a1.X) ||
		math.Min(b0.Y, b1.Y) >= math.Max(a0.Y, a1.Y) {
		return false
	}

	ab := a1.Sub(a0)
	cd := b1.Sub(b0)
	if ab.Cross(b0.Sub(a0))*ab.Cross(b1.Sub(a0)) >= 0 {
		return false
	}
	if cd.Cross(a0.Sub(b0))*cd.Cross(a1.Sub(b0)) >= 0 {
		return false
	}
	return true
}

// InsideTriangle reports whether p lies inside triangle (a, b, c) using
// barycentric coordinates. Degenerate triangles contain nothing.
func InsideTriangle(a, b, c, p Point) bool {
	ac := c.Sub(a)
	ab := b.Sub(a)
	ap := p.Sub(a)

	dot00 := ac.Dot(ac)
	dot01 := ac.Dot(ab)
	dot02 := ac.Dot(ap)
	dot11 := ab.Dot(ab)
	dot12 := ab.Dot(ap)

	den := dot00*dot11 - dot01*dot01
	if den == 0 {
		return false
	}
	inv := 1 / den
	u := (dot11*dot02 - dot01*dot12) * inv
	v := (dot00*dot12 - dot01*dot02) * inv
	return u >= 0 && v >= 0 && u+v < 1
}
