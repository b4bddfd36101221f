package mesh

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/ByteArena/poly2tri-go"

	"github.com/gogpu/glyphmesh/geom"
	"github.com/gogpu/glyphmesh/internal/logger"
)

// ErrTriangulation is returned when a contour group cannot be triangulated,
// typically because of self-intersecting or overlapping rings.
var ErrTriangulation = errors.New("mesh: triangulation failed")

// Group is a contour with the contours directly nested in it. Children
// have the opposite winding and are holes of the group.
type Group struct {
	Polygon  geom.Polygon
	Area     float64 // signed
	Children []*Group
}

// GroupPolygons builds the nesting forest of a set of closed contours.
//
// Contours are sorted by absolute area, largest first. Each contour's
// parent is the nearest larger contour that contains its first point and
// winds the other way; contours without a parent are roots.
func GroupPolygons(polys []geom.Polygon) []*Group {
	groups := make([]*Group, 0, len(polys))
	for _, p := range polys {
		if len(p) == 0 {
			continue
		}
		groups = append(groups, &Group{Polygon: p, Area: geom.SignedArea(p)})
	}
	slices.SortStableFunc(groups, func(a, b *Group) int {
		return cmp.Compare(math.Abs(b.Area), math.Abs(a.Area))
	})

	var roots []*Group
	for i, g := range groups {
		var parent *Group
		for j := i - 1; j >= 0; j-- {
			if g.Area*groups[j].Area < 0 && geom.Inside(groups[j].Polygon, g.Polygon[0]) {
				parent = groups[j]
				break
			}
		}
		if parent != nil {
			parent.Children = append(parent.Children, g)
		} else {
			roots = append(roots, g)
		}
	}
	return roots
}

// TriangulatePolygons triangulates closed contours with holes. Each root
// group is triangulated with its children as holes; grandchildren start new
// roots. Groups that fail are skipped and reported in the joined error;
// triangles of the other groups are still returned.
func TriangulatePolygons(polys []geom.Polygon) ([]SolidTriangle, error) {
	var (
		tris []SolidTriangle
		errs []error
	)
	var walk func(g *Group)
	walk = func(g *Group) {
		out, err := triangulateGroup(g)
		if err != nil {
			logger.Get().Warn("mesh: skipping contour group",
				"points", len(g.Polygon), "holes", len(g.Children), "err", err)
			errs = append(errs, err)
		}
		tris = append(tris, out...)
		for _, child := range g.Children {
			for _, grand := range child.Children {
				walk(grand)
			}
		}
	}
	for _, g := range GroupPolygons(polys) {
		walk(g)
	}
	return tris, errors.Join(errs...)
}

// triangulateGroup runs the constrained Delaunay sweep on one outer ring
// and its holes. The sweep panics on degenerate input, so panics are
// turned into ErrTriangulation.
func triangulateGroup(g *Group) (tris []SolidTriangle, err error) {
	outer := ring(g.Polygon)
	if len(outer) < 3 {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			tris = nil
			err = fmt.Errorf("%w: %v", ErrTriangulation, r)
		}
	}()

	sc := poly2tri.NewSweepContext(outer, false)
	for _, child := range g.Children {
		if hole := ring(child.Polygon); len(hole) >= 3 {
			sc.AddHole(hole)
		}
	}
	sc.Triangulate()

	for _, t := range sc.GetTriangles() {
		tris = append(tris, SolidTriangle{
			geom.Pt(t.Points[0].X, t.Points[0].Y),
			geom.Pt(t.Points[1].X, t.Points[1].Y),
			geom.Pt(t.Points[2].X, t.Points[2].Y),
		})
	}
	return tris, nil
}

// ring converts a contour to sweep points, dropping repeated points, the
// closing point and vertices collinear with their neighbors. The sweep
// rejects all three.
func ring(poly geom.Polygon) []*poly2tri.Point {
	pts := make([]geom.Point, 0, len(poly))
	for _, p := range poly {
		if n := len(pts); n > 0 && pts[n-1].ApproxEqual(p) {
			continue
		}
		pts = append(pts, p)
	}
	for len(pts) > 1 && pts[0].ApproxEqual(pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}

	for changed := true; changed && len(pts) >= 3; {
		changed = false
		for i := 0; i < len(pts) && len(pts) >= 3; i++ {
			prev := pts[(i+len(pts)-1)%len(pts)]
			next := pts[(i+1)%len(pts)]
			if geom.RoundToZero(next.Sub(prev).Cross(pts[i].Sub(prev))) == 0 {
				pts = slices.Delete(pts, i, i+1)
				changed = true
				i--
			}
		}
	}

	out := make([]*poly2tri.Point, len(pts))
	for i, p := range pts {
		out[i] = poly2tri.NewPoint(p.X, p.Y)
	}
	return out
}
