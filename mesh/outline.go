package mesh

import (
	"github.com/gogpu/glyphmesh/fonts"
	"github.com/gogpu/glyphmesh/geom"
	"github.com/gogpu/glyphmesh/internal/logger"
)

// Mesh is the tessellation of one or more outlines.
type Mesh struct {
	Solid  []SolidTriangle
	Curves []Triangle
}

// AppendTo writes the mesh into s, solid triangles first.
func (m *Mesh) AppendTo(s *Stream) {
	s.AppendSolid(m.Solid...)
	s.AppendCurve(m.Curves...)
}

// OutlineTriangles tessellates a placed outline into curved triangles for
// every Bézier segment and solid triangles for the straight-edged interior.
//
// Each curve is split in half. A half contributes its control points to the
// interior polygon only when they fall on the inside of its chord, so the
// polygon hugs the hull and the curved triangles fill the rest. Quadratics
// are filled on the right, cubics on the left, matching the contour
// directions of TrueType and CFF outlines in Y-down space.
//
// Unsupported segment operators are logged and skipped. A triangulation
// failure drops the affected contour group and is returned alongside the
// rest of the mesh.
func OutlineTriangles(o fonts.Outline) (Mesh, error) {
	var (
		m     Mesh
		polys []geom.Polygon
		poly  geom.Polygon
		cur   geom.Point
	)

	addHalves := func(c geom.CubicBez, side FillSide) {
		c1, c2 := c.Subdivide()
		for _, h := range [2]geom.CubicBez{c1, c2} {
			m.Curves = TessellateCubic(m.Curves, h, side)
			if onFillSide(geom.TriangleArea(h.P0, h.P1, h.P3), side) {
				poly = append(poly, h.P1)
			}
			if onFillSide(geom.TriangleArea(h.P0, h.P2, h.P3), side) {
				poly = append(poly, h.P2)
			}
			poly = append(poly, h.P3)
		}
	}

	for _, seg := range o.Segments {
		switch seg.Op {
		case fonts.SegmentMoveTo, fonts.SegmentLineTo:
			p := seg.Args[0]
			if p == cur {
				continue
			}
			poly = append(poly, p)
			cur = p
		case fonts.SegmentQuadTo:
			q := geom.QuadBez{P0: cur, P1: seg.Args[0], P2: seg.Args[1]}
			addHalves(q.Raise(), FillRight)
			cur = q.P2
		case fonts.SegmentCubeTo:
			c := geom.CubicBez{P0: cur, P1: seg.Args[0], P2: seg.Args[1], P3: seg.Args[2]}
			addHalves(c, FillLeft)
			cur = c.P3
		case fonts.SegmentClose:
			if len(poly) > 0 {
				polys = append(polys, append(poly, poly[0]))
			}
			poly = nil
			cur = geom.Point{}
		default:
			logger.Get().Warn("mesh: unsupported outline segment", "op", seg.Op)
		}
	}
	if len(poly) > 0 {
		polys = append(polys, poly)
	}

	var err error
	m.Solid, err = TriangulatePolygons(polys)
	return m, err
}

// onFillSide reports whether a control point whose triangle with the chord
// has the given signed area lies inside the shape.
func onFillSide(area float64, side FillSide) bool {
	if side == FillRight {
		return area < 0
	}
	return area > 0
}
