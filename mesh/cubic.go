package mesh

import "github.com/gogpu/glyphmesh/geom"

// maxLoopDepth caps loop splitting. A loop split once does not loop again.
const maxLoopDepth = 1

// TessellateCubic classifies c, computes its KLM coefficients for the given
// fill side and appends the curved triangles covering its control hull to
// dst. A loop whose double point lies inside the segment is split there
// and each half is tessellated on its own, plus a solid triangle closing
// the gap between the halves when the split leaves one on the fill side.
func TessellateCubic(dst []Triangle, c geom.CubicBez, side FillSide) []Triangle {
	return tessellateCubic(dst, c, side, 0)
}

func tessellateCubic(dst []Triangle, c geom.CubicBez, side FillSide, depth int) []Triangle {
	p := Params(c)
	res := ComputeKLM(p.Type(), p, side, depth)

	if res.LoopSplit != 0 && depth < maxLoopDepth {
		c1, c2 := c.Split(res.Split)

		s1, s2 := FillRight, FillRight
		if res.LoopSplit == -1 {
			s1 = FillLeft
		} else {
			s2 = FillLeft
		}
		dst = tessellateCubic(dst, c1, s1, depth+1)
		dst = tessellateCubic(dst, c2, s2, depth+1)

		area := geom.TriangleArea(c1.P0, c1.P3, c2.P3)
		if (side == FillLeft && area < 0) || (side == FillRight && area > 0) {
			dst = append(dst, Triangle{
				solidVertex(c1.P0),
				solidVertex(c1.P3),
				solidVertex(c2.P3),
			})
		}
		return dst
	}

	var verts [4]Vertex
	for i, pt := range c.Points() {
		verts[i] = Vertex{X: pt.X, Y: pt.Y, K: res.Coeffs[i][0], L: res.Coeffs[i][1], M: res.Coeffs[i][2]}
	}
	return TriangulateCubic(dst, verts)
}

// TriangulateCubic appends triangles covering the control hull of four
// decorated control points:
//
//   - two coincident points: the single triangle of the other three
//   - one point inside the triangle of the others: a fan of three
//   - otherwise two triangles split along the shorter crossing diagonal
func TriangulateCubic(dst []Triangle, v [4]Vertex) []Triangle {
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if !v[i].Point().ApproxEqual(v[j].Point()) {
				continue
			}
			var tri Triangle
			n := 0
			for k := 0; k < 4; k++ {
				if k != j {
					tri[n] = v[k]
					n++
				}
			}
			return append(dst, tri)
		}
	}

	for i := 0; i < 4; i++ {
		var rest [3]Vertex
		n := 0
		for j := 0; j < 4; j++ {
			if j != i {
				rest[n] = v[j]
				n++
			}
		}
		if geom.InsideTriangle(rest[0].Point(), rest[1].Point(), rest[2].Point(), v[i].Point()) {
			for k := 0; k < 3; k++ {
				dst = append(dst, Triangle{rest[k%3], rest[(k+1)%3], v[i]})
			}
			return dst
		}
	}

	p := [4]geom.Point{v[0].Point(), v[1].Point(), v[2].Point(), v[3].Point()}
	switch {
	case geom.SegmentsIntersect(p[0], p[2], p[1], p[3]):
		if p[0].Distance(p[2]) < p[1].Distance(p[3]) {
			return append(dst, Triangle{v[0], v[1], v[2]}, Triangle{v[0], v[2], v[3]})
		}
		return append(dst, Triangle{v[0], v[1], v[3]}, Triangle{v[1], v[2], v[3]})
	case geom.SegmentsIntersect(p[0], p[3], p[1], p[2]):
		if p[0].Distance(p[3]) < p[1].Distance(p[2]) {
			return append(dst, Triangle{v[0], v[1], v[3]}, Triangle{v[0], v[3], v[2]})
		}
		return append(dst, Triangle{v[0], v[1], v[2]}, Triangle{v[2], v[1], v[3]})
	default:
		if p[0].Distance(p[1]) < p[2].Distance(p[3]) {
			return append(dst, Triangle{v[0], v[2], v[1]}, Triangle{v[0], v[1], v[3]})
		}
		return append(dst, Triangle{v[0], v[2], v[3]}, Triangle{v[3], v[2], v[1]})
	}
}
