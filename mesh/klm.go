package mesh

import (
	"math"

	"github.com/gogpu/glyphmesh/geom"
)

// CurveType is the Loop–Blinn classification of a cubic Bézier segment.
type CurveType uint8

// Curve classes.
const (
	CurveSerpentine CurveType = iota
	CurveLoop
	CurveCusp
	CurveQuadratic
	CurveLineOrPoint
)

// String returns the class name.
func (t CurveType) String() string {
	switch t {
	case CurveSerpentine:
		return "Serpentine"
	case CurveLoop:
		return "Loop"
	case CurveCusp:
		return "Cusp"
	case CurveQuadratic:
		return "Quadratic"
	case CurveLineOrPoint:
		return "LineOrPoint"
	default:
		return "Unknown"
	}
}

// FillSide selects which side of a curve, walking from P0 to P3, is inside
// the shape.
type FillSide uint8

// Fill sides.
const (
	FillLeft FillSide = iota
	FillRight
)

// String returns "Left" or "Right".
func (s FillSide) String() string {
	if s == FillRight {
		return "Right"
	}
	return "Left"
}

// opposite returns the other side.
func (s FillSide) opposite() FillSide {
	if s == FillRight {
		return FillLeft
	}
	return FillRight
}

// CubicParams holds the normalized inflection-point coefficients of a cubic.
//
// D1, D2, D3 and Discr are snapped to zero within geom.Epsilon; D is the
// raw discriminant 3·D2² − 4·D1·D3 used to break ties when Discr snaps.
type CubicParams struct {
	D1, D2, D3 float64
	D          float64
	Discr      float64
}

// Params computes the coefficients from the 3×3 determinants of the control
// points lifted to homogeneous coordinates.
func Params(c geom.CubicBez) CubicParams {
	b0 := vec3{c.P0.X, c.P0.Y, 1}
	b1 := vec3{c.P1.X, c.P1.Y, 1}
	b2 := vec3{c.P2.X, c.P2.Y, 1}
	b3 := vec3{c.P3.X, c.P3.Y, 1}

	a1 := b0.dot(b3.cross(b2))
	a2 := b1.dot(b0.cross(b3))
	a3 := b2.dot(b1.cross(b0))

	d1 := a1 - 2*a2 + 3*a3
	d2 := -a2 + 3*a3
	d3 := 3 * a3

	// Collinear control points have all three determinants at zero.
	if n := math.Sqrt(d1*d1 + d2*d2 + d3*d3); n > 0 {
		d1 /= n
		d2 /= n
		d3 /= n
	}

	d := 3*d2*d2 - 4*d1*d3
	return CubicParams{
		D1:    geom.RoundToZero(d1),
		D2:    geom.RoundToZero(d2),
		D3:    geom.RoundToZero(d3),
		D:     d,
		Discr: geom.RoundToZero(d1 * d1 * d),
	}
}

// Type classifies the cubic described by p.
func (p CubicParams) Type() CurveType {
	if p.Discr == 0 {
		switch {
		case p.D1 == 0 && p.D2 == 0 && p.D3 == 0:
			return CurveLineOrPoint
		case p.D1 == 0 && p.D2 == 0:
			return CurveQuadratic
		case p.D1 == 0:
			return CurveCusp
		case p.D < 0:
			return CurveLoop
		default:
			return CurveSerpentine
		}
	}
	if p.Discr > 0 {
		return CurveSerpentine
	}
	return CurveLoop
}

// Classify returns the curve class of c. It is a pure function of the four
// control points.
func Classify(c geom.CubicBez) CurveType {
	return Params(c).Type()
}

// KLM is the implicit-curve coefficient triple (k, l, m) of one control
// point. The curve is the zero set of k³ − l·m.
type KLM [3]float64

// KLMResult is the output of ComputeKLM.
type KLMResult struct {
	// Coeffs holds one triple per control point.
	Coeffs [4]KLM

	// LoopSplit is non-zero when a loop's double point lies strictly inside
	// the segment: -1 for the l root, 1 for the m root. Split is then the
	// parameter to split at.
	LoopSplit int
	Split     float64
}

// ComputeKLM returns the coefficients for a cubic of class t. depth is the
// loop-split recursion depth; at depth 0 loop orientation is corrected from
// the sign of the first coefficient.
func ComputeKLM(t CurveType, p CubicParams, side FillSide, depth int) KLMResult {
	var res KLMResult
	k := &res.Coeffs
	reverse := false
	d1, d2, d3 := p.D1, p.D2, p.D3

	switch t {
	case CurveSerpentine:
		t1 := math.Sqrt(math.Max(0, 9*d2*d2-12*d1*d3))
		ls, lt := 3*d2-t1, 6*d1
		ms, mt := 3*d2+t1, 6*d1

		k[0] = KLM{ls * ms, ls * ls * ls, ms * ms * ms}
		k[1] = KLM{
			(3*ls*ms - ls*mt - lt*ms) / 3,
			ls * ls * (ls - lt),
			ms * ms * (ms - mt),
		}
		k[2] = KLM{
			(lt*(mt-2*ms) + ls*(3*ms-2*mt)) / 3,
			(lt - ls) * (lt - ls) * ls,
			(mt - ms) * (mt - ms) * ms,
		}
		k[3] = KLM{
			(lt - ls) * (mt - ms),
			-cube(lt - ls),
			-cube(mt - ms),
		}
		reverse = d1 < 0

	case CurveCusp:
		ls, lt := d3, 3*d2
		k[0] = KLM{ls, cube(ls), 1}
		k[1] = KLM{ls - lt/3, ls * ls * (ls - lt), 1}
		k[2] = KLM{ls - 2*lt/3, (ls - lt) * (ls - lt) * ls, 1}
		k[3] = KLM{ls - lt, cube(ls - lt), 1}

	case CurveLoop:
		t1 := math.Sqrt(math.Max(0, 4*d1*d3-3*d2*d2))
		ls, lt := d2-t1, 2*d1
		ms, mt := d2+t1, 2*d1

		if ql := ls / lt; ql > 0 && ql < 1 {
			res.LoopSplit, res.Split = -1, ql
		}
		if qm := ms / mt; qm > 0 && qm < 1 {
			res.LoopSplit, res.Split = 1, qm
		}

		k[0] = KLM{ls * ms, ls * ls * ms, ls * ms * ms}
		k[1] = KLM{
			(-ls*mt - lt*ms + 3*ls*ms) / 3,
			-ls * (ls*(mt-3*ms) + 2*lt*ms) / 3,
			-ms * (ls*(2*mt-3*ms) + lt*ms) / 3,
		}
		k[2] = KLM{
			(lt*(mt-2*ms) + ls*(3*ms-2*mt)) / 3,
			(lt - ls) * (ls*(2*mt-3*ms) + lt*ms) / 3,
			(mt - ms) * (ls*(mt-3*ms) + 2*lt*ms) / 3,
		}
		k[3] = KLM{
			(lt - ls) * (mt - ms),
			-(lt - ls) * (lt - ls) * (mt - ms),
			-(lt - ls) * (mt - ms) * (mt - ms),
		}
		if depth < 1 {
			reverse = (d1 > 0 && k[0][0] < 0) || (d1 < 0 && k[0][0] > 0)
		}

	case CurveQuadratic:
		k[1] = KLM{1.0 / 3, 0, 1.0 / 3}
		k[2] = KLM{2.0 / 3, 1.0 / 3, 2.0 / 3}
		k[3] = KLM{1, 1, 1}
		reverse = d3 < 0

	case CurveLineOrPoint:
	}

	if side == FillRight {
		reverse = !reverse
	}
	if reverse {
		for i := range k {
			k[i][0] = -k[i][0]
			k[i][1] = -k[i][1]
		}
	}
	return res
}

func cube(v float64) float64 { return v * v * v }

type vec3 [3]float64

func (a vec3) dot(b vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a vec3) cross(b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
