package fonts

import "github.com/gogpu/glyphmesh/geom"

// SegmentOp is the operator of an outline segment.
type SegmentOp uint8

// Outline segment operators.
const (
	SegmentMoveTo SegmentOp = iota
	SegmentLineTo
	SegmentQuadTo
	SegmentCubeTo
	SegmentClose
)

// String returns the SVG-style command letter.
func (op SegmentOp) String() string {
	switch op {
	case SegmentMoveTo:
		return "M"
	case SegmentLineTo:
		return "L"
	case SegmentQuadTo:
		return "Q"
	case SegmentCubeTo:
		return "C"
	case SegmentClose:
		return "Z"
	default:
		return "?"
	}
}

// Segment is one outline command. The end point is always the last used
// argument: Args[0] for move/line, Args[1] for quad, Args[2] for cubic.
type Segment struct {
	Op   SegmentOp
	Args [3]geom.Point
}

// Outline is a sequence of contours. Every contour starts with a move and
// ends with a close.
type Outline struct {
	Segments []Segment
}

// Place maps the outline from font units (Y up) into layout space (Y down)
// with the glyph origin at (x, y) and the given font-unit scale.
func (o Outline) Place(x, y, scale float64) Outline {
	out := Outline{Segments: make([]Segment, len(o.Segments))}
	for i, s := range o.Segments {
		out.Segments[i].Op = s.Op
		for j, p := range s.Args {
			out.Segments[i].Args[j] = geom.Pt(x+p.X*scale, y-p.Y*scale)
		}
	}
	return out
}

// outlineBuilder accumulates segments and inserts close commands between
// contours, since neither backend reports them.
type outlineBuilder struct {
	segs []Segment
	open bool
}

func (b *outlineBuilder) moveTo(p geom.Point) {
	b.close()
	b.segs = append(b.segs, Segment{Op: SegmentMoveTo, Args: [3]geom.Point{p}})
	b.open = true
}

func (b *outlineBuilder) lineTo(p geom.Point) {
	b.segs = append(b.segs, Segment{Op: SegmentLineTo, Args: [3]geom.Point{p}})
}

func (b *outlineBuilder) quadTo(c, p geom.Point) {
	b.segs = append(b.segs, Segment{Op: SegmentQuadTo, Args: [3]geom.Point{c, p}})
}

func (b *outlineBuilder) cubeTo(c1, c2, p geom.Point) {
	b.segs = append(b.segs, Segment{Op: SegmentCubeTo, Args: [3]geom.Point{c1, c2, p}})
}

func (b *outlineBuilder) close() {
	if b.open {
		b.segs = append(b.segs, Segment{Op: SegmentClose})
		b.open = false
	}
}

func (b *outlineBuilder) outline() Outline {
	b.close()
	return Outline{Segments: b.segs}
}
