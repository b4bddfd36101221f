package geom

import "math"

// Point is a position or a displacement in glyph space. Y grows downward
// once a glyph has been placed on a line.
type Point struct {
	X, Y float64
}

// Pt builds a Point.
func Pt(x, y float64) Point { return Point{x, y} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(s float64) Point   { return Point{p.X * s, p.Y * s} }
func (p Point) Dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Distance is the Euclidean distance from p to q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Lerp walks from p toward q by t; Lerp(q, 0) is p and Lerp(q, 1) is q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// ApproxEqual treats points closer than Epsilon as the same vertex.
func (p Point) ApproxEqual(q Point) bool {
	return p.Distance(q) < Epsilon
}

// Rect is a layout box: origin at the top-left corner, then extent.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains includes the edges, so a caret on the right border hits.
func (r Rect) Contains(p Point) bool {
	return r.X <= p.X && p.X <= r.Right() && r.Y <= p.Y && p.Y <= r.Bottom()
}
