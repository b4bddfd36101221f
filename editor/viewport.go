package editor

import "github.com/gogpu/glyphmesh/geom"

// Zoom step limits per scroll event.
const (
	minZoomStep = 0.5
	maxZoomStep = 2.0
)

// Viewport maps window coordinates to layout coordinates:
//
//	window = layout*Scale + Translate
//
// Viewport is a value; Pan and Zoom return a new one.
type Viewport struct {
	Translate geom.Point
	Scale     float64
}

// Identity is the viewport that maps window and layout space one to one.
var Identity = Viewport{Scale: 1}

// ToLocal converts a window point to layout space.
func (v Viewport) ToLocal(p geom.Point) geom.Point {
	s := v.scale()
	return geom.Pt((p.X-v.Translate.X)/s, (p.Y-v.Translate.Y)/s)
}

// ToWindow converts a layout point to window space.
func (v Viewport) ToWindow(p geom.Point) geom.Point {
	return p.Mul(v.scale()).Add(v.Translate)
}

// Pan moves the content by (dx, dy) window pixels.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.Translate = v.Translate.Add(geom.Pt(dx, dy))
	return v
}

// Zoom scales the content around window point at, keeping the layout point
// under it fixed. delta is a scroll amount; each 20 units halve or double
// the scale at most.
func (v Viewport) Zoom(at geom.Point, delta float64) Viewport {
	anchor := v.ToLocal(at)
	ratio := min(max(1-delta/20, minZoomStep), maxZoomStep)
	v.Scale = v.scale() * ratio
	v.Translate = at.Sub(anchor.Mul(v.Scale))
	return v
}

func (v Viewport) scale() float64 {
	if v.Scale == 0 {
		return 1
	}
	return v.Scale
}
