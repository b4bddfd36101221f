// Package geom provides the small set of 2D primitives shared by text layout
// and glyph tessellation: points, quadratic and cubic Bézier segments, and
// polygon predicates with epsilon snapping.
//
// Coordinates are float64 with Y growing downward, matching the layout space
// produced by package text.
package geom
