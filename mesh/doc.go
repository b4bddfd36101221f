// Package mesh tessellates glyph outlines for resolution-independent GPU
// rendering with the Loop–Blinn technique.
//
// Every Bézier segment of an outline is classified (serpentine, loop, cusp,
// quadratic or line) and its control hull is covered with curved triangles
// whose vertices carry implicit-curve coefficients (k, l, m). A fragment is
// inside the curve when k³ − l·m ≤ 0. The straight-edged interior left after
// curve extraction is triangulated with holes by a constrained Delaunay
// sweep and emitted with the sentinel coefficients (−1, 0, 0).
//
// The output Stream is a flat list of (x, y, k, l, m) vertices, three per
// triangle, described by VertexBufferLayout and consumed by the shader
// returned from ShaderSource.
//
// Basic usage:
//
//	info, _ := engine.Layout(cfg)
//	stream, err := mesh.NewTessellator(0).Tessellate(info)
//	upload(stream.Bytes(), stream.VertexCount())
package mesh
