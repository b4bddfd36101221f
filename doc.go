// Package glyphmesh lays out styled text and turns it into triangles that
// a GPU can fill with resolution-independent glyph curves.
//
// # Overview
//
// glyphmesh is a Pure Go text engine for the GoGPU ecosystem. It splits
// text into characters and UAX #14 break segments, resolves a font for
// every character with per-script fallback, wraps and aligns lines inside
// a box, and tessellates every glyph outline into solid triangles plus
// Loop-Blinn curve triangles.
//
// # Quick Start
//
//	import "github.com/gogpu/glyphmesh"
//
//	lib := fonts.NewLibrary(fonts.WithLoader(fonts.DirLoader{Root: "fonts"}))
//	lib.Register(fonts.Meta{Family: "Roboto", Style: "Regular", Path: "Roboto-Regular.ttf"})
//
//	t := glyphmesh.New(lib, glyphmesh.WithOnRelayout(redraw))
//	t.SetConfig(text.SingleStyle("Hello", style, box))
//	frame, err := t.Update(ctx)
//
//	// frame.Stream.Bytes() is the vertex buffer, laid out as
//	// mesh.VertexBufferLayout(); mesh.CompileShader() fills it.
//
// # Packages
//
//   - [github.com/gogpu/glyphmesh/fonts]: font handles, metadata and the
//     font library with asynchronous loading
//   - [github.com/gogpu/glyphmesh/text]: tokenization, fallback, line
//     breaking, layout, cursor location, movement and selection
//   - [github.com/gogpu/glyphmesh/mesh]: curve classification, glyph and
//     polygon tessellation, the vertex stream and its shader
//   - [github.com/gogpu/glyphmesh/editor]: caret and selection driven by
//     keyboard and pointer input
//   - [github.com/gogpu/glyphmesh/markup]: a description language for
//     styled text boxes
//
// # Asynchronous Fallback
//
// Layout never waits for a font. Characters whose fallback font is not
// loaded yet are drawn with a placeholder, and Update starts a background
// pass that loads those fonts and publishes a new Frame. Frames built for a
// configuration that has since been replaced are dropped.
//
// # Logging
//
// glyphmesh is silent by default. Use [SetLogger] to enable diagnostics.
package glyphmesh
