// Package fonts defines the font handle consumed by text layout and glyph
// tessellation, together with the pieces needed to obtain handles: parser
// backends, font metadata with weight/style labels, weight matching and a
// Library that loads fonts asynchronously with de-duplication.
//
// All handle metrics are expressed in font units. Outlines use font units
// with Y growing up, as stored in the font; Outline.Place converts them to
// layout space.
//
// Two parser backends are registered:
//
//   - "sfnt" (default): golang.org/x/image/font/sfnt
//   - "gotext": github.com/go-text/typesetting/font
package fonts
