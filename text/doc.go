// Package text lays out styled multi-paragraph text and answers cursor and
// selection queries over the result.
//
// # Pipeline
//
// Engine.Layout runs, in order:
//
//   - letter case transform per style
//   - paragraph split after every newline
//   - tokenization: UAX #14 line-break segments, one CharToken per
//     character bound to a loaded font and glyph (see Tokenizer)
//   - line breaking with optional word wrap (see BreakLines)
//   - positioning inside the box per horizontal and vertical alignment
//
// The result is an immutable LayoutInfo. Tokens live in one arena,
// LayoutInfo.Tokens, and every Line addresses a contiguous range of it.
//
// # Font fallback
//
// Layout only uses fonts that are already loaded. Characters the requested
// font cannot render go through the Fallback chain of their script; when no
// loaded fallback font has a glyph, a placeholder glyph is used and
// Fallback.ResolveAll loads the missing fonts so a later layout pass can
// pick them up.
//
// # Cursor addressing
//
// A TextPos is a (row, column) address; a linear index counts tokens from
// the start of the text. LayoutInfo converts between pixels, TextPos values
// and indices (Row, Col, TextPosAt, PointAt, IndexOf, TextPosOf). The
// movement functions (Left, Right, Up, Down, WordStart, ...) and the peek
// functions (PeekWord, PeekLine) are pure functions of a LayoutInfo and a
// position. Out-of-range input is clamped.
package text
