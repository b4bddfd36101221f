package text

import (
	"strings"

	"github.com/gogpu/glyphmesh/fonts"
)

// CharToken is one laid-out character bound to a concrete font and glyph.
//
// Tokens live in a single arena (TokenTree.Chars, later LayoutInfo.Tokens)
// and are addressed by index. Measurement writes Width, Height, LineHeight
// and Baseline; layout writes X and Y.
type CharToken struct {
	Char  rune
	Index int // position in the arena
	Style Style

	Font  fonts.Handle
	Glyph fonts.GlyphID

	X, Y       float64 // left edge and baseline
	Width      float64
	Height     float64
	LineHeight float64
	Baseline   float64
}

// scale converts font units of the token's font to pixels.
func (t *CharToken) scale() float64 {
	return t.Style.Size / t.Font.Metrics().UnitsPerEm
}

// SegmentToken is a run of characters between two line-break opportunities.
// Start and End delimit its tokens in the arena.
type SegmentToken struct {
	Text       string
	Start, End int
}

// ParagraphToken is one paragraph, including its trailing newline.
type ParagraphToken struct {
	Text       string
	Start, End int
	Segments   []SegmentToken
}

// TokenTree is the tokenizer output: the paragraph and segment structure
// over a flat token arena.
type TokenTree struct {
	Text       string
	Paragraphs []ParagraphToken
	Chars      []CharToken
}

// SplitParagraphs splits text after every newline. A text ending with a
// newline gets a trailing empty paragraph; the empty text is one empty
// paragraph.
func SplitParagraphs(text string) []string {
	return strings.SplitAfter(text, "\n")
}
