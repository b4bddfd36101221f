package text

import (
	"fmt"

	"github.com/go-text/typesetting/segmenter"

	"github.com/gogpu/glyphmesh/fonts"
	"github.com/gogpu/glyphmesh/internal/logger"
)

// Tokenizer splits paragraphs into line-break segments and characters and
// binds every character to a font and glyph using only loaded fonts.
type Tokenizer struct {
	source   FontSource
	fallback *Fallback
}

// NewTokenizer creates a Tokenizer. A nil fb creates a Fallback with the
// default families.
func NewTokenizer(src FontSource, fb *Fallback) *Tokenizer {
	if fb == nil {
		fb = NewFallback(src, nil)
	}
	return &Tokenizer{source: src, fallback: fb}
}

// Fallback returns the fallback resolver used by the tokenizer.
func (t *Tokenizer) Fallback() *Fallback { return t.fallback }

// Tokenize tokenizes paragraphs. styleIndex holds one style key per
// character of the concatenated paragraphs.
//
// A character whose font is loaded and has a glyph uses that font. Otherwise
// the cached fallback chain is consulted; when it yields nothing the
// character is drawn with the space glyph of its own font, or with the
// candidate font's notdef glyph when its font is not loaded. Newlines never
// fall back.
func (t *Tokenizer) Tokenize(paragraphs []string, styleIndex []int, styles map[int]Style) (*TokenTree, error) {
	tree := &TokenTree{Paragraphs: make([]ParagraphToken, 0, len(paragraphs))}
	for _, p := range paragraphs {
		tree.Text += p
	}

	var breaker segmenter.Segmenter
	index := 0
	for _, p := range paragraphs {
		runes := []rune(p)
		para := ParagraphToken{Text: p, Start: index}

		if len(runes) > 0 {
			breaker.Init(runes)
			it := breaker.LineIterator()
			for it.Next() {
				line := it.Line()
				seg := SegmentToken{Text: string(line.Text), Start: index}
				for _, r := range line.Text {
					if index >= len(styleIndex) {
						return nil, fmt.Errorf("%w: no style for character %d", ErrInvalidStyleIndex, index)
					}
					style, ok := styles[styleIndex[index]]
					if !ok {
						return nil, fmt.Errorf("%w: character %d uses style %d", ErrInvalidStyleIndex, index, styleIndex[index])
					}
					font, glyph, err := t.resolve(r, style)
					if err != nil {
						return nil, err
					}
					tree.Chars = append(tree.Chars, CharToken{
						Char:  r,
						Index: index,
						Style: style,
						Font:  font,
						Glyph: glyph,
					})
					index++
				}
				seg.End = index
				para.Segments = append(para.Segments, seg)
			}
		}

		para.End = index
		tree.Paragraphs = append(tree.Paragraphs, para)
	}

	logger.Get().Debug("text: tokenized", "paragraphs", len(tree.Paragraphs), "chars", len(tree.Chars))
	return tree, nil
}

func (t *Tokenizer) resolve(r rune, style Style) (fonts.Handle, fonts.GlyphID, error) {
	original, hasOriginal := t.source.Cached(style.Family, style.Weight)

	if isEnter(r) {
		if hasOriginal {
			return original, fonts.NotdefGlyph, nil
		}
		return t.candidate(fonts.NotdefGlyph)
	}

	if hasOriginal {
		if gid, ok := original.GlyphIndex(r); (ok && gid != fonts.NotdefGlyph) || t.fallback.CannotFallback(r) {
			return original, gid, nil
		}
	}

	target := t.fallback.Target(style.Family, style.Weight)
	if fb, ok := t.fallback.CachedFallback(r, style.Family, target); ok {
		gid, _ := fb.GlyphIndex(r)
		return fb, gid, nil
	}

	if hasOriginal {
		gid, _ := original.GlyphIndex(' ')
		return original, gid, nil
	}
	return t.candidate(fonts.NotdefGlyph)
}

func (t *Tokenizer) candidate(gid fonts.GlyphID) (fonts.Handle, fonts.GlyphID, error) {
	h, ok := t.source.Candidate()
	if !ok {
		return nil, 0, fonts.ErrNoCandidate
	}
	return h, gid, nil
}
