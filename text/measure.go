package text

import "math"

var inf = math.Inf(1)

// Extent is the measured size of a run of tokens.
type Extent struct {
	Width      float64
	Height     float64 // font height from ascender, descender and line gap
	LineHeight float64 // Style.LineHeight, or Height when auto
	Baseline   float64 // distance from the line top to the baseline
}

func (e *Extent) union(o Extent) {
	e.Height = max(e.Height, o.Height)
	e.LineHeight = max(e.LineHeight, o.LineHeight)
	e.Baseline = max(e.Baseline, o.Baseline)
}

// kerning returns the pair adjustment in font units. Tokens from different
// fonts never kern.
func kerning(curr, next *CharToken) float64 {
	if curr.Font != next.Font {
		return 0
	}
	return curr.Font.Kerning(curr.Glyph, next.Glyph)
}

func advanceWidth(t *CharToken, kern float64) float64 {
	return (t.Font.Advance(t.Glyph) + kern) * t.scale()
}

func autoLineHeight(t *CharToken) float64 {
	return t.Font.Metrics().Height() * t.scale()
}

func lineHeight(t *CharToken) float64 {
	if t.Style.IsAutoLineHeight() {
		return autoLineHeight(t)
	}
	return t.Style.LineHeight
}

func baseline(t *CharToken) float64 {
	m := t.Font.Metrics()
	return (m.Ascender + m.LineGap/2) * t.scale()
}

// letterSpacing is the spacing added after curr when next follows it on the
// same line. No spacing is added before a newline.
func letterSpacing(curr, next *CharToken) float64 {
	if curr == nil || next == nil || isEnter(next.Char) {
		return 0
	}
	return curr.Style.LetterSpacing
}

// MeasureTokens measures tokens as one run and writes every token's Width,
// Height, LineHeight and Baseline. A newline has zero width.
//
// When prev is not nil the kerning between prev and the first token is
// included in the returned width but not written to any token.
func MeasureTokens(tokens []CharToken, prev *CharToken) Extent {
	var e Extent
	if len(tokens) > 0 && prev != nil {
		e.Width += kerning(prev, &tokens[0]) * prev.scale()
	}

	for i := range tokens {
		curr := &tokens[i]
		var next *CharToken
		if i+1 < len(tokens) {
			next = &tokens[i+1]
		}

		width := 0.0
		if !isEnter(curr.Char) {
			kern := 0.0
			if next != nil {
				kern = kerning(curr, next)
			}
			width = advanceWidth(curr, kern) + letterSpacing(curr, next)
			e.Width += width
		}

		curr.Width = width
		curr.Height = autoLineHeight(curr)
		curr.LineHeight = lineHeight(curr)
		curr.Baseline = baseline(curr)
		e.union(Extent{Height: curr.Height, LineHeight: curr.LineHeight, Baseline: curr.Baseline})
	}
	return e
}
