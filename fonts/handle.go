package fonts

// GlyphID is a glyph index within a font. Zero is the notdef glyph.
type GlyphID uint16

// NotdefGlyph is the glyph every font renders for unmapped characters.
const NotdefGlyph GlyphID = 0

// Metrics holds font-wide vertical metrics in font units.
// Descender is negative for fonts whose descent goes below the baseline.
type Metrics struct {
	UnitsPerEm float64
	Ascender   float64
	Descender  float64
	LineGap    float64
}

// Height returns ascender - descender + lineGap in font units.
func (m Metrics) Height() float64 {
	return m.Ascender - m.Descender + m.LineGap
}

// Handle is a loaded font able to map characters to glyphs and report
// metrics. Implementations are safe for concurrent use.
type Handle interface {
	// Name returns the family name recorded in the font, or "".
	Name() string

	// GlyphIndex maps a rune to its glyph. ok is false when the font has no
	// glyph for r.
	GlyphIndex(r rune) (gid GlyphID, ok bool)

	// Outline returns the glyph outline in font units, Y up.
	Outline(gid GlyphID) (Outline, error)

	// Metrics returns the font-wide metrics.
	Metrics() Metrics

	// Advance returns the horizontal advance of a glyph.
	Advance(gid GlyphID) float64

	// Kerning returns the pair adjustment between two glyphs, or 0.
	Kerning(left, right GlyphID) float64
}

// HasGlyph reports whether h has a non-notdef glyph for r.
func HasGlyph(h Handle, r rune) bool {
	if h == nil {
		return false
	}
	gid, ok := h.GlyphIndex(r)
	return ok && gid != NotdefGlyph
}
