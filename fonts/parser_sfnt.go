package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glyphmesh/geom"
)

// sfntParser implements Parser using golang.org/x/image/font/sfnt.
type sfntParser struct{}

// Parse implements Parser.
func (sfntParser) Parse(data []byte) (Handle, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: failed to parse font: %w", err)
	}
	h := &sfntHandle{font: f}
	h.upem = f.UnitsPerEm()
	// Querying at ppem == upem yields values in font units.
	h.ppem = fixed.Int26_6(h.upem) << 6

	buf := h.acquire()
	defer h.release(buf)

	m, err := f.Metrics(buf, h.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("fonts: failed to read metrics: %w", err)
	}
	ascent := fixedToFloat64(m.Ascent)
	descent := fixedToFloat64(m.Descent)
	h.metrics = Metrics{
		UnitsPerEm: float64(h.upem),
		Ascender:   ascent,
		Descender:  -descent,
		LineGap:    fixedToFloat64(m.Height) - ascent - descent,
	}
	if name, err := f.Name(buf, sfnt.NameIDFamily); err == nil {
		h.name = name
	}
	return h, nil
}

// sfntHandle implements Handle on top of sfnt.Font. sfnt.Font is safe for
// concurrent use as long as each call gets its own Buffer.
type sfntHandle struct {
	font    *opentype.Font
	upem    sfnt.Units
	ppem    fixed.Int26_6
	metrics Metrics
	name    string
	bufs    sync.Pool
}

func (h *sfntHandle) acquire() *sfnt.Buffer {
	if b, ok := h.bufs.Get().(*sfnt.Buffer); ok {
		return b
	}
	return &sfnt.Buffer{}
}

func (h *sfntHandle) release(b *sfnt.Buffer) { h.bufs.Put(b) }

func (h *sfntHandle) Name() string     { return h.name }
func (h *sfntHandle) Metrics() Metrics { return h.metrics }

func (h *sfntHandle) GlyphIndex(r rune) (GlyphID, bool) {
	buf := h.acquire()
	defer h.release(buf)
	idx, err := h.font.GlyphIndex(buf, r)
	if err != nil || idx == 0 {
		return NotdefGlyph, false
	}
	return GlyphID(idx), true
}

func (h *sfntHandle) Advance(gid GlyphID) float64 {
	buf := h.acquire()
	defer h.release(buf)
	adv, err := h.font.GlyphAdvance(buf, sfnt.GlyphIndex(gid), h.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat64(adv)
}

func (h *sfntHandle) Kerning(left, right GlyphID) float64 {
	buf := h.acquire()
	defer h.release(buf)
	k, err := h.font.Kern(buf, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), h.ppem, font.HintingNone)
	if err != nil {
		// sfnt.ErrNotFound: no kern table or no pair.
		return 0
	}
	return fixedToFloat64(k)
}

func (h *sfntHandle) Outline(gid GlyphID) (Outline, error) {
	buf := h.acquire()
	defer h.release(buf)
	segs, err := h.font.LoadGlyph(buf, sfnt.GlyphIndex(gid), h.ppem, nil)
	if err != nil {
		return Outline{}, fmt.Errorf("fonts: load glyph %d: %w", gid, err)
	}

	// sfnt reports Y down; flip to font space.
	pt := func(p fixed.Point26_6) geom.Point {
		return geom.Pt(fixedToFloat64(p.X), -fixedToFloat64(p.Y))
	}
	var b outlineBuilder
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			b.moveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			b.lineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			b.quadTo(pt(s.Args[0]), pt(s.Args[1]))
		case sfnt.SegmentOpCubeTo:
			b.cubeTo(pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2]))
		}
	}
	return b.outline(), nil
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
