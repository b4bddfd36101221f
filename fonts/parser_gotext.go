package fonts

import (
	"bytes"
	"fmt"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/glyphmesh/geom"
)

// gotextParser implements Parser using github.com/go-text/typesetting/font.
type gotextParser struct{}

// Parse implements Parser.
func (gotextParser) Parse(data []byte) (Handle, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fonts: failed to parse font: %w", err)
	}

	h := &gotextHandle{face: face}
	ext, _ := face.FontHExtents()
	h.metrics = Metrics{
		UnitsPerEm: float64(face.Upem()),
		Ascender:   float64(ext.Ascender),
		Descender:  float64(ext.Descender),
		LineGap:    float64(ext.LineGap),
	}
	h.name = face.Describe().Family

	for _, st := range face.Kern {
		if k, ok := st.Data.(gotext.SimpleKerns); ok {
			h.kerns = append(h.kerns, k)
		}
	}
	return h, nil
}

// gotextHandle implements Handle on top of a go-text Face. The face keeps
// internal caches, so access is serialized.
type gotextHandle struct {
	mu      sync.Mutex
	face    *gotext.Face
	kerns   []gotext.SimpleKerns
	metrics Metrics
	name    string
}

func (h *gotextHandle) Name() string     { return h.name }
func (h *gotextHandle) Metrics() Metrics { return h.metrics }

func (h *gotextHandle) GlyphIndex(r rune) (GlyphID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	gid, ok := h.face.NominalGlyph(r)
	if !ok || gid == 0 || gid > 0xFFFF {
		return NotdefGlyph, false
	}
	return GlyphID(gid), true
}

func (h *gotextHandle) Advance(gid GlyphID) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return float64(h.face.HorizontalAdvance(gotext.GID(gid)))
}

func (h *gotextHandle) Kerning(left, right GlyphID) float64 {
	for _, k := range h.kerns {
		if v := k.KernPair(gotext.GID(left), gotext.GID(right)); v != 0 {
			return float64(v)
		}
	}
	return 0
}

func (h *gotextHandle) Outline(gid GlyphID) (Outline, error) {
	h.mu.Lock()
	data := h.face.GlyphData(gotext.GID(gid))
	h.mu.Unlock()

	glyph, ok := data.(gotext.GlyphOutline)
	if !ok {
		return Outline{}, fmt.Errorf("fonts: glyph %d has no vector outline (%T)", gid, data)
	}

	pt := func(p ot.SegmentPoint) geom.Point {
		return geom.Pt(float64(p.X), float64(p.Y))
	}
	var b outlineBuilder
	for _, s := range glyph.Segments {
		switch s.Op {
		case ot.SegmentOpMoveTo:
			b.moveTo(pt(s.Args[0]))
		case ot.SegmentOpLineTo:
			b.lineTo(pt(s.Args[0]))
		case ot.SegmentOpQuadTo:
			b.quadTo(pt(s.Args[0]), pt(s.Args[1]))
		case ot.SegmentOpCubeTo:
			b.cubeTo(pt(s.Args[0]), pt(s.Args[1]), pt(s.Args[2]))
		}
	}
	return b.outline(), nil
}
