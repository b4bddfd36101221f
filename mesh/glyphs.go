package mesh

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/glyphmesh/fonts"
	"github.com/gogpu/glyphmesh/internal/logger"
	"github.com/gogpu/glyphmesh/text"
)

// cachedGlyph is a glyph mesh in outline space: font units with Y down.
type cachedGlyph struct {
	mesh Mesh
	err  error
}

// Tessellator turns laid-out text into a vertex stream. Glyph meshes are
// built once per font and glyph and reused at every position and size.
//
// A Tessellator is safe for concurrent use.
type Tessellator struct {
	cache *glyphCache

	mu    sync.Mutex
	fonts map[fonts.Handle]uint32
}

// NewTessellator returns a tessellator caching up to capacity glyph meshes
// per cache shard. capacity <= 0 selects DefaultGlyphCapacity.
func NewTessellator(capacity int) *Tessellator {
	return &Tessellator{
		cache: newGlyphCache(capacity),
		fonts: make(map[fonts.Handle]uint32),
	}
}

func (t *Tessellator) fontID(h fonts.Handle) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.fonts[h]
	if !ok {
		id = uint32(len(t.fonts)) + 1
		t.fonts[h] = id
	}
	return id
}

// Glyph returns the mesh of one glyph in font units with Y pointing down.
// A triangulation error comes with the partial mesh.
func (t *Tessellator) Glyph(h fonts.Handle, gid fonts.GlyphID) (Mesh, error) {
	key := glyphKey{font: t.fontID(h), glyph: uint16(gid)}
	g := t.cache.getOrCreate(key, func() cachedGlyph {
		o, err := h.Outline(gid)
		if err != nil {
			return cachedGlyph{err: fmt.Errorf("mesh: outline of glyph %d: %w", gid, err)}
		}
		m, err := OutlineTriangles(o.Place(0, 0, 1))
		return cachedGlyph{mesh: m, err: err}
	})
	return g.mesh, g.err
}

// Tessellate appends the triangles of every visible token of info to a new
// stream: all solid triangles first, then all curved ones. Newlines and
// tokens without a font are skipped. Glyphs that fail are logged and
// reported in the joined error; the rest of the stream is still built.
func (t *Tessellator) Tessellate(info *text.LayoutInfo) (*Stream, error) {
	var (
		solid  Stream
		curves Stream
		errs   []error
	)
	for i := range info.Tokens {
		tok := &info.Tokens[i]
		if text.ClassOf(tok.Char) == text.ClassEnter || tok.Font == nil {
			continue
		}
		m, err := t.Glyph(tok.Font, tok.Glyph)
		if err != nil {
			logger.Get().Warn("mesh: glyph tessellation failed",
				"char", string(tok.Char), "glyph", tok.Glyph, "err", err)
			errs = append(errs, err)
		}
		scale := tok.Style.Size / tok.Font.Metrics().UnitsPerEm
		m.appendPlaced(&solid, &curves, tok.X, tok.Y, scale)
	}
	solid.data = append(solid.data, curves.data...)
	logger.Get().Debug("mesh: tessellated layout",
		"tokens", len(info.Tokens), "triangles", solid.Len())
	return &solid, errors.Join(errs...)
}

// Tessellate runs a throwaway Tessellator over info.
func Tessellate(info *text.LayoutInfo) (*Stream, error) {
	return NewTessellator(0).Tessellate(info)
}

// appendPlaced scales the mesh and moves its origin to (x, y).
func (m Mesh) appendPlaced(solid, curves *Stream, x, y, scale float64) {
	for _, tri := range m.Solid {
		for _, p := range tri {
			solid.push(Vertex{X: x + p.X*scale, Y: y + p.Y*scale, K: -1})
		}
	}
	for _, tri := range m.Curves {
		for _, v := range tri {
			v.X = x + v.X*scale
			v.Y = y + v.Y*scale
			curves.push(v)
		}
	}
}
