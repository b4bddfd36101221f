package text

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/glyphmesh/fonts"
)

// fakeFont is a synthetic font: 1000 units per em, ascender 800,
// descender -200, no line gap and a 500 unit advance for every glyph.
// At size 10 a glyph is 5px wide and the auto line height is 10px.
type fakeFont struct {
	name  string
	runes map[rune]bool
	kerns map[[2]fonts.GlyphID]float64
}

func newFakeFont(name, runes string) *fakeFont {
	f := &fakeFont{name: name, runes: make(map[rune]bool), kerns: make(map[[2]fonts.GlyphID]float64)}
	for _, r := range runes {
		f.runes[r] = true
	}
	return f
}

func (f *fakeFont) Name() string { return f.name }

func (f *fakeFont) GlyphIndex(r rune) (fonts.GlyphID, bool) {
	if !f.runes[r] {
		return fonts.NotdefGlyph, false
	}
	return fonts.GlyphID(r), true
}

func (f *fakeFont) Outline(fonts.GlyphID) (fonts.Outline, error) { return fonts.Outline{}, nil }

func (f *fakeFont) Metrics() fonts.Metrics {
	return fonts.Metrics{UnitsPerEm: 1000, Ascender: 800, Descender: -200}
}

func (f *fakeFont) Advance(fonts.GlyphID) float64 { return 500 }

func (f *fakeFont) Kerning(l, r fonts.GlyphID) float64 { return f.kerns[[2]fonts.GlyphID{l, r}] }

const latin = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 ,.!?\n"

// fakeSource is an in-memory FontSource. Fonts in loaded are cached;
// fonts in loadable become cached on Load; fonts in broken fail to load.
type fakeSource struct {
	mu        sync.Mutex
	metas     map[string][]fonts.Meta
	loaded    map[string]fonts.Handle
	loadable  map[string]fonts.Handle
	broken    map[string]bool
	candidate fonts.Handle
	loads     []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		metas:    make(map[string][]fonts.Meta),
		loaded:   make(map[string]fonts.Handle),
		loadable: make(map[string]fonts.Handle),
		broken:   make(map[string]bool),
	}
}

func (s *fakeSource) register(family string, weight int) fonts.Meta {
	m := fonts.Meta{Family: family, Weight: weight, Style: fonts.StyleName(weight, false)}
	s.metas[family] = append(s.metas[family], m)
	return m
}

// add registers a cached font.
func (s *fakeSource) add(family string, h fonts.Handle) {
	m := s.register(family, fonts.DefaultWeight)
	s.loaded[m.ID()] = h
}

// addLazy registers a font that is loaded on demand.
func (s *fakeSource) addLazy(family string, h fonts.Handle) {
	m := s.register(family, fonts.DefaultWeight)
	s.loadable[m.ID()] = h
}

// addBroken registers a font whose load fails.
func (s *fakeSource) addBroken(family string) {
	m := s.register(family, fonts.DefaultWeight)
	s.broken[m.ID()] = true
}

func (s *fakeSource) Meta(family, style string) (fonts.Meta, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spec, _ := fonts.ParseStyle(style)
	for _, m := range s.metas[family] {
		if m.Style == style || (m.Weight == spec.Weight && m.Italic == spec.Italic) {
			return m, true
		}
	}
	return fonts.Meta{}, false
}

func (s *fakeSource) CachedMeta(family string) []fonts.Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metas[family]
}

func (s *fakeSource) Cached(family, style string) (fonts.Handle, bool) {
	m, ok := s.Meta(family, style)
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.loaded[m.ID()]
	return h, ok
}

func (s *fakeSource) Load(_ context.Context, family, style string) (fonts.Handle, error) {
	if h, ok := s.Cached(family, style); ok {
		return h, nil
	}
	m, ok := s.Meta(family, style)
	if !ok {
		return nil, fonts.ErrFontNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads = append(s.loads, m.ID())
	if s.broken[m.ID()] {
		return nil, errors.New("broken font")
	}
	h, ok := s.loadable[m.ID()]
	if !ok {
		return nil, fonts.ErrFontNotFound
	}
	s.loaded[m.ID()] = h
	return h, nil
}

func (s *fakeSource) Candidate() (fonts.Handle, bool) { return s.candidate, s.candidate != nil }

// testStyle is a 10px style of the "Test" family.
func testStyle() Style {
	return Style{Family: "Test", Weight: fonts.StyleRegular, Size: 10}
}

// newTestEngine returns an engine over a source holding the "Test" font
// with the latin set.
func newTestEngine(t *testing.T) (*Engine, *fakeSource) {
	t.Helper()
	src := newFakeSource()
	font := newFakeFont("Test", latin)
	src.add("Test", font)
	src.candidate = font
	return NewEngine(src, nil), src
}

// layoutText lays out text with one style.
func layoutText(t *testing.T, e *Engine, text string, style Style, box BoxConfig) *LayoutInfo {
	t.Helper()
	info, err := e.Layout(SingleStyle(text, style, box))
	if err != nil {
		t.Fatalf("Layout(%q): %v", text, err)
	}
	return info
}

// lineTexts returns the text of every line.
func lineTexts(info *LayoutInfo) []string {
	out := make([]string, len(info.Lines))
	for i := range info.Lines {
		var b strings.Builder
		for _, tok := range info.LineTokens(i) {
			b.WriteRune(tok.Char)
		}
		out[i] = b.String()
	}
	return out
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
