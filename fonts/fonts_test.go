package fonts

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphmesh/geom"
)

func TestParseBackends(t *testing.T) {
	for _, name := range []string{"sfnt", "gotext", ""} {
		t.Run(name, func(t *testing.T) {
			h, err := Parse(name, goregular.TTF)
			if err != nil {
				t.Fatalf("Parse(%q): %v", name, err)
			}
			m := h.Metrics()
			if m.UnitsPerEm != 2048 {
				t.Errorf("UnitsPerEm: got %v, want 2048", m.UnitsPerEm)
			}
			if m.Ascender <= 0 || m.Descender >= 0 {
				t.Errorf("unexpected vertical metrics %+v", m)
			}
			if !HasGlyph(h, 'A') {
				t.Error("Go Regular should map 'A'")
			}
			if HasGlyph(h, '中') {
				t.Error("Go Regular should not map CJK ideographs")
			}
			gid, _ := h.GlyphIndex('H')
			if h.Advance(gid) <= 0 {
				t.Error("advance of 'H' should be positive")
			}
		})
	}
}

func TestBackendsAgree(t *testing.T) {
	a, err := Parse("sfnt", goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse("gotext", goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range "AHOgx0" {
		ga, _ := a.GlyphIndex(r)
		gb, _ := b.GlyphIndex(r)
		if ga != gb {
			t.Errorf("GlyphIndex(%q): sfnt %d, gotext %d", r, ga, gb)
		}
		if a.Advance(ga) != b.Advance(gb) {
			t.Errorf("Advance(%q): sfnt %v, gotext %v", r, a.Advance(ga), b.Advance(gb))
		}
	}
}

func TestOutlineContours(t *testing.T) {
	for _, name := range []string{"sfnt", "gotext"} {
		h, err := Parse(name, goregular.TTF)
		if err != nil {
			t.Fatal(err)
		}
		gid, _ := h.GlyphIndex('O')
		o, err := h.Outline(gid)
		if err != nil {
			t.Fatalf("%s: Outline: %v", name, err)
		}
		var moves, closes int
		for _, s := range o.Segments {
			switch s.Op {
			case SegmentMoveTo:
				moves++
			case SegmentClose:
				closes++
			}
		}
		if moves != 2 || closes != 2 {
			t.Errorf("%s: 'O' should have 2 closed contours, got %d moves and %d closes", name, moves, closes)
		}
		if o.Segments[len(o.Segments)-1].Op != SegmentClose {
			t.Errorf("%s: outline should end with a close", name)
		}
	}
}

func TestOutlinePlace(t *testing.T) {
	pt := func(x, y float64) geom.Point { return geom.Pt(x, y) }
	var b outlineBuilder
	b.moveTo(pt(0, 0))
	b.lineTo(pt(100, 200))
	o := b.outline().Place(10, 50, 0.5)
	if got := o.Segments[1].Args[0]; got.X != 60 || got.Y != -50 {
		t.Errorf("Place: got %v, want (60,-50)", got)
	}
	if o.Segments[2].Op != SegmentClose {
		t.Errorf("last op: got %v, want Z", o.Segments[2].Op)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("", nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("empty data: got %v, want ErrEmptyFontData", err)
	}
	if _, err := Parse("nope", goregular.TTF); !errors.Is(err, ErrUnknownParser) {
		t.Errorf("unknown parser: got %v, want ErrUnknownParser", err)
	}
	if _, err := Parse("sfnt", []byte("not a font")); err == nil {
		t.Error("garbage data should fail to parse")
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		label  string
		weight int
		italic bool
		style  string
		ok     bool
	}{
		{"Regular", 400, false, "Regular", true},
		{"regular", 400, false, "Regular", true},
		{"italic", 400, true, "Italic", true},
		{"700", 700, false, "Bold", true},
		{"700italic", 700, true, "Bold Italic", true},
		{"Bold Italic", 700, true, "Bold Italic", true},
		{"Semi Bold", 600, false, "Semi Bold", true},
		{"semibold", 600, false, "Semi Bold", true},
		{"Heavy", 900, false, "Black", true},
		{"Fancy", 400, false, "Regular", false},
	}
	for _, tt := range tests {
		spec, ok := ParseStyle(tt.label)
		if ok != tt.ok || spec.Weight != tt.weight || spec.Italic != tt.italic || spec.Style != tt.style {
			t.Errorf("ParseStyle(%q): got %+v ok=%v, want {%d %v %s} ok=%v",
				tt.label, spec, ok, tt.weight, tt.italic, tt.style, tt.ok)
		}
	}
}

func TestMatchFont(t *testing.T) {
	metas := func(weights ...int) []Meta {
		out := make([]Meta, len(weights))
		for i, w := range weights {
			out[i] = Meta{Family: "F", Weight: w, Style: StyleName(w, false)}
		}
		return out
	}
	tests := []struct {
		name   string
		metas  []Meta
		weight int
		want   int
	}{
		{"exact", metas(300, 400, 700), 400, 400},
		{"closest", metas(100, 700), 600, 700},
		{"tie at 400 prefers lighter", metas(300, 500), 400, 300},
		{"tie above 400 prefers heavier", metas(400, 600), 500, 600},
		{"tie order independent", metas(600, 400), 500, 600},
		{"tie below 400", metas(200, 400), 300, 200},
		{"single", metas(900), 100, 900},
	}
	for _, tt := range tests {
		got, ok := MatchFont(tt.metas, tt.weight, false)
		if !ok || got.Weight != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got.Weight, tt.want)
		}
	}

	if _, ok := MatchFont(nil, 400, false); ok {
		t.Error("empty family should not match")
	}

	mixed := []Meta{
		{Family: "F", Weight: 400, Italic: false},
		{Family: "F", Weight: 700, Italic: true},
	}
	if got, _ := MatchFont(mixed, 400, true); got.Weight != 700 {
		t.Errorf("italic preference: got %d, want 700", got.Weight)
	}
	if got, _ := MatchFont(mixed[1:], 400, false); got.Weight != 700 {
		t.Errorf("italic fallback: got %d, want 700", got.Weight)
	}
}

func TestLibraryLoadDeduplicates(t *testing.T) {
	var calls atomic.Int32
	loader := LoaderFunc(func(ctx context.Context, m Meta) ([]byte, error) {
		calls.Add(1)
		return goregular.TTF, nil
	})
	lib := NewLibrary(WithLoader(loader))
	lib.Register(Meta{Family: "Go", Style: "Regular", Path: "Go-Regular.ttf"})

	if _, ok := lib.Cached("Go", "Regular"); ok {
		t.Fatal("font should not be cached before Load")
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := lib.Load(context.Background(), "Go", "400"); err != nil {
				t.Errorf("Load: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("loader calls: got %d, want 1", n)
	}
	if _, ok := lib.Cached("Go", "Regular"); !ok {
		t.Error("font should be cached after Load")
	}
}

func TestLibraryErrors(t *testing.T) {
	lib := NewLibrary()
	_, err := lib.Load(context.Background(), "Missing", "Regular")
	if !errors.Is(err, ErrFontNotFound) {
		t.Errorf("missing font: got %v, want ErrFontNotFound", err)
	}

	lib.Register(Meta{Family: "Go", Style: "Regular"})
	_, err = lib.Load(context.Background(), "Go", "Regular")
	if !errors.Is(err, ErrNoLoader) {
		t.Errorf("no loader: got %v, want ErrNoLoader", err)
	}

	boom := errors.New("boom")
	var calls atomic.Int32
	lib = NewLibrary(WithLoader(LoaderFunc(func(context.Context, Meta) ([]byte, error) {
		calls.Add(1)
		return nil, boom
	})))
	lib.Register(Meta{Family: "Go", Style: "Regular"})
	for i := 0; i < 2; i++ {
		_, err = lib.Load(context.Background(), "Go", "Regular")
		var le *LoadError
		if !errors.As(err, &le) || !errors.Is(err, boom) {
			t.Errorf("loader failure: got %v", err)
		}
	}
	if calls.Load() != 2 {
		t.Errorf("failed loads should be retried: got %d calls, want 2", calls.Load())
	}

	if _, err := lib.LoadCandidate(context.Background()); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("candidate: got %v, want ErrNoCandidate", err)
	}
}

func TestLibraryRegistry(t *testing.T) {
	lib := NewLibrary(WithCandidate("Go", "Bold"), WithLoader(MemLoader{
		"bold.ttf": gobold.TTF,
	}))
	lib.Register(
		Meta{Family: "Go", Weight: 700, Path: "bold.ttf"},
		Meta{Family: "Go", Style: "Italic", Path: "italic.ttf"},
		Meta{Family: "Mono", Style: "Regular"},
	)
	if got := lib.Families(); len(got) != 2 || got[0] != "Go" || got[1] != "Mono" {
		t.Errorf("Families: got %v", got)
	}
	metas := lib.CachedMeta("Go")
	if len(metas) != 2 || metas[0].Style != "Bold" || !metas[1].Italic || metas[1].Weight != 400 {
		t.Errorf("CachedMeta: got %+v", metas)
	}
	if lib.CachedMeta("Nope") != nil {
		t.Error("CachedMeta of unknown family should be nil")
	}
	if _, ok := lib.Meta("Go", "700"); !ok {
		t.Error("Meta should resolve numeric labels")
	}

	if _, ok := lib.Candidate(); ok {
		t.Error("candidate should not be loaded yet")
	}
	if _, err := lib.LoadCandidate(context.Background()); err != nil {
		t.Fatalf("LoadCandidate: %v", err)
	}
	if _, ok := lib.Candidate(); !ok {
		t.Error("candidate should be cached after LoadCandidate")
	}

	if err := lib.AddData(Meta{Family: "Inline", Style: "Regular"}, goregular.TTF); err != nil {
		t.Fatalf("AddData: %v", err)
	}
	if _, ok := lib.Cached("Inline", "Regular"); !ok {
		t.Error("AddData should cache the handle")
	}
}

func TestHandleCacheEviction(t *testing.T) {
	c := newHandleCache(4)
	for _, id := range []string{"a", "b", "c", "d"} {
		c.set(id, nil)
	}
	c.get("a")
	c.set("e", nil)
	if c.len() != 3 {
		t.Errorf("len after eviction: got %d, want 3", c.len())
	}
	if _, ok := c.get("a"); !ok {
		t.Error("recently used entry should survive eviction")
	}
	if _, ok := c.get("b"); ok {
		t.Error("least recently used entry should be evicted")
	}
}

func TestHandleCachePinned(t *testing.T) {
	c := newHandleCache(4)
	c.pin("inline", nil)
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		c.set(id, nil)
	}
	if _, ok := c.get("inline"); !ok {
		t.Error("pinned entry should never be evicted")
	}
	c.set("inline", nil)
	for _, id := range []string{"g", "h", "i"} {
		c.set(id, nil)
	}
	if _, ok := c.get("inline"); !ok {
		t.Error("re-storing a pinned entry should keep it pinned")
	}
}

func TestLibraryAddSurvivesCacheLimit(t *testing.T) {
	lib := NewLibrary(WithCacheLimit(2), WithLoader(MemLoader{"go.ttf": goregular.TTF}))
	if err := lib.AddData(Meta{Family: "Inline", Style: "Regular"}, goregular.TTF); err != nil {
		t.Fatalf("AddData: %v", err)
	}
	for _, family := range []string{"A", "B", "C", "D"} {
		lib.Register(Meta{Family: family, Style: "Regular", Path: "go.ttf"})
		if _, err := lib.Load(context.Background(), family, "Regular"); err != nil {
			t.Fatalf("Load %s: %v", family, err)
		}
	}
	if _, err := lib.Load(context.Background(), "Inline", "Regular"); err != nil {
		t.Errorf("in-memory font after evictions: got %v, want nil", err)
	}
}

func TestLibraryLoadCanceledWaiter(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	lib := NewLibrary(WithLoader(LoaderFunc(func(ctx context.Context, m Meta) ([]byte, error) {
		calls.Add(1)
		close(started)
		select {
		case <-release:
			return goregular.TTF, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})))
	lib.Register(Meta{Family: "Go", Style: "Regular"})

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := lib.Load(ctx, "Go", "Regular")
		first <- err
	}()
	<-started

	second := make(chan error, 1)
	go func() {
		_, err := lib.Load(context.Background(), "Go", "Regular")
		second <- err
	}()

	cancel()
	if err := <-first; !errors.Is(err, context.Canceled) {
		t.Errorf("canceled caller: got %v, want context.Canceled", err)
	}
	close(release)
	if err := <-second; err != nil {
		t.Errorf("live caller: got %v, want nil", err)
	}
	if _, ok := lib.Cached("Go", "Regular"); !ok {
		t.Error("shared load should finish and cache the font")
	}
	if calls.Load() != 1 {
		t.Errorf("loader calls: got %d, want 1", calls.Load())
	}
}
