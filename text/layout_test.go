package text

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/glyphmesh/fonts"
)

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", []string{""}},
		{"ab", []string{"ab"}},
		{"Hi\n", []string{"Hi\n", ""}},
		{"a\nb", []string{"a\n", "b"}},
		{"a\n\nb", []string{"a\n", "\n", "b"}},
	}
	for _, tt := range tests {
		if got := SplitParagraphs(tt.text); !slices.Equal(got, tt.want) {
			t.Errorf("SplitParagraphs(%q): got %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestLayoutTrailingNewline(t *testing.T) {
	e, _ := newTestEngine(t)
	info := layoutText(t, e, "Hi\n", testStyle(), BoxConfig{Width: 1000, Height: 1000, WordWrap: true, WrapWidth: 1000})

	if got := lineTexts(info); !slices.Equal(got, []string{"Hi\n", ""}) {
		t.Fatalf("lines: got %q, want [\"Hi\\n\" \"\"]", got)
	}
	if got := TextEnd(info); got != (TextPos{Row: 1, Col: 0}) {
		t.Errorf("TextEnd: got %v, want {1 0}", got)
	}
	if got := info.LayoutRect.Height; !approx(got, 20) {
		t.Errorf("content height: got %v, want 20", got)
	}
	if nl := info.Tokens[2]; nl.Width != 0 || nl.Glyph != fonts.NotdefGlyph {
		t.Errorf("newline token: width %v glyph %d, want zero-width notdef", nl.Width, nl.Glyph)
	}
}

func TestLayoutTokenPartition(t *testing.T) {
	e, _ := newTestEngine(t)
	info := layoutText(t, e, "one two\nthree four five\n\nsix", testStyle(), BoxConfig{WordWrap: true, WrapWidth: 40})

	total := 0
	next := 0
	for i := range info.Lines {
		l := &info.Lines[i]
		if l.Start != next {
			t.Errorf("line %d starts at %d, want %d", i, l.Start, next)
		}
		next = l.End
		total += l.Len()
	}
	if total != len(info.Tokens) {
		t.Errorf("lines hold %d tokens, arena has %d", total, len(info.Tokens))
	}
	for i, tok := range info.Tokens {
		if tok.Index != i {
			t.Errorf("token %d has index %d", i, tok.Index)
		}
	}
}

func TestLayoutWidths(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		spacing float64
		kern    float64
		want    float64
	}{
		{"plain", "ab", 0, 0, 10},
		{"letter spacing", "abc", 1, 0, 17},
		{"spacing across segments", "ab cd", 1, 0, 29},
		{"no spacing before newline", "ab\n", 1, 0, 11},
		{"kerning", "ab", 0, -100, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			font := newFakeFont("Test", latin)
			font.kerns[[2]fonts.GlyphID{'a', 'b'}] = tt.kern
			src.add("Test", font)
			e := NewEngine(src, nil)

			style := testStyle()
			style.LetterSpacing = tt.spacing
			info := layoutText(t, e, tt.text, style, BoxConfig{})

			line := info.Lines[0]
			if !approx(line.Width, tt.want) {
				t.Errorf("line width: got %v, want %v", line.Width, tt.want)
			}
			sum := 0.0
			for _, tok := range info.LineTokens(0) {
				sum += tok.Width
			}
			if !approx(sum, line.Width) {
				t.Errorf("sum of token widths %v != line width %v", sum, line.Width)
			}
		})
	}
}

func TestLayoutWrap(t *testing.T) {
	tests := []struct {
		name string
		text string
		wrap float64
		want []string
	}{
		{"segments", "aa bb cc", 30, []string{"aa bb ", "cc"}},
		{"exact fit", "aa bb", 25, []string{"aa bb"}},
		{"long word", "abcdefgh", 12, []string{"ab", "cd", "ef", "gh"}},
		{"narrow box", "ab cd", 7, []string{"a", "b ", "c", "d"}},
		{"newline inside", "ab\ncd", 100, []string{"ab\n", "cd"}},
	}
	e, _ := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := layoutText(t, e, tt.text, testStyle(), BoxConfig{WordWrap: true, WrapWidth: tt.wrap})
			if got := lineTexts(info); !slices.Equal(got, tt.want) {
				t.Errorf("lines: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutWrapWidthBound(t *testing.T) {
	e, _ := newTestEngine(t)
	const wrap = 42
	info := layoutText(t, e, "the quick brown fox jumps over the lazy dog", testStyle(), BoxConfig{WordWrap: true, WrapWidth: wrap})
	for i := range info.Lines {
		tokens := info.LineTokens(i)
		w := info.Lines[i].Width
		for j := len(tokens) - 1; j >= 0 && isSpace(tokens[j].Char); j-- {
			w -= tokens[j].Width
		}
		if w > wrap {
			t.Errorf("line %d (%q) is %v wide, wrap is %v", i, info.Lines[i].Text, w, wrap)
		}
	}
}

func TestLayoutNoWrap(t *testing.T) {
	e, _ := newTestEngine(t)
	info := layoutText(t, e, "aa bb cc dd ee", testStyle(), BoxConfig{WrapWidth: 10})
	if len(info.Lines) != 1 {
		t.Errorf("lines without word wrap: got %d, want 1", len(info.Lines))
	}
}

func TestLayoutAlignment(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		box    BoxConfig
		wantX  float64
		wantY  float64
		tokenY float64
	}{
		{"left top", "ab", BoxConfig{Width: 100, Height: 100}, 0, 0, 8},
		{"center", "ab", BoxConfig{Width: 100, Height: 100, HAlign: AlignCenter}, 45, 0, 8},
		{"right ignores trailing space", "ab ", BoxConfig{Width: 100, Height: 100, HAlign: AlignRight}, 90, 0, 8},
		{"middle", "ab", BoxConfig{Width: 100, Height: 100, VAlign: AlignMiddle}, 0, 45, 53},
		{"bottom", "ab", BoxConfig{Width: 100, Height: 100, VAlign: AlignBottom}, 0, 90, 98},
	}
	e, _ := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := layoutText(t, e, tt.text, testStyle(), tt.box)
			line := info.Lines[0]
			if !approx(line.X, tt.wantX) || !approx(line.Y, tt.wantY) {
				t.Errorf("line origin: got (%v, %v), want (%v, %v)", line.X, line.Y, tt.wantX, tt.wantY)
			}
			tokens := info.LineTokens(0)
			if !approx(tokens[0].Y, tt.tokenY) {
				t.Errorf("baseline: got %v, want %v", tokens[0].Y, tt.tokenY)
			}
			if !approx(tokens[1].X, tt.wantX+5) {
				t.Errorf("second token x: got %v, want %v", tokens[1].X, tt.wantX+5)
			}
		})
	}
}

func TestLayoutRects(t *testing.T) {
	e, _ := newTestEngine(t)
	style := testStyle()
	style.LineHeight = 20
	info := layoutText(t, e, "ab\nabcd", style, BoxConfig{Width: 100, Height: 100, ParagraphSpacing: 7})

	if got := info.Lines[0].Y; !approx(got, 5) {
		t.Errorf("first line y: got %v, want 5", got)
	}
	if got := info.Lines[1].Y; !approx(got, 32) {
		t.Errorf("second line y: got %v, want 32", got)
	}
	lr := info.LayoutRect
	if !approx(lr.X, 0) || !approx(lr.Y, 0) || !approx(lr.Width, 20) || !approx(lr.Height, 47) {
		t.Errorf("layout rect: got %+v, want {0 0 20 47}", lr)
	}
	dr := info.DirtyRect
	if !approx(dr.Y, 0) || !approx(dr.Height, 47) || !approx(dr.Width, 20) {
		t.Errorf("dirty rect: got %+v, want {0 0 20 47}", dr)
	}
}

func TestLayoutEmptyParagraphs(t *testing.T) {
	e, _ := newTestEngine(t)

	info := layoutText(t, e, "", testStyle(), BoxConfig{})
	if len(info.Lines) != 1 {
		t.Fatalf("empty text: got %d lines, want 1", len(info.Lines))
	}
	if l := info.Lines[0]; l.LineHeight != emptyLineHeight || l.Baseline != emptyLineBaseline {
		t.Errorf("empty text line: got %+v", l)
	}
	if got := TextEnd(info); got != (TextPos{}) {
		t.Errorf("TextEnd of empty text: got %v, want {0 0}", got)
	}

	info = layoutText(t, e, "a\n\n", testStyle(), BoxConfig{})
	if got := lineTexts(info); !slices.Equal(got, []string{"a\n", "\n", ""}) {
		t.Fatalf("lines: got %q", got)
	}
	if l := info.Lines[2]; !approx(l.LineHeight, 10) || !approx(l.Baseline, 8) {
		t.Errorf("trailing empty line: got lineHeight %v baseline %v, want 10 and 8", l.LineHeight, l.Baseline)
	}
	if !approx(info.LayoutRect.Height, 30) {
		t.Errorf("content height: got %v, want 30", info.LayoutRect.Height)
	}
}

func TestLayoutLetterCase(t *testing.T) {
	e, _ := newTestEngine(t)
	style := testStyle()
	style.Case = CaseUpper
	info := layoutText(t, e, "ab c", style, BoxConfig{})
	if info.Text != "AB C" {
		t.Errorf("text: got %q, want %q", info.Text, "AB C")
	}
}

func TestLayoutUnrenderable(t *testing.T) {
	e, src := newTestEngine(t)
	info := layoutText(t, e, "a中", testStyle(), BoxConfig{})
	tok := info.Tokens[1]
	if tok.Font != src.loaded["Test-Regular"] || tok.Glyph != fonts.GlyphID(' ') {
		t.Errorf("unrenderable char: got glyph %d, want the space glyph of its own font", tok.Glyph)
	}

	missing := testStyle()
	missing.Family = "Missing"
	info = layoutText(t, e, "a", missing, BoxConfig{})
	if tok := info.Tokens[0]; tok.Font != src.candidate || tok.Glyph != fonts.NotdefGlyph {
		t.Errorf("unloaded font: got glyph %d, want candidate notdef", tok.Glyph)
	}

	src.candidate = nil
	if _, err := e.Layout(SingleStyle("a", missing, BoxConfig{})); !errors.Is(err, fonts.ErrNoCandidate) {
		t.Errorf("no candidate: got %v, want ErrNoCandidate", err)
	}
}

func TestLayoutInvalid(t *testing.T) {
	e, _ := newTestEngine(t)
	cfg := SingleStyle("abc", testStyle(), BoxConfig{})
	cfg.StyleIndex = cfg.StyleIndex[:1]
	if _, err := e.Layout(cfg); !errors.Is(err, ErrInvalidStyleIndex) {
		t.Errorf("got %v, want ErrInvalidStyleIndex", err)
	}
}

func TestLayoutWrapLetterSpacing(t *testing.T) {
	e, _ := newTestEngine(t)
	style := testStyle()
	style.LetterSpacing = 1
	info := layoutText(t, e, "abcd", style, BoxConfig{WordWrap: true, WrapWidth: 12})

	if got := lineTexts(info); !slices.Equal(got, []string{"ab", "cd"}) {
		t.Fatalf("lines: got %q", got)
	}
	for i, want := range []float64{12, 11} {
		if got := info.Lines[i].Width; !approx(got, want) {
			t.Errorf("line %d width: got %v, want %v", i, got, want)
		}
	}
	if got := info.Tokens[2].Width; !approx(got, 6) {
		t.Errorf("re-measured token width: got %v, want 6", got)
	}
}
