package text

import "testing"

func TestHorizontalMovement(t *testing.T) {
	info := twoLines(t)
	tests := []struct {
		name string
		move func(*LayoutInfo, TextPos) TextPos
		from TextPos
		want TextPos
	}{
		{"right within row", Right, TextPos{0, 0}, TextPos{0, 1}},
		{"right over newline", Right, TextPos{0, 2}, TextPos{1, 0}},
		{"right at end", Right, TextPos{1, 2}, TextPos{1, 2}},
		{"left to row start", Left, TextPos{1, 1}, TextPos{1, 0}},
		{"left over newline", Left, TextPos{1, 0}, TextPos{0, 2}},
		{"left at start", Left, TextPos{0, 0}, TextPos{0, 0}},
		{"line start", LineStart, TextPos{1, 2}, TextPos{1, 0}},
		{"line end before newline", LineEnd, TextPos{0, 0}, TextPos{0, 2}},
		{"line end", LineEnd, TextPos{1, 0}, TextPos{1, 2}},
		{"line end clamps", LineEnd, TextPos{9, 0}, TextPos{1, 2}},
	}
	for _, tt := range tests {
		if got := tt.move(info, tt.from); got != tt.want {
			t.Errorf("%s: from %v got %v, want %v", tt.name, tt.from, got, tt.want)
		}
	}
}

func TestVerticalMovement(t *testing.T) {
	info := twoLines(t)
	tests := []struct {
		name string
		move func(*LayoutInfo, TextPos) TextPos
		from TextPos
		want TextPos
	}{
		{"up keeps x", Up, TextPos{1, 1}, TextPos{0, 1}},
		{"up from first row", Up, TextPos{0, 2}, TextPos{0, 0}},
		{"down keeps x", Down, TextPos{0, 1}, TextPos{1, 1}},
		{"down from last row", Down, TextPos{1, 0}, TextPos{1, 2}},
		{"down before newline", Down, TextPos{0, 2}, TextPos{1, 2}},
	}
	for _, tt := range tests {
		if got := tt.move(info, tt.from); got != tt.want {
			t.Errorf("%s: from %v got %v, want %v", tt.name, tt.from, got, tt.want)
		}
	}
}

func TestTextBounds(t *testing.T) {
	info := twoLines(t)
	if got := TextStart(info); got != (TextPos{}) {
		t.Errorf("TextStart: got %v, want {0 0}", got)
	}
	if got := TextEnd(info); got != (TextPos{1, 2}) {
		t.Errorf("TextEnd: got %v, want {1 2}", got)
	}
}

func TestWordMovement(t *testing.T) {
	e, _ := newTestEngine(t)
	// a b _ c d , _ e f
	info := layoutText(t, e, "ab cd, ef", testStyle(), BoxConfig{})
	tests := []struct {
		name string
		move func(*LayoutInfo, TextPos) TextPos
		from int
		want int
	}{
		{"word end inside word", WordEnd, 0, 2},
		{"word end skips space", WordEnd, 2, 5},
		{"word end skips punctuation", WordEnd, 5, 9},
		{"word end at end", WordEnd, 9, 9},
		{"word start inside word", WordStart, 4, 3},
		{"word start after word", WordStart, 5, 3},
		{"word start skips punctuation", WordStart, 7, 3},
		{"word start from end", WordStart, 9, 7},
		{"word start at start", WordStart, 0, 0},
	}
	for _, tt := range tests {
		got := tt.move(info, TextPos{Col: tt.from})
		if got != (TextPos{Col: tt.want}) {
			t.Errorf("%s: from %d got %v, want col %d", tt.name, tt.from, got, tt.want)
		}
	}
}

func TestWordMovementAcrossRows(t *testing.T) {
	info := twoLines(t)
	if got := WordEnd(info, TextPos{0, 2}); got != (TextPos{1, 2}) {
		t.Errorf("WordEnd over newline: got %v, want {1 2}", got)
	}
	if got := WordStart(info, TextPos{1, 0}); got != (TextPos{0, 0}) {
		t.Errorf("WordStart over newline: got %v, want {0 0}", got)
	}
}
