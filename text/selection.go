package text

import "github.com/gogpu/glyphmesh/geom"

// Span is a half-open range [Start, End) of linear token indices together
// with the class of the character it was grown from.
type Span struct {
	Start, End int
	Class      CharClass
}

// Empty reports whether the span selects nothing.
func (s Span) Empty() bool { return s.Start >= s.End }

// originClass returns the clamped index and the index of the character the
// peek grows from: the one after i when right is set, the one before i
// otherwise, and the only neighbour at either end of the text.
func originClass(tokens []CharToken, idx int, right bool) (i, origin int) {
	i = clamp(idx, 0, len(tokens))
	switch {
	case i == 0:
		origin = 0
	case i == len(tokens):
		origin = i - 1
	case right:
		origin = i
	default:
		origin = i - 1
	}
	return i, origin
}

func grow(tokens []CharToken, i int, match func(CharClass) bool) (start, end int) {
	start, end = i, i
	for start > 0 && match(ClassOf(tokens[start-1].Char)) {
		start--
	}
	for end < len(tokens) && match(ClassOf(tokens[end].Char)) {
		end++
	}
	return start, end
}

// PeekWord expands index idx into the run of characters sharing the class
// of its neighbour in the preferred direction. Spaces and newlines count
// as one class.
func PeekWord(tokens []CharToken, idx int, right bool) Span {
	if len(tokens) == 0 {
		return Span{}
	}
	i, origin := originClass(tokens, idx, right)
	class := ClassOf(tokens[origin].Char)

	blank := func(c CharClass) bool { return c == ClassEnter || c == ClassSpace }
	match := func(c CharClass) bool { return c == class }
	if blank(class) {
		match = blank
	}
	start, end := grow(tokens, i, match)
	return Span{Start: start, End: end, Class: class}
}

// PeekLine expands index idx into the run of characters up to the
// surrounding newlines. When the origin character is itself a newline the
// result is the empty span just past it.
func PeekLine(tokens []CharToken, idx int, right bool) Span {
	if len(tokens) == 0 {
		return Span{}
	}
	i, origin := originClass(tokens, idx, right)
	class := ClassOf(tokens[origin].Char)
	if class == ClassEnter {
		return Span{Start: origin + 1, End: origin + 1, Class: class}
	}
	start, end := grow(tokens, i, func(c CharClass) bool { return c != ClassEnter })
	return Span{Start: start, End: end, Class: class}
}

// OrderTextPos returns a and b in reading order.
func OrderTextPos(a, b TextPos) (start, end TextPos) {
	if b.Less(a) {
		return b, a
	}
	return a, b
}

// CaretRect returns the one pixel wide caret rectangle at pos.
func CaretRect(info *LayoutInfo, pos TextPos) geom.Rect {
	p := info.PointAt(pos)
	return geom.Rect{X: p.X, Y: p.Y, Width: 1, Height: info.HeightOfRow(pos.Row)}
}

// renderBox returns the rendered height of a row and the offset of the
// glyph box inside it.
func renderBox(info *LayoutInfo, row int) (height, offset float64) {
	h := info.HeightOfRow(row)
	height = max(h, info.LineHeightOfRow(row))
	return height, (height - h) / 2
}

// SelectionRects returns the highlight rectangles between two positions,
// one per row. Inner rows span the full content width.
func SelectionRects(info *LayoutInfo, a, b TextPos) []geom.Rect {
	start, end := OrderTextPos(info.ClampTextPos(a), info.ClampTextPos(b))
	sp, ep := info.PointAt(start), info.PointAt(end)
	lr := info.LayoutRect

	h, off := renderBox(info, start.Row)
	if start.Row == end.Row {
		return []geom.Rect{{X: sp.X, Y: sp.Y - off, Width: ep.X - sp.X, Height: h}}
	}

	rects := make([]geom.Rect, 0, end.Row-start.Row+1)
	rects = append(rects, geom.Rect{X: sp.X, Y: sp.Y - off, Width: lr.Right() - sp.X, Height: h})
	for row := start.Row + 1; row < end.Row; row++ {
		h, off := renderBox(info, row)
		rects = append(rects, geom.Rect{X: lr.X, Y: info.Lines[row].Y - off, Width: lr.Width, Height: h})
	}
	h, off = renderBox(info, end.Row)
	rects = append(rects, geom.Rect{X: lr.X, Y: ep.Y - off, Width: ep.X - lr.X, Height: h})
	return rects
}

// preferRight decides which neighbour of the cursor under point p a
// multi-click selects: the character after the cursor at the start of a
// row, the one before it at the end, and otherwise the side p falls on.
func preferRight(info *LayoutInfo, pos TextPos, p geom.Point) bool {
	tokens := info.LineTokens(pos.Row)
	if len(tokens) == 0 {
		return true
	}
	end := len(tokens)
	if isEnter(tokens[end-1].Char) {
		end--
	}
	switch pos.Col {
	case end:
		return false
	case 0:
		return true
	}
	return p.X >= info.PointAt(pos).X
}

// WordAt returns the selection a double click at p makes: the word, the
// punctuation run or the blank run under the pointer.
func WordAt(info *LayoutInfo, p geom.Point) (start, end TextPos) {
	pos := info.TextPosAt(p)
	span := PeekWord(info.Tokens, info.IndexOf(pos), preferRight(info, pos, p))
	if span.Class == ClassEnter || span.Class == ClassSpace {
		return info.TextPosOf(span.Start, false), info.TextPosOf(span.End, true)
	}
	return info.TextPosOf(span.Start, true), info.TextPosOf(span.End, false)
}

// LineAt returns the selection a triple click at p makes: the text between
// the surrounding newlines, or a caret after the newline under the pointer.
func LineAt(info *LayoutInfo, p geom.Point) (start, end TextPos) {
	pos := info.TextPosAt(p)
	span := PeekLine(info.Tokens, info.IndexOf(pos), preferRight(info, pos, p))
	if span.Class == ClassEnter {
		caret := info.TextPosOf(span.End, span.End == len(info.Tokens))
		return caret, caret
	}
	return info.TextPosOf(span.Start, true), info.TextPosOf(span.End, false)
}

// All returns the selection of the whole text.
func All(info *LayoutInfo) (start, end TextPos) {
	last := len(info.Lines) - 1
	return TextPos{}, TextPos{Row: last, Col: info.Lines[last].Len()}
}
