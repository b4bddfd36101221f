package text

import (
	"unicode/utf8"

	"github.com/gogpu/glyphmesh/geom"
)

// Conversions between pixel positions, TextPos values and linear token
// indices. Out-of-range inputs are clamped, never rejected.

// Row returns the row at vertical position y. Positions above the content
// map to the first row and positions below it to the last.
func (info *LayoutInfo) Row(y float64) int {
	n := len(info.Lines)
	if n == 0 {
		return 0
	}
	r := info.LayoutRect
	switch {
	case y < r.Y:
		return 0
	case y >= r.Y+r.Height:
		return n - 1
	}

	lo, hi := 0, n-1
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case y < info.Lines[mid].Y:
			hi = mid
		case y >= info.Lines[mid+1].Y:
			lo = mid + 1
		default:
			return mid
		}
	}
	return lo
}

// Col returns the column at horizontal position x on a row. The left half
// of a token selects the token, the right half the position after it.
// Past the end of the line the cursor goes after the last token, or before
// it when it is a newline.
func (info *LayoutInfo) Col(row int, x float64) int {
	line := &info.Lines[info.ClampRow(row)]
	tokens := info.Tokens[line.Start:line.End]
	if len(tokens) == 0 {
		return 0
	}
	last := len(tokens) - 1
	switch {
	case x < line.X:
		return 0
	case x >= line.X+line.Width:
		if isEnter(tokens[last].Char) {
			return last
		}
		return last + 1
	}

	lo, hi := 0, last
	for lo <= hi {
		mid := (lo + hi) / 2
		t := &tokens[mid]
		switch {
		case x < t.X:
			if hi == mid {
				return lo
			}
			hi = mid
		case x < t.X+t.Width/2:
			return mid
		case x < t.X+t.Width:
			return mid + 1
		default:
			lo = mid + 1
		}
	}
	return lo
}

// TextPosAt returns the cursor position closest to point p.
func (info *LayoutInfo) TextPosAt(p geom.Point) TextPos {
	row := info.Row(p.Y)
	return TextPos{Row: row, Col: info.Col(row, p.X)}
}

// ClampRow clamps row to the valid rows.
func (info *LayoutInfo) ClampRow(row int) int {
	return clamp(row, 0, len(info.Lines)-1)
}

// ClampCol clamps col to [0, token count] of the row.
func (info *LayoutInfo) ClampCol(row, col int) int {
	return clamp(col, 0, info.Lines[info.ClampRow(row)].Len())
}

// ClampTextPos clamps both coordinates of pos.
func (info *LayoutInfo) ClampTextPos(pos TextPos) TextPos {
	row := info.ClampRow(pos.Row)
	return TextPos{Row: row, Col: info.ClampCol(row, pos.Col)}
}

// PointAt returns the caret position of pos: the left edge of the token at
// pos, the right edge of the last token when pos is at the end of the row,
// and the top of the row.
func (info *LayoutInfo) PointAt(pos TextPos) geom.Point {
	pos = info.ClampTextPos(pos)
	line := &info.Lines[pos.Row]
	if line.Len() == 0 {
		return geom.Pt(line.X, line.Y)
	}
	if pos.Col == line.Len() {
		t := &info.Tokens[line.End-1]
		return geom.Pt(t.X+t.Width, line.Y)
	}
	return geom.Pt(info.Tokens[line.Start+pos.Col].X, line.Y)
}

// HeightOfRow returns the glyph height of a row.
func (info *LayoutInfo) HeightOfRow(row int) float64 {
	return info.Lines[info.ClampRow(row)].Height
}

// LineHeightOfRow returns the line height of a row.
func (info *LayoutInfo) LineHeightOfRow(row int) float64 {
	return info.Lines[info.ClampRow(row)].LineHeight
}

// IndexOf returns the linear token index of pos.
func (info *LayoutInfo) IndexOf(pos TextPos) int {
	pos = info.ClampTextPos(pos)
	return info.Lines[pos.Row].Start + pos.Col
}

// TextPosOf returns the position of linear index idx. An index at the end
// of a row is ambiguous: startNextLine selects the start of the next row
// instead of the end of the current one.
func (info *LayoutInfo) TextPosOf(idx int, startNextLine bool) TextPos {
	cursor := idx
	for row := range info.Lines {
		n := info.Lines[row].Len()
		if cursor < n || (!startNextLine && cursor == n) {
			return TextPos{Row: row, Col: max(cursor, 0)}
		}
		cursor -= n
	}
	last := len(info.Lines) - 1
	return TextPos{Row: last, Col: info.Lines[last].Len()}
}

// StringIndex returns the UTF-8 byte offset in Text of the token at linear
// index idx, or len(Text) past the last token. Use RuneIndex for the code
// point offset.
func (info *LayoutInfo) StringIndex(idx int) int {
	idx = clamp(idx, 0, len(info.Tokens))
	off := 0
	for _, t := range info.Tokens[:idx] {
		off += utf8.RuneLen(t.Char)
	}
	return off
}

// RuneIndex returns the code point offset in Text of the token at linear
// index idx. Text holds one code point per token, so this is idx clamped
// to [0, len(Tokens)].
func (info *LayoutInfo) RuneIndex(idx int) int {
	return clamp(idx, 0, len(info.Tokens))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
