package text

// Cursor movement. Every function is a pure transition from a position to
// the next one; positions are clamped first.

// Left moves one character back. Reaching the start of a row stops there
// rather than at the end of the previous row.
func Left(info *LayoutInfo, pos TextPos) TextPos {
	idx := clamp(info.IndexOf(pos)-1, 0, len(info.Tokens))
	return info.TextPosOf(idx, true)
}

// Right moves one character forward. Moving past a newline goes to the
// start of the next row.
func Right(info *LayoutInfo, pos TextPos) TextPos {
	idx := clamp(info.IndexOf(pos)+1, 0, len(info.Tokens))
	startNextLine := idx > 0 && isEnter(info.Tokens[idx-1].Char)
	return info.TextPosOf(idx, startNextLine)
}

// TextStart returns the first position of the text.
func TextStart(info *LayoutInfo) TextPos {
	return info.TextPosOf(0, false)
}

// TextEnd returns the last position of the text. A trailing empty row is
// the end.
func TextEnd(info *LayoutInfo) TextPos {
	return info.TextPosOf(len(info.Tokens), true)
}

// Up moves to the previous row keeping the caret x. On the first row it
// moves to the start of the text.
func Up(info *LayoutInfo, pos TextPos) TextPos {
	pos = info.ClampTextPos(pos)
	if pos.Row == 0 {
		return TextStart(info)
	}
	x := info.PointAt(pos).X
	return TextPos{Row: pos.Row - 1, Col: info.Col(pos.Row-1, x)}
}

// Down moves to the next row keeping the caret x. On the last row it moves
// to the end of the text.
func Down(info *LayoutInfo, pos TextPos) TextPos {
	pos = info.ClampTextPos(pos)
	if pos.Row == len(info.Lines)-1 {
		return TextEnd(info)
	}
	x := info.PointAt(pos).X
	return TextPos{Row: pos.Row + 1, Col: info.Col(pos.Row+1, x)}
}

// LineStart moves to the start of the row.
func LineStart(info *LayoutInfo, pos TextPos) TextPos {
	return TextPos{Row: info.ClampRow(pos.Row)}
}

// LineEnd moves to the end of the row, before a trailing newline.
func LineEnd(info *LayoutInfo, pos TextPos) TextPos {
	row := info.ClampRow(pos.Row)
	tokens := info.LineTokens(row)
	col := len(tokens)
	if col > 0 && isEnter(tokens[col-1].Char) {
		col--
	}
	return TextPos{Row: row, Col: col}
}

// WordStart moves back over non-word characters and then over the word
// before them.
func WordStart(info *LayoutInfo, pos TextPos) TextPos {
	idx := info.IndexOf(pos)
	for idx > 0 && ClassOf(info.Tokens[idx-1].Char) != ClassCharacter {
		idx--
	}
	for idx > 0 && ClassOf(info.Tokens[idx-1].Char) == ClassCharacter {
		idx--
	}
	return info.TextPosOf(idx, true)
}

// WordEnd moves forward over non-word characters and then over the word
// after them.
func WordEnd(info *LayoutInfo, pos TextPos) TextPos {
	idx := info.IndexOf(pos)
	n := len(info.Tokens)
	for idx < n && ClassOf(info.Tokens[idx].Char) != ClassCharacter {
		idx++
	}
	for idx < n && ClassOf(info.Tokens[idx].Char) == ClassCharacter {
		idx++
	}
	return info.TextPosOf(idx, false)
}
