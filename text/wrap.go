package text

// Line is one visual row. Start and End delimit its tokens in the token
// arena; X and Y are set by layout, Y being the top of the line box.
type Line struct {
	Text       string
	Start, End int

	X, Y       float64
	Width      float64
	Height     float64
	LineHeight float64
	Baseline   float64
}

// Len returns the number of tokens on the line.
func (l *Line) Len() int { return l.End - l.Start }

func (l *Line) extent() Extent {
	return Extent{Width: l.Width, Height: l.Height, LineHeight: l.LineHeight, Baseline: l.Baseline}
}

// lineBreaker greedily packs the segments of one paragraph into lines.
type lineBreaker struct {
	chars []CharToken
	wrap  float64

	lines []Line
	line  Line
	prev  int // arena index of the last token placed, or -1

	// open is set when the previous token was measured without a follower
	// and so still owes its letter spacing to the next token placed.
	open bool
}

// BreakLines wraps one paragraph of the token arena into lines.
//
// Segments are appended while they fit in the wrap width. A segment that
// does not fit starts a new line, unless it is wider than the wrap width on
// its own, in which case it is packed character by character. Spaces and
// newlines never start a new line, so a narrow box does not produce lines
// holding only whitespace.
//
// An empty paragraph yields one empty line.
func BreakLines(chars []CharToken, para ParagraphToken, box BoxConfig) []Line {
	b := lineBreaker{
		chars: chars,
		wrap:  box.wrapWidth(),
		line:  Line{Start: para.Start, End: para.Start},
		prev:  -1,
	}
	for _, seg := range para.Segments {
		b.addSegment(seg)
	}
	b.lines = append(b.lines, b.line)
	return b.lines
}

func (b *lineBreaker) prevToken() *CharToken {
	if b.prev < 0 {
		return nil
	}
	return &b.chars[b.prev]
}

// owed returns the letter spacing the previous token adds when next
// follows it.
func (b *lineBreaker) owed(next *CharToken) float64 {
	if !b.open {
		return 0
	}
	return letterSpacing(b.prevToken(), next)
}

func (b *lineBreaker) addSegment(seg SegmentToken) {
	if seg.End <= seg.Start {
		return
	}
	tokens := b.chars[seg.Start:seg.End]
	ext := MeasureTokens(tokens, b.prevToken())
	spacing := b.owed(&tokens[0])

	switch {
	case b.line.Width+spacing+ext.Width <= b.wrap:
		b.appendLine(seg.Text, seg.Start, seg.End, ext, spacing)
		b.open = true
		return
	case ext.Width <= b.wrap:
		b.newLine(seg.Text, seg.Start, seg.End, ext)
		b.open = true
		return
	}

	// Tokens inside the segment were measured with their follower, so only
	// the segment's last token still owes spacing.
	for i := seg.Start; i < seg.End; i++ {
		curr := &b.chars[i]
		spacing := b.owed(curr)
		if b.line.Width+spacing+curr.Width > b.wrap && !isSpace(curr.Char) && !isEnter(curr.Char) {
			// Kerning against the new line-start neighbour differs.
			ext := MeasureTokens(b.chars[i:i+1], nil)
			b.newLine(string(curr.Char), i, i+1, ext)
			b.open = true
			continue
		}
		b.appendLine(string(curr.Char), i, i+1, Extent{
			Width:      curr.Width,
			Height:     curr.Height,
			LineHeight: curr.LineHeight,
			Baseline:   curr.Baseline,
		}, spacing)
		b.open = i == seg.End-1
	}
}

// newLine closes the current line, if it holds anything, and starts a new
// one with the tokens [start, end).
func (b *lineBreaker) newLine(text string, start, end int, ext Extent) {
	if b.line.Text != "" {
		b.lines = append(b.lines, b.line)
	}
	b.line = Line{
		Text:       text,
		Start:      start,
		End:        end,
		Width:      ext.Width,
		Height:     ext.Height,
		LineHeight: ext.LineHeight,
		Baseline:   ext.Baseline,
	}
	b.prev = end - 1
}

// appendLine adds the tokens [start, end) to the current line. spacing is
// the letter spacing owed by the previous token now that it has a follower.
func (b *lineBreaker) appendLine(text string, start, end int, ext Extent, spacing float64) {
	b.line.Text += text
	b.line.Width += spacing + ext.Width
	if prev := b.prevToken(); prev != nil {
		prev.Width += spacing
	}
	if b.line.Len() == 0 {
		b.line.Start = start
	}
	b.line.End = end
	b.line.Height = max(b.line.Height, ext.Height)
	b.line.LineHeight = max(b.line.LineHeight, ext.LineHeight)
	b.line.Baseline = max(b.line.Baseline, ext.Baseline)
	b.prev = end - 1
}
