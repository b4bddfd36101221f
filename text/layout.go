package text

import (
	"github.com/gogpu/glyphmesh/geom"
	"github.com/gogpu/glyphmesh/internal/logger"
)

// Placeholder metrics for an empty first paragraph.
const (
	emptyLineHeight   = 100
	emptyLineBaseline = 60
)

// LayoutInfo is a complete, immutable layout result.
//
// Tokens is the token arena in reading order; every line addresses a
// contiguous range of it, so the line ranges partition Tokens.
type LayoutInfo struct {
	Text string

	// LayoutRect bounds the line boxes; DirtyRect also covers rendered
	// line heights that exceed the glyph height.
	LayoutRect geom.Rect
	DirtyRect  geom.Rect

	Lines  []Line
	Tokens []CharToken
}

// LineTokens returns the tokens of a row. The row is clamped.
func (info *LayoutInfo) LineTokens(row int) []CharToken {
	l := &info.Lines[info.ClampRow(row)]
	return info.Tokens[l.Start:l.End]
}

// Engine runs the layout pipeline: paragraph split, tokenization, line
// breaking and positioning.
type Engine struct {
	tokenizer *Tokenizer
}

// NewEngine creates an Engine. A nil fb uses the default fallback families.
func NewEngine(src FontSource, fb *Fallback) *Engine {
	return &Engine{tokenizer: NewTokenizer(src, fb)}
}

// Fallback returns the fallback resolver shared with the tokenizer.
func (e *Engine) Fallback() *Fallback { return e.tokenizer.Fallback() }

// Layout validates cfg and lays it out using the fonts that are loaded now.
// Characters waiting for an unloaded fallback font are drawn with a
// placeholder; Fallback().ResolveAll loads them for a later pass.
func (e *Engine) Layout(cfg Config) (*LayoutInfo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runes, styleIndex := applyLetterCase(cfg.Text, cfg.StyleIndex, cfg.Styles)
	text := string(runes)

	tree, err := e.tokenizer.Tokenize(SplitParagraphs(text), styleIndex, cfg.Styles)
	if err != nil {
		return nil, err
	}

	paragraphs := make([][]Line, 0, len(tree.Paragraphs))
	for _, para := range tree.Paragraphs {
		lines := BreakLines(tree.Chars, para, cfg.Box)
		if para.Text == "" {
			fillEmptyLine(&lines[0], paragraphs, tree.Chars)
		}
		paragraphs = append(paragraphs, lines)
	}

	info := &LayoutInfo{Text: text, Tokens: tree.Chars}
	info.LayoutRect, info.DirtyRect = position(paragraphs, tree.Chars, cfg.Box)
	for _, lines := range paragraphs {
		info.Lines = append(info.Lines, lines...)
	}

	logger.Get().Debug("text: layout", "lines", len(info.Lines), "tokens", len(info.Tokens))
	return info, nil
}

// fillEmptyLine gives the line of an empty paragraph the metrics of the last
// token before it, or fixed placeholder metrics at the start of the text.
func fillEmptyLine(line *Line, before [][]Line, chars []CharToken) {
	if len(before) > 0 {
		prev := before[len(before)-1]
		last := prev[len(prev)-1]
		if last.Len() > 0 {
			t := &chars[last.End-1]
			line.Height, line.LineHeight, line.Baseline = t.Height, t.LineHeight, t.Baseline
			return
		}
	}
	line.Height = emptyLineHeight
	line.LineHeight = emptyLineHeight
	line.Baseline = emptyLineBaseline
}

func leftOffset(width, lineWidth float64, align HAlign) float64 {
	switch align {
	case AlignCenter:
		return (width - lineWidth) / 2
	case AlignRight:
		return width - lineWidth
	default:
		return 0
	}
}

func topOffset(height, textHeight float64, align VAlign) float64 {
	switch align {
	case AlignMiddle:
		return (height - textHeight) / 2
	case AlignBottom:
		return height - textHeight
	default:
		return 0
	}
}

// position places lines and tokens in the box and returns the content and
// dirty rectangles.
func position(paragraphs [][]Line, chars []CharToken, box BoxConfig) (layoutRect, dirtyRect geom.Rect) {
	var height float64
	for _, lines := range paragraphs {
		for i := range lines {
			height += lines[i].LineHeight
		}
	}
	height += float64(max(len(paragraphs)-1, 0)) * box.ParagraphSpacing

	top := topOffset(box.Height, height, box.VAlign)
	layoutRect = geom.Rect{X: inf, Y: top, Height: height}
	dirtyRect = geom.Rect{X: inf, Y: inf}

	for _, lines := range paragraphs {
		for i := range lines {
			line := &lines[i]
			tokens := chars[line.Start:line.End]

			// Trailing spaces do not count for alignment unless the line
			// ends with a newline.
			minus := 0.0
			if n := len(tokens); n > 0 && !isEnter(tokens[n-1].Char) {
				for j := n - 1; j >= 0 && isSpace(tokens[j].Char); j-- {
					minus += tokens[j].Width
				}
			}

			left := leftOffset(box.Width, line.Width-minus, box.HAlign)
			line.X = left
			line.Y = top - (line.Height-line.LineHeight)/2

			layoutRect.X = min(layoutRect.X, line.X)
			layoutRect.Width = max(layoutRect.Width, line.Width)

			renderHeight := max(line.Height, line.LineHeight)
			renderOffset := (renderHeight - line.Height) / 2
			dirtyRect.X = min(dirtyRect.X, line.X)
			dirtyRect.Width = max(dirtyRect.Width, line.Width)
			dirtyRect.Y = min(dirtyRect.Y, line.Y-renderOffset)
			dirtyRect.Height = max(dirtyRect.Height, line.Y+renderHeight-renderOffset-dirtyRect.Y)

			for j := range tokens {
				tokens[j].X = left
				tokens[j].Y = line.Y + line.Baseline
				left += tokens[j].Width
			}

			top += line.LineHeight
		}
		top += box.ParagraphSpacing
	}
	return layoutRect, dirtyRect
}
