package text

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// AutoLineHeight derives the line height from the font metrics.
// It is the zero value of Style.LineHeight.
const AutoLineHeight = 0

// Style is the per-character style: font selection, size and spacing.
type Style struct {
	// Family is the requested font family, e.g. "Roboto".
	Family string

	// Weight is a style label understood by fonts.ParseStyle, e.g.
	// "Regular", "700" or "Bold Italic".
	Weight string

	// Size is the font size in pixels.
	Size float64

	// LineHeight is the line height in pixels, or AutoLineHeight.
	LineHeight float64

	// LetterSpacing is added after every character that is followed by a
	// character other than a newline.
	LetterSpacing float64

	// Case transforms the characters before layout.
	Case LetterCase
}

// IsAutoLineHeight reports whether the line height comes from the font.
func (s Style) IsAutoLineHeight() bool { return s.LineHeight == AutoLineHeight }

// Validate checks the style for values layout cannot use.
func (s Style) Validate() error {
	if s.Family == "" {
		return fmt.Errorf("%w: empty font family", ErrInvalidConfig)
	}
	if !finite(s.Size) || s.Size <= 0 {
		return fmt.Errorf("%w: font size %v must be positive", ErrInvalidConfig, s.Size)
	}
	if !finite(s.LineHeight) || s.LineHeight < 0 {
		return fmt.Errorf("%w: line height %v is negative", ErrInvalidConfig, s.LineHeight)
	}
	if !finite(s.LetterSpacing) {
		return fmt.Errorf("%w: letter spacing %v", ErrInvalidConfig, s.LetterSpacing)
	}
	if s.Case > CaseTitle {
		return fmt.Errorf("%w: letter case %d", ErrInvalidConfig, s.Case)
	}
	return nil
}

// BoxConfig describes the text box.
type BoxConfig struct {
	Width, Height float64

	// WordWrap enables wrapping at WrapWidth. Without it lines only break
	// at newlines.
	WordWrap  bool
	WrapWidth float64

	// ParagraphSpacing is the extra vertical space between paragraphs.
	ParagraphSpacing float64

	HAlign HAlign
	VAlign VAlign
}

// wrapWidth returns the effective maximum line width.
func (b BoxConfig) wrapWidth() float64 {
	if b.WordWrap {
		return b.WrapWidth
	}
	return inf
}

// Validate checks the box configuration.
func (b BoxConfig) Validate() error {
	if math.IsNaN(b.Width) || math.IsNaN(b.Height) || b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative box size %vx%v", ErrInvalidConfig, b.Width, b.Height)
	}
	if b.WordWrap && (math.IsNaN(b.WrapWidth) || b.WrapWidth < 0) {
		return fmt.Errorf("%w: negative wrap width %v", ErrInvalidConfig, b.WrapWidth)
	}
	if !finite(b.ParagraphSpacing) {
		return fmt.Errorf("%w: paragraph spacing %v", ErrInvalidConfig, b.ParagraphSpacing)
	}
	if b.HAlign > AlignRight || b.VAlign > AlignBottom {
		return fmt.Errorf("%w: unknown alignment %d/%d", ErrInvalidConfig, b.HAlign, b.VAlign)
	}
	return nil
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Config is a complete layout request.
type Config struct {
	// Text is the source text. Newlines separate paragraphs.
	Text string

	// StyleIndex holds one key into Styles per character (rune) of Text.
	StyleIndex []int

	// Styles is the style table.
	Styles map[int]Style

	Box BoxConfig
}

// Validate checks that every character has a valid style and that the box
// is usable.
func (c *Config) Validate() error {
	n := utf8.RuneCountInString(c.Text)
	if len(c.StyleIndex) < n {
		return fmt.Errorf("%w: %d style indices for %d characters", ErrInvalidStyleIndex, len(c.StyleIndex), n)
	}
	for i, idx := range c.StyleIndex[:n] {
		if _, ok := c.Styles[idx]; !ok {
			return fmt.Errorf("%w: character %d uses style %d", ErrInvalidStyleIndex, i, idx)
		}
	}
	for idx, s := range c.Styles {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("style %d: %w", idx, err)
		}
	}
	return c.Box.Validate()
}

// SingleStyle builds a Config that applies one style to all of text.
func SingleStyle(text string, style Style, box BoxConfig) Config {
	return Config{
		Text:       text,
		StyleIndex: make([]int, utf8.RuneCountInString(text)),
		Styles:     map[int]Style{0: style},
		Box:        box,
	}
}
