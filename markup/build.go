package markup

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/go-text/typesetting/language"

	"github.com/gogpu/glyphmesh/fonts"
	"github.com/gogpu/glyphmesh/text"
)

// Sentinel errors returned by Document.Build.
var (
	// ErrUnknownStyle is returned when a text run names an undeclared style.
	ErrUnknownStyle = errors.New("markup: unknown style")

	// ErrDuplicateStyle is returned when a style name is declared twice.
	ErrDuplicateStyle = errors.New("markup: duplicate style")

	// ErrUnknownProperty is returned for a property key the block does not
	// accept.
	ErrUnknownProperty = errors.New("markup: unknown property")

	// ErrInvalidValue is returned when a property value has the wrong type
	// or is out of range.
	ErrInvalidValue = errors.New("markup: invalid value")

	// ErrUnknownScript is returned when a fallback declaration names a
	// script that is neither a known name nor an ISO 15924 code.
	ErrUnknownScript = errors.New("markup: unknown script")
)

// Request is everything a document describes: the layout configuration,
// the fonts to register and the fallback setup.
type Request struct {
	Config text.Config

	// Fonts lists the declared font files in declaration order.
	Fonts []fonts.Meta

	// Families holds the declared fallback families per script, or nil
	// when the document declares none.
	Families map[language.Script][]string

	// Candidate is the declared candidate font. Family is empty when the
	// document declares none.
	Candidate fonts.Meta
}

// Build converts the document into a layout request. Styles get indices in
// declaration order starting at zero.
func (d *Document) Build() (Request, error) {
	var req Request
	req.Config.Styles = make(map[int]text.Style)
	names := make(map[string]int)

	var runs []*Run
	for _, st := range d.Statements {
		var err error
		switch {
		case st.Box != nil:
			err = applyBox(&req.Config.Box, st.Box.Block)
		case st.Font != nil:
			f := st.Font
			req.Fonts = append(req.Fonts, metaOf(string(f.Family), string(f.Style), string(f.Path)))
		case st.Candidate != nil:
			req.Candidate = metaOf(string(st.Candidate.Family), string(st.Candidate.Style), "")
		case st.Fallback != nil:
			err = addFallback(&req, st.Fallback)
		case st.Style != nil:
			if _, dup := names[st.Style.Name]; dup {
				return Request{}, fmt.Errorf("%s: %w: %q", st.Style.Pos, ErrDuplicateStyle, st.Style.Name)
			}
			var s text.Style
			if err = applyStyle(&s, st.Style.Block); err == nil {
				idx := len(names)
				names[st.Style.Name] = idx
				req.Config.Styles[idx] = s
			}
		case st.Run != nil:
			runs = append(runs, st.Run)
		}
		if err != nil {
			return Request{}, err
		}
	}

	// Runs may reference styles declared after them.
	for _, r := range runs {
		idx, ok := names[r.Style]
		if !ok {
			return Request{}, fmt.Errorf("%s: %w: %q", r.Pos, ErrUnknownStyle, r.Style)
		}
		req.Config.Text += string(r.Text)
		for range utf8.RuneCountInString(string(r.Text)) {
			req.Config.StyleIndex = append(req.Config.StyleIndex, idx)
		}
	}
	return req, nil
}

func metaOf(family, style, path string) fonts.Meta {
	spec, _ := fonts.ParseStyle(style)
	return fonts.Meta{
		Family: family,
		Style:  spec.Style,
		Weight: spec.Weight,
		Italic: spec.Italic,
		Path:   path,
	}
}

func addFallback(req *Request, f *FallbackDecl) error {
	script, ok := scriptByName(f.Script)
	if !ok {
		return fmt.Errorf("%s: %w: %q", f.Pos, ErrUnknownScript, f.Script)
	}
	if req.Families == nil {
		req.Families = make(map[language.Script][]string)
	}
	for _, fam := range f.Families {
		req.Families[script] = append(req.Families[script], string(fam))
	}
	return nil
}

var scriptNames = map[string]language.Script{
	"Common":     language.Common,
	"Latin":      language.Latin,
	"Han":        language.Han,
	"Cyrillic":   language.Cyrillic,
	"Greek":      language.Greek,
	"Arabic":     language.Arabic,
	"Hebrew":     language.Hebrew,
	"Hiragana":   language.Hiragana,
	"Katakana":   language.Katakana,
	"Hangul":     language.Hangul,
	"Thai":       language.Thai,
	"Devanagari": language.Devanagari,
}

// scriptByName accepts a Unicode script name from scriptNames or a four
// letter ISO 15924 code such as "Latn".
func scriptByName(name string) (language.Script, bool) {
	if s, ok := scriptNames[name]; ok {
		return s, true
	}
	if len(name) != 4 {
		return 0, false
	}
	s, err := language.ParseScript(name)
	return s, err == nil
}

func applyBox(b *text.BoxConfig, blk *Block) error {
	for _, p := range blk.Properties {
		var err error
		switch p.Key {
		case "width":
			b.Width, err = p.number(0)
		case "height":
			b.Height, err = p.number(0)
		case "wrap":
			if w, ok := p.word(); ok && w == "none" {
				b.WordWrap, b.WrapWidth = false, 0
				continue
			}
			b.WordWrap = true
			b.WrapWidth, err = p.number(0)
		case "paragraph-spacing":
			b.ParagraphSpacing, err = p.number(0)
		case "align":
			err = applyAlign(b, p)
		default:
			err = p.unknown()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func applyAlign(b *text.BoxConfig, p *Property) error {
	if len(p.Values) > 2 {
		return p.invalid("at most a horizontal and a vertical alignment")
	}
	for _, v := range p.Values {
		switch v.Text() {
		case "left":
			b.HAlign = text.AlignLeft
		case "center":
			b.HAlign = text.AlignCenter
		case "right":
			b.HAlign = text.AlignRight
		case "top":
			b.VAlign = text.AlignTop
		case "middle":
			b.VAlign = text.AlignMiddle
		case "bottom":
			b.VAlign = text.AlignBottom
		default:
			return p.invalid(fmt.Sprintf("alignment %q", v.Text()))
		}
	}
	return nil
}

var letterCases = map[string]text.LetterCase{
	"original": text.CaseOriginal,
	"lower":    text.CaseLower,
	"upper":    text.CaseUpper,
	"title":    text.CaseTitle,
}

func applyStyle(s *text.Style, blk *Block) error {
	for _, p := range blk.Properties {
		var err error
		switch p.Key {
		case "family":
			s.Family = p.text()
		case "weight":
			s.Weight = p.text()
		case "size":
			s.Size, err = p.number(0)
		case "line-height":
			if w, ok := p.word(); ok && w == "auto" {
				s.LineHeight = text.AutoLineHeight
				continue
			}
			s.LineHeight, err = p.number(0)
		case "letter-spacing":
			s.LetterSpacing, err = p.number(math.Inf(-1))
		case "case":
			c, ok := letterCases[p.text()]
			if !ok {
				return p.invalid(fmt.Sprintf("letter case %q", p.text()))
			}
			s.Case = c
		default:
			err = p.unknown()
		}
		if err != nil {
			return err
		}
	}
	if s.Weight == "" {
		s.Weight = fonts.StyleRegular
	}
	return nil
}

// text joins the values with spaces, so weight: Bold Italic works without
// quotes.
func (p *Property) text() string {
	s := ""
	for i, v := range p.Values {
		if i > 0 {
			s += " "
		}
		s += v.Text()
	}
	return s
}

// word returns the single bare word value.
func (p *Property) word() (string, bool) {
	if len(p.Values) != 1 || p.Values[0].Ident == nil {
		return "", false
	}
	return *p.Values[0].Ident, true
}

// number returns the single numeric value, which must not be below lo.
func (p *Property) number(lo float64) (float64, error) {
	if len(p.Values) != 1 || p.Values[0].Number == nil {
		return 0, p.invalid("want a number")
	}
	n := *p.Values[0].Number
	if n < lo {
		return 0, p.invalid(fmt.Sprintf("%v is below %v", n, lo))
	}
	return n, nil
}

func (p *Property) invalid(detail string) error {
	return fmt.Errorf("%s: %w: %s: %s", p.Pos, ErrInvalidValue, p.Key, detail)
}

func (p *Property) unknown() error {
	return fmt.Errorf("%s: %w: %q", p.Pos, ErrUnknownProperty, p.Key)
}
