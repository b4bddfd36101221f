package markup

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	markupLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `(?://|#)[^\n]*`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Symbol", Pattern: `[{}:;]`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(markupLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
	)
)

// Document is the root of a parsed markup file.
type Document struct {
	Pos        lexer.Position `parser:""`
	Statements []*Statement   `parser:"Newline* ( @@ ( ';' | Newline )* )*"`
}

// Statement is one top-level declaration.
type Statement struct {
	Box       *BoxDecl       `parser:"  @@"`
	Font      *FontDecl      `parser:"| @@"`
	Candidate *CandidateDecl `parser:"| @@"`
	Fallback  *FallbackDecl  `parser:"| @@"`
	Style     *StyleDecl     `parser:"| @@"`
	Run       *Run           `parser:"| @@"`
}

// BoxDecl configures the text box:
//
//	box { width: 400; height: 300; wrap: 400; align: center middle }
type BoxDecl struct {
	Pos   lexer.Position `parser:""`
	Block *Block         `parser:"'box' @@"`
}

// FontDecl registers a font file: font "Roboto" "Bold" "Roboto-Bold.ttf".
type FontDecl struct {
	Pos    lexer.Position `parser:""`
	Family Quoted         `parser:"'font' @String"`
	Style  Quoted         `parser:"@String"`
	Path   Quoted         `parser:"@String"`
}

// CandidateDecl names the candidate font: candidate "Roboto" "Regular".
type CandidateDecl struct {
	Pos    lexer.Position `parser:""`
	Family Quoted         `parser:"'candidate' @String"`
	Style  Quoted         `parser:"@String"`
}

// FallbackDecl lists the fallback families of a script, in order:
//
//	fallback Han "PingFang SC" "Noto Sans CJK SC"
type FallbackDecl struct {
	Pos      lexer.Position `parser:""`
	Script   string         `parser:"'fallback' @Ident"`
	Families []Quoted       `parser:"@String+"`
}

// StyleDecl declares a named character style.
type StyleDecl struct {
	Pos   lexer.Position `parser:""`
	Name  string         `parser:"'style' @Ident"`
	Block *Block         `parser:"@@"`
}

// Run is a piece of text in a named style: text body "Hello\n".
type Run struct {
	Pos   lexer.Position `parser:""`
	Style string         `parser:"'text' @Ident"`
	Text  Quoted         `parser:"@String"`
}

// Block is a braced list of properties.
type Block struct {
	Properties []*Property `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Property is a key with one or more values: size: 36.
type Property struct {
	Pos    lexer.Position `parser:""`
	Key    string         `parser:"@Ident ':'"`
	Values []*Value       `parser:"@@+"`
}

// Value is a number, a quoted string or a bare word.
type Value struct {
	Number *float64 `parser:"  @Number"`
	String *Quoted  `parser:"| @String"`
	Ident  *string  `parser:"| @Ident"`
}

// Text returns the value as a string. Numbers are formatted without a
// trailing zero fraction.
func (v *Value) Text() string {
	switch {
	case v.String != nil:
		return string(*v.String)
	case v.Ident != nil:
		return *v.Ident
	case v.Number != nil:
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	}
	return ""
}

// Quoted unquotes Go-style string literals on capture.
type Quoted string

// Capture implements participle.Capture.
func (q *Quoted) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("markup: string literal capture requires a value")
	}
	s, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*q = Quoted(s)
	return nil
}

// Parse parses markup source. name is used in error positions.
func Parse(name, src string) (*Document, error) {
	return documentParser.ParseString(name, src)
}
