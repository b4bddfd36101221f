package text

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// HAlign specifies horizontal alignment of lines inside the box.
type HAlign uint8

const (
	// AlignLeft places every line at the left edge of the box.
	AlignLeft HAlign = iota
	// AlignCenter centers every line horizontally.
	AlignCenter
	// AlignRight places every line against the right edge of the box.
	AlignRight
)

// String returns the string representation of the alignment.
func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	default:
		return unknownStr
	}
}

// VAlign specifies vertical alignment of the content inside the box.
type VAlign uint8

const (
	// AlignTop starts the content at the top of the box.
	AlignTop VAlign = iota
	// AlignMiddle centers the content vertically.
	AlignMiddle
	// AlignBottom ends the content at the bottom of the box.
	AlignBottom
)

// String returns the string representation of the alignment.
func (a VAlign) String() string {
	switch a {
	case AlignTop:
		return "Top"
	case AlignMiddle:
		return "Middle"
	case AlignBottom:
		return "Bottom"
	default:
		return unknownStr
	}
}

// LetterCase is a case transform applied to the characters of a style.
type LetterCase uint8

const (
	// CaseOriginal leaves characters unchanged.
	CaseOriginal LetterCase = iota
	// CaseLower maps characters to lower case.
	CaseLower
	// CaseUpper maps characters to upper case.
	CaseUpper
	// CaseTitle upper-cases the first letter of every word.
	CaseTitle
)

// String returns the string representation of the letter case.
func (c LetterCase) String() string {
	switch c {
	case CaseOriginal:
		return "Original"
	case CaseLower:
		return "Lower"
	case CaseUpper:
		return "Upper"
	case CaseTitle:
		return "Title"
	default:
		return unknownStr
	}
}

// CharClass is the coarse character class used by word movement and
// multi-click selection.
type CharClass uint8

const (
	// ClassEnter is the newline character.
	ClassEnter CharClass = iota
	// ClassSpace is an ASCII or ideographic space.
	ClassSpace
	// ClassPunctuation is sentence punctuation, ASCII or full-width.
	ClassPunctuation
	// ClassCharacter is everything else.
	ClassCharacter
)

// String returns the string representation of the class.
func (c CharClass) String() string {
	switch c {
	case ClassEnter:
		return "Enter"
	case ClassSpace:
		return "Space"
	case ClassPunctuation:
		return "Punctuation"
	case ClassCharacter:
		return "Character"
	default:
		return unknownStr
	}
}

// ClassOf returns the class of r.
func ClassOf(r rune) CharClass {
	switch {
	case isEnter(r):
		return ClassEnter
	case isSpace(r):
		return ClassSpace
	}
	switch r {
	case ',', '，', '.', '。', '!', '！', '?', '？':
		return ClassPunctuation
	}
	return ClassCharacter
}

func isEnter(r rune) bool { return r == '\n' }

// isSpace reports the collapsible spaces: U+0020 and the ideographic space.
func isSpace(r rune) bool { return r == ' ' || r == '\u3000' }

// TextPos is a logical cursor address. Row indexes LayoutInfo.Lines and Col
// indexes the tokens of that line; Col may equal the token count, which puts
// the cursor after the last character.
type TextPos struct {
	Row, Col int
}

// Less reports whether p comes before q in reading order.
func (p TextPos) Less(q TextPos) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}
