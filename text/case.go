package text

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// caser returns the transform for c, or nil for CaseOriginal.
func caser(c LetterCase) *cases.Caser {
	var cs cases.Caser
	switch c {
	case CaseLower:
		cs = cases.Lower(language.Und)
	case CaseUpper:
		cs = cases.Upper(language.Und)
	case CaseTitle:
		cs = cases.Title(language.Und, cases.NoLower)
	default:
		return nil
	}
	return &cs
}

// applyLetterCase applies the letter case of each style to its characters.
// Runs of characters sharing a style index are transformed together so
// title case sees whole words. A transform may change the number of
// characters (e.g. "ß" upper-cases to "SS"); the returned style indices
// follow the transformed text.
func applyLetterCase(text string, styleIndex []int, styles map[int]Style) ([]rune, []int) {
	src := []rune(text)
	if len(styleIndex) > len(src) {
		styleIndex = styleIndex[:len(src)]
	}

	transform := false
	for _, s := range styles {
		if s.Case != CaseOriginal {
			transform = true
			break
		}
	}
	if !transform {
		return src, styleIndex
	}

	runes := make([]rune, 0, len(src))
	idx := make([]int, 0, len(src))
	for start := 0; start < len(src); {
		end := start + 1
		for end < len(src) && styleIndex[end] == styleIndex[start] {
			end++
		}
		run := src[start:end]
		if cs := caser(styles[styleIndex[start]].Case); cs != nil {
			run = []rune(cs.String(string(run)))
		}
		runes = append(runes, run...)
		for range run {
			idx = append(idx, styleIndex[start])
		}
		start = end
	}
	return runes, idx
}
