package fonts

import (
	"strconv"
	"strings"
)

// Style labels used in canonical style names.
const (
	StyleRegular = "Regular"
	StyleItalic  = "Italic"
)

// DefaultWeight is the weight of "Regular".
const DefaultWeight = 400

// weightStyles lists the names accepted for each numeric weight. The first
// entry is the canonical one.
var weightStyles = map[int][]string{
	100: {"Thin", "Hair Line"},
	200: {"Extra Light", "Ultra Light"},
	300: {"Light"},
	400: {StyleRegular, "Normal"},
	500: {"Medium"},
	600: {"Semi Bold", "Demi Bold"},
	700: {"Bold", "Wide"},
	800: {"Extra Bold", "Ultra Bold"},
	900: {"Black", "Heavy"},
}

// Meta describes one font file of a family.
type Meta struct {
	Family string
	Style  string // canonical style name, e.g. "Bold Italic"
	Weight int
	Italic bool

	// Path locates the font data for the Loader.
	Path string
}

// ID returns the library key of the font, "<family>-<style>".
func (m Meta) ID() string { return ID(m.Family, m.Style) }

// ID builds a font key from a family and a style label.
func ID(family, style string) string {
	return family + "-" + style
}

// StyleSpec is a parsed style label.
type StyleSpec struct {
	Weight int
	Italic bool
	Style  string
}

// ParseStyle parses labels such as "Regular", "italic", "700", "700italic",
// "Bold Italic" or "semibold". ok is false when the weight part is not
// recognized; the returned spec then uses DefaultWeight.
func ParseStyle(label string) (spec StyleSpec, ok bool) {
	s := strings.ToLower(strings.TrimSpace(label))
	italic := strings.Contains(s, "italic") || strings.Contains(s, "oblique")
	s = strings.NewReplacer("italic", "", "oblique", "").Replace(s)
	s = strings.TrimSpace(s)

	weight := DefaultWeight
	ok = true
	switch {
	case s == "":
	case isDigits(s):
		w, _ := strconv.Atoi(s)
		weight = w
	default:
		weight, ok = weightByName(s)
		if !ok {
			weight = DefaultWeight
		}
	}
	return StyleSpec{Weight: weight, Italic: italic, Style: StyleName(weight, italic)}, ok
}

// StyleName returns the canonical style name for a weight and italic flag:
// "Regular", "Italic", "Bold", "Bold Italic", ...
func StyleName(weight int, italic bool) string {
	name := ""
	if names, ok := weightStyles[weight]; ok {
		name = names[0]
	} else {
		name = strconv.Itoa(weight)
	}
	if !italic {
		return name
	}
	if weight == DefaultWeight {
		return StyleItalic
	}
	return name + " " + StyleItalic
}

func weightByName(s string) (int, bool) {
	key := strings.ReplaceAll(s, " ", "")
	key = strings.ReplaceAll(key, "-", "")
	for w, names := range weightStyles {
		for _, n := range names {
			if strings.ToLower(strings.ReplaceAll(n, " ", "")) == key {
				return w, true
			}
		}
	}
	return 0, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
