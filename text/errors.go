package text

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for text package.
var (
	// ErrInvalidConfig is returned when a layout configuration fails validation.
	ErrInvalidConfig = errors.New("text: invalid config")

	// ErrInvalidStyleIndex is returned when a character refers to a style
	// that is not in the style table.
	ErrInvalidStyleIndex = errors.New("text: invalid style index")

	// ErrFallbackExhausted is returned when no fallback family can render a
	// character.
	ErrFallbackExhausted = errors.New("text: fallback exhausted")
)

// FallbackError is returned when the fallback chain of a character has been
// walked to the end without finding a glyph.
type FallbackError struct {
	Char  rune
	Tried []string // families in the order they were tried
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("text: no fallback font for %q (tried %s)", e.Char, strings.Join(e.Tried, ", "))
}

// Is reports whether target is ErrFallbackExhausted.
func (e *FallbackError) Is(target error) bool {
	return target == ErrFallbackExhausted
}
