package fonts

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fonts package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fonts: empty font data")

	// ErrUnknownParser is returned when no parser is registered under a name.
	ErrUnknownParser = errors.New("fonts: unknown parser")

	// ErrFontNotFound is returned when a family/style has no registered metadata.
	ErrFontNotFound = errors.New("fonts: font not found")

	// ErrNoLoader is returned when a font must be loaded but the library has no loader.
	ErrNoLoader = errors.New("fonts: no loader configured")

	// ErrNoCandidate is returned when the candidate font cannot be loaded.
	ErrNoCandidate = errors.New("fonts: candidate font is unavailable")
)

// LoadError reports a failed font load.
type LoadError struct {
	Family string
	Style  string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("fonts: load %s: %v", ID(e.Family, e.Style), e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
