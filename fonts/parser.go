package fonts

import (
	"fmt"
	"sync"
)

// Parser turns raw font data (TTF or OTF) into a Handle.
// This abstraction allows swapping the font parsing library.
type Parser interface {
	Parse(data []byte) (Handle, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(data []byte) (Handle, error)

// Parse implements Parser.
func (f ParserFunc) Parse(data []byte) (Handle, error) { return f(data) }

// DefaultParser is the name of the parser used when none is requested.
const DefaultParser = "sfnt"

var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]Parser{
		"sfnt":   sfntParser{},
		"gotext": gotextParser{},
	}
)

// RegisterParser registers a font parser under name, replacing any parser
// already registered under that name.
func RegisterParser(name string, p Parser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = p
}

// LookupParser returns the parser registered under name. An empty name
// selects DefaultParser.
func LookupParser(name string) (Parser, error) {
	if name == "" {
		name = DefaultParser
	}
	parserMu.RLock()
	defer parserMu.RUnlock()
	p, ok := parserRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParser, name)
	}
	return p, nil
}

// Parse parses data with the named parser.
func Parse(parser string, data []byte) (Handle, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	p, err := LookupParser(parser)
	if err != nil {
		return nil, err
	}
	return p.Parse(data)
}
