package fonts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Loader fetches the raw bytes of a font file. Implementations must be safe
// for concurrent use and should honor ctx cancellation.
type Loader interface {
	Load(ctx context.Context, m Meta) ([]byte, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, m Meta) ([]byte, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, m Meta) ([]byte, error) { return f(ctx, m) }

// DirLoader reads font files relative to a root directory.
type DirLoader struct {
	Root string
}

// Load implements Loader.
func (d DirLoader) Load(ctx context.Context, m Meta) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := m.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.Root, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fonts: read %s: %w", path, err)
	}
	return data, nil
}

// MemLoader serves font data from memory, keyed by Meta.Path.
type MemLoader map[string][]byte

// Load implements Loader.
func (l MemLoader) Load(ctx context.Context, m Meta) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := l[m.Path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFontNotFound, m.Path)
	}
	return data, nil
}
