package fonts

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gogpu/glyphmesh/internal/logger"
)

// Default candidate font, used when nothing else can render a character.
const (
	DefaultCandidateFamily = "Roboto"
	DefaultCandidateStyle  = StyleRegular
)

// Library is a registry of font families and a cache of loaded handles.
//
// Metadata is registered up front (Register); font data is loaded lazily by
// Load, which de-duplicates concurrent requests for the same font so at most
// one load per font is in flight. Failed loads are not cached and may be
// retried.
//
// Library is safe for concurrent use.
type Library struct {
	mu       sync.RWMutex
	families map[string][]Meta
	order    []string

	handles *handleCache
	loads   singleflight.Group

	loader          Loader
	parser          string
	candidateFamily string
	candidateStyle  string
}

// LibraryOption configures a Library.
type LibraryOption func(*Library)

// WithLoader sets the Loader used to fetch font data.
func WithLoader(l Loader) LibraryOption {
	return func(lib *Library) { lib.loader = l }
}

// WithParser selects the parser backend by registered name.
func WithParser(name string) LibraryOption {
	return func(lib *Library) { lib.parser = name }
}

// WithCacheLimit bounds the number of loaded handles kept in memory.
// Zero means unlimited.
func WithCacheLimit(n int) LibraryOption {
	return func(lib *Library) { lib.handles = newHandleCache(n) }
}

// WithCandidate sets the program-wide candidate font.
func WithCandidate(family, style string) LibraryOption {
	return func(lib *Library) {
		lib.candidateFamily = family
		lib.candidateStyle = style
	}
}

// NewLibrary creates an empty Library.
func NewLibrary(opts ...LibraryOption) *Library {
	lib := &Library{
		families:        make(map[string][]Meta),
		handles:         newHandleCache(0),
		parser:          DefaultParser,
		candidateFamily: DefaultCandidateFamily,
		candidateStyle:  DefaultCandidateStyle,
	}
	for _, opt := range opts {
		opt(lib)
	}
	return lib
}

// Register adds font metadata. A meta with an empty Style gets the canonical
// name for its weight; a meta whose ID is already known replaces the old one.
func (l *Library) Register(metas ...Meta) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, m := range metas {
		if m.Weight == 0 {
			spec, _ := ParseStyle(m.Style)
			m.Weight, m.Italic = spec.Weight, spec.Italic
		}
		if m.Style == "" {
			m.Style = StyleName(m.Weight, m.Italic)
		}
		list, known := l.families[m.Family]
		if !known {
			l.order = append(l.order, m.Family)
		}
		replaced := false
		for i := range list {
			if list[i].ID() == m.ID() {
				list[i] = m
				replaced = true
				break
			}
		}
		if !replaced {
			list = append(list, m)
		}
		l.families[m.Family] = list
	}
}

// Add registers m and stores an already loaded handle for it. The handle
// has no data to reload from, so it is never evicted by the cache limit.
func (l *Library) Add(m Meta, h Handle) {
	l.Register(m)
	meta, _ := l.Meta(m.Family, m.Style)
	l.handles.pin(meta.ID(), h)
}

// AddData parses data with the library parser and adds the result under m.
func (l *Library) AddData(m Meta, data []byte) error {
	h, err := Parse(l.parser, data)
	if err != nil {
		return err
	}
	l.Add(m, h)
	return nil
}

// Families returns the registered family names in registration order.
func (l *Library) Families() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.order...)
}

// CachedMeta returns the registered members of a family, or nil.
func (l *Library) CachedMeta(family string) []Meta {
	l.mu.RLock()
	defer l.mu.RUnlock()
	list := l.families[family]
	if len(list) == 0 {
		return nil
	}
	return append([]Meta(nil), list...)
}

// Meta finds the registered member of family whose style matches the label
// exactly, either by canonical name or by weight and italic flag.
func (l *Library) Meta(family, style string) (Meta, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	list := l.families[family]
	for _, m := range list {
		if m.Style == style {
			return m, true
		}
	}
	spec, ok := ParseStyle(style)
	if !ok {
		return Meta{}, false
	}
	for _, m := range list {
		if m.Weight == spec.Weight && m.Italic == spec.Italic {
			return m, true
		}
	}
	return Meta{}, false
}

// Cached returns the handle of a font that has already been loaded.
// It never starts a load.
func (l *Library) Cached(family, style string) (Handle, bool) {
	m, ok := l.Meta(family, style)
	if !ok {
		return nil, false
	}
	return l.handles.get(m.ID())
}

// Load returns the handle for family/style, loading and parsing the font
// data if needed. Concurrent calls for the same font share one load, which
// keeps running when a waiting caller gives up: a canceled ctx makes only
// that caller return ctx.Err().
func (l *Library) Load(ctx context.Context, family, style string) (Handle, error) {
	m, ok := l.Meta(family, style)
	if !ok {
		return nil, &LoadError{Family: family, Style: style, Err: ErrFontNotFound}
	}
	if h, ok := l.handles.get(m.ID()); ok {
		return h, nil
	}
	if l.loader == nil {
		return nil, &LoadError{Family: family, Style: style, Err: ErrNoLoader}
	}

	// The shared load outlives any single caller; each caller only stops
	// waiting when its own ctx is done.
	loadCtx := context.WithoutCancel(ctx)
	ch := l.loads.DoChan(m.ID(), func() (any, error) {
		if h, ok := l.handles.get(m.ID()); ok {
			return h, nil
		}
		data, err := l.loader.Load(loadCtx, m)
		if err != nil {
			return nil, err
		}
		h, err := Parse(l.parser, data)
		if err != nil {
			return nil, err
		}
		l.handles.set(m.ID(), h)
		logger.Get().Info("fonts: loaded font", "id", m.ID(), "bytes", len(data))
		return h, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, &LoadError{Family: family, Style: style, Err: res.Err}
		}
		if res.Shared {
			logger.Get().Debug("fonts: shared in-flight load", "id", m.ID())
		}
		return res.Val.(Handle), nil
	}
}

// Candidate returns the candidate font if it has been loaded.
func (l *Library) Candidate() (Handle, bool) {
	return l.Cached(l.candidateFamily, l.candidateStyle)
}

// LoadCandidate makes sure the candidate font is loaded.
func (l *Library) LoadCandidate(ctx context.Context) (Handle, error) {
	h, err := l.Load(ctx, l.candidateFamily, l.candidateStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoCandidate, err)
	}
	return h, nil
}
