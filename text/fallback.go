package text

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"

	"github.com/go-text/typesetting/language"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/gogpu/glyphmesh/fonts"
	"github.com/gogpu/glyphmesh/internal/logger"
)

// FontSource is the font resolution service consumed by layout.
// *fonts.Library implements it.
type FontSource interface {
	// Cached returns an already loaded font. It never blocks.
	Cached(family, style string) (fonts.Handle, bool)

	// Meta returns the registered meta of family matching the style label.
	Meta(family, style string) (fonts.Meta, bool)

	// CachedMeta returns the registered members of a family, or nil.
	CachedMeta(family string) []fonts.Meta

	// Load returns a font, loading it if needed.
	Load(ctx context.Context, family, style string) (fonts.Handle, error)

	// Candidate returns the program-wide candidate font if loaded.
	Candidate() (fonts.Handle, bool)
}

// DefaultFamilies returns the default fallback families per script.
func DefaultFamilies() map[language.Script][]string {
	return map[language.Script][]string{
		language.Common: {"PingFang SC", "Roboto"},
		language.Han:    {"PingFang SC", "Roboto"},
		language.Latin:  {"PingFang SC", "Roboto"},
	}
}

// Fallback resolves fonts for characters the requested font cannot render.
//
// For a character the candidate families are those registered for its
// script (unless the script is Common) followed by those registered for
// Common, without duplicates. The walk starts after the requested family
// (or at the first candidate when the requested family is not listed) and
// picks the member of each family closest to the requested weight.
//
// Characters no family can render are remembered and never searched again;
// families that failed to load are skipped for the rest of the session.
//
// Fallback is safe for concurrent use.
type Fallback struct {
	source   FontSource
	families map[language.Script][]string

	cannot *runeSet

	mu          sync.RWMutex
	unavailable map[string]bool

	flights singleflight.Group
}

// NewFallback creates a Fallback over src. A nil families map selects
// DefaultFamilies.
func NewFallback(src FontSource, families map[language.Script][]string) *Fallback {
	if families == nil {
		families = DefaultFamilies()
	}
	return &Fallback{
		source:      src,
		families:    families,
		cannot:      newRuneSet(),
		unavailable: make(map[string]bool),
	}
}

// Reset forgets the characters marked as having no fallback and the
// families marked unavailable, for example after new fonts were
// registered.
func (f *Fallback) Reset() {
	f.cannot.clear()
	f.mu.Lock()
	f.unavailable = make(map[string]bool)
	f.mu.Unlock()
}

// Families returns the ordered candidate families for r.
func (f *Fallback) Families(r rune) []string {
	var out []string
	if script := language.LookupScript(r); script != language.Common {
		out = append(out, f.families[script]...)
	}
	out = append(out, f.families[language.Common]...)

	seen := make(map[string]bool, len(out))
	uniq := out[:0]
	for _, fam := range out {
		if !seen[fam] {
			seen[fam] = true
			uniq = append(uniq, fam)
		}
	}
	return uniq
}

// CannotFallback reports whether r is known to have no fallback font.
func (f *Fallback) CannotFallback(r rune) bool { return f.cannot.has(r) }

// IsUnavailable reports whether family failed to load earlier.
func (f *Fallback) IsUnavailable(family string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.unavailable[family]
}

func (f *Fallback) markUnavailable(family string) {
	f.mu.Lock()
	f.unavailable[family] = true
	f.mu.Unlock()
}

// Target returns the weight and italic flag fallback should match for a
// requested family and style label: the registered meta when known,
// otherwise the parsed label.
func (f *Fallback) Target(family, style string) fonts.StyleSpec {
	if m, ok := f.source.Meta(family, style); ok {
		return fonts.StyleSpec{Weight: m.Weight, Italic: m.Italic, Style: m.Style}
	}
	spec, _ := fonts.ParseStyle(style)
	return spec
}

// nextMeta returns the best member of the first usable family after family
// in the candidate list of r.
func (f *Fallback) nextMeta(r rune, family string, target fonts.StyleSpec) (fonts.Meta, bool) {
	families := f.Families(r)
	i := slices.Index(families, family) + 1
	for ; i < len(families); i++ {
		fam := families[i]
		if f.IsUnavailable(fam) {
			continue
		}
		metas := f.source.CachedMeta(fam)
		if len(metas) == 0 {
			continue
		}
		return fonts.MatchFont(metas, target.Weight, target.Italic)
	}
	return fonts.Meta{}, false
}

// CachedFallback walks the fallback chain of r using only loaded fonts.
// The walk stops at the first candidate that is not loaded yet, so it never
// skips a family that an asynchronous Resolve would try first.
func (f *Fallback) CachedFallback(r rune, family string, target fonts.StyleSpec) (fonts.Handle, bool) {
	last := family
	for {
		m, ok := f.nextMeta(r, last, target)
		if !ok {
			return nil, false
		}
		h, ok := f.source.Cached(m.Family, m.Style)
		if !ok {
			return nil, false
		}
		if fonts.HasGlyph(h, r) {
			logger.Get().Debug("text: cached fallback", "char", string(r), "from", family, "to", m.ID())
			return h, true
		}
		last = m.Family
	}
}

// Resolve walks the fallback chain of r, loading fonts as needed, and
// returns the first font with a glyph for r. Families that fail to load are
// marked unavailable and skipped; a load aborted by cancellation or a
// deadline is returned as is and marks nothing. When the chain is exhausted r is marked
// as unfallbackable and a *FallbackError is returned.
func (f *Fallback) Resolve(ctx context.Context, r rune, family string, target fonts.StyleSpec) (fonts.Handle, error) {
	tried := []string{family}
	for {
		m, ok := f.nextMeta(r, tried[len(tried)-1], target)
		if !ok {
			f.cannot.add(r)
			return nil, &FallbackError{Char: r, Tried: tried}
		}
		h, err := f.source.Load(ctx, m.Family, m.Style)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// An aborted load says nothing about the family.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			logger.Get().Warn("text: fallback font unavailable", "family", m.Family, "err", err)
			f.markUnavailable(m.Family)
			tried = append(tried, m.Family)
			continue
		}
		if fonts.HasGlyph(h, r) {
			logger.Get().Info("text: loaded fallback font", "char", string(r), "font", m.ID())
			return h, nil
		}
		tried = append(tried, m.Family)
	}
}

// ResolveAll resolves, concurrently, every character of cfg that the
// currently loaded fonts cannot render. Each character is resolved at most
// once per call, and concurrent calls share in-flight resolutions.
//
// It returns the number of characters that gained a font. The returned
// error is the first failure; other characters are still resolved.
func (f *Fallback) ResolveAll(ctx context.Context, cfg *Config) (int, error) {
	runes, styleIdx := applyLetterCase(cfg.Text, cfg.StyleIndex, cfg.Styles)

	var (
		g        errgroup.Group
		mu       sync.Mutex
		resolved int
		pending  = make(map[rune]bool)
	)
	for i, r := range runes {
		if isEnter(r) || f.cannot.has(r) || pending[r] {
			continue
		}
		style, ok := cfg.Styles[styleIdx[i]]
		if !ok {
			continue
		}
		if h, ok := f.source.Cached(style.Family, style.Weight); ok && fonts.HasGlyph(h, r) {
			continue
		}
		target := f.Target(style.Family, style.Weight)
		if _, ok := f.CachedFallback(r, style.Family, target); ok {
			continue
		}

		pending[r] = true
		family := style.Family
		key := string(r) + "\x00" + family + "\x00" + strconv.Itoa(target.Weight) + strconv.FormatBool(target.Italic)
		g.Go(func() error {
			_, err, _ := f.flights.Do(key, func() (any, error) {
				return f.Resolve(ctx, r, family, target)
			})
			if err != nil {
				return err
			}
			mu.Lock()
			resolved++
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	if len(pending) > 0 {
		logger.Get().Debug("text: fallback pass",
			"pending", len(pending), "resolved", resolved, "unfallbackable", f.cannot.len())
	}
	return resolved, err
}
