package glyphmesh

import (
	"github.com/go-text/typesetting/language"

	"github.com/gogpu/glyphmesh/text"
)

// Option configures a Text during creation.
//
// Example:
//
//	t := glyphmesh.New(lib,
//	    glyphmesh.WithFallbackFamilies(families),
//	    glyphmesh.WithOnRelayout(redraw),
//	)
type Option func(*options)

type options struct {
	families      map[language.Script][]string
	glyphCapacity int
	onRelayout    func(Frame)
}

func defaultOptions() options {
	return options{
		families: text.DefaultFamilies(),
	}
}

// WithFallbackFamilies sets the fallback families tried per script. The
// families listed under language.Common are tried for every character
// after those of its own script.
func WithFallbackFamilies(families map[language.Script][]string) Option {
	return func(o *options) {
		if families != nil {
			o.families = families
		}
	}
}

// WithGlyphCacheCapacity sets how many glyph meshes each shard of the
// tessellation cache keeps. Zero or less selects the default.
func WithGlyphCacheCapacity(n int) Option {
	return func(o *options) {
		o.glyphCapacity = n
	}
}

// WithOnRelayout registers a callback run with the new frame each time a
// fallback pass replaces the current one. It runs on the goroutine that
// finished loading the fallback fonts.
func WithOnRelayout(fn func(Frame)) Option {
	return func(o *options) {
		o.onRelayout = fn
	}
}
