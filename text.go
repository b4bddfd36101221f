package glyphmesh

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/glyphmesh/fonts"
	"github.com/gogpu/glyphmesh/internal/logger"
	"github.com/gogpu/glyphmesh/mesh"
	"github.com/gogpu/glyphmesh/text"
)

// ErrNoConfig is returned by Update before SetConfig was called.
var ErrNoConfig = errors.New("glyphmesh: no text configuration")

// Frame is one complete, immutable result of the pipeline.
type Frame struct {
	// Version is the configuration version the frame was built from.
	Version uint64

	Layout *text.LayoutInfo

	// Stream holds the glyph triangles, solid ones first.
	Stream *mesh.Stream
}

// Text runs the text pipeline: font preloading, layout, tessellation and
// an asynchronous fallback pass that lays the text out again once missing
// fallback fonts are loaded.
//
// A fallback pass only publishes its frame when the configuration has not
// changed since the pass started; stale passes are discarded.
//
// Text is safe for concurrent use.
type Text struct {
	lib    *fonts.Library
	engine *text.Engine
	tess   *mesh.Tessellator
	opts   options

	mu      sync.Mutex
	cfg     *text.Config
	version uint64
	frame   Frame

	passes sync.WaitGroup
}

// New creates a pipeline over a font library.
func New(lib *fonts.Library, opts ...Option) *Text {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Text{
		lib:    lib,
		engine: text.NewEngine(lib, text.NewFallback(lib, o.families)),
		tess:   mesh.NewTessellator(o.glyphCapacity),
		opts:   o,
	}
}

// SetConfig replaces the configuration and returns its version. Fallback
// passes started for older versions will not publish.
func (t *Text) SetConfig(cfg text.Config) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.version++
	t.cfg = &cfg
	return t.version
}

// Frame returns the latest published frame. It is the zero Frame until the
// first Update.
func (t *Text) Frame() Frame {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

// Wait blocks until every fallback pass started so far has finished.
func (t *Text) Wait() {
	t.passes.Wait()
}

// Update loads the fonts the configuration references, lays it out with
// the fonts available, tessellates the result and publishes the frame.
//
// Characters that need a fallback font not yet loaded are drawn with a
// placeholder; a background pass bound to ctx loads those fonts and
// publishes a new frame when any of them succeeded.
//
// Font loading failures degrade the output and are logged rather than
// returned. A tessellation error is returned together with the frame,
// which is still published.
func (t *Text) Update(ctx context.Context) (Frame, error) {
	t.mu.Lock()
	cfg, version := t.cfg, t.version
	t.mu.Unlock()
	if cfg == nil {
		return Frame{}, ErrNoConfig
	}

	t.preload(ctx, cfg)

	frame, err := t.build(*cfg, version)
	if frame.Layout == nil {
		return Frame{}, err
	}
	t.publish(frame)

	t.passes.Add(1)
	go func() {
		defer t.passes.Done()
		t.fallbackPass(ctx, *cfg, version)
	}()
	return frame, err
}

// preload loads the candidate font and every font referenced by a style,
// concurrently.
func (t *Text) preload(ctx context.Context, cfg *text.Config) {
	var g errgroup.Group
	seen := make(map[string]bool)
	for _, s := range cfg.Styles {
		id := fonts.ID(s.Family, s.Weight)
		if seen[id] {
			continue
		}
		seen[id] = true
		g.Go(func() error {
			if _, err := t.lib.Load(ctx, s.Family, s.Weight); err != nil {
				logger.Get().Warn("glyphmesh: font preload failed", "font", id, "err", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		if _, err := t.lib.LoadCandidate(ctx); err != nil {
			logger.Get().Warn("glyphmesh: candidate font unavailable", "err", err)
		}
		return nil
	})
	_ = g.Wait()
}

// build lays out and tessellates cfg. A nil Layout means layout failed.
func (t *Text) build(cfg text.Config, version uint64) (Frame, error) {
	info, err := t.engine.Layout(cfg)
	if err != nil {
		return Frame{}, fmt.Errorf("glyphmesh: layout: %w", err)
	}
	stream, err := t.tess.Tessellate(info)
	logger.Get().Debug("glyphmesh: frame built",
		"version", version, "lines", len(info.Lines), "vertices", stream.VertexCount())
	return Frame{Version: version, Layout: info, Stream: stream}, err
}

// publish stores frame unless a newer configuration is set. It reports
// whether the frame was stored.
func (t *Text) publish(frame Frame) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if frame.Version != t.version {
		return false
	}
	t.frame = frame
	return true
}

func (t *Text) fallbackPass(ctx context.Context, cfg text.Config, version uint64) {
	n, err := t.engine.Fallback().ResolveAll(ctx, &cfg)
	if err != nil {
		logger.Get().Warn("glyphmesh: fallback pass incomplete", "version", version, "err", err)
	}
	if n == 0 {
		return
	}

	frame, err := t.build(cfg, version)
	if frame.Layout == nil {
		logger.Get().Warn("glyphmesh: relayout failed", "version", version, "err", err)
		return
	}
	if err != nil {
		logger.Get().Warn("glyphmesh: relayout tessellation", "version", version, "err", err)
	}
	if !t.publish(frame) {
		logger.Get().Debug("glyphmesh: discarded stale relayout", "version", version)
		return
	}
	if t.opts.onRelayout != nil {
		t.opts.onRelayout(frame)
	}
}
