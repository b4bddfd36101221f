package editor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/glyphmesh/geom"
	"github.com/gogpu/glyphmesh/internal/logger"
	"github.com/gogpu/glyphmesh/text"
)

// ErrNoLayout is returned by operations that need a layout before one is set.
var ErrNoLayout = errors.New("editor: no layout")

// Selection is a caret or a selected range. Start is the anchor and End the
// moving end; End may come before Start.
type Selection struct {
	Start, End text.TextPos
}

// Empty reports whether the selection is a caret.
func (s Selection) Empty() bool { return s.Start == s.End }

// Ordered returns the ends in reading order.
func (s Selection) Ordered() (start, end text.TextPos) {
	return text.OrderTextPos(s.Start, s.End)
}

// Option configures an Editor.
type Option func(*Editor)

// WithPlatform sets the platform used for the clipboard and cursor shape.
func WithPlatform(p gpucontext.PlatformProvider) Option {
	return func(e *Editor) { e.platform = p }
}

// WithClickInterval sets the maximum delay between presses of a
// multi-click.
func WithClickInterval(d time.Duration) Option {
	return func(e *Editor) { e.clicks.interval = d }
}

// WithOnChange registers a callback run after every selection change.
func WithOnChange(fn func(Selection)) Option {
	return func(e *Editor) { e.onChange = fn }
}

// withClock replaces time.Now in tests.
func withClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// Editor keeps a caret and selection over a layout and drives them from
// keyboard and pointer input.
//
// Keys follow macOS conventions: Super jumps to line or text bounds, Alt
// jumps by word, Shift extends the selection. A double press selects a
// word, a triple press a line and a quadruple press everything.
//
// Editor is safe for concurrent use.
type Editor struct {
	mu       sync.Mutex
	info     *text.LayoutInfo
	sel      Selection
	viewport Viewport
	clicks   clickCounter
	dragging bool
	hovering bool
	zooming  int // held Control or Super keys
	pointer  geom.Point

	platform gpucontext.PlatformProvider
	onChange func(Selection)
	now      func() time.Time
}

// New returns an editor over info, which may be nil until SetLayout.
func New(info *text.LayoutInfo, opts ...Option) *Editor {
	e := &Editor{
		info:     info,
		viewport: Identity,
		platform: gpucontext.NullPlatformProvider{},
		clicks:   clickCounter{interval: DefaultClickInterval},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetLayout replaces the layout, for example after a relayout, and clamps
// the selection to it.
func (e *Editor) SetLayout(info *text.LayoutInfo) {
	e.mu.Lock()
	e.info = info
	if info != nil && len(info.Lines) > 0 {
		e.sel = Selection{Start: info.ClampTextPos(e.sel.Start), End: info.ClampTextPos(e.sel.End)}
	}
	sel := e.sel
	e.mu.Unlock()
	e.notify(sel)
}

// Layout returns the current layout.
func (e *Editor) Layout() *text.LayoutInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.info
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel
}

// SetSelection replaces the selection. Positions are clamped.
func (e *Editor) SetSelection(s Selection) {
	e.update(func(info *text.LayoutInfo) bool {
		e.sel = Selection{Start: info.ClampTextPos(s.Start), End: info.ClampTextPos(s.End)}
		return true
	})
}

// Viewport returns the window to layout mapping.
func (e *Editor) Viewport() Viewport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewport
}

// SetViewport replaces the window to layout mapping.
func (e *Editor) SetViewport(v Viewport) {
	e.mu.Lock()
	e.viewport = v
	e.mu.Unlock()
}

// update runs fn under the lock when a non-empty layout is set and
// notifies the change callback when fn reports a change.
func (e *Editor) update(fn func(info *text.LayoutInfo) bool) bool {
	e.mu.Lock()
	if e.info == nil || len(e.info.Lines) == 0 {
		e.mu.Unlock()
		return false
	}
	changed := fn(e.info)
	sel := e.sel
	e.mu.Unlock()
	if changed {
		e.notify(sel)
	}
	return changed
}

func (e *Editor) notify(sel Selection) {
	if e.onChange != nil {
		e.onChange(sel)
	}
}

// HandleKey applies a key press and reports whether the key was used.
// Copy (Control or Super + C) and select all (+ A) are handled too.
func (e *Editor) HandleKey(key gpucontext.Key, mods gpucontext.Modifiers) bool {
	shortcut := mods.HasControl() || mods.HasSuper()
	switch {
	case shortcut && key == gpucontext.KeyA:
		e.SelectAll()
		return true
	case shortcut && key == gpucontext.KeyC:
		if _, err := e.Copy(); err != nil && !errors.Is(err, ErrNoLayout) {
			logger.Get().Warn("editor: copy failed", "err", err)
		}
		return true
	}

	return e.update(func(info *text.LayoutInfo) bool {
		next, ok := e.move(info, key, mods)
		if !ok {
			return false
		}
		e.sel.End = next
		if !mods.HasShift() {
			e.sel.Start = next
		}
		return true
	})
}

// move returns the caret position a navigation key leads to.
func (e *Editor) move(info *text.LayoutInfo, key gpucontext.Key, mods gpucontext.Modifiers) (text.TextPos, bool) {
	pos := info.ClampTextPos(e.sel.End)
	collapse := !e.sel.Empty() && !mods.HasShift()
	start, end := e.sel.Ordered()

	switch key {
	case gpucontext.KeyLeft:
		switch {
		case mods.HasSuper():
			return text.LineStart(info, pos), true
		case mods.HasAlt():
			return text.WordStart(info, pos), true
		case collapse:
			return start, true
		}
		return text.Left(info, pos), true
	case gpucontext.KeyRight:
		switch {
		case mods.HasSuper():
			return text.LineEnd(info, pos), true
		case mods.HasAlt():
			return text.WordEnd(info, pos), true
		case collapse:
			return end, true
		}
		return text.Right(info, pos), true
	case gpucontext.KeyUp:
		if mods.HasSuper() {
			return text.TextStart(info), true
		}
		return text.Up(info, pos), true
	case gpucontext.KeyDown:
		if mods.HasSuper() {
			return text.TextEnd(info), true
		}
		return text.Down(info, pos), true
	case gpucontext.KeyHome:
		return text.LineStart(info, pos), true
	case gpucontext.KeyEnd:
		return text.LineEnd(info, pos), true
	}
	return text.TextPos{}, false
}

// Press handles a primary button press at window point p. The click count
// of the press decides what gets selected.
func (e *Editor) Press(p geom.Point) {
	e.mu.Lock()
	count := e.clicks.press(e.now(), p)
	local := e.viewport.ToLocal(p)
	e.mu.Unlock()

	e.Click(count, local)
	e.mu.Lock()
	e.dragging = count == 1
	e.mu.Unlock()
}

// Click selects at layout point p as a press with the given click count
// would: 1 places the caret, 2 selects a word, 3 a line and 4 or more the
// whole text.
func (e *Editor) Click(count int, p geom.Point) {
	e.update(func(info *text.LayoutInfo) bool {
		switch {
		case count <= 1:
			pos := info.TextPosAt(p)
			e.sel = Selection{Start: pos, End: pos}
		case count == 2:
			e.sel.Start, e.sel.End = text.WordAt(info, p)
		case count == 3:
			e.sel.Start, e.sel.End = text.LineAt(info, p)
		default:
			e.sel.Start, e.sel.End = text.All(info)
		}
		return true
	})
}

// Drag moves the selection end to window point p while the primary button
// is held after a single press.
func (e *Editor) Drag(p geom.Point) {
	e.update(func(info *text.LayoutInfo) bool {
		if !e.dragging {
			return false
		}
		e.sel.End = info.TextPosAt(e.viewport.ToLocal(p))
		return true
	})
}

// Release ends a drag.
func (e *Editor) Release() {
	e.mu.Lock()
	e.dragging = false
	e.mu.Unlock()
}

// SelectAll selects the whole text.
func (e *Editor) SelectAll() {
	e.update(func(info *text.LayoutInfo) bool {
		e.sel.Start, e.sel.End = text.All(info)
		return true
	})
}

// SelectedText returns the text of the selection.
func (e *Editor) SelectedText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedText()
}

func (e *Editor) selectedText() string {
	if e.info == nil || len(e.info.Lines) == 0 {
		return ""
	}
	start, end := e.sel.Ordered()
	from := e.info.StringIndex(e.info.IndexOf(start))
	to := e.info.StringIndex(e.info.IndexOf(end))
	return e.info.Text[from:to]
}

// Copy writes the selected text to the platform clipboard and returns it.
// An empty selection leaves the clipboard untouched.
func (e *Editor) Copy() (string, error) {
	e.mu.Lock()
	if e.info == nil {
		e.mu.Unlock()
		return "", ErrNoLayout
	}
	s := e.selectedText()
	platform := e.platform
	e.mu.Unlock()

	if s == "" {
		return "", nil
	}
	if err := platform.ClipboardWrite(s); err != nil {
		return s, fmt.Errorf("editor: clipboard write: %w", err)
	}
	logger.Get().Debug("editor: copied selection", "bytes", len(s))
	return s, nil
}

// CaretRect returns the caret rectangle in layout space.
func (e *Editor) CaretRect() (geom.Rect, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.info == nil || len(e.info.Lines) == 0 {
		return geom.Rect{}, false
	}
	return text.CaretRect(e.info, e.sel.End), true
}

// SelectionRects returns the highlight rectangles in layout space, or nil
// for a caret.
func (e *Editor) SelectionRects() []geom.Rect {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.info == nil || len(e.info.Lines) == 0 || e.sel.Empty() {
		return nil
	}
	return text.SelectionRects(e.info, e.sel.Start, e.sel.End)
}

// hover updates the pointer position and switches the cursor to an I-beam
// over the text.
func (e *Editor) hover(p geom.Point) {
	e.mu.Lock()
	e.pointer = p
	inside := e.info != nil && e.info.LayoutRect.Contains(e.viewport.ToLocal(p))
	changed := inside != e.hovering
	e.hovering = inside
	platform := e.platform
	e.mu.Unlock()

	if !changed {
		return
	}
	if inside {
		platform.SetCursor(gpucontext.CursorText)
	} else {
		platform.SetCursor(gpucontext.CursorDefault)
	}
}

// scroll pans the viewport, or zooms around the pointer while Control or
// Super is held.
func (e *Editor) scroll(dx, dy float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.zooming > 0 {
		e.viewport = e.viewport.Zoom(e.pointer, dy)
		return
	}
	e.viewport = e.viewport.Pan(-dx, -dy)
}

func isZoomKey(k gpucontext.Key) bool {
	switch k {
	case gpucontext.KeyLeftControl, gpucontext.KeyRightControl,
		gpucontext.KeyLeftSuper, gpucontext.KeyRightSuper:
		return true
	}
	return false
}

// Attach subscribes the editor to window events: keys, primary button
// presses, pointer motion and scrolling.
func (e *Editor) Attach(src gpucontext.EventSource) {
	src.OnKeyPress(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		if isZoomKey(key) {
			e.mu.Lock()
			e.zooming++
			e.mu.Unlock()
			return
		}
		e.HandleKey(key, mods)
	})
	src.OnKeyRelease(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if isZoomKey(key) {
			e.mu.Lock()
			e.zooming = max(e.zooming-1, 0)
			e.mu.Unlock()
		}
	})
	src.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		if b == gpucontext.MouseButtonLeft {
			e.Press(geom.Pt(x, y))
		}
	})
	src.OnMouseMove(func(x, y float64) {
		p := geom.Pt(x, y)
		e.hover(p)
		e.Drag(p)
	})
	src.OnMouseRelease(func(b gpucontext.MouseButton, _, _ float64) {
		if b == gpucontext.MouseButtonLeft {
			e.Release()
		}
	})
	src.OnScroll(e.scroll)
}
