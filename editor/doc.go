// Package editor turns keyboard and pointer input into caret and selection
// changes over a text layout.
//
// An Editor holds a [text.LayoutInfo], the current [Selection] and a
// [Viewport] mapping window pixels to layout space. It can be driven
// directly through HandleKey, Press, Drag and Release, or subscribed to a
// window with Attach:
//
//	ed := editor.New(info, editor.WithPlatform(platform))
//	ed.Attach(events)
//
// Selection geometry for rendering comes from CaretRect and SelectionRects.
package editor
