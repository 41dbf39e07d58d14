package input

import (
	"fmt"
	"time"

	"github.com/dshills/riv/internal/input/key"
	"github.com/dshills/riv/internal/input/mouse"
)

// EventType identifies which part of an Event is populated.
type EventType uint8

const (
	// EventNone is an empty or unrecognized event.
	EventNone EventType = iota
	// EventQuit is a request to close the viewer (window closed, SIGTERM).
	EventQuit
	// EventText carries text produced by the keyboard.
	EventText
	// EventKey carries a physical key press.
	EventKey
	// EventWindow carries a window state change.
	EventWindow
	// EventMouse carries a mouse button or motion event.
	EventMouse
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventText:
		return "text"
	case EventKey:
		return "key"
	case EventWindow:
		return "window"
	case EventMouse:
		return "mouse"
	default:
		return "none"
	}
}

// WindowEvent identifies a window state change.
type WindowEvent uint8

const (
	WindowNone WindowEvent = iota
	WindowExposed
	WindowResized
	WindowSizeChanged
	WindowMaximized
	WindowMinimized
	WindowRestored
	WindowFocusGained
	WindowFocusLost
)

var windowNames = [...]string{
	WindowNone:        "none",
	WindowExposed:     "exposed",
	WindowResized:     "resized",
	WindowSizeChanged: "sizeChanged",
	WindowMaximized:   "maximized",
	WindowMinimized:   "minimized",
	WindowRestored:    "restored",
	WindowFocusGained: "focusGained",
	WindowFocusLost:   "focusLost",
}

// String returns the window event name.
func (w WindowEvent) String() string {
	if int(w) < len(windowNames) {
		return windowNames[w]
	}
	return fmt.Sprintf("WindowEvent(%d)", w)
}

// NeedsRedraw reports whether the window contents must be drawn again.
func (w WindowEvent) NeedsRedraw() bool {
	switch w {
	case WindowExposed, WindowResized, WindowSizeChanged, WindowMaximized:
		return true
	}
	return false
}

// Event is a raw input event produced by a frontend.
type Event struct {
	Type EventType

	// Text is set for EventText.
	Text string

	// Key is set for EventKey.
	Key key.Event

	// Window, Width and Height are set for EventWindow. Width and Height
	// are the new size for resize events and zero otherwise.
	Window WindowEvent
	Width  int
	Height int

	// Mouse is set for EventMouse.
	Mouse mouse.Event

	Timestamp time.Time
}

// QuitEvent returns an EventQuit.
func QuitEvent() Event {
	return Event{Type: EventQuit, Timestamp: time.Now()}
}

// TextEvent returns an EventText carrying s.
func TextEvent(s string) Event {
	return Event{Type: EventText, Text: s, Timestamp: time.Now()}
}

// KeyEvent returns an EventKey for a special key.
func KeyEvent(k key.Key, mods key.Modifier) Event {
	ev := key.NewSpecialEvent(k, mods)
	return Event{Type: EventKey, Key: ev, Timestamp: ev.Timestamp}
}

// WindowStateEvent returns an EventWindow.
func WindowStateEvent(w WindowEvent, width, height int) Event {
	return Event{Type: EventWindow, Window: w, Width: width, Height: height, Timestamp: time.Now()}
}

// MouseEvent returns an EventMouse wrapping m.
func MouseEvent(m mouse.Event) Event {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return Event{Type: EventMouse, Mouse: m, Timestamp: ts}
}

// String returns a short description for logging.
func (e Event) String() string {
	switch e.Type {
	case EventText:
		return fmt.Sprintf("text(%q)", e.Text)
	case EventKey:
		return "key(" + e.Key.String() + ")"
	case EventWindow:
		return "window(" + e.Window.String() + ")"
	case EventMouse:
		return fmt.Sprintf("mouse(%s %s)", e.Mouse.Button, e.Mouse.Action)
	default:
		return e.Type.String()
	}
}
