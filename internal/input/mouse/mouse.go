package mouse

import (
	"sync"
	"time"

	"github.com/dshills/riv/internal/input/key"
)

// Button is a mouse button or scroll direction.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
	ButtonScrollLeft
	ButtonScrollRight
	ButtonBack    // button 4
	ButtonForward // button 5
)

var buttonNames = [...]string{
	ButtonNone:        "none",
	ButtonLeft:        "left",
	ButtonMiddle:      "middle",
	ButtonRight:       "right",
	ButtonScrollUp:    "scroll-up",
	ButtonScrollDown:  "scroll-down",
	ButtonScrollLeft:  "scroll-left",
	ButtonScrollRight: "scroll-right",
	ButtonBack:        "back",
	ButtonForward:     "forward",
}

// String returns the button name.
func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "none"
}

// IsScroll reports whether b is a scroll direction. Scrolls have no
// release.
func (b Button) IsScroll() bool {
	return b >= ButtonScrollUp && b <= ButtonScrollRight
}

// Action is what happened to a button.
type Action uint8

const (
	ActionNone Action = iota
	ActionPress
	ActionRelease
	ActionMove // no button held
	ActionDrag // a button held
)

var actionNames = [...]string{
	ActionNone:    "none",
	ActionPress:   "press",
	ActionRelease: "release",
	ActionMove:    "move",
	ActionDrag:    "drag",
}

// String returns the action name.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "none"
}

// Position is a screen coordinate in frontend units: cells for the
// terminal, pixels for the window.
type Position struct {
	X int
	Y int
}

// Equal reports whether p and other are the same point.
func (p Position) Equal(other Position) bool {
	return p == other
}

// Event is one mouse transition.
type Event struct {
	Position  Position
	Button    Button
	Modifiers key.Modifier
	Action    Action
	Timestamp time.Time
}

// IsRelease reports whether the event releases b. Releasing the left
// button toggles fit.
func (e Event) IsRelease(b Button) bool {
	return e.Action == ActionRelease && e.Button == b
}

// Tracker turns button-state snapshots into discrete press and release
// events. Terminals report which buttons are currently held rather than
// transitions, so a release is only visible as a button dropping out of the
// held set.
type Tracker struct {
	mu   sync.Mutex
	held map[Button]bool
	last Position
}

// NewTracker creates a tracker with no buttons held.
func NewTracker() *Tracker {
	return &Tracker{held: make(map[Button]bool)}
}

// trackedButtons are the buttons that have a press/release lifecycle.
var trackedButtons = [...]Button{ButtonLeft, ButtonMiddle, ButtonRight, ButtonBack, ButtonForward}

// Update records the set of buttons held at pos and returns the transitions
// since the previous snapshot. Scroll buttons are reported as a single press.
// Releases come before presses in the returned slice. When nothing changed
// and the position moved, a single move or drag event is returned.
func (t *Tracker) Update(pos Position, buttons []Button, mods key.Modifier, ts time.Time) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := make(map[Button]bool, len(buttons))
	var events []Event
	for _, b := range buttons {
		if b.IsScroll() {
			events = append(events, Event{Position: pos, Button: b, Modifiers: mods, Action: ActionPress, Timestamp: ts})
			continue
		}
		if b != ButtonNone {
			now[b] = true
		}
	}

	var transitions []Event
	for _, b := range trackedButtons {
		if t.held[b] && !now[b] {
			transitions = append(transitions, Event{Position: pos, Button: b, Modifiers: mods, Action: ActionRelease, Timestamp: ts})
		}
	}
	for _, b := range trackedButtons {
		if now[b] && !t.held[b] {
			transitions = append(transitions, Event{Position: pos, Button: b, Modifiers: mods, Action: ActionPress, Timestamp: ts})
		}
	}
	events = append(transitions, events...)

	if len(events) == 0 && !pos.Equal(t.last) {
		action := ActionMove
		if len(now) > 0 {
			action = ActionDrag
		}
		events = append(events, Event{Position: pos, Modifiers: mods, Action: action, Timestamp: ts})
	}

	t.held = now
	t.last = pos
	return events
}

// Held reports whether b is currently held.
func (t *Tracker) Held(b Button) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.held[b]
}

// Reset forgets all held buttons.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.held = make(map[Button]bool)
}
