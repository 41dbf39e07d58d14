package backend

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/riv/internal/input"
	"github.com/dshills/riv/internal/input/key"
	"github.com/dshills/riv/internal/input/mouse"
)

// convertEvent converts a tcell event into zero or more input events.
// A single tcell mouse event can carry several button transitions.
func convertEvent(ev tcell.Event, tracker *mouse.Tracker) []input.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if in, ok := convertKeyEvent(e); ok {
			return []input.Event{in}
		}
		return nil

	case *tcell.EventResize:
		w, h := e.Size()
		return []input.Event{input.WindowStateEvent(input.WindowResized, w, h)}

	case *tcell.EventFocus:
		if e.Focused {
			return []input.Event{input.WindowStateEvent(input.WindowFocusGained, 0, 0)}
		}
		return []input.Event{input.WindowStateEvent(input.WindowFocusLost, 0, 0)}

	case *tcell.EventMouse:
		x, y := e.Position()
		pos := mouse.Position{X: x, Y: y}
		ts := e.When()
		if ts.IsZero() {
			ts = time.Now()
		}
		var events []input.Event
		for _, m := range tracker.Update(pos, convertButtons(e.Buttons()), convertMod(e.Modifiers()), ts) {
			events = append(events, input.MouseEvent(m))
		}
		return events

	default:
		return nil
	}
}

// convertKeyEvent maps a key press. Printable runes become text input,
// except '.' which is the Period key. Runes typed with Ctrl, Alt or Meta
// are kept as key presses so they do not trigger text bindings.
func convertKeyEvent(e *tcell.EventKey) (input.Event, bool) {
	mods := convertMod(e.Modifiers())

	if e.Key() == tcell.KeyRune {
		r := e.Rune()
		if mods.IsShortcut() {
			ke := key.NewRuneEvent(r, mods)
			return input.Event{Type: input.EventKey, Key: ke, Timestamp: ke.Timestamp}, true
		}
		if r == '.' {
			return input.KeyEvent(key.KeyPeriod, key.ModNone), true
		}
		return input.TextEvent(string(r)), true
	}

	if e.Key() == tcell.KeyCtrlC {
		return input.QuitEvent(), true
	}

	k := convertKey(e.Key())
	if k == key.KeyNone {
		return input.Event{}, false
	}
	return input.KeyEvent(k, mods), true
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
}

func init() {
	for i := range 12 {
		specialKeys[tcell.KeyF1+tcell.Key(i)] = key.KeyF1 + key.Key(i)
	}
}

// convertKey returns KeyNone for keys riv has no use for.
func convertKey(k tcell.Key) key.Key {
	return specialKeys[k]
}

var modBits = [...]struct {
	mask tcell.ModMask
	mod  key.Modifier
}{
	{tcell.ModShift, key.ModShift},
	{tcell.ModCtrl, key.ModCtrl},
	{tcell.ModAlt, key.ModAlt},
	{tcell.ModMeta, key.ModMeta},
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	for _, b := range modBits {
		if m&b.mask != 0 {
			mods |= b.mod
		}
	}
	return mods
}

// convertButtons lists the buttons set in a tcell button mask.
func convertButtons(b tcell.ButtonMask) []mouse.Button {
	var buttons []mouse.Button
	for _, m := range [...]struct {
		mask   tcell.ButtonMask
		button mouse.Button
	}{
		{tcell.Button1, mouse.ButtonLeft},
		{tcell.Button2, mouse.ButtonRight},
		{tcell.Button3, mouse.ButtonMiddle},
		{tcell.Button4, mouse.ButtonBack},
		{tcell.Button5, mouse.ButtonForward},
		{tcell.WheelUp, mouse.ButtonScrollUp},
		{tcell.WheelDown, mouse.ButtonScrollDown},
		{tcell.WheelLeft, mouse.ButtonScrollLeft},
		{tcell.WheelRight, mouse.ButtonScrollRight},
	} {
		if b&m.mask != 0 {
			buttons = append(buttons, m.button)
		}
	}
	return buttons
}
