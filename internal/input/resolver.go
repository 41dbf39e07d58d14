package input

import (
	"unicode/utf8"

	"github.com/dshills/riv/internal/input/action"
	"github.com/dshills/riv/internal/input/key"
	"github.com/dshills/riv/internal/input/keymap"
	"github.com/dshills/riv/internal/input/mouse"
)

// Resolver maps raw events to actions. It is pure: the same event always
// yields the same action for a given table.
type Resolver struct {
	table *keymap.Table
}

// NewResolver creates a resolver over table. A nil table resolves only the
// fixed mappings (digits, shifted arrows, window and mouse events).
func NewResolver(table *keymap.Table) *Resolver {
	return &Resolver{table: table}
}

// DefaultResolver creates a resolver with the built-in bindings.
func DefaultResolver() *Resolver {
	table, err := keymap.Build(keymap.DefaultKeymap())
	if err != nil {
		panic("input: invalid default keymap: " + err.Error())
	}
	return NewResolver(table)
}

// Table returns the binding table in use.
func (r *Resolver) Table() *keymap.Table {
	return r.table
}

// Resolve returns the action for ev. Unrecognized events resolve to Noop.
func (r *Resolver) Resolve(ev Event) action.Action {
	switch ev.Type {
	case EventQuit:
		return action.New(action.KindQuit)
	case EventText:
		return r.resolveText(ev.Text)
	case EventKey:
		return r.resolveKey(ev.Key)
	case EventWindow:
		if ev.Window.NeedsRedraw() {
			return action.New(action.KindReRender)
		}
	case EventMouse:
		if ev.Mouse.IsRelease(mouse.ButtonLeft) {
			return action.New(action.KindToggleFit)
		}
	}
	return action.Noop
}

func (r *Resolver) resolveText(text string) action.Action {
	if utf8.RuneCountInString(text) != 1 {
		return action.Noop
	}
	c, _ := utf8.DecodeRuneInString(text)
	if c >= '1' && c <= '9' {
		return action.Digit(int(c - '0'))
	}
	if r.table != nil {
		if a, ok := r.table.LookupText(c); ok {
			return a
		}
	}
	return action.Noop
}

// resolveKey checks Shift before the table so that shifted arrows always pan.
func (r *Resolver) resolveKey(ev key.Event) action.Action {
	if ev.Modifiers.HasShift() {
		switch ev.Key {
		case key.KeyLeft:
			return action.Pan(action.PanLeft)
		case key.KeyRight:
			return action.Pan(action.PanRight)
		case key.KeyUp:
			return action.Pan(action.PanUp)
		case key.KeyDown:
			return action.Pan(action.PanDown)
		}
		return action.Noop
	}
	if ev.Key == key.KeyRune || r.table == nil {
		return action.Noop
	}
	if a, ok := r.table.LookupKey(ev.Key); ok {
		return a
	}
	return action.Noop
}
