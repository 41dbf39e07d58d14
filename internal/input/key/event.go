package key

import "time"

// Event is one key press as delivered by a frontend. Rune is set only for
// KeyRune.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
	Timestamp time.Time
}

// NewRuneEvent stamps a character press with the current time.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods, Timestamp: time.Now()}
}

// NewSpecialEvent stamps a non-character press with the current time.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods, Timestamp: time.Now()}
}

// IsRune reports whether e carries a character.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// String renders e for keymap files and logs: "j", "S-Left", "C-c". Shift
// is left out for characters since the rune already shows it.
func (e Event) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	return e.Modifiers.prefix(!e.IsRune()) + name
}
