package key

import (
	"fmt"
	"strings"
)

// Key is a non-character key. Characters use KeyRune with Event.Rune set.
type Key uint16

const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyPeriod // '.' repeats the last action, so it is a key rather than text
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyRune
)

var keyNames = [...]string{
	KeyNone:      "None",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyPeriod:    "Period",
	KeySpace:     "Space",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
	KeyRune:      "Rune",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// byName holds every key's lowercase name plus the short spellings keymap
// files commonly use. "Rune" is not a nameable key.
var byName = func() map[string]Key {
	m := map[string]Key{
		"esc":    KeyEscape,
		"return": KeyEnter,
		"bs":     KeyBackspace,
		"del":    KeyDelete,
		"pgup":   KeyPageUp,
		"pgdn":   KeyPageDown,
	}
	for k, name := range keyNames[:KeyRune] {
		m[strings.ToLower(name)] = Key(k)
	}
	return m
}()

// KeyFromName looks a key up by name, ignoring case and surrounding
// space. Unknown names give KeyNone.
func KeyFromName(name string) Key {
	return byName[strings.ToLower(strings.TrimSpace(name))]
}
