package key

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt  // Option on macOS
	ModMeta // Cmd on macOS, Win on Windows

	// modShortcut are the modifiers that turn a typed character into a
	// shortcut instead of text.
	modShortcut = ModCtrl | ModAlt | ModMeta
)

// modNames lists modifiers in display order with their long and short
// names.
var modNames = []struct {
	mod         Modifier
	long, short string
}{
	{ModCtrl, "Ctrl", "C-"},
	{ModAlt, "Alt", "A-"},
	{ModMeta, "Meta", "M-"},
	{ModShift, "Shift", "S-"},
}

// Has reports whether every modifier in mod is held.
func (m Modifier) Has(mod Modifier) bool {
	return mod != 0 && m&mod == mod
}

// HasShift reports whether Shift is held. Shifted directional keys pan.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// IsShortcut reports whether Ctrl, Alt or Meta is held. Characters typed
// with one of them are not text input.
func (m Modifier) IsShortcut() bool {
	return m&modShortcut != 0
}

// String returns a form such as "Ctrl+Shift", or "" for no modifiers.
func (m Modifier) String() string {
	var parts []string
	for _, n := range modNames {
		if m.Has(n.mod) {
			parts = append(parts, n.long)
		}
	}
	return strings.Join(parts, "+")
}

// prefix returns the short form used in key names, such as "C-S-".
// Shift is left out when withShift is false.
func (m Modifier) prefix(withShift bool) string {
	var b strings.Builder
	for _, n := range modNames {
		if n.mod == ModShift && !withShift {
			continue
		}
		if m.Has(n.mod) {
			b.WriteString(n.short)
		}
	}
	return b.String()
}
