package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/riv/internal/input/key"
)

// specialKeys maps the ebiten keys that are not reported as text input.
// Letters, digits and punctuation arrive through ebiten.AppendInputChars
// instead. Period is reported as both; collect drops the duplicate.
var specialKeys = map[ebiten.Key]key.Key{
	ebiten.KeyEscape:    key.KeyEscape,
	ebiten.KeyEnter:     key.KeyEnter,
	ebiten.KeyTab:       key.KeyTab,
	ebiten.KeyBackspace: key.KeyBackspace,
	ebiten.KeyDelete:    key.KeyDelete,
	ebiten.KeyInsert:    key.KeyInsert,
	ebiten.KeyHome:      key.KeyHome,
	ebiten.KeyEnd:       key.KeyEnd,
	ebiten.KeyPageUp:    key.KeyPageUp,
	ebiten.KeyPageDown:  key.KeyPageDown,
	ebiten.KeyPeriod:    key.KeyPeriod,
	ebiten.KeyUp:        key.KeyUp,
	ebiten.KeyDown:      key.KeyDown,
	ebiten.KeyLeft:      key.KeyLeft,
	ebiten.KeyRight:     key.KeyRight,
	ebiten.KeyF1:        key.KeyF1,
	ebiten.KeyF2:        key.KeyF2,
	ebiten.KeyF3:        key.KeyF3,
	ebiten.KeyF4:        key.KeyF4,
	ebiten.KeyF5:        key.KeyF5,
	ebiten.KeyF6:        key.KeyF6,
	ebiten.KeyF7:        key.KeyF7,
	ebiten.KeyF8:        key.KeyF8,
	ebiten.KeyF9:        key.KeyF9,
	ebiten.KeyF10:       key.KeyF10,
	ebiten.KeyF11:       key.KeyF11,
	ebiten.KeyF12:       key.KeyF12,
}

// convertKey returns the special key for k, or KeyNone.
func convertKey(k ebiten.Key) key.Key {
	if kk, ok := specialKeys[k]; ok {
		return kk
	}
	return key.KeyNone
}

// modifierState reports which modifiers are held according to pressed.
func modifierState(pressed func(ebiten.Key) bool) key.Modifier {
	var mods key.Modifier
	if pressed(ebiten.KeyShift) {
		mods |= key.ModShift
	}
	if pressed(ebiten.KeyControl) {
		mods |= key.ModCtrl
	}
	if pressed(ebiten.KeyAlt) {
		mods |= key.ModAlt
	}
	if pressed(ebiten.KeyMeta) {
		mods |= key.ModMeta
	}
	return mods
}

// textAllowed reports whether typed characters should be treated as text
// under mods. Characters typed with Ctrl, Alt or Meta are shortcuts.
func textAllowed(mods key.Modifier) bool {
	return !mods.IsShortcut()
}
