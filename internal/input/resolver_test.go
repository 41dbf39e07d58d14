package input

import (
	"testing"

	"github.com/dshills/riv/internal/input/action"
	"github.com/dshills/riv/internal/input/key"
	"github.com/dshills/riv/internal/input/keymap"
	"github.com/dshills/riv/internal/input/mouse"
)

func TestResolveText(t *testing.T) {
	tests := []struct {
		text string
		want action.Action
	}{
		{"1", action.Digit(1)},
		{"9", action.Digit(9)},
		{"0", action.Noop},
		{"c", action.New(action.KindCopy)},
		{"d", action.New(action.KindTrash)},
		{"D", action.New(action.KindDelete)},
		{"f", action.New(action.KindToggleFullscreen)},
		{"g", action.New(action.KindFirst)},
		{"G", action.New(action.KindLast)},
		{"h", action.New(action.KindFlipHorizontal)},
		{"v", action.New(action.KindFlipVertical)},
		{"?", action.New(action.KindToggleHelp)},
		{"t", action.New(action.KindToggleInfobar)},
		{"H", action.Pan(action.PanLeft)},
		{"J", action.Pan(action.PanDown)},
		{"K", action.Pan(action.PanUp)},
		{"L", action.Pan(action.PanRight)},
		{"i", action.Zoom(action.ZoomIn)},
		{"o", action.Zoom(action.ZoomOut)},
		{"j", action.New(action.KindNext)},
		{"k", action.New(action.KindPrev)},
		{"m", action.New(action.KindMove)},
		{"p", action.New(action.KindCmd)},
		{"q", action.New(action.KindQuit)},
		{"r", action.Rotate(action.Clockwise)},
		{"R", action.Rotate(action.CounterClockwise)},
		{"w", action.New(action.KindSkipForward)},
		{"b", action.New(action.KindSkipBack)},
		{"z", action.New(action.KindToggleFit)},
		{"Z", action.New(action.KindCenterImage)},
		{"x", action.Noop},
		{"", action.Noop},
		{".", action.New(action.KindRepeatLastAction)},
		{"jk", action.Noop},
		{"é", action.Noop},
	}

	r := DefaultResolver()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := r.Resolve(TextEvent(tt.text)); got != tt.want {
				t.Errorf("Resolve(text %q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestResolveKey(t *testing.T) {
	tests := []struct {
		name string
		key  key.Key
		mods key.Modifier
		want action.Action
	}{
		{"up zooms in", key.KeyUp, key.ModNone, action.Zoom(action.ZoomIn)},
		{"down zooms out", key.KeyDown, key.ModNone, action.Zoom(action.ZoomOut)},
		{"right is next", key.KeyRight, key.ModNone, action.New(action.KindNext)},
		{"left is prev", key.KeyLeft, key.ModNone, action.New(action.KindPrev)},
		{"shift left pans", key.KeyLeft, key.ModShift, action.Pan(action.PanLeft)},
		{"shift right pans", key.KeyRight, key.ModShift, action.Pan(action.PanRight)},
		{"shift up pans", key.KeyUp, key.ModShift, action.Pan(action.PanUp)},
		{"shift down pans", key.KeyDown, key.ModShift, action.Pan(action.PanDown)},
		{"shift ctrl up pans", key.KeyUp, key.ModShift | key.ModCtrl, action.Pan(action.PanUp)},
		{"shift home is noop", key.KeyHome, key.ModShift, action.Noop},
		{"shift period is noop", key.KeyPeriod, key.ModShift, action.Noop},
		{"page up skips forward", key.KeyPageUp, key.ModNone, action.New(action.KindSkipForward)},
		{"page down skips back", key.KeyPageDown, key.ModNone, action.New(action.KindSkipBack)},
		{"escape quits", key.KeyEscape, key.ModNone, action.New(action.KindQuit)},
		{"backspace", key.KeyBackspace, key.ModNone, action.New(action.KindBackspace)},
		{"period repeats", key.KeyPeriod, key.ModNone, action.New(action.KindRepeatLastAction)},
		{"delete", key.KeyDelete, key.ModNone, action.New(action.KindDelete)},
		{"home", key.KeyHome, key.ModNone, action.New(action.KindFirst)},
		{"end", key.KeyEnd, key.ModNone, action.New(action.KindLast)},
		{"f11 fullscreen", key.KeyF11, key.ModNone, action.New(action.KindToggleFullscreen)},
		{"f1 unbound", key.KeyF1, key.ModNone, action.Noop},
		{"rune key ignored", key.KeyRune, key.ModNone, action.Noop},
	}

	r := DefaultResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(KeyEvent(tt.key, tt.mods)); got != tt.want {
				t.Errorf("Resolve(%v %v) = %v, want %v", tt.mods, tt.key, got, tt.want)
			}
		})
	}
}

func TestResolveWindow(t *testing.T) {
	tests := []struct {
		window WindowEvent
		want   action.Action
	}{
		{WindowExposed, action.New(action.KindReRender)},
		{WindowResized, action.New(action.KindReRender)},
		{WindowSizeChanged, action.New(action.KindReRender)},
		{WindowMaximized, action.New(action.KindReRender)},
		{WindowMinimized, action.Noop},
		{WindowFocusGained, action.Noop},
		{WindowNone, action.Noop},
	}

	r := DefaultResolver()
	for _, tt := range tests {
		t.Run(tt.window.String(), func(t *testing.T) {
			if got := r.Resolve(WindowStateEvent(tt.window, 10, 10)); got != tt.want {
				t.Errorf("Resolve(%v) = %v, want %v", tt.window, got, tt.want)
			}
		})
	}
}

func TestResolveMouseAndQuit(t *testing.T) {
	r := DefaultResolver()

	release := MouseEvent(mouse.Event{Button: mouse.ButtonLeft, Action: mouse.ActionRelease})
	if got := r.Resolve(release); got != action.New(action.KindToggleFit) {
		t.Errorf("left release = %v, want toggleFit", got)
	}
	press := MouseEvent(mouse.Event{Button: mouse.ButtonLeft, Action: mouse.ActionPress})
	if got := r.Resolve(press); got != action.Noop {
		t.Errorf("left press = %v, want noop", got)
	}
	right := MouseEvent(mouse.Event{Button: mouse.ButtonRight, Action: mouse.ActionRelease})
	if got := r.Resolve(right); got != action.Noop {
		t.Errorf("right release = %v, want noop", got)
	}
	if got := r.Resolve(QuitEvent()); got != action.New(action.KindQuit) {
		t.Errorf("quit event = %v, want quit", got)
	}
	if got := r.Resolve(Event{}); got != action.Noop {
		t.Errorf("empty event = %v, want noop", got)
	}
}

func TestResolveOverrides(t *testing.T) {
	table, err := keymap.Build(keymap.DefaultKeymap(), keymap.FromMap("user", map[string]any{
		"j":     "prev",
		"Left":  "zoom(in)",
		".":     "next",
		"Right": "pan(right)",
	}))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	r := NewResolver(table)

	if got := r.Resolve(TextEvent("j")); got != action.New(action.KindPrev) {
		t.Errorf("overridden j = %v, want prev", got)
	}
	if got := r.Resolve(TextEvent(".")); got != action.New(action.KindNext) {
		t.Errorf("bound period text = %v, want next", got)
	}
	if got := r.Resolve(KeyEvent(key.KeyLeft, key.ModNone)); got != action.Zoom(action.ZoomIn) {
		t.Errorf("overridden Left = %v, want zoom(in)", got)
	}
	// Shift is resolved before the table.
	if got := r.Resolve(KeyEvent(key.KeyLeft, key.ModShift)); got != action.Pan(action.PanLeft) {
		t.Errorf("shift Left = %v, want pan(left)", got)
	}
	if got := r.Resolve(TextEvent("3")); got != action.Digit(3) {
		t.Errorf("digit = %v, want digit(3)", got)
	}
}

func TestResolveNilTable(t *testing.T) {
	r := NewResolver(nil)
	if got := r.Resolve(TextEvent("j")); got != action.Noop {
		t.Errorf("j without table = %v, want noop", got)
	}
	if got := r.Resolve(TextEvent("4")); got != action.Digit(4) {
		t.Errorf("digit without table = %v, want digit(4)", got)
	}
	if got := r.Resolve(KeyEvent(key.KeyHome, key.ModNone)); got != action.Noop {
		t.Errorf("Home without table = %v, want noop", got)
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{TextEvent("j"), `text("j")`},
		{KeyEvent(key.KeyLeft, key.ModShift), "key(S-Left)"},
		{WindowStateEvent(WindowResized, 80, 24), "window(resized)"},
		{QuitEvent(), "quit"},
		{Event{}, "none"},
	}
	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("Event.String() = %q, want %q", got, tt.want)
		}
	}
}
