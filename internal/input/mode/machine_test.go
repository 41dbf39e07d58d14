package mode

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/dshills/riv/internal/input"
	"github.com/dshills/riv/internal/input/action"
	"github.com/dshills/riv/internal/input/key"
	"github.com/dshills/riv/internal/state"
)

func text(s string) input.Event {
	return input.TextEvent(s)
}

func period() input.Event {
	return input.KeyEvent(key.KeyPeriod, key.ModNone)
}

func newMachine() *Machine {
	return NewMachine(input.DefaultResolver())
}

func TestProcessNormalPassThrough(t *testing.T) {
	m := newMachine()
	s := state.New()

	got := m.ProcessNormal(s, text("j"))
	want := action.Once(action.New(action.KindNext))
	if got != want {
		t.Errorf("ProcessNormal(j) = %v, want %v", got, want)
	}
	if s.LastAction != want {
		t.Errorf("LastAction = %v, want %v", s.LastAction, want)
	}
}

func TestProcessNormalDigit(t *testing.T) {
	m := newMachine()
	s := state.New()
	s.LastAction = action.Once(action.New(action.KindPrev))

	got := m.ProcessNormal(s, text("2"))
	if got.Action.Kind != action.KindSwitchMultiNormalMode {
		t.Fatalf("ProcessNormal(2) = %v, want switchMultiNormalMode", got)
	}
	if s.Mode != state.MultiNormal {
		t.Errorf("Mode = %v, want multinormal", s.Mode)
	}
	if s.Register.CurAction.Times != 2 {
		t.Errorf("pending count = %d, want 2", s.Register.CurAction.Times)
	}
	if s.LastAction != action.Once(action.New(action.KindPrev)) {
		t.Errorf("SwitchMultiNormalMode changed LastAction to %v", s.LastAction)
	}
}

func TestProcessNormalToggles(t *testing.T) {
	m := newMachine()
	s := state.New()

	got := m.ProcessNormal(s, text("?"))
	if got.Action.Kind != action.KindReRender {
		t.Errorf("toggle help = %v, want rerender", got)
	}
	if s.RenderHelp != state.HelpNormal {
		t.Errorf("RenderHelp = %v, want normal", s.RenderHelp)
	}
	m.ProcessNormal(s, text("?"))
	if s.RenderHelp != state.HelpNone {
		t.Errorf("RenderHelp = %v, want none", s.RenderHelp)
	}

	got = m.ProcessNormal(s, text("t"))
	if got.Action.Kind != action.KindReRender || s.RenderInfobar {
		t.Errorf("toggle infobar = %v, RenderInfobar = %v", got, s.RenderInfobar)
	}
	if s.LastAction != action.Once(action.Noop) {
		t.Errorf("toggles should not be recorded, LastAction = %v", s.LastAction)
	}
}

func TestProcessNormalRepeatAndBackspace(t *testing.T) {
	m := newMachine()
	s := state.New()
	last := action.Repeat(action.Zoom(action.ZoomIn), 3)
	s.LastAction = last

	if got := m.ProcessNormal(s, period()); got != last {
		t.Errorf("RepeatLastAction = %v, want %v", got, last)
	}
	if s.LastAction != last {
		t.Errorf("LastAction = %v, want %v", s.LastAction, last)
	}

	bs := input.KeyEvent(key.KeyBackspace, key.ModNone)
	if got := m.ProcessNormal(s, bs); got != action.Once(action.Noop) {
		t.Errorf("Backspace = %v, want noop", got)
	}
	if s.LastAction != last {
		t.Errorf("Backspace changed LastAction to %v", s.LastAction)
	}
}

func TestDigitAccumulation(t *testing.T) {
	m := newMachine()
	s := state.New()

	m.ProcessNormal(s, text("2"))
	res := m.ProcessMultiNormal(s, text("5"))
	if res.Kind != action.MoreInput {
		t.Fatalf("second digit = %v, want moreInput", res)
	}
	if s.Register.CurAction.Times != 25 {
		t.Fatalf("count = %d, want 25", s.Register.CurAction.Times)
	}

	res = m.ProcessMultiNormal(s, text("j"))
	want := action.MultiRepeat(action.ProcessAction{Action: action.New(action.KindNext), Times: 25})
	if res != want {
		t.Errorf("ProcessMultiNormal(j) = %v, want %v", res, want)
	}
}

func TestProcessMultiNormalResults(t *testing.T) {
	tests := []struct {
		name string
		ev   input.Event
		want action.MultiNormalKind
	}{
		{"quit", text("q"), action.MultiQuit},
		{"escape", input.KeyEvent(key.KeyEscape, key.ModNone), action.MultiQuit},
		{"noop", text("x"), action.MultiNoop},
		{"rerender", input.WindowStateEvent(input.WindowResized, 1, 1), action.MultiReRender},
		{"digit", text("7"), action.MoreInput},
		{"backspace", input.KeyEvent(key.KeyBackspace, key.ModNone), action.RepeatAction},
		{"toggle help", text("?"), action.RepeatAction},
	}

	m := newMachine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.New()
			s.Mode = state.MultiNormal
			s.Register.CurAction.Times = 4
			if got := m.ProcessMultiNormal(s, tt.ev); got.Kind != tt.want {
				t.Errorf("ProcessMultiNormal() = %v, want %v", got, tt.want)
			}
			if s.Mode != state.MultiNormal {
				t.Errorf("ProcessMultiNormal changed mode to %v", s.Mode)
			}
		})
	}
}

func TestCountSaturates(t *testing.T) {
	m := newMachine()
	s := state.New()

	m.ProcessNormal(s, text("9"))
	for i := 0; i < 40; i++ {
		prev := s.Register.CurAction.Times
		m.ProcessMultiNormal(s, text("9"))
		if s.Register.CurAction.Times < prev {
			t.Fatalf("count wrapped from %d to %d", prev, s.Register.CurAction.Times)
		}
	}
	if s.Register.CurAction.Times != math.MaxInt {
		t.Fatalf("count = %d, want MaxInt", s.Register.CurAction.Times)
	}

	res := m.ProcessMultiNormal(s, text("i"))
	if res.Kind != action.RepeatAction || res.Process.Times != math.MaxInt {
		t.Fatalf("result = %v", res)
	}

	s.ZoomIn(res.Process.Times)
	if math.Abs(s.Scale-state.ZoomFactor) > 1e-12 {
		t.Errorf("saturated zoom scale = %v, want one step (%v)", s.Scale, state.ZoomFactor)
	}
}

func TestRepeatLastActionInCountEntry(t *testing.T) {
	m := newMachine()
	s := state.New()
	s.LastAction = action.Once(action.Pan(action.PanLeft))

	m.ProcessNormal(s, text("1"))
	m.ProcessMultiNormal(s, text("2"))
	res := m.ProcessMultiNormal(s, period())

	want := action.ProcessAction{Action: action.Pan(action.PanLeft), Times: 12}
	if res.Kind != action.RepeatAction || res.Process != want {
		t.Errorf("result = %v, want repeat(%v)", res, want)
	}
	if s.LastAction != want {
		t.Errorf("LastAction = %v, want %v", s.LastAction, want)
	}
}

func TestHandleCountEntryFlow(t *testing.T) {
	m := newMachine()
	s := state.New()

	var transitions []string
	m.OnModeChange(func(from, to state.Mode) {
		transitions = append(transitions, from.String()+">"+to.String())
	})

	steps := []struct {
		ev       input.Event
		want     action.ProcessAction
		wantMode state.Mode
	}{
		{text("2"), action.Once(action.New(action.KindSwitchMultiNormalMode)), state.MultiNormal},
		{text("5"), action.Once(action.New(action.KindReRender)), state.MultiNormal},
		{text("x"), action.Once(action.Noop), state.MultiNormal},
		{text("j"), action.ProcessAction{Action: action.New(action.KindNext), Times: 25}, state.Normal},
		{period(), action.ProcessAction{Action: action.New(action.KindNext), Times: 25}, state.Normal},
	}

	for i, st := range steps {
		got := m.Handle(s, st.ev)
		if got != st.want {
			t.Errorf("step %d: Handle(%v) = %v, want %v", i, st.ev, got, st.want)
		}
		if s.Mode != st.wantMode {
			t.Errorf("step %d: mode = %v, want %v", i, s.Mode, st.wantMode)
		}
	}

	if s.LastAction != (action.ProcessAction{Action: action.New(action.KindNext), Times: 25}) {
		t.Errorf("LastAction = %v", s.LastAction)
	}
	if got := strings.Join(transitions, ","); got != "normal>multinormal,multinormal>normal" {
		t.Errorf("transitions = %q", got)
	}
}

func TestHandleQuitDuringCountEntry(t *testing.T) {
	m := newMachine()
	s := state.New()
	m.Handle(s, text("3"))

	got := m.Handle(s, text("q"))
	if got.Action.Kind != action.KindQuit {
		t.Errorf("Handle(q) = %v, want quit", got)
	}
	if s.Mode != state.Normal {
		t.Errorf("mode = %v, want normal", s.Mode)
	}
	if s.LastAction.Action.Kind == action.KindQuit {
		t.Error("quit must not be recorded")
	}
}

func TestHandleMessageModes(t *testing.T) {
	m := newMachine()
	now := time.Now()

	s := state.New()
	s.SetMessage(state.Error("bad file"), now, time.Second)
	if got := m.Handle(s, text("x")); got.Action.Kind != action.KindNoop {
		t.Errorf("Handle(x) = %v, want noop", got)
	}
	if s.Mode.Kind != state.ModeError {
		t.Errorf("noop dismissed the message, mode = %v", s.Mode)
	}

	if got := m.Handle(s, input.WindowStateEvent(input.WindowResized, 80, 24)); got.Action.Kind != action.KindReRender {
		t.Errorf("Handle(resize) = %v, want rerender", got)
	}
	if s.Mode.Kind != state.ModeError || s.RerenderTime.IsZero() {
		t.Errorf("resize dismissed the message, mode = %v", s.Mode)
	}

	if got := m.Handle(s, text("j")); got.Action.Kind != action.KindNext {
		t.Errorf("Handle(j) = %v, want next", got)
	}
	if s.Mode != state.Normal || !s.RerenderTime.IsZero() {
		t.Errorf("mode = %v, RerenderTime = %v after action", s.Mode, s.RerenderTime)
	}

	s.SetMessage(state.Success("copied"), now, time.Second)
	m.Handle(s, text("4"))
	if s.Mode != state.MultiNormal {
		t.Errorf("digit in success mode: mode = %v, want multinormal", s.Mode)
	}
	if !s.RerenderTime.IsZero() {
		t.Error("entering count entry should clear the message deadline")
	}
}

func TestHandleExit(t *testing.T) {
	m := newMachine()
	s := state.New()

	var calls int
	m.OnModeChange(func(from, to state.Mode) { calls++ })
	m.Quit(s)
	m.Quit(s)
	if s.Mode != state.Exit {
		t.Fatalf("mode = %v, want exit", s.Mode)
	}
	if calls != 1 {
		t.Errorf("callbacks = %d, want 1", calls)
	}

	for _, ev := range []input.Event{text("j"), text("3"), {}, input.WindowStateEvent(input.WindowExposed, 0, 0)} {
		if got := m.Handle(s, ev); got.Action.Kind != action.KindQuit {
			t.Errorf("Handle(%v) in exit = %v, want quit", ev, got)
		}
	}
	if s.LastAction != action.Once(action.Noop) {
		t.Errorf("LastAction = %v, want noop", s.LastAction)
	}
}

func TestSetResolver(t *testing.T) {
	m := NewMachine(input.NewResolver(nil))
	s := state.New()
	if got := m.Handle(s, text("j")); got.Action.Kind != action.KindNoop {
		t.Errorf("Handle(j) without bindings = %v, want noop", got)
	}
	m.SetResolver(input.DefaultResolver())
	if got := m.Handle(s, text("j")); got.Action.Kind != action.KindNext {
		t.Errorf("Handle(j) = %v, want next", got)
	}
}
