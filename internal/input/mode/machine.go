package mode

import (
	"time"

	"github.com/dshills/riv/internal/input"
	"github.com/dshills/riv/internal/input/action"
	"github.com/dshills/riv/internal/state"
)

// Resolver maps a raw event to an action.
type Resolver interface {
	Resolve(ev input.Event) action.Action
}

// ModeChangeCallback is called when Handle changes the mode.
type ModeChangeCallback func(from, to state.Mode)

// Machine interprets resolved actions according to the current mode.
// It holds no session state of its own; every call receives the State it
// operates on.
type Machine struct {
	resolver  Resolver
	callbacks []ModeChangeCallback
}

// NewMachine creates a machine that resolves events with r.
func NewMachine(r Resolver) *Machine {
	return &Machine{resolver: r}
}

// SetResolver replaces the resolver, for example after the key bindings
// were reloaded.
func (m *Machine) SetResolver(r Resolver) {
	m.resolver = r
}

// OnModeChange registers a callback for mode transitions made by Handle.
func (m *Machine) OnModeChange(cb ModeChangeCallback) {
	m.callbacks = append(m.callbacks, cb)
}

// ProcessNormal resolves ev in Normal mode and commits the result with
// State.ProcessAction.
//
// A digit starts count entry: it is stored as the initial count, the mode
// becomes MultiNormal and SwitchMultiNormalMode is returned. Help and
// infobar toggles are applied directly and return ReRender. RepeatLastAction
// returns the last action unchanged. Backspace does nothing outside count
// entry.
func (m *Machine) ProcessNormal(s *state.State, ev input.Event) action.ProcessAction {
	a := m.resolver.Resolve(ev)

	var pa action.ProcessAction
	switch a.Kind {
	case action.KindDigit:
		s.Register.CurAction.Times = a.Digit
		s.Mode = state.MultiNormal
		pa = action.Once(action.New(action.KindSwitchMultiNormalMode))
	case action.KindToggleHelp:
		s.ToggleHelp()
		pa = action.Once(action.New(action.KindReRender))
	case action.KindToggleInfobar:
		s.ToggleInfobar()
		pa = action.Once(action.New(action.KindReRender))
	case action.KindRepeatLastAction:
		pa = s.LastAction
	case action.KindBackspace:
		pa = action.Once(action.Noop)
	default:
		pa = action.Once(a)
	}
	return s.ProcessAction(pa)
}

// ProcessMultiNormal resolves ev during count entry. The mode is left
// untouched; the caller switches back to Normal when the result is final.
//
// Digits extend the count, saturating instead of overflowing.
// RepeatLastAction replays the last action with its count replaced by the
// entered one. Any other action is paired with the entered count.
func (m *Machine) ProcessMultiNormal(s *state.State, ev input.Event) action.MultiNormalAction {
	times := s.Register.CurAction.Times
	a := m.resolver.Resolve(ev)

	switch a.Kind {
	case action.KindDigit:
		s.Register.CurAction.Times = action.Accumulate(times, a.Digit)
		return action.MultiNormalAction{Kind: action.MoreInput}
	case action.KindQuit:
		return action.MultiNormalAction{Kind: action.MultiQuit}
	case action.KindRepeatLastAction:
		s.LastAction.Times = times
		return action.MultiRepeat(s.LastAction)
	case action.KindNoop:
		return action.MultiNormalAction{Kind: action.MultiNoop}
	case action.KindReRender:
		return action.MultiNormalAction{Kind: action.MultiReRender}
	default:
		return action.MultiRepeat(action.ProcessAction{Action: a, Times: times})
	}
}

// Handle processes ev according to s.Mode and returns the action the
// caller should execute.
//
//   - Exit returns Quit without looking at the event.
//   - MultiNormal returns ReRender while the count is still being entered,
//     so the pending count can be drawn. A final action, Quit, Cancel or
//     SwitchBackNormalMode returns the mode to Normal. Final actions are
//     committed as the last action.
//   - Error and Success are handled like Normal; any action other than
//     Noop or ReRender dismisses the message. Window events resolve to
//     ReRender, so a resize or expose keeps the message on screen.
func (m *Machine) Handle(s *state.State, ev input.Event) action.ProcessAction {
	from := s.Mode

	var pa action.ProcessAction
	switch s.Mode.Kind {
	case state.ModeExit:
		return action.Once(action.New(action.KindQuit))

	case state.ModeMultiNormal:
		res := m.ProcessMultiNormal(s, ev)
		switch res.Kind {
		case action.MoreInput:
			pa = action.Once(action.New(action.KindReRender))
		case action.RepeatAction:
			s.Mode = state.Normal
			pa = s.ProcessAction(res.Process)
		case action.MultiQuit:
			s.Mode = state.Normal
			pa = action.Once(action.New(action.KindQuit))
		case action.Cancel, action.SwitchBackNormalMode:
			s.Mode = state.Normal
			pa = action.Once(action.New(action.KindReRender))
		case action.MultiReRender:
			pa = action.Once(action.New(action.KindReRender))
		default:
			pa = action.Once(action.Noop)
		}

	default:
		pa = m.ProcessNormal(s, ev)
		if from.HasMessage() && dismisses(pa.Action.Kind) {
			if s.Mode == from {
				s.Mode = state.Normal
			}
			s.RerenderTime = time.Time{}
		}
	}

	if s.Mode != from {
		m.notify(from, s.Mode)
	}
	return pa
}

func dismisses(k action.Kind) bool {
	return k != action.KindNoop && k != action.KindReRender
}

// Quit moves s into the terminal Exit mode.
func (m *Machine) Quit(s *state.State) {
	if s.Mode.Kind == state.ModeExit {
		return
	}
	from := s.Mode
	s.Mode = state.Exit
	m.notify(from, s.Mode)
}

func (m *Machine) notify(from, to state.Mode) {
	for _, cb := range m.callbacks {
		if cb != nil {
			cb(from, to)
		}
	}
}
