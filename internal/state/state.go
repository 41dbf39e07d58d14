package state

import (
	"math"
	"time"

	"github.com/dshills/riv/internal/input/action"
)

// ZoomFactor is the scale change applied by one zoom step.
const ZoomFactor = 1.1

// Scale is kept within [MinScale, MaxScale].
const (
	MinScale = 1e-6
	MaxScale = 1e6
)

// Register holds the action being assembled during count entry.
type Register struct {
	CurAction action.ProcessAction
}

// State is the session state. It has a single owner and is mutated only
// through the methods below and the mode machine.
type State struct {
	Mode       Mode
	LastAction action.ProcessAction
	Register   Register

	// Scale is the zoom multiplier applied on top of the fit. It is
	// ZoomFactor^zoom clamped to [MinScale, MaxScale].
	Scale float64
	zoom  int64 // net zoom steps; never clamped, so steps in and out cancel
	PanX  float64
	PanY  float64

	FlipHorizontal bool
	FlipVertical   bool
	RotAngle       RotAngle

	// ActualSize shows the image at 1:1 instead of fitting it to the screen.
	ActualSize bool

	RenderInfobar bool
	RenderHelp    HelpRender
	Fullscreen    bool

	// RerenderTime is when the current message expires. Zero means none.
	RerenderTime time.Time
}

// New returns a state with the documented defaults.
func New() *State {
	return &State{
		Mode:          Normal,
		LastAction:    action.Once(action.Noop),
		Register:      Register{CurAction: action.Once(action.Noop)},
		Scale:         1.0,
		RotAngle:      RotUp,
		RenderInfobar: true,
		RenderHelp:    HelpNone,
	}
}

// capZoomTimes maps a repeat count to a zoom exponent. Counts that are not
// positive or do not fit in an int32 become 1.
func capZoomTimes(times int) int {
	if times <= 0 || times > math.MaxInt32 {
		return 1
	}
	return times
}

// ZoomIn multiplies Scale by ZoomFactor^times.
func (s *State) ZoomIn(times int) {
	s.zoomBy(int64(capZoomTimes(times)))
}

// ZoomOut divides Scale by ZoomFactor^times.
func (s *State) ZoomOut(times int) {
	s.zoomBy(-int64(capZoomTimes(times)))
}

// zoomBy moves the step count and derives Scale from it, so ZoomIn(n)
// followed by ZoomOut(n) restores Scale even past the clamp.
func (s *State) zoomBy(steps int64) {
	switch {
	case steps > 0 && s.zoom > math.MaxInt64-steps:
		s.zoom = math.MaxInt64
	case steps < 0 && s.zoom < math.MinInt64-steps:
		s.zoom = math.MinInt64
	default:
		s.zoom += steps
	}
	s.Scale = scaleFor(s.zoom)
}

func scaleFor(zoom int64) float64 {
	v := math.Pow(ZoomFactor, float64(zoom))
	return min(max(v, MinScale), MaxScale)
}

// RotateClockwise turns the image times quarter turns clockwise.
func (s *State) RotateClockwise(times int) {
	for i := 0; i < times%4; i++ {
		s.RotAngle = s.RotAngle.Clockwise()
	}
}

// RotateCounterClockwise turns the image times quarter turns counterclockwise.
func (s *State) RotateCounterClockwise(times int) {
	for i := 0; i < times%4; i++ {
		s.RotAngle = s.RotAngle.CounterClockwise()
	}
}

// FlipH toggles the horizontal flip times times.
func (s *State) FlipH(times int) {
	if times%2 == 1 {
		s.FlipHorizontal = !s.FlipHorizontal
	}
}

// FlipV toggles the vertical flip times times.
func (s *State) FlipV(times int) {
	if times%2 == 1 {
		s.FlipVertical = !s.FlipVertical
	}
}

// Pan moves the image step*times units in direction d. Left and Up are
// negative offsets.
func (s *State) Pan(d action.PanDirection, step float64, times int) {
	dist := step * float64(times)
	switch d {
	case action.PanLeft:
		s.PanX -= dist
	case action.PanRight:
		s.PanX += dist
	case action.PanUp:
		s.PanY -= dist
	case action.PanDown:
		s.PanY += dist
	}
}

// Center clears the pan offset.
func (s *State) Center() {
	s.PanX, s.PanY = 0, 0
}

// ResetView restores scale, pan, flips and rotation to their defaults.
// It is applied when a different image is displayed.
func (s *State) ResetView() {
	s.Scale, s.zoom = 1.0, 0
	s.PanX, s.PanY = 0, 0
	s.FlipHorizontal, s.FlipVertical = false, false
	s.RotAngle = RotUp
}

// ToggleHelp flips the help overlay between None and Normal.
func (s *State) ToggleHelp() {
	if s.RenderHelp == HelpNormal {
		s.RenderHelp = HelpNone
	} else {
		s.RenderHelp = HelpNormal
	}
}

// ToggleInfobar flips the infobar.
func (s *State) ToggleInfobar() {
	s.RenderInfobar = !s.RenderInfobar
}

// ProcessAction records pa as the last action unless it is one of Noop,
// Quit, ReRender or SwitchMultiNormalMode, and returns pa unchanged.
func (s *State) ProcessAction(pa action.ProcessAction) action.ProcessAction {
	switch pa.Action.Kind {
	case action.KindNoop, action.KindQuit, action.KindReRender, action.KindSwitchMultiNormalMode:
	default:
		s.LastAction = pa
	}
	return pa
}

// SetMessage enters an Error or Success mode that expires after ttl.
func (s *State) SetMessage(m Mode, now time.Time, ttl time.Duration) {
	s.Mode = m
	if ttl > 0 {
		s.RerenderTime = now.Add(ttl)
	} else {
		s.RerenderTime = time.Time{}
	}
}

// ExpireMessage returns to Normal if a message is showing and its deadline
// has passed. It reports whether the mode changed.
func (s *State) ExpireMessage(now time.Time) bool {
	if !s.Mode.HasMessage() || s.RerenderTime.IsZero() || now.Before(s.RerenderTime) {
		return false
	}
	s.Mode = Normal
	s.RerenderTime = time.Time{}
	return true
}

// PendingCount returns the count being entered, or 0 outside count entry.
func (s *State) PendingCount() int {
	if s.Mode.Kind != ModeMultiNormal {
		return 0
	}
	return s.Register.CurAction.Times
}
