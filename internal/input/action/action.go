package action

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies an Action variant.
type Kind uint8

const (
	// KindNoop does nothing.
	KindNoop Kind = iota
	KindQuit
	KindReRender
	KindNext
	KindPrev
	KindFirst
	KindLast
	KindSkipForward
	KindSkipBack
	KindToggleFullscreen
	KindToggleFit
	KindToggleInfobar
	KindToggleHelp
	KindCenterImage
	KindFlipHorizontal
	KindFlipVertical
	KindZoom
	KindRotate
	KindPan
	KindCopy
	KindMove
	KindDelete
	KindTrash
	KindCmd
	KindBackspace
	KindRepeatLastAction
	KindDigit
	// KindSwitchMultiNormalMode marks the transition into count entry.
	// It is never produced by the resolver, only by the mode machine.
	KindSwitchMultiNormalMode
)

var kindNames = [...]string{
	KindNoop:                  "noop",
	KindQuit:                  "quit",
	KindReRender:              "rerender",
	KindNext:                  "next",
	KindPrev:                  "prev",
	KindFirst:                 "first",
	KindLast:                  "last",
	KindSkipForward:           "skipForward",
	KindSkipBack:              "skipBack",
	KindToggleFullscreen:      "toggleFullscreen",
	KindToggleFit:             "toggleFit",
	KindToggleInfobar:         "toggleInfobar",
	KindToggleHelp:            "toggleHelp",
	KindCenterImage:           "centerImage",
	KindFlipHorizontal:        "flipHorizontal",
	KindFlipVertical:          "flipVertical",
	KindZoom:                  "zoom",
	KindRotate:                "rotate",
	KindPan:                   "pan",
	KindCopy:                  "copy",
	KindMove:                  "move",
	KindDelete:                "delete",
	KindTrash:                 "trash",
	KindCmd:                   "cmd",
	KindBackspace:             "backspace",
	KindRepeatLastAction:      "repeatLastAction",
	KindDigit:                 "digit",
	KindSwitchMultiNormalMode: "switchMultiNormalMode",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ZoomDirection is the payload of a zoom action.
type ZoomDirection uint8

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

// String returns "in" or "out".
func (z ZoomDirection) String() string {
	if z == ZoomOut {
		return "out"
	}
	return "in"
}

// RotationDirection is the payload of a rotate action.
type RotationDirection uint8

const (
	Clockwise RotationDirection = iota
	CounterClockwise
)

// String returns "cw" or "ccw".
func (r RotationDirection) String() string {
	if r == CounterClockwise {
		return "ccw"
	}
	return "cw"
}

// PanDirection is the payload of a pan action.
type PanDirection uint8

const (
	PanLeft PanDirection = iota
	PanRight
	PanUp
	PanDown
)

// String returns the direction name.
func (p PanDirection) String() string {
	switch p {
	case PanRight:
		return "right"
	case PanUp:
		return "up"
	case PanDown:
		return "down"
	default:
		return "left"
	}
}

// Action is a single semantic user intent. Only the payload field matching
// Kind is meaningful; constructors leave the others zero so that Actions
// compare equal with ==.
type Action struct {
	Kind     Kind
	Zoom     ZoomDirection
	Rotation RotationDirection
	Pan      PanDirection
	Digit    int
}

// New returns a payload-free action of the given kind.
func New(k Kind) Action {
	return Action{Kind: k}
}

// Zoom returns a zoom action.
func Zoom(d ZoomDirection) Action {
	return Action{Kind: KindZoom, Zoom: d}
}

// Rotate returns a rotate action.
func Rotate(d RotationDirection) Action {
	return Action{Kind: KindRotate, Rotation: d}
}

// Pan returns a pan action.
func Pan(d PanDirection) Action {
	return Action{Kind: KindPan, Pan: d}
}

// Digit returns a count digit action. d is expected in 0..9.
func Digit(d int) Action {
	return Action{Kind: KindDigit, Digit: d}
}

// Noop is the zero action.
var Noop = Action{}

// String returns a readable form such as "zoom(in)" or "digit(3)".
func (a Action) String() string {
	switch a.Kind {
	case KindZoom:
		return "zoom(" + a.Zoom.String() + ")"
	case KindRotate:
		return "rotate(" + a.Rotation.String() + ")"
	case KindPan:
		return "pan(" + a.Pan.String() + ")"
	case KindDigit:
		return fmt.Sprintf("digit(%d)", a.Digit)
	default:
		return a.Kind.String()
	}
}

// IsFileOperation reports whether the action operates on the file itself
// rather than on the view.
func (a Action) IsFileOperation() bool {
	switch a.Kind {
	case KindCopy, KindMove, KindDelete, KindTrash, KindCmd:
		return true
	}
	return false
}

// IsNavigation reports whether the action changes the displayed index.
func (a Action) IsNavigation() bool {
	switch a.Kind {
	case KindNext, KindPrev, KindFirst, KindLast, KindSkipForward, KindSkipBack:
		return true
	}
	return false
}

// Parse returns the action named by s. Names are the String forms, matched
// case-insensitively, with the payload in parentheses: "next", "zoom(in)",
// "pan(left)", "rotate(ccw)".
func Parse(s string) (Action, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	arg := ""
	if i := strings.IndexByte(name, '('); i >= 0 {
		if !strings.HasSuffix(name, ")") {
			return Noop, fmt.Errorf("%w: %q", ErrUnknownAction, s)
		}
		arg = strings.TrimSpace(name[i+1 : len(name)-1])
		name = strings.TrimSpace(name[:i])
	}

	var kind Kind
	found := false
	for k, n := range kindNames {
		if strings.ToLower(n) == name {
			kind = Kind(k)
			found = true
			break
		}
	}
	if !found || kind == KindSwitchMultiNormalMode {
		return Noop, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}

	switch kind {
	case KindZoom:
		switch arg {
		case "in":
			return Zoom(ZoomIn), nil
		case "out":
			return Zoom(ZoomOut), nil
		}
	case KindRotate:
		switch arg {
		case "cw", "clockwise":
			return Rotate(Clockwise), nil
		case "ccw", "counterclockwise":
			return Rotate(CounterClockwise), nil
		}
	case KindPan:
		switch arg {
		case "left":
			return Pan(PanLeft), nil
		case "right":
			return Pan(PanRight), nil
		case "up":
			return Pan(PanUp), nil
		case "down":
			return Pan(PanDown), nil
		}
	case KindDigit:
		if len(arg) == 1 && arg[0] >= '0' && arg[0] <= '9' {
			return Digit(int(arg[0] - '0')), nil
		}
	default:
		if arg == "" {
			return New(kind), nil
		}
	}
	return Noop, fmt.Errorf("%w: %q", ErrBadArgument, s)
}

// ProcessAction pairs an action with a repeat count.
type ProcessAction struct {
	Action Action
	Times  int
}

// Once wraps a with a repeat count of 1.
func Once(a Action) ProcessAction {
	return ProcessAction{Action: a, Times: 1}
}

// Repeat wraps a with the given count, raising counts below 1 to 1.
func Repeat(a Action, times int) ProcessAction {
	if times < 1 {
		times = 1
	}
	return ProcessAction{Action: a, Times: times}
}

// Count returns Times, treating non-positive values as 1.
func (p ProcessAction) Count() int {
	if p.Times < 1 {
		return 1
	}
	return p.Times
}

// String returns "next" or "next x3".
func (p ProcessAction) String() string {
	if p.Times <= 1 {
		return p.Action.String()
	}
	return fmt.Sprintf("%s x%d", p.Action, p.Times)
}

// Accumulate appends the decimal digit d to times, saturating at
// math.MaxInt instead of wrapping.
func Accumulate(times, d int) int {
	if times < 0 {
		times = 0
	}
	if d < 0 {
		d = 0
	}
	if times > math.MaxInt/10 {
		return math.MaxInt
	}
	times *= 10
	if times > math.MaxInt-d {
		return math.MaxInt
	}
	return times + d
}

// MultiNormalKind identifies a MultiNormalAction variant.
type MultiNormalKind uint8

const (
	// MoreInput means the count is still being entered.
	MoreInput MultiNormalKind = iota
	// RepeatAction means the count is final and Process is ready to run.
	RepeatAction
	SwitchBackNormalMode
	Cancel
	MultiQuit
	MultiNoop
	MultiReRender
)

var multiNames = [...]string{
	MoreInput:            "moreInput",
	RepeatAction:         "repeat",
	SwitchBackNormalMode: "switchBackNormalMode",
	Cancel:               "cancel",
	MultiQuit:            "quit",
	MultiNoop:            "noop",
	MultiReRender:        "rerender",
}

// String returns the variant name.
func (k MultiNormalKind) String() string {
	if int(k) < len(multiNames) {
		return multiNames[k]
	}
	return fmt.Sprintf("MultiNormalKind(%d)", k)
}

// MultiNormalAction is the result of processing an event during count entry.
// Process is only set for RepeatAction.
type MultiNormalAction struct {
	Kind    MultiNormalKind
	Process ProcessAction
}

// MultiRepeat returns a RepeatAction result carrying p.
func MultiRepeat(p ProcessAction) MultiNormalAction {
	return MultiNormalAction{Kind: RepeatAction, Process: p}
}

// String returns a readable form such as "repeat(next x25)".
func (m MultiNormalAction) String() string {
	if m.Kind == RepeatAction {
		return "repeat(" + m.Process.String() + ")"
	}
	return m.Kind.String()
}
