package state

import "fmt"

// ModeKind identifies how input is interpreted.
type ModeKind uint8

const (
	// ModeNormal interprets each event as a single action.
	ModeNormal ModeKind = iota
	// ModeMultiNormal accumulates a repeat count.
	ModeMultiNormal
	// ModeError shows an error message; input is handled as in Normal.
	ModeError
	// ModeSuccess shows a success message; input is handled as in Normal.
	ModeSuccess
	// ModeExit is terminal: no further events are processed.
	ModeExit
)

// String returns the mode name.
func (k ModeKind) String() string {
	switch k {
	case ModeNormal:
		return "normal"
	case ModeMultiNormal:
		return "multinormal"
	case ModeError:
		return "error"
	case ModeSuccess:
		return "success"
	case ModeExit:
		return "exit"
	default:
		return fmt.Sprintf("ModeKind(%d)", k)
	}
}

// Mode is the current input mode. Message is only used by Error and Success.
type Mode struct {
	Kind    ModeKind
	Message string
}

var (
	// Normal is the default mode.
	Normal = Mode{Kind: ModeNormal}
	// MultiNormal is count entry.
	MultiNormal = Mode{Kind: ModeMultiNormal}
	// Exit is the terminal mode.
	Exit = Mode{Kind: ModeExit}
)

// Error returns an error mode carrying msg.
func Error(msg string) Mode {
	return Mode{Kind: ModeError, Message: msg}
}

// Success returns a success mode carrying msg.
func Success(msg string) Mode {
	return Mode{Kind: ModeSuccess, Message: msg}
}

// HasMessage reports whether the mode displays a transient message.
func (m Mode) HasMessage() bool {
	return m.Kind == ModeError || m.Kind == ModeSuccess
}

// String returns the mode name, with the message for Error and Success.
func (m Mode) String() string {
	if m.HasMessage() {
		return fmt.Sprintf("%s(%q)", m.Kind, m.Message)
	}
	return m.Kind.String()
}

// RotAngle is the image rotation in quarter turns.
type RotAngle uint8

const (
	RotUp RotAngle = iota
	RotRight
	RotDown
	RotLeft
)

// Clockwise returns the next angle when rotating clockwise.
func (r RotAngle) Clockwise() RotAngle {
	return (r + 1) % 4
}

// CounterClockwise returns the next angle when rotating counterclockwise.
func (r RotAngle) CounterClockwise() RotAngle {
	return (r + 3) % 4
}

// Degrees returns the clockwise rotation in degrees.
func (r RotAngle) Degrees() int {
	return int(r%4) * 90
}

// QuarterTurns returns the clockwise rotation in quarter turns.
func (r RotAngle) QuarterTurns() int {
	return int(r % 4)
}

// String returns the angle name.
func (r RotAngle) String() string {
	switch r % 4 {
	case RotRight:
		return "right"
	case RotDown:
		return "down"
	case RotLeft:
		return "left"
	default:
		return "up"
	}
}

// HelpRender selects which help overlay is drawn.
type HelpRender uint8

const (
	HelpNone HelpRender = iota
	HelpNormal
)
