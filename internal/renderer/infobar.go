package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/riv/internal/state"
)

// Status is what the infobar reports about the session.
type Status struct {
	Path   string
	Index  int // zero-based
	Total  int
	Width  int
	Height int
	// Zoom is the displayed size in percent of actual size.
	Zoom     float64
	Rotation state.RotAngle
	// Pending is the repeat count being entered, 0 when none.
	Pending int
	Camera  string
	Mode    state.Mode
}

// Infobar is one line of status text.
type Infobar struct {
	Left  string
	Right string
	Style Style
}

// NewInfobar composes the infobar for st.
func NewInfobar(st Status) Infobar {
	bar := Infobar{Style: StyleInfobar}

	switch st.Mode.Kind {
	case state.ModeError:
		bar.Left = st.Mode.Message
		bar.Style = StyleError
	case state.ModeSuccess:
		bar.Left = st.Mode.Message
		bar.Style = StyleSuccess
	default:
		if st.Path == "" {
			bar.Left = "no images"
		} else {
			bar.Left = filepath.Base(st.Path)
		}
	}

	var right []string
	if st.Pending > 0 {
		right = append(right, fmt.Sprintf("[%d]", st.Pending))
		if st.Mode.Kind == state.ModeMultiNormal {
			bar.Style = StylePending
		}
	}
	if st.Camera != "" {
		right = append(right, st.Camera)
	}
	if st.Width > 0 && st.Height > 0 {
		right = append(right, fmt.Sprintf("%dx%d", st.Width, st.Height))
	}
	if st.Zoom > 0 {
		right = append(right, fmt.Sprintf("%.0f%%", st.Zoom))
	}
	if st.Rotation != state.RotUp {
		right = append(right, fmt.Sprintf("%d°", st.Rotation.Degrees()))
	}
	if st.Total > 0 {
		right = append(right, fmt.Sprintf("%d/%d", st.Index+1, st.Total))
	}
	bar.Right = strings.Join(right, "  ")
	return bar
}

// Line renders the infobar into exactly width columns. The right side is
// kept whole when possible and the left side is truncated first.
func (b Infobar) Line(width int) string {
	if width <= 0 {
		return ""
	}
	rw := runewidth.StringWidth(b.Right)
	if rw+1 >= width {
		return runewidth.FillRight(runewidth.Truncate(b.Right, width, "…"), width)
	}
	avail := width - rw - 1
	left := runewidth.Truncate(" "+b.Left, avail, "…")
	return runewidth.FillRight(left, avail) + " " + b.Right
}
