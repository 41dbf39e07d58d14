package renderer

import (
	"errors"
	"time"

	"github.com/dshills/riv/internal/input"
)

// ErrQuit is returned by Viewer.HandleEvent when the session has ended.
var ErrQuit = errors.New("quit")

// Viewer is the application as seen by a frontend. All methods are called
// from the frontend's event loop, one at a time.
type Viewer interface {
	// HandleEvent processes one raw event. It returns ErrQuit once the
	// viewer has entered Exit mode.
	HandleEvent(ev input.Event) error

	// Tick runs time-based work (message expiry, queued reloads) and
	// reports whether the screen needs a redraw.
	Tick(now time.Time) bool

	// Frame loads the displayed image if needed and returns what to draw.
	Frame() Frame
}
