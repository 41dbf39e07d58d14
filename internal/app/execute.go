package app

import (
	"github.com/dshills/riv/internal/input/action"
	"github.com/dshills/riv/internal/renderer"
)

// execute applies pa to the session. Transforms change the state directly;
// navigation only moves the index and the next Frame loads the texture.
func (a *Application) execute(pa action.ProcessAction) error {
	times := pa.Count()

	switch pa.Action.Kind {
	case action.KindQuit:
		a.machine.Quit(a.state)
		return renderer.ErrQuit

	case action.KindNext:
		a.moveBy(times)
	case action.KindPrev:
		a.moveBy(-times)
	case action.KindFirst:
		a.moveTo(0)
	case action.KindLast:
		a.moveTo(len(a.paths) - 1)
	case action.KindSkipForward:
		a.skip(times)
	case action.KindSkipBack:
		a.skip(-times)

	case action.KindToggleFullscreen:
		if times%2 == 1 {
			a.state.Fullscreen = !a.state.Fullscreen
		}
	case action.KindToggleFit:
		if times%2 == 1 {
			a.state.ActualSize = !a.state.ActualSize
		}
	// Only reached with a count; without one the machine toggles these.
	case action.KindToggleHelp:
		if times%2 == 1 {
			a.state.ToggleHelp()
		}
	case action.KindToggleInfobar:
		if times%2 == 1 {
			a.state.ToggleInfobar()
		}

	case action.KindCenterImage:
		a.state.Center()
	case action.KindFlipHorizontal:
		a.state.FlipH(times)
	case action.KindFlipVertical:
		a.state.FlipV(times)
	case action.KindZoom:
		if pa.Action.Zoom == action.ZoomIn {
			a.state.ZoomIn(pa.Times)
		} else {
			a.state.ZoomOut(pa.Times)
		}
	case action.KindRotate:
		if pa.Action.Rotation == action.Clockwise {
			a.state.RotateClockwise(times)
		} else {
			a.state.RotateCounterClockwise(times)
		}
	case action.KindPan:
		a.state.Pan(pa.Action.Pan, a.settings.panStep, times)

	case action.KindCopy, action.KindMove, action.KindDelete, action.KindTrash, action.KindCmd:
		err := WrapError(ErrUnsupported, "%s", pa.Action)
		a.logger.Info("%v", err)
		a.showError(err.Error())
	}
	return nil
}

// moveBy moves the index by delta, clamped to the path list.
func (a *Application) moveBy(delta int) {
	a.moveTo(clampAdd(a.index, delta, len(a.paths)))
}

// skip moves times strides of skipPercent of the list length, at least one
// image per stride.
func (a *Application) skip(times int) {
	n := len(a.paths)
	if n == 0 {
		return
	}
	stride := max(1, n*a.settings.skipPercent/100)
	steps := times
	if steps > n || steps < -n {
		// Any count past the list length lands on an end.
		steps = n * sign(steps)
	}
	a.moveBy(stride * steps)
}

// moveTo displays index i. A different image starts with the default
// view.
func (a *Application) moveTo(i int) {
	if len(a.paths) == 0 {
		return
	}
	i = min(max(i, 0), len(a.paths)-1)
	if i == a.index {
		return
	}
	a.index = i
	a.failed = -1
	a.state.ResetView()
}

// clampAdd returns i+delta clamped to [0, n-1] without overflowing.
func clampAdd(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	switch {
	case delta > 0 && delta >= n-i:
		return n - 1
	case delta < 0 && -delta >= i:
		return 0
	}
	return i + delta
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
