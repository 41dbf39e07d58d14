package backend

import (
	"context"
	"errors"
	"time"

	"github.com/dshills/riv/internal/renderer"
)

// TickInterval is how often Run calls Viewer.Tick.
const TickInterval = 100 * time.Millisecond

type tick struct{}

type stop struct{}

// Run drives v from the terminal event queue until v quits, the screen is
// shut down or ctx is done. It returns nil on a normal quit.
func Run(ctx context.Context, t *Terminal, v renderer.Viewer) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				_ = t.Interrupt(stop{})
				return
			case <-ticker.C:
				_ = t.Interrupt(tick{}) // dropped when the queue is full
			}
		}
	}()

	t.Draw(v.Frame())
	for {
		events, wake, ok := t.PollEvent()
		if !ok {
			return nil
		}

		redraw := false
		switch wake.(type) {
		case stop:
			return ctx.Err()
		case tick:
			redraw = v.Tick(time.Now())
		}

		for _, ev := range events {
			err := v.HandleEvent(ev)
			if errors.Is(err, renderer.ErrQuit) {
				return nil
			}
			if err != nil {
				return err
			}
			redraw = true
		}

		if redraw {
			t.Draw(v.Frame())
		}
	}
}
