// Package mouse provides the mouse event model used by the frontends.
//
// Event carries a button, a press/release/move action and the screen
// position. Window toolkits report releases directly; terminals report the
// set of held buttons, so the terminal frontend feeds each snapshot through a
// Tracker to recover the press and release transitions:
//
//	tracker := mouse.NewTracker()
//	for _, ev := range tracker.Update(pos, buttons, mods, time.Now()) {
//	    if ev.IsRelease(mouse.ButtonLeft) {
//	        // toggle fit
//	    }
//	}
//
// Tracker is safe for concurrent use.
package mouse
