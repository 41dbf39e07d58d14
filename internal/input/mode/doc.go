// Package mode implements the viewer's input mode machine.
//
// In Normal mode every event becomes one action. Typing a digit enters
// MultiNormal mode, where further digits build a repeat count and the next
// action is returned paired with that count ("25j" moves forward 25 images).
// The period key replays the last recorded action; during count entry it
// replays it with the new count.
//
// Error and Success modes display a message and otherwise behave like
// Normal. Exit is terminal: Handle returns Quit for every event.
//
//	m := mode.NewMachine(input.DefaultResolver())
//	s := state.New()
//	pa := m.Handle(s, ev)
package mode
