// Package key provides the keyboard event model shared by the frontends and
// the action resolver.
//
// Keyboard input arrives in two shapes:
//
//   - Text input: the character a key press produced, after keyboard layout
//     and Shift are applied ("j", "J", "?"). Text is carried by
//     input.Event and resolved through the character table.
//   - Key presses: a physical key identified by Key plus the Modifier state
//     (arrows, Home/End, F11, Escape, Period). These are carried as Event.
//
// Frontends that only see characters (terminals) synthesize key presses for
// named keys such as Period. Period is also bound as text, so a '.' from any
// keyboard layout repeats the last action.
package key
