// Package input turns raw frontend events into viewer actions.
//
// Frontends (the tcell terminal and the ebiten window) translate their
// native events into Event values. Resolver maps each Event to exactly one
// action.Action:
//
//   - text input is looked up by character; digits 1-9 become count digits
//   - key presses with Shift resolve to Pan for arrows and Noop otherwise,
//     before any binding is consulted
//   - unmodified key presses are looked up by key name
//   - exposed, resized and maximized windows resolve to ReRender
//   - releasing the left mouse button resolves to ToggleFit
//
// Everything else is Noop. Bindings live in the keymap package so that the
// configuration can override them.
//
//	r := input.DefaultResolver()
//	a := r.Resolve(input.TextEvent("j")) // next
package input
