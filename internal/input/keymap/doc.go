// Package keymap manages the mapping between keys and viewer actions.
//
// A Keymap is a named list of bindings. The built-in bindings come from
// DefaultKeymap; user overrides come from the "keys" configuration section
// through FromMap. Build merges keymaps in order into a Table, later keymaps
// replacing earlier bindings for the same keys:
//
//	table, err := keymap.Build(keymap.DefaultKeymap(), keymap.FromMap("user", cfg))
//	a, ok := table.LookupText('j')
//
// Binding keys are either a single character, matched against text input,
// or a key name such as "Home" or "F11", matched against unmodified key
// presses. Digits 1-9 are reserved for repeat counts and cannot be bound.
package keymap
