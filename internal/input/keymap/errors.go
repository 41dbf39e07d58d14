package keymap

import "errors"

var (
	// ErrEmptyKeys is returned for a binding with no keys.
	ErrEmptyKeys = errors.New("empty keys")

	// ErrUnknownKey is returned when a multi-character key name is not recognized.
	ErrUnknownKey = errors.New("unknown key name")

	// ErrReservedKey is returned when a binding targets the count digits.
	ErrReservedKey = errors.New("key is reserved for repeat counts")

	// ErrReservedAction is returned when a binding targets an action only
	// produced internally.
	ErrReservedAction = errors.New("action cannot be bound")
)
