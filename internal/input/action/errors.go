package action

import "errors"

var (
	// ErrUnknownAction is returned by Parse for names outside the vocabulary.
	ErrUnknownAction = errors.New("unknown action")

	// ErrBadArgument is returned by Parse when the payload is missing or invalid.
	ErrBadArgument = errors.New("invalid action argument")
)
