package app

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is reported for actions riv recognizes but does not
	// perform, such as file operations.
	ErrUnsupported = errors.New("not supported")

	// ErrClosed is returned by HandleEvent after Close.
	ErrClosed = errors.New("application closed")

	// ErrNoBackend is returned by New without a texture backend.
	ErrNoBackend = errors.New("no texture backend")
)

// OperationError records a failed operation on a path, such as watching an
// image or reloading the config file.
type OperationError struct {
	Op      string // "watch", "reload", ...
	Target  string // image or config path
	Context string
	Err     error
}

// NewOperationError creates an OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// WithContext sets Context and returns e. A nil e stays nil.
func (e *OperationError) WithContext(ctx string) *OperationError {
	if e != nil {
		e.Context = ctx
	}
	return e
}

// Error returns "op target (context): err", leaving out empty parts.
func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg += " " + e.Target
	}
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the same *OperationError or anything the wrapped error
// matches.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}

// ComponentError records a failure inside one part of the viewer: the
// config, the texture cache or a watcher.
type ComponentError struct {
	Component string
	Action    string
	Err       error
}

// NewComponentError creates a ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

// Error returns "component: action: err", leaving out empty parts.
func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Component
	if e.Action != "" {
		msg += ": " + e.Action
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrorList collects errors from steps that should all run, such as the
// parts of Close. It is not safe for concurrent use.
type ErrorList struct {
	errs []error
}

// NewErrorList creates an empty ErrorList.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends err unless it is nil.
func (l *ErrorList) Add(err error) {
	if err != nil {
		l.errs = append(l.errs, err)
	}
}

// HasErrors reports whether any error was added.
func (l *ErrorList) HasErrors() bool {
	return len(l.errs) > 0
}

// Len returns the number of errors.
func (l *ErrorList) Len() int {
	return len(l.errs)
}

// Errors returns a copy of the errors, or nil when empty.
func (l *ErrorList) Errors() []error {
	if l == nil || len(l.errs) == 0 {
		return nil
	}
	return append([]error(nil), l.errs...)
}

// First returns the first error, or nil.
func (l *ErrorList) First() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l.errs[0]
}

// Error returns the only error's message, or a count and the first one.
func (l *ErrorList) Error() string {
	switch {
	case l == nil || len(l.errs) == 0:
		return ""
	case len(l.errs) == 1:
		return l.errs[0].Error()
	}
	return fmt.Sprintf("%d errors: first: %v", len(l.errs), l.errs[0])
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (l *ErrorList) Unwrap() []error {
	return l.Errors()
}

// AsError returns l, or nil when it is empty.
func (l *ErrorList) AsError() error {
	if !l.HasErrors() {
		return nil
	}
	return l
}

// WrapError prefixes err with a formatted message, or returns nil for a
// nil err. format must not contain %w.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
