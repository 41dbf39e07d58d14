package texture

import (
	"errors"
	"fmt"
)

// Error classes. A LoadError matches exactly one of these with errors.Is.
var (
	// ErrRead is returned when the image file cannot be read.
	ErrRead = errors.New("read failed")

	// ErrDecode is returned when the image data cannot be decoded.
	ErrDecode = errors.New("decode failed")

	// ErrBackend is returned when texture creation or upload fails.
	ErrBackend = errors.New("backend failed")

	// ErrInvalidIndex is returned for negative indices.
	ErrInvalidIndex = errors.New("invalid index")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("cache closed")
)

// Op names the load stage that failed.
type Op string

const (
	OpRead    Op = "read"
	OpDecode  Op = "decode"
	OpTexture Op = "create texture"
	OpUpload  Op = "upload"
)

// class returns the error class for the stage.
func (op Op) class() error {
	switch op {
	case OpRead:
		return ErrRead
	case OpDecode:
		return ErrDecode
	default:
		return ErrBackend
	}
}

// LoadError describes a failed LoadForIndex call.
type LoadError struct {
	Op    Op
	Path  string
	Index int
	Err   error
}

func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s %s (index %d)", e.Op, e.Path, e.Index)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the error class and the underlying error, so errors.Is
// matches both ErrRead and, say, fs.ErrNotExist.
func (e *LoadError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Err == nil {
		return []error{e.Op.class()}
	}
	return []error{e.Op.class(), e.Err}
}

// IsBackend reports whether err is a backend failure, which may mean the
// graphics environment is unusable.
func IsBackend(err error) bool {
	return errors.Is(err, ErrBackend)
}
