package imaging

import "errors"

var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("imaging: invalid dimensions")

	// ErrInvalidFormat is returned when the pixel format is not recognized.
	ErrInvalidFormat = errors.New("imaging: invalid pixel format")

	// ErrInvalidStride is returned when stride is less than the row size.
	ErrInvalidStride = errors.New("imaging: stride too small for width")

	// ErrDataTooSmall is returned when the pixel buffer is shorter than required.
	ErrDataTooSmall = errors.New("imaging: data buffer too small")

	// ErrEmptyData is returned when there are no bytes to decode.
	ErrEmptyData = errors.New("imaging: empty data")
)
