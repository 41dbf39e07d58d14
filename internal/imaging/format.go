package imaging

import "fmt"

// PixelFormat describes how a pixel is laid out in memory.
type PixelFormat uint8

const (
	// FormatUnknown is the zero value and never valid.
	FormatUnknown PixelFormat = iota

	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8

	// FormatRGBA8 is 32-bit RGBA with straight alpha (4 bytes per pixel).
	FormatRGBA8

	// FormatRGBAPremul is 32-bit RGBA with premultiplied alpha (4 bytes per pixel).
	// This is the upload format for textures.
	FormatRGBAPremul

	// FormatBGRA8 is 32-bit BGRA with straight alpha (4 bytes per pixel).
	FormatBGRA8

	formatCount
)

// TextureFormat is the format surfaces are normalized to before upload.
const TextureFormat = FormatRGBAPremul

var formatBytes = [formatCount]int{
	FormatGray8:      1,
	FormatRGBA8:      4,
	FormatRGBAPremul: 4,
	FormatBGRA8:      4,
}

var formatNames = [formatCount]string{
	FormatUnknown:    "unknown",
	FormatGray8:      "gray8",
	FormatRGBA8:      "rgba8",
	FormatRGBAPremul: "rgba8-premul",
	FormatBGRA8:      "bgra8",
}

// IsValid reports whether f is a known format.
func (f PixelFormat) IsValid() bool {
	return f > FormatUnknown && f < formatCount
}

// BytesPerPixel returns the number of bytes per pixel, or 0 for an invalid format.
func (f PixelFormat) BytesPerPixel() int {
	if !f.IsValid() {
		return 0
	}
	return formatBytes[f]
}

// RowBytes returns the minimum stride for a row of width pixels.
func (f PixelFormat) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// HasAlpha reports whether the format carries an alpha channel.
func (f PixelFormat) HasAlpha() bool {
	return f.IsValid() && f != FormatGray8
}

// String returns the format name.
func (f PixelFormat) String() string {
	if f < formatCount {
		return formatNames[f]
	}
	return fmt.Sprintf("PixelFormat(%d)", f)
}
