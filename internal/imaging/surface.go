package imaging

import (
	"image"
	"image/color"
)

// Surface is a decoded image held in memory.
//
// Rows are Stride bytes apart; only the first Format.RowBytes(Width) bytes
// of each row are pixels. Pix may end right after the last pixel of the
// last row, so it can be shorter than Stride*Height.
type Surface struct {
	Width  int
	Height int
	Stride int
	Format PixelFormat
	Pix    []byte
}

// NewSurface allocates a zeroed surface with a tight stride.
func NewSurface(width, height int, format PixelFormat) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	stride := format.RowBytes(width)
	return &Surface{
		Width:  width,
		Height: height,
		Stride: stride,
		Format: format,
		Pix:    make([]byte, stride*height),
	}, nil
}

// FromRaw wraps existing pixel data without copying.
func FromRaw(pix []byte, width, height int, format PixelFormat, stride int) (*Surface, error) {
	s := &Surface{Width: width, Height: height, Stride: stride, Format: format, Pix: pix}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the dimensions, stride and buffer length agree.
func (s *Surface) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return ErrInvalidDimensions
	}
	if !s.Format.IsValid() {
		return ErrInvalidFormat
	}
	if s.Stride < s.Format.RowBytes(s.Width) {
		return ErrInvalidStride
	}
	if len(s.Pix) < s.minLen() {
		return ErrDataTooSmall
	}
	return nil
}

func (s *Surface) minLen() int {
	return (s.Height-1)*s.Stride + s.Format.RowBytes(s.Width)
}

// Bounds returns the surface rectangle with its origin at (0, 0).
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.Width, s.Height)
}

// Pixels returns the number of pixels in the surface.
func (s *Surface) Pixels() int {
	return s.Width * s.Height
}

// Rows returns the bytes holding rows [y0, y1). The slice starts at the
// first pixel of row y0 and ends after the last pixel of row y1-1, clamped
// to the end of Pix. Out of range rows are clipped; an empty range returns nil.
func (s *Surface) Rows(y0, y1 int) []byte {
	if y0 < 0 {
		y0 = 0
	}
	if y1 > s.Height {
		y1 = s.Height
	}
	if y0 >= y1 {
		return nil
	}
	start := y0 * s.Stride
	end := (y1-1)*s.Stride + s.Format.RowBytes(s.Width)
	if end > len(s.Pix) {
		end = len(s.Pix)
	}
	if start >= end {
		return nil
	}
	return s.Pix[start:end]
}

// Image returns an image.Image view of the surface. Gray, RGBA and
// premultiplied RGBA share Pix; BGRA is wrapped in a converting view.
func (s *Surface) Image() image.Image {
	r := s.Bounds()
	switch s.Format {
	case FormatGray8:
		return &image.Gray{Pix: s.Pix, Stride: s.Stride, Rect: r}
	case FormatRGBA8:
		return &image.NRGBA{Pix: s.Pix, Stride: s.Stride, Rect: r}
	case FormatRGBAPremul:
		return &image.RGBA{Pix: s.Pix, Stride: s.Stride, Rect: r}
	case FormatBGRA8:
		return bgraImage{s}
	}
	return image.NewRGBA(image.Rectangle{})
}

// bgraImage adapts a BGRA surface to image.Image.
type bgraImage struct{ s *Surface }

func (b bgraImage) ColorModel() color.Model { return color.NRGBAModel }

func (b bgraImage) Bounds() image.Rectangle { return b.s.Bounds() }

func (b bgraImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(b.s.Bounds()) {
		return color.NRGBA{}
	}
	i := y*b.s.Stride + x*4
	p := b.s.Pix[i : i+4 : i+4]
	return color.NRGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
}
