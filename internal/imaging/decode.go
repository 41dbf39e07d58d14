package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Decode decodes encoded image bytes into a surface and returns the name of
// the detected format ("png", "jpeg", ...). The surface keeps the decoder's
// native layout where one exists; other layouts are converted to
// premultiplied RGBA.
func Decode(data []byte) (*Surface, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("imaging: decode: %w", err)
	}
	s, err := FromImage(img)
	if err != nil {
		return nil, name, err
	}
	return s, name, nil
}

// FromImage converts an image.Image into a surface. Gray, NRGBA and RGBA
// images with an origin at (0, 0) share their pixel buffer.
func FromImage(img image.Image) (*Surface, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidDimensions
	}

	if b.Min == (image.Point{}) {
		switch src := img.(type) {
		case *image.RGBA:
			return FromRaw(src.Pix, b.Dx(), b.Dy(), FormatRGBAPremul, src.Stride)
		case *image.NRGBA:
			return FromRaw(src.Pix, b.Dx(), b.Dy(), FormatRGBA8, src.Stride)
		case *image.Gray:
			return FromRaw(src.Pix, b.Dx(), b.Dy(), FormatGray8, src.Stride)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return FromRaw(dst.Pix, b.Dx(), b.Dy(), FormatRGBAPremul, dst.Stride)
}
