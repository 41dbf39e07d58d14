package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// Convert returns s in the target pixel format. When s already has that
// format it is returned as is; otherwise a new tightly packed surface is
// allocated.
func Convert(s *Surface, target PixelFormat) (*Surface, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !target.IsValid() {
		return nil, ErrInvalidFormat
	}
	if s.Format == target {
		return s, nil
	}

	r := s.Bounds()
	src := s.Image()
	switch target {
	case FormatGray8:
		dst := image.NewGray(r)
		draw.Draw(dst, r, src, image.Point{}, draw.Src)
		return FromRaw(dst.Pix, s.Width, s.Height, target, dst.Stride)
	case FormatRGBA8:
		dst := image.NewNRGBA(r)
		draw.Draw(dst, r, src, image.Point{}, draw.Src)
		return FromRaw(dst.Pix, s.Width, s.Height, target, dst.Stride)
	case FormatRGBAPremul:
		dst := image.NewRGBA(r)
		draw.Draw(dst, r, src, image.Point{}, draw.Src)
		return FromRaw(dst.Pix, s.Width, s.Height, target, dst.Stride)
	default:
		dst := image.NewNRGBA(r)
		draw.Draw(dst, r, src, image.Point{}, draw.Src)
		for i := 0; i+3 < len(dst.Pix); i += 4 {
			dst.Pix[i], dst.Pix[i+2] = dst.Pix[i+2], dst.Pix[i]
		}
		return FromRaw(dst.Pix, s.Width, s.Height, FormatBGRA8, dst.Stride)
	}
}
