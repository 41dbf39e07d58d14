package texture

import (
	"fmt"
	"image"

	"github.com/dshills/riv/internal/imaging"
)

// DefaultChunkPixels is the default upload budget in pixels per call.
const DefaultChunkPixels = 1 << 20

// PlanChunks splits a width x height surface into row bands so that no
// band holds much more than budget pixels.
//
// The band count is total/budget clamped to [1, height]. Every band has
// ceil(height/count) rows except the last, which ends at height. The bands
// cover each row exactly once.
func PlanChunks(width, height, budget int) []image.Rectangle {
	if width <= 0 || height <= 0 {
		return nil
	}
	if budget <= 0 {
		budget = DefaultChunkPixels
	}

	count := width * height / budget
	if count < 1 {
		count = 1
	}
	if count > height {
		count = height
	}
	rows := (height + count - 1) / count

	chunks := make([]image.Rectangle, 0, count)
	for y := 0; y < height; y += rows {
		end := y + rows
		if end > height {
			end = height
		}
		chunks = append(chunks, image.Rect(0, y, width, end))
	}
	return chunks
}

// Upload writes s into tex band by band and returns the number of bands
// written. s must match the texture size.
func Upload(tex Texture, s *imaging.Surface, budget int) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if w, h := tex.Size(); w != s.Width || h != s.Height {
		return 0, fmt.Errorf("surface %dx%d does not match texture %dx%d", s.Width, s.Height, w, h)
	}

	n := 0
	for _, r := range PlanChunks(s.Width, s.Height, budget) {
		pix := s.Rows(r.Min.Y, r.Max.Y)
		if err := tex.Update(r, pix, s.Stride); err != nil {
			return n, fmt.Errorf("rows %d-%d: %w", r.Min.Y, r.Max.Y, err)
		}
		n++
	}
	return n, nil
}
