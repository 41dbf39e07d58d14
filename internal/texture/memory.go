package texture

import (
	"errors"
	"fmt"
	"image"

	"github.com/dshills/riv/internal/imaging"
)

// ErrDestroyed is returned when updating a destroyed texture.
var ErrDestroyed = errors.New("texture destroyed")

// MemTexture is a texture kept in main memory. Frontends without a GPU
// draw from it directly.
type MemTexture struct {
	surface   *imaging.Surface
	destroyed bool
	updates   int
	onDestroy func()
}

// MemBackend creates MemTextures.
type MemBackend struct {
	// MaxPixels rejects textures larger than this many pixels when > 0.
	MaxPixels int

	created int
	live    int
}

// NewMemBackend creates an in-memory backend.
func NewMemBackend() *MemBackend {
	return &MemBackend{}
}

// CreateTexture allocates a zeroed texture.
func (b *MemBackend) CreateTexture(width, height int, format imaging.PixelFormat, _ Access) (Texture, error) {
	if b.MaxPixels > 0 && width*height > b.MaxPixels {
		return nil, fmt.Errorf("texture %dx%d exceeds %d pixels", width, height, b.MaxPixels)
	}
	s, err := imaging.NewSurface(width, height, format)
	if err != nil {
		return nil, err
	}
	b.created++
	b.live++
	return &MemTexture{surface: s, onDestroy: b.release}, nil
}

func (b *MemBackend) release() {
	b.live--
}

// Created returns the number of textures created.
func (b *MemBackend) Created() int { return b.created }

// Live returns the number of textures not yet destroyed.
func (b *MemBackend) Live() int { return b.live }

// Size returns the texture dimensions.
func (t *MemTexture) Size() (int, int) {
	return t.surface.Width, t.surface.Height
}

// Format returns the texture pixel format.
func (t *MemTexture) Format() imaging.PixelFormat {
	return t.surface.Format
}

// Update copies rows of pix into rect.
func (t *MemTexture) Update(rect image.Rectangle, pix []byte, stride int) error {
	if t.destroyed {
		return ErrDestroyed
	}
	if !rect.In(t.surface.Bounds()) || rect.Empty() {
		return fmt.Errorf("update rect %v outside %v", rect, t.surface.Bounds())
	}
	bpp := t.surface.Format.BytesPerPixel()
	rowBytes := rect.Dx() * bpp
	for y := 0; y < rect.Dy(); y++ {
		src := y * stride
		if src+rowBytes > len(pix) {
			return fmt.Errorf("row %d: %w", rect.Min.Y+y, imaging.ErrDataTooSmall)
		}
		dst := (rect.Min.Y+y)*t.surface.Stride + rect.Min.X*bpp
		copy(t.surface.Pix[dst:dst+rowBytes], pix[src:src+rowBytes])
	}
	t.updates++
	return nil
}

// Destroy releases the texture.
func (t *MemTexture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if t.onDestroy != nil {
		t.onDestroy()
	}
}

// Destroyed reports whether Destroy was called.
func (t *MemTexture) Destroyed() bool { return t.destroyed }

// Updates returns the number of successful Update calls.
func (t *MemTexture) Updates() int { return t.updates }

// Surface returns the texture contents.
func (t *MemTexture) Surface() *imaging.Surface { return t.surface }
