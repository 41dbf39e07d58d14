package window

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/riv/internal/imaging"
	"github.com/dshills/riv/internal/texture"
)

// ErrUnsupportedFormat is returned for textures not in imaging.TextureFormat.
var ErrUnsupportedFormat = errors.New("unsupported texture format")

// Backend creates ebiten images as textures.
type Backend struct {
	// MaxSize rejects textures wider or taller than this when > 0.
	MaxSize int
}

// NewBackend creates a texture backend for the window frontend.
func NewBackend() *Backend {
	return &Backend{MaxSize: 16384}
}

// CreateTexture allocates an ebiten image. Only premultiplied RGBA is
// accepted since that is what WritePixels expects.
func (b *Backend) CreateTexture(width, height int, format imaging.PixelFormat, _ texture.Access) (texture.Texture, error) {
	if format != imaging.TextureFormat {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, imaging.ErrInvalidDimensions
	}
	if b.MaxSize > 0 && (width > b.MaxSize || height > b.MaxSize) {
		return nil, fmt.Errorf("texture %dx%d exceeds %d pixels per side", width, height, b.MaxSize)
	}
	return &Texture{
		img:    ebiten.NewImage(width, height),
		width:  width,
		height: height,
	}, nil
}

// Texture is a GPU image.
type Texture struct {
	img           *ebiten.Image
	width, height int
	buf           []byte
}

// Size returns the texture dimensions.
func (t *Texture) Size() (int, int) {
	return t.width, t.height
}

// Format returns imaging.TextureFormat.
func (t *Texture) Format() imaging.PixelFormat {
	return imaging.TextureFormat
}

// Image returns the ebiten image, nil after Destroy.
func (t *Texture) Image() *ebiten.Image {
	return t.img
}

// Update writes rows of pix into rect.
func (t *Texture) Update(rect image.Rectangle, pix []byte, stride int) error {
	if t.img == nil {
		return texture.ErrDestroyed
	}
	if rect.Empty() || !rect.In(image.Rect(0, 0, t.width, t.height)) {
		return fmt.Errorf("update rect %v outside %dx%d", rect, t.width, t.height)
	}
	data, err := packRows(t.buf, rect, pix, stride, 4)
	if err != nil {
		return err
	}
	if stride != rect.Dx()*4 {
		t.buf = data
	}
	t.img.SubImage(rect).(*ebiten.Image).WritePixels(data)
	return nil
}

// Destroy releases the GPU image.
func (t *Texture) Destroy() {
	if t.img == nil {
		return
	}
	t.img.Deallocate()
	t.img = nil
}

// packRows returns the rows of rect from pix as one contiguous slice. When
// pix is already contiguous it is returned as is; otherwise the rows are
// copied into buf, which is grown as needed.
func packRows(buf []byte, rect image.Rectangle, pix []byte, stride, bpp int) ([]byte, error) {
	rowBytes := rect.Dx() * bpp
	n := rowBytes * rect.Dy()
	if stride == rowBytes {
		if len(pix) < n {
			return buf, imaging.ErrDataTooSmall
		}
		return pix[:n], nil
	}
	if need := (rect.Dy()-1)*stride + rowBytes; len(pix) < need {
		return buf, imaging.ErrDataTooSmall
	}
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	for y := 0; y < rect.Dy(); y++ {
		copy(buf[y*rowBytes:(y+1)*rowBytes], pix[y*stride:y*stride+rowBytes])
	}
	return buf, nil
}
