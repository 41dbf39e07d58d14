package texture

import (
	"image"
	"os"

	"github.com/dshills/riv/internal/imaging"
)

// Access describes how a texture will be updated.
type Access uint8

const (
	// AccessStatic textures are written once after creation.
	AccessStatic Access = iota
	// AccessStreaming textures are rewritten often.
	AccessStreaming
)

// String returns the access name.
func (a Access) String() string {
	if a == AccessStreaming {
		return "streaming"
	}
	return "static"
}

// Texture is a backend-resident image.
type Texture interface {
	// Size returns the texture dimensions in pixels.
	Size() (width, height int)

	// Format returns the pixel format the texture was created with.
	Format() imaging.PixelFormat

	// Update copies pixels into rect. pix starts at the first pixel of
	// rect and rows are stride bytes apart.
	Update(rect image.Rectangle, pix []byte, stride int) error

	// Destroy releases the texture. It is safe to call more than once.
	Destroy()
}

// Backend creates textures.
type Backend interface {
	CreateTexture(width, height int, format imaging.PixelFormat, access Access) (Texture, error)
}

// Source reads encoded image files.
type Source interface {
	ReadFile(path string) ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(path string) ([]byte, error)

// ReadFile calls f(path).
func (f SourceFunc) ReadFile(path string) ([]byte, error) { return f(path) }

// FileSource reads from the local file system.
var FileSource Source = SourceFunc(os.ReadFile)

// Decoder turns encoded bytes into a surface ready for upload.
type Decoder interface {
	Decode(data []byte) (*imaging.Surface, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(data []byte) (*imaging.Surface, error)

// Decode calls f(data).
func (f DecoderFunc) Decode(data []byte) (*imaging.Surface, error) { return f(data) }

// ImageDecoder decodes with the imaging package and normalizes the result
// to imaging.TextureFormat.
var ImageDecoder Decoder = DecoderFunc(func(data []byte) (*imaging.Surface, error) {
	s, _, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	return imaging.Convert(s, imaging.TextureFormat)
})
