package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestPixelFormat(t *testing.T) {
	tests := []struct {
		format PixelFormat
		bpp    int
		alpha  bool
		name   string
	}{
		{FormatGray8, 1, false, "gray8"},
		{FormatRGBA8, 4, true, "rgba8"},
		{FormatRGBAPremul, 4, true, "rgba8-premul"},
		{FormatBGRA8, 4, true, "bgra8"},
		{FormatUnknown, 0, false, "unknown"},
		{PixelFormat(99), 0, false, "PixelFormat(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format.BytesPerPixel(); got != tt.bpp {
				t.Errorf("BytesPerPixel() = %d, want %d", got, tt.bpp)
			}
			if got := tt.format.HasAlpha(); got != tt.alpha {
				t.Errorf("HasAlpha() = %v, want %v", got, tt.alpha)
			}
			if got := tt.format.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}
	if got := FormatRGBA8.RowBytes(10); got != 40 {
		t.Errorf("RowBytes(10) = %d, want 40", got)
	}
}

func TestSurfaceValidate(t *testing.T) {
	tests := []struct {
		name string
		s    Surface
		want error
	}{
		{"ok", Surface{Width: 2, Height: 2, Stride: 8, Format: FormatRGBA8, Pix: make([]byte, 16)}, nil},
		{"padded stride short tail", Surface{Width: 2, Height: 2, Stride: 12, Format: FormatRGBA8, Pix: make([]byte, 20)}, nil},
		{"zero width", Surface{Width: 0, Height: 2, Stride: 8, Format: FormatRGBA8}, ErrInvalidDimensions},
		{"bad format", Surface{Width: 1, Height: 1, Stride: 4, Format: FormatUnknown, Pix: make([]byte, 4)}, ErrInvalidFormat},
		{"small stride", Surface{Width: 2, Height: 1, Stride: 4, Format: FormatRGBA8, Pix: make([]byte, 8)}, ErrInvalidStride},
		{"short data", Surface{Width: 2, Height: 2, Stride: 8, Format: FormatRGBA8, Pix: make([]byte, 15)}, ErrDataTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.s.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSurfaceRows(t *testing.T) {
	// 3 rows, stride 12, 8 pixel bytes per row, last row not padded.
	pix := make([]byte, 12*2+8)
	for i := range pix {
		pix[i] = byte(i)
	}
	s, err := FromRaw(pix, 2, 3, FormatRGBA8, 12)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}

	tests := []struct {
		name       string
		y0, y1     int
		start, end int
	}{
		{"first row", 0, 1, 0, 8},
		{"middle rows", 1, 3, 12, 32},
		{"all", 0, 3, 0, 32},
		{"past end clipped", 2, 10, 24, 32},
		{"negative start clipped", -5, 1, 0, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Rows(tt.y0, tt.y1)
			want := pix[tt.start:tt.end]
			if !bytes.Equal(got, want) {
				t.Errorf("Rows(%d, %d) = %d bytes, want pix[%d:%d]", tt.y0, tt.y1, len(got), tt.start, tt.end)
			}
		})
	}

	if got := s.Rows(2, 2); got != nil {
		t.Errorf("empty range = %v, want nil", got)
	}
	if got := s.Rows(5, 9); got != nil {
		t.Errorf("out of range = %v, want nil", got)
	}
}

func TestDecodeFormats(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(1, 1, color.Gray{Y: 200})

	translucent := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	translucent.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 128})

	opaque := image.NewRGBA(image.Rect(0, 0, 5, 3))
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}

	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, opaque, nil); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}

	tests := []struct {
		name   string
		data   []byte
		format PixelFormat
		w, h   int
		kind   string
	}{
		{"gray png", encodePNG(t, gray), FormatGray8, 3, 2, "png"},
		{"translucent png", encodePNG(t, translucent), FormatRGBA8, 4, 4, "png"},
		{"opaque png", encodePNG(t, opaque), FormatRGBAPremul, 5, 3, "png"},
		{"jpeg", jpg.Bytes(), FormatRGBAPremul, 5, 3, "jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, kind, err := Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if kind != tt.kind {
				t.Errorf("kind = %q, want %q", kind, tt.kind)
			}
			if s.Format != tt.format {
				t.Errorf("Format = %v, want %v", s.Format, tt.format)
			}
			if s.Width != tt.w || s.Height != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", s.Width, s.Height, tt.w, tt.h)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, _, err := Decode(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("Decode(nil) = %v, want ErrEmptyData", err)
	}
	if _, _, err := Decode([]byte("definitely not an image")); !errors.Is(err, image.ErrFormat) {
		t.Errorf("Decode(garbage) = %v, want image.ErrFormat", err)
	}
}

func TestFromImageOffsetOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(2, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	sub := src.SubImage(image.Rect(2, 2, 4, 4))

	s, err := FromImage(sub)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if s.Width != 2 || s.Height != 2 || s.Format != FormatRGBAPremul {
		t.Fatalf("surface = %dx%d %v", s.Width, s.Height, s.Format)
	}
	if got := s.Pix[:4]; !bytes.Equal(got, []byte{10, 20, 30, 255}) {
		t.Errorf("first pixel = %v, want [10 20 30 255]", got)
	}
}

func TestConvert(t *testing.T) {
	src, err := FromRaw([]byte{
		255, 0, 0, 255, 0, 255, 0, 128,
	}, 2, 1, FormatRGBA8, 8)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}

	same, err := Convert(src, FormatRGBA8)
	if err != nil || same != src {
		t.Fatalf("Convert to same format = (%p, %v), want original", same, err)
	}

	premul, err := Convert(src, FormatRGBAPremul)
	if err != nil {
		t.Fatalf("Convert premul: %v", err)
	}
	if premul.Format != FormatRGBAPremul || premul.Stride != 8 {
		t.Errorf("premul = %v stride %d", premul.Format, premul.Stride)
	}
	if got := premul.Pix[4:8]; got[1] != 128 || got[3] != 128 {
		t.Errorf("premultiplied green = %v, want G=128 A=128", got)
	}

	bgra, err := Convert(src, FormatBGRA8)
	if err != nil {
		t.Fatalf("Convert bgra: %v", err)
	}
	if got := bgra.Pix[:4]; !bytes.Equal(got, []byte{0, 0, 255, 255}) {
		t.Errorf("bgra red = %v, want [0 0 255 255]", got)
	}

	back, err := Convert(bgra, FormatRGBA8)
	if err != nil {
		t.Fatalf("Convert back: %v", err)
	}
	if !bytes.Equal(back.Pix, src.Pix) {
		t.Errorf("round trip = %v, want %v", back.Pix, src.Pix)
	}

	gray, err := Convert(src, FormatGray8)
	if err != nil {
		t.Fatalf("Convert gray: %v", err)
	}
	if len(gray.Pix) != 2 || gray.Stride != 2 {
		t.Errorf("gray = %d bytes stride %d", len(gray.Pix), gray.Stride)
	}

	if _, err := Convert(src, FormatUnknown); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Convert(unknown) = %v, want ErrInvalidFormat", err)
	}
	if _, err := Convert(&Surface{}, FormatRGBA8); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Convert(empty) = %v, want ErrInvalidDimensions", err)
	}
}

func TestReadInfo(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 7, 3))
	data := encodePNG(t, img)
	path := filepath.Join(t.TempDir(), "a.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo: %v", err)
	}
	if info.Width != 7 || info.Height != 3 || info.Format != "png" {
		t.Errorf("info = %+v", info)
	}
	if info.Size != int64(len(data)) {
		t.Errorf("Size = %d, want %d", info.Size, len(data))
	}
	if info.ModTime.IsZero() {
		t.Error("ModTime not set")
	}
	if info.Camera() != "" {
		t.Errorf("Camera() = %q, want empty", info.Camera())
	}

	if _, err := ReadInfo(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadInfo(missing) = %v, want ErrNotExist", err)
	}
	if _, err := DecodeInfo(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DecodeInfo(nil) = %v, want ErrEmptyData", err)
	}
}
