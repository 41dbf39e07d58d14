package imaging

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Info holds metadata about an image file.
type Info struct {
	Width    int
	Height   int
	Format   string
	Size     int64
	ModTime  time.Time
	EXIFData map[string]string
}

// Camera returns the camera model from EXIF, or "".
func (i *Info) Camera() string {
	if i == nil {
		return ""
	}
	return i.EXIFData["Camera Model"]
}

// ReadInfo reads an image file and extracts metadata without decoding the
// pixels.
func ReadInfo(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	info, err := DecodeInfo(data)
	if err != nil {
		return nil, err
	}
	if fi, err := os.Stat(path); err == nil {
		info.ModTime = fi.ModTime()
	}
	return info, nil
}

// DecodeInfo extracts dimensions and EXIF fields from encoded image bytes.
// Missing EXIF data is not an error.
func DecodeInfo(data []byte) (*Info, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image config: %w", err)
	}

	info := &Info{
		Width:    config.Width,
		Height:   config.Height,
		Format:   format,
		Size:     int64(len(data)),
		EXIFData: make(map[string]string),
	}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil || x == nil {
		return info, nil
	}
	if model, err := x.Get(exif.Model); err == nil {
		if s, err := model.StringVal(); err == nil {
			info.EXIFData["Camera Model"] = s
		} else {
			info.EXIFData["Camera Model"] = model.String()
		}
	}
	if fNum, err := x.Get(exif.FNumber); err == nil {
		if numer, denom, err := fNum.Rat2(0); err == nil && denom != 0 {
			info.EXIFData["F-Number"] = fmt.Sprintf("f/%.1f", float64(numer)/float64(denom))
		}
	}
	if expTime, err := x.Get(exif.ExposureTime); err == nil {
		if numer, denom, err := expTime.Rat2(0); err == nil {
			info.EXIFData["Exposure Time"] = fmt.Sprintf("%d/%d s", numer, denom)
		}
	}
	return info, nil
}
