package renderer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit color or the frontend's default color.
type Color struct {
	R, G, B uint8
	// Default means the terminal or window default.
	Default bool
}

// ColorDefault represents the frontend's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack  = Color{R: 0, G: 0, B: 0}
	ColorWhite  = Color{R: 255, G: 255, B: 255}
	ColorRed    = Color{R: 205, G: 49, B: 49}
	ColorGreen  = Color{R: 13, G: 188, B: 121}
	ColorYellow = Color{R: 229, G: 229, B: 16}
	ColorGray   = Color{R: 128, G: 128, B: 128}
)

// ColorFromRGB creates a color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex parses "#RGB", "#RRGGBB", "RGB" or "RRGGBB".
// "default" and "" return ColorDefault.
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" || strings.EqualFold(hex, "default") {
		return ColorDefault, nil
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	return fromColorful(c), nil
}

// ColorFromStd converts a standard library color, dropping alpha.
func ColorFromStd(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// IsDefault returns true if this is the default color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default || other.Default {
		return c.Default == other.Default
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// RGBA returns the color as an opaque color.RGBA. The default color maps
// to black.
func (c Color) RGBA() color.RGBA {
	if c.Default {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// String returns "#RRGGBB" or "default".
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend blends two colors in RGB space.
// Amount 0.0 = c, 1.0 = other.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	return fromColorful(c.colorful().BlendRgb(other.colorful(), amount))
}

// Over composites a premultiplied pixel over c.
func (c Color) Over(px color.RGBA) Color {
	if px.A == 0xff {
		return Color{R: px.R, G: px.G, B: px.B}
	}
	bg := c
	if bg.Default {
		bg = ColorBlack
	}
	inv := uint32(0xff - px.A)
	return Color{
		R: uint8(uint32(px.R) + uint32(bg.R)*inv/0xff),
		G: uint8(uint32(px.G) + uint32(bg.G)*inv/0xff),
		B: uint8(uint32(px.B) + uint32(bg.B)*inv/0xff),
	}
}

// Contrast returns black or white, whichever reads better on c.
func (c Color) Contrast() Color {
	if c.Default {
		return ColorDefault
	}
	l, _, _ := c.colorful().Lab()
	if l > 0.6 {
		return ColorBlack
	}
	return ColorWhite
}
