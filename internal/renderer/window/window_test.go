package window

import (
	"bytes"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/riv/internal/imaging"
	"github.com/dshills/riv/internal/input"
	"github.com/dshills/riv/internal/input/key"
	"github.com/dshills/riv/internal/renderer"
	"github.com/dshills/riv/internal/state"
	"github.com/dshills/riv/internal/texture"
)

func TestPackRows(t *testing.T) {
	// 3x2 rect out of a buffer with a 16 byte stride.
	pix := make([]byte, 16+12)
	for i := range pix {
		pix[i] = byte(i)
	}

	got, err := packRows(nil, image.Rect(0, 0, 3, 2), pix, 16, 4)
	if err != nil {
		t.Fatalf("packRows: %v", err)
	}
	want := append(append([]byte{}, pix[0:12]...), pix[16:28]...)
	if !bytes.Equal(got, want) {
		t.Errorf("packRows() = %v, want %v", got, want)
	}
}

func TestPackRowsContiguous(t *testing.T) {
	pix := make([]byte, 24)
	got, err := packRows(nil, image.Rect(0, 0, 3, 2), pix, 12, 4)
	if err != nil {
		t.Fatalf("packRows: %v", err)
	}
	if &got[0] != &pix[0] {
		t.Error("contiguous rows should not be copied")
	}
}

func TestPackRowsShort(t *testing.T) {
	tests := []struct {
		name   string
		pix    int
		stride int
	}{
		{"contiguous", 23, 12},
		{"strided", 27, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := packRows(nil, image.Rect(0, 0, 3, 2), make([]byte, tt.pix), tt.stride, 4)
			if !errors.Is(err, imaging.ErrDataTooSmall) {
				t.Errorf("packRows() error = %v, want ErrDataTooSmall", err)
			}
		})
	}
}

func TestCreateTextureRejects(t *testing.T) {
	b := &Backend{MaxSize: 8}
	tests := []struct {
		name   string
		w, h   int
		format imaging.PixelFormat
	}{
		{"format", 4, 4, imaging.FormatRGBA8},
		{"zero", 0, 4, imaging.TextureFormat},
		{"too large", 9, 4, imaging.TextureFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.CreateTexture(tt.w, tt.h, tt.format, texture.AccessStatic); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   ebiten.Key
		want key.Key
	}{
		{ebiten.KeyEscape, key.KeyEscape},
		{ebiten.KeyPeriod, key.KeyPeriod},
		{ebiten.KeyRight, key.KeyRight},
		{ebiten.KeyPageDown, key.KeyPageDown},
		{ebiten.KeyF11, key.KeyF11},
		{ebiten.KeyJ, key.KeyNone},
		{ebiten.KeyDigit5, key.KeyNone},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAppendText(t *testing.T) {
	tests := []struct {
		name   string
		chars  string
		period bool
		want   string
	}{
		{"plain", "j?", false, "j?"},
		{"period key reported", ".", true, ""},
		{"period from another key", ".", false, "."},
		{"one duplicate dropped", "a..", true, "a."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			for _, ev := range appendText(nil, []rune(tt.chars), tt.period) {
				if ev.Type != input.EventText {
					t.Fatalf("event type = %v, want text", ev.Type)
				}
				got += ev.Text
			}
			if got != tt.want {
				t.Errorf("appendText(%q, %v) = %q, want %q", tt.chars, tt.period, got, tt.want)
			}
		})
	}
}

func TestModifierState(t *testing.T) {
	held := map[ebiten.Key]bool{ebiten.KeyShift: true, ebiten.KeyAlt: true}
	mods := modifierState(func(k ebiten.Key) bool { return held[k] })

	if !mods.Has(key.ModShift) || !mods.Has(key.ModAlt) || mods.Has(key.ModCtrl) {
		t.Errorf("modifierState() = %v", mods)
	}
	if textAllowed(mods) {
		t.Error("Alt should suppress text input")
	}
	if !textAllowed(key.ModShift) {
		t.Error("Shift alone should allow text input")
	}
}

func TestSetGeoMMatchesLayout(t *testing.T) {
	views := []renderer.View{
		{Scale: 1},
		{Scale: 2.5, PanX: 30, PanY: -12, Rotation: state.RotRight},
		{Scale: 0.4, FlipH: true, Rotation: state.RotDown},
		{Scale: 1, FlipV: true, Rotation: state.RotLeft, ActualSize: true},
	}
	for i, v := range views {
		p := renderer.Layout(800, 600, 1024, 768, v)
		var g ebiten.GeoM
		setGeoM(&g, p.Matrix())
		for _, pt := range [][2]float64{{0, 0}, {100, 50}, {1024, 768}} {
			gx, gy := g.Apply(pt[0], pt[1])
			wx, wy := p.ToScreen(pt[0], pt[1])
			if math.Abs(gx-wx) > 1e-6 || math.Abs(gy-wy) > 1e-6 {
				t.Errorf("view %d: GeoM maps %v to (%v,%v), layout to (%v,%v)", i, pt, gx, gy, wx, wy)
			}
		}
	}
}

func TestBarColor(t *testing.T) {
	if c := barColor(renderer.StyleError); c != renderer.ColorRed.RGBA() {
		t.Errorf("barColor(error) = %v", c)
	}
	if c := barColor(renderer.StyleInfobar); c == nil {
		t.Error("barColor(default) = nil")
	}
}
