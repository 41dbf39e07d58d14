package renderer

import "github.com/dshills/riv/internal/texture"

// Frame is everything a frontend needs to draw one screen.
type Frame struct {
	// Texture is the displayed image, nil when there is none.
	Texture    texture.Texture
	View       View
	Background Color

	// Status is nil when the infobar is hidden. Frontends fill in Zoom
	// from their own layout.
	Status *Status
	// Help is empty when the overlay is hidden.
	Help []string

	Fullscreen bool
}

// Infobar composes the infobar for p, or returns nil when hidden.
func (f Frame) Infobar(p Placement) *Infobar {
	if f.Status == nil {
		return nil
	}
	st := *f.Status
	if !p.Empty() {
		st.Zoom = p.ZoomPercent()
	}
	bar := NewInfobar(st)
	return &bar
}
