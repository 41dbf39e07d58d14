package renderer

import (
	"image"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/dshills/riv/internal/state"
)

// View holds the view parameters of the session state.
type View struct {
	Scale      float64
	PanX, PanY float64
	Rotation   state.RotAngle
	FlipH      bool
	FlipV      bool
	ActualSize bool
}

// ViewOf extracts the view parameters from s.
func ViewOf(s *state.State) View {
	return View{
		Scale:      s.Scale,
		PanX:       s.PanX,
		PanY:       s.PanY,
		Rotation:   s.RotAngle,
		FlipH:      s.FlipHorizontal,
		FlipV:      s.FlipVertical,
		ActualSize: s.ActualSize,
	}
}

// WithPanScale returns v with the pan offset multiplied by f. Frontends
// whose pixels are not screen pixels use it to keep pan steps usable.
func (v View) WithPanScale(f float64) View {
	v.PanX *= f
	v.PanY *= f
	return v
}

// Placement is where an image lands on screen.
type Placement struct {
	// ImageW and ImageH are the source dimensions.
	ImageW, ImageH int
	// Scale maps image pixels to screen pixels.
	Scale float64

	m   f64.Aff3 // image -> screen
	inv f64.Aff3 // screen -> image
}

// quarter[q] is the rotation matrix {a, b, d, e} for q clockwise quarter
// turns with y pointing down.
var quarter = [4][4]float64{
	{1, 0, 0, 1},
	{0, -1, 1, 0},
	{-1, 0, 0, -1},
	{0, 1, -1, 0},
}

// Layout places an imageW x imageH image in a screenW x screenH viewport.
//
// In fit mode images larger than the viewport are scaled down to fit and
// smaller images keep their size. View.Scale multiplies the result. The
// image is centered, then offset by the pan.
func Layout(screenW, screenH, imageW, imageH int, v View) Placement {
	p := Placement{ImageW: imageW, ImageH: imageH}
	if imageW <= 0 || imageH <= 0 {
		return p
	}

	q := v.Rotation.QuarterTurns()
	rw, rh := float64(imageW), float64(imageH)
	if q%2 == 1 {
		rw, rh = rh, rw
	}

	base := 1.0
	if !v.ActualSize && screenW > 0 && screenH > 0 {
		base = math.Min(1, math.Min(float64(screenW)/rw, float64(screenH)/rh))
	}
	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	s := base * scale
	p.Scale = s

	fx, fy := 1.0, 1.0
	if v.FlipH {
		fx = -1
	}
	if v.FlipV {
		fy = -1
	}

	r := quarter[q]
	// L = s * R * F
	a, b := s*r[0]*fx, s*r[1]*fy
	d, e := s*r[2]*fx, s*r[3]*fy

	hw, hh := float64(imageW)/2, float64(imageH)/2
	cx := float64(screenW)/2 + v.PanX
	cy := float64(screenH)/2 + v.PanY
	p.m = f64.Aff3{
		a, b, cx - (a*hw + b*hh),
		d, e, cy - (d*hw + e*hh),
	}

	// L^-1 = F * R^T / s
	ia, ib := r[0]*fx/s, r[2]*fx/s
	id, ie := r[1]*fy/s, r[3]*fy/s
	p.inv = f64.Aff3{
		ia, ib, -(ia*p.m[2] + ib*p.m[5]),
		id, ie, -(id*p.m[2] + ie*p.m[5]),
	}
	return p
}

// Empty reports whether there is nothing to draw.
func (p Placement) Empty() bool {
	return p.ImageW <= 0 || p.ImageH <= 0 || p.Scale <= 0
}

// Matrix returns the image-to-screen transform in the layout used by
// golang.org/x/image/draw.
func (p Placement) Matrix() f64.Aff3 {
	return p.m
}

// ToScreen maps an image point to the screen.
func (p Placement) ToScreen(x, y float64) (float64, float64) {
	m := p.m
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// ToImage maps a screen point to the image and reports whether it lands
// inside the image.
func (p Placement) ToImage(x, y float64) (float64, float64, bool) {
	if p.Empty() {
		return 0, 0, false
	}
	m := p.inv
	ix := m[0]*x + m[1]*y + m[2]
	iy := m[3]*x + m[4]*y + m[5]
	in := ix >= 0 && iy >= 0 && ix < float64(p.ImageW) && iy < float64(p.ImageH)
	return ix, iy, in
}

// Bounds returns the screen rectangle covered by the image.
func (p Placement) Bounds() image.Rectangle {
	if p.Empty() {
		return image.Rectangle{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	w, h := float64(p.ImageW), float64(p.ImageH)
	for _, c := range [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := p.ToScreen(c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return image.Rect(
		int(math.Floor(minX+1e-9)), int(math.Floor(minY+1e-9)),
		int(math.Ceil(maxX-1e-9)), int(math.Ceil(maxY-1e-9)),
	)
}

// ZoomPercent returns the displayed size relative to actual size.
func (p Placement) ZoomPercent() float64 {
	return p.Scale * 100
}
