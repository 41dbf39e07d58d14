package window

import (
	"context"
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/math/f64"

	"github.com/dshills/riv/internal/input"
	"github.com/dshills/riv/internal/input/key"
	"github.com/dshills/riv/internal/input/mouse"
	"github.com/dshills/riv/internal/renderer"
)

// Debug font metrics of ebitenutil.DebugPrint.
const (
	charWidth  = 6
	lineHeight = 16
)

// Options configures the window.
type Options struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// DefaultOptions returns the default window options.
func DefaultOptions() Options {
	return Options{Title: "riv", Width: 1280, Height: 800}
}

// Game adapts a renderer.Viewer to ebiten.Game.
type Game struct {
	ctx    context.Context
	viewer renderer.Viewer

	frame      renderer.Frame
	fullscreen bool
	focused    bool

	width, height int
	sized         bool
	resized       bool

	keys  []ebiten.Key
	chars []rune
	err   error
}

// NewGame creates a game for v.
func NewGame(ctx context.Context, v renderer.Viewer) *Game {
	return &Game{ctx: ctx, viewer: v, focused: true}
}

// Run opens the window and drives v until it quits, the window is closed
// or ctx is done.
func Run(ctx context.Context, v renderer.Viewer, opts Options) error {
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	if opts.Fullscreen {
		ebiten.SetFullscreen(true)
		ebiten.SetWindowDecorated(false)
	}

	g := NewGame(ctx, v)
	g.fullscreen = opts.Fullscreen
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return g.err
}

// Update collects input, hands it to the viewer and prepares the frame.
func (g *Game) Update() error {
	if err := g.ctx.Err(); err != nil {
		g.err = err
		return ebiten.Termination
	}

	events := g.collect()
	for _, ev := range events {
		if err := g.viewer.HandleEvent(ev); err != nil {
			if !errors.Is(err, renderer.ErrQuit) {
				g.err = err
			}
			return ebiten.Termination
		}
	}
	g.viewer.Tick(time.Now())

	g.frame = g.viewer.Frame()
	if g.frame.Fullscreen != g.fullscreen {
		g.fullscreen = g.frame.Fullscreen
		ebiten.SetFullscreen(g.fullscreen)
		ebiten.SetWindowDecorated(!g.fullscreen)
	}
	return nil
}

// collect converts this tick's input into events.
func (g *Game) collect() []input.Event {
	var events []input.Event

	if ebiten.IsWindowBeingClosed() {
		return append(events, input.QuitEvent())
	}

	if g.resized {
		g.resized = false
		events = append(events, input.WindowStateEvent(input.WindowResized, g.width, g.height))
	}
	if f := ebiten.IsFocused(); f != g.focused {
		g.focused = f
		w := input.WindowFocusLost
		if f {
			w = input.WindowFocusGained
		}
		events = append(events, input.WindowStateEvent(w, 0, 0))
	}

	mods := modifierState(ebiten.IsKeyPressed)

	period := false
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if kk := convertKey(k); kk != key.KeyNone {
			period = period || kk == key.KeyPeriod
			events = append(events, input.KeyEvent(kk, mods))
		}
	}

	g.chars = ebiten.AppendInputChars(g.chars[:0])
	if textAllowed(mods) {
		events = appendText(events, g.chars, period)
	}

	x, y := ebiten.CursorPosition()
	pos := mouse.Position{X: x, Y: y}
	for _, b := range [...]struct {
		eb ebiten.MouseButton
		mb mouse.Button
	}{
		{ebiten.MouseButtonLeft, mouse.ButtonLeft},
		{ebiten.MouseButtonMiddle, mouse.ButtonMiddle},
		{ebiten.MouseButtonRight, mouse.ButtonRight},
	} {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			events = append(events, input.MouseEvent(mouse.Event{Position: pos, Button: b.mb, Modifiers: mods, Action: mouse.ActionPress}))
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			events = append(events, input.MouseEvent(mouse.Event{Position: pos, Button: b.mb, Modifiers: mods, Action: mouse.ActionRelease}))
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		b := mouse.ButtonScrollDown
		if dy > 0 {
			b = mouse.ButtonScrollUp
		}
		events = append(events, input.MouseEvent(mouse.Event{Position: pos, Button: b, Modifiers: mods, Action: mouse.ActionPress}))
	}

	return events
}

// Draw draws the frame prepared by Update.
func (g *Game) Draw(screen *ebiten.Image) {
	f := g.frame
	screen.Fill(f.Background.RGBA())

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	imageH := h
	if f.Status != nil {
		imageH -= lineHeight
	}

	var placement renderer.Placement
	if tex, ok := f.Texture.(*Texture); ok && tex.Image() != nil {
		tw, th := tex.Size()
		placement = renderer.Layout(w, imageH, tw, th, f.View)
		if !placement.Empty() {
			op := &ebiten.DrawImageOptions{}
			setGeoM(&op.GeoM, placement.Matrix())
			op.Filter = ebiten.FilterLinear
			screen.DrawImage(tex.Image(), op)
		}
	}

	if bar := f.Infobar(placement); bar != nil {
		y := float32(h - lineHeight)
		vector.DrawFilledRect(screen, 0, y, float32(w), lineHeight, barColor(bar.Style), false)
		ebitenutil.DebugPrintAt(screen, bar.Line(w/charWidth), 0, h-lineHeight)
	}

	if len(f.Help) > 0 {
		lines := renderer.FitLines(f.Help, w/charWidth-4, imageH/lineHeight-2)
		vector.DrawFilledRect(screen, charWidth, lineHeight/2, float32(w-2*charWidth), float32((len(lines)+1)*lineHeight), color.RGBA{A: 0xc0}, false)
		for i, l := range lines {
			ebitenutil.DebugPrintAt(screen, l, 2*charWidth, lineHeight+i*lineHeight)
		}
	}
}

// Layout reports the screen size in device pixels and records resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	w, h := int(float64(outsideWidth)*scale), int(float64(outsideHeight)*scale)
	if !g.sized || w != g.width || h != g.height {
		g.resized = g.sized
		g.sized = true
		g.width, g.height = w, h
	}
	return w, h
}

// setGeoM copies an affine transform into a GeoM.
func setGeoM(g *ebiten.GeoM, m f64.Aff3) {
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[1])
	g.SetElement(0, 2, m[2])
	g.SetElement(1, 0, m[3])
	g.SetElement(1, 1, m[4])
	g.SetElement(1, 2, m[5])
}

// barColor picks the infobar background for a style.
func barColor(s renderer.Style) color.Color {
	if s.Background.IsDefault() {
		return color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	}
	return s.Background.RGBA()
}

// appendText adds a text event per typed character. A '.' typed in the
// same tick as a KeyPeriod press was already reported by that key; on
// layouts where '.' comes from another key it is kept.
func appendText(events []input.Event, chars []rune, period bool) []input.Event {
	for _, r := range chars {
		if r == '.' && period {
			period = false
			continue
		}
		events = append(events, input.TextEvent(string(r)))
	}
	return events
}
