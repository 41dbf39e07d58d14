package backend

import (
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/draw"

	"github.com/dshills/riv/internal/input"
	"github.com/dshills/riv/internal/input/mouse"
	"github.com/dshills/riv/internal/renderer"
	"github.com/dshills/riv/internal/texture"
)

// cellPixels is the approximate width in screen pixels of one half block
// pixel. Pan offsets are divided by it.
const cellPixels = 8

// upperHalf draws the top pixel in the foreground and the bottom pixel in
// the background.
const upperHalf = '▀'

// Terminal implements texture.Backend and draws frames using tcell.
type Terminal struct {
	*texture.MemBackend

	screen  tcell.Screen
	tracker *mouse.Tracker
	mu      sync.Mutex

	canvas *image.RGBA
}

// NewTerminal creates a terminal frontend on the controlling tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen creates a terminal frontend on screen, which may
// be a tcell.SimulationScreen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{
		MemBackend: texture.NewMemBackend(),
		screen:     screen,
		tracker:    mouse.NewTracker(),
	}
}

// Init initializes the screen. Must be called before any other method.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the terminal dimensions in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// SetFullscreen is a no-op; a terminal always fills its window.
func (t *Terminal) SetFullscreen(bool) {}

// Interrupt wakes PollEvent with data.
func (t *Terminal) Interrupt(data any) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

// PollEvent blocks for the next terminal event. It returns the converted
// input events, the payload of an interrupt if the event was one, and
// false once the screen has been shut down.
func (t *Terminal) PollEvent() ([]input.Event, any, bool) {
	ev := t.screen.PollEvent()
	if ev == nil {
		return nil, nil, false
	}
	if in, ok := ev.(*tcell.EventInterrupt); ok {
		return nil, in.Data(), true
	}
	return convertEvent(ev, t.tracker), nil, true
}

// Draw renders f and shows it.
func (t *Terminal) Draw(f renderer.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, height := t.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	rows := height
	if f.Status != nil && rows > 1 {
		rows--
	}

	placement := t.drawImage(f, width, rows)

	if bar := f.Infobar(placement); bar != nil && rows < height {
		t.drawText(0, height-1, bar.Line(width), convertStyle(bar.Style))
	}
	if len(f.Help) > 0 {
		t.drawHelp(f.Help, width, rows)
	}
	t.screen.Show()
}

// drawImage resamples the texture into a width x 2*rows canvas and writes
// it as half block cells.
func (t *Terminal) drawImage(f renderer.Frame, width, rows int) renderer.Placement {
	bounds := image.Rect(0, 0, width, rows*2)
	if t.canvas == nil || t.canvas.Bounds() != bounds {
		t.canvas = image.NewRGBA(bounds)
	}
	bg := f.Background.RGBA()
	draw.Draw(t.canvas, bounds, image.NewUniform(bg), image.Point{}, draw.Src)

	var placement renderer.Placement
	if mt, ok := f.Texture.(*texture.MemTexture); ok && !mt.Destroyed() {
		src := mt.Surface()
		view := f.View.WithPanScale(1.0 / cellPixels)
		placement = renderer.Layout(bounds.Dx(), bounds.Dy(), src.Width, src.Height, view)
		if !placement.Empty() {
			draw.ApproxBiLinear.Transform(t.canvas, placement.Matrix(), src.Image(), src.Bounds(), draw.Over, nil)
		}
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < width; x++ {
			top := t.canvas.RGBAAt(x, 2*y)
			bottom := t.canvas.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(rgbColor(top)).
				Background(rgbColor(bottom))
			t.screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
	return placement
}

// drawHelp draws the help lines in a box in the top left corner.
func (t *Terminal) drawHelp(help []string, width, rows int) {
	lines := renderer.FitLines(help, width-4, rows-2)
	if len(lines) == 0 {
		return
	}
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, runewidth.StringWidth(l))
	}
	style := convertStyle(renderer.StyleHelp)
	for i, l := range lines {
		t.drawText(1, 1+i, " "+runewidth.FillRight(l, boxW)+" ", style)
	}
}

// drawText writes s starting at (x, y), advancing by display width.
func (t *Terminal) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		t.screen.SetContent(x, y, r, nil, style)
		x += w
	}
}

func rgbColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertStyle maps an overlay style onto tcell.
func convertStyle(s renderer.Style) tcell.Style {
	style := tcell.StyleDefault.
		Bold(s.Attributes.Has(renderer.AttrBold)).
		Reverse(s.Attributes.Has(renderer.AttrReverse))
	if !s.Foreground.IsDefault() {
		style = style.Foreground(rgbColor(s.Foreground.RGBA()))
	}
	if !s.Background.IsDefault() {
		style = style.Background(rgbColor(s.Background.RGBA()))
	}
	return style
}
