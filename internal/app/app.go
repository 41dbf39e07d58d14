// Package app provides the viewer application. It wires the mode machine,
// the texture cache and the configuration together and is driven by a
// frontend through the renderer.Viewer interface.
package app

import (
	"fmt"
	"time"

	"github.com/dshills/riv/internal/config"
	"github.com/dshills/riv/internal/config/watcher"
	"github.com/dshills/riv/internal/input"
	"github.com/dshills/riv/internal/input/action"
	"github.com/dshills/riv/internal/input/mode"
	"github.com/dshills/riv/internal/renderer"
	"github.com/dshills/riv/internal/state"
	"github.com/dshills/riv/internal/texture"
)

// queueSize bounds the work posted from watcher goroutines between ticks.
const queueSize = 64

// Options configures an Application.
type Options struct {
	// Paths are the images to show, in navigation order.
	Paths []string

	// Config supplies settings. Nil uses the built-in defaults.
	Config *config.Config

	// Backend creates textures. Required.
	Backend texture.Backend

	// Logger receives application logs. Nil discards them.
	Logger *Logger

	// Source and Decoder override how images are read and decoded.
	Source  texture.Source
	Decoder texture.Decoder

	// Watch reloads the config file and drops cached images when their
	// files change on disk.
	Watch bool

	// Now is the clock used for message expiry. Defaults to time.Now.
	Now func() time.Time
}

// settings are the config values read on every event. They are refreshed
// on reload.
type settings struct {
	panStep        float64
	skipPercent    int
	messageTimeout time.Duration
	background     renderer.Color
}

// Application is the image viewer: it owns the session state, turns events
// into actions, executes them and keeps the displayed texture loaded.
//
// Application implements renderer.Viewer. All methods except Close must be
// called from the frontend's event loop.
type Application struct {
	cfg      *config.Config
	logger   *Logger
	texLog   *Logger
	metrics  *Metrics
	now      func() time.Time
	settings settings

	state    *state.State
	machine  *mode.Machine
	resolver *input.Resolver
	help     []string

	cache  *texture.Cache
	paths  []string
	index  int
	failed int // index whose load failed, -1 when none

	queue   chan func()
	files   *watcher.Watcher
	watched map[string][]string // absolute path -> paths as given

	closed bool
}

var _ renderer.Viewer = (*Application)(nil)

// New creates an application showing opts.Paths, starting at the first
// path.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, ErrNoBackend
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New(config.WithEnvironment(false))
	}
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	cc := cfg.Cache()
	a := &Application{
		cfg:     cfg,
		logger:  logger.WithComponent("app"),
		texLog:  logger.WithComponent("texture"),
		metrics: NewMetrics(),
		now:     now,
		state:   state.New(),
		cache: texture.New(opts.Backend, opts.Source, opts.Decoder, texture.Config{
			Capacity:    cc.Capacity,
			ChunkPixels: cc.ChunkPixels,
			Access:      texture.AccessStatic,
		}),
		paths:   append([]string(nil), opts.Paths...),
		failed:  -1,
		queue:   make(chan func(), queueSize),
		watched: make(map[string][]string),
	}

	a.applySettings()
	v := cfg.Viewer()
	a.state.RenderInfobar = v.Infobar
	a.state.Fullscreen = v.Fullscreen

	a.resolver = input.DefaultResolver()
	a.machine = mode.NewMachine(a.resolver)
	a.help = renderer.HelpLines(a.resolver.Table().Bindings())
	if err := a.rebuildKeys(); err != nil {
		a.logger.Warn("ignoring key overrides: %v", err)
		a.showError(fmt.Sprintf("keys: %v", err))
	}

	a.machine.OnModeChange(func(from, to state.Mode) {
		a.logger.Debug("mode %s -> %s", from, to)
	})

	if opts.Watch {
		a.watch()
	}

	a.logger.WithFields(map[string]any{
		"images":   len(a.paths),
		"capacity": cc.Capacity,
		"config":   cfg.Path(),
	}).Info("viewer started")
	return a, nil
}

// State returns the session state.
func (a *Application) State() *state.State {
	return a.state
}

// Index returns the zero-based position of the displayed image.
func (a *Application) Index() int {
	return a.index
}

// Cache returns the texture cache.
func (a *Application) Cache() *texture.Cache {
	return a.cache
}

// Metrics returns the activity counters.
func (a *Application) Metrics() *Metrics {
	return a.metrics
}

// HandleEvent resolves ev through the mode machine and executes the
// resulting action. It returns renderer.ErrQuit once the viewer quits.
func (a *Application) HandleEvent(ev input.Event) error {
	if a.closed {
		return ErrClosed
	}
	start := a.now()
	defer func() { a.metrics.RecordEvent(a.now().Sub(start)) }()

	pa := a.machine.Handle(a.state, ev)
	if a.logger.Enabled(LogLevelDebug) && pa.Action.Kind != action.KindNoop {
		a.logger.Debug("%s -> %s", ev, pa)
	}
	return a.execute(pa)
}

// Tick runs work posted by the watchers and expires messages.
func (a *Application) Tick(now time.Time) bool {
	if a.closed {
		return false
	}
	redraw := false
drain:
	for {
		select {
		case fn := <-a.queue:
			fn()
			redraw = true
		default:
			break drain
		}
	}
	if a.state.ExpireMessage(now) {
		redraw = true
	}
	return redraw
}

// Frame loads the displayed image if needed and describes the screen.
func (a *Application) Frame() renderer.Frame {
	a.metrics.RecordFrame()
	a.load()

	f := renderer.Frame{
		View:       renderer.ViewOf(a.state),
		Background: a.settings.background,
		Fullscreen: a.state.Fullscreen,
	}
	if last, ok := a.cache.LastIndex(); ok && last == a.index && !a.cache.Dirty() && len(a.paths) > 0 {
		f.Texture = a.cache.Current()
	}
	if a.state.RenderInfobar || a.state.Mode.HasMessage() {
		f.Status = a.status()
	}
	if a.state.RenderHelp == state.HelpNormal {
		f.Help = a.help
	}
	return f
}

// load makes the current index the displayed texture. A failed index is
// not retried until navigation or a file change clears it.
func (a *Application) load() {
	if len(a.paths) == 0 || a.index == a.failed || !a.cache.NeedsLoad(a.index) {
		return
	}
	path := a.paths[a.index]
	log := a.texLog.WithFields(map[string]any{"index": a.index, "path": path})

	if _, err := a.cache.LoadForIndex(a.index, path); err != nil {
		a.failed = a.index
		a.metrics.RecordLoadFailure()
		if texture.IsBackend(err) {
			log.Error("load failed: %v", err)
		} else {
			log.Warn("load failed: %v", err)
		}
		a.showError(err.Error())
		return
	}

	r := a.cache.LastReport()
	a.metrics.RecordLoad(r)
	log.WithFields(map[string]any{
		"hit":    r.Hit,
		"chunks": r.Chunks,
		"size":   fmt.Sprintf("%dx%d", r.Width, r.Height),
	}).Debug("loaded in %s", r.Duration)
}

func (a *Application) status() *renderer.Status {
	st := &renderer.Status{
		Index:    a.index,
		Total:    len(a.paths),
		Rotation: a.state.RotAngle,
		Pending:  a.state.PendingCount(),
		Mode:     a.state.Mode,
	}
	if len(a.paths) > 0 {
		st.Path = a.paths[a.index]
	}
	if info, ok := a.cache.Info(a.index); ok {
		st.Width, st.Height = info.Width, info.Height
		st.Camera = info.Camera()
	}
	return st
}

func (a *Application) showError(msg string) {
	a.state.SetMessage(state.Error(msg), a.now(), a.settings.messageTimeout)
}

func (a *Application) showSuccess(msg string) {
	a.state.SetMessage(state.Success(msg), a.now(), a.settings.messageTimeout)
}

// post schedules fn to run on the event loop at the next Tick. It is safe
// to call from any goroutine.
func (a *Application) post(fn func()) {
	select {
	case a.queue <- fn:
	default:
		a.logger.Warn("event queue full, dropping update")
	}
}

// Close stops the watchers and releases the textures. It logs a summary of
// the session.
func (a *Application) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	errs := NewErrorList()
	if a.files != nil {
		if err := a.files.Close(); err != nil {
			errs.Add(NewComponentError("watcher", "close", err))
		}
	}
	if err := a.cfg.Close(); err != nil {
		errs.Add(NewComponentError("config", "close", err))
	}
	a.cache.Close()

	st := a.cache.Stats()
	a.logger.WithFields(a.metrics.Snapshot().Fields()).
		WithField("evictions", st.Evictions).
		Info("viewer closed")
	return errs.AsError()
}
