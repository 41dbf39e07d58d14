// Package watcher tells riv when the config file or a displayed image
// changes on disk.
//
// It watches the parent directory of each file with fsnotify, because
// editors often save by renaming a temporary file over the original and a
// watch on the file itself would be lost. Events for one file that arrive
// within the debounce delay are merged into one.
package watcher

import (
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is returned by Watch and Unwatch after Close.
var ErrClosed = errors.New("watcher closed")

// Operation is what happened to a watched file.
type Operation int

const (
	OpWrite Operation = iota
	OpCreate
	OpRemove
	OpRename // moved away; usually followed by a create
)

var opNames = [...]string{"write", "create", "remove", "rename"}

func (op Operation) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return "unknown"
}

// Event is a change to a watched file. Path is absolute.
type Event struct {
	Path string
	Op   Operation
	Time time.Time
}

// Handler receives events on the watcher's goroutine. It must not block.
type Handler func(Event)

// Option configures New.
type Option func(*Watcher)

// WithDebounce sets how long a file must stay quiet before its merged
// event is delivered. Zero delivers each event as it arrives. The default
// is 100ms.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.delay = d
		}
	}
}

// WithErrorHandler receives errors fsnotify reports while running.
func WithErrorHandler(fn func(error)) Option {
	return func(w *Watcher) { w.onError = fn }
}

// Watcher watches a set of files. Its methods are safe for concurrent use.
type Watcher struct {
	fsw     *fsnotify.Watcher
	delay   time.Duration
	onError func(error)
	done    chan struct{}

	mu       sync.Mutex
	files    map[string]struct{}
	dirs     map[string]int // watched files per directory
	handlers []Handler
	closed   bool

	// Owned by the run goroutine.
	pending map[string]Event
}

// New starts a watcher with no files.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:     fsw,
		delay:   100 * time.Millisecond,
		done:    make(chan struct{}),
		files:   map[string]struct{}{},
		dirs:    map[string]int{},
		pending: map[string]Event{},
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w, nil
}

// Watch adds path. The file may be missing, but its directory must exist.
// Watching a file twice is a no-op.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.closed:
		return ErrClosed
	case w.has(abs):
		return nil
	}
	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = struct{}{}
	return nil
}

// Unwatch removes path, dropping the directory watch with its last file.
func (w *Watcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.closed:
		return ErrClosed
	case !w.has(abs):
		return nil
	}
	delete(w.files, abs)
	dir := filepath.Dir(abs)
	if w.dirs[dir]--; w.dirs[dir] > 0 {
		return nil
	}
	delete(w.dirs, dir)
	return w.fsw.Remove(dir)
}

func (w *Watcher) has(abs string) bool {
	_, ok := w.files[abs]
	return ok
}

// OnChange adds a handler for every later event.
func (w *Watcher) OnChange(h Handler) {
	w.mu.Lock()
	w.handlers = append(w.handlers, h)
	w.mu.Unlock()
}

// WatchedFiles returns the watched paths, sorted.
func (w *Watcher) WatchedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.files))
	for p := range w.files {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Close stops the watcher and waits for its goroutine. Pending merged
// events are dropped. Closing twice is a no-op.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	err := w.fsw.Close()
	<-w.done
	return err
}

// run ends when Close closes the fsnotify channels.
func (w *Watcher) run() {
	defer close(w.done)

	var tick <-chan time.Time
	if w.delay > 0 {
		t := time.NewTicker(w.delay)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case fe, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.receive(fe)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		case now := <-tick:
			w.flush(now)
		}
	}
}

func (w *Watcher) receive(fe fsnotify.Event) {
	path := filepath.Clean(fe.Name)
	w.mu.Lock()
	watched := w.has(path)
	w.mu.Unlock()
	if !watched {
		return
	}
	op, ok := convertOp(fe.Op)
	if !ok {
		return
	}

	ev := Event{Path: path, Op: op, Time: time.Now()}
	if w.delay == 0 {
		w.emit(ev)
		return
	}
	w.merge(ev)
}

// convertOp picks the most significant bit of an fsnotify op. Chmod alone
// is not reported.
func convertOp(op fsnotify.Op) (Operation, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return OpRemove, true
	case op.Has(fsnotify.Rename):
		return OpRename, true
	case op.Has(fsnotify.Create):
		return OpCreate, true
	case op.Has(fsnotify.Write):
		return OpWrite, true
	}
	return 0, false
}

// merge folds ev into the pending event for its file. A file that was
// created and then written is still new; one that was removed or renamed
// and created again was replaced, which readers see as a write. Otherwise
// the latest operation wins.
func (w *Watcher) merge(ev Event) {
	prev, ok := w.pending[ev.Path]
	if ok {
		switch {
		case ev.Op == OpWrite && prev.Op == OpCreate:
			ev.Op = OpCreate
		case ev.Op == OpCreate && prev.Op != OpCreate:
			ev.Op = OpWrite
		}
	}
	w.pending[ev.Path] = ev
}

// flush delivers the pending events that have been quiet for the delay.
func (w *Watcher) flush(now time.Time) {
	var ready []Event
	for path, ev := range w.pending {
		if now.Sub(ev.Time) >= w.delay {
			ready = append(ready, ev)
			delete(w.pending, path)
		}
	}
	for _, ev := range ready {
		w.emit(ev)
	}
}

// emit calls every handler. A panicking handler does not stop the others
// or the watcher.
func (w *Watcher) emit(ev Event) {
	w.mu.Lock()
	handlers := slices.Clone(w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		func() {
			defer func() { _ = recover() }()
			h(ev)
		}()
	}
}
