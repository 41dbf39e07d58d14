package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/riv/internal/config/watcher"
	"github.com/dshills/riv/internal/input"
	"github.com/dshills/riv/internal/input/keymap"
	"github.com/dshills/riv/internal/renderer"
)

// applySettings copies the reloadable viewer settings from the config.
func (a *Application) applySettings() {
	v := a.cfg.Viewer()
	a.settings = settings{
		panStep:        v.PanStep,
		skipPercent:    v.SkipPercent,
		messageTimeout: v.MessageTimeout,
		background:     v.Background,
	}
}

// rebuildKeys layers the keys section over the default bindings. On error
// the current bindings stay in effect.
func (a *Application) rebuildKeys() error {
	table, err := keymap.Build(keymap.DefaultKeymap(), keymap.FromMap("user", a.cfg.Keys()))
	if err != nil {
		return err
	}
	a.resolver = input.NewResolver(table)
	a.machine.SetResolver(a.resolver)
	a.help = renderer.HelpLines(table.Bindings())
	return nil
}

// reloadConfig re-reads the config file and applies what changed. It runs
// on the event loop.
func (a *Application) reloadConfig() {
	changed, err := a.cfg.Reload()
	if err != nil {
		a.logger.Warn("config reload failed: %v", err)
		a.showError(fmt.Sprintf("config: %v", err))
		return
	}
	if len(changed) == 0 {
		return
	}

	a.applySettings()
	for _, p := range changed {
		if p == "keys" || strings.HasPrefix(p, "keys.") {
			if err := a.rebuildKeys(); err != nil {
				a.logger.Warn("ignoring key overrides: %v", err)
				a.showError(fmt.Sprintf("keys: %v", err))
				return
			}
			break
		}
	}

	a.metrics.RecordReload()
	a.logger.WithField("changed", strings.Join(changed, ",")).Info("config reloaded")
	a.showSuccess("config reloaded")
}

// watch starts the config and image watchers. Their callbacks only post
// work to the event loop. Failures are logged and leave the viewer usable
// without live updates.
func (a *Application) watch() {
	onError := func(err error) {
		a.logger.Warn("watcher: %v", err)
	}

	if a.cfg.Path() != "" {
		err := a.cfg.Watch(func() { a.post(a.reloadConfig) }, onError)
		if err != nil {
			a.logger.Warn("%v", NewOperationError("watch", a.cfg.Path(), err))
		}
	}

	if len(a.paths) == 0 {
		return
	}
	w, err := watcher.New(watcher.WithErrorHandler(onError))
	if err != nil {
		a.logger.Warn("%v", NewComponentError("watcher", "start", err))
		return
	}
	for _, p := range a.paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if _, ok := a.watched[abs]; !ok {
			if err := w.Watch(abs); err != nil {
				a.logger.Debug("%v", NewOperationError("watch", abs, err))
				continue
			}
		}
		a.watched[abs] = append(a.watched[abs], p)
	}
	w.OnChange(func(ev watcher.Event) {
		a.post(func() { a.fileChanged(ev) })
	})
	a.files = w
}

// fileChanged drops the cached surfaces of a changed image. The displayed
// image is reloaded on the next frame.
func (a *Application) fileChanged(ev watcher.Event) {
	for _, p := range a.watched[ev.Path] {
		n := a.cache.InvalidatePath(p)
		if a.paths[a.index] == p {
			a.failed = -1
			a.cache.MarkDirty()
		}
		a.texLog.WithFields(map[string]any{"path": p, "op": ev.Op, "dropped": n}).Debug("file changed")
	}
}
