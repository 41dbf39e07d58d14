package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/riv/internal/renderer"
)

// Section accessor methods return snapshot structs. Invalid or missing
// values fall back to the built-in defaults; Validate reports them.

// Frontend names accepted by viewer.frontend.
const (
	FrontendTerminal = "terminal"
	FrontendWindow   = "window"
)

// Defaults for every setting.
const (
	DefaultPanStep        = 50
	DefaultSkipPercent    = 5
	DefaultMessageTimeout = 5 * time.Second
	DefaultBackground     = "#000000"
	DefaultChunkPixels    = 1 << 20
	DefaultLogLevel       = "info"
)

// ViewerConfig holds the viewer section.
type ViewerConfig struct {
	// PanStep is the distance in pixels moved by one Pan application.
	PanStep float64

	// SkipPercent is the SkipForward/SkipBack stride as a percentage of the
	// list length.
	SkipPercent int

	// Infobar is the initial infobar visibility.
	Infobar bool

	// MessageTimeout is how long Error and Success messages stay visible.
	MessageTimeout time.Duration

	// Background fills the area around the image.
	Background renderer.Color

	// Frontend is FrontendTerminal or FrontendWindow.
	Frontend string

	// Fullscreen starts the window frontend fullscreen.
	Fullscreen bool
}

// CacheConfig holds the cache section.
type CacheConfig struct {
	// Capacity bounds the number of cached surfaces; 0 is unbounded.
	Capacity int

	// ChunkPixels is the pixel budget of one texture upload call.
	ChunkPixels int
}

// LoggingConfig holds the logging section.
type LoggingConfig struct {
	Level string
	File  string
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"viewer": map[string]any{
			"panStep":        DefaultPanStep,
			"skipPercent":    DefaultSkipPercent,
			"infobar":        true,
			"messageTimeout": DefaultMessageTimeout.String(),
			"background":     DefaultBackground,
			"frontend":       FrontendTerminal,
			"fullscreen":     false,
		},
		"cache": map[string]any{
			"capacity":    0,
			"chunkPixels": DefaultChunkPixels,
		},
		"keys": map[string]any{},
		"logging": map[string]any{
			"level": DefaultLogLevel,
			"file":  "",
		},
	}
}

// Viewer returns the viewer settings.
func (c *Config) Viewer() ViewerConfig {
	v := ViewerConfig{
		PanStep:        DefaultPanStep,
		SkipPercent:    DefaultSkipPercent,
		Infobar:        true,
		MessageTimeout: DefaultMessageTimeout,
		Background:     renderer.ColorBlack,
		Frontend:       FrontendTerminal,
	}

	if f, err := c.GetFloat("viewer.panStep"); err == nil && f > 0 {
		v.PanStep = f
	}
	if n, err := c.GetInt("viewer.skipPercent"); err == nil && n >= 1 && n <= 100 {
		v.SkipPercent = n
	}
	if b, err := c.GetBool("viewer.infobar"); err == nil {
		v.Infobar = b
	}
	if d, err := c.GetDuration("viewer.messageTimeout"); err == nil && d > 0 {
		v.MessageTimeout = d
	}
	if s, err := c.GetString("viewer.background"); err == nil {
		if col, err := renderer.ColorFromHex(s); err == nil && !col.IsDefault() {
			v.Background = col
		}
	}
	if s, err := c.GetString("viewer.frontend"); err == nil && (s == FrontendTerminal || s == FrontendWindow) {
		v.Frontend = s
	}
	if b, err := c.GetBool("viewer.fullscreen"); err == nil {
		v.Fullscreen = b
	}
	return v
}

// Cache returns the cache settings.
func (c *Config) Cache() CacheConfig {
	cc := CacheConfig{ChunkPixels: DefaultChunkPixels}
	if n, err := c.GetInt("cache.capacity"); err == nil && n > 0 {
		cc.Capacity = n
	}
	if n, err := c.GetInt("cache.chunkPixels"); err == nil && n > 0 {
		cc.ChunkPixels = n
	}
	return cc
}

// Logging returns the logging settings.
func (c *Config) Logging() LoggingConfig {
	lc := LoggingConfig{Level: DefaultLogLevel}
	if s, err := c.GetString("logging.level"); err == nil && logLevels[s] {
		lc.Level = s
	}
	if s, err := c.GetString("logging.file"); err == nil {
		lc.File = s
	}
	return lc
}

// Keys returns the keys section: single characters mapped to action names.
func (c *Config) Keys() map[string]any {
	m, err := c.GetMap("keys")
	if err != nil {
		return map[string]any{}
	}
	return m
}

// Validate checks every known setting and returns all problems joined.
// Accessors keep working with defaults when Validate fails.
func (c *Config) Validate() error {
	var errs []error
	check := func(err error) {
		if err != nil && !errors.Is(err, ErrSettingNotFound) {
			errs = append(errs, err)
		}
	}
	invalid := func(path, msg string, value any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value})
	}

	if f, err := c.GetFloat("viewer.panStep"); err != nil {
		check(err)
	} else if f <= 0 {
		invalid("viewer.panStep", "must be positive", f)
	}

	if n, err := c.GetInt("viewer.skipPercent"); err != nil {
		check(err)
	} else if n < 1 || n > 100 {
		invalid("viewer.skipPercent", "must be between 1 and 100", n)
	}

	_, err := c.GetBool("viewer.infobar")
	check(err)
	_, err = c.GetBool("viewer.fullscreen")
	check(err)

	if d, err := c.GetDuration("viewer.messageTimeout"); err != nil {
		check(err)
	} else if d <= 0 {
		invalid("viewer.messageTimeout", "must be positive", d)
	}

	if s, err := c.GetString("viewer.background"); err != nil {
		check(err)
	} else if _, err := renderer.ColorFromHex(s); err != nil {
		invalid("viewer.background", err.Error(), s)
	}

	if s, err := c.GetString("viewer.frontend"); err != nil {
		check(err)
	} else if s != FrontendTerminal && s != FrontendWindow {
		invalid("viewer.frontend", fmt.Sprintf("must be %q or %q", FrontendTerminal, FrontendWindow), s)
	}

	if n, err := c.GetInt("cache.capacity"); err != nil {
		check(err)
	} else if n < 0 {
		invalid("cache.capacity", "must not be negative", n)
	}

	if n, err := c.GetInt("cache.chunkPixels"); err != nil {
		check(err)
	} else if n <= 0 {
		invalid("cache.chunkPixels", "must be positive", n)
	}

	if s, err := c.GetString("logging.level"); err != nil {
		check(err)
	} else if !logLevels[s] {
		invalid("logging.level", "must be debug, info, warn or error", s)
	}

	_, err = c.GetString("logging.file")
	check(err)

	if keys, err := c.GetMap("keys"); err != nil {
		check(err)
	} else {
		for k, v := range keys {
			if _, ok := v.(string); !ok {
				invalid("keys."+k, "must be an action name", v)
			}
		}
	}

	return errors.Join(errs...)
}
