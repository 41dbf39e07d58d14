package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dshills/riv/internal/config/layer"
	"github.com/dshills/riv/internal/config/loader"
	"github.com/dshills/riv/internal/config/watcher"
)

// Layer names.
const (
	layerDefaults = "defaults"
	layerUser     = "user"
	layerEnv      = "environment"
	layerArgs     = "arguments"
)

// Config provides access to riv's layered configuration.
type Config struct {
	mu sync.RWMutex

	layers *layer.Manager

	// Explicit config file, or the first existing candidate in userConfigDir.
	path          string
	userConfigDir string
	useEnv        bool

	watcher *watcher.Watcher
}

// Option configures a Config instance.
type Option func(*Config)

// WithPath sets an explicit config file. A missing explicit file is an
// error on Load.
func WithPath(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithUserConfigDir sets the directory searched for config.toml or
// config.yaml.
func WithUserConfigDir(dir string) Option {
	return func(c *Config) {
		c.userConfigDir = dir
	}
}

// WithEnvironment enables or disables the RIV_* environment layer.
func WithEnvironment(enable bool) Option {
	return func(c *Config) {
		c.useEnv = enable
	}
}

// New creates a new Config instance with the given options.
// Call Load before reading settings.
func New(opts ...Option) *Config {
	c := &Config{
		layers: layer.NewManager(),
		useEnv: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.userConfigDir == "" {
		c.userConfigDir = defaultUserConfigDir()
	}

	c.layers.SetLayer(layer.NewLayer(layerDefaults, layer.SourceBuiltin, defaultConfig()))
	return c
}

// Load reads the config file and environment on top of the defaults.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	explicit := c.path != ""
	if !explicit {
		c.path = c.findUserFile()
	}

	if c.path != "" {
		data, err := c.readFile(c.path)
		if err != nil {
			return err
		}
		if data == nil && explicit {
			return fmt.Errorf("config file %s: %w", c.path, os.ErrNotExist)
		}
		c.setUserLayer(data)
	}

	if c.useEnv {
		data, err := loader.NewEnvLoader(loader.EnvPrefix).Load()
		if err != nil {
			return err
		}
		if len(data) > 0 {
			c.layers.SetLayer(layer.NewLayer(layerEnv, layer.SourceEnv, data))
		}
	}

	return nil
}

// Path returns the config file in use, or "" when there is none.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// Reload re-reads the config file and returns the setting paths whose
// effective value changed. A parse error leaves the previous values in
// place. A removed file drops the user layer.
func (c *Config) Reload() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		return nil, nil
	}

	data, err := c.readFile(c.path)
	if err != nil {
		return nil, err
	}

	before := c.layers.Merge()
	if data == nil {
		c.layers.RemoveLayer(layerUser)
	} else {
		c.setUserLayer(data)
	}
	return layer.Changed(before, c.layers.Merge()), nil
}

// Set records a command-line override at path. Overrides win over every
// other source.
func (c *Config) Set(path string, value any) error {
	if path == "" || strings.HasPrefix(path, ".") || strings.HasSuffix(path, ".") {
		return ErrInvalidPath
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	args := c.layers.Layer(layerArgs)
	data := map[string]any{}
	if args != nil {
		data = args.Clone().Data
	}
	layer.SetByPath(data, path, value)
	c.layers.SetLayer(layer.NewLayer(layerArgs, layer.SourceArgs, data))
	return nil
}

// Watch starts watching the config file and calls onChange after it is
// written, created or removed. onChange runs on the watcher goroutine and
// should only schedule a Reload.
func (c *Config) Watch(onChange func(), onError func(error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		return ErrNoConfigFile
	}
	if c.watcher != nil {
		return nil
	}

	w, err := watcher.New(watcher.WithErrorHandler(onError))
	if err != nil {
		return fmt.Errorf("starting config watcher: %w", err)
	}
	if err := w.Watch(c.path); err != nil {
		_ = w.Close()
		return fmt.Errorf("watching %s: %w", c.path, err)
	}
	w.OnChange(func(watcher.Event) { onChange() })
	c.watcher = w
	return nil
}

// Close stops the config watcher, if any.
func (c *Config) Close() error {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	if w != nil {
		return w.Close()
	}
	return nil
}

// Source returns the name of the layer that provides the value at path.
func (c *Config) Source(path string) string {
	return c.layers.Which(path)
}

// Merged returns the fully merged configuration.
func (c *Config) Merged() map[string]any {
	return c.layers.Merge()
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	return layer.GetByPath(c.layers.Merge(), path)
}

// get reads path and converts it with conv. A value conv rejects is a
// *TypeError naming want.
func get[T any](c *Config, path, want string, conv func(any) (T, bool)) (T, error) {
	var zero T
	v, ok := c.Get(path)
	if !ok {
		return zero, ErrSettingNotFound
	}
	out, ok := conv(v)
	if !ok {
		return zero, &TypeError{Path: path, Expected: want, Actual: typeName(v)}
	}
	return out, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// asInt accepts the integer types the loaders produce, and floats holding
// a whole number.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), n == float64(int(n))
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func (c *Config) GetString(path string) (string, error) {
	return get(c, path, "string", asString)
}

func (c *Config) GetInt(path string) (int, error) {
	return get(c, path, "int", asInt)
}

func (c *Config) GetBool(path string) (bool, error) {
	return get(c, path, "bool", asBool)
}

func (c *Config) GetFloat(path string) (float64, error) {
	return get(c, path, "float64", asFloat)
}

func (c *Config) GetMap(path string) (map[string]any, error) {
	return get(c, path, "map", asMap)
}

// GetDuration reads a duration string such as "5s". A bare number is a
// count of seconds.
func (c *Config) GetDuration(path string) (time.Duration, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	if s, ok := v.(string); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, &ValidationError{Path: path, Message: "is not a duration", Value: s}
		}
		return d, nil
	}
	if d, ok := v.(time.Duration); ok {
		return d, nil
	}
	if secs, ok := asFloat(v); ok {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return 0, &TypeError{Path: path, Expected: "duration", Actual: typeName(v)}
}

func (c *Config) readFile(path string) (map[string]any, error) {
	l, err := loader.ForPath(nil, path)
	if err != nil {
		return nil, err
	}
	return l.Load()
}

func (c *Config) setUserLayer(data map[string]any) {
	l := layer.NewLayer(layerUser, layer.SourceUser, data)
	l.Path = c.path
	c.layers.SetLayer(l)
}

// findUserFile returns the first existing config file in the user config
// directory, falling back to config.toml so a file created later can be
// watched.
func (c *Config) findUserFile() string {
	if c.userConfigDir == "" {
		return ""
	}
	candidates := []string{"config.toml", "config.yaml", "config.yml"}
	for _, name := range candidates {
		p := filepath.Join(c.userConfigDir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(c.userConfigDir, candidates[0])
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "riv")
}

// IsNotExist reports whether err is a missing explicit config file.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// typeName describes v in the terms a config file author would use.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case int, int64, uint64:
		return "int"
	case []any:
		return "list"
	case map[string]any:
		return "map"
	}
	return fmt.Sprintf("%T", v)
}
