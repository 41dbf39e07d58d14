// Package main is the entry point for the riv image viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/riv/internal/app"
	"github.com/dshills/riv/internal/config"
	"github.com/dshills/riv/internal/renderer/backend"
	"github.com/dshills/riv/internal/renderer/window"
	"github.com/dshills/riv/internal/texture"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	logLevel   string
	frontend   string
	fullscreen bool
	paths      []string
	set        map[string]bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	viewer := cfg.Viewer()
	logger, closeLog, err := openLogger(cfg.Logging(), viewer.Frontend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	if err := cfg.Validate(); err != nil {
		logger.Warn("config: %v", err)
	}

	switch viewer.Frontend {
	case config.FrontendWindow:
		err = runWindow(ctx, opts, cfg, logger, viewer)
	default:
		err = runTerminal(ctx, opts, cfg, logger)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("%v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runTerminal(ctx context.Context, opts options, cfg *config.Config, logger *app.Logger) error {
	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer term.Shutdown()

	a, err := newApp(opts, cfg, logger, term)
	if err != nil {
		return err
	}
	defer a.Close()

	return backend.Run(ctx, term, a)
}

func runWindow(ctx context.Context, opts options, cfg *config.Config, logger *app.Logger, viewer config.ViewerConfig) error {
	a, err := newApp(opts, cfg, logger, window.NewBackend())
	if err != nil {
		return err
	}
	defer a.Close()

	wopts := window.DefaultOptions()
	wopts.Fullscreen = viewer.Fullscreen
	return window.Run(ctx, a, wopts)
}

func newApp(opts options, cfg *config.Config, logger *app.Logger, b texture.Backend) (*app.Application, error) {
	return app.New(app.Options{
		Paths:   opts.paths,
		Config:  cfg,
		Backend: b,
		Logger:  logger,
		Watch:   true,
	})
}

// loadConfig reads the config file and environment, then applies the
// flags that were given on the command line.
func loadConfig(ctx context.Context, opts options) (*config.Config, error) {
	var copts []config.Option
	if opts.configPath != "" {
		copts = append(copts, config.WithPath(opts.configPath))
	}
	cfg := config.New(copts...)
	if err := cfg.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	overrides := map[string]struct {
		path  string
		value any
	}{
		"log-level":  {"logging.level", opts.logLevel},
		"frontend":   {"viewer.frontend", opts.frontend},
		"fullscreen": {"viewer.fullscreen", opts.fullscreen},
	}
	for name, o := range overrides {
		if !opts.set[name] {
			continue
		}
		if err := cfg.Set(o.path, o.value); err != nil {
			return nil, fmt.Errorf("-%s: %w", name, err)
		}
	}
	return cfg, nil
}

// openLogger writes to logging.file. Without one, the window frontend logs
// to stderr and the terminal frontend, which owns the tty, discards logs.
func openLogger(lc config.LoggingConfig, frontend string) (*app.Logger, func(), error) {
	lcfg := app.DefaultLoggerConfig()
	lcfg.Level = app.ParseLogLevel(lc.Level)
	closeFn := func() {}

	switch {
	case lc.File != "":
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		lcfg.Output = f
		closeFn = func() { _ = f.Close() }
	case frontend == config.FrontendWindow:
		lcfg.Output = os.Stderr
	default:
		lcfg.Output = io.Discard
	}
	return app.NewLogger(lcfg), closeFn, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.frontend, "frontend", config.FrontendTerminal, "Frontend (terminal, window)")
	flag.BoolVar(&opts.fullscreen, "fullscreen", false, "Start the window fullscreen")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "riv - image viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: riv [options] images...\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  riv *.jpg                   View images in the terminal\n")
		fmt.Fprintf(os.Stderr, "  riv -frontend window a.png  View in a window\n")
		fmt.Fprintf(os.Stderr, "  riv -c ~/riv.toml *.png     Use another config file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("riv %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}
	switch opts.frontend {
	case config.FrontendTerminal, config.FrontendWindow:
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid frontend %q (must be terminal or window)\n", opts.frontend)
		os.Exit(1)
	}

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	opts.paths = flag.Args()
	if len(opts.paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	return opts
}
