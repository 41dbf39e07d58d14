// Package config provides the configuration system for riv.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (Config.Set)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← RIV_SECTION_KEY
//	├─────────────────────────────┤
//	│  2. User Config File        │  ← $XDG_CONFIG_HOME/riv/config.toml or .yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - layer: Layer management and merging
//   - loader: TOML, YAML and environment loading
//   - watcher: fsnotify-based file watching for live reload
//
// # Basic Usage
//
//	cfg := config.New(config.WithPath(path))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	viewer := cfg.Viewer()
//	fmt.Println(viewer.PanStep)
//
// # Configuration Files
//
//	# ~/.config/riv/config.toml
//	[viewer]
//	panStep = 50
//	skipPercent = 5
//	messageTimeout = "5s"
//	background = "#000000"
//
//	[cache]
//	capacity = 0
//	chunkPixels = 1048576
//
//	[keys]
//	x = "next"
//
//	[logging]
//	level = "info"
//	file = "/tmp/riv.log"
//
// Environment variables map RIV_VIEWER_PAN_STEP to viewer.panStep.
// RIV_LOG_LEVEL, RIV_LOG_FILE, RIV_FRONTEND and RIV_BACKGROUND are shortcuts.
//
// # Live Reload
//
// Watch reports changes to the config file. Reload re-reads it and returns
// the setting paths that changed; callers apply the new values on their own
// loop.
package config
