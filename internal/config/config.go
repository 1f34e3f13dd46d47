// Package config loads the optional YAML settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/scanquiz/internal/transition"
	"github.com/abhisek/scanquiz/internal/viewer"
)

// EnvPath overrides the config file location.
const EnvPath = "SCANQUIZ_CONFIG"

// EnvDebugLog names a file that receives the debug log.
const EnvDebugLog = "SCANQUIZ_DEBUG_LOG"

// DefaultWheelInterval is the minimum gap between two wheel zoom steps.
const DefaultWheelInterval = 120 * time.Millisecond

// Config is the on-disk settings file. Every key is optional.
type Config struct {
	Catalog      string `yaml:"catalog"`
	ReduceMotion bool   `yaml:"reduce_motion"`
	DebugLog     string `yaml:"debug_log"`
	Transition   struct {
		Duration string `yaml:"duration"`
		FPS      int    `yaml:"fps"`
	} `yaml:"transition"`
	Viewer struct {
		MinZoom       float64 `yaml:"min_zoom"`
		MaxZoom       float64 `yaml:"max_zoom"`
		ZoomStep      float64 `yaml:"zoom_step"`
		WheelInterval string  `yaml:"wheel_interval"`
	} `yaml:"viewer"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault resolves the config path and loads it. A missing file at the
// default location yields an empty config; a missing file that was asked
// for explicitly is an error.
func LoadDefault(explicit string) (Config, error) {
	path, chosen, err := Path(explicit)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) && !chosen {
		return Config{}, nil
	}
	return cfg, err
}

// Path resolves the config file path in priority order:
// 1. explicit (the --config flag)
// 2. SCANQUIZ_CONFIG environment variable
// 3. $XDG_CONFIG_HOME/scanquiz/config.yaml
// 4. ~/.config/scanquiz/config.yaml
//
// chosen reports whether the path came from 1 or 2.
func Path(explicit string) (path string, chosen bool, err error) {
	if explicit != "" {
		return explicit, true, nil
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p, true, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "scanquiz", "config.yaml"), false, nil
}

// DebugLogPath returns the debug log file, preferring flag, then environment,
// then config. Empty means logging is off.
func (c Config) DebugLogPath(flag string) string {
	if flag != "" {
		return flag
	}
	if p := os.Getenv(EnvDebugLog); p != "" {
		return p
	}
	return c.DebugLog
}

// TransitionOptions builds the page animation settings.
func (c Config) TransitionOptions() transition.Options {
	return transition.Options{
		Duration:     Duration(c.Transition.Duration, transition.DefaultDuration),
		FPS:          c.Transition.FPS,
		ReduceMotion: c.ReduceMotion,
	}
}

// ViewerLimits returns the zoom bounds, falling back to the defaults for
// unset fields.
func (c Config) ViewerLimits() viewer.Limits {
	l := viewer.DefaultLimits
	if c.Viewer.MinZoom > 0 {
		l.Min = c.Viewer.MinZoom
	}
	if c.Viewer.MaxZoom > 0 {
		l.Max = c.Viewer.MaxZoom
	}
	if c.Viewer.ZoomStep > 0 {
		l.Step = c.Viewer.ZoomStep
	}
	return l
}

// WheelInterval is the minimum gap between wheel zoom steps.
func (c Config) WheelInterval() time.Duration {
	return Duration(c.Viewer.WheelInterval, DefaultWheelInterval)
}

// Duration parses a duration string or returns the fallback if empty or
// invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return d
	}
	return fallback
}
