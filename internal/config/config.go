// Package config loads mapyard configuration from TOML files and watches
// them for changes.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration.
type Config struct {
	UI  UIConfig  `toml:"ui"`
	Log LogConfig `toml:"log"`
}

// UIConfig configures the UI task loop.
type UIConfig struct {
	// QueueSize is the capacity of the UI task queue.
	QueueSize int `toml:"queue_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn or error.
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		UI:  UIConfig{QueueSize: 256},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from the given path, layered over the
// defaults. A missing file is not an error; the defaults are returned.
// An empty path skips loading entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := Default()
	if c.UI.QueueSize <= 0 {
		c.UI.QueueSize = def.UI.QueueSize
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}
