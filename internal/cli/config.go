package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the demo configuration, read from a TOML file:
//
//	title = "frames orbit"
//	width = 512
//	height = 512
//	deep = true
//	dead_zone = 2.0
//	log_level = "debug"
//	script = "scripts/drag.json"
//	instances = 2
//	show_fps = true
//
// Command-line flags override file values.
type Config struct {
	Title     string  `toml:"title"`
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Deep      bool    `toml:"deep"`
	DeadZone  float64 `toml:"dead_zone"`
	LogLevel  string  `toml:"log_level"`
	Script    string  `toml:"script"`
	Instances int     `toml:"instances"`
	ShowFPS   bool    `toml:"show_fps"`
	Debug     bool    `toml:"debug"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:     "frames orbit",
		Width:     256,
		Height:    256,
		Deep:      true,
		LogLevel:  "info",
		Instances: 1,
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error
// when optional is set.
func LoadConfig(path string, optional bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first unusable value.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.DeadZone < 0 {
		return fmt.Errorf("config: dead_zone %v must not be negative", c.DeadZone)
	}
	if c.Instances < 1 {
		return fmt.Errorf("config: instances %d must be at least 1", c.Instances)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
