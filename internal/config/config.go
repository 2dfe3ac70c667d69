// Package config loads starfield settings from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-starfield/internal/render"
	"github.com/litescript/ls-starfield/internal/validate"
)

// Window holds the window frontend's initial size.
type Window struct {
	Width  int    `yaml:"width" validate:"gte=64,lte=8192"`
	Height int    `yaml:"height" validate:"gte=64,lte=8192"`
	Title  string `yaml:"title"`
}

// Config holds all settings. Zero Seed means time-seeded.
type Config struct {
	Seed          uint64        `yaml:"seed"`
	Color         string        `yaml:"color" validate:"required,hexcolor"`
	Background    string        `yaml:"background" validate:"required,hexcolor"`
	PixelRatio    float64       `yaml:"pixel_ratio" validate:"omitempty,pixel_ratio"`
	FrameInterval time.Duration `yaml:"frame_interval" validate:"gte=8ms,lte=1s"`
	CellWidth     float64       `yaml:"cell_width" validate:"gte=1,lte=64"`
	CellHeight    float64       `yaml:"cell_height" validate:"gte=1,lte=64"`
	Window        Window        `yaml:"window"`
	LogLevel      string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFile       string        `yaml:"log_file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Color:         "#ffffff",
		Background:    "#05050f",
		FrameInterval: 16 * time.Millisecond, // ~60 FPS
		CellWidth:     8,
		CellHeight:    16,
		Window: Window{
			Width:  1024,
			Height: 640,
			Title:  "ls-starfield",
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// StarColor parses Color.
func (c Config) StarColor() (render.RGB, error) {
	return render.ParseHex(c.Color)
}

// BackgroundColor parses Background.
func (c Config) BackgroundColor() (render.RGB, error) {
	return render.ParseHex(c.Background)
}

// Ratio returns PixelRatio, or fallback when unset.
func (c Config) Ratio(fallback float64) float64 {
	if c.PixelRatio > 0 {
		return c.PixelRatio
	}
	return fallback
}
