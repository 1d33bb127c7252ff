// Package config handles configuration loading and validation for planar.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/colonyops/planar/internal/core/styles"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Plane   PlaneConfig   `yaml:"plane"`
	Zoom    ZoomConfig    `yaml:"zoom"`
	Sizes   SizesConfig   `yaml:"sizes"`
	Callout CalloutConfig `yaml:"callout"`
	TUI     TUIConfig     `yaml:"tui"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// PlaneConfig is the initial view and marker.
type PlaneConfig struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
	Step float64 `yaml:"step"`
	Snap bool    `yaml:"snap"`
	X    float64 `yaml:"x"` // initial marker position
	Y    float64 `yaml:"y"`
}

// ZoomConfig controls wheel and key zooming.
type ZoomConfig struct {
	In      float64 `yaml:"in"`  // factor applied when zooming in, below 1
	Out     float64 `yaml:"out"` // factor applied when zooming out, above 1
	MinSpan float64 `yaml:"min_span"`
	MaxSpan float64 `yaml:"max_span"`
}

// SizeRange is a slider with bounds.
type SizeRange struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Value float64 `yaml:"value"`
}

// SizesConfig holds the label font and marker size sliders.
type SizesConfig struct {
	Font        SizeRange `yaml:"font"`
	Point       SizeRange `yaml:"point"`
	RadiusScale float64   `yaml:"radius_scale"` // marker radius = point size * radius_scale
}

// CalloutConfig controls the coordinate callout.
type CalloutConfig struct {
	Gap float64 `yaml:"gap"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Plane: PlaneConfig{
			XMin: -10,
			XMax: 10,
			YMin: -10,
			YMax: 10,
			Step: 1,
		},
		Zoom: ZoomConfig{
			In:      0.8,
			Out:     1.25,
			MinSpan: 1e-6,
			MaxSpan: 1e9,
		},
		Sizes: SizesConfig{
			Font:        SizeRange{Min: 8, Max: 32, Value: 12},
			Point:       SizeRange{Min: 0.2, Max: 2, Value: 0.7},
			RadiusScale: 10,
		},
		Callout: CalloutConfig{Gap: 6},
		TUI:     TUIConfig{Theme: styles.DefaultTheme},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Plane.Step == 0 {
		c.Plane.Step = defaults.Plane.Step
	}
	if c.Zoom.In == 0 {
		c.Zoom.In = defaults.Zoom.In
	}
	if c.Zoom.Out == 0 {
		c.Zoom.Out = defaults.Zoom.Out
	}
	if c.Zoom.MinSpan == 0 {
		c.Zoom.MinSpan = defaults.Zoom.MinSpan
	}
	if c.Zoom.MaxSpan == 0 {
		c.Zoom.MaxSpan = defaults.Zoom.MaxSpan
	}
	if c.Sizes.RadiusScale == 0 {
		c.Sizes.RadiusScale = defaults.Sizes.RadiusScale
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// PresetsFile returns the path to the saved range presets.
func (c *Config) PresetsFile() string {
	return filepath.Join(c.DataDir, "ranges.yaml")
}

// LogFile returns the default log file path inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "planar.log")
}
