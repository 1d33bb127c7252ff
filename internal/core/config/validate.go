package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/colonyops/planar/internal/core/styles"
	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		c.validatePlane(),
		c.validateZoom(),
		c.validateSizes(),
		c.validateCallout(),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
	)
}

// ValidateDeep runs Validate and then checks the config file and data
// directory on disk. An empty configPath skips the config file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func (c *Config) validatePlane() error {
	p := c.Plane
	var errs criterio.FieldErrorsBuilder

	if !finite(p.XMin, p.XMax, p.YMin, p.YMax, p.X, p.Y) {
		errs = errs.Append("plane", errors.New("values must be finite numbers"))
	}
	if !(p.XMax > p.XMin) {
		errs = errs.Append("plane.x_max", fmt.Errorf("must be greater than x_min (%g)", p.XMin))
	}
	if !(p.YMax > p.YMin) {
		errs = errs.Append("plane.y_max", fmt.Errorf("must be greater than y_min (%g)", p.YMin))
	}
	if !(p.Step > 0) {
		errs = errs.Append("plane.step", errors.New("must be positive"))
	}

	return errs.ToError()
}

func (c *Config) validateZoom() error {
	z := c.Zoom
	var errs criterio.FieldErrorsBuilder

	if !(z.In > 0 && z.In < 1) {
		errs = errs.Append("zoom.in", fmt.Errorf("must be between 0 and 1, got %g", z.In))
	}
	if !(z.Out > 1) || math.IsInf(z.Out, 0) {
		errs = errs.Append("zoom.out", fmt.Errorf("must be greater than 1, got %g", z.Out))
	}
	if !(z.MinSpan > 0) {
		errs = errs.Append("zoom.min_span", errors.New("must be positive"))
	}
	if !(z.MaxSpan > z.MinSpan) {
		errs = errs.Append("zoom.max_span", errors.New("must be greater than min_span"))
	}

	return errs.ToError()
}

func (c *Config) validateSizes() error {
	var errs criterio.FieldErrorsBuilder

	ranges := []struct {
		name string
		r    SizeRange
	}{
		{"sizes.font", c.Sizes.Font},
		{"sizes.point", c.Sizes.Point},
	}
	for _, sr := range ranges {
		name, r := sr.name, sr.r
		if !(r.Min > 0) {
			errs = errs.Append(name+".min", errors.New("must be positive"))
		}
		if !(r.Max > r.Min) {
			errs = errs.Append(name+".max", errors.New("must be greater than min"))
		}
		if r.Value < r.Min || r.Value > r.Max {
			errs = errs.Append(name+".value", fmt.Errorf("must be within [%g, %g]", r.Min, r.Max))
		}
	}
	if !(c.Sizes.RadiusScale > 0) {
		errs = errs.Append("sizes.radius_scale", errors.New("must be positive"))
	}

	return errs.ToError()
}

func (c *Config) validateCallout() error {
	if gap := c.Callout.Gap; gap < 0 || math.IsNaN(gap) {
		return criterio.NewFieldErrors("callout.gap", fmt.Errorf("must not be negative, got %g", gap))
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func knownTheme(name string) error {
	names := styles.ThemeNames()
	if !slices.Contains(names, name) {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(names, ", "))
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
