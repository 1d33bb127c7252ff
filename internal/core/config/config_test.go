package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), dataDir)
	require.NoError(t, err)

	want := DefaultConfig()
	want.DataDir = dataDir
	assert.Equal(t, &want, cfg)
	assert.Equal(t, filepath.Join(dataDir, "ranges.yaml"), cfg.PresetsFile())
}

func TestLoad_OverridesKeepUnsetDefaults(t *testing.T) {
	path := writeConfig(t, `
plane:
  x_min: 0
  x_max: 4
  step: 0.5
  snap: true
zoom:
  in: 0.5
sizes:
  font:
    min: 10
    max: 20
    value: 14
tui:
  theme: gruvbox
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.Plane.XMin)
	assert.Equal(t, 4.0, cfg.Plane.XMax)
	assert.Equal(t, -10.0, cfg.Plane.YMin, "unset keys keep their default")
	assert.Equal(t, 0.5, cfg.Plane.Step)
	assert.True(t, cfg.Plane.Snap)
	assert.Equal(t, 0.5, cfg.Zoom.In)
	assert.Equal(t, 1.25, cfg.Zoom.Out)
	assert.Equal(t, SizeRange{Min: 10, Max: 20, Value: 14}, cfg.Sizes.Font)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
}

func TestLoad_ZeroValuesFallBackToDefaults(t *testing.T) {
	path := writeConfig(t, "plane:\n  step: 0\nzoom:\n  in: 0\n  out: 0\ntui:\n  theme: \"\"\n")

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 1.0, cfg.Plane.Step)
	assert.Equal(t, 0.8, cfg.Zoom.In)
	assert.Equal(t, 1.25, cfg.Zoom.Out)
	assert.NotEmpty(t, cfg.TUI.Theme)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "plane: [")
		_, err := Load(path, t.TempDir())
		assert.ErrorContains(t, err, "parse config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeConfig(t, "plane:\n  x_min: 5\n  x_max: 5\n")
		_, err := Load(path, t.TempDir())
		assert.ErrorContains(t, err, "invalid config")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }, "data_dir"},
		{"x range inverted", func(c *Config) { c.Plane.XMax = -20 }, "plane.x_max"},
		{"y range empty", func(c *Config) { c.Plane.YMax = c.Plane.YMin }, "plane.y_max"},
		{"negative step", func(c *Config) { c.Plane.Step = -1 }, "plane.step"},
		{"zoom in above one", func(c *Config) { c.Zoom.In = 1.5 }, "zoom.in"},
		{"zoom out below one", func(c *Config) { c.Zoom.Out = 0.9 }, "zoom.out"},
		{"span bounds inverted", func(c *Config) { c.Zoom.MaxSpan = 1e-9 }, "zoom.max_span"},
		{"font bounds inverted", func(c *Config) { c.Sizes.Font.Max = 4 }, "sizes.font.max"},
		{"point value outside", func(c *Config) { c.Sizes.Point.Value = 5 }, "sizes.point.value"},
		{"radius scale", func(c *Config) { c.Sizes.RadiusScale = -1 }, "sizes.radius_scale"},
		{"negative gap", func(c *Config) { c.Callout.Gap = -2 }, "callout.gap"},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "neon" }, "tui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			var fields []string
			for _, fe := range fieldErrs {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()

	assert.NoError(t, cfg.Validate())
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	cfg := DefaultConfig()
	cfg.DataDir = file

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "data_dir", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "not a directory")
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}
