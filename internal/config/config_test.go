package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-starfield/internal/render"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "starfield.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
seed: 42
color: "#d0c8ff"
pixel_ratio: 2
frame_interval: 33ms
window:
  width: 800
  height: 600
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 33*time.Millisecond, cfg.FrameInterval)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "ls-starfield", cfg.Window.Title, "unset nested fields keep defaults")
	assert.Equal(t, "#05050f", cfg.Background)
	assert.Equal(t, 2.0, cfg.Ratio(1))

	c, err := cfg.StarColor()
	require.NoError(t, err)
	assert.Equal(t, render.RGB{R: 0xd0, G: 0xc8, B: 0xff}, c)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad color", `color: "blue"`},
		{"ratio too high", `pixel_ratio: 9`},
		{"frame interval too short", `frame_interval: 1ms`},
		{"cell width zero", `cell_width: 0`},
		{"unknown log level", `log_level: trace`},
		{"tiny window", "window:\n  width: 10\n  height: 10"},
		{"not yaml", `color: [unclosed`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestRatio_Fallback(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1.5, cfg.Ratio(1.5))
}
