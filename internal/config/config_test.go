package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/scanquiz/internal/transition"
	"github.com/abhisek/scanquiz/internal/viewer"
)

const sample = `
catalog: /srv/cases.yaml
reduce_motion: true
debug_log: /tmp/scanquiz.log
transition:
  duration: 250ms
  fps: 20
viewer:
  max_zoom: 4
  zoom_step: 0.5
  wheel_interval: 80ms
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	assert.Equal(t, "/srv/cases.yaml", cfg.Catalog)
	assert.True(t, cfg.ReduceMotion)
	assert.Equal(t, transition.Options{Duration: 250 * time.Millisecond, FPS: 20, ReduceMotion: true}, cfg.TransitionOptions())
	assert.Equal(t, viewer.Limits{Min: 0.5, Max: 4, Step: 0.5}, cfg.ViewerLimits())
	assert.Equal(t, 80*time.Millisecond, cfg.WheelInterval())
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "viewer: [unclosed"))
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	var cfg Config
	assert.Equal(t, viewer.DefaultLimits, cfg.ViewerLimits())
	assert.Equal(t, DefaultWheelInterval, cfg.WheelInterval())
	assert.Equal(t, transition.DefaultDuration, cfg.TransitionOptions().Duration)
}

func TestPathPriority(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	p, chosen, err := Path("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "scanquiz", "config.yaml"), p)
	assert.False(t, chosen)

	t.Setenv(EnvPath, "/env/config.yaml")
	p, chosen, err = Path("")
	require.NoError(t, err)
	assert.Equal(t, "/env/config.yaml", p)
	assert.True(t, chosen)

	p, _, err = Path("/flag.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/flag.yaml", p)
}

func TestLoadDefaultMissing(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadDefault("")
	require.NoError(t, err, "a missing default file is not an error")
	assert.Equal(t, Config{}, cfg)

	_, err = LoadDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err, "a missing explicit file is an error")
}

func TestDebugLogPath(t *testing.T) {
	cfg := Config{DebugLog: "/cfg.log"}

	t.Setenv(EnvDebugLog, "")
	assert.Equal(t, "/cfg.log", cfg.DebugLogPath(""))

	t.Setenv(EnvDebugLog, "/env.log")
	assert.Equal(t, "/env.log", cfg.DebugLogPath(""))
	assert.Equal(t, "/flag.log", cfg.DebugLogPath("/flag.log"))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", time.Second},
		{"2s", 2 * time.Second},
		{"garbage", time.Second},
		{"-5s", time.Second},
	}
	for _, tt := range tests {
		if got := Duration(tt.raw, time.Second); got != tt.want {
			t.Errorf("Duration(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
