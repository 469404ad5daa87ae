package snowfall

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gekko3d/snowfall/snow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestDefaultSceneConfig(t *testing.T) {
	cfg := DefaultSceneConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "Snowflakes", cfg.Window.Title)
	assert.Equal(t, 500, cfg.Snow.Count)
	assert.Equal(t, time.Second, cfg.StatsInterval)
	assert.Equal(t, snow.DefaultParams(), cfg.Params())
	assert.Equal(t, snow.DefaultLayout(800, 600), cfg.Layout())
	assert.Equal(t, float32(-187), cfg.Params().AirResistance)
}

func TestLoadSceneConfig_EmptyPathIsDefault(t *testing.T) {
	cfg, err := LoadSceneConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSceneConfig(), cfg)
}

func TestLoadSceneConfig_OverridesOnlyGivenKeys(t *testing.T) {
	path := writeConfig(t, `
window:
  title: Blizzard
snow:
  count: 2000
  seed: 42
  atlas:
    path: ""
    filter: nearest
physics:
  sway_factor: 1.5
log:
  debug: true
stats_interval: 250ms
`)

	cfg, err := LoadSceneConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Blizzard", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 2000, cfg.Snow.Count)
	assert.Equal(t, uint64(42), cfg.Snow.Seed)
	assert.Empty(t, cfg.Snow.Atlas.Path)
	assert.Equal(t, "nearest", cfg.Snow.Atlas.Filter)
	assert.Equal(t, 16, cfg.Snow.Atlas.Columns)
	assert.Equal(t, float32(1.5), cfg.Params().SwayFactor)
	assert.Equal(t, float32(-250), cfg.Params().Gravity)
	assert.True(t, cfg.Log.Debug)
	assert.Equal(t, "snowfall", cfg.Log.Prefix)
	assert.Equal(t, 250*time.Millisecond, cfg.StatsInterval)
	assert.Equal(t, 2000, cfg.Layout().Count)
}

func TestLoadSceneConfig_MissingFile(t *testing.T) {
	_, err := LoadSceneConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadSceneConfig_BadYAML(t *testing.T) {
	path := writeConfig(t, "window: [1, 2")
	_, err := LoadSceneConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestSceneConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SceneConfig)
		want   string
	}{
		{"zero width", func(c *SceneConfig) { c.Window.Width = 0 }, "window.width must be positive"},
		{"negative count", func(c *SceneConfig) { c.Snow.Count = -1 }, "snow.count must be positive"},
		{"non square atlas", func(c *SceneConfig) { c.Snow.Atlas.Rows = 32 }, "snow.atlas must be square"},
		{"small atlas", func(c *SceneConfig) { c.Snow.Atlas.Columns, c.Snow.Atlas.Rows = 8, 8 }, "at least 256 cells"},
		{"negative rotate", func(c *SceneConfig) { c.Physics.MinRotateSpeed = -5 }, "rotate speeds must not be negative"},
		{"small chance", func(c *SceneConfig) { c.Physics.SmallChance = 11 }, "physics.small_chance"},
		{"filter", func(c *SceneConfig) { c.Snow.Atlas.Filter = "cubic" }, "unknown filter mode: cubic"},
		{"interval", func(c *SceneConfig) { c.StatsInterval = -time.Second }, "stats_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSceneConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSceneConfig_ValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultSceneConfig()
	cfg.Window.Width = 0
	cfg.Window.Height = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window.width")
	assert.Contains(t, err.Error(), "window.height")
}

func TestLoadSceneConfig_InvalidValues(t *testing.T) {
	path := writeConfig(t, "snow:\n  count: 0\n")
	_, err := LoadSceneConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snow.count must be positive")
}
