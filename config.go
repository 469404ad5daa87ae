package snowfall

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gekko3d/snowfall/snow"
	"gopkg.in/yaml.v3"
)

// SceneConfig is the startup configuration of the demo. Every field has a default;
// a YAML file only needs the keys it overrides.
type SceneConfig struct {
	Window  WindowConfig  `yaml:"window"`
	Snow    SnowConfig    `yaml:"snow"`
	Physics PhysicsConfig `yaml:"physics"`
	Log     LogConfig     `yaml:"log"`
	// StatsInterval controls how often ms/frame is logged.
	StatsInterval time.Duration `yaml:"stats_interval"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type SnowConfig struct {
	Count int `yaml:"count"`
	// Seed 0 picks a seed from the clock at startup.
	Seed  uint64      `yaml:"seed"`
	Atlas AtlasConfig `yaml:"atlas"`
}

type AtlasConfig struct {
	// Path to a PNG sprite sheet. Empty or missing falls back to a generated atlas.
	Path     string `yaml:"path"`
	Columns  int    `yaml:"columns"`
	Rows     int    `yaml:"rows"`
	CellSize int    `yaml:"cell_size"` // pixels per generated cell
	// Filter is the sampler filter, "linear" or "nearest".
	Filter string `yaml:"filter"`
}

type PhysicsConfig struct {
	Gravity           float32 `yaml:"gravity"`
	AirResistance     float32 `yaml:"air_resistance"`
	MinScale          int     `yaml:"min_scale"`
	NumScales         int     `yaml:"num_scales"`
	MinRotateSpeed    int     `yaml:"min_rotate_speed"`
	MaxRawRotateSpeed int     `yaml:"max_raw_rotate_speed"`
	SmallChance       int     `yaml:"small_chance"`
	SwayFactor        float32 `yaml:"sway_factor"`
}

type LogConfig struct {
	Prefix string `yaml:"prefix"`
	Debug  bool   `yaml:"debug"`
}

func DefaultSceneConfig() SceneConfig {
	p := snow.DefaultParams()
	return SceneConfig{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Snowflakes",
		},
		Snow: SnowConfig{
			Count: snow.DefaultCount,
			Atlas: AtlasConfig{
				Path:     "snowflakes.png",
				Columns:  snow.DefaultAtlasColumns,
				Rows:     snow.DefaultAtlasRows,
				CellSize: 32,
				Filter:   "linear",
			},
		},
		Physics: PhysicsConfig{
			Gravity:           p.Gravity,
			AirResistance:     p.AirResistance,
			MinScale:          p.MinScale,
			NumScales:         p.NumScales,
			MinRotateSpeed:    p.MinRotateSpeed,
			MaxRawRotateSpeed: p.MaxRawRotateSpeed,
			SmallChance:       p.SmallChance,
			SwayFactor:        p.SwayFactor,
		},
		Log: LogConfig{
			Prefix: "snowfall",
		},
		StatsInterval: time.Second,
	}
}

// LoadSceneConfig reads path over the defaults. An empty path returns the defaults.
func LoadSceneConfig(path string) (SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c SceneConfig) Validate() error {
	var errs []error
	positive := func(key string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", key, v))
		}
	}

	positive("window.width", c.Window.Width)
	positive("window.height", c.Window.Height)
	positive("snow.count", c.Snow.Count)
	positive("snow.atlas.columns", c.Snow.Atlas.Columns)
	positive("snow.atlas.rows", c.Snow.Atlas.Rows)
	positive("snow.atlas.cell_size", c.Snow.Atlas.CellSize)
	positive("physics.num_scales", c.Physics.NumScales)
	positive("physics.min_scale", c.Physics.MinScale)

	if c.Snow.Atlas.Columns != c.Snow.Atlas.Rows {
		errs = append(errs, fmt.Errorf("snow.atlas must be square, got %dx%d", c.Snow.Atlas.Columns, c.Snow.Atlas.Rows))
	}
	if c.Snow.Atlas.Columns*c.Snow.Atlas.Rows < snow.TextureCycle {
		errs = append(errs, fmt.Errorf("snow.atlas needs at least %d cells, got %d",
			snow.TextureCycle, c.Snow.Atlas.Columns*c.Snow.Atlas.Rows))
	}
	if _, err := wgpuFilterMode(c.Snow.Atlas.Filter); err != nil {
		errs = append(errs, fmt.Errorf("snow.atlas.filter: %w", err))
	}
	if c.Physics.MinRotateSpeed < 0 || c.Physics.MaxRawRotateSpeed < 0 {
		errs = append(errs, errors.New("physics rotate speeds must not be negative"))
	}
	if c.Physics.SmallChance < 0 || c.Physics.SmallChance > 10 {
		errs = append(errs, fmt.Errorf("physics.small_chance must be within [0, 10], got %d", c.Physics.SmallChance))
	}
	if c.StatsInterval < 0 {
		errs = append(errs, fmt.Errorf("stats_interval must not be negative, got %s", c.StatsInterval))
	}
	return errors.Join(errs...)
}

// Params converts the physics section for the simulation.
func (c SceneConfig) Params() snow.Params {
	return snow.Params{
		Gravity:           c.Physics.Gravity,
		AirResistance:     c.Physics.AirResistance,
		MinScale:          c.Physics.MinScale,
		NumScales:         c.Physics.NumScales,
		MinRotateSpeed:    c.Physics.MinRotateSpeed,
		MaxRawRotateSpeed: c.Physics.MaxRawRotateSpeed,
		SmallChance:       c.Physics.SmallChance,
		SwayFactor:        c.Physics.SwayFactor,
	}
}

// Layout converts the window and snow sections for the simulation.
func (c SceneConfig) Layout() snow.Layout {
	return snow.Layout{
		Count:        c.Snow.Count,
		Width:        c.Window.Width,
		Height:       c.Window.Height,
		AtlasColumns: c.Snow.Atlas.Columns,
		AtlasRows:    c.Snow.Atlas.Rows,
	}
}
