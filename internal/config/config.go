// Package config handles terragen configuration loading and management.
package config

import (
	"github.com/Faultbox/terragen/internal/imagemap"
	"github.com/Faultbox/terragen/internal/layers"
	"github.com/Faultbox/terragen/internal/noise"
	"github.com/Faultbox/terragen/internal/voronoi"
)

// Config holds every generation setting.
type Config struct {
	Terrain TerrainConfig   `yaml:"terrain"`
	Noise   layers.Params   `yaml:"noise"`
	Layers  []layers.Params `yaml:"layers"`
	Voronoi voronoi.Params  `yaml:"voronoi"`
	Random  RandomConfig    `yaml:"random"`
	Image   ImageConfig     `yaml:"image"`
	Export  ExportConfig    `yaml:"export"`
	Logging LoggingConfig   `yaml:"logging"`
}

// TerrainConfig selects the terrain resource and generation policy.
type TerrainConfig struct {
	Name       string `yaml:"name"`
	Resolution int    `yaml:"resolution"` // Used only when the terrain is created
	Database   string `yaml:"database"`
	// ResetOnGenerate makes every operation start from a zero grid instead
	// of the stored heights.
	ResetOnGenerate bool   `yaml:"reset_on_generate"`
	Seed            int64  `yaml:"seed"` // 0 = new seed every run
	NoisePrimitive  string `yaml:"noise_primitive"`
}

// RandomConfig bounds the uniform perturbation.
type RandomConfig struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// ImageConfig holds heightmap image settings.
type ImageConfig struct {
	Path  string         `yaml:"path"`
	Scale imagemap.Scale `yaml:"scale"`
	Wrap  string         `yaml:"wrap"` // clamp, repeat or strict
}

// ExportConfig holds GAT/PNG export settings.
type ExportConfig struct {
	AltitudeScale float32 `yaml:"altitude_scale"` // GAT units per height unit
	WaterLevel    float32 `yaml:"water_level"`    // Cells below this average height are water
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the editor's default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Name:            "default",
			Resolution:      513,
			Database:        "terragen.sqlite",
			ResetOnGenerate: false,
			Seed:            0,
			NoisePrimitive:  noise.PrimitiveSimplex,
		},
		Noise:   layers.DefaultParams(),
		Layers:  []layers.Params{layers.DefaultParams()},
		Voronoi: voronoi.DefaultParams(),
		Random: RandomConfig{
			Min: 0,
			Max: 0.1,
		},
		Image: ImageConfig{
			Scale: imagemap.DefaultScale(),
			Wrap:  "clamp",
		},
		Export: ExportConfig{
			AltitudeScale: 100,
			WaterLevel:    0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
