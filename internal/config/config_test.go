package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/terragen/internal/heightfield"
	"github.com/Faultbox/terragen/internal/layers"
	"github.com/Faultbox/terragen/internal/noise"
	"github.com/Faultbox/terragen/internal/voronoi"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Terrain defaults
	if cfg.Terrain.Resolution != 513 {
		t.Errorf("expected resolution 513, got %d", cfg.Terrain.Resolution)
	}
	if cfg.Terrain.ResetOnGenerate {
		t.Error("expected reset_on_generate to be false by default")
	}
	if cfg.Terrain.NoisePrimitive != noise.PrimitiveSimplex {
		t.Errorf("expected simplex primitive, got %s", cfg.Terrain.NoisePrimitive)
	}

	// Noise defaults
	if cfg.Noise.ScaleX != 0.01 || cfg.Noise.ScaleY != 0.01 {
		t.Errorf("expected noise scale 0.01, got %v/%v", cfg.Noise.ScaleX, cfg.Noise.ScaleY)
	}
	if cfg.Noise.Octaves != 3 {
		t.Errorf("expected 3 octaves, got %d", cfg.Noise.Octaves)
	}
	if cfg.Noise.Persistence != 8 {
		t.Errorf("expected persistence 8, got %v", cfg.Noise.Persistence)
	}
	if cfg.Noise.HeightScale != 0.09 {
		t.Errorf("expected height scale 0.09, got %v", cfg.Noise.HeightScale)
	}
	if len(cfg.Layers) != 1 {
		t.Errorf("expected one default layer, got %d", len(cfg.Layers))
	}

	// Voronoi defaults
	if cfg.Voronoi.Peaks != 5 {
		t.Errorf("expected 5 peaks, got %d", cfg.Voronoi.Peaks)
	}
	if cfg.Voronoi.Falloff != 0.2 || cfg.Voronoi.Dropoff != 0.6 {
		t.Errorf("expected falloff 0.2 dropoff 0.6, got %v %v", cfg.Voronoi.Falloff, cfg.Voronoi.Dropoff)
	}
	if cfg.Voronoi.MinHeight != 0.1 || cfg.Voronoi.MaxHeight != 0.5 {
		t.Errorf("expected height band [0.1,0.5], got [%v,%v]", cfg.Voronoi.MinHeight, cfg.Voronoi.MaxHeight)
	}
	if cfg.Voronoi.Shape != voronoi.Linear {
		t.Errorf("expected linear shape, got %s", cfg.Voronoi.Shape)
	}

	// Random and image defaults
	if cfg.Random.Min != 0 || cfg.Random.Max != 0.1 {
		t.Errorf("expected random range [0,0.1], got [%v,%v]", cfg.Random.Min, cfg.Random.Max)
	}
	if cfg.Image.Scale.X != 1 || cfg.Image.Scale.Y != 1 || cfg.Image.Scale.Z != 1 {
		t.Errorf("expected image scale (1,1,1), got %+v", cfg.Image.Scale)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "terragen.yaml")

	yamlContent := `
terrain:
  name: "archipelago"
  resolution: 257
  reset_on_generate: true
  seed: 1234
  noise_primitive: perlin

noise:
  scale_x: 0.02
  octaves: 5

layers:
  - scale_x: 0.01
    scale_y: 0.01
    octaves: 2
    persistence: 0.5
    height_scale: 0.1
  - scale_x: 0.05
    scale_y: 0.05
    offset_x: 100
    octaves: 4
    persistence: 2
    height_scale: 0.2

voronoi:
  peaks: 12
  shape: combined

random:
  min: -0.05
  max: 0.05

image:
  path: "island.png"
  wrap: repeat
  scale:
    x: 2
    y: 0.5
    z: 2

logging:
  level: "debug"
  log_file: "terragen.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.Name != "archipelago" || cfg.Terrain.Resolution != 257 {
		t.Errorf("unexpected terrain section: %+v", cfg.Terrain)
	}
	if !cfg.Terrain.ResetOnGenerate {
		t.Error("expected reset_on_generate to be true")
	}
	if cfg.Terrain.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", cfg.Terrain.Seed)
	}

	// Unset noise keys keep their defaults
	if cfg.Noise.ScaleX != 0.02 || cfg.Noise.ScaleY != 0.01 || cfg.Noise.Octaves != 5 {
		t.Errorf("unexpected noise section: %+v", cfg.Noise)
	}

	if len(cfg.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(cfg.Layers))
	}
	if cfg.Layers[1].OffsetX != 100 || cfg.Layers[1].HeightScale != 0.2 {
		t.Errorf("unexpected second layer: %+v", cfg.Layers[1])
	}

	if cfg.Voronoi.Peaks != 12 || cfg.Voronoi.Shape != voronoi.Combined {
		t.Errorf("unexpected voronoi section: %+v", cfg.Voronoi)
	}
	if cfg.Voronoi.Falloff != 0.2 {
		t.Errorf("expected default falloff to survive, got %v", cfg.Voronoi.Falloff)
	}

	if cfg.Random.Min != -0.05 || cfg.Random.Max != 0.05 {
		t.Errorf("unexpected random section: %+v", cfg.Random)
	}
	if cfg.Image.Path != "island.png" || cfg.Image.Wrap != "repeat" || cfg.Image.Scale.Y != 0.5 {
		t.Errorf("unexpected image section: %+v", cfg.Image)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "terragen.log" {
		t.Errorf("expected log file 'terragen.log', got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
terrain:
  resolution: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileUnknownShape(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "shape.yaml")
	if err := os.WriteFile(configPath, []byte("voronoi:\n  shape: cubic\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for unknown shape, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/terragen.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Resolution = 0
	cfg.Terrain.NoisePrimitive = "worley"
	cfg.Noise.Octaves = 0
	cfg.Layers = append(cfg.Layers, layers.Params{Octaves: -2})
	cfg.Voronoi.Peaks = -1
	cfg.Image.Wrap = "mirror"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	if !errors.Is(err, heightfield.ErrInvalidResolution) {
		t.Error("expected ErrInvalidResolution in result")
	}
	if !errors.Is(err, noise.ErrInvalidOctaves) {
		t.Error("expected ErrInvalidOctaves in result")
	}
	if !errors.Is(err, voronoi.ErrNegativePeakCount) {
		t.Error("expected ErrNegativePeakCount in result")
	}

	msg := err.Error()
	for _, key := range []string{"terrain.resolution", "terrain.noise_primitive", "noise:", "layers[1]", "voronoi:", "image.wrap"} {
		if !strings.Contains(msg, key) {
			t.Errorf("expected %q in %q", key, msg)
		}
	}
}

func TestValidateInvertedPeakHeights(t *testing.T) {
	cfg := Default()
	cfg.Voronoi.MinHeight, cfg.Voronoi.MaxHeight = 0.8, 0.2

	if err := cfg.Validate(); !errors.Is(err, voronoi.ErrInvertedHeights) {
		t.Errorf("expected ErrInvertedHeights, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Name = "saved"
	cfg.Layers = append(cfg.Layers, layers.Params{ScaleX: 0.3, Octaves: 2, HeightScale: 0.4})
	cfg.Voronoi.Shape = voronoi.SinusoidalPower

	path := filepath.Join(t.TempDir(), "nested", "terragen.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Terrain.Name != "saved" {
		t.Errorf("expected name 'saved', got %s", loaded.Terrain.Name)
	}
	if len(loaded.Layers) != 2 || loaded.Layers[1] != cfg.Layers[1] {
		t.Errorf("layers not preserved: %+v", loaded.Layers)
	}
	if loaded.Voronoi.Shape != voronoi.SinusoidalPower {
		t.Errorf("expected sinpow shape, got %s", loaded.Voronoi.Shape)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "terragen.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  resolution: 65\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find terragen.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "terrain and database flags",
			setup: func() {
				*flagTerrain = "canyon"
				*flagDatabase = "/tmp/canyon.sqlite"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Name != "canyon" {
					t.Errorf("expected terrain 'canyon', got %s", cfg.Terrain.Name)
				}
				if cfg.Terrain.Database != "/tmp/canyon.sqlite" {
					t.Errorf("expected database override, got %s", cfg.Terrain.Database)
				}
			},
			teardown: func() {
				*flagTerrain = ""
				*flagDatabase = ""
			},
		},
		{
			name:  "reset flag",
			setup: func() { *flagReset = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Terrain.ResetOnGenerate {
					t.Error("expected reset_on_generate with reset flag")
				}
			},
			teardown: func() { *flagReset = false },
		},
		{
			name: "resolution and seed flags",
			setup: func() {
				*flagResolution = 129
				*flagSeed = 77
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Resolution != 129 {
					t.Errorf("expected resolution 129, got %d", cfg.Terrain.Resolution)
				}
				if cfg.Terrain.Seed != 77 {
					t.Errorf("expected seed 77, got %d", cfg.Terrain.Seed)
				}
			},
			teardown: func() {
				*flagResolution = 0
				*flagSeed = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "terragen.yaml")

	yamlContent := `
terrain:
  name: from-file
  resolution: 257
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagResolution = 1025
	defer func() {
		*flagConfig = ""
		*flagResolution = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Resolution should be from flag, not file
	if cfg.Terrain.Resolution != 1025 {
		t.Errorf("expected resolution 1025 from flag, got %d", cfg.Terrain.Resolution)
	}

	// Name should be from file since no flag override
	if cfg.Terrain.Name != "from-file" {
		t.Errorf("expected name from file, got %s", cfg.Terrain.Name)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "terragen.yaml")
	if err := os.WriteFile(configPath, []byte("noise:\n  octaves: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, noise.ErrInvalidOctaves) {
		t.Errorf("expected ErrInvalidOctaves, got %v", err)
	}
}

func TestLoadFileIgnoresFlags(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "terragen.yaml")
	if err := os.WriteFile(configPath, []byte("terrain:\n  name: island\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagReset = true
	*flagTerrain = "scratch"
	*flagDebug = true
	defer func() {
		*flagReset = false
		*flagTerrain = ""
		*flagDebug = false
	}()

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Terrain.Name != "island" {
		t.Errorf("expected name from file, got %s", cfg.Terrain.Name)
	}
	if cfg.Terrain.ResetOnGenerate {
		t.Error("reset flag leaked into LoadFile result")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("debug flag leaked into LoadFile result: level %s", cfg.Logging.Level)
	}
}

func TestLoadFileMissingAndInvalid(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFile(filepath.Join(dir, "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile on missing file failed: %v", err)
	}
	if cfg.Terrain.Name != "default" {
		t.Errorf("expected defaults, got name %s", cfg.Terrain.Name)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("terrain: [not, a, map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
