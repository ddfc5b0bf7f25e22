package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagTerrain    = flag.String("terrain", "", "Terrain name")
	flagDatabase   = flag.String("db", "", "Terrain database path")
	flagResolution = flag.Int("resolution", 0, "Resolution for newly created terrains")
	flagReset      = flag.Bool("reset", false, "Start every operation from a flat grid")
	flagSeed       = flag.Int64("seed", 0, "Random seed (0 = random)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTerrain != "" {
		cfg.Terrain.Name = *flagTerrain
	}
	if *flagDatabase != "" {
		cfg.Terrain.Database = *flagDatabase
	}
	if *flagResolution > 0 {
		cfg.Terrain.Resolution = *flagResolution
	}
	if *flagReset {
		cfg.Terrain.ResetOnGenerate = true
	}
	if *flagSeed != 0 {
		cfg.Terrain.Seed = *flagSeed
	}
}
