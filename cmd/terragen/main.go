// terragen generates procedural height fields and stores them as named
// terrains in a SQLite database.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/terragen/internal/config"
	"github.com/Faultbox/terragen/internal/logger"
	"github.com/Faultbox/terragen/internal/storage"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}
	if args[0] == "help" {
		printUsage()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, args[0], args[1:]); err != nil {
		logger.Error("command failed", zap.String("command", args[0]), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config, command string, args []string) error {
	cmd, ok := commands[command]
	if !ok {
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}

	store, err := storage.Open(cfg.Terrain.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	return cmd(&app{cfg: cfg, store: store}, args)
}

func printUsage() {
	fmt.Println(`terragen - procedural height field generator

Usage:
  terragen [flags] <command> [args]

Commands:
  noise                 Add the configured noise layer
  layers                Add every layer in the layer list
  voronoi               Raise radial peaks
  random                Add uniform random noise
  image [file]          Add a greyscale height image (default: image.path)
  reset                 Flatten the terrain to zero
  layer-add             Append a default layer to the layer list
  layer-remove <i>...   Remove layers by index
  layer-list            Print the layer list
  info                  Show terrain statistics and stored terrains
  delete <name>         Delete a stored terrain
  export-png <out>      Write a 16-bit greyscale preview
  export-gat <out>      Write a GAT altitude table
  import-gat <in>       Replace the terrain with a GAT altitude table

Flags:
  -config <path>        Config file (default ./terragen.yaml)
  -terrain <name>       Terrain name
  -db <path>            Terrain database
  -resolution <n>       Resolution for new terrains
  -reset                Start every operation from a flat grid
  -seed <n>             Random seed (0 = random)
  -debug                Enable debug logging

Examples:
  terragen -terrain island -resolution 257 reset
  terragen -terrain island voronoi
  terragen -terrain island export-png island.png`)
}
