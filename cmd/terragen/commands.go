package main

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/terragen/internal/config"
	"github.com/Faultbox/terragen/internal/export"
	"github.com/Faultbox/terragen/internal/layers"
	"github.com/Faultbox/terragen/internal/logger"
	"github.com/Faultbox/terragen/internal/storage"
	"github.com/Faultbox/terragen/internal/terrain"
	"github.com/Faultbox/terragen/internal/texture"
)

type app struct {
	cfg   *config.Config
	store *storage.Store
	gen   *terrain.Generator
}

// generator opens the selected terrain, creating it if needed. Only
// commands that generate or read that terrain call it.
func (a *app) generator() (*terrain.Generator, error) {
	if a.gen != nil {
		return a.gen, nil
	}

	t, err := a.store.Terrain(a.cfg.Terrain.Name, a.cfg.Terrain.Resolution)
	if err != nil {
		return nil, err
	}
	gen, err := terrain.New(t.Name(), t, a.cfg)
	if err != nil {
		return nil, err
	}
	logger.Sugar.Debugf("terrain %q resolution %d in %s", t.Name(), t.Resolution(), a.cfg.Terrain.Database)
	a.gen = gen
	return gen, nil
}

// generate wraps a Generator operation as a command.
func generate(op func(g *terrain.Generator) error) func(a *app, args []string) error {
	return func(a *app, _ []string) error {
		gen, err := a.generator()
		if err != nil {
			return err
		}
		return op(gen)
	}
}

var commands = map[string]func(a *app, args []string) error{
	"noise":        generate((*terrain.Generator).Noise),
	"layers":       generate((*terrain.Generator).MultiNoise),
	"voronoi":      generate((*terrain.Generator).Voronoi),
	"random":       generate((*terrain.Generator).Random),
	"reset":        generate((*terrain.Generator).Reset),
	"image":        cmdImage,
	"layer-add":    cmdLayerAdd,
	"layer-remove": cmdLayerRemove,
	"layer-list":   cmdLayerList,
	"info":         cmdInfo,
	"delete":       cmdDelete,
	"export-png":   cmdExportPNG,
	"export-gat":   cmdExportGAT,
	"import-gat":   cmdImportGAT,
}

var errMissingArg = errors.New("missing argument")

func (a *app) gatOptions() export.GATOptions {
	return export.GATOptions{
		AltitudeScale: a.cfg.Export.AltitudeScale,
		WaterLevel:    a.cfg.Export.WaterLevel,
	}
}

func cmdImage(a *app, args []string) error {
	path := a.cfg.Image.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("%w: image file", errMissingArg)
	}

	wrap, err := texture.ParseWrapMode(a.cfg.Image.Wrap)
	if err != nil {
		return err
	}
	img, err := texture.Load(path)
	if err != nil {
		return err
	}
	gen, err := a.generator()
	if err != nil {
		return err
	}
	return gen.Image(texture.NewGreyscale(img, wrap))
}

// configFile returns the config file layer edits are written to.
func configFile() string {
	if path := config.Path(); path != "" {
		return path
	}
	return "./terragen.yaml"
}

// saveLayers writes l into the config file. The file is re-read so flag
// overrides of this run are not persisted.
func saveLayers(l *layers.List) error {
	path := configFile()
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	cfg.Layers = l.Layers()
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	logger.Info("layer list saved", zap.String("path", path), zap.Int("layers", len(cfg.Layers)))
	return nil
}

func cmdLayerAdd(a *app, _ []string) error {
	l := layers.NewList(a.cfg.Layers...)
	l.Add()
	return saveLayers(l)
}

func cmdLayerRemove(a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: layer index", errMissingArg)
	}

	l := layers.NewList(a.cfg.Layers...)
	for _, arg := range args {
		i, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("layer index %q: %w", arg, err)
		}
		if err := l.MarkForRemoval(i); err != nil {
			return err
		}
	}
	l.RemoveFlagged()
	return saveLayers(l)
}

func cmdLayerList(a *app, _ []string) error {
	fmt.Printf("%-3s %-8s %-8s %-7s %-7s %-7s %-11s %s\n",
		"#", "scale_x", "scale_y", "off_x", "off_y", "octaves", "persistence", "height")
	for i, p := range layers.NewList(a.cfg.Layers...).Layers() {
		fmt.Printf("%-3d %-8g %-8g %-7d %-7d %-7d %-11g %g\n",
			i, p.ScaleX, p.ScaleY, p.OffsetX, p.OffsetY, p.Octaves, p.Persistence, p.HeightScale)
	}
	return nil
}

func cmdInfo(a *app, _ []string) error {
	gen, err := a.generator()
	if err != nil {
		return err
	}
	f, err := gen.Snapshot()
	if err != nil {
		return err
	}
	s := f.Stats()

	fmt.Printf("Terrain:    %s\n", a.cfg.Terrain.Name)
	fmt.Printf("Resolution: %d\n", f.Resolution())
	fmt.Printf("Min:        %.4f\n", s.Min)
	fmt.Printf("Max:        %.4f\n", s.Max)
	fmt.Printf("Mean:       %.4f\n", s.Mean)
	fmt.Println()

	infos, err := a.store.List()
	if err != nil {
		return err
	}
	fmt.Printf("Stored terrains (%s):\n", a.cfg.Terrain.Database)
	for _, info := range infos {
		fmt.Printf("  %-20s %5d  %s\n", info.Name, info.Resolution, info.Updated.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func cmdDelete(a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: terrain name", errMissingArg)
	}
	return a.store.Delete(args[0])
}

func cmdExportPNG(a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: output file", errMissingArg)
	}
	gen, err := a.generator()
	if err != nil {
		return err
	}
	f, err := gen.Snapshot()
	if err != nil {
		return err
	}
	if err := export.WritePNG(args[0], f); err != nil {
		return err
	}
	logger.Info("preview written", zap.String("path", args[0]))
	return nil
}

func cmdExportGAT(a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: output file", errMissingArg)
	}
	gen, err := a.generator()
	if err != nil {
		return err
	}
	f, err := gen.Snapshot()
	if err != nil {
		return err
	}
	s, err := export.WriteGAT(args[0], f, a.gatOptions())
	if err != nil {
		return err
	}
	logger.Info("GAT written",
		zap.String("path", args[0]),
		zap.Int("cells", s.Cells),
		zap.Int("water", s.Water),
		zap.Float32("min_altitude", s.MinAltitude),
		zap.Float32("max_altitude", s.MaxAltitude))
	fmt.Printf("Cells:    %d (%d water, %d walkable)\n", s.Cells, s.Water, s.Walkable)
	fmt.Printf("Altitude: %.2f .. %.2f\n", s.MinAltitude, s.MaxAltitude)
	return nil
}

func cmdImportGAT(a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: input file", errMissingArg)
	}
	f, err := export.ReadGAT(args[0], a.gatOptions())
	if err != nil {
		return err
	}
	gen, err := a.generator()
	if err != nil {
		return err
	}
	return gen.Import(f.Resolution(), f.Heights())
}
