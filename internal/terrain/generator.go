// Package terrain runs generation operations against a terrain resource.
// Every operation is one transaction: acquire a working copy, let one
// generator mutate it, then commit it back in a single write. A failed
// operation commits nothing.
package terrain

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terragen/internal/config"
	"github.com/Faultbox/terragen/internal/heightfield"
	"github.com/Faultbox/terragen/internal/imagemap"
	"github.com/Faultbox/terragen/internal/layers"
	"github.com/Faultbox/terragen/internal/logger"
	"github.com/Faultbox/terragen/internal/noise"
	"github.com/Faultbox/terragen/internal/voronoi"
)

// Operation names, as they appear in logs.
const (
	OpNoise      = "noise"
	OpLayers     = "layers"
	OpVoronoi    = "voronoi"
	OpRandom     = "random"
	OpImage      = "image"
	OpReset      = "reset"
	OpImportGrid = "import"
)

// Generator applies generators to one terrain resource.
type Generator struct {
	name   string
	res    heightfield.Resource
	cfg    *config.Config
	prim   noise.Primitive
	rng    *rand.Rand
	layers *layers.List
	peaks  voronoi.PeakSource // nil: draw from rng
}

// Option customises a Generator.
type Option func(*Generator)

// WithPeakSource replaces the random peak draw, e.g. with scripted peaks.
func WithPeakSource(src voronoi.PeakSource) Option {
	return func(g *Generator) { g.peaks = src }
}

// WithRand replaces the random source used by random and voronoi.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// New creates a Generator for the named resource.
func New(name string, res heightfield.Resource, cfg *config.Config, opts ...Option) (*Generator, error) {
	seed := cfg.Terrain.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	prim, err := noise.NewPrimitive(cfg.Terrain.NoisePrimitive, seed)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		name:   name,
		res:    res,
		cfg:    cfg,
		prim:   prim,
		rng:    rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9E3779B97F4A7C15)),
		layers: layers.NewList(cfg.Layers...),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Layers returns the generator's layer list. Changes affect later
// MultiNoise calls.
func (g *Generator) Layers() *layers.List {
	return g.layers
}

// SetReset changes the reset-on-generate policy for later operations.
func (g *Generator) SetReset(reset bool) {
	g.cfg.Terrain.ResetOnGenerate = reset
}

// run executes one acquire -> mutate -> commit transaction.
func (g *Generator) run(op string, mutate func(f *heightfield.Field) error) error {
	start := time.Now()
	log := logger.Operation(op, g.name)
	reset := g.cfg.Terrain.ResetOnGenerate

	f, err := heightfield.Acquire(g.res, reset)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := mutate(f); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := heightfield.Commit(g.res, f); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	stats := f.Stats()
	log.Info("generation committed",
		zap.Int("resolution", f.Resolution()),
		zap.Bool("reset", reset),
		zap.Float32("min", stats.Min),
		zap.Float32("max", stats.Max),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Noise adds the configured single noise layer.
func (g *Generator) Noise() error {
	return g.run(OpNoise, func(f *heightfield.Field) error {
		return layers.ApplySingle(f, g.prim, g.cfg.Noise)
	})
}

// MultiNoise adds every layer in the layer list.
func (g *Generator) MultiNoise() error {
	return g.run(OpLayers, func(f *heightfield.Field) error {
		return layers.ApplyAll(f, g.prim, g.layers)
	})
}

// Voronoi raises the configured radial peaks.
func (g *Generator) Voronoi() error {
	p := g.cfg.Voronoi
	src := g.peaks
	if src == nil {
		src = voronoi.NewRandomPeaks(g.rng, p.MinHeight, p.MaxHeight)
	}

	return g.run(OpVoronoi, func(f *heightfield.Field) error {
		res, err := voronoi.Synthesize(f, p, src)
		if err != nil {
			return err
		}
		logger.Operation(OpVoronoi, g.name).Debug("peaks placed",
			zap.Int("accepted", res.Accepted),
			zap.Int("rejected", res.Rejected))
		return nil
	})
}

// Random adds uniform noise from the configured range.
func (g *Generator) Random() error {
	r := g.cfg.Random
	return g.run(OpRandom, func(f *heightfield.Field) error {
		heightfield.Randomize(f, g.rng, r.Min, r.Max)
		return nil
	})
}

// Image adds src scaled by the configured image scale.
func (g *Generator) Image(src imagemap.Source) error {
	return g.run(OpImage, func(f *heightfield.Field) error {
		return imagemap.Apply(f, src, g.cfg.Image.Scale)
	})
}

// Reset flattens the terrain to zero.
func (g *Generator) Reset() error {
	return g.run(OpReset, func(f *heightfield.Field) error {
		heightfield.Reset(f)
		return nil
	})
}

// Import replaces the terrain with externally produced heights of the
// same resolution.
func (g *Generator) Import(resolution int, heights []float32) error {
	return g.run(OpImportGrid, func(f *heightfield.Field) error {
		if resolution != f.Resolution() {
			return fmt.Errorf("%w: import %d, terrain %d",
				heightfield.ErrSizeMismatch, resolution, f.Resolution())
		}
		src, err := heightfield.FromHeights(resolution, heights)
		if err != nil {
			return err
		}
		for y := range resolution {
			copy(f.Row(y), src.Row(y))
		}
		return nil
	})
}

// Snapshot returns a copy of the committed terrain.
func (g *Generator) Snapshot() (*heightfield.Field, error) {
	return heightfield.Acquire(g.res, false)
}
