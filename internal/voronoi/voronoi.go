// Package voronoi raises radial peaks on a height field. Each peak spreads a
// falloff surface across the grid and every cell keeps the highest value
// seen so far.
package voronoi

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/dgravesa/go-parallel/parallel"
	"go.uber.org/zap"

	"github.com/Faultbox/terragen/internal/heightfield"
	"github.com/Faultbox/terragen/internal/logger"
	vmath "github.com/Faultbox/terragen/pkg/math"
)

// Parameter errors.
var (
	ErrNegativePeakCount = errors.New("peak count must not be negative")
	ErrInvertedHeights   = errors.New("min_height must not exceed max_height")
)

// Params configures a peak synthesis pass.
type Params struct {
	Peaks     int     `yaml:"peaks"`
	Falloff   float64 `yaml:"falloff"`
	Dropoff   float64 `yaml:"dropoff"`
	MinHeight float32 `yaml:"min_height"`
	MaxHeight float32 `yaml:"max_height"`
	Shape     Shape   `yaml:"shape"`
}

// DefaultParams returns the editor defaults.
func DefaultParams() Params {
	return Params{
		Peaks:     5,
		Falloff:   0.2,
		Dropoff:   0.6,
		MinHeight: 0.1,
		MaxHeight: 0.5,
		Shape:     Linear,
	}
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.Peaks < 0 {
		return ErrNegativePeakCount
	}
	if p.MinHeight > p.MaxHeight {
		return fmt.Errorf("%w: %v > %v", ErrInvertedHeights, p.MinHeight, p.MaxHeight)
	}
	if int(p.Shape) >= len(shapeNames) {
		return ErrUnknownShape
	}
	return nil
}

// Peak is one drawn peak: a cell and its height.
type Peak struct {
	X, Y   int
	Height float32
}

// PeakSource draws peaks for a grid of the given resolution.
type PeakSource interface {
	Next(resolution int) Peak
}

// RandomPeaks draws uniformly distributed cells and heights.
type RandomPeaks struct {
	rng                  *rand.Rand
	minHeight, maxHeight float32
}

// NewRandomPeaks returns a source drawing heights from [minHeight, maxHeight].
func NewRandomPeaks(rng *rand.Rand, minHeight, maxHeight float32) *RandomPeaks {
	return &RandomPeaks{rng: rng, minHeight: minHeight, maxHeight: maxHeight}
}

// Next implements PeakSource.
func (r *RandomPeaks) Next(resolution int) Peak {
	x := r.rng.IntN(resolution)
	h := heightfield.Uniform(r.rng, r.minHeight, r.maxHeight)
	y := r.rng.IntN(resolution)
	return Peak{X: x, Y: y, Height: h}
}

// Result reports what a synthesis pass did.
type Result struct {
	Accepted int
	Rejected int
}

// Synthesize draws p.Peaks peaks from src and raises each onto f.
// A peak whose height does not exceed the field at its own cell is skipped
// and still counts towards p.Peaks. Peaks are applied in order; cells within
// one peak's pass are updated in parallel.
func Synthesize(f *heightfield.Field, p Params, src PeakSource) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	var res Result
	resolution := f.Resolution()
	maxDistance := vmath.GridDiagonal(resolution)
	surface := p.Shape.surface(p.Falloff, p.Dropoff)

	for i := 0; i < p.Peaks; i++ {
		peak := src.Next(resolution)
		if f.At(peak.X, peak.Y) >= peak.Height {
			res.Rejected++
			logger.Debug("peak rejected",
				zap.Int("index", i),
				zap.Int("x", peak.X),
				zap.Int("y", peak.Y),
				zap.Float32("height", peak.Height))
			continue
		}

		raise(f, peak, surface, maxDistance)
		res.Accepted++
		logger.Debug("peak raised",
			zap.Int("index", i),
			zap.Int("x", peak.X),
			zap.Int("y", peak.Y),
			zap.Float32("height", peak.Height))
	}

	return res, nil
}

// raise sets the peak cell and max-merges the falloff surface into every
// other cell.
func raise(f *heightfield.Field, peak Peak, surface surfaceFunc, maxDistance float64) {
	f.Set(peak.X, peak.Y, peak.Height)

	center := vmath.GridPoint(peak.X, peak.Y)
	ph := float64(peak.Height)

	parallel.For(f.Resolution(), func(y, _ int) {
		row := f.Row(y)
		for x := range row {
			if x == peak.X && y == peak.Y {
				continue
			}
			d := center.Distance(vmath.GridPoint(x, y)) / maxDistance
			if h := float32(surface(ph, d)); h > row[x] {
				row[x] = h
			}
		}
	})
}
