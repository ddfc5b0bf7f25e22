// Package noise provides fractal Brownian motion over smooth 2D noise.
package noise

import (
	"errors"
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Noise errors.
var (
	ErrInvalidOctaves   = errors.New("octave count must be at least 1")
	ErrUnknownPrimitive = errors.New("unknown noise primitive")
)

// Primitive names accepted by NewPrimitive.
const (
	PrimitiveSimplex = "simplex"
	PrimitivePerlin  = "perlin"
)

// Primitive is a continuous, deterministic 2D noise function with output in [0,1].
type Primitive interface {
	Eval(x, y float64) float64
}

// Simplex is OpenSimplex noise normalised to [0,1].
type Simplex struct {
	noise opensimplex.Noise
}

// NewSimplex creates a simplex primitive for the given seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{noise: opensimplex.NewNormalized(seed)}
}

// Eval implements Primitive.
func (s *Simplex) Eval(x, y float64) float64 {
	return s.noise.Eval2(x, y)
}

// Perlin is single-octave classic Perlin noise remapped to [0,1].
type Perlin struct {
	noise *perlin.Perlin
}

// NewPerlin creates a Perlin primitive for the given seed.
// The library's own octave summation is disabled (n = 1); octaves are
// layered by Sample.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{noise: perlin.NewPerlin(2, 2, 1, seed)}
}

// Eval implements Primitive.
func (p *Perlin) Eval(x, y float64) float64 {
	v := (p.noise.Noise2D(x, y) + 1) / 2
	return min(max(v, 0), 1)
}

// NewPrimitive returns the named primitive.
func NewPrimitive(name string, seed int64) (Primitive, error) {
	switch name {
	case PrimitiveSimplex, "":
		return NewSimplex(seed), nil
	case PrimitivePerlin:
		return NewPerlin(seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, name)
	}
}

// CheckOctaves validates an octave count before it reaches Sample.
func CheckOctaves(octaves int) error {
	if octaves < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidOctaves, octaves)
	}
	return nil
}

// Sample sums octaves of p at (x, y). Octave i is sampled at frequency 2^i
// with amplitude persistence^i, so persistence above 1 weights the finer
// octaves more heavily. The sum is divided by the total amplitude.
// Coordinates arrive already scaled and offset. Sample returns 0 when
// octaves < 1.
func Sample(p Primitive, x, y float64, octaves int, persistence float64) float64 {
	var total, maxValue float64
	frequency := 1.0
	amplitude := 1.0

	for range octaves {
		total += p.Eval(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	if maxValue == 0 {
		return total
	}
	return total / maxValue
}
