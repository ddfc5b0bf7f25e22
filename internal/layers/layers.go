// Package layers composites weighted fractal-noise layers onto a height field.
package layers

import (
	"fmt"

	"github.com/Faultbox/terragen/internal/noise"
)

// Params configures one noise layer.
type Params struct {
	ScaleX      float64 `yaml:"scale_x"`
	ScaleY      float64 `yaml:"scale_y"`
	OffsetX     int     `yaml:"offset_x"`
	OffsetY     int     `yaml:"offset_y"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	HeightScale float64 `yaml:"height_scale"`
	Remove      bool    `yaml:"remove,omitempty"`
}

// DefaultParams returns the configuration given to every new layer.
func DefaultParams() Params {
	return Params{
		ScaleX:      0.01,
		ScaleY:      0.01,
		OffsetX:     0,
		OffsetY:     0,
		Octaves:     3,
		Persistence: 8,
		HeightScale: 0.09,
	}
}

// Validate checks the layer can be sampled.
func (p Params) Validate() error {
	return noise.CheckOctaves(p.Octaves)
}

// contribution is the height this layer adds at cell (x, y).
func (p Params) contribution(prim noise.Primitive, x, y int) float32 {
	nx := float64(x+p.OffsetX) * p.ScaleX
	ny := float64(y+p.OffsetY) * p.ScaleY
	return float32(noise.Sample(prim, nx, ny, p.Octaves, p.Persistence) * p.HeightScale)
}

// List is an ordered collection of layers that is never empty.
type List struct {
	layers []Params
}

// NewList returns a list holding the given layers, or one default layer if
// none are given.
func NewList(params ...Params) *List {
	l := &List{layers: append([]Params(nil), params...)}
	l.ensureNotEmpty()
	return l
}

// Len returns the number of layers.
func (l *List) Len() int {
	return len(l.layers)
}

// Layers returns a copy of the layers in insertion order.
func (l *List) Layers() []Params {
	return append([]Params(nil), l.layers...)
}

// At returns the layer at index i.
func (l *List) At(i int) Params {
	return l.layers[i]
}

// Update replaces the layer at index i.
func (l *List) Update(i int, p Params) error {
	if i < 0 || i >= len(l.layers) {
		return fmt.Errorf("layer index %d out of range [0,%d)", i, len(l.layers))
	}
	l.layers[i] = p
	return nil
}

// MarkForRemoval sets the removal flag of layer i.
func (l *List) MarkForRemoval(i int) error {
	if i < 0 || i >= len(l.layers) {
		return fmt.Errorf("layer index %d out of range [0,%d)", i, len(l.layers))
	}
	l.layers[i].Remove = true
	return nil
}

// Add appends one default layer.
func (l *List) Add() {
	l.layers = append(l.layers, DefaultParams())
}

// RemoveFlagged deletes every layer marked for removal and returns how many
// were removed. A default layer is re-inserted if the list ends up empty.
func (l *List) RemoveFlagged() int {
	kept := l.layers[:0]
	for _, p := range l.layers {
		if !p.Remove {
			kept = append(kept, p)
		}
	}
	removed := len(l.layers) - len(kept)
	clear(l.layers[len(kept):])
	l.layers = kept
	l.ensureNotEmpty()
	return removed
}

// Validate checks every layer.
func (l *List) Validate() error {
	for i, p := range l.layers {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

func (l *List) ensureNotEmpty() {
	if len(l.layers) == 0 {
		l.layers = append(l.layers, DefaultParams())
	}
}
