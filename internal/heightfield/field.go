// Package heightfield provides the square elevation grid shared by every
// generator, and the acquire/commit transaction against a terrain resource.
package heightfield

import (
	"errors"
	"fmt"
)

// Height field errors.
var (
	ErrInvalidResolution = errors.New("invalid resolution")
	ErrSizeMismatch      = errors.New("height data size does not match resolution")
)

// Field is a resolution x resolution grid of elevations, conventionally in
// [0,1]. Cells are stored row-major: index = y*resolution + x.
type Field struct {
	resolution int
	cells      []float32
}

// New returns a zero-filled field.
func New(resolution int) (*Field, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}
	return &Field{
		resolution: resolution,
		cells:      make([]float32, resolution*resolution),
	}, nil
}

// FromHeights builds a field from row-major heights. The slice is copied.
func FromHeights(resolution int, heights []float32) (*Field, error) {
	f, err := New(resolution)
	if err != nil {
		return nil, err
	}
	if len(heights) != len(f.cells) {
		return nil, fmt.Errorf("%w: got %d values for resolution %d", ErrSizeMismatch, len(heights), resolution)
	}
	copy(f.cells, heights)
	return f, nil
}

// Resolution returns the grid edge length.
func (f *Field) Resolution() int {
	return f.resolution
}

// At returns the height at (x, y).
func (f *Field) At(x, y int) float32 {
	return f.cells[y*f.resolution+x]
}

// Set overwrites the height at (x, y).
func (f *Field) Set(x, y int, v float32) {
	f.cells[y*f.resolution+x] = v
}

// Add accumulates v onto the height at (x, y).
func (f *Field) Add(x, y int, v float32) {
	f.cells[y*f.resolution+x] += v
}

// Row returns the backing slice of row y. Writes go straight to the field.
func (f *Field) Row(y int) []float32 {
	start := y * f.resolution
	return f.cells[start : start+f.resolution]
}

// Heights returns a copy of all cells in row-major order.
func (f *Field) Heights() []float32 {
	out := make([]float32, len(f.cells))
	copy(out, f.cells)
	return out
}

// Clone returns an independent copy of the field.
func (f *Field) Clone() *Field {
	return &Field{resolution: f.resolution, cells: f.Heights()}
}

// Fill sets every cell to v.
func (f *Field) Fill(v float32) {
	for i := range f.cells {
		f.cells[i] = v
	}
}

// Stats holds summary values over a field.
type Stats struct {
	Min, Max, Mean float32
}

// Stats returns the minimum, maximum and mean height.
func (f *Field) Stats() Stats {
	s := Stats{Min: f.cells[0], Max: f.cells[0]}
	var sum float64
	for _, v := range f.cells {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += float64(v)
	}
	s.Mean = float32(sum / float64(len(f.cells)))
	return s
}

// Clamp limits every cell to [lo, hi].
func (f *Field) Clamp(lo, hi float32) {
	for i, v := range f.cells {
		f.cells[i] = min(max(v, lo), hi)
	}
}
