package heightfield

import (
	"fmt"
	"sync"
)

// Resource owns the stored heights of one terrain.
// GetHeights and SetHeights exchange full row-major grids; SetHeights must
// apply the whole grid or nothing.
type Resource interface {
	Resolution() int
	GetHeights() ([]float32, error)
	SetHeights(heights []float32) error
}

// Acquire returns an independent working copy of the resource's heights.
// With reset set the copy is zero-filled and the stored heights are not read.
func Acquire(res Resource, reset bool) (*Field, error) {
	resolution := res.Resolution()
	if reset {
		return New(resolution)
	}
	if resolution < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}

	heights, err := res.GetHeights()
	if err != nil {
		return nil, fmt.Errorf("reading heights: %w", err)
	}
	return FromHeights(resolution, heights)
}

// Commit writes the whole field back to the resource in one call.
func Commit(res Resource, f *Field) error {
	if res.Resolution() != f.resolution {
		return fmt.Errorf("%w: field %d, resource %d", ErrSizeMismatch, f.resolution, res.Resolution())
	}
	if err := res.SetHeights(f.Heights()); err != nil {
		return fmt.Errorf("writing heights: %w", err)
	}
	return nil
}

// Memory is a Resource held in process memory.
type Memory struct {
	mu         sync.RWMutex
	resolution int
	heights    []float32
}

// NewMemory returns a zero-filled in-memory resource.
func NewMemory(resolution int) (*Memory, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}
	return &Memory{
		resolution: resolution,
		heights:    make([]float32, resolution*resolution),
	}, nil
}

// Resolution implements Resource.
func (m *Memory) Resolution() int {
	return m.resolution
}

// GetHeights implements Resource.
func (m *Memory) GetHeights() ([]float32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]float32, len(m.heights))
	copy(out, m.heights)
	return out, nil
}

// SetHeights implements Resource.
func (m *Memory) SetHeights(heights []float32) error {
	if len(heights) != m.resolution*m.resolution {
		return fmt.Errorf("%w: got %d values for resolution %d", ErrSizeMismatch, len(heights), m.resolution)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copy(m.heights, heights)
	return nil
}
