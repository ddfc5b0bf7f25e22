// Package imagemap adds an external intensity image onto a height field.
package imagemap

import (
	"fmt"
	"math"

	"github.com/Faultbox/terragen/internal/heightfield"
)

// Source yields greyscale intensity in [0,1] by integer pixel coordinate.
type Source interface {
	IntensityAt(x, y int) (float64, error)
}

// Scale maps grid cells to pixels and intensity to height.
// X and Z scale the cell coordinates; Y scales the intensity.
type Scale struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// DefaultScale samples one pixel per cell at full height.
func DefaultScale() Scale {
	return Scale{X: 1, Y: 1, Z: 1}
}

// Apply adds src.IntensityAt(floor(x*X), floor(z*Z)) * Y to every cell (x, z).
// The first sampling error aborts the pass; f may then be partially updated
// and must not be committed.
func Apply(f *heightfield.Field, src Source, s Scale) error {
	res := f.Resolution()
	for z := 0; z < res; z++ {
		pz := int(math.Floor(float64(z) * s.Z))
		for x := 0; x < res; x++ {
			px := int(math.Floor(float64(x) * s.X))
			v, err := src.IntensityAt(px, pz)
			if err != nil {
				return fmt.Errorf("sampling pixel (%d,%d) for cell (%d,%d): %w", px, pz, x, z, err)
			}
			f.Add(x, z, float32(v*s.Y))
		}
	}
	return nil
}
