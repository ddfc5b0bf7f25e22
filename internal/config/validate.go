package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/terragen/internal/heightfield"
	"github.com/Faultbox/terragen/internal/noise"
	"github.com/Faultbox/terragen/internal/texture"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error

	if c.Terrain.Name == "" {
		err = multierr.Append(err, fmt.Errorf("terrain.name: must not be empty"))
	}
	if c.Terrain.Resolution < 1 {
		err = multierr.Append(err, fmt.Errorf("terrain.resolution: %w: %d",
			heightfield.ErrInvalidResolution, c.Terrain.Resolution))
	}
	if _, perr := noise.NewPrimitive(c.Terrain.NoisePrimitive, 0); perr != nil {
		err = multierr.Append(err, fmt.Errorf("terrain.noise_primitive: %w", perr))
	}
	if verr := c.Noise.Validate(); verr != nil {
		err = multierr.Append(err, fmt.Errorf("noise: %w", verr))
	}
	for i, p := range c.Layers {
		if verr := p.Validate(); verr != nil {
			err = multierr.Append(err, fmt.Errorf("layers[%d]: %w", i, verr))
		}
	}
	if verr := c.Voronoi.Validate(); verr != nil {
		err = multierr.Append(err, fmt.Errorf("voronoi: %w", verr))
	}
	if _, werr := texture.ParseWrapMode(c.Image.Wrap); werr != nil {
		err = multierr.Append(err, fmt.Errorf("image.wrap: %w", werr))
	}

	return err
}
