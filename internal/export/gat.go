package export

import (
	"fmt"

	"github.com/Faultbox/terragen/internal/heightfield"
	"github.com/Faultbox/terragen/pkg/formats"
)

// GATOptions controls the height to altitude mapping.
type GATOptions struct {
	AltitudeScale float32
	WaterLevel    float32
}

// WriteGAT saves f as a GAT altitude table and describes what was written.
func WriteGAT(path string, f *heightfield.Field, opts GATOptions) (formats.GATSummary, error) {
	g, err := formats.GATFromHeights(f.Resolution(), f.Heights(), opts.AltitudeScale, opts.WaterLevel)
	if err != nil {
		return formats.GATSummary{}, fmt.Errorf("converting to GAT: %w", err)
	}
	if err := formats.WriteGATFile(path, g); err != nil {
		return formats.GATSummary{}, err
	}
	return g.Summary(), nil
}

// ReadGAT loads a GAT file as a height field.
func ReadGAT(path string, opts GATOptions) (*heightfield.Field, error) {
	g, err := formats.ParseGATFile(path)
	if err != nil {
		return nil, err
	}
	res, heights, err := g.Heights(opts.AltitudeScale)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}
	return heightfield.FromHeights(res, heights)
}
