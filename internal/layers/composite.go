package layers

import (
	"github.com/dgravesa/go-parallel/parallel"

	"github.com/Faultbox/terragen/internal/heightfield"
	"github.com/Faultbox/terragen/internal/noise"
)

// ApplySingle adds one noise layer to every cell of f.
func ApplySingle(f *heightfield.Field, prim noise.Primitive, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	parallel.For(f.Resolution(), func(y, _ int) {
		row := f.Row(y)
		for x := range row {
			row[x] += p.contribution(prim, x, y)
		}
	})
	return nil
}

// ApplyAll adds the contribution of every layer in l to every cell of f.
// Each cell accumulates all layers in list order.
func ApplyAll(f *heightfield.Field, prim noise.Primitive, l *List) error {
	if err := l.Validate(); err != nil {
		return err
	}

	layers := l.layers
	parallel.For(f.Resolution(), func(y, _ int) {
		row := f.Row(y)
		for x := range row {
			v := row[x]
			for _, p := range layers {
				v += p.contribution(prim, x, y)
			}
			row[x] = v
		}
	})
	return nil
}
