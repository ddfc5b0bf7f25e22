package heightfield

import "math/rand/v2"

// unitSteps is the number of evenly spaced values Uniform can return
// between lo and hi, minus one.
const unitSteps = 1 << 53

// Uniform draws from the closed range [lo, hi]. Both bounds can be returned.
func Uniform(rng *rand.Rand, lo, hi float32) float32 {
	u := float64(rng.Uint64N(unitSteps+1)) / unitSteps
	return lo + float32(u*float64(hi-lo))
}

// Randomize adds one independent uniform draw from [lo, hi] to every cell.
func Randomize(f *Field, rng *rand.Rand, lo, hi float32) {
	for i := range f.cells {
		f.cells[i] += Uniform(rng, lo, hi)
	}
}

// Reset sets every cell to zero.
func Reset(f *Field) {
	f.Fill(0)
}
