package noise

import (
	"errors"
	"testing"
)

// linear returns x, which exposes the per-octave frequency to Sample.
type linear struct{}

func (linear) Eval(x, _ float64) float64 { return x }

func TestSampleDeterministic(t *testing.T) {
	for _, name := range []string{PrimitiveSimplex, PrimitivePerlin} {
		t.Run(name, func(t *testing.T) {
			p, err := NewPrimitive(name, 42)
			if err != nil {
				t.Fatalf("NewPrimitive failed: %v", err)
			}
			q, _ := NewPrimitive(name, 42)

			for i := 0; i < 100; i++ {
				x := float64(i) * 0.173
				y := float64(i) * 0.091
				a := Sample(p, x, y, 3, 8)
				b := Sample(p, x, y, 3, 8)
				c := Sample(q, x, y, 3, 8)
				if a != b || a != c {
					t.Fatalf("Sample(%v,%v) not deterministic: %v %v %v", x, y, a, b, c)
				}
			}
		})
	}
}

func TestSampleRange(t *testing.T) {
	for _, name := range []string{PrimitiveSimplex, PrimitivePerlin} {
		p, _ := NewPrimitive(name, 7)
		for i := 0; i < 500; i++ {
			v := Sample(p, float64(i)*0.37, float64(i)*0.11, 4, 0.5)
			if v < 0 || v > 1 {
				t.Fatalf("%s: Sample = %v outside [0,1]", name, v)
			}
		}
	}
}

func TestSampleSingleOctaveIsPrimitive(t *testing.T) {
	p := NewSimplex(3)
	for i := 0; i < 20; i++ {
		x, y := float64(i)*0.3, float64(i)*0.7
		if got, want := Sample(p, x, y, 1, 8), p.Eval(x, y); got != want {
			t.Errorf("Sample(1 octave) = %v, want %v", got, want)
		}
	}
}

func TestSamplePersistenceWeighting(t *testing.T) {
	tests := []struct {
		name        string
		octaves     int
		persistence float64
		want        float64
	}{
		// (1*1 + 2*2 + 4*4) / (1 + 2 + 4)
		{"amplifying", 3, 2, 3},
		// (1*1 + 2*0.5) / 1.5
		{"attenuating", 2, 0.5, 2.0 / 1.5},
		// only octave 0 carries weight
		{"zero persistence", 4, 0, 1},
		{"no octaves", 0, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sample(linear{}, 1, 0, tt.octaves, tt.persistence)
			if diff := got - tt.want; diff > 1e-12 || diff < -1e-12 {
				t.Errorf("Sample = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSampleZeroTotalAmplitude(t *testing.T) {
	// 1 + (-1) = 0: the raw sum is returned.
	got := Sample(linear{}, 1, 0, 2, -1)
	if got != 1-2 {
		t.Errorf("Sample = %v, want -1", got)
	}
}

func TestNewPrimitiveUnknown(t *testing.T) {
	if _, err := NewPrimitive("worley", 1); !errors.Is(err, ErrUnknownPrimitive) {
		t.Errorf("expected ErrUnknownPrimitive, got %v", err)
	}
}

func TestCheckOctaves(t *testing.T) {
	if err := CheckOctaves(1); err != nil {
		t.Errorf("CheckOctaves(1) = %v", err)
	}
	if err := CheckOctaves(0); !errors.Is(err, ErrInvalidOctaves) {
		t.Errorf("CheckOctaves(0) = %v, want ErrInvalidOctaves", err)
	}
}
