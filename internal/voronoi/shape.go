package voronoi

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownShape is returned when parsing an unrecognised shape name.
var ErrUnknownShape = errors.New("unknown falloff shape")

// Shape selects how a peak's height decays with normalised distance d.
type Shape uint8

// Falloff shapes.
const (
	Linear          Shape = iota // ph - d*falloff
	Power                        // ph - d^dropoff*falloff
	Combined                     // ph - d*falloff - d^dropoff
	SinusoidalPower              // ph - (3d)^falloff - sin(2*pi*d)/dropoff
)

var shapeNames = [...]string{
	Linear:          "linear",
	Power:           "power",
	Combined:        "combined",
	SinusoidalPower: "sinpow",
}

// String returns the config name of the shape.
func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", s)
}

// ParseShape converts a config name to a Shape.
func ParseShape(name string) (Shape, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), nil
		}
	}
	if name == "sinusoidal_power" {
		return SinusoidalPower, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Shape) MarshalText() ([]byte, error) {
	if int(s) >= len(shapeNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// surfaceFunc returns the candidate height at normalised distance d from a
// peak of height ph.
type surfaceFunc func(ph, d float64) float64

// surface resolves the shape to its formula once per peak pass.
// A zero dropoff removes the sinusoidal ripple instead of dividing by zero.
func (s Shape) surface(falloff, dropoff float64) surfaceFunc {
	switch s {
	case Power:
		return func(ph, d float64) float64 {
			return ph - math.Pow(d, dropoff)*falloff
		}
	case Combined:
		return func(ph, d float64) float64 {
			return ph - d*falloff - math.Pow(d, dropoff)
		}
	case SinusoidalPower:
		if dropoff == 0 {
			return func(ph, d float64) float64 {
				return ph - math.Pow(d*3, falloff)
			}
		}
		return func(ph, d float64) float64 {
			return ph - math.Pow(d*3, falloff) - math.Sin(d*2*math.Pi)/dropoff
		}
	default:
		return func(ph, d float64) float64 {
			return ph - d*falloff
		}
	}
}
