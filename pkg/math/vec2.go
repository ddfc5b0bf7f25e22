// Package math provides small vector helpers for grid geometry.
package math

import "math"

// Vec2 is a 2D point or offset on the height-field plane.
type Vec2 struct {
	X, Y float64
}

// GridPoint returns the point at integer cell coordinates.
func GridPoint(x, y int) Vec2 {
	return Vec2{float64(x), float64(y)}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// GridDiagonal returns the distance from (0,0) to (resolution, resolution),
// the normalising length for falloff distances on a square grid.
func GridDiagonal(resolution int) float64 {
	return GridPoint(0, 0).Distance(GridPoint(resolution, resolution))
}
