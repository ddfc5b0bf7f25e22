// Package export writes height fields to files for inspection.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/Faultbox/terragen/internal/heightfield"
)

// Preview renders f as a 16-bit greyscale image. Heights are clamped to
// [0,1]; f itself is left unchanged. The image is flipped vertically since
// the grid has its origin at the bottom-left.
func Preview(f *heightfield.Field) *image.Gray16 {
	clamped := f.Clone()
	clamped.Clamp(0, 1)

	res := clamped.Resolution()
	img := image.NewGray16(image.Rect(0, 0, res, res))

	for y := 0; y < res; y++ {
		row := clamped.Row(y)
		dstY := res - 1 - y // Flip Y
		for x, h := range row {
			img.SetGray16(x, dstY, color.Gray16{Y: quantize(h)})
		}
	}
	return img
}

// quantize maps a height in [0,1] to the full 16-bit range. NaN maps to 0.
func quantize(h float32) uint16 {
	if math.IsNaN(float64(h)) {
		return 0
	}
	return uint16(math.Round(float64(h) * math.MaxUint16))
}

// WritePNG saves a Preview of f to path, creating parent directories.
func WritePNG(path string, f *heightfield.Field) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, Preview(f)); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}
