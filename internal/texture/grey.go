package texture

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// ErrOutOfBounds is returned by a Strict source for coordinates outside the image.
var ErrOutOfBounds = errors.New("pixel coordinates out of bounds")

// WrapMode decides what happens to coordinates outside the image.
type WrapMode uint8

// Wrap modes.
const (
	Clamp  WrapMode = iota // use the nearest edge pixel
	Repeat                 // tile the image
	Strict                 // report ErrOutOfBounds
)

// ParseWrapMode converts a config name to a WrapMode.
func ParseWrapMode(name string) (WrapMode, error) {
	switch strings.ToLower(name) {
	case "clamp", "":
		return Clamp, nil
	case "repeat":
		return Repeat, nil
	case "strict":
		return Strict, nil
	default:
		return 0, fmt.Errorf("unknown wrap mode %q", name)
	}
}

// String returns the config name of the mode.
func (m WrapMode) String() string {
	switch m {
	case Clamp:
		return "clamp"
	case Repeat:
		return "repeat"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("WrapMode(%d)", m)
	}
}

// Greyscale reads luma intensities from an image.
// Pixel (0,0) is the bottom-left corner; y grows upwards.
type Greyscale struct {
	img  image.Image
	wrap WrapMode
}

// NewGreyscale wraps img as an intensity source.
func NewGreyscale(img image.Image, wrap WrapMode) *Greyscale {
	return &Greyscale{img: img, wrap: wrap}
}

// Size returns the image dimensions.
func (g *Greyscale) Size() (width, height int) {
	b := g.img.Bounds()
	return b.Dx(), b.Dy()
}

// IntensityAt returns the luma of pixel (x, y) in [0,1].
func (g *Greyscale) IntensityAt(x, y int) (float64, error) {
	w, h := g.Size()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("%w: empty image", ErrOutOfBounds)
	}

	switch g.wrap {
	case Repeat:
		x = ((x % w) + w) % w
		y = ((y % h) + h) % h
	case Strict:
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0, fmt.Errorf("%w: (%d,%d) in %dx%d image", ErrOutOfBounds, x, y, w, h)
		}
	default:
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
	}

	b := g.img.Bounds()
	r, gr, bl, _ := g.img.At(b.Min.X+x, b.Max.Y-1-y).RGBA()
	return Luma(r, gr, bl), nil
}

// Luma converts 16-bit RGB channels to greyscale in [0,1] using Rec. 601
// weights.
func Luma(r, g, b uint32) float64 {
	v := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 0xffff
	return min(max(v, 0), 1)
}
