// Package texture loads height images and exposes them as greyscale
// intensity sources.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeGrey         = 3  // Uncompressed greyscale
	TGATypeRLE          = 10 // RLE compressed true-color
	TGATypeRLEGrey      = 11 // RLE compressed greyscale
)

const (
	tgaHeaderSize            = 18
	tgaDescriptorTopToBottom = 0x20
)

// ErrTruncatedTGA is returned when pixel data ends early.
var ErrTruncatedTGA = errors.New("TGA data truncated")

// DecodeTGA decodes a TGA image.
// True-color images (types 2 and 10, 24/32 bpp) decode to *image.RGBA;
// greyscale images (types 3 and 11, 8 bpp) decode to *image.Gray, the usual
// layout for exported heightmaps.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: header", ErrTruncatedTGA)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&tgaDescriptorTopToBottom != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}

	grey := imageType == TGATypeGrey || imageType == TGATypeRLEGrey
	switch {
	case imageType == TGATypeUncompressed || imageType == TGATypeRLE:
		if bpp != 24 && bpp != 32 {
			return nil, fmt.Errorf("unsupported TGA bit depth %d for true-color (only 24/32 supported)", bpp)
		}
	case grey:
		if bpp != 8 {
			return nil, fmt.Errorf("unsupported TGA bit depth %d for greyscale (only 8 supported)", bpp)
		}
	default:
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: image ID", ErrTruncatedTGA)
	}

	d := &tgaDecoder{
		pix:           data[offset:],
		width:         width,
		height:        height,
		bytesPerPixel: bpp / 8,
		topToBottom:   topToBottom,
	}

	var img image.Image
	if grey {
		g := image.NewGray(image.Rect(0, 0, width, height))
		d.set = func(x, y int, px []byte) { g.SetGray(x, y, color.Gray{Y: px[0]}) }
		img = g
	} else {
		rgba := image.NewRGBA(image.Rect(0, 0, width, height))
		d.set = func(x, y int, px []byte) {
			a := uint8(255)
			if len(px) == 4 {
				a = px[3]
			}
			rgba.SetRGBA(x, y, color.RGBA{R: px[2], G: px[1], B: px[0], A: a})
		}
		img = rgba
	}

	var err error
	if imageType == TGATypeRLE || imageType == TGATypeRLEGrey {
		err = d.decodeRLE()
	} else {
		err = d.decodeRaw()
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

type tgaDecoder struct {
	pix           []byte
	width, height int
	bytesPerPixel int
	topToBottom   bool
	set           func(x, y int, px []byte)
}

// put stores the pixel at stream position i, honouring row order.
func (d *tgaDecoder) put(i int, px []byte) {
	x := i % d.width
	y := i / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.set(x, y, px)
}

func (d *tgaDecoder) decodeRaw() error {
	count := d.width * d.height
	if len(d.pix) < count*d.bytesPerPixel {
		return fmt.Errorf("%w: pixel data", ErrTruncatedTGA)
	}
	for i := 0; i < count; i++ {
		start := i * d.bytesPerPixel
		d.put(i, d.pix[start:start+d.bytesPerPixel])
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	count := d.width * d.height
	pixelIdx, dataIdx := 0, 0

	for pixelIdx < count {
		if dataIdx >= len(d.pix) {
			return fmt.Errorf("%w: RLE stream ended at pixel %d of %d", ErrTruncatedTGA, pixelIdx, count)
		}
		packet := d.pix[dataIdx]
		dataIdx++
		run := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run-length packet: one pixel repeated.
			if dataIdx+d.bytesPerPixel > len(d.pix) {
				return fmt.Errorf("%w: RLE packet", ErrTruncatedTGA)
			}
			px := d.pix[dataIdx : dataIdx+d.bytesPerPixel]
			dataIdx += d.bytesPerPixel
			for i := 0; i < run && pixelIdx < count; i++ {
				d.put(pixelIdx, px)
				pixelIdx++
			}
			continue
		}

		// Raw packet.
		for i := 0; i < run && pixelIdx < count; i++ {
			if dataIdx+d.bytesPerPixel > len(d.pix) {
				return fmt.Errorf("%w: raw packet", ErrTruncatedTGA)
			}
			d.put(pixelIdx, d.pix[dataIdx:dataIdx+d.bytesPerPixel])
			dataIdx += d.bytesPerPixel
			pixelIdx++
		}
	}
	return nil
}
