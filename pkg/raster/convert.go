package raster

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// FromImage converts any image.Image into a 3-channel RGB raster with samples
// in [0,1]. Alpha is discarded.
func FromImage(img image.Image) (*Image, error) {
	src := imaging.Clone(img)
	b := src.Bounds()
	im, err := Make(b.Dx(), b.Dy(), 3)
	if err != nil {
		return nil, err
	}
	n := im.width * im.height
	for y := 0; y < im.height; y++ {
		i := y * src.Stride
		for x := 0; x < im.width; x++ {
			p := x + y*im.width
			im.data[p] = float64(src.Pix[i+0]) / 255
			im.data[p+n] = float64(src.Pix[i+1]) / 255
			im.data[p+2*n] = float64(src.Pix[i+2]) / 255
			i += 4
		}
	}
	return im, nil
}

// ToImage renders the raster as an opaque NRGBA image. One- and two-channel
// rasters are drawn as gray from channel 0; otherwise channels 0-2 are RGB.
// Samples are clamped to [0,1] before quantisation.
func ToImage(im *Image) *image.NRGBA {
	out := imaging.New(im.width, im.height, color.NRGBA{A: 255})
	gray := im.channels < 3
	for y := 0; y < im.height; y++ {
		i := y * out.Stride
		for x := 0; x < im.width; x++ {
			if gray {
				v := quantize(im.Get(x, y, 0))
				out.Pix[i+0], out.Pix[i+1], out.Pix[i+2] = v, v, v
			} else {
				out.Pix[i+0] = quantize(im.Get(x, y, 0))
				out.Pix[i+1] = quantize(im.Get(x, y, 1))
				out.Pix[i+2] = quantize(im.Get(x, y, 2))
			}
			out.Pix[i+3] = 255
			i += 4
		}
	}
	return out
}

func quantize(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
