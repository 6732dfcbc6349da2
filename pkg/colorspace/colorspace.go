// Package colorspace converts raster images between RGB, HSV and grayscale.
//
// HSV rasters store hue, saturation and value in channels 0, 1 and 2, each in
// [0,1]; hue is the angle in degrees divided by 360. Conversions between RGB
// and HSV run in place.
package colorspace

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/menta2k/image-features/internal/parallel"
	"github.com/menta2k/image-features/pkg/raster"
)

// Luma weights used by Grayscale.
const (
	LumaR = 0.299
	LumaG = 0.587
	LumaB = 0.114
)

// Grayscale returns a 1-channel luma approximation of an RGB image.
func Grayscale(im *raster.Image) (*raster.Image, error) {
	if err := requireRGB(im); err != nil {
		return nil, err
	}
	gray, err := raster.Make(im.Width(), im.Height(), 1)
	if err != nil {
		return nil, err
	}
	r, g, b := im.Plane(0), im.Plane(1), im.Plane(2)
	out := gray.Data()
	for i := range out {
		out[i] = LumaR*r[i] + LumaG*g[i] + LumaB*b[i]
	}
	return gray, nil
}

// Shift adds v to every sample of channel c in place.
func Shift(im *raster.Image, c int, v float64) error {
	if c < 0 || c >= im.Channels() {
		return fmt.Errorf("%w: channel %d out of range for %s", raster.ErrInvalidParameter, c, im)
	}
	plane := im.Plane(c)
	for i := range plane {
		plane[i] += v
	}
	return nil
}

// Scale multiplies every sample of channel c by v in place.
func Scale(im *raster.Image, c int, v float64) error {
	if c < 0 || c >= im.Channels() {
		return fmt.Errorf("%w: channel %d out of range for %s", raster.ErrInvalidParameter, c, im)
	}
	plane := im.Plane(c)
	for i := range plane {
		plane[i] *= v
	}
	return nil
}

// RGBToHSV converts channels 0-2 from RGB to HSV in place.
func RGBToHSV(im *raster.Image) error {
	if err := requireRGB(im); err != nil {
		return err
	}
	r, g, b := im.Plane(0), im.Plane(1), im.Plane(2)
	forEachPixel(im, func(i int) {
		h, s, v := colorful.Color{R: r[i], G: g[i], B: b[i]}.Hsv()
		r[i], g[i], b[i] = h/360, s, v
	})
	return nil
}

// HSVToRGB converts channels 0-2 from HSV back to RGB in place.
func HSVToRGB(im *raster.Image) error {
	if err := requireRGB(im); err != nil {
		return err
	}
	h, s, v := im.Plane(0), im.Plane(1), im.Plane(2)
	forEachPixel(im, func(i int) {
		c := colorful.Hsv(wrapHue(h[i])*360, s[i], v[i])
		h[i], s[i], v[i] = c.R, c.G, c.B
	})
	return nil
}

// wrapHue maps any hue into [0,1).
func wrapHue(h float64) float64 {
	h -= float64(int(h))
	if h < 0 {
		h++
	}
	return h
}

func forEachPixel(im *raster.Image, fn func(i int)) {
	w := im.Width()
	parallel.Rows(im.Height(), func(start, end int) {
		for i := start * w; i < end*w; i++ {
			fn(i)
		}
	})
}

func requireRGB(im *raster.Image) error {
	if im.Channels() < 3 {
		return fmt.Errorf("%w: expected at least 3 channels, got %s", raster.ErrDimensionMismatch, im)
	}
	return nil
}
