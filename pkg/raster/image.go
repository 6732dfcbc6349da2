// Package raster provides the planar floating point image buffer that every
// processing stage reads and writes.
//
// Samples are stored channel by channel (CHW): the sample at (x, y, c) lives
// at index x + y*W + c*W*H. Reads outside the image are clamped to the nearest
// edge, so neighbourhood operations never need special cases at the border.
package raster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Image is a W×H×C buffer of float64 samples.
//
// Display images hold values in [0,1]; gradient and response maps are
// unbounded.
type Image struct {
	width    int
	height   int
	channels int
	data     []float64
}

// maxElements bounds w*h*c so the backing slice size fits in an int.
const maxElements = math.MaxInt / 8

// Make allocates a zero-initialised image.
func Make(w, h, c int) (*Image, error) {
	if w <= 0 || h <= 0 || c <= 0 {
		return nil, fmt.Errorf("%w: image dimensions must be positive, got %dx%dx%d", ErrInvalidParameter, w, h, c)
	}
	if w > maxElements/h/c {
		return nil, fmt.Errorf("%w: image dimensions %dx%dx%d are too large", ErrInvalidParameter, w, h, c)
	}
	return &Image{
		width:    w,
		height:   h,
		channels: c,
		data:     make([]float64, w*h*c),
	}, nil
}

// MustMake is like Make but panics on invalid dimensions. Intended for
// fixed-size kernels and tests.
func MustMake(w, h, c int) *Image {
	im, err := Make(w, h, c)
	if err != nil {
		panic(err)
	}
	return im
}

// FromSlice wraps data laid out in CHW order. The slice is copied.
func FromSlice(w, h, c int, data []float64) (*Image, error) {
	im, err := Make(w, h, c)
	if err != nil {
		return nil, err
	}
	if len(data) != len(im.data) {
		return nil, fmt.Errorf("%w: %dx%dx%d image needs %d samples, got %d", ErrDimensionMismatch, w, h, c, len(im.data), len(data))
	}
	copy(im.data, data)
	return im, nil
}

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.width }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.height }

// Channels returns the number of channels.
func (im *Image) Channels() int { return im.channels }

// Data returns the backing CHW slice. Writes through it are visible in the
// image.
func (im *Image) Data() []float64 { return im.data }

// Plane returns the backing slice of channel c.
func (im *Image) Plane(c int) []float64 {
	c = clampIndex(c, im.channels)
	n := im.width * im.height
	return im.data[c*n : (c+1)*n]
}

// SameSize reports whether two images share width and height.
func (im *Image) SameSize(other *Image) bool {
	return im.width == other.width && im.height == other.height
}

// SameShape reports whether two images share width, height and channel count.
func (im *Image) SameShape(other *Image) bool {
	return im.SameSize(other) && im.channels == other.channels
}

// Get returns the sample at (x, y, c). Out-of-range coordinates, including
// the channel, are clamped to the nearest valid index.
func (im *Image) Get(x, y, c int) float64 {
	x = clampIndex(x, im.width)
	y = clampIndex(y, im.height)
	c = clampIndex(c, im.channels)
	return im.data[x+y*im.width+c*im.width*im.height]
}

// Set stores v at (x, y, c). Writes outside the image are dropped.
func (im *Image) Set(x, y, c int, v float64) {
	if x < 0 || x >= im.width || y < 0 || y >= im.height || c < 0 || c >= im.channels {
		return
	}
	im.data[x+y*im.width+c*im.width*im.height] = v
}

// Copy returns a deep copy of the image.
func (im *Image) Copy() *Image {
	out := &Image{
		width:    im.width,
		height:   im.height,
		channels: im.channels,
		data:     make([]float64, len(im.data)),
	}
	copy(out.data, im.data)
	return out
}

// Clamp limits every sample to [0,1] in place.
func (im *Image) Clamp() {
	for i, v := range im.data {
		switch {
		case v < 0:
			im.data[i] = 0
		case v > 1:
			im.data[i] = 1
		}
	}
}

// FeatureNormalize linearly rescales all samples to [0,1] in place. An image
// with no spread becomes all zeros.
func (im *Image) FeatureNormalize() {
	lo, hi := floats.Min(im.data), floats.Max(im.data)
	spread := hi - lo
	if spread == 0 {
		for i := range im.data {
			im.data[i] = 0
		}
		return
	}
	floats.AddConst(-lo, im.data)
	floats.Scale(1/spread, im.data)
}

// Add returns a+b sample-wise.
func Add(a, b *Image) (*Image, error) {
	if !a.SameShape(b) {
		return nil, fmt.Errorf("%w: cannot add %s and %s", ErrDimensionMismatch, a, b)
	}
	out := a.Copy()
	floats.Add(out.data, b.data)
	return out, nil
}

// Sub returns a-b sample-wise.
func Sub(a, b *Image) (*Image, error) {
	if !a.SameShape(b) {
		return nil, fmt.Errorf("%w: cannot subtract %s from %s", ErrDimensionMismatch, b, a)
	}
	out := a.Copy()
	floats.Sub(out.data, b.data)
	return out, nil
}

// String describes the image shape, e.g. "640x480x3".
func (im *Image) String() string {
	return fmt.Sprintf("%dx%dx%d", im.width, im.height, im.channels)
}

func clampIndex(v, size int) int {
	if v >= size {
		v = size - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}
