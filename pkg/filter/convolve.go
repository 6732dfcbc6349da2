package filter

import (
	"fmt"
	"math"

	"github.com/menta2k/image-features/internal/parallel"
	"github.com/menta2k/image-features/pkg/raster"
)

// Convolve applies kernel to im and returns a new image.
//
// The kernel must have either one channel or as many channels as im. A
// 1-channel kernel is broadcast to every image channel. With preserve set the
// output keeps im's channel count and each channel is filtered on its own;
// otherwise the per-channel responses are summed into a single channel.
//
// The kernel is centred at (w/2, h/2); odd sizes give a symmetric window.
func Convolve(im, kernel *raster.Image, preserve bool) (*raster.Image, error) {
	if im == nil || kernel == nil {
		return nil, fmt.Errorf("%w: nil image or kernel", raster.ErrInvalidParameter)
	}
	if kernel.Channels() != 1 && kernel.Channels() != im.Channels() {
		return nil, fmt.Errorf("%w: kernel %s does not match image %s", raster.ErrDimensionMismatch, kernel, im)
	}

	outChannels := 1
	if preserve {
		outChannels = im.Channels()
	}
	out, err := raster.Make(im.Width(), im.Height(), outChannels)
	if err != nil {
		return nil, err
	}

	kw, kh := kernel.Width(), kernel.Height()
	cx, cy := kw/2, kh/2
	parallel.Rows(im.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < im.Width(); x++ {
				var sum float64
				for c := 0; c < im.Channels(); c++ {
					if preserve {
						sum = 0
					}
					kc := min(c, kernel.Channels()-1)
					for ky := 0; ky < kh; ky++ {
						for kx := 0; kx < kw; kx++ {
							sum += im.Get(x+kx-cx, y+ky-cy, c) * kernel.Get(kx, ky, kc)
						}
					}
					if preserve {
						out.Set(x, y, c, sum)
					}
				}
				if !preserve {
					out.Set(x, y, 0, sum)
				}
			}
		}
	})
	return out, nil
}

// Smooth blurs every channel of im with a Gaussian of standard deviation
// sigma.
func Smooth(im *raster.Image, sigma float64) (*raster.Image, error) {
	g, err := Gaussian(sigma)
	if err != nil {
		return nil, err
	}
	return Convolve(im, g, true)
}

// Sobel returns the gradient magnitude and direction (radians, atan2(gy, gx))
// of im. Multi-channel images are differentiated on the sum of their
// channels.
func Sobel(im *raster.Image) (magnitude, direction *raster.Image, err error) {
	gx, err := Convolve(im, SobelGx(), false)
	if err != nil {
		return nil, nil, err
	}
	gy, err := Convolve(im, SobelGy(), false)
	if err != nil {
		return nil, nil, err
	}

	magnitude = raster.MustMake(im.Width(), im.Height(), 1)
	direction = raster.MustMake(im.Width(), im.Height(), 1)
	dx, dy := gx.Data(), gy.Data()
	mag, dir := magnitude.Data(), direction.Data()
	for i := range mag {
		mag[i] = math.Hypot(dx[i], dy[i])
		dir[i] = math.Atan2(dy[i], dx[i])
	}
	return magnitude, direction, nil
}
