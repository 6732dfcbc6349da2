// Package filter builds convolution kernels and applies them to raster
// images.
//
// Kernels are ordinary 1-channel raster images. Convolution reads through the
// raster's clamp-to-edge addressing, so borders replicate the edge pixels.
package filter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/menta2k/image-features/pkg/raster"
)

// L1Normalize scales every channel so its samples sum to 1. Channels that sum
// to zero are left untouched.
func L1Normalize(im *raster.Image) {
	for c := 0; c < im.Channels(); c++ {
		plane := im.Plane(c)
		sum := floats.Sum(plane)
		if sum == 0 {
			continue
		}
		floats.Scale(1/sum, plane)
	}
}

// Box returns a w×w averaging kernel.
func Box(w int) (*raster.Image, error) {
	k, err := raster.Make(w, w, 1)
	if err != nil {
		return nil, fmt.Errorf("box kernel: %w", err)
	}
	data := k.Data()
	for i := range data {
		data[i] = 1
	}
	L1Normalize(k)
	return k, nil
}

// Highpass returns the 3×3 Laplacian-style edge kernel. Its weights sum to 0.
func Highpass() *raster.Image {
	return kernel3(
		0, -1, 0,
		-1, 4, -1,
		0, -1, 0,
	)
}

// Sharpen returns the 3×3 sharpening kernel. Its weights sum to 1.
func Sharpen() *raster.Image {
	return kernel3(
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	)
}

// Emboss returns the 3×3 emboss kernel.
func Emboss() *raster.Image {
	return kernel3(
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	)
}

// SobelGx returns the horizontal-derivative Sobel kernel.
func SobelGx() *raster.Image {
	return kernel3(
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	)
}

// SobelGy returns the vertical-derivative Sobel kernel.
func SobelGy() *raster.Image {
	return kernel3(
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	)
}

// GaussianSize returns the side of the Gaussian kernel used for sigma: the
// smallest odd integer not below 6·sigma.
func GaussianSize(sigma float64) int {
	size := int(math.Ceil(6 * sigma))
	if size%2 == 0 {
		size++
	}
	return size
}

// Gaussian returns an L1-normalised square Gaussian kernel with standard
// deviation sigma, sized by GaussianSize.
func Gaussian(sigma float64) (*raster.Image, error) {
	if err := ValidateSigma(sigma); err != nil {
		return nil, err
	}
	size := GaussianSize(sigma)
	k, err := raster.Make(size, size, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: sigma %v gives kernel size %d", raster.ErrInvalidParameter, sigma, size)
	}
	if size == 1 {
		k.Set(0, 0, 0, 1)
		return k, nil
	}
	center := size / 2
	twoSigma2 := 2 * sigma * sigma
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x-center), float64(y-center)
			k.Set(x, y, 0, math.Exp(-(dx*dx+dy*dy)/twoSigma2)/(math.Pi*twoSigma2))
		}
	}
	L1Normalize(k)
	return k, nil
}

// MaxSigma is the largest accepted standard deviation. Its kernel is
// 1537 pixels square.
const MaxSigma = 256

// ValidateSigma rejects standard deviations that cannot produce a kernel.
func ValidateSigma(sigma float64) error {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return fmt.Errorf("%w: sigma must be a positive finite number, got %v", raster.ErrInvalidParameter, sigma)
	}
	if sigma > MaxSigma {
		return fmt.Errorf("%w: sigma %v exceeds %d", raster.ErrInvalidParameter, sigma, MaxSigma)
	}
	return nil
}

func kernel3(values ...float64) *raster.Image {
	k, err := raster.FromSlice(3, 3, 1, values)
	if err != nil {
		panic(err)
	}
	return k
}
