package vision

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/menta2k/image-features/pkg/filter"
	"github.com/menta2k/image-features/pkg/raster"
)

// Structure matrix channel layout.
const (
	ChannelIxx = 0
	ChannelIyy = 1
	ChannelIxy = 2
)

// StructureMatrix computes the per-pixel second-moment tensor of im.
//
// The gradients Ix and Iy come from Sobel kernels applied with clamp-to-edge
// borders; multi-channel images are differentiated on the sum of their
// channels. The products Ix², Iy² and Ix·Iy are then blurred with a Gaussian
// of standard deviation sigma, a weighted stand-in for a windowed sum. The
// result has three channels: Ixx, Iyy and Ixy.
func StructureMatrix(im *raster.Image, sigma float64) (*raster.Image, error) {
	if err := filter.ValidateSigma(sigma); err != nil {
		return nil, err
	}

	ix, err := filter.Convolve(im, filter.SobelGx(), false)
	if err != nil {
		return nil, fmt.Errorf("horizontal gradient: %w", err)
	}
	iy, err := filter.Convolve(im, filter.SobelGy(), false)
	if err != nil {
		return nil, fmt.Errorf("vertical gradient: %w", err)
	}

	products, err := raster.Make(im.Width(), im.Height(), 3)
	if err != nil {
		return nil, err
	}
	gx, gy := ix.Data(), iy.Data()
	xx, yy, xy := products.Plane(ChannelIxx), products.Plane(ChannelIyy), products.Plane(ChannelIxy)
	for i := range gx {
		xx[i] = gx[i] * gx[i]
		yy[i] = gy[i] * gy[i]
		xy[i] = gx[i] * gy[i]
	}

	return filter.Smooth(products, sigma)
}

// Tensor returns the 2×2 structure tensor stored at (x, y) of a structure
// matrix image.
func Tensor(s *raster.Image, x, y int) (*mat.SymDense, error) {
	if err := requireStructure(s); err != nil {
		return nil, err
	}
	xy := s.Get(x, y, ChannelIxy)
	return mat.NewSymDense(2, []float64{
		s.Get(x, y, ChannelIxx), xy,
		xy, s.Get(x, y, ChannelIyy),
	}), nil
}

// Eigenvalues returns the eigenvalues of the tensor at (x, y) in ascending
// order. Two large eigenvalues indicate a corner, one an edge.
func Eigenvalues(s *raster.Image, x, y int) (lo, hi float64, err error) {
	t, err := Tensor(s, x, y)
	if err != nil {
		return 0, 0, err
	}
	var es mat.EigenSym
	if ok := es.Factorize(t, false); !ok {
		return 0, 0, fmt.Errorf("eigen decomposition failed at (%d,%d)", x, y)
	}
	vals := es.Values(nil)
	return vals[0], vals[1], nil
}

func requireStructure(s *raster.Image) error {
	if s.Channels() != 3 {
		return fmt.Errorf("%w: structure matrix needs 3 channels, got %s", raster.ErrDimensionMismatch, s)
	}
	return nil
}
