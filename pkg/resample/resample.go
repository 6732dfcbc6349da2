// Package resample interpolates raster images at fractional coordinates and
// resizes them.
//
// Output pixel centres are mapped back into the source with
// x_src = (x_dst + 0.5)·(W_src/W_dst) − 0.5, so the two grids share their
// outer edges. Out-of-range reads use the raster's clamp-to-edge addressing.
package resample

import (
	"fmt"
	"math"

	"github.com/menta2k/image-features/internal/parallel"
	"github.com/menta2k/image-features/pkg/raster"
)

// Interpolator samples channel c of im at a fractional position.
type Interpolator func(im *raster.Image, x, y float64, c int) float64

// NNInterpolate returns the value of the nearest pixel.
func NNInterpolate(im *raster.Image, x, y float64, c int) float64 {
	return im.Get(int(math.Round(x)), int(math.Round(y)), c)
}

// BilinearInterpolate blends the four pixels surrounding (x, y) by area.
func BilinearInterpolate(im *raster.Image, x, y float64, c int) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	dx, dy := x-x0, y-y0
	ix, iy := int(x0), int(y0)

	top := (1-dx)*im.Get(ix, iy, c) + dx*im.Get(ix+1, iy, c)
	bottom := (1-dx)*im.Get(ix, iy+1, c) + dx*im.Get(ix+1, iy+1, c)
	return (1-dy)*top + dy*bottom
}

// NNResize resizes im to w×h with nearest-neighbour sampling.
func NNResize(im *raster.Image, w, h int) (*raster.Image, error) {
	return Resize(im, w, h, NNInterpolate)
}

// BilinearResize resizes im to w×h with bilinear sampling.
func BilinearResize(im *raster.Image, w, h int) (*raster.Image, error) {
	return Resize(im, w, h, BilinearInterpolate)
}

// Resize maps every pixel of a new w×h image back into im and samples it
// with interp.
func Resize(im *raster.Image, w, h int, interp Interpolator) (*raster.Image, error) {
	out, err := raster.Make(w, h, im.Channels())
	if err != nil {
		return nil, fmt.Errorf("resize to %dx%d: %w", w, h, err)
	}

	sx := float64(im.Width()) / float64(w)
	sy := float64(im.Height()) / float64(h)
	parallel.Rows(h, func(start, end int) {
		for y := start; y < end; y++ {
			srcY := (float64(y)+0.5)*sy - 0.5
			for x := 0; x < w; x++ {
				srcX := (float64(x)+0.5)*sx - 0.5
				for c := 0; c < im.Channels(); c++ {
					out.Set(x, y, c, interp(im, srcX, srcY, c))
				}
			}
		}
	})
	return out, nil
}
