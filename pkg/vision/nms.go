package vision

import (
	"fmt"
	"math"

	"github.com/menta2k/image-features/internal/parallel"
	"github.com/menta2k/image-features/pkg/raster"
)

// Suppressed marks a response that is not a local maximum.
var Suppressed = math.Inf(-1)

// Suppress performs non-maximum suppression on a 1-channel response map.
//
// A pixel keeps its value unless some pixel in the (2·radius+1)² window
// centred on it is strictly greater, in which case it becomes Suppressed.
// Plateaus of equal maxima therefore survive together. Window reads past the
// border are clamped to the edge. A radius of 0 returns an unchanged copy.
func Suppress(r *raster.Image, radius int) (*raster.Image, error) {
	if err := ValidateRadius(radius); err != nil {
		return nil, err
	}
	if r.Channels() != 1 {
		return nil, fmt.Errorf("%w: response map needs 1 channel, got %s", raster.ErrDimensionMismatch, r)
	}

	out := r.Copy()
	if radius == 0 {
		return out, nil
	}

	w := r.Width()
	parallel.Rows(r.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				if !isLocalMax(r, x, y, radius) {
					out.Set(x, y, 0, Suppressed)
				}
			}
		}
	})
	return out, nil
}

func isLocalMax(r *raster.Image, x, y, radius int) bool {
	v := r.Get(x, y, 0)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if r.Get(x+dx, y+dy, 0) > v {
				return false
			}
		}
	}
	return true
}

// ValidateRadius rejects negative suppression windows.
func ValidateRadius(radius int) error {
	if radius < 0 {
		return fmt.Errorf("%w: window radius must not be negative, got %d", raster.ErrInvalidParameter, radius)
	}
	return nil
}
