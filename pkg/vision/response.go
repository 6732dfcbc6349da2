package vision

import (
	"github.com/menta2k/image-features/internal/parallel"
	"github.com/menta2k/image-features/pkg/raster"
)

// HarrisAlpha is the trace weight in the Harris measure.
const HarrisAlpha = 0.06

// Cornerness reduces a structure matrix to the Harris response
// R = det(S) − α·trace(S)². Negative values are weak, edge-like responses,
// not errors.
func Cornerness(s *raster.Image) (*raster.Image, error) {
	if err := requireStructure(s); err != nil {
		return nil, err
	}
	r, err := raster.Make(s.Width(), s.Height(), 1)
	if err != nil {
		return nil, err
	}

	xx, yy, xy := s.Plane(ChannelIxx), s.Plane(ChannelIyy), s.Plane(ChannelIxy)
	out := r.Data()
	w := s.Width()
	parallel.Rows(s.Height(), func(start, end int) {
		for i := start * w; i < end*w; i++ {
			det := xx[i]*yy[i] - xy[i]*xy[i]
			tr := xx[i] + yy[i]
			out[i] = det - HarrisAlpha*tr*tr
		}
	})
	return r, nil
}
