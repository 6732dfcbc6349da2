package vision

import (
	"fmt"

	"github.com/menta2k/image-features/pkg/raster"
	"github.com/menta2k/image-features/pkg/types"
)

// PatchSize is the side of the square patch sampled by Describe.
const PatchSize = 5

// DescriptorLen returns the feature vector length for an image with the
// given channel count.
func DescriptorLen(channels int) int {
	return PatchSize * PatchSize * channels
}

// Describe builds the feature vector for p: for every channel, the centre
// value minus each value of the 5×5 patch around p. Subtracting the centre
// makes the vector insensitive to uniform brightness shifts.
//
// Order is channel-major, then row (dy) major, then column (dx) minor. Patch
// reads past the border are clamped, so the vector always has
// DescriptorLen(im.Channels()) entries.
func Describe(im *raster.Image, p types.Point) (types.Descriptor, error) {
	if p.X < 0 || p.X >= im.Width() || p.Y < 0 || p.Y >= im.Height() {
		return types.Descriptor{}, fmt.Errorf("%w: point (%d,%d) outside %s image", raster.ErrInvalidParameter, p.X, p.Y, im)
	}
	return describe(im, p), nil
}

func describe(im *raster.Image, p types.Point) types.Descriptor {
	const half = PatchSize / 2
	data := make([]float64, 0, DescriptorLen(im.Channels()))
	for c := 0; c < im.Channels(); c++ {
		center := im.Get(p.X, p.Y, c)
		for dy := -half; dy <= half; dy++ {
			for dx := -half; dx <= half; dx++ {
				data = append(data, center-im.Get(p.X+dx, p.Y+dy, c))
			}
		}
	}
	return types.Descriptor{P: p, Data: data}
}
