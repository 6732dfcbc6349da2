package vision

import (
	"github.com/menta2k/image-features/pkg/raster"
	"github.com/menta2k/image-features/pkg/types"
)

// markArm is the half-length of the cross drawn by MarkSpot.
const markArm = 9

// MarkSpot draws a magenta cross centred on p in place. Channels beyond the
// third are left alone; parts of the cross outside the image are dropped.
func MarkSpot(im *raster.Image, p types.Point) {
	color := [3]float64{1, 0, 1}
	for i := -markArm; i <= markArm; i++ {
		for c, v := range color {
			im.Set(p.X+i, p.Y, c, v)
			im.Set(p.X, p.Y+i, c, v)
		}
	}
}

// MarkCorners draws a cross on every descriptor's point.
func MarkCorners(im *raster.Image, descs []types.Descriptor) {
	for _, d := range descs {
		MarkSpot(im, d.P)
	}
}
