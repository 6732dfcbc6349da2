package filter

import (
	"github.com/menta2k/image-features/pkg/colorspace"
	"github.com/menta2k/image-features/pkg/raster"
)

// ColorizeSobel renders edges as colour: the normalised gradient direction
// becomes the hue and the normalised magnitude drives both saturation and
// value. The result is an RGB image.
func ColorizeSobel(im *raster.Image) (*raster.Image, error) {
	mag, dir, err := Sobel(im)
	if err != nil {
		return nil, err
	}
	mag.FeatureNormalize()
	dir.FeatureNormalize()

	hsv := raster.MustMake(im.Width(), im.Height(), 3)
	copy(hsv.Plane(0), dir.Data())
	copy(hsv.Plane(1), mag.Data())
	copy(hsv.Plane(2), mag.Data())
	if err := colorspace.HSVToRGB(hsv); err != nil {
		return nil, err
	}
	return hsv, nil
}
