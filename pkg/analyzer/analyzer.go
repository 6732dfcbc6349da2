package analyzer

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/menta2k/image-features/pkg/colorspace"
	"github.com/menta2k/image-features/pkg/raster"
)

// ImageAnalyzer turns decoded images into rasters ready for detection
type ImageAnalyzer struct {
	config Config
}

// Config holds configuration for the image analyzer
type Config struct {
	MinImageSize int  // smallest accepted width or height
	MaxDimension int  // long side limit before detection, 0 = no limit
	Grayscale    bool // convert to a 1-channel luma raster, scales responses by 1/81
}

// New creates a new ImageAnalyzer with default configuration
func New() *ImageAnalyzer {
	return &ImageAnalyzer{
		config: Config{
			MinImageSize: 8,
			MaxDimension: 1024,
			Grayscale:    false,
		},
	}
}

// NewWithConfig creates a new ImageAnalyzer with custom configuration
func NewWithConfig(config Config) *ImageAnalyzer {
	return &ImageAnalyzer{config: config}
}

// ImageInfo contains basic image metadata
type ImageInfo struct {
	Width       int
	Height      int
	AspectRatio float64
	Area        int
}

// Prepared is a raster ready for detection. Scale maps raster coordinates
// back to the source image: source = raster * Scale.
type Prepared struct {
	Image *raster.Image
	Scale float64
}

// GetImageInfo returns basic information about an image
func (a *ImageAnalyzer) GetImageInfo(img image.Image) ImageInfo {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	info := ImageInfo{
		Width:  width,
		Height: height,
		Area:   width * height,
	}
	if height > 0 {
		info.AspectRatio = float64(width) / float64(height)
	}
	return info
}

// ValidateImage checks if an image meets minimum requirements
func (a *ImageAnalyzer) ValidateImage(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() < a.config.MinImageSize || bounds.Dy() < a.config.MinImageSize {
		return fmt.Errorf("%w: image too small: %dx%d (minimum: %d)",
			raster.ErrInvalidParameter, bounds.Dx(), bounds.Dy(), a.config.MinImageSize)
	}
	return nil
}

// Prepare validates img, shrinks it so its long side fits MaxDimension and
// converts it to a raster.
func (a *ImageAnalyzer) Prepare(img image.Image) (Prepared, error) {
	if err := a.ValidateImage(img); err != nil {
		return Prepared{}, err
	}

	scale := 1.0
	if maxDim := a.config.MaxDimension; maxDim > 0 {
		b := img.Bounds()
		w, h := b.Dx(), b.Dy()
		if w > maxDim || h > maxDim {
			if w >= h {
				img = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
				scale = float64(w) / float64(img.Bounds().Dx())
			} else {
				img = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
				scale = float64(h) / float64(img.Bounds().Dy())
			}
		}
	}

	im, err := raster.FromImage(img)
	if err != nil {
		return Prepared{}, fmt.Errorf("failed to convert image: %w", err)
	}
	if a.config.Grayscale {
		if im, err = colorspace.Grayscale(im); err != nil {
			return Prepared{}, fmt.Errorf("failed to convert to grayscale: %w", err)
		}
	}
	return Prepared{Image: im, Scale: scale}, nil
}
