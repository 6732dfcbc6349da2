// Package cropper picks crop windows that keep as many detected corners as
// possible.
package cropper

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/menta2k/image-features/pkg/raster"
	"github.com/menta2k/image-features/pkg/types"
)

// CornerCropper crops images around dense clusters of feature points.
type CornerCropper struct {
	config CropConfig
}

// CropConfig holds configuration for corner-aware cropping
type CropConfig struct {
	// PaddingRatio is the fraction of the window kept clear at each edge;
	// points inside the margin do not count towards coverage.
	PaddingRatio float64 `json:"padding_ratio"`
	// QualityThreshold is the minimum quality GetOptimalCrops accepts.
	QualityThreshold float64 `json:"quality_threshold"`
}

// AspectRatio represents common aspect ratios
type AspectRatio struct {
	Width  int
	Height int
	Name   string
}

// Ratio returns width divided by height.
func (a AspectRatio) Ratio() float64 {
	return float64(a.Width) / float64(a.Height)
}

// Common aspect ratios
var (
	Square     = AspectRatio{1, 1, "square"}
	Portrait   = AspectRatio{3, 4, "portrait"}
	Landscape  = AspectRatio{4, 3, "landscape"}
	Widescreen = AspectRatio{16, 9, "widescreen"}
	Instagram  = AspectRatio{4, 5, "instagram"}
	Story      = AspectRatio{9, 16, "story"}
)

// CommonAspectRatios returns a list of commonly used aspect ratios
func CommonAspectRatios() []AspectRatio {
	return []AspectRatio{Square, Portrait, Landscape, Widescreen, Instagram, Story}
}

// DefaultConfig returns the default cropping configuration.
func DefaultConfig() CropConfig {
	return CropConfig{
		PaddingRatio:     0.1,
		QualityThreshold: 0.5,
	}
}

// New creates a new CornerCropper with default configuration
func New() *CornerCropper {
	return &CornerCropper{config: DefaultConfig()}
}

// NewWithConfig creates a new CornerCropper with custom configuration
func NewWithConfig(config CropConfig) *CornerCropper {
	return &CornerCropper{config: config}
}

// Config returns the cropper configuration.
func (c *CornerCropper) Config() CropConfig {
	return c.config
}

// CropResult contains the result of a cropping operation
type CropResult struct {
	Image       *image.NRGBA
	Region      types.Region
	AspectRatio float64
	Coverage    float64 // fraction of points inside the padded window
	Quality     float64
}

// CropToAspectRatio crops img to a preset aspect ratio.
func (c *CornerCropper) CropToAspectRatio(img image.Image, points []types.Point, aspectRatio AspectRatio) (CropResult, error) {
	if aspectRatio.Width <= 0 || aspectRatio.Height <= 0 {
		return CropResult{}, fmt.Errorf("%w: aspect ratio %dx%d", raster.ErrInvalidParameter, aspectRatio.Width, aspectRatio.Height)
	}
	return c.CropToRatio(img, points, aspectRatio.Ratio())
}

// CropToRatio finds the largest window of the target ratio and slides it
// along the free axis to the offset covering the most points. Ties go to
// the offset nearest the image centre.
func (c *CornerCropper) CropToRatio(img image.Image, points []types.Point, targetRatio float64) (CropResult, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return CropResult{}, fmt.Errorf("%w: empty image", raster.ErrInvalidParameter)
	}
	if !(targetRatio > 0) || math.IsInf(targetRatio, 0) {
		return CropResult{}, fmt.Errorf("%w: aspect ratio %g", raster.ErrInvalidParameter, targetRatio)
	}

	cropW, cropH := windowSize(width, height, targetRatio)
	freeX, freeY := width-cropW, height-cropH

	best := types.Region{X: freeX / 2, Y: freeY / 2, Width: cropW, Height: cropH}
	bestCount := c.countInside(best, points)
	bestDist := 0
	for off := 0; off <= max(freeX, freeY); off++ {
		r := types.Region{Width: cropW, Height: cropH}
		var dist int
		if freeX > 0 {
			r.X = off
			dist = abs(off - freeX/2)
		} else {
			r.Y = off
			dist = abs(off - freeY/2)
		}
		n := c.countInside(r, points)
		if n > bestCount || (n == bestCount && dist < bestDist) {
			best, bestCount, bestDist = r, n, dist
		}
	}

	coverage := 0.0
	if len(points) > 0 {
		coverage = float64(bestCount) / float64(len(points))
	}
	best.Score = coverage

	rect := image.Rect(best.X, best.Y, best.X+best.Width, best.Y+best.Height).Add(bounds.Min)
	return CropResult{
		Image:       imaging.Crop(img, rect),
		Region:      best,
		AspectRatio: targetRatio,
		Coverage:    coverage,
		Quality:     quality(width, height, best, len(points) > 0),
	}, nil
}

// CropToMultipleRatios crops an image to multiple aspect ratios
func (c *CornerCropper) CropToMultipleRatios(img image.Image, points []types.Point, ratios []AspectRatio) ([]CropResult, error) {
	results := make([]CropResult, 0, len(ratios))
	for _, ratio := range ratios {
		result, err := c.CropToAspectRatio(img, points, ratio)
		if err != nil {
			return nil, fmt.Errorf("failed to crop to %s: %w", ratio.Name, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// GetOptimalCrops returns the common-ratio crops whose quality reaches the
// configured threshold, keyed by ratio name.
func (c *CornerCropper) GetOptimalCrops(img image.Image, points []types.Point) (map[string]CropResult, error) {
	results := make(map[string]CropResult)
	for _, ratio := range CommonAspectRatios() {
		result, err := c.CropToAspectRatio(img, points, ratio)
		if err != nil {
			return nil, err
		}
		if result.Quality >= c.config.QualityThreshold {
			results[ratio.Name] = result
		}
	}
	return results, nil
}

func (c *CornerCropper) countInside(r types.Region, points []types.Point) int {
	padX := int(c.config.PaddingRatio * float64(r.Width))
	padY := int(c.config.PaddingRatio * float64(r.Height))
	inner := types.Region{
		X:      r.X + padX,
		Y:      r.Y + padY,
		Width:  r.Width - 2*padX,
		Height: r.Height - 2*padY,
	}
	n := 0
	for _, p := range points {
		if inner.Contains(p) {
			n++
		}
	}
	return n
}

func windowSize(width, height int, ratio float64) (int, int) {
	if float64(width)/float64(height) > ratio {
		w := int(math.Round(float64(height) * ratio))
		return min(max(w, 1), width), height
	}
	h := int(math.Round(float64(width) / ratio))
	return width, min(max(h, 1), height)
}

// quality blends point coverage with how much of the image survives.
func quality(width, height int, r types.Region, hasPoints bool) float64 {
	preserved := float64(r.Area()) / float64(width*height)
	if !hasPoints {
		return preserved
	}
	return 0.7*r.Score + 0.3*preserved
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
