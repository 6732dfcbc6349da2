// Package vision implements the Harris corner detector.
//
// The pipeline runs StructureMatrix → Cornerness → Suppress, keeps every
// surviving response at or above a threshold and describes each surviving
// pixel with a 5×5 patch-difference vector. Every stage allocates a fresh
// output and leaves its input untouched.
package vision

import (
	"fmt"
	"image"
	"log"
	"math"

	"github.com/menta2k/image-features/internal/parallel"
	"github.com/menta2k/image-features/pkg/filter"
	"github.com/menta2k/image-features/pkg/raster"
	"github.com/menta2k/image-features/pkg/types"
)

// CornerDetector finds Harris corners and describes them
type CornerDetector struct {
	config DetectionConfig
	logger *log.Logger
}

// DetectionConfig holds configuration for corner detection
type DetectionConfig struct {
	Sigma     float64 // std. dev. of the structure matrix window
	Threshold float64 // minimum cornerness kept after suppression
	NMSRadius int     // half-width of the suppression window
}

// New creates a new CornerDetector with default configuration
func New() *CornerDetector {
	return &CornerDetector{
		config: DetectionConfig{
			Sigma:     2,
			Threshold: 50,
			NMSRadius: 3,
		},
	}
}

// NewWithConfig creates a new CornerDetector with custom configuration
func NewWithConfig(config DetectionConfig) *CornerDetector {
	return &CornerDetector{config: config}
}

// Config returns the detector configuration.
func (d *CornerDetector) Config() DetectionConfig {
	return d.config
}

// SetLogger enables per-stage debug output. A nil logger disables it.
func (d *CornerDetector) SetLogger(logger *log.Logger) {
	d.logger = logger
}

// Validate checks the configuration without running the pipeline.
func (c DetectionConfig) Validate() error {
	return validate(c.Sigma, c.Threshold, c.NMSRadius)
}

// Detect runs the pipeline on im with the detector's configuration.
func (d *CornerDetector) Detect(im *raster.Image) ([]types.Descriptor, error) {
	descs, err := detect(im, d.config.Sigma, d.config.Threshold, d.config.NMSRadius, d.logf)
	if err != nil {
		return nil, fmt.Errorf("corner detection failed: %w", err)
	}
	return descs, nil
}

// DetectImage converts img to an RGB raster and runs Detect on it.
func (d *CornerDetector) DetectImage(img image.Image) ([]types.Descriptor, error) {
	im, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	return d.Detect(im)
}

// Detect finds corners in im whose suppressed Harris response is at least
// threshold, and returns a descriptor for each in row-major order. An empty
// result is not an error. Parameters are validated before any work starts.
func Detect(im *raster.Image, sigma, threshold float64, nmsRadius int) ([]types.Descriptor, error) {
	return detect(im, sigma, threshold, nmsRadius, nil)
}

func detect(im *raster.Image, sigma, threshold float64, nmsRadius int, logf func(string, ...any)) ([]types.Descriptor, error) {
	if im == nil {
		return nil, fmt.Errorf("%w: nil image", raster.ErrInvalidParameter)
	}
	if err := validate(sigma, threshold, nmsRadius); err != nil {
		return nil, err
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	s, err := StructureMatrix(im, sigma)
	if err != nil {
		return nil, err
	}
	r, err := Cornerness(s)
	if err != nil {
		return nil, err
	}
	rs, err := Suppress(r, nmsRadius)
	if err != nil {
		return nil, err
	}

	w := rs.Width()
	var points []types.Point
	for i, v := range rs.Data() {
		if v >= threshold {
			points = append(points, types.Point{X: i % w, Y: i / w})
		}
	}
	logf("image=%s sigma=%g threshold=%g nms=%d corners=%d", im, sigma, threshold, nmsRadius, len(points))

	descs := make([]types.Descriptor, len(points))
	parallel.Rows(len(points), func(start, end int) {
		for i := start; i < end; i++ {
			descs[i] = describe(im, points[i])
		}
	})
	return descs, nil
}

func validate(sigma, threshold float64, nmsRadius int) error {
	if err := filter.ValidateSigma(sigma); err != nil {
		return err
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return fmt.Errorf("%w: threshold must be finite, got %v", raster.ErrInvalidParameter, threshold)
	}
	return ValidateRadius(nmsRadius)
}

func (d *CornerDetector) logf(format string, args ...any) {
	if d.logger != nil {
		d.logger.Printf(format, args...)
	}
}
