// Package imagefeatures finds Harris corners in ordinary images and puts
// them to work.
//
// The heavy lifting happens in the sub-packages:
//
//  1. Raster (pkg/raster): planar float images with clamped reads
//  2. Filter, Colorspace, Resample: the image-processing toolbox
//  3. Vision (pkg/vision): structure matrix, Harris response, non-maximum
//     suppression and patch descriptors
//  4. Analyzer, Render, Cropper: input preparation, overlays and
//     corner-aware cropping
//
// Basic usage:
//
//	extractor := imagefeatures.New()
//	features, err := extractor.DetectCorners(img)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("found %d corners\n", len(features.Points))
//	overlay := extractor.Annotate(img, features.Points)
package imagefeatures

import (
	"fmt"
	"image"
	"log"
	"math"

	"github.com/menta2k/image-features/internal/config"
	"github.com/menta2k/image-features/pkg/analyzer"
	"github.com/menta2k/image-features/pkg/cropper"
	"github.com/menta2k/image-features/pkg/render"
	"github.com/menta2k/image-features/pkg/types"
	"github.com/menta2k/image-features/pkg/vision"
)

// Version of the image features library
const Version = "1.0.0"

// Extractor provides a high-level interface for corner detection
type Extractor struct {
	analyzer *analyzer.ImageAnalyzer
	detector *vision.CornerDetector
	cropper  *cropper.CornerCropper
	render   render.Options
}

// New creates a new Extractor with default configuration
func New() *Extractor {
	return &Extractor{
		analyzer: analyzer.New(),
		detector: vision.New(),
		cropper:  cropper.New(),
		render:   render.DefaultOptions(),
	}
}

// NewWithConfig creates a new Extractor with custom configuration
func NewWithConfig(analyzerConfig analyzer.Config, detectionConfig vision.DetectionConfig, cropConfig cropper.CropConfig) (*Extractor, error) {
	if err := detectionConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detection config: %w", err)
	}
	return &Extractor{
		analyzer: analyzer.NewWithConfig(analyzerConfig),
		detector: vision.NewWithConfig(detectionConfig),
		cropper:  cropper.NewWithConfig(cropConfig),
		render:   render.DefaultOptions(),
	}, nil
}

// NewFromFile creates an Extractor from a JSON configuration file.
func NewFromFile(filename string) (*Extractor, error) {
	cfg, err := config.LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	c, err := cfg.Render.RGBA()
	if err != nil {
		return nil, err
	}

	e, err := NewWithConfig(
		analyzer.Config{
			MinImageSize: cfg.Analyzer.MinImageSize,
			MaxDimension: cfg.Analyzer.MaxDimension,
			Grayscale:    cfg.Analyzer.Grayscale,
		},
		vision.DetectionConfig{
			Sigma:     cfg.Detector.Sigma,
			Threshold: cfg.Detector.Threshold,
			NMSRadius: cfg.Detector.NMSRadius,
		},
		cropper.CropConfig{
			PaddingRatio:     cfg.Cropper.PaddingRatio,
			QualityThreshold: cfg.Cropper.QualityThreshold,
		},
	)
	if err != nil {
		return nil, err
	}
	e.render = render.Options{Color: c, CrossSize: cfg.Render.CrossSize, Stroke: cfg.Render.Stroke}
	return e, nil
}

// SetLogger enables debug output from the detector.
func (e *Extractor) SetLogger(logger *log.Logger) {
	e.detector.SetLogger(logger)
}

// SetRenderOptions changes how Annotate draws corners.
func (e *Extractor) SetRenderOptions(opts render.Options) {
	e.render = opts
}

// Features holds the corners found in an image.
type Features struct {
	Info analyzer.ImageInfo `json:"info"`
	// Scale is the factor between source pixels and detection pixels.
	Scale float64 `json:"scale"`
	// Descriptors are in detection coordinates.
	Descriptors []types.Descriptor `json:"descriptors"`
	// Points are the corner locations in source image coordinates.
	Points []types.Point `json:"points"`
}

// AnalysisResult contains corners and suggested crops for an image
type AnalysisResult struct {
	Features Features                      `json:"features"`
	Crops    map[string]cropper.CropResult `json:"-"`
}

// DetectCorners validates and prepares img, runs the corner detector and
// maps the corners back to source coordinates.
func (e *Extractor) DetectCorners(img image.Image) (Features, error) {
	prepared, err := e.analyzer.Prepare(img)
	if err != nil {
		return Features{}, fmt.Errorf("image preparation failed: %w", err)
	}
	descs, err := e.detector.Detect(prepared.Image)
	if err != nil {
		return Features{}, err
	}

	info := e.analyzer.GetImageInfo(img)
	points := make([]types.Point, len(descs))
	for i, d := range descs {
		points[i] = scalePoint(d.P, prepared.Scale, info.Width, info.Height)
	}
	return Features{
		Info:        info,
		Scale:       prepared.Scale,
		Descriptors: descs,
		Points:      points,
	}, nil
}

// Annotate returns a copy of img with a crosshair on every point.
func (e *Extractor) Annotate(img image.Image, points []types.Point) *image.NRGBA {
	return render.Overlay(img, points, e.render)
}

// CropToAspectRatio crops an image to a preset aspect ratio around its corners
func (e *Extractor) CropToAspectRatio(img image.Image, aspectRatio cropper.AspectRatio) (cropper.CropResult, error) {
	features, err := e.DetectCorners(img)
	if err != nil {
		return cropper.CropResult{}, err
	}
	return e.cropper.CropToAspectRatio(img, features.Points, aspectRatio)
}

// CropToRatio crops an image to a specific aspect ratio (as float)
func (e *Extractor) CropToRatio(img image.Image, ratio float64) (cropper.CropResult, error) {
	features, err := e.DetectCorners(img)
	if err != nil {
		return cropper.CropResult{}, err
	}
	return e.cropper.CropToRatio(img, features.Points, ratio)
}

// AnalyzeImage detects corners and proposes crops for the common ratios.
func (e *Extractor) AnalyzeImage(img image.Image) (AnalysisResult, error) {
	features, err := e.DetectCorners(img)
	if err != nil {
		return AnalysisResult{}, err
	}
	crops, err := e.cropper.GetOptimalCrops(img, features.Points)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("crop analysis failed: %w", err)
	}
	return AnalysisResult{Features: features, Crops: crops}, nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}

func scalePoint(p types.Point, scale float64, width, height int) types.Point {
	if scale == 1 {
		return p
	}
	x := int(math.Round(float64(p.X) * scale))
	y := int(math.Round(float64(p.Y) * scale))
	return types.Point{X: min(x, width-1), Y: min(y, height-1)}
}
