package config

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
)

// Config holds the application configuration
type Config struct {
	Detector DetectorConfig `json:"detector"`
	Analyzer AnalyzerConfig `json:"analyzer"`
	Render   RenderConfig   `json:"render"`
	Cropper  CropperConfig  `json:"cropper"`
}

// DetectorConfig holds the corner detection parameters
type DetectorConfig struct {
	Sigma     float64 `json:"sigma"`
	Threshold float64 `json:"threshold"`
	NMSRadius int     `json:"nms_radius"`
}

// AnalyzerConfig holds configuration for input preparation
type AnalyzerConfig struct {
	MinImageSize int  `json:"min_image_size"`
	MaxDimension int  `json:"max_dimension"`
	Grayscale    bool `json:"grayscale"`
}

// RenderConfig holds configuration for annotated output
type RenderConfig struct {
	Color     string `json:"color"`
	CrossSize int    `json:"cross_size"`
	Stroke    int    `json:"stroke"`
}

// CropperConfig holds configuration for corner-aware cropping
type CropperConfig struct {
	PaddingRatio     float64 `json:"padding_ratio"`
	QualityThreshold float64 `json:"quality_threshold"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Detector: DetectorConfig{
			Sigma:     2,
			Threshold: 50,
			NMSRadius: 3,
		},
		Analyzer: AnalyzerConfig{
			MinImageSize: 8,
			MaxDimension: 1024,
			Grayscale:    false,
		},
		Render: RenderConfig{
			Color:     "#ff00ff",
			CrossSize: 9,
			Stroke:    1,
		},
		Cropper: CropperConfig{
			PaddingRatio:     0.1,
			QualityThreshold: 0.5,
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Fields missing from
// the file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !(c.Detector.Sigma > 0) || math.IsInf(c.Detector.Sigma, 0) {
		return fmt.Errorf("detector.sigma must be a positive finite number")
	}

	if math.IsNaN(c.Detector.Threshold) || math.IsInf(c.Detector.Threshold, 0) {
		return fmt.Errorf("detector.threshold must be finite")
	}

	if c.Detector.NMSRadius < 0 {
		return fmt.Errorf("detector.nms_radius must not be negative")
	}

	if c.Analyzer.MinImageSize < 1 {
		return fmt.Errorf("analyzer.min_image_size must be positive")
	}

	if c.Analyzer.MaxDimension != 0 && c.Analyzer.MaxDimension < c.Analyzer.MinImageSize {
		return fmt.Errorf("analyzer.max_dimension must be 0 (no limit) or at least analyzer.min_image_size")
	}

	if _, err := c.Render.RGBA(); err != nil {
		return err
	}

	if c.Render.CrossSize < 0 {
		return fmt.Errorf("render.cross_size must not be negative")
	}

	if c.Render.Stroke < 1 {
		return fmt.Errorf("render.stroke must be positive")
	}

	if c.Cropper.PaddingRatio < 0 || c.Cropper.PaddingRatio >= 0.5 {
		return fmt.Errorf("cropper.padding_ratio must be in [0, 0.5)")
	}

	if c.Cropper.QualityThreshold < 0 || c.Cropper.QualityThreshold > 1 {
		return fmt.Errorf("cropper.quality_threshold must be between 0 and 1")
	}

	return nil
}

// RGBA parses the hex colour string.
func (r RenderConfig) RGBA() (color.NRGBA, error) {
	c, err := colorful.Hex(r.Color)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("render.color must be a #rrggbb hex colour: %w", err)
	}
	cr, cg, cb := c.RGB255()
	return color.NRGBA{cr, cg, cb, 255}, nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "image-features", "config.json")
}
