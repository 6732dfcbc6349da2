package types

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/menta2k/image-features/pkg/raster"
)

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Descriptor is a feature vector describing the neighbourhood of a point.
// The vector is owned by the descriptor and shares no storage with the image
// it was extracted from.
type Descriptor struct {
	P    Point     `json:"p"`
	Data []float64 `json:"data"`
}

// Len returns the number of elements in the feature vector.
func (d Descriptor) Len() int {
	return len(d.Data)
}

// Distance returns the L1 distance between two feature vectors.
func (d Descriptor) Distance(other Descriptor) (float64, error) {
	if len(d.Data) != len(other.Data) {
		return 0, fmt.Errorf("%w: descriptor lengths differ, %d vs %d", raster.ErrDimensionMismatch, len(d.Data), len(other.Data))
	}
	return floats.Distance(d.Data, other.Data, 1), nil
}

// Points returns the locations of the given descriptors in order.
func Points(descs []Descriptor) []Point {
	pts := make([]Point, len(descs))
	for i, d := range descs {
		pts[i] = d.P
	}
	return pts
}

// Region is a rectangle in pixel coordinates.
type Region struct {
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Score  float64 `json:"score"`
}

// Contains reports whether p lies inside the region.
func (r Region) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center returns the center point of the region
func (r Region) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Area returns the area of the region
func (r Region) Area() int {
	return r.Width * r.Height
}
