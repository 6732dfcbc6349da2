package raster

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestMake(t *testing.T) {
	im, err := Make(4, 3, 2)
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}
	if im.Width() != 4 || im.Height() != 3 || im.Channels() != 2 {
		t.Errorf("Expected 4x3x2, got %s", im)
	}
	if len(im.Data()) != 24 {
		t.Errorf("Expected 24 samples, got %d", len(im.Data()))
	}
	for i, v := range im.Data() {
		if v != 0 {
			t.Fatalf("sample %d not zero-initialised: %f", i, v)
		}
	}
}

func TestMakeInvalid(t *testing.T) {
	for _, dims := range [][3]int{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}, {-2, 3, 1}, {math.MaxInt, 2, 1}, {2, 2, math.MaxInt}, {1 << 30, 1 << 30, 1 << 30}} {
		_, err := Make(dims[0], dims[1], dims[2])
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Make(%v): expected ErrInvalidParameter, got %v", dims, err)
		}
	}
}

func TestGetClampsToEdge(t *testing.T) {
	im := MustMake(3, 2, 2)
	for c := 0; c < 2; c++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 3; x++ {
				im.Set(x, y, c, float64(100*c+10*y+x))
			}
		}
	}

	tests := []struct {
		x, y, c int
		want    float64
	}{
		{0, 0, 0, 0},
		{2, 1, 1, 112},
		{-5, 0, 0, 0},
		{7, 0, 0, 2},
		{1, -1, 0, 1},
		{1, 9, 0, 11},
		{1, 1, 5, 111},
		{1, 1, -3, 11},
		{-1, -1, -1, 0},
		{99, 99, 99, 112},
	}
	for _, tt := range tests {
		if got := im.Get(tt.x, tt.y, tt.c); got != tt.want {
			t.Errorf("Get(%d,%d,%d) = %f, expected %f", tt.x, tt.y, tt.c, got, tt.want)
		}
	}
}

func TestSetOutOfRangeIsDropped(t *testing.T) {
	im := MustMake(2, 2, 1)
	im.Set(-1, 0, 0, 5)
	im.Set(0, 2, 0, 5)
	im.Set(0, 0, 1, 5)
	if diff := cmp.Diff([]float64{0, 0, 0, 0}, im.Data()); diff != "" {
		t.Errorf("out-of-range Set changed data (-want +got): %s", diff)
	}
}

func TestCopyIsDeep(t *testing.T) {
	im := MustMake(2, 2, 1)
	im.Set(1, 1, 0, 0.5)
	cp := im.Copy()
	cp.Set(1, 1, 0, 0.9)
	if im.Get(1, 1, 0) != 0.5 {
		t.Errorf("Copy shares storage with the original")
	}
	if !cp.SameShape(im) {
		t.Errorf("Copy changed shape: %s vs %s", cp, im)
	}
}

func TestFromSlice(t *testing.T) {
	im, err := FromSlice(2, 1, 2, []float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if im.Get(1, 0, 1) != 4 {
		t.Errorf("Expected CHW layout, got %v", im.Data())
	}
	if diff := cmp.Diff([]float64{3, 4}, im.Plane(1)); diff != "" {
		t.Errorf("Plane(1) mismatch (-want +got): %s", diff)
	}

	_, err = FromSlice(2, 2, 1, []float64{1})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch, got %v", err)
	}
}

func TestClamp(t *testing.T) {
	im, _ := FromSlice(4, 1, 1, []float64{-0.5, 0.25, 1, 3})
	im.Clamp()
	if diff := cmp.Diff([]float64{0, 0.25, 1, 1}, im.Data()); diff != "" {
		t.Errorf("Clamp mismatch (-want +got): %s", diff)
	}
}

func TestFeatureNormalize(t *testing.T) {
	im, _ := FromSlice(3, 1, 1, []float64{-2, 0, 2})
	im.FeatureNormalize()
	if diff := cmp.Diff([]float64{0, 0.5, 1}, im.Data(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("FeatureNormalize mismatch (-want +got): %s", diff)
	}

	flat, _ := FromSlice(2, 1, 1, []float64{7, 7})
	flat.FeatureNormalize()
	if diff := cmp.Diff([]float64{0, 0}, flat.Data()); diff != "" {
		t.Errorf("flat image should normalise to zeros (-want +got): %s", diff)
	}
}

func TestAddSub(t *testing.T) {
	a, _ := FromSlice(2, 1, 1, []float64{1, 2})
	b, _ := FromSlice(2, 1, 1, []float64{0.5, 4})

	sum, err := Add(a, b)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if diff := cmp.Diff([]float64{1.5, 6}, sum.Data()); diff != "" {
		t.Errorf("Add mismatch (-want +got): %s", diff)
	}

	diffIm, err := Sub(a, b)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if diff := cmp.Diff([]float64{0.5, -2}, diffIm.Data()); diff != "" {
		t.Errorf("Sub mismatch (-want +got): %s", diff)
	}
	if a.Get(0, 0, 0) != 1 {
		t.Errorf("Add/Sub mutated input")
	}

	c := MustMake(2, 1, 3)
	if _, err := Add(a, c); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := Sub(a, c); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch, got %v", err)
	}
}

func TestFromImageToImageRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, color.RGBA{255, 0, 0, 255})
	src.Set(1, 0, color.RGBA{0, 255, 0, 255})
	src.Set(2, 1, color.RGBA{0, 0, 255, 255})

	im, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if im.Width() != 3 || im.Height() != 2 || im.Channels() != 3 {
		t.Fatalf("Expected 3x2x3, got %s", im)
	}
	if im.Get(0, 0, 0) != 1 || im.Get(0, 0, 1) != 0 {
		t.Errorf("Expected red at (0,0), got %f,%f", im.Get(0, 0, 0), im.Get(0, 0, 1))
	}
	if im.Get(2, 1, 2) != 1 {
		t.Errorf("Expected blue at (2,1), got %f", im.Get(2, 1, 2))
	}

	out := ToImage(im)
	if got := out.NRGBAAt(1, 0); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("Expected green at (1,0), got %v", got)
	}
}

func TestToImageGray(t *testing.T) {
	im, _ := FromSlice(2, 1, 1, []float64{-1, 0.5})
	out := ToImage(im)
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("Expected black, got %v", got)
	}
	if got := out.NRGBAAt(1, 0); got != (color.NRGBA{128, 128, 128, 255}) {
		t.Errorf("Expected mid gray, got %v", got)
	}
}
