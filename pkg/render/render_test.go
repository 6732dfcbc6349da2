package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/menta2k/image-features/pkg/types"
)

func createGrayImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 100
	}
	return img
}

func TestOverlay(t *testing.T) {
	src := createGrayImage(30, 30)
	opts := DefaultOptions()
	out := Overlay(src, []types.Point{{X: 15, Y: 15}}, opts)

	if got := out.NRGBAAt(15, 15); got != opts.Color {
		t.Errorf("Expected crosshair centre, got %v", got)
	}
	if got := out.NRGBAAt(6, 15); got != opts.Color {
		t.Errorf("Expected the arm to reach 9 pixels left, got %v", got)
	}
	if got := out.NRGBAAt(15, 24); got != opts.Color {
		t.Errorf("Expected the arm to reach 9 pixels down, got %v", got)
	}
	if got := out.NRGBAAt(5, 15); got == opts.Color {
		t.Error("Expected the arm to stop after 9 pixels")
	}
	if got := out.NRGBAAt(10, 10); got != (color.NRGBA{100, 100, 100, 255}) {
		t.Errorf("Expected background to be preserved, got %v", got)
	}
	if src.GrayAt(15, 15).Y != 100 {
		t.Error("Overlay modified its input")
	}
}

func TestOverlayClipsAtBorder(t *testing.T) {
	opts := Options{Color: color.NRGBA{255, 0, 0, 255}, CrossSize: 5, Stroke: 3}
	out := Overlay(createGrayImage(10, 10), []types.Point{{X: 0, Y: 0}, {X: 9, Y: 9}}, opts)
	if got := out.NRGBAAt(0, 0); got != opts.Color {
		t.Errorf("Expected corner crosshair, got %v", got)
	}
	if got := out.NRGBAAt(9, 4); got != opts.Color {
		t.Errorf("Expected clipped vertical arm, got %v", got)
	}
	if got := out.NRGBAAt(8, 5); got != opts.Color {
		t.Errorf("Expected a 3 pixel stroke, got %v", got)
	}
}

func TestDrawRegion(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	red := color.NRGBA{255, 0, 0, 255}
	DrawRegion(img, types.Region{X: 2, Y: 3, Width: 10, Height: 5}, red, 1)

	for _, p := range []image.Point{{2, 3}, {11, 3}, {2, 7}, {11, 7}, {6, 3}, {2, 5}} {
		if got := img.NRGBAAt(p.X, p.Y); got != red {
			t.Errorf("Expected outline at %v, got %v", p, got)
		}
	}
	if got := img.NRGBAAt(6, 5); got == red {
		t.Error("Expected the interior to stay empty")
	}
}

func TestDrawRegionOffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 30, 30))
	red := color.NRGBA{255, 0, 0, 255}
	DrawRegion(img, types.Region{X: 0, Y: 0, Width: 25, Height: 5}, red, 2)

	if got := img.NRGBAAt(10, 10); got != red {
		t.Errorf("Expected outline at the image origin, got %v", got)
	}
	if got := img.NRGBAAt(29, 11); got != red {
		t.Errorf("Expected the top edge to be clipped at the border, got %v", got)
	}
	if got := img.NRGBAAt(20, 12); got == red {
		t.Error("Expected the interior to stay empty")
	}
}

func TestMagnify(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(1, 0, color.NRGBA{0, 0, 255, 255})
	out := Magnify(src, 3)
	if out.Bounds().Dx() != 6 || out.Bounds().Dy() != 3 {
		t.Fatalf("Expected 6x3, got %v", out.Bounds())
	}
	if got := out.NRGBAAt(5, 2); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("Expected blue block, got %v", got)
	}
	if got := out.NRGBAAt(2, 2); got != (color.NRGBA{}) {
		t.Errorf("Expected transparent block, got %v", got)
	}
}
