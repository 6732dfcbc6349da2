// Package render draws detection results onto ordinary images for
// inspection.
package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/menta2k/image-features/pkg/types"
)

// Options controls how corners are drawn.
type Options struct {
	Color     color.NRGBA // crosshair colour
	CrossSize int         // arm length in pixels
	Stroke    int         // line thickness in pixels
}

// DefaultOptions returns magenta crosses with 9 pixel arms.
func DefaultOptions() Options {
	return Options{
		Color:     color.NRGBA{255, 0, 255, 255},
		CrossSize: 9,
		Stroke:    1,
	}
}

// Overlay returns a copy of img with a crosshair on every point.
func Overlay(img image.Image, points []types.Point, opts Options) *image.NRGBA {
	nrgba := imaging.Clone(img)
	stroke := max(opts.Stroke, 1)
	arm := opts.CrossSize
	for _, p := range points {
		lo := -stroke / 2
		fill(nrgba, image.Rect(p.X-arm, p.Y+lo, p.X+arm+1, p.Y+lo+stroke), opts.Color)
		fill(nrgba, image.Rect(p.X+lo, p.Y-arm, p.X+lo+stroke, p.Y+arm+1), opts.Color)
	}
	return nrgba
}

// DrawRegion outlines region on img in place. Region coordinates are
// relative to the image origin.
func DrawRegion(img *image.NRGBA, region types.Region, c color.NRGBA, stroke int) {
	stroke = max(stroke, 1)
	r := image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height).Add(img.Bounds().Min)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+stroke), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-stroke, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+stroke, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-stroke, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// Magnify scales img up by an integer factor with nearest-neighbour
// sampling, keeping single pixels visible as crisp blocks.
func Magnify(img image.Image, factor int) *image.NRGBA {
	factor = max(factor, 1)
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// fill paints rect with c, clipped to the image.
func fill(img *image.NRGBA, rect image.Rectangle, c color.NRGBA) {
	xdraw.Draw(img, rect, image.NewUniform(c), image.Point{}, xdraw.Src)
}
