// Package render draws carving diagnostics: energy maps and the seams a run
// removed.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// SeamColor marks removed pixels.
var SeamColor = color.NRGBA{R: 255, A: 255}

// Grid is the energy view Energy needs.
type Grid interface {
	Width() int
	Height() int
	At(x, y int) float64
	Max() float64
}

// Energy scales a grid linearly to 0..255 grey. An all-zero grid renders
// black.
func Energy(g Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width(), g.Height()))
	peak := g.Max()
	if peak <= 0 {
		return img
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			v := g.At(x, y) / peak * 255
			img.Pix[y*img.Stride+x] = uint8(v + 0.5)
		}
	}
	return img
}

// Seams copies src and paints every point in seams with SeamColor. Points
// are relative to the top-left corner of src. A non-empty label is printed
// in the top-left corner.
func Seams(src image.Image, seams [][]image.Point, label string) *image.NRGBA {
	dst := imaging.Clone(src)
	bounds := dst.Bounds()
	for _, s := range seams {
		for _, p := range s {
			if p.In(bounds) {
				dst.SetNRGBA(p.X, p.Y, SeamColor)
			}
		}
	}
	if label != "" {
		Label(dst, label)
	}
	return dst
}

// Regions outlines each rectangle on a copy of src.
func Regions(src image.Image, rects []image.Rectangle, c color.Color) *image.NRGBA {
	dst := imaging.Clone(src)
	for _, r := range rects {
		r = r.Intersect(dst.Bounds())
		if r.Empty() {
			continue
		}
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Set(x, r.Min.Y, c)
			dst.Set(x, r.Max.Y-1, c)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			dst.Set(r.Min.X, y, c)
			dst.Set(r.Max.X-1, y, c)
		}
	}
	return dst
}

// Label prints text in white on a dark strip along the top edge of img.
func Label(img draw.Image, text string) {
	face := basicfont.Face7x13
	b := img.Bounds()
	strip := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+face.Height+4).Intersect(b)
	draw.Draw(img, strip, image.NewUniform(color.NRGBA{A: 160}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(b.Min.X+4, b.Min.Y+face.Ascent+2),
	}
	d.DrawString(text)
}
