package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

type grid [][]float64

func (g grid) Width() int          { return len(g[0]) }
func (g grid) Height() int         { return len(g) }
func (g grid) At(x, y int) float64 { return g[y][x] }
func (g grid) Max() float64 {
	var m float64
	for _, row := range g {
		for _, v := range row {
			m = max(m, v)
		}
	}
	return m
}

func flat(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestEnergy(t *testing.T) {
	img := Energy(grid{{0, 50}, {100, 25}})
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(128), img.GrayAt(1, 0).Y)
	assert.Equal(t, uint8(255), img.GrayAt(0, 1).Y)
	assert.Equal(t, uint8(64), img.GrayAt(1, 1).Y)

	black := Energy(grid{{0, 0}})
	assert.Equal(t, uint8(0), black.GrayAt(1, 0).Y)
}

func TestSeams(t *testing.T) {
	src := flat(4, 3, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	seams := [][]image.Point{{{1, 0}, {2, 1}, {2, 2}}, {{9, 9}}}

	out := Seams(src, seams, "")
	assert.Equal(t, SeamColor, out.NRGBAAt(1, 0))
	assert.Equal(t, SeamColor, out.NRGBAAt(2, 2))
	assert.Equal(t, uint8(10), out.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(10), src.NRGBAAt(1, 0).R, "source is not modified")
}

func TestSeams_Label(t *testing.T) {
	src := flat(80, 30, color.NRGBA{A: 255})
	out := Seams(src, nil, "cost 42")

	lit := false
	for y := 0; y < 17; y++ {
		for x := 0; x < 80; x++ {
			if out.NRGBAAt(x, y).R > 200 {
				lit = true
			}
		}
	}
	assert.True(t, lit, "label text is drawn in white")
	assert.Equal(t, uint8(0), out.NRGBAAt(40, 25).R, "pixels below the strip are untouched")
}

func TestRegions(t *testing.T) {
	src := flat(10, 10, color.NRGBA{A: 255})
	green := color.NRGBA{G: 255, A: 255}
	out := Regions(src, []image.Rectangle{image.Rect(2, 2, 6, 6)}, green)

	assert.Equal(t, green, out.NRGBAAt(2, 2))
	assert.Equal(t, green, out.NRGBAAt(5, 4))
	assert.Equal(t, uint8(0), out.NRGBAAt(3, 3).G, "inside stays untouched")
}
