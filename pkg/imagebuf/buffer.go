// Package imagebuf owns the mutable pixel grid that seams are removed from.
package imagebuf

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/dixieflatline76/Carver/pkg/seam"
)

// Buffer is an NRGBA pixel grid that shrinks in place. Alongside the pixels
// it tracks where every live pixel came from in the source image and an
// optional per-pixel energy bias, both of which travel with the pixels when
// a seam is removed.
type Buffer struct {
	width, height int
	stride        int // pixels per row, fixed at creation
	pix           []uint8
	origin        []image.Point
	bias          []float64 // nil until AddBias is called
}

// New copies img into a buffer. The copy is normalised to NRGBA with the
// top-left pixel at (0, 0).
func New(img image.Image) *Buffer {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	b := &Buffer{
		width:  w,
		height: h,
		stride: w,
		pix:    src.Pix,
		origin: make([]image.Point, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.origin[y*w+x] = image.Pt(x, y)
		}
	}
	return b
}

// Width returns the current number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the current number of rows.
func (b *Buffer) Height() int { return b.height }

// Size returns the current dimensions as a point.
func (b *Buffer) Size() image.Point { return image.Pt(b.width, b.height) }

// RGB returns the colour channels of the pixel at (x, y).
func (b *Buffer) RGB(x, y int) (r, g, bl uint8) {
	i := (y*b.stride + x) * 4
	return b.pix[i], b.pix[i+1], b.pix[i+2]
}

// Origin returns the coordinate the pixel at (x, y) had in the source image.
func (b *Buffer) Origin(x, y int) image.Point {
	return b.origin[y*b.stride+x]
}

// Bias returns the extra energy attached to the pixel at (x, y).
func (b *Buffer) Bias(x, y int) float64 {
	if b.bias == nil {
		return 0
	}
	return b.bias[y*b.stride+x]
}

// AddBias adds weight to every pixel inside r, given in current buffer
// coordinates. Pixels outside the buffer are ignored.
func (b *Buffer) AddBias(r image.Rectangle, weight float64) {
	r = r.Intersect(image.Rect(0, 0, b.width, b.height))
	if r.Empty() {
		return
	}
	if b.bias == nil {
		b.bias = make([]float64, len(b.origin))
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.bias[y*b.stride+x] += weight
		}
	}
}

// Image returns a compact copy of the current pixels.
func (b *Buffer) Image() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.width*4], b.pix[y*b.stride*4:])
	}
	return dst
}

// SeamOrigins maps the pixels of s back to source image coordinates.
func (b *Buffer) SeamOrigins(s seam.Seam) []image.Point {
	pts := make([]image.Point, len(s.Indices))
	for i, v := range s.Indices {
		if s.Orientation == seam.Vertical {
			pts[i] = b.Origin(v, i)
		} else {
			pts[i] = b.Origin(i, v)
		}
	}
	return pts
}

// RemoveSeam deletes the pixels on s. Pixels after the seam in each row
// (vertical) or column (horizontal) move back by one and the matching
// dimension shrinks by one. The buffer is unchanged if s does not fit.
// Energy grids computed before the call are stale afterwards.
func (b *Buffer) RemoveSeam(s seam.Seam) error {
	if err := s.Validate(b.width, b.height); err != nil {
		return fmt.Errorf("removing seam from image: %w", err)
	}

	switch s.Orientation {
	case seam.Vertical:
		for y, sx := range s.Indices {
			row := y * b.stride
			copy(b.pix[(row+sx)*4:(row+b.width)*4], b.pix[(row+sx+1)*4:(row+b.width)*4])
			copy(b.origin[row+sx:row+b.width], b.origin[row+sx+1:row+b.width])
			if b.bias != nil {
				copy(b.bias[row+sx:row+b.width], b.bias[row+sx+1:row+b.width])
			}
		}
		b.width--
	case seam.Horizontal:
		for x, sy := range s.Indices {
			for y := sy; y < b.height-1; y++ {
				to, from := y*b.stride+x, (y+1)*b.stride+x
				copy(b.pix[to*4:to*4+4], b.pix[from*4:from*4+4])
				b.origin[to] = b.origin[from]
				if b.bias != nil {
					b.bias[to] = b.bias[from]
				}
			}
		}
		b.height--
	}
	return nil
}
