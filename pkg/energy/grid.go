package energy

import (
	"fmt"

	"github.com/dixieflatline76/Carver/pkg/seam"
)

// Grid is a width x height table of energies. Rows keep their original
// stride so removing a seam only moves values within a row or column.
type Grid struct {
	width, height int
	stride        int
	values        []float64
}

// NewGrid allocates a zeroed grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		stride: width,
		values: make([]float64, width*height),
	}
}

// Compute evaluates fn for every pixel of src.
func Compute(src Source, fn Func) *Grid {
	g := NewGrid(src.Width(), src.Height())
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			g.values[y*g.stride+x] = at(src, fn, x, y)
		}
	}
	return g
}

func at(src Source, fn Func, x, y int) float64 {
	e := fn(src, x, y)
	if b, ok := src.(Biased); ok {
		e += b.Bias(x, y)
	}
	return e
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the energy at (x, y).
func (g *Grid) At(x, y int) float64 {
	return g.values[y*g.stride+x]
}

// Set stores the energy at (x, y).
func (g *Grid) Set(x, y int, v float64) {
	g.values[y*g.stride+x] = v
}

// Max returns the largest energy in the grid, or 0 for an empty grid.
func (g *Grid) Max() float64 {
	var m float64
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if v := g.At(x, y); v > m {
				m = v
			}
		}
	}
	return m
}

// RemoveSeam drops the seam's cells the same way the image buffer drops its
// pixels. The remaining values are stale next to the seam until Refresh is
// called.
func (g *Grid) RemoveSeam(s seam.Seam) error {
	if err := s.Validate(g.width, g.height); err != nil {
		return fmt.Errorf("removing seam from energy grid: %w", err)
	}

	switch s.Orientation {
	case seam.Vertical:
		for y, sx := range s.Indices {
			row := g.values[y*g.stride : y*g.stride+g.width]
			copy(row[sx:], row[sx+1:])
		}
		g.width--
	case seam.Horizontal:
		for x, sy := range s.Indices {
			for y := sy; y < g.height-1; y++ {
				g.values[y*g.stride+x] = g.values[(y+1)*g.stride+x]
			}
		}
		g.height--
	}
	return nil
}

// Refresh recomputes the cells whose neighbourhood changed when s was
// removed from both src and g. Cells further than one pixel from the seam
// in any of the three affected rows (or columns) only moved and keep their
// value.
func (g *Grid) Refresh(src Source, fn Func, s seam.Seam) {
	steps := len(s.Indices)
	for i := 0; i < steps; i++ {
		lo, hi := s.Indices[i], s.Indices[i]
		for k := i - 1; k <= i+1; k++ {
			if k < 0 || k >= steps {
				continue
			}
			if s.Indices[k] < lo {
				lo = s.Indices[k]
			}
			if s.Indices[k] > hi {
				hi = s.Indices[k]
			}
		}
		lo -= 2
		hi++

		switch s.Orientation {
		case seam.Vertical:
			for x := max(lo, 0); x <= min(hi, g.width-1); x++ {
				g.Set(x, i, at(src, fn, x, i))
			}
		case seam.Horizontal:
			for y := max(lo, 0); y <= min(hi, g.height-1); y++ {
				g.Set(i, y, at(src, fn, i, y))
			}
		}
	}
}
