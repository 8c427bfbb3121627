// Package seam finds minimum-cost connected paths through an energy grid.
//
// A vertical seam holds one column index per row, a horizontal seam one row
// index per column. Consecutive indices never differ by more than one.
package seam

import (
	"errors"
	"fmt"
)

// Orientation selects the direction a seam runs in.
type Orientation int

const (
	// Vertical seams run top to bottom and remove one column.
	Vertical Orientation = iota
	// Horizontal seams run left to right and remove one row.
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

var (
	// ErrEmpty is returned when the grid has no pixels to route through.
	ErrEmpty = errors.New("seam: empty energy grid")
	// ErrInvalidSeam is returned by Validate for malformed seams.
	ErrInvalidSeam = errors.New("seam: invalid seam")
)

// Costs is the read-only view of an energy grid the finder needs.
type Costs interface {
	Width() int
	Height() int
	At(x, y int) float64
}

// Seam is a connected one-pixel path across the image.
type Seam struct {
	Orientation Orientation
	// Indices[i] is the column (vertical) or row (horizontal) removed at
	// step i.
	Indices []int
	// Cost is the sum of the energy along the path.
	Cost float64
}

// Len returns the number of pixels in the seam.
func (s Seam) Len() int {
	return len(s.Indices)
}

// Span returns the smallest and largest index in the seam.
func (s Seam) Span() (lo, hi int) {
	if len(s.Indices) == 0 {
		return 0, -1
	}
	lo, hi = s.Indices[0], s.Indices[0]
	for _, v := range s.Indices[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Validate checks that the seam fits a width x height image.
func (s Seam) Validate(width, height int) error {
	steps, breadth := height, width
	if s.Orientation == Horizontal {
		steps, breadth = width, height
	} else if s.Orientation != Vertical {
		return fmt.Errorf("%w: unknown orientation %v", ErrInvalidSeam, s.Orientation)
	}

	if len(s.Indices) != steps {
		return fmt.Errorf("%w: %s seam has %d indices, want %d", ErrInvalidSeam, s.Orientation, len(s.Indices), steps)
	}
	for i, v := range s.Indices {
		if v < 0 || v >= breadth {
			return fmt.Errorf("%w: index %d at step %d outside [0, %d)", ErrInvalidSeam, v, i, breadth)
		}
		if i > 0 && abs(v-s.Indices[i-1]) > 1 {
			return fmt.Errorf("%w: step %d jumps from %d to %d", ErrInvalidSeam, i, s.Indices[i-1], v)
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
