// Package energy computes per-pixel importance maps used to rank pixels for
// seam removal.
package energy

import (
	"fmt"
	"math"
	"strings"
)

// Source is the pixel view an energy function reads. Coordinates are
// clamped by the functions themselves; Source implementations only need to
// answer for 0 <= x < Width() and 0 <= y < Height().
type Source interface {
	Width() int
	Height() int
	RGB(x, y int) (r, g, b uint8)
}

// Biased is implemented by sources that carry an extra per-pixel energy
// term, such as protected face regions.
type Biased interface {
	Bias(x, y int) float64
}

// Func returns the energy of the pixel at (x, y).
type Func func(src Source, x, y int) float64

// Luma returns the floored grey level used by Sobel.
func Luma(src Source, x, y int) float64 {
	r, g, b := src.RGB(x, y)
	return math.Floor(0.2989*float64(r) + 0.5870*float64(g) + 0.1140*float64(b))
}

// Sobel is |Gx| + |Gy| of the 3x3 Sobel kernels applied to Luma, sampling
// replicated edge pixels outside the image.
func Sobel(src Source, x, y int) float64 {
	w, h := src.Width(), src.Height()
	var p [3][3]float64
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			p[dy+1][dx+1] = Luma(src, clamp(x+dx, w), clamp(y+dy, h))
		}
	}

	gx := (p[0][2] + 2*p[1][2] + p[2][2]) - (p[0][0] + 2*p[1][0] + p[2][0])
	gy := (p[2][0] + 2*p[2][1] + p[2][2]) - (p[0][0] + 2*p[0][1] + p[0][2])
	return math.Abs(gx) + math.Abs(gy)
}

// Gradient sums the absolute central differences of every colour channel in
// both directions, sampling replicated edge pixels outside the image.
func Gradient(src Source, x, y int) float64 {
	w, h := src.Width(), src.Height()

	lr, lg, lb := src.RGB(clamp(x-1, w), y)
	rr, rg, rb := src.RGB(clamp(x+1, w), y)
	ur, ug, ub := src.RGB(x, clamp(y-1, h))
	dr, dg, db := src.RGB(x, clamp(y+1, h))

	return absDiff(lr, rr) + absDiff(lg, rg) + absDiff(lb, rb) +
		absDiff(ur, dr) + absDiff(ug, dg) + absDiff(ub, db)
}

// Lookup maps a configuration name to a built-in energy function.
func Lookup(name string) (Func, error) {
	switch strings.ToLower(name) {
	case "", "sobel":
		return Sobel, nil
	case "gradient":
		return Gradient, nil
	default:
		return nil, fmt.Errorf("unknown energy function %q", name)
	}
}

// Names lists the functions Lookup understands.
func Names() []string {
	return []string{"sobel", "gradient"}
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func absDiff(a, b uint8) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}
