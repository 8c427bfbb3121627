package seam

import "fmt"

// Find returns the minimum-cost seam of orientation o through costs.
//
// The cumulative table is M(0,j) = E(0,j) and
// M(i,j) = E(i,j) + min(M(i-1,j-1), M(i-1,j), M(i-1,j+1)), where i walks
// rows for vertical seams and columns for horizontal ones. The path starts
// at the lowest index holding the minimum of the last row. Backtracking
// prefers the centre neighbour, then the left one, then the right one when
// their cumulative costs are equal.
func Find(costs Costs, o Orientation) (Seam, error) {
	w, h := costs.Width(), costs.Height()
	if w <= 0 || h <= 0 {
		return Seam{}, ErrEmpty
	}

	var steps, breadth int
	var energyAt func(i, j int) float64
	switch o {
	case Vertical:
		steps, breadth = h, w
		energyAt = func(i, j int) float64 { return costs.At(j, i) }
	case Horizontal:
		steps, breadth = w, h
		energyAt = func(i, j int) float64 { return costs.At(i, j) }
	default:
		return Seam{}, fmt.Errorf("%w: unknown orientation %v", ErrInvalidSeam, o)
	}

	m := cumulate(steps, breadth, energyAt)

	last := m[(steps-1)*breadth : steps*breadth]
	j := 0
	for k := 1; k < breadth; k++ {
		if last[k] < last[j] {
			j = k
		}
	}

	s := Seam{
		Orientation: o,
		Indices:     make([]int, steps),
		Cost:        last[j],
	}
	s.Indices[steps-1] = j
	for i := steps - 1; i > 0; i-- {
		j = parent(m[(i-1)*breadth:i*breadth], j)
		s.Indices[i-1] = j
	}
	return s, nil
}

// cumulate fills the cumulative minimum energy table, row-major with
// breadth entries per step.
func cumulate(steps, breadth int, energyAt func(i, j int) float64) []float64 {
	m := make([]float64, steps*breadth)
	for j := 0; j < breadth; j++ {
		m[j] = energyAt(0, j)
	}
	for i := 1; i < steps; i++ {
		prev := m[(i-1)*breadth : i*breadth]
		row := m[i*breadth : (i+1)*breadth]
		for j := 0; j < breadth; j++ {
			row[j] = energyAt(i, j) + prev[parent(prev, j)]
		}
	}
	return m
}

// parent picks the predecessor of column j in prev: centre, then left,
// then right on equal cost.
func parent(prev []float64, j int) int {
	best := j
	if j > 0 && prev[j-1] < prev[best] {
		best = j - 1
	}
	if j+1 < len(prev) && prev[j+1] < prev[best] {
		best = j + 1
	}
	return best
}
