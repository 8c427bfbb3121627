package seam

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// table is a row-major Costs used by the tests.
type table [][]float64

func (t table) Width() int {
	if len(t) == 0 {
		return 0
	}
	return len(t[0])
}
func (t table) Height() int         { return len(t) }
func (t table) At(x, y int) float64 { return t[y][x] }

func randomTable(r *rand.Rand, w, h int) table {
	t := make(table, h)
	for y := range t {
		t[y] = make([]float64, w)
		for x := range t[y] {
			t[y][x] = float64(r.Intn(50))
		}
	}
	return t
}

func TestFind_AvoidsHighEnergyColumn(t *testing.T) {
	costs := table{
		{1, 9, 1},
		{1, 9, 1},
		{1, 9, 1},
	}

	s, err := Find(costs, Vertical)
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.Cost)
	assert.Equal(t, []int{0, 0, 0}, s.Indices, "ties in the last row resolve to the lowest index")
	assert.NotContains(t, s.Indices, 1)
}

func TestFind_FollowsCheapPath(t *testing.T) {
	costs := table{
		{5, 1, 5, 5},
		{5, 5, 1, 5},
		{5, 5, 5, 1},
		{5, 5, 1, 5},
	}

	s, err := Find(costs, Vertical)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 2}, s.Indices)
	assert.Equal(t, 4.0, s.Cost)
}

func TestFind_TieBreakPrefersCentreThenLeft(t *testing.T) {
	t.Run("centre", func(t *testing.T) {
		costs := table{
			{1, 1, 1},
			{9, 0, 9},
		}
		s, err := Find(costs, Vertical)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 1}, s.Indices)
	})

	t.Run("left over right", func(t *testing.T) {
		costs := table{
			{1, 5, 1},
			{9, 0, 9},
		}
		s, err := Find(costs, Vertical)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, s.Indices)
	})
}

func TestFind_Horizontal(t *testing.T) {
	costs := table{
		{9, 9, 9},
		{1, 1, 9},
		{9, 9, 1},
	}

	s, err := Find(costs, Horizontal)
	require.NoError(t, err)
	assert.Equal(t, Horizontal, s.Orientation)
	assert.Equal(t, []int{1, 1, 2}, s.Indices)
	assert.Equal(t, 3.0, s.Cost)
	assert.NoError(t, s.Validate(costs.Width(), costs.Height()))
}

func TestFind_SingleColumnAndRow(t *testing.T) {
	s, err := Find(table{{3}, {4}, {5}}, Vertical)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, s.Indices)
	assert.Equal(t, 12.0, s.Cost)

	s, err = Find(table{{3, 4, 5}}, Vertical)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, s.Indices)
	assert.Equal(t, 3.0, s.Cost)
}

func TestFind_Empty(t *testing.T) {
	_, err := Find(table{}, Vertical)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestFind_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for n := 0; n < 50; n++ {
		w, h := 1+r.Intn(12), 1+r.Intn(12)
		costs := randomTable(r, w, h)

		for _, o := range []Orientation{Vertical, Horizontal} {
			s, err := Find(costs, o)
			require.NoError(t, err)
			require.NoError(t, s.Validate(w, h), "adjacency and bounds")

			// Cost equals the sum of energy along the path.
			var sum float64
			for i, j := range s.Indices {
				if o == Vertical {
					sum += costs.At(j, i)
				} else {
					sum += costs.At(i, j)
				}
			}
			assert.Equal(t, sum, s.Cost)

			// Cost equals the minimum of the last cumulative row.
			steps, breadth := h, w
			at := func(i, j int) float64 { return costs.At(j, i) }
			if o == Horizontal {
				steps, breadth = w, h
				at = func(i, j int) float64 { return costs.At(i, j) }
			}
			m := cumulate(steps, breadth, at)
			min := m[(steps-1)*breadth]
			for _, v := range m[(steps-1)*breadth:] {
				if v < min {
					min = v
				}
			}
			assert.Equal(t, min, s.Cost)

			// Recomputing from scratch is deterministic.
			again, err := Find(costs, o)
			require.NoError(t, err)
			assert.Equal(t, s, again)
		}
	}
}

func TestSeam_Validate(t *testing.T) {
	tests := []struct {
		name string
		seam Seam
	}{
		{"short", Seam{Orientation: Vertical, Indices: []int{0, 0}}},
		{"out of bounds", Seam{Orientation: Vertical, Indices: []int{0, 1, 3}}},
		{"negative", Seam{Orientation: Vertical, Indices: []int{0, -1, 0}}},
		{"jump", Seam{Orientation: Vertical, Indices: []int{0, 2, 2}}},
		{"horizontal length", Seam{Orientation: Horizontal, Indices: []int{0, 0, 0}}},
		{"orientation", Seam{Orientation: Orientation(7), Indices: []int{0, 0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.seam.Validate(3, 3), ErrInvalidSeam)
		})
	}

	ok := Seam{Orientation: Horizontal, Indices: []int{2, 1, 1, 0}}
	assert.NoError(t, ok.Validate(4, 3))
}

func TestSeam_Span(t *testing.T) {
	lo, hi := Seam{Indices: []int{3, 2, 3, 4}}.Span()
	assert.Equal(t, 2, lo)
	assert.Equal(t, 4, hi)
}
