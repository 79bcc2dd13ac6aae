package thermal

import (
	"fmt"
	"math"
)

// Grid is a single-band raster in row-major [y][x] order. Masked pixels
// carry NaN and are excluded from every reduction.
type Grid struct {
	Values [][]float64
}

func NewGrid(width, height int) Grid {
	values := make([][]float64, height)
	for y := range values {
		values[y] = make([]float64, width)
		for x := range values[y] {
			values[y][x] = math.NaN()
		}
	}
	return Grid{Values: values}
}

func (g Grid) Height() int {
	return len(g.Values)
}

func (g Grid) Width() int {
	if len(g.Values) == 0 {
		return 0
	}
	return len(g.Values[0])
}

func (g Grid) SameShape(other Grid) bool {
	return g.Width() == other.Width() && g.Height() == other.Height()
}

// Flatten returns the grid as a single row-major slice, the layout godal
// band writes expect.
func (g Grid) Flatten() []float64 {
	flat := make([]float64, 0, g.Width()*g.Height())
	for _, row := range g.Values {
		flat = append(flat, row...)
	}
	return flat
}

func GridFromFlat(data []float64, width, height int) (Grid, error) {
	if len(data) != width*height {
		return Grid{}, fmt.Errorf("flat data has %d values, expected %d", len(data), width*height)
	}
	values := make([][]float64, height)
	for y := range values {
		values[y] = data[y*width : (y+1)*width]
	}
	return Grid{Values: values}, nil
}
