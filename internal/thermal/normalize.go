package thermal

import (
	"fmt"
	"math"

	"github.com/heatscape/heatscape-cli/internal/stats"
)

// ZonalStats reduces the unmasked pixels of a grid to mean, standard
// deviation, min, max and count.
func ZonalStats(g Grid) stats.Summary {
	acc := stats.NewAccumulator()
	for _, row := range g.Values {
		for _, v := range row {
			acc.Add(v)
		}
	}
	return acc.Summary()
}

// UHI expresses each LST pixel as a standard score against the zonal mean
// and standard deviation. A zero-variance composite yields an all-zero
// grid rather than NaN.
func UHI(lst Grid, zonal stats.Summary) (Grid, error) {
	if zonal.Count == 0 {
		return Grid{}, fmt.Errorf("zonal stats are empty, cannot normalize")
	}
	out := NewGrid(lst.Width(), lst.Height())
	for y := range lst.Values {
		for x, v := range lst.Values[y] {
			if math.IsNaN(v) {
				continue
			}
			if zonal.StdDev == 0 {
				out.Values[y][x] = 0
				continue
			}
			out.Values[y][x] = (v - zonal.Mean) / zonal.StdDev
		}
	}
	return out, nil
}

// UTFVI normalizes the LST deviation from the zonal mean by the pixel's own
// LST. Pixels with LST exactly zero stay masked.
func UTFVI(lst Grid, zonal stats.Summary) (Grid, error) {
	if zonal.Count == 0 {
		return Grid{}, fmt.Errorf("zonal stats are empty, cannot normalize")
	}
	out := NewGrid(lst.Width(), lst.Height())
	for y := range lst.Values {
		for x, v := range lst.Values[y] {
			if math.IsNaN(v) || v == 0 {
				continue
			}
			out.Values[y][x] = (v - zonal.Mean) / v
		}
	}
	return out, nil
}
