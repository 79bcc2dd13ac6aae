package thermal

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/schollz/progressbar/v3"
)

// MedianComposite reduces per-scene LST grids into one grid holding the
// per-pixel median of the unmasked samples. A pixel masked in every scene
// stays masked.
func MedianComposite(grids []Grid) (Grid, error) {
	if len(grids) == 0 {
		return Grid{}, fmt.Errorf("no grids to composite")
	}
	for i, g := range grids {
		if !g.SameShape(grids[0]) {
			return Grid{}, fmt.Errorf("grid %d shape %dx%d differs from %dx%d",
				i, g.Width(), g.Height(), grids[0].Width(), grids[0].Height())
		}
	}

	width, height := grids[0].Width(), grids[0].Height()
	out := NewGrid(width, height)
	samples := make([]float64, 0, len(grids))

	progressBar := progressbar.Default(int64(height), "Building median LST composite")
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			samples = samples[:0]
			for _, g := range grids {
				v := g.Values[y][x]
				if !math.IsNaN(v) {
					samples = append(samples, v)
				}
			}
			if len(samples) == 0 {
				continue
			}
			out.Values[y][x] = median(samples)
		}
		progressBar.Add(1)
	}
	progressBar.Finish()

	return out, nil
}

func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

// ComputeSceneLSTs runs SceneLST for every scene on a worker pool and
// returns the grids in input order.
func ComputeSceneLSTs(scenes []SceneReflectance, workers int) ([]Grid, error) {
	if workers < 1 {
		workers = 1
	}
	wp := workerpool.New(workers)

	grids := make([]Grid, len(scenes))
	errs := make([]error, len(scenes))
	var mu sync.Mutex

	for i, scene := range scenes {
		i, scene := i, scene
		wp.Submit(func() {
			grid, err := SceneLST(scene)
			mu.Lock()
			grids[i] = grid
			errs[i] = err
			mu.Unlock()
		})
	}
	wp.StopWait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("scene %d: %w", i, err)
		}
	}
	return grids, nil
}
