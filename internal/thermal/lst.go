package thermal

import (
	"fmt"
	"math"
)

const (
	ndviSoilThreshold = 0.2
	ndviVegRange      = 0.5
	emissivityBase    = 0.986
	emissivityScale   = 0.004
	radianceScale     = 1e4
	kelvinOffset      = 273.15
)

func safeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// NDVI computes the normalized difference vegetation index from NIR (B08)
// and red (B04) reflectance grids. Masked inputs stay masked.
func NDVI(nir, red Grid) (Grid, error) {
	if !nir.SameShape(red) {
		return Grid{}, fmt.Errorf("band shape mismatch: nir %dx%d, red %dx%d",
			nir.Width(), nir.Height(), red.Width(), red.Height())
	}
	out := NewGrid(nir.Width(), nir.Height())
	for y := range nir.Values {
		for x := range nir.Values[y] {
			n := nir.Values[y][x]
			r := red.Values[y][x]
			if math.IsNaN(n) || math.IsNaN(r) {
				continue
			}
			out.Values[y][x] = safeDivide(n-r, n+r)
		}
	}
	return out, nil
}

// ProportionOfVegetation squares the NDVI stretch between bare soil (0.2)
// and full vegetation (0.7), clamped to [0, 1].
func ProportionOfVegetation(ndvi Grid) Grid {
	out := NewGrid(ndvi.Width(), ndvi.Height())
	for y := range ndvi.Values {
		for x, v := range ndvi.Values[y] {
			if math.IsNaN(v) {
				continue
			}
			pv := (v - ndviSoilThreshold) / ndviVegRange
			if pv < 0 {
				pv = 0
			}
			if pv > 1 {
				pv = 1
			}
			out.Values[y][x] = pv * pv
		}
	}
	return out
}

// Emissivity derives surface emissivity from the proportion of vegetation.
func Emissivity(pv Grid) Grid {
	out := NewGrid(pv.Width(), pv.Height())
	for y := range pv.Values {
		for x, v := range pv.Values[y] {
			if math.IsNaN(v) {
				continue
			}
			out.Values[y][x] = emissivityScale*v + emissivityBase
		}
	}
	return out
}

// LST estimates land surface temperature in Celsius from SWIR (B11)
// reflectance and emissivity. The SWIR reflectance is scaled back to a
// radiance proxy and corrected by the emissivity term.
func LST(swir, emissivity Grid) (Grid, error) {
	if !swir.SameShape(emissivity) {
		return Grid{}, fmt.Errorf("band shape mismatch: swir %dx%d, emissivity %dx%d",
			swir.Width(), swir.Height(), emissivity.Width(), emissivity.Height())
	}
	out := NewGrid(swir.Width(), swir.Height())
	for y := range swir.Values {
		for x := range swir.Values[y] {
			s := swir.Values[y][x]
			em := emissivity.Values[y][x]
			if math.IsNaN(s) || math.IsNaN(em) || em <= 0 {
				continue
			}
			bt := s * radianceScale
			if bt <= 0 {
				continue
			}
			lst := bt/(1+(0.00115*(bt/1.438))*math.Log(em)) - kelvinOffset
			out.Values[y][x] = lst
		}
	}
	return out, nil
}

// SceneReflectance holds the cloud-masked reflectance grids of one scene.
type SceneReflectance struct {
	Red  Grid
	NIR  Grid
	SWIR Grid
}

// SceneLST runs the full per-scene chain: NDVI, proportion of vegetation,
// emissivity, LST.
func SceneLST(scene SceneReflectance) (Grid, error) {
	ndvi, err := NDVI(scene.NIR, scene.Red)
	if err != nil {
		return Grid{}, fmt.Errorf("failed to compute NDVI: %w", err)
	}
	pv := ProportionOfVegetation(ndvi)
	em := Emissivity(pv)
	lst, err := LST(scene.SWIR, em)
	if err != nil {
		return Grid{}, fmt.Errorf("failed to compute LST: %w", err)
	}
	return lst, nil
}
