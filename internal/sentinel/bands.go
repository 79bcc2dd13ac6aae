package sentinel

import (
	"fmt"
	"math"

	"github.com/airbusgeo/godal"
	"github.com/heatscape/heatscape-cli/internal/thermal"
)

// SCL classes treated as cloud or cloud shadow.
const (
	sclCloudShadow = 3
	sclCloudMedium = 8
	sclCloudHigh   = 9
	sclThinCirrus  = 10
)

// SceneBands holds the raw band grids of one downloaded scene.
type SceneBands struct {
	B04 [][]float64
	B08 [][]float64
	B11 [][]float64
	CLD [][]float64
	SCL [][]float64
}

var bandOrder = []string{"B04", "B08", "B11", "CLD", "SCL"}

// ReadSceneBands reads the five bands of a process-API GeoTIFF in the
// order the evalscript emits them.
func ReadSceneBands(ds *godal.Dataset) (*SceneBands, error) {
	bands := ds.Bands()
	if len(bands) < len(bandOrder) {
		return nil, fmt.Errorf("dataset has %d bands, expected %d", len(bands), len(bandOrder))
	}

	width := ds.Structure().SizeX
	height := ds.Structure().SizeY

	readBand := func(band godal.Band, name string) ([][]float64, error) {
		data := make([][]float64, height)
		for y := 0; y < height; y++ {
			data[y] = make([]float64, width)
			if err := band.Read(0, y, data[y], width, 1); err != nil {
				return nil, fmt.Errorf("failed to read data for band %s: %w", name, err)
			}
		}
		return data, nil
	}

	scene := &SceneBands{}
	targets := map[string]*[][]float64{
		"B04": &scene.B04,
		"B08": &scene.B08,
		"B11": &scene.B11,
		"CLD": &scene.CLD,
		"SCL": &scene.SCL,
	}
	for i, name := range bandOrder {
		data, err := readBand(bands[i], name)
		if err != nil {
			return nil, err
		}
		*targets[name] = data
	}
	return scene, nil
}

func (s *SceneBands) Width() int {
	if len(s.B04) == 0 {
		return 0
	}
	return len(s.B04[0])
}

func (s *SceneBands) Height() int {
	return len(s.B04)
}

// IsPixelClear reports whether a pixel is usable: no cloud probability,
// no cloudy or shadowed scene classification, finite reflectance.
func IsPixelClear(b04, b08, b11, cld, scl float64) bool {
	if math.IsNaN(b04) || math.IsNaN(b08) || math.IsNaN(b11) {
		return false
	}
	if cld > 0 {
		return false
	}
	if scl == sclCloudShadow || scl == sclCloudMedium || scl == sclCloudHigh || scl == sclThinCirrus {
		return false
	}
	if b04 == 0 && b08 == 0 && b11 == 0 {
		return false
	}
	return true
}

// CloudFraction is the share of in-AOI pixels obscured by clouds. The
// aoiMask restricts the count; a nil mask counts the whole grid.
func (s *SceneBands) CloudFraction(aoiMask [][]bool) float64 {
	total, cloudy := 0, 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if aoiMask != nil && !aoiMask[y][x] {
				continue
			}
			total++
			if !IsPixelClear(s.B04[y][x], s.B08[y][x], s.B11[y][x], s.CLD[y][x], s.SCL[y][x]) {
				cloudy++
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float64(cloudy) / float64(total)
}

// MaskedReflectance converts the scene into cloud-masked reflectance grids
// clipped to the AOI. Masked pixels are NaN.
func (s *SceneBands) MaskedReflectance(aoiMask [][]bool) thermal.SceneReflectance {
	width, height := s.Width(), s.Height()
	red := thermal.NewGrid(width, height)
	nir := thermal.NewGrid(width, height)
	swir := thermal.NewGrid(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if aoiMask != nil && !aoiMask[y][x] {
				continue
			}
			if !IsPixelClear(s.B04[y][x], s.B08[y][x], s.B11[y][x], s.CLD[y][x], s.SCL[y][x]) {
				continue
			}
			red.Values[y][x] = s.B04[y][x]
			nir.Values[y][x] = s.B08[y][x]
			swir.Values[y][x] = s.B11[y][x]
		}
	}

	return thermal.SceneReflectance{Red: red, NIR: nir, SWIR: swir}
}
