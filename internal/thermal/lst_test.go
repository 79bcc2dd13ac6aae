package thermal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridOf(rows ...[]float64) Grid {
	return Grid{Values: rows}
}

func TestNDVI(t *testing.T) {
	nir := gridOf([]float64{0.8, 0.5, 0.0})
	red := gridOf([]float64{0.2, 0.5, 0.0})

	ndvi, err := NDVI(nir, red)
	require.NoError(t, err)

	assert.InDelta(t, 0.6, ndvi.Values[0][0], 1e-9)
	assert.InDelta(t, 0.0, ndvi.Values[0][1], 1e-9)
	// zero denominator falls back to 0 instead of dividing
	assert.Equal(t, 0.0, ndvi.Values[0][2])
}

func TestNDVIPropagatesMask(t *testing.T) {
	nir := gridOf([]float64{math.NaN(), 0.8})
	red := gridOf([]float64{0.2, math.NaN()})

	ndvi, err := NDVI(nir, red)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(ndvi.Values[0][0]))
	assert.True(t, math.IsNaN(ndvi.Values[0][1]))
}

func TestNDVIShapeMismatch(t *testing.T) {
	nir := gridOf([]float64{0.8, 0.5})
	red := gridOf([]float64{0.2})

	_, err := NDVI(nir, red)
	assert.Error(t, err)
}

func TestProportionOfVegetationClamps(t *testing.T) {
	ndvi := gridOf([]float64{-0.5, 0.2, 0.45, 0.7, 0.95})

	pv := ProportionOfVegetation(ndvi)

	assert.Equal(t, 0.0, pv.Values[0][0])
	assert.Equal(t, 0.0, pv.Values[0][1])
	assert.InDelta(t, 0.25, pv.Values[0][2], 1e-9)
	assert.InDelta(t, 1.0, pv.Values[0][3], 1e-9)
	// clamped to 1 before squaring
	assert.InDelta(t, 1.0, pv.Values[0][4], 1e-9)
}

func TestEmissivityRange(t *testing.T) {
	pv := gridOf([]float64{0.0, 1.0, 0.5})

	em := Emissivity(pv)

	assert.InDelta(t, 0.986, em.Values[0][0], 1e-9)
	assert.InDelta(t, 0.990, em.Values[0][1], 1e-9)
	assert.InDelta(t, 0.988, em.Values[0][2], 1e-9)
}

func TestLSTFormula(t *testing.T) {
	// B11 reflectance 0.031 scales to BT=310; emissivity 0.99 barely
	// lowers the Kelvin value before the Celsius conversion.
	swir := gridOf([]float64{0.031})
	em := gridOf([]float64{0.99})

	lst, err := LST(swir, em)
	require.NoError(t, err)

	bt := 310.0
	expected := bt/(1+(0.00115*(bt/1.438))*math.Log(0.99)) - 273.15
	assert.InDelta(t, expected, lst.Values[0][0], 1e-9)
	// sanity: near the raw Celsius value, slightly above it
	assert.Greater(t, lst.Values[0][0], bt-273.15)
	assert.Less(t, lst.Values[0][0], bt-273.15+1)
}

func TestLSTMasksNonPositiveInputs(t *testing.T) {
	swir := gridOf([]float64{0.0, -0.01, math.NaN()})
	em := gridOf([]float64{0.99, 0.99, 0.99})

	lst, err := LST(swir, em)
	require.NoError(t, err)

	for x := 0; x < 3; x++ {
		assert.True(t, math.IsNaN(lst.Values[0][x]), "pixel %d should be masked", x)
	}
}

func TestSceneLST(t *testing.T) {
	scene := SceneReflectance{
		Red:  gridOf([]float64{0.1, math.NaN()}),
		NIR:  gridOf([]float64{0.6, 0.6}),
		SWIR: gridOf([]float64{0.030, 0.030}),
	}

	lst, err := SceneLST(scene)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(lst.Values[0][0]))
	assert.True(t, math.IsNaN(lst.Values[0][1]))
}
