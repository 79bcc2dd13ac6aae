package sentinel

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPixelClear(t *testing.T) {
	tests := []struct {
		name                    string
		b04, b08, b11, cld, scl float64
		want                    bool
	}{
		{"clear vegetation", 0.05, 0.4, 0.2, 0, 4, true},
		{"cloud probability", 0.05, 0.4, 0.2, 5, 4, false},
		{"cloud shadow", 0.05, 0.4, 0.2, 0, 3, false},
		{"medium cloud", 0.05, 0.4, 0.2, 0, 8, false},
		{"high cloud", 0.05, 0.4, 0.2, 0, 9, false},
		{"thin cirrus", 0.05, 0.4, 0.2, 0, 10, false},
		{"nan reflectance", math.NaN(), 0.4, 0.2, 0, 4, false},
		{"all zero reflectance", 0, 0, 0, 0, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsPixelClear(tt.b04, tt.b08, tt.b11, tt.cld, tt.scl)
			assert.Equal(t, tt.want, got)
		})
	}
}

func testScene() *SceneBands {
	return &SceneBands{
		B04: [][]float64{{0.05, 0.06}, {0.07, 0.08}},
		B08: [][]float64{{0.40, 0.41}, {0.42, 0.43}},
		B11: [][]float64{{0.20, 0.21}, {0.22, 0.23}},
		CLD: [][]float64{{0, 80}, {0, 0}},
		SCL: [][]float64{{4, 9}, {4, 4}},
	}
}

func TestCloudFraction(t *testing.T) {
	scene := testScene()

	assert.InDelta(t, 0.25, scene.CloudFraction(nil), 1e-9)

	// mask out the cloudy pixel, the rest is clear
	mask := [][]bool{{true, false}, {true, true}}
	assert.InDelta(t, 0.0, scene.CloudFraction(mask), 1e-9)

	// empty mask means nothing usable
	empty := [][]bool{{false, false}, {false, false}}
	assert.Equal(t, 1.0, scene.CloudFraction(empty))
}

func TestMaskedReflectance(t *testing.T) {
	scene := testScene()
	mask := [][]bool{{true, true}, {true, false}}

	refl := scene.MaskedReflectance(mask)

	// clear and inside the AOI
	assert.Equal(t, 0.05, refl.Red.Values[0][0])
	assert.Equal(t, 0.40, refl.NIR.Values[0][0])
	assert.Equal(t, 0.20, refl.SWIR.Values[0][0])
	// cloudy pixel is masked
	assert.True(t, math.IsNaN(refl.Red.Values[0][1]))
	// outside the AOI is masked
	assert.True(t, math.IsNaN(refl.Red.Values[1][1]))
	// clear in-AOI pixel on the second row survives
	assert.Equal(t, 0.07, refl.Red.Values[1][0])
}

func TestDedupeAndSortDates(t *testing.T) {
	d1 := time.Date(2024, 8, 30, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 8, 30, 0, 0, 0, 0, time.UTC) // duplicate day of d1

	sorted := dedupeAndSortDates([]time.Time{d1, d2, d3})

	require.Len(t, sorted, 2)
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), sorted[0])
	assert.Equal(t, time.Date(2024, 8, 30, 0, 0, 0, 0, time.UTC), sorted[1])
}
