package aoi

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareFeature(aoiID string) *geojson.Feature {
	poly := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
	}
	f := geojson.NewFeature(poly)
	f.Properties["aoi_id"] = aoiID
	return f
}

func TestFindFeature(t *testing.T) {
	fc := geojson.NewFeatureCollection()
	fc.Append(squareFeature("downtown"))
	fc.Append(squareFeature("harbor"))

	f, err := FindFeature(fc, "harbor")
	require.NoError(t, err)
	assert.Equal(t, "harbor", f.Properties["aoi_id"])

	_, err = FindFeature(fc, "airport")
	assert.Error(t, err)
}

func TestRasterMask(t *testing.T) {
	poly := orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
	}

	// 4x4 grid spanning lon 0..20, lat 20..0: only the lower-left
	// quadrant of rows overlaps the polygon.
	geoTransform := [6]float64{0, 5, 0, 20, 0, -5}
	mask := RasterMask(poly, geoTransform, 4, 4)

	require.Len(t, mask, 4)
	// top rows (lat 17.5, 12.5) are above the polygon
	assert.False(t, mask[0][0])
	assert.False(t, mask[1][0])
	// bottom-left pixels (lat 7.5, 2.5 / lon 2.5, 7.5) are inside
	assert.True(t, mask[2][0])
	assert.True(t, mask[2][1])
	assert.True(t, mask[3][0])
	// right half (lon 12.5, 17.5) is outside
	assert.False(t, mask[2][2])
	assert.False(t, mask[3][3])
}

func TestRasterMaskMultiPolygon(t *testing.T) {
	mp := orb.MultiPolygon{
		{{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}}},
	}
	geoTransform := [6]float64{0, 4, 0, 4, 0, -4}

	mask := RasterMask(mp, geoTransform, 1, 1)
	assert.True(t, mask[0][0])
}

func TestRasterMaskUnsupportedGeometry(t *testing.T) {
	geoTransform := [6]float64{0, 1, 0, 1, 0, -1}
	mask := RasterMask(orb.Point{0.5, 0.5}, geoTransform, 1, 1)
	assert.False(t, mask[0][0])
}
