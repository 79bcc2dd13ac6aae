package aoi

import (
	"fmt"
	"os"

	"github.com/heatscape/heatscape-cli/internal/properties"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

func cityFilePath(city string) string {
	return fmt.Sprintf("%s/data/geojsons/%s.geojson", properties.RootPath(), city)
}

// LoadFeatureCollection parses the city's GeoJSON file with orb, for the
// pure-geometry paths (rasterized masks, summary export).
func LoadFeatureCollection(city string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(cityFilePath(city))
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geojson for city %s: %w", city, err)
	}
	return fc, nil
}

// ListAOIs returns the aoi_id of every feature in the city's GeoJSON file.
func ListAOIs(city string) ([]string, error) {
	fc, err := LoadFeatureCollection(city)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, feature := range fc.Features {
		if id, ok := feature.Properties["aoi_id"].(string); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no aoi_id properties found in geojson for city %s", city)
	}
	return ids, nil
}

// FindFeature returns the feature whose aoi_id matches.
func FindFeature(fc *geojson.FeatureCollection, aoiID string) (*geojson.Feature, error) {
	for _, feature := range fc.Features {
		if id, ok := feature.Properties["aoi_id"].(string); ok && id == aoiID {
			return feature, nil
		}
	}
	return nil, fmt.Errorf("aoi %s not found", aoiID)
}

func containsPoint(geom orb.Geometry, p orb.Point) bool {
	switch g := geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, p)
	default:
		return false
	}
}

// RasterMask rasterizes a polygon onto a grid described by a GDAL-style
// geotransform. A pixel is inside when its center falls inside the polygon.
func RasterMask(geom orb.Geometry, geoTransform [6]float64, width, height int) [][]bool {
	mask := make([][]bool, height)
	for y := range mask {
		mask[y] = make([]bool, width)
		for x := range mask[y] {
			lon := geoTransform[0] + geoTransform[1]*(float64(x)+0.5) + geoTransform[2]*(float64(y)+0.5)
			lat := geoTransform[3] + geoTransform[4]*(float64(x)+0.5) + geoTransform[5]*(float64(y)+0.5)
			mask[y][x] = containsPoint(geom, orb.Point{lon, lat})
		}
	}
	return mask
}
