package aoi

import (
	"errors"
	"fmt"

	"github.com/airbusgeo/godal"
	"github.com/heatscape/heatscape-cli/internal/properties"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// GetGeometryFromGeoJSON loads the polygon of one AOI from the city's
// GeoJSON file. Features are matched on their "aoi_id" property.
func GetGeometryFromGeoJSON(city, aoiID string) (*godal.Geometry, error) {
	filePath := fmt.Sprintf("%s/data/geojsons/%s.geojson", properties.RootPath(), city)

	godal.RegisterInternalDrivers()
	ds, err := godal.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	layer := ds.Layers()[0]
	for {
		feat := layer.NextFeature()
		if feat == nil {
			break
		}
		defer feat.Close()

		val, ok := feat.Fields()["aoi_id"]
		if !ok {
			continue
		}

		if val.String() == aoiID {
			geom := feat.Geometry()
			wkb, _ := geom.WKB()
			return godal.NewGeometryFromWKB(wkb, geom.SpatialRef())
		}
	}

	return nil, fmt.Errorf("geometry not found for city %s and aoi %s", city, aoiID)
}

// GetCentroidLatitudeLongitudeFromGeometry returns the polygon centroid,
// used to center the output maps and to query the weather archive.
func GetCentroidLatitudeLongitudeFromGeometry(g *godal.Geometry) (float64, float64, error) {
	json, err := g.GeoJSON()
	if err != nil {
		return 0, 0, err
	}
	geomT, err := geojson.UnmarshalGeometry([]byte(json))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to unmarshal geometry geojson: %w", err)
	}

	centroid, area := planar.CentroidArea(geomT.Coordinates)
	if area <= 0 {
		return 0, 0, errors.New("error getting centroid")
	}
	return centroid.Y(), centroid.X(), nil
}
