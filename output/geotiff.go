package output

import (
	"fmt"
	"math"

	"github.com/airbusgeo/godal"
	"github.com/heatscape/heatscape-cli/internal/thermal"
)

const noDataValue = -9999.0

// WriteGeoTIFF exports a grid as a single-band Float64 GeoTIFF in WGS84.
// Masked pixels become the NoData value.
func WriteGeoTIFF(grid thermal.Grid, geoTransform [6]float64, outputPath string) error {
	width, height := grid.Width(), grid.Height()
	if width == 0 || height == 0 {
		return fmt.Errorf("cannot export an empty grid")
	}

	ds, err := godal.Create(godal.GTiff, outputPath, 1, godal.Float64, width, height)
	if err != nil {
		return fmt.Errorf("failed to create GeoTIFF %s: %v", outputPath, err)
	}
	defer ds.Close()

	if err := ds.SetGeoTransform(geoTransform); err != nil {
		return fmt.Errorf("failed to set geotransform: %v", err)
	}

	sr, err := godal.NewSpatialRefFromEPSG(4326)
	if err != nil {
		return fmt.Errorf("failed to create WGS84 spatial ref: %v", err)
	}
	defer sr.Close()
	if err := ds.SetSpatialRef(sr); err != nil {
		return fmt.Errorf("failed to set spatial ref: %v", err)
	}

	band := ds.Bands()[0]
	if err := band.SetNoData(noDataValue); err != nil {
		return fmt.Errorf("failed to set nodata value: %v", err)
	}

	data := grid.Flatten()
	for i, v := range data {
		if math.IsNaN(v) {
			data[i] = noDataValue
		}
	}
	if err := band.Write(0, 0, data, width, height); err != nil {
		return fmt.Errorf("failed to write band data: %v", err)
	}

	return nil
}
