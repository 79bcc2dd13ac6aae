package output

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/heatscape/heatscape-cli/internal/stats"
	"github.com/paulmach/orb/geojson"
)

// SceneRecord is one row of the per-date scene inventory CSV.
type SceneRecord struct {
	Date          string  `csv:"date"`
	CloudFraction float64 `csv:"cloud_fraction"`
	Used          bool    `csv:"used"`
	MeanLST       float64 `csv:"mean_lst"`
	StdDevLST     float64 `csv:"std_dev_lst"`
	MinLST        float64 `csv:"min_lst"`
	MaxLST        float64 `csv:"max_lst"`
	PixelCount    int     `csv:"pixel_count"`
}

// WriteSceneCSV writes the per-date scene inventory.
func WriteSceneCSV(records []SceneRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return fmt.Errorf("failed to write scene CSV: %v", err)
	}
	return nil
}

// SummaryProperties carries the zonal statistics attached to the AOI
// feature in the summary GeoJSON. The air temperature fields are NaN when
// no weather data was available and are then left out of the output, since
// JSON has no encoding for NaN.
type SummaryProperties struct {
	City           string        `json:"city"`
	AOI            string        `json:"aoi_id"`
	ScenesUsed     int           `json:"scenes_used"`
	LST            stats.Summary `json:"lst"`
	MeanAirTempC   float64       `json:"mean_air_temperature_c"`
	SurfaceAirDiff float64       `json:"surface_air_difference_c"`
}

// WriteSummaryGeoJSON writes the AOI feature with the analysis results as
// its properties.
func WriteSummaryGeoJSON(feature *geojson.Feature, props SummaryProperties, outputPath string) error {
	out := geojson.NewFeature(feature.Geometry)
	out.Properties["city"] = props.City
	out.Properties["aoi_id"] = props.AOI
	out.Properties["scenes_used"] = props.ScenesUsed
	out.Properties["lst_mean"] = props.LST.Mean
	out.Properties["lst_std_dev"] = props.LST.StdDev
	out.Properties["lst_min"] = props.LST.Min
	out.Properties["lst_max"] = props.LST.Max
	out.Properties["pixel_count"] = props.LST.Count
	if !math.IsNaN(props.MeanAirTempC) {
		out.Properties["mean_air_temperature_c"] = props.MeanAirTempC
		out.Properties["surface_air_difference_c"] = props.SurfaceAirDiff
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(out)

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create GeoJSON file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fc); err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %v", err)
	}
	return nil
}
