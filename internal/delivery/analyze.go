package delivery

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/heatscape/heatscape-cli/internal/aoi"
	"github.com/heatscape/heatscape-cli/internal/properties"
	"github.com/heatscape/heatscape-cli/internal/sentinel"
	"github.com/heatscape/heatscape-cli/internal/stats"
	"github.com/heatscape/heatscape-cli/internal/thermal"
	"github.com/heatscape/heatscape-cli/internal/utils"
	"github.com/heatscape/heatscape-cli/internal/weather"
	"github.com/heatscape/heatscape-cli/output"
	"github.com/paulmach/orb/geojson"
)

type Options struct {
	Dates            []time.Time
	MaxCloudFraction float64
	Workers          int
}

func DefaultOptions() Options {
	return Options{
		Dates:            properties.DefaultAnalysisDates,
		MaxCloudFraction: properties.MaxCloudyPixelFraction,
		Workers:          4,
	}
}

// Report is the result of one heat-island analysis.
type Report struct {
	City string
	AOI  string
	LST  stats.Summary
	// NaN when the air temperature could not be fetched.
	MeanAirTempC    float64
	SurfaceAirDiffC float64
	Scenes          []output.SceneRecord
	LSTMapPath      string
	UHIMapPath      string
	UTFVIMapPath    string
	SummaryPath     string
	SceneCSVPath    string
}

// AnalyzeHeatIsland runs the full pipeline for one AOI: imagery download,
// cloud filtering, LST composite, UHI/UTFVI normalization and export.
func AnalyzeHeatIsland(city, aoiID string, opts Options) (*Report, error) {
	start := time.Now()

	if len(opts.Dates) == 0 {
		opts.Dates = properties.DefaultAnalysisDates
	}
	if opts.MaxCloudFraction <= 0 {
		opts.MaxCloudFraction = properties.MaxCloudyPixelFraction
	}

	geometry, err := aoi.GetGeometryFromGeoJSON(city, aoiID)
	if err != nil {
		return nil, err
	}
	defer geometry.Close()

	fc, err := aoi.LoadFeatureCollection(city)
	if err != nil {
		return nil, err
	}
	feature, err := aoi.FindFeature(fc, aoiID)
	if err != nil {
		return nil, err
	}

	stepStart := time.Now()
	images, err := sentinel.GetImages(geometry, city, aoiID, opts.Dates)
	if err != nil {
		return nil, err
	}
	fmt.Printf("GetImages took %v\n", time.Since(stepStart))
	if len(images) == 0 {
		return nil, fmt.Errorf("no scenes available for city %s, aoi %s on the requested dates", city, aoiID)
	}
	defer func() {
		for _, ds := range images {
			ds.Close()
		}
	}()

	sortedDates := utils.GetSortedKeys(images, true)

	var geoTransform [6]float64
	var width, height int
	var aoiMask [][]bool
	var scenes []thermal.SceneReflectance
	var sceneDates []time.Time
	records := make([]output.SceneRecord, 0, len(sortedDates))

	for _, date := range sortedDates {
		ds := images[date]

		if width == 0 {
			geoTransform, err = ds.GeoTransform()
			if err != nil {
				return nil, fmt.Errorf("failed to get geotransform: %w", err)
			}
			width = ds.Structure().SizeX
			height = ds.Structure().SizeY
			aoiMask = aoi.RasterMask(feature.Geometry, geoTransform, width, height)
		} else {
			if ds.Structure().SizeX != width || ds.Structure().SizeY != height {
				return nil, fmt.Errorf("scene %s is %dx%d, expected %dx%d",
					date.Format("2006-01-02"), ds.Structure().SizeX, ds.Structure().SizeY, width, height)
			}
			sceneTransform, err := ds.GeoTransform()
			if err != nil {
				return nil, fmt.Errorf("failed to get geotransform: %w", err)
			}
			if !sameGeoTransform(sceneTransform, geoTransform) {
				return nil, fmt.Errorf("scene %s has geotransform %v, expected %v",
					date.Format("2006-01-02"), sceneTransform, geoTransform)
			}
		}

		bands, err := sentinel.ReadSceneBands(ds)
		if err != nil {
			return nil, fmt.Errorf("failed to read scene %s: %w", date.Format("2006-01-02"), err)
		}

		cloudFraction := bands.CloudFraction(aoiMask)
		record := output.SceneRecord{
			Date:          date.Format("2006-01-02"),
			CloudFraction: cloudFraction,
		}
		if cloudFraction > opts.MaxCloudFraction {
			records = append(records, record)
			continue
		}

		record.Used = true
		records = append(records, record)
		scenes = append(scenes, bands.MaskedReflectance(aoiMask))
		sceneDates = append(sceneDates, date)
	}

	if len(scenes) == 0 {
		return nil, fmt.Errorf("all %d scenes exceed the cloud fraction threshold of %.0f%%",
			len(images), opts.MaxCloudFraction*100)
	}

	stepStart = time.Now()
	sceneLSTs, err := thermal.ComputeSceneLSTs(scenes, opts.Workers)
	if err != nil {
		return nil, err
	}
	fmt.Printf("ComputeSceneLSTs took %v\n", time.Since(stepStart))

	// per-scene zonal stats feed the inventory CSV
	recordIdx := 0
	for i := range records {
		if !records[i].Used {
			continue
		}
		sceneZonal := thermal.ZonalStats(sceneLSTs[recordIdx])
		records[i].MeanLST = sceneZonal.Mean
		records[i].StdDevLST = sceneZonal.StdDev
		records[i].MinLST = sceneZonal.Min
		records[i].MaxLST = sceneZonal.Max
		records[i].PixelCount = sceneZonal.Count
		recordIdx++
	}

	composite, err := thermal.MedianComposite(sceneLSTs)
	if err != nil {
		return nil, err
	}

	zonal := thermal.ZonalStats(composite)
	if zonal.Count == 0 {
		return nil, fmt.Errorf("composite has no unmasked pixels inside the aoi")
	}
	fmt.Printf("Mean LST in AOI: %.2f°C (std %.2f, %d pixels)\n", zonal.Mean, zonal.StdDev, zonal.Count)

	uhi, err := thermal.UHI(composite, zonal)
	if err != nil {
		return nil, err
	}
	utfvi, err := thermal.UTFVI(composite, zonal)
	if err != nil {
		return nil, err
	}

	latitude, longitude, err := aoi.GetCentroidLatitudeLongitudeFromGeometry(geometry)
	if err != nil {
		return nil, err
	}

	// Air temperature is context, not input: when the fetch fails the
	// analysis still completes, with the offset reported as unknown.
	meanAirTemp := math.NaN()
	airTemp, err := weather.FetchAirTemperature(latitude, longitude, sceneDates[0], sceneDates[len(sceneDates)-1], 10)
	if err != nil {
		fmt.Printf("Warning: failed to fetch air temperature context: %v\n", err)
	} else {
		meanAirTemp = airTemp.Mean()
	}

	report := &Report{
		City:            city,
		AOI:             aoiID,
		LST:             zonal,
		MeanAirTempC:    meanAirTemp,
		SurfaceAirDiffC: zonal.Mean - meanAirTemp,
		Scenes:          records,
	}

	if err := writeOutputs(report, feature, composite, uhi, utfvi, geoTransform, sceneDates); err != nil {
		return nil, err
	}

	fmt.Printf("Total analysis time: %v\n", time.Since(start))
	return report, nil
}

// sameGeoTransform reports whether two scenes cover the same grid. Cached
// scenes from different runs must share origin and pixel size or their
// pixels would not line up in the composite.
func sameGeoTransform(a, b [6]float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

func writeOutputs(report *Report, feature *geojson.Feature, composite, uhi, utfvi thermal.Grid, geoTransform [6]float64, sceneDates []time.Time) error {
	resultDir := filepath.Join(properties.RootPath(), "data", "result")
	if err := os.MkdirAll(resultDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create result directory: %v", err)
	}

	lastDate := sceneDates[len(sceneDates)-1].Format("2006-01-02")
	prefix := filepath.Join(resultDir, fmt.Sprintf("%s_%s_%s", report.City, report.AOI, lastDate))

	outline := feature.Geometry

	report.LSTMapPath = prefix + "_lst.png"
	if err := output.RenderMap(composite, properties.LSTVisMin, properties.LSTVisMax, outline, geoTransform, report.LSTMapPath); err != nil {
		return err
	}
	report.UHIMapPath = prefix + "_uhi.png"
	if err := output.RenderMap(uhi, properties.UHIVisMin, properties.UHIVisMax, outline, geoTransform, report.UHIMapPath); err != nil {
		return err
	}
	report.UTFVIMapPath = prefix + "_utfvi.png"
	if err := output.RenderMap(utfvi, properties.UTFVIVisMin, properties.UTFVIVisMax, outline, geoTransform, report.UTFVIMapPath); err != nil {
		return err
	}

	for _, export := range []struct {
		grid thermal.Grid
		path string
	}{
		{composite, prefix + "_lst.tif"},
		{uhi, prefix + "_uhi.tif"},
		{utfvi, prefix + "_utfvi.tif"},
	} {
		if err := output.WriteGeoTIFF(export.grid, geoTransform, export.path); err != nil {
			return err
		}
	}

	report.SceneCSVPath = prefix + "_scenes.csv"
	if err := output.WriteSceneCSV(report.Scenes, report.SceneCSVPath); err != nil {
		return err
	}

	scenesUsed := 0
	for _, record := range report.Scenes {
		if record.Used {
			scenesUsed++
		}
	}
	report.SummaryPath = prefix + "_summary.geojson"
	return output.WriteSummaryGeoJSON(feature, output.SummaryProperties{
		City:           report.City,
		AOI:            report.AOI,
		ScenesUsed:     scenesUsed,
		LST:            report.LST,
		MeanAirTempC:   report.MeanAirTempC,
		SurfaceAirDiff: report.SurfaceAirDiffC,
	}, report.SummaryPath)
}
