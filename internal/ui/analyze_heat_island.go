package ui

import (
	"fmt"
	"math"

	"github.com/heatscape/heatscape-cli/internal/delivery"
	"github.com/heatscape/heatscape-cli/internal/notification"
)

// formatCelsius renders a temperature, or "n/a" when the value is unknown.
func formatCelsius(value float64) string {
	if math.IsNaN(value) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f°C", value)
}

// AnalyzeHeatIsland handles the UI for running a UHI analysis on one AOI
func AnalyzeHeatIsland() {
	PrintWarning("- A '.geojson' file with the city name should be present in data/geojsons folder.\n- The '.geojson' file should contain the desired area of interest in its features identified by aoi_id.")

	city, aoiID, err := ReadCityAndAOI()
	if err != nil {
		PrintError(err.Error())
		return
	}

	dates, err := ReadDates("Enter imagery dates (YYYY-MM-DD, comma separated, empty for defaults): ")
	if err != nil {
		PrintError(err.Error())
		return
	}

	opts := delivery.DefaultOptions()
	if len(dates) > 0 {
		opts.Dates = dates
	}

	report, err := delivery.AnalyzeHeatIsland(city, aoiID, opts)
	if err != nil {
		PrintError(fmt.Sprintf("Error analyzing heat island: %s", err.Error()))
		notification.SendDiscordErrorNotification(fmt.Sprintf("Heatscape CLI\n\nError analyzing heat island: %s", err.Error()))
		return
	}

	scenesUsed := 0
	for _, scene := range report.Scenes {
		if scene.Used {
			scenesUsed++
		}
	}

	PrintSuccess(fmt.Sprintf(
		"Successful analysis!\nScenes used: %d/%d\nMean LST: %.2f°C (std %.2f)\nMean air temperature: %s (surface-air offset %s)\nLST map: %s\nUHI map: %s\nUTFVI map: %s\nSummary: %s",
		scenesUsed, len(report.Scenes), report.LST.Mean, report.LST.StdDev,
		formatCelsius(report.MeanAirTempC), formatCelsius(report.SurfaceAirDiffC),
		report.LSTMapPath, report.UHIMapPath, report.UTFVIMapPath, report.SummaryPath))
	notification.SendDiscordSuccessNotification(fmt.Sprintf(
		"Heatscape CLI\n\nSuccessful analysis!\nCity: %s\nAOI: %s\nMean LST: %.2f°C\nUHI map: %s",
		city, aoiID, report.LST.Mean, report.UHIMapPath))
}
