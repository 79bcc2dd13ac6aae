package weather

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/heatscape/heatscape-cli/internal/cache"
)

type dailyData struct {
	Time        []string  `json:"time"`
	Temperature []float64 `json:"temperature_2m_mean"`
}

type archiveResponse struct {
	Daily dailyData `json:"daily"`
}

// AirTemperature is the daily mean 2m air temperature in Celsius, keyed by
// day. Reported next to the LST stats so the surface-air offset is visible.
type AirTemperature map[time.Time]float64

// Mean is the period average, NaN when no days are available.
func (a AirTemperature) Mean() float64 {
	if len(a) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, t := range a {
		sum += t
	}
	return sum / float64(len(a))
}

// FetchAirTemperature queries the Open-Meteo archive for the daily mean air
// temperature at a point over a period. Responses are file-cached.
func FetchAirTemperature(latitude, longitude float64, startDate, endDate time.Time, retries int) (AirTemperature, error) {
	fileCache := cache.NewFileCache[map[string]float64]("weather")
	cacheKey := fileCache.GenerateKey(
		fmt.Sprintf("%f", latitude),
		fmt.Sprintf("%f", longitude),
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02"),
	)

	if cached, ok := fileCache.Get(cacheKey); ok {
		return parseCached(cached)
	}

	url := "https://archive-api.open-meteo.com/v1/archive"
	params := fmt.Sprintf("?latitude=%f&longitude=%f&start_date=%s&end_date=%s&daily=temperature_2m_mean",
		latitude, longitude, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	var attempt int
	for attempt < retries {
		resp, err := http.Get(url + params)
		if err != nil {
			fmt.Printf("Failed to retrieve weather data: %v. Retrying... (%d/%d)\n", err, attempt+1, retries)
			time.Sleep(10 * time.Second)
			attempt++
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			fmt.Printf("Failed to retrieve weather data: %d. Retrying... (%d/%d)\n", resp.StatusCode, attempt+1, retries)
			time.Sleep(10 * time.Second)
			attempt++
			continue
		}

		var archive archiveResponse
		err = json.NewDecoder(resp.Body).Decode(&archive)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse weather response: %v", err)
		}

		byDay := make(map[string]float64, len(archive.Daily.Time))
		for i, day := range archive.Daily.Time {
			if i < len(archive.Daily.Temperature) {
				byDay[day] = archive.Daily.Temperature[i]
			}
		}
		if err := fileCache.Set(cacheKey, byDay); err != nil {
			fmt.Printf("Failed to cache weather data: %v\n", err)
		}

		return parseCached(byDay)
	}

	return nil, fmt.Errorf("failed to retrieve weather data after %d attempts", retries)
}

func parseCached(byDay map[string]float64) (AirTemperature, error) {
	result := AirTemperature{}
	for day, temp := range byDay {
		parsed, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("failed to parse weather date: %v", err)
		}
		result[parsed] = temp
	}
	return result, nil
}
