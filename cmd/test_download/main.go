package main

import (
	"fmt"
	"log"
	"time"

	"github.com/airbusgeo/godal"
	"github.com/heatscape/heatscape-cli/internal/aoi"
	"github.com/heatscape/heatscape-cli/internal/sentinel"
	"github.com/joho/godotenv"
)

func main() {
	// Hardcoded test parameters - modify these to test different scenarios
	city := "lisbon"
	aoiID := "downtown"
	testDate := time.Date(2024, 8, 30, 0, 0, 0, 0, time.UTC)

	fmt.Println("=== Heatscape Test Image Download ===")
	fmt.Printf("City: %s\n", city)
	fmt.Printf("AOI: %s\n", aoiID)
	fmt.Printf("Date: %s\n", testDate.Format("2006-01-02"))
	fmt.Println()

	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		fmt.Println("Make sure you have set the required environment variables:")
		fmt.Println("- COPERNICUS_CLIENT_ID")
		fmt.Println("- COPERNICUS_CLIENT_SECRET")
		fmt.Println("- COPERNICUS_TOKEN_URL")
		fmt.Println("- ROOT_PATH")
		fmt.Println()
	}

	godal.RegisterAll()

	fmt.Printf("Loading geometry for city '%s', aoi '%s'...\n", city, aoiID)
	geometry, err := aoi.GetGeometryFromGeoJSON(city, aoiID)
	if err != nil {
		log.Fatalf("Failed to load geometry: %v", err)
	}
	defer geometry.Close()

	images, err := sentinel.GetImages(geometry, city, aoiID, []time.Time{testDate})
	if err != nil {
		log.Fatalf("Failed to download image: %v", err)
	}

	for date, ds := range images {
		bands, err := sentinel.ReadSceneBands(ds)
		if err != nil {
			log.Fatalf("Failed to read bands: %v", err)
		}
		fmt.Printf("Scene %s: %dx%d pixels, cloud fraction %.2f\n",
			date.Format("2006-01-02"), bands.Width(), bands.Height(), bands.CloudFraction(nil))
		ds.Close()
	}

	fmt.Println("Done.")
}
