package ui

import (
	"fmt"

	"github.com/heatscape/heatscape-cli/internal/aoi"
)

// ListAOIs handles the UI for viewing the areas of interest in a city
func ListAOIs(city string) {
	if city == "" {
		PrintWarning("Each area of interest is a feature of the city '.geojson' file, identified by its 'aoi_id' property.")
		city = ReadString("Enter the city name: ")
	}

	ids, err := aoi.ListAOIs(city)
	if err != nil {
		PrintError(fmt.Sprintf("Error listing AOIs: %s", err.Error()))
		return
	}

	fmt.Printf("\n%sAvailable AOIs:%s\n", ColorGreen, ColorReset)
	for _, id := range ids {
		fmt.Printf("%s- %s%s\n", ColorGreen, id, ColorReset)
	}
}
