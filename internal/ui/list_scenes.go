package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/heatscape/heatscape-cli/internal/properties"
)

// ListScenes handles the UI for viewing the cached scenes of an AOI
func ListScenes() {
	city, aoiID, err := ReadCityAndAOI()
	if err != nil {
		PrintError(err.Error())
		return
	}

	imageFolderPath := fmt.Sprintf("%s/data/images/%s_%s/", properties.RootPath(), city, aoiID)
	files, err := os.ReadDir(imageFolderPath)
	if err != nil {
		PrintError(fmt.Sprintf("Error reading image folder: %s", err.Error()))
		return
	}

	if len(files) == 0 {
		PrintWarning("No cached scenes yet. Run an analysis to download imagery.")
		return
	}

	fmt.Printf("\n%sCached scenes:%s\n", ColorGreen, ColorReset)
	for _, file := range files {
		if strings.HasSuffix(file.Name(), ".tif") {
			fmt.Printf("%s- %s%s\n", ColorGreen, file.Name(), ColorReset)
		}
	}
}
