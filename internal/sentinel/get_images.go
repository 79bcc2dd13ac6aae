package sentinel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/airbusgeo/godal"
	"github.com/heatscape/heatscape-cli/internal/properties"
	"github.com/heatscape/heatscape-cli/internal/utils"
	"golang.org/x/sync/errgroup"
)

func imagesDir(city, aoiID string) string {
	return filepath.Join(properties.RootPath(), "data", "images", fmt.Sprintf("%s_%s", city, aoiID))
}

func invalidImagesFile() string {
	return filepath.Join(properties.RootPath(), "data", "images", "invalid_images.json")
}

func openDataset(fileName string) (*godal.Dataset, error) {
	return godal.Open(fileName, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("gdal error %d: %s", code, msg)
	}))
}

// GetImages downloads (or reuses the cached copy of) one scene per
// requested date. Dates with no usable scene are recorded in the negative
// cache and skipped on later runs. Downloads run in parallel, datasets are
// opened sequentially because godal handles are not thread-safe.
func GetImages(geometry *godal.Geometry, city, aoiID string, dates []time.Time) (map[time.Time]*godal.Dataset, error) {
	dates = dedupeAndSortDates(dates)

	imagesNotFound, err := loadImagesNotFound()
	if err != nil {
		return nil, err
	}

	dir := imagesDir(city, aoiID)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %v", err)
	}

	type download struct {
		date     time.Time
		fileName string
	}
	var pending []download
	images := make(map[time.Time]*godal.Dataset)

	for _, date := range dates {
		imageName := fmt.Sprintf("%s_%s_%s.tif", city, aoiID, date.Format("2006-01-02"))
		fileName := filepath.Join(dir, imageName)

		if slices.Contains(imagesNotFound, imageName) {
			continue
		}

		if _, err := os.Stat(fileName); err == nil {
			ds, err := openDataset(fileName)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %v", fileName, err)
			}
			images[date] = ds
			continue
		}

		pending = append(pending, download{date: date, fileName: fileName})
	}

	var eg errgroup.Group
	eg.SetLimit(4)
	downloaded := make([]bool, len(pending))
	for i, dl := range pending {
		i, dl := i, dl
		eg.Go(func() error {
			startImageDate := dl.date
			endImageDate := dl.date.Add(time.Hour*23 + time.Minute*59 + time.Second*59)
			imageBytes, err := requestImage(startImageDate, endImageDate, geometry)
			if err != nil {
				return fmt.Errorf("error requesting image: %v", err)
			}
			if err := os.WriteFile(dl.fileName, imageBytes, 0644); err != nil {
				return fmt.Errorf("failed to write image file: %v", err)
			}
			downloaded[i] = true
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var notFoundNow []string
	for i, dl := range pending {
		if !downloaded[i] {
			continue
		}
		ds, err := openDataset(dl.fileName)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %v", dl.fileName, err)
		}

		// A date without an acquisition still yields a TIFF from the
		// process API, just with every pixel invalid. Record it so later
		// runs skip the download entirely.
		bands, err := ReadSceneBands(ds)
		if err != nil {
			ds.Close()
			return nil, fmt.Errorf("failed to read %s: %v", dl.fileName, err)
		}
		if sceneUnusable(bands) {
			ds.Close()
			if err := os.Remove(dl.fileName); err != nil {
				fmt.Printf("Failed to delete unusable image %s: %v\n", dl.fileName, err)
			}
			notFoundNow = append(notFoundNow, filepath.Base(dl.fileName))
			fmt.Printf("No usable scene for %s, skipping\n", dl.date.Format("2006-01-02"))
			continue
		}

		images[dl.date] = ds
	}

	if len(notFoundNow) > 0 {
		saveImagesNotFound(invalidImagesFile(), notFoundNow)
	}

	return images, nil
}

// sceneUnusable reports whether every pixel of the scene fails the
// validity checks, meaning no acquisition covered the AOI on that date.
func sceneUnusable(bands *SceneBands) bool {
	return bands.CloudFraction(nil) >= 1
}

func dedupeAndSortDates(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	unique := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		unique = append(unique, day)
	}
	return utils.SortDates(unique, true)
}

func loadImagesNotFound() ([]string, error) {
	filePath := invalidImagesFile()
	var imagesNotFound []string
	if _, err := os.Stat(filePath); err == nil {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %v", filePath, err)
		}
		if err := json.Unmarshal(data, &imagesNotFound); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s: %v", filePath, err)
		}
	}
	return imagesNotFound, nil
}

func saveImagesNotFound(filePath string, imagesNotFound []string) {
	var existing []string
	if _, err := os.Stat(filePath); err == nil {
		data, err := os.ReadFile(filePath)
		if err == nil {
			_ = json.Unmarshal(data, &existing)
		}
	}

	existing = append(existing, imagesNotFound...)

	unique := make(map[string]struct{})
	for _, image := range existing {
		unique[image] = struct{}{}
	}
	final := make([]string, 0, len(unique))
	for image := range unique {
		final = append(final, image)
	}

	data, _ := json.Marshal(final)
	_ = os.WriteFile(filePath, data, 0644)
}
