package sentinel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/airbusgeo/godal"
	"github.com/heatscape/heatscape-cli/internal/properties"
	"golang.org/x/oauth2/clientcredentials"
)

const processAPIURL = "https://sh.dataspace.copernicus.eu/api/v1/process"

// evalscript returns red, NIR and SWIR reflectance plus the cloud
// probability and scene classification bands as Float32.
const evalscript = `
    //VERSION=3
    function setup() {
      return {
        input: ["B04", "B08", "B11", "CLD", "SCL"],
        output: {
          id: "default",
          bands: 5,
          sampleType: SampleType.FLOAT32,
        },
      }
    }

    function evaluatePixel(sample) {
      return [sample.B04, sample.B08, sample.B11, sample.CLD, sample.SCL];
    }
  `

func calculatePixels(distance float64, resolution float64) int {
	pixels := distance * (111_000.0 / resolution)
	if pixels < 1 {
		return 1
	}
	return int(pixels)
}

func buildProcessRequest(startDate, endDate time.Time, geojsonGeometry map[string]interface{}, widthPixels, heightPixels int) map[string]interface{} {
	return map[string]interface{}{
		"input": map[string]interface{}{
			"bounds": map[string]interface{}{
				"geometry": geojsonGeometry,
			},
			"data": []map[string]interface{}{
				{
					"dataFilter": map[string]interface{}{
						"timeRange": map[string]string{
							"from": startDate.Format(time.RFC3339),
							"to":   endDate.Format(time.RFC3339),
						},
					},
					"type": "sentinel-2-l2a",
				},
			},
		},
		"output": map[string]interface{}{
			"width":  widthPixels,
			"height": heightPixels,
			"responses": []map[string]interface{}{
				{
					"identifier": "default",
					"format": map[string]string{
						"type": "image/tiff",
					},
				},
			},
		},
		"evalscript": evalscript,
		"mosaicking": "mostRecent",
	}
}

func requestImage(startDate, endDate time.Time, geometry *godal.Geometry) ([]byte, error) {
	bbox, err := geometry.Bounds()
	if err != nil {
		return nil, fmt.Errorf("failed to get geometry bounds: %v", err)
	}

	widthPixels := calculatePixels(bbox[2]-bbox[0], properties.ImageResolutionMeters)
	heightPixels := calculatePixels(bbox[3]-bbox[1], properties.ImageResolutionMeters)
	// Clamp to allowed range (1-2500)
	if widthPixels > 2500 {
		widthPixels = 2500
	}
	if heightPixels > 2500 {
		heightPixels = 2500
	}

	geometryGeojson, err := geometry.GeoJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to export geometry to GeoJSON: %w", err)
	}
	var geojsonMap map[string]interface{}
	if err := json.Unmarshal([]byte(geometryGeojson), &geojsonMap); err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}

	requestPayload := buildProcessRequest(startDate, endDate, geojsonMap, widthPixels, heightPixels)
	requestBody, err := json.Marshal(requestPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %v", err)
	}

	clientIDs := properties.CopernicusClientIDs()
	clientSecrets := properties.CopernicusClientSecrets()
	tokenURL := properties.CopernicusTokenURL()

	if clientIDs == "" || clientSecrets == "" || tokenURL == "" {
		return nil, fmt.Errorf("missing required environment variables: COPERNICUS_CLIENT_ID, COPERNICUS_CLIENT_SECRET, or COPERNICUS_TOKEN_URL")
	}

	clientIDList := strings.Split(clientIDs, ",")
	clientSecretList := strings.Split(clientSecrets, ",")

	var responseContent []byte
	for i, clientID := range clientIDList {
		if i >= len(clientSecretList) {
			return nil, fmt.Errorf("mismatched number of client IDs and secrets")
		}
		config := &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecretList[i],
			TokenURL:     tokenURL,
		}
		httpClient := config.Client(context.Background())

		responseContent, err = postWithRetry(httpClient, processAPIURL, requestBody, 10)
		if err == nil {
			break
		}
	}

	return responseContent, err
}

// retryDelay between process API attempts, shortened in tests.
var retryDelay = 5 * time.Second

// postWithRetry posts the request until it gets a 200, giving up early on
// a 403 because retrying bad credentials never helps.
func postWithRetry(httpClient *http.Client, url string, requestBody []byte, retries int) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		response, err := httpClient.Post(url, "application/json", bytes.NewBuffer(requestBody))
		if err != nil {
			fmt.Printf("Attempt %d failed: %v\n", attempt, err)
			lastErr = err
			time.Sleep(retryDelay)
			continue
		}

		body, readErr := io.ReadAll(response.Body)
		response.Body.Close()

		switch {
		case response.StatusCode == http.StatusOK:
			if readErr != nil {
				return nil, fmt.Errorf("failed to read response body: %v", readErr)
			}
			return body, nil
		case response.StatusCode == http.StatusForbidden || response.StatusCode == http.StatusUnauthorized:
			return nil, fmt.Errorf("unauthorized access, check your client ID and secret")
		default:
			fmt.Printf("Attempt %d failed with status %d: %s\n", attempt, response.StatusCode, string(body))
			lastErr = fmt.Errorf("status %d: %s", response.StatusCode, string(body))
			time.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("failed to request image after %d attempts: %v", retries, lastErr)
}
