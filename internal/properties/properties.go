package properties

import (
	"os"
	"time"
)

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

func CopernicusTokenURL() string {
	return os.Getenv("COPERNICUS_TOKEN_URL")
}

func CopernicusClientIDs() string {
	return os.Getenv("COPERNICUS_CLIENT_ID")
}

func CopernicusClientSecrets() string {
	return os.Getenv("COPERNICUS_CLIENT_SECRET")
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}

// Sentinel-2 L2A resolution in meters used for all requests.
const ImageResolutionMeters = 10.0

// Scenes with a higher cloudy pixel fraction are discarded entirely.
const MaxCloudyPixelFraction = 0.20

// DefaultAnalysisDates is the imagery date list used when the user does not
// provide one. Dates with no usable scene are skipped.
var DefaultAnalysisDates = []time.Time{
	time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 6, 26, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 7, 6, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 7, 11, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 8, 25, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 8, 30, 0, 0, 0, 0, time.UTC),
}

type Color struct {
	R, G, B uint8
}

// HeatPalette is the 8-step color ramp shared by the LST, UHI and UTFVI maps.
var HeatPalette = []Color{
	{0x31, 0x36, 0x95},
	{0x74, 0xad, 0xd1},
	{0xfe, 0xd9, 0x76},
	{0xfe, 0xb2, 0x4c},
	{0xfd, 0x8d, 0x3c},
	{0xfc, 0x4e, 0x2a},
	{0xe3, 0x1a, 0x1c},
	{0xb1, 0x00, 0x26},
}

// Visualization ranges for each output layer.
var (
	LSTVisMin   = 20.0
	LSTVisMax   = 48.0
	UHIVisMin   = -4.0
	UHIVisMax   = 4.0
	UTFVIVisMin = -1.0
	UTFVIVisMax = 1.0
)
