package sentinel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allZeroScene(width, height int) *SceneBands {
	grid := func() [][]float64 {
		g := make([][]float64, height)
		for y := range g {
			g[y] = make([]float64, width)
		}
		return g
	}
	return &SceneBands{B04: grid(), B08: grid(), B11: grid(), CLD: grid(), SCL: grid()}
}

func TestSceneUnusable(t *testing.T) {
	// All-zero bands are what the process API returns for a date with no
	// acquisition over the AOI.
	scene := allZeroScene(3, 2)
	assert.True(t, sceneUnusable(scene))

	scene.B04[1][2] = 0.12
	scene.B08[1][2] = 0.34
	scene.B11[1][2] = 0.21
	assert.False(t, sceneUnusable(scene))
}

func TestSceneUnusableCloudCovered(t *testing.T) {
	scene := allZeroScene(2, 2)
	for y := range scene.B04 {
		for x := range scene.B04[y] {
			scene.B04[y][x] = 0.1
			scene.B08[y][x] = 0.2
			scene.B11[y][x] = 0.15
			scene.CLD[y][x] = 80
		}
	}
	assert.True(t, sceneUnusable(scene))
}

func TestImagesNotFoundRoundTrip(t *testing.T) {
	root := t.TempDir()
	t.Setenv("ROOT_PATH", root)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data", "images"), os.ModePerm))

	saveImagesNotFound(invalidImagesFile(), []string{"lisbon_downtown_2024-01-05.tif"})
	saveImagesNotFound(invalidImagesFile(), []string{
		"lisbon_downtown_2024-01-05.tif",
		"lisbon_downtown_2024-02-14.tif",
	})

	notFound, err := loadImagesNotFound()
	require.NoError(t, err)
	assert.Len(t, notFound, 2)
	assert.Contains(t, notFound, "lisbon_downtown_2024-01-05.tif")
	assert.Contains(t, notFound, "lisbon_downtown_2024-02-14.tif")
}
