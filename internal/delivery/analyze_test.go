package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameGeoTransform(t *testing.T) {
	base := [6]float64{-9.23, 0.0001, 0, 38.75, 0, -0.0001}

	assert.True(t, sameGeoTransform(base, base))

	shiftedOrigin := base
	shiftedOrigin[0] += 0.0002
	assert.False(t, sameGeoTransform(base, shiftedOrigin))

	differentPixelSize := base
	differentPixelSize[1] = 0.0002
	assert.False(t, sameGeoTransform(base, differentPixelSize))

	withinTolerance := base
	withinTolerance[3] += 1e-12
	assert.True(t, sameGeoTransform(base, withinTolerance))
}
