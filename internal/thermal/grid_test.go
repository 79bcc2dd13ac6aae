package thermal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridStartsMasked(t *testing.T) {
	g := NewGrid(3, 2)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	for _, row := range g.Values {
		for _, v := range row {
			assert.True(t, math.IsNaN(v))
		}
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	g := gridOf(
		[]float64{1, 2, 3},
		[]float64{4, 5, 6},
	)

	flat := g.Flatten()
	require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, flat)

	back, err := GridFromFlat(flat, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, g.Values, back.Values)
}

func TestGridFromFlatSizeMismatch(t *testing.T) {
	_, err := GridFromFlat([]float64{1, 2, 3}, 2, 2)
	assert.Error(t, err)
}
