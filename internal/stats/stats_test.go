package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulatorMeanAndStdDev(t *testing.T) {
	acc := NewAccumulator()
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		acc.Add(v)
	}

	assert.Equal(t, 8, acc.Count())
	assert.InDelta(t, 5.0, acc.Mean(), 1e-9)
	assert.InDelta(t, 2.0, acc.StdDev(), 1e-9)
	assert.Equal(t, 2.0, acc.Min())
	assert.Equal(t, 9.0, acc.Max())
}

func TestAccumulatorIgnoresNaN(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(10)
	acc.Add(math.NaN())
	acc.Add(20)

	assert.Equal(t, 2, acc.Count())
	assert.InDelta(t, 15.0, acc.Mean(), 1e-9)
}

func TestAccumulatorEmpty(t *testing.T) {
	acc := NewAccumulator()

	require.Equal(t, 0, acc.Count())
	assert.True(t, math.IsNaN(acc.Mean()))
	assert.True(t, math.IsNaN(acc.StdDev()))
	assert.True(t, math.IsNaN(acc.Min()))
	assert.True(t, math.IsNaN(acc.Max()))
}

func TestAccumulatorConstantField(t *testing.T) {
	acc := NewAccumulator()
	for i := 0; i < 100; i++ {
		acc.Add(31.5)
	}

	assert.InDelta(t, 31.5, acc.Mean(), 1e-9)
	assert.InDelta(t, 0.0, acc.StdDev(), 1e-12)
}

func TestSummary(t *testing.T) {
	acc := NewAccumulator()
	acc.Add(1)
	acc.Add(3)

	s := acc.Summary()
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 2.0, s.Mean, 1e-9)
	assert.InDelta(t, 1.0, s.StdDev, 1e-9)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
}
