package ui

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCelsius(t *testing.T) {
	assert.Equal(t, "29.50°C", formatCelsius(29.5))
	assert.Equal(t, "-4.00°C", formatCelsius(-4))
	assert.Equal(t, "n/a", formatCelsius(math.NaN()))
}
