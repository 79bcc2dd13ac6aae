package output

import (
	"image/color"
	"math"

	"github.com/heatscape/heatscape-cli/internal/properties"
)

// MapValueToColor maps a value onto the discrete heat palette between min
// and max. Values outside the range clamp to the palette ends; NaN pixels
// are fully transparent.
func MapValueToColor(value, min, max float64) color.RGBA {
	if math.IsNaN(value) {
		return color.RGBA{}
	}

	palette := properties.HeatPalette
	if max <= min {
		c := palette[0]
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}

	t := (value - min) / (max - min)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	idx := int(t * float64(len(palette)))
	if idx >= len(palette) {
		idx = len(palette) - 1
	}

	c := palette[idx]
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
