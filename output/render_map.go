package output

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/heatscape/heatscape-cli/internal/thermal"
	"github.com/paulmach/orb"
)

// RenderMap paints a grid as a PNG using the heat palette and draws the
// AOI outline on top. The geoTransform maps pixel space to geographic
// coordinates; pass a nil outline to skip it.
func RenderMap(grid thermal.Grid, min, max float64, outline orb.Geometry, geoTransform [6]float64, outputPath string) error {
	width, height := grid.Width(), grid.Height()
	if width == 0 || height == 0 {
		return fmt.Errorf("cannot render an empty grid")
	}

	dc := gg.NewContext(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := MapValueToColor(grid.Values[y][x], min, max)
			if c.A == 0 {
				continue
			}
			dc.SetRGBA255(int(c.R), int(c.G), int(c.B), 255)
			dc.SetPixel(x, y)
		}
	}

	if outline != nil {
		drawOutline(dc, outline, geoTransform)
	}

	if err := dc.SavePNG(outputPath); err != nil {
		return fmt.Errorf("failed to save PNG map: %v", err)
	}
	return nil
}

func drawOutline(dc *gg.Context, geom orb.Geometry, geoTransform [6]float64) {
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(1.5)

	switch g := geom.(type) {
	case orb.Polygon:
		for _, ring := range g {
			drawRing(dc, ring, geoTransform)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			for _, ring := range poly {
				drawRing(dc, ring, geoTransform)
			}
		}
	}
}

func drawRing(dc *gg.Context, ring orb.Ring, geoTransform [6]float64) {
	if len(ring) == 0 || geoTransform[1] == 0 || geoTransform[5] == 0 {
		return
	}
	dc.NewSubPath()
	for _, p := range ring {
		x := (p[0] - geoTransform[0]) / geoTransform[1]
		y := (p[1] - geoTransform[3]) / geoTransform[5]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		dc.LineTo(x, y)
	}
	dc.ClosePath()
	dc.Stroke()
}
