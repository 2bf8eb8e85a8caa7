package render

import (
	"fmt"
	"math"

	"github.com/icza/gox/imagex/colorx"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// colormap interpolates linearly between evenly spaced color stops.
type colormap []drawing.Color

var greyscaleColormap = colormap{
	{R: 245, G: 245, B: 245, A: 255},
	{R: 30, G: 30, B: 30, A: 255},
}

func parseColormap(stops []string) (colormap, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("a colormap needs at least 2 colors, got %d", len(stops))
	}

	out := make(colormap, 0, len(stops))
	for _, s := range stops {
		c, err := colorx.ParseHexColor(s)
		if err != nil {
			return nil, fmt.Errorf("colormap entry %q: %w", s, err)
		}
		out = append(out, drawing.Color{R: c.R, G: c.G, B: c.B, A: 255})
	}

	return out, nil
}

// at returns the color at f in [0, 1].
func (c colormap) at(f float64) drawing.Color {
	if len(c) == 0 {
		return colorAxis
	}
	if len(c) == 1 || math.IsNaN(f) || f <= 0 {
		return c[0]
	}
	if f >= 1 {
		return c[len(c)-1]
	}

	pos := f * float64(len(c)-1)
	i := int(pos)
	frac := pos - float64(i)
	a, b := c[i], c[i+1]

	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*frac))
	}

	return drawing.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// seriesColor picks the color of the i-th of n bar series.
func seriesColor(i, n int, greyscale bool) drawing.Color {
	if !greyscale {
		return chart.GetDefaultColor(i)
	}

	if n <= 1 {
		return greyscaleColormap.at(0.6)
	}
	// Keep the lightest shade visible against the background.
	return greyscaleColormap.at(0.25 + 0.75*float64(i)/float64(n-1))
}

// contrastingText returns black or white, whichever reads better on bg.
func contrastingText(bg drawing.Color) drawing.Color {
	luma := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if luma > 140 {
		return colorText
	}
	return colorBackground
}
