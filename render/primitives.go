package render

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorBackground = drawing.Color{R: 255, G: 255, B: 255, A: 255}
	colorText       = drawing.Color{R: 34, G: 34, B: 34, A: 255}
	colorAxis       = drawing.Color{R: 90, G: 90, B: 90, A: 255}
	colorGrid       = drawing.Color{R: 225, G: 225, B: 225, A: 255}
)

const (
	fontTitle  = 16.0
	fontLabel  = 12.0
	fontTick   = 10.0
	fontLegend = 10.0
	fontBar    = 8.0
)

type anchor int

const (
	anchorLeft anchor = iota
	anchorCenter
	anchorRight
)

func fillBox(r chart.Renderer, b chart.Box, c drawing.Color) {
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.SetStrokeWidth(0)
	r.MoveTo(b.Left, b.Top)
	r.LineTo(b.Right, b.Top)
	r.LineTo(b.Right, b.Bottom)
	r.LineTo(b.Left, b.Bottom)
	r.LineTo(b.Left, b.Top)
	r.Close()
	r.Fill()
}

func strokeLine(r chart.Renderer, x0, y0, x1, y1 int, c drawing.Color, width float64) {
	r.SetStrokeColor(c)
	r.SetStrokeWidth(width)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
}

// drawText writes s with its baseline at y, aligned on x by a.
func drawText(r chart.Renderer, s string, x, y int, size float64, c drawing.Color, a anchor) {
	if s == "" {
		return
	}

	r.SetFontSize(size)
	r.SetFontColor(c)

	switch a {
	case anchorCenter:
		x -= r.MeasureText(s).Width() / 2
	case anchorRight:
		x -= r.MeasureText(s).Width()
	}

	r.Text(s, x, y)
}

// drawRotatedText writes s rotated by radians around (x, y).
func drawRotatedText(r chart.Renderer, s string, x, y int, size float64, c drawing.Color, radians float64) {
	if s == "" {
		return
	}

	r.SetFontSize(size)
	r.SetFontColor(c)
	r.SetTextRotation(radians)
	r.Text(s, x, y)
	r.ClearTextRotation()
}

func textWidth(r chart.Renderer, s string, size float64) int {
	if s == "" {
		return 0
	}
	r.SetFontSize(size)
	return r.MeasureText(s).Width()
}

func maxTextWidth(r chart.Renderer, texts []string, size float64) int {
	out := 0
	for _, s := range texts {
		out = max(out, textWidth(r, s, size))
	}
	return out
}
