package render

import (
	"math"

	"github.com/carbocation/assayplot/assaytable"
	"github.com/carbocation/assayplot/chartconfig"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	colorBarWidth = 18
	colorBarSteps = 64
)

func drawHeatmap(r chart.Renderer, t *assaytable.Table, p chartconfig.Params, cmap colormap, width, height int) {
	fillBox(r, chart.Box{Top: 0, Left: 0, Right: width, Bottom: height}, colorBackground)

	g := newGrouping(t, p.Transpose)
	scale := spanScale(measuredValues(t), p.Log)

	barLabels := []string{formatValue(scale.min), formatValue(scale.max)}
	legendWidth := colorBarWidth + 8 + maxTextWidth(r, barLabels, fontTick) + 20
	if p.LegendTitle != "" {
		legendWidth += 24
	}

	left := leftMargin(r, p, g.members)
	right := width - legendWidth - 10
	slot := (right - left) / len(g.categories)
	labelHeight, rotate := categoryLabelHeight(maxTextWidth(r, g.categories, fontTick), slot, height/3)

	plot := chart.Box{
		Top:    topMargin(p),
		Left:   left,
		Right:  right,
		Bottom: height - bottomMargin(p, labelHeight),
	}

	cellWidth := float64(plot.Width()) / float64(len(g.categories))
	cellHeight := float64(plot.Height()) / float64(len(g.members))

	centers := make([]int, len(g.categories))
	for ci := range g.categories {
		centers[ci] = plot.Left + int((float64(ci)+0.5)*cellWidth)
	}

	for mi, name := range g.members {
		top := plot.Top + int(float64(mi)*cellHeight)
		bottom := plot.Top + int(float64(mi+1)*cellHeight)
		drawText(r, name, plot.Left-6, (top+bottom)/2+4, fontTick, colorText, anchorRight)

		for ci := range g.categories {
			c, col := g.cell(ci, mi)
			patch := chart.Box{
				Top:    top,
				Left:   plot.Left + int(float64(ci)*cellWidth),
				Right:  plot.Left + int(float64(ci+1)*cellWidth),
				Bottom: bottom,
			}

			color := patchColor(cmap, scale, c)
			fillBox(r, patch, color)

			drawPatchLabels(r, patchLabels(t, c, col, p), patch, contrastingText(color))
		}
	}

	drawCategoryLabels(r, g.categories, centers, plot.Bottom, rotate)
	drawFrameText(r, p, plot, width, height)
	drawColorBar(r, p, cmap, scale, plot.Right+20, plot)
}

// patchColor places measured cells on the colormap. Censored cells take its
// ends.
func patchColor(cmap colormap, scale valueScale, c assaytable.Cell) drawing.Color {
	switch c.Kind {
	case assaytable.BelowLimit:
		return cmap.at(0)
	case assaytable.AboveLimit:
		return cmap.at(1)
	}
	return cmap.at(scale.fraction(c.Value))
}

func patchLabels(t *assaytable.Table, c assaytable.Cell, col string, p chartconfig.Params) []string {
	if p.HideLabels {
		return nil
	}
	if c.Censored() {
		return censorLabels(t, c, col, p)
	}
	return []string{formatValue(c.Value)}
}

// drawPatchLabels centers lines of text in patch, skipping any that would not
// fit.
func drawPatchLabels(r chart.Renderer, lines []string, patch chart.Box, color drawing.Color) {
	if len(lines) == 0 {
		return
	}

	lineHeight := int(math.Ceil(fontBar * 1.4))
	if len(lines)*lineHeight > patch.Height()-2 {
		lines = lines[:1]
		if lineHeight > patch.Height()-2 {
			return
		}
	}

	cx := (patch.Left + patch.Right) / 2
	y := (patch.Top+patch.Bottom)/2 - (len(lines)*lineHeight)/2 + lineHeight - 2
	for _, line := range lines {
		if textWidth(r, line, fontBar) > patch.Width()-2 {
			continue
		}
		drawText(r, line, cx, y, fontBar, color, anchorCenter)
		y += lineHeight
	}
}

func drawColorBar(r chart.Renderer, p chartconfig.Params, cmap colormap, scale valueScale, x int, plot chart.Box) {
	step := float64(plot.Height()) / colorBarSteps
	for i := 0; i < colorBarSteps; i++ {
		// The bottom of the bar is the low end of the scale.
		frac := (float64(i) + 0.5) / colorBarSteps
		box := chart.Box{
			Top:    plot.Bottom - int(float64(i+1)*step),
			Left:   x,
			Right:  x + colorBarWidth,
			Bottom: plot.Bottom - int(float64(i)*step),
		}
		fillBox(r, box, cmap.at(frac))
	}

	labelX := x + colorBarWidth + 6
	if scale.log {
		for _, v := range scale.ticks() {
			y := plot.Bottom - int(scale.fraction(v)*float64(plot.Height()))
			drawText(r, formatValue(v), labelX, y+4, fontTick, colorText, anchorLeft)
		}
	} else {
		drawText(r, formatValue(scale.max), labelX, plot.Top+8, fontTick, colorText, anchorLeft)
		drawText(r, formatValue(scale.min), labelX, plot.Bottom, fontTick, colorText, anchorLeft)
	}

	if p.LegendTitle != "" {
		ticksWidth := maxTextWidth(r, []string{formatValue(scale.min), formatValue(scale.max)}, fontTick)
		w := textWidth(r, p.LegendTitle, fontLabel)
		drawRotatedText(r, p.LegendTitle, labelX+ticksWidth+20, plot.Top+plot.Height()/2+w/2, fontLabel, colorText, -math.Pi/2)
	}
}
