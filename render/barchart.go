package render

import (
	"github.com/carbocation/assayplot/assaytable"
	"github.com/carbocation/assayplot/chartconfig"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	groupFill   = 0.8
	barLineStep = 11
)

func drawBarChart(r chart.Renderer, t *assaytable.Table, p chartconfig.Params, width, height int) {
	fillBox(r, chart.Box{Top: 0, Left: 0, Right: width, Bottom: height}, colorBackground)

	g := newGrouping(t, p.Transpose)
	scale := newScale(axisValues(t), p.Log)

	ticks := scale.ticks()
	tickLabels := make([]string, 0, len(ticks))
	for _, v := range ticks {
		tickLabels = append(tickLabels, formatValue(v))
	}

	legendWidth := max(maxTextWidth(r, g.members, fontLegend)+16, textWidth(r, p.LegendTitle, fontLabel)) + 40
	legendWidth = min(legendWidth, width/3)

	left := leftMargin(r, p, tickLabels)
	right := width - legendWidth
	slot := (right - left) / len(g.categories)
	labelHeight, rotate := categoryLabelHeight(maxTextWidth(r, g.categories, fontTick), slot, height/3)

	plot := chart.Box{
		Top:    topMargin(p),
		Left:   left,
		Right:  right,
		Bottom: height - bottomMargin(p, labelHeight),
	}
	plotHeight := float64(plot.Height())
	yOf := func(frac float64) int { return plot.Bottom - int(frac*plotHeight) }

	for i, v := range ticks {
		y := yOf(scale.fraction(v))
		strokeLine(r, plot.Left, y, plot.Right, y, colorGrid, 1)
		drawText(r, tickLabels[i], plot.Left-6, y+4, fontTick, colorText, anchorRight)
	}

	// Bars grow from zero, which sits above the bottom when values go negative.
	base := yOf(scale.fraction(0))

	groupWidth := float64(plot.Width()) / float64(len(g.categories))
	barWidth := groupWidth * groupFill / float64(len(g.members))
	centers := make([]int, len(g.categories))

	for ci := range g.categories {
		x0 := float64(plot.Left) + float64(ci)*groupWidth + groupWidth*(1-groupFill)/2
		centers[ci] = int(float64(plot.Left) + (float64(ci)+0.5)*groupWidth)

		for mi := range g.members {
			c, col := g.cell(ci, mi)
			color := seriesColor(mi, len(g.members), p.Greyscale)

			barLeft := int(x0 + float64(mi)*barWidth)
			barRight := max(int(x0+float64(mi+1)*barWidth)-1, barLeft+1)

			y := base
			switch c.Kind {
			case assaytable.Measured:
				y = yOf(scale.fraction(c.Value))
			case assaytable.AboveLimit:
				y = plot.Top
			}

			if y != base {
				fillBox(r, chart.Box{Top: min(y, base), Left: barLeft, Right: barRight, Bottom: max(y, base)}, color)
			}

			labels := censorLabels(t, c, col, p)
			cx := (barLeft + barRight) / 2
			for li, label := range labels {
				if c.Kind == assaytable.AboveLimit {
					drawText(r, label, cx, plot.Top+12+li*barLineStep, fontBar, contrastingText(color), anchorCenter)
					continue
				}
				drawText(r, label, cx, base-4-(len(labels)-1-li)*barLineStep, fontBar, colorText, anchorCenter)
			}
		}
	}

	strokeLine(r, plot.Left, plot.Top, plot.Left, plot.Bottom, colorAxis, 1)
	strokeLine(r, plot.Left, base, plot.Right, base, colorAxis, 1)

	drawCategoryLabels(r, g.categories, centers, plot.Bottom, rotate)
	drawFrameText(r, p, plot, width, height)
	drawLegend(r, p, g, plot.Right+20, plot.Top, height)
}

func drawLegend(r chart.Renderer, p chartconfig.Params, g grouping, x, y, height int) {
	if p.LegendTitle != "" {
		drawText(r, p.LegendTitle, x, y+12, fontLabel, colorText, anchorLeft)
		y += 22
	}

	for mi, name := range g.members {
		if y+12 > height {
			break
		}
		fillBox(r, chart.Box{Top: y, Left: x, Right: x + 10, Bottom: y + 10}, seriesColor(mi, len(g.members), p.Greyscale))
		drawText(r, name, x+16, y+9, fontLegend, colorText, anchorLeft)
		y += 16
	}
}
