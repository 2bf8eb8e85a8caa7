package render

import (
	"math"

	"github.com/carbocation/assayplot/assaytable"
	"github.com/carbocation/assayplot/chartconfig"
	"github.com/wcharczuk/go-chart/v2"
)

// grouping arranges a table along two axes. Categories run along the x axis
// and members within each category: by default one category per measured
// item and one member per sample. Transposing swaps the two.
type grouping struct {
	t          *assaytable.Table
	transpose  bool
	categories []string
	members    []string
}

func newGrouping(t *assaytable.Table, transpose bool) grouping {
	g := grouping{t: t, transpose: transpose, categories: t.Columns(), members: t.Rows()}
	if transpose {
		g.categories, g.members = g.members, g.categories
	}
	return g
}

// cell returns the cell of category ci and member mi, and the measured item it
// belongs to.
func (g grouping) cell(ci, mi int) (assaytable.Cell, string) {
	row, col := g.members[mi], g.categories[ci]
	if g.transpose {
		row, col = col, row
	}

	c, _ := g.t.Cell(row, col)
	return c, col
}

// censorLabels returns the annotations of a censored cell, top line first.
// Detection limits are only printed when the item has one on record.
func censorLabels(t *assaytable.Table, c assaytable.Cell, col string, p chartconfig.Params) []string {
	if p.HideLabels {
		return nil
	}

	var out []string
	switch c.Kind {
	case assaytable.BelowLimit:
		if p.PrintOOB {
			out = append(out, "N.D.")
		}
		if limit, exists := t.LowerLimit(col); exists && p.PrintMinVal {
			out = append(out, "<"+formatValue(limit))
		}
	case assaytable.AboveLimit:
		if p.PrintOOB {
			out = append(out, "SAT.")
		}
		if limit, exists := t.UpperLimit(col); exists && p.PrintMaxVal {
			out = append(out, ">"+formatValue(limit))
		}
	}

	return out
}

// axisValues collects everything a value axis must be able to show: the
// measured values and the recorded limits.
func axisValues(t *assaytable.Table) []float64 {
	var out []float64
	for _, col := range t.Columns() {
		out = append(out, assaytable.MeasuredValues(t.Column(col))...)
		if v, exists := t.LowerLimit(col); exists {
			out = append(out, v)
		}
		if v, exists := t.UpperLimit(col); exists {
			out = append(out, v)
		}
	}
	return out
}

func measuredValues(t *assaytable.Table) []float64 {
	var out []float64
	for _, col := range t.Columns() {
		out = append(out, assaytable.MeasuredValues(t.Column(col))...)
	}
	return out
}

// categoryLabelHeight is the room needed under the plot for labels of width
// labelWidth spread over slots of width slot.
func categoryLabelHeight(labelWidth, slot, limit int) (height int, rotate bool) {
	if labelWidth <= slot-4 {
		return 20, false
	}
	return min(int(float64(labelWidth)*math.Sqrt2/2)+24, limit), true
}

// drawCategoryLabels writes one label per slot center, below top. Rotated
// labels run up to the right and end under their slot.
func drawCategoryLabels(r chart.Renderer, labels []string, centers []int, top int, rotate bool) {
	for i, label := range labels {
		if !rotate {
			drawText(r, label, centers[i], top+14, fontTick, colorText, anchorCenter)
			continue
		}

		w := float64(textWidth(r, label, fontTick))
		x := centers[i] - int(w*math.Sqrt2/2)
		y := top + 10 + int(w*math.Sqrt2/2)
		drawRotatedText(r, label, x, y, fontTick, colorText, -math.Pi/4)
	}
}

// drawFrameText writes the title and the axis labels around plot.
func drawFrameText(r chart.Renderer, p chartconfig.Params, plot chart.Box, width, height int) {
	drawText(r, p.Title, width/2, 28, fontTitle, colorText, anchorCenter)
	drawText(r, p.XLabel, plot.Left+plot.Width()/2, height-10, fontLabel, colorText, anchorCenter)

	if p.YLabel != "" {
		w := textWidth(r, p.YLabel, fontLabel)
		drawRotatedText(r, p.YLabel, 22, plot.Top+plot.Height()/2+w/2, fontLabel, colorText, -math.Pi/2)
	}
}

func topMargin(p chartconfig.Params) int {
	if p.Title != "" {
		return 50
	}
	return 20
}

func leftMargin(r chart.Renderer, p chartconfig.Params, tickLabels []string) int {
	out := 20 + maxTextWidth(r, tickLabels, fontTick) + 8
	if p.YLabel != "" {
		out += 24
	}
	return out
}

func bottomMargin(p chartconfig.Params, labelHeight int) int {
	out := 10 + labelHeight
	if p.XLabel != "" {
		out += 24
	}
	return out
}
