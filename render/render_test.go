package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/carbocation/assayplot/assaytable"
	"github.com/carbocation/assayplot/chartconfig"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func testTable(t *testing.T) *assaytable.Table {
	t.Helper()

	table, err := assaytable.FromRecords([][]string{
		{"Sample", "IL6", "TNF", "IL10"},
		{"Control", "5", "<2", "0"},
		{"Treated", "10", ">300", "<1"},
		{"Vehicle", "-1", "40", "12.5"},
	})
	require.NoError(t, err)

	return table
}

func testParams() chartconfig.Params {
	p := chartconfig.Defaults()
	p.Width = 400
	p.Height = 300
	p.Title = "Plate 1"
	p.XLabel = "Analyte"
	p.YLabel = "pg/mL"
	p.LegendTitle = "Sample"
	return p
}

func TestParseKind(t *testing.T) {
	for input, expected := range map[string]Kind{
		"barChart": BarChart,
		"BARCHART": BarChart,
		"heatmap":  Heatmap,
		" HeatMap": Heatmap,
	} {
		k, err := ParseKind(input)
		require.NoError(t, err)
		assert.Equal(t, expected, k)
	}

	_, err := ParseKind("pie")
	assert.Error(t, err)
	assert.Equal(t, "heatmap", Heatmap.String())
}

func TestOutputBase(t *testing.T) {
	date := time.Date(2019, time.October, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "20191011 plate", OutputBase("plate", 1, 1, date, true))
	assert.Equal(t, "20191011 plate-2 of 3", OutputBase("plate", 2, 3, date, true))
	assert.Equal(t, "plate-1 of 2", OutputBase("plate", 1, 2, date, false))
	assert.Equal(t, "plate", OutputBase("plate", 1, 1, date, false))

	assert.Equal(t, "20191011 plate.png", FileName("20191011 plate", "PNG"))
	assert.Equal(t, "x.svg", FileName("x", ".svg"))
}

func TestNiceStep(t *testing.T) {
	for raw, expected := range map[float64]float64{
		0.9:  1,
		1.4:  2,
		3:    5,
		7:    10,
		22:   50,
		0.03: 0.05,
		0:    1,
	} {
		assert.InDelta(t, expected, niceStep(raw), 1e-12, "raw %v", raw)
	}
}

func TestLinearScale(t *testing.T) {
	s := newScale([]float64{3, 7, 9.5}, false)

	assert.Equal(t, 0.0, s.min)
	assert.Equal(t, 10.0, s.max)
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, s.ticks())
	assert.Equal(t, 0.5, s.fraction(5))
	assert.Equal(t, 1.0, s.fraction(50))
	assert.Equal(t, 0.0, s.fraction(-50))

	negative := newScale([]float64{-4, 6}, false)
	assert.Less(t, negative.min, 0.0)
	assert.Greater(t, negative.fraction(0), 0.0)

	flat := newScale([]float64{0, 0}, false)
	assert.Greater(t, flat.max, flat.min)
}

func TestLogScale(t *testing.T) {
	s := newScale([]float64{0, 3, 250}, true)

	assert.Equal(t, 1.0, s.min)
	assert.Equal(t, 1000.0, s.max)
	assert.Equal(t, []float64{1, 10, 100, 1000}, s.ticks())
	assert.InDelta(t, 1.0/3, s.fraction(10), 1e-9)
	assert.Equal(t, 0.0, s.fraction(0))
	assert.Equal(t, 0.0, s.fraction(-5))

	empty := newScale(nil, true)
	assert.Equal(t, 0.0, empty.fraction(0))
}

func TestColormap(t *testing.T) {
	cmap, err := parseColormap([]string{"#000000", "#ffffff"})
	require.NoError(t, err)

	assert.Equal(t, drawing.Color{R: 0, G: 0, B: 0, A: 255}, cmap.at(0))
	assert.Equal(t, drawing.Color{R: 255, G: 255, B: 255, A: 255}, cmap.at(1.5))
	assert.Equal(t, drawing.Color{R: 128, G: 128, B: 128, A: 255}, cmap.at(0.5))

	_, err = parseColormap([]string{"#000000"})
	assert.Error(t, err)
	_, err = parseColormap([]string{"#000000", "not a color"})
	assert.Error(t, err)

	assert.Equal(t, colorText, contrastingText(colorBackground))
	assert.Equal(t, colorBackground, contrastingText(drawing.Color{A: 255}))
}

func TestCensorLabels(t *testing.T) {
	table := testTable(t)
	p := chartconfig.Defaults()

	assert.Equal(t, []string{"N.D.", "<2"}, censorLabels(table, assaytable.Below(2), "TNF", p))
	assert.Equal(t, []string{"SAT.", ">300"}, censorLabels(table, assaytable.Above(300), "TNF", p))

	// IL6 has no recorded limit, so only the marker is printed.
	assert.Equal(t, []string{"N.D."}, censorLabels(table, assaytable.Below(2), "IL6", p))
	assert.Empty(t, censorLabels(table, assaytable.Measure(5), "IL6", p))

	p.PrintMinVal = false
	p.PrintOOB = false
	assert.Empty(t, censorLabels(table, assaytable.Below(2), "TNF", p))
	assert.Equal(t, []string{">300"}, censorLabels(table, assaytable.Above(300), "TNF", p))

	p = chartconfig.Defaults()
	p.HideLabels = true
	assert.Empty(t, censorLabels(table, assaytable.Above(300), "TNF", p))
}

func TestGrouping(t *testing.T) {
	table := testTable(t)

	g := newGrouping(table, false)
	assert.Equal(t, []string{"IL6", "TNF", "IL10"}, g.categories)
	assert.Equal(t, []string{"Control", "Treated", "Vehicle"}, g.members)
	c, col := g.cell(1, 0)
	assert.Equal(t, assaytable.Below(2), c)
	assert.Equal(t, "TNF", col)

	g = newGrouping(table, true)
	assert.Equal(t, []string{"Control", "Treated", "Vehicle"}, g.categories)
	c, col = g.cell(1, 1)
	assert.Equal(t, assaytable.Above(300), c)
	assert.Equal(t, "TNF", col)
}

func TestDrawAndEncode(t *testing.T) {
	table := testTable(t)

	for _, kind := range []Kind{BarChart, Heatmap} {
		for _, transpose := range []bool{false, true} {
			for _, logScale := range []bool{false, true} {
				p := testParams()
				p.Transpose = transpose
				p.Log = logScale

				fig, err := Draw(table, p, kind)
				require.NoError(t, err)

				var buf bytes.Buffer
				require.NoError(t, fig.Encode(&buf, "png"))
				img, err := imaging.Decode(&buf)
				require.NoError(t, err)
				assert.Equal(t, image.Rect(0, 0, 400, 300), img.Bounds(), "%v transpose=%v log=%v", kind, transpose, logScale)
			}
		}
	}
}

func TestEncodeFormats(t *testing.T) {
	p := testParams()
	p.Greyscale = true

	fig, err := Draw(testTable(t), p, Heatmap)
	require.NoError(t, err)

	var svg bytes.Buffer
	require.NoError(t, fig.Encode(&svg, "svg"))
	assert.Contains(t, svg.String(), "<svg")

	for _, format := range []string{"jpg", ".jpeg", "gif", "tif", "bmp"} {
		var buf bytes.Buffer
		require.NoError(t, fig.Encode(&buf, format), format)

		img, err := imaging.Decode(&buf)
		require.NoError(t, err, format)
		assert.Equal(t, 400, img.Bounds().Dx(), format)
	}

	var buf bytes.Buffer
	assert.Error(t, fig.Encode(&buf, "webp"))
}

func TestDrawEmpty(t *testing.T) {
	_, err := Draw(assaytable.Empty(), testParams(), BarChart)
	assert.Error(t, err)
}

func TestContactSheet(t *testing.T) {
	a := imaging.New(100, 50, color.Black)
	b := imaging.New(80, 40, color.Black)
	c := imaging.New(100, 50, color.Black)

	sheet, err := ContactSheet([]image.Image{a, b, c}, []string{"1 of 3", "2 of 3", "3 of 3"}, 2)
	require.NoError(t, err)
	assert.Equal(t, 200, sheet.Bounds().Dx())
	assert.Equal(t, 2*(50+contactLabelHeight), sheet.Bounds().Dy())

	square, err := ContactSheet([]image.Image{a, b, c, a}, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 200, square.Bounds().Dx())

	wide := imaging.New(1200, 600, color.Black)
	shrunk, err := ContactSheet([]image.Image{wide}, []string{"only"}, 1)
	require.NoError(t, err)
	assert.Equal(t, contactPanelWidth, shrunk.Bounds().Dx())

	_, err = ContactSheet(nil, nil, 1)
	assert.Error(t, err)
}
