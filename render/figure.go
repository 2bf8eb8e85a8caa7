// Package render draws assay tables as bar charts or heatmaps and writes
// them out as images.
package render

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/carbocation/assayplot/assaytable"
	"github.com/carbocation/assayplot/chartconfig"
	"github.com/carbocation/pfx"
	"github.com/disintegration/imaging"
	"github.com/wcharczuk/go-chart/v2"
)

// Figure is a drawn chart. It is painted again for every encoding, so one
// Figure can be written in several formats.
type Figure struct {
	Width  int
	Height int

	paint func(r chart.Renderer)
}

// Draw lays out t as a chart of the given kind.
func Draw(t *assaytable.Table, p chartconfig.Params, kind Kind) (*Figure, error) {
	if t.IsEmpty() {
		return nil, pfx.Err(fmt.Errorf("nothing to draw: the table has %d rows and %d columns", t.NumRows(), t.NumColumns()))
	}

	fig := &Figure{Width: p.Width, Height: p.Height}

	switch kind {
	case BarChart:
		fig.paint = func(r chart.Renderer) { drawBarChart(r, t, p, fig.Width, fig.Height) }
	case Heatmap:
		cmap, err := parseColormap(p.Colormap)
		if err != nil {
			return nil, pfx.Err(err)
		}
		if p.Greyscale {
			cmap = greyscaleColormap
		}
		fig.paint = func(r chart.Renderer) { drawHeatmap(r, t, p, cmap, fig.Width, fig.Height) }
	default:
		return nil, pfx.Err(fmt.Errorf("unsupported chart type %v", kind))
	}

	return fig, nil
}

// Encode writes the figure in format, one of the savefile_types. SVG and PNG
// come straight from the chart renderer; the other raster formats are
// re-encoded from the PNG.
func (f *Figure) Encode(w io.Writer, format string) error {
	format = strings.ToLower(strings.TrimPrefix(format, "."))

	switch format {
	case "svg":
		return f.render(chart.SVG, w)
	case "png":
		return f.render(chart.PNG, w)
	}

	imgFormat, err := imaging.FormatFromExtension(format)
	if err != nil {
		return pfx.Err(fmt.Errorf("unsupported image format %q", format))
	}

	img, err := f.Image()
	if err != nil {
		return err
	}

	return pfx.Err(imaging.Encode(w, img, imgFormat))
}

// Image rasterizes the figure.
func (f *Figure) Image() (image.Image, error) {
	var buf bytes.Buffer
	if err := f.render(chart.PNG, &buf); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(&buf)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return img, nil
}

func (f *Figure) render(provider chart.RendererProvider, w io.Writer) error {
	r, err := provider(f.Width, f.Height)
	if err != nil {
		return pfx.Err(err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return pfx.Err(err)
	}
	r.SetFont(font)

	f.paint(r)

	return pfx.Err(r.Save(w))
}
