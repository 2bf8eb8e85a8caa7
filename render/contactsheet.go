package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/carbocation/pfx"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

const (
	// Panels wider than this are shrunk to keep the sheet a manageable size.
	contactPanelWidth  = 600
	contactLabelHeight = 18
)

// ContactSheet tiles images into a grid with the given number of columns,
// each above its label. A columns value below 1 picks a roughly square grid.
func ContactSheet(images []image.Image, labels []string, columns int) (image.Image, error) {
	if len(images) == 0 {
		return nil, pfx.Err(fmt.Errorf("no images for the contact sheet"))
	}
	if columns < 1 {
		columns = int(math.Ceil(math.Sqrt(float64(len(images)))))
	}
	columns = min(columns, len(images))
	rows := (len(images) + columns - 1) / columns

	panes := make([]image.Image, 0, len(images))
	maxWidth, maxHeight := 0, 0
	for i, img := range images {
		if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
			return nil, pfx.Err(fmt.Errorf("image %d has a height or width of 0", i))
		}
		if img.Bounds().Dx() > contactPanelWidth {
			img = imaging.Resize(img, contactPanelWidth, 0, imaging.Lanczos)
		}
		panes = append(panes, img)

		maxWidth = max(maxWidth, img.Bounds().Dx())
		maxHeight = max(maxHeight, img.Bounds().Dy())
	}

	cellHeight := maxHeight + contactLabelHeight
	sheet := imaging.New(columns*maxWidth, rows*cellHeight, color.White)

	for i, pane := range panes {
		startX := (i % columns) * maxWidth
		startY := (i / columns) * cellHeight
		sheet = imaging.Paste(sheet, pane, image.Pt(startX, startY))
	}

	ctx := gg.NewContextForImage(sheet)
	ctx.SetRGB(0, 0, 0)
	for i := range panes {
		if i >= len(labels) {
			break
		}
		x := float64((i%columns)*maxWidth + maxWidth/2)
		y := float64((i/columns)*cellHeight + maxHeight + contactLabelHeight/2)
		ctx.DrawStringAnchored(labels[i], x, y, 0.5, 0.5)
	}

	return ctx.Image(), nil
}
