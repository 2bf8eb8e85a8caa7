package runner

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/carbocation/assayplot/assaysummary"
	"github.com/carbocation/assayplot/assaytable"
	"github.com/carbocation/assayplot/chartconfig"
	"github.com/carbocation/assayplot/render"
	"github.com/carbocation/pfx"
	"github.com/disintegration/imaging"
)

// fileJob renders the outputs of one input table.
type fileJob struct {
	runner *Runner
	params chartconfig.Params
	stem   string
	outDir string
	date   time.Time

	outputs []string
}

// variant is one table to draw, named by a suffix on the file stem.
type variant struct {
	table  *assaytable.Table
	suffix string
}

func (j *fileJob) run(source *assaytable.Table) error {
	table := source.Ordered(j.params.Alphabetize)

	if unexpressed := assaytable.UnexpressedColumns(table); len(unexpressed) > 0 {
		log.Printf("The following items are not expressed in any sample:\n\t%s\n", strings.Join(unexpressed, " "))
	}

	variants := []variant{{table: table}}

	var normalized *assaytable.Table
	if j.runner.opts.Normalized {
		normalized = j.normalize(table)
		if normalized != nil {
			variants = append(variants, variant{table: normalized, suffix: "-normalized"})
		}
	}

	for _, v := range variants {
		for _, kind := range j.runner.opts.Kinds {
			suffix := v.suffix
			if kind == render.Heatmap && len(j.runner.opts.Kinds) > 1 {
				suffix += "-heatmap"
			}
			if err := j.plot(v.table, kind, j.stem+suffix); err != nil {
				return err
			}
		}
	}

	if j.params.SaveParams && len(j.params.SaveFileTypes) > 0 {
		if err := j.writeFile(j.name(j.stem+"-params"), "txt", func(f *os.File) error {
			_, err := f.WriteString(j.params.Dump())
			return err
		}); err != nil {
			return err
		}
	}

	if j.params.SaveSummary {
		rows := assaysummary.Summarize(table, normalized)
		if err := j.writeFile(j.name(j.stem+"-summary"), "csv", func(f *os.File) error {
			return assaysummary.WriteCSV(f, rows)
		}); err != nil {
			return err
		}
	}

	return nil
}

// normalize returns the normalized variant of table, or nil when there is
// nothing to draw.
func (j *fileJob) normalize(table *assaytable.Table) *assaytable.Table {
	row := j.params.NormalizationRow
	if row == "" {
		log.Printf("%s: no normalization_row is set; skipping the normalized plot\n", j.stem)
		return nil
	}

	if !table.HasRow(row) {
		log.Printf("%s: normalization row %q is not among the samples; skipping the normalized plot\n", j.stem, row)
		return nil
	}
	normalized := assaytable.Normalize(table, row, j.params.DropNormalizationRow)

	if excluded := assaytable.ExpressedButNotNormalizable(table, normalized); len(excluded) > 0 {
		log.Printf("The following items are expressed but not in %s, so they cannot be normalized:\n\t%s\n", row, strings.Join(excluded, " "))
	}

	if normalized.IsEmpty() {
		log.Printf("%s: nothing is left after normalizing by %q; skipping the normalized plot\n", j.stem, row)
		return nil
	}

	return normalized
}

// plot draws table, split into chunks if requested, in every save format.
func (j *fileJob) plot(table *assaytable.Table, kind render.Kind, stem string) error {
	if table.IsEmpty() {
		log.Printf("%s: the table is empty; nothing to plot\n", stem)
		return nil
	}

	chunks := []*assaytable.Table{table}
	if j.runner.opts.Split {
		var err error
		chunks, err = assaytable.Split(table, j.params.MaxColumnsPerPlot)
		if err != nil {
			return err
		}
	}

	var images []image.Image
	var labels []string
	wantSheet := j.params.ContactSheet && len(chunks) > 1

	for i, chunk := range chunks {
		p := j.params
		if len(chunks) > 1 && p.IncludeChartNumber {
			p.Title = strings.TrimSpace(fmt.Sprintf("%s %d of %d", p.Title, i+1, len(chunks)))
		}

		fig, err := render.Draw(chunk, p, kind)
		if err != nil {
			return err
		}

		base := render.OutputBase(stem, i+1, len(chunks), j.date, j.params.Datestamp)
		for _, format := range j.params.SaveFileTypes {
			if err := j.writeFile(base, format, func(f *os.File) error {
				return fig.Encode(f, format)
			}); err != nil {
				return err
			}
		}

		if wantSheet {
			img, err := fig.Image()
			if err != nil {
				return err
			}
			images = append(images, img)
			labels = append(labels, fmt.Sprintf("%d of %d", i+1, len(chunks)))
		}
	}

	if !wantSheet {
		return nil
	}

	sheet, err := render.ContactSheet(images, labels, 0)
	if err != nil {
		return err
	}

	path := filepath.Join(j.outDir, render.FileName(j.name(stem+"-contact"), "png"))
	log.Println("Saving contact sheet", path)
	if err := imaging.Save(sheet, path); err != nil {
		return pfx.Err(err)
	}
	j.outputs = append(j.outputs, path)

	return nil
}

// name is the output base of a single file derived from stem.
func (j *fileJob) name(stem string) string {
	return render.OutputBase(stem, 1, 1, j.date, j.params.Datestamp)
}

// writeFile creates outDir/base.ext and fills it with write.
func (j *fileJob) writeFile(base, ext string, write func(*os.File) error) error {
	path := filepath.Join(j.outDir, render.FileName(base, ext))

	log.Println("Saving", path)
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := write(f); err != nil {
		f.Close()
		return pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}

	j.outputs = append(j.outputs, path)
	return nil
}
