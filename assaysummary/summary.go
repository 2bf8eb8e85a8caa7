// Package assaysummary tabulates, per measured item, how much of an assay
// table is censored and what the measured values look like.
package assaysummary

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/carbocation/assayplot/assaytable"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary describes one measured item. Limits are empty when the item
// has none on record; the statistics cover measured cells only and are zero
// when there are none.
type ColumnSummary struct {
	Item         string  `csv:"item"`
	Measured     int     `csv:"measured"`
	BelowLimit   int     `csv:"below_limit"`
	AboveLimit   int     `csv:"above_limit"`
	LowerLimit   string  `csv:"lower_limit"`
	UpperLimit   string  `csv:"upper_limit"`
	Min          float64 `csv:"min"`
	Max          float64 `csv:"max"`
	Mean         float64 `csv:"mean"`
	Median       float64 `csv:"median"`
	SD           float64 `csv:"sd"`
	Expressed    bool    `csv:"expressed"`
	Normalizable bool    `csv:"normalizable"`
}

// Summarize describes every column of t in presentation order. normalized is
// the result of normalizing t, or nil if t was not normalized; an item is
// normalizable when it survives normalization.
func Summarize(t, normalized *assaytable.Table) []ColumnSummary {
	expressed := make(map[string]struct{})
	for _, col := range assaytable.ExpressedColumns(t) {
		expressed[col] = struct{}{}
	}

	out := make([]ColumnSummary, 0, t.NumColumns())
	for _, col := range t.Columns() {
		cells := t.Column(col)

		s := ColumnSummary{Item: col}
		for _, c := range cells {
			switch c.Kind {
			case assaytable.Measured:
				s.Measured++
			case assaytable.BelowLimit:
				s.BelowLimit++
			case assaytable.AboveLimit:
				s.AboveLimit++
			}
		}

		if v, exists := t.LowerLimit(col); exists {
			s.LowerLimit = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if v, exists := t.UpperLimit(col); exists {
			s.UpperLimit = strconv.FormatFloat(v, 'g', -1, 64)
		}

		if vals := assaytable.MeasuredValues(cells); len(vals) > 0 {
			s.Min = floats.Min(vals)
			s.Max = floats.Max(vals)
			s.Mean = stat.Mean(vals, nil)
			if median, err := stats.Median(vals); err == nil {
				s.Median = median
			}
			if len(vals) > 1 {
				s.SD = stat.StdDev(vals, nil)
			}
			if math.IsNaN(s.SD) {
				s.SD = 0
			}
		}

		_, s.Expressed = expressed[col]
		s.Normalizable = normalized != nil && normalized.HasColumn(col)

		out = append(out, s)
	}

	return out
}

// WriteCSV writes the summaries as CSV with a header row.
func WriteCSV(w io.Writer, rows []ColumnSummary) error {
	if err := gocsv.Marshal(&rows, w); err != nil {
		return pfx.Err(err)
	}
	return nil
}

// Print renders the summaries as a terminal table.
func Print(w io.Writer, rows []ColumnSummary) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Item", "Measured", "<LOD", ">LOD", "Lower limit", "Upper limit", "Min", "Median", "Max", "Expressed", "Normalizable"})

	for _, s := range rows {
		tw.AppendRow(table.Row{
			s.Item,
			s.Measured,
			s.BelowLimit,
			s.AboveLimit,
			s.LowerLimit,
			s.UpperLimit,
			formatStat(s, s.Min),
			formatStat(s, s.Median),
			formatStat(s, s.Max),
			yesNo(s.Expressed),
			yesNo(s.Normalizable),
		})
	}

	configs := make([]table.ColumnConfig, 0, 9)
	for i := 2; i <= 9; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

func formatStat(s ColumnSummary, v float64) string {
	if s.Measured == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
