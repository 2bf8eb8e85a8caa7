package assaytable

import "gonum.org/v1/gonum/floats"

// ExpressedColumns returns, in presentation order, the columns where at least
// one sample has a positive measured value.
func ExpressedColumns(t *Table) []string {
	out := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		if expressed(t.cells[col]) {
			out = append(out, col)
		}
	}
	return out
}

// UnexpressedColumns returns the columns that are absent from
// ExpressedColumns: every cell is censored or at most zero.
func UnexpressedColumns(t *Table) []string {
	out := make([]string, 0)
	for _, col := range t.columns {
		if !expressed(t.cells[col]) {
			out = append(out, col)
		}
	}
	return out
}

// ExpressedButNotNormalizable returns the expressed columns of t that are
// missing from normalized, the result of Normalize on t.
func ExpressedButNotNormalizable(t, normalized *Table) []string {
	out := make([]string, 0)
	for _, col := range ExpressedColumns(t) {
		if !normalized.HasColumn(col) {
			out = append(out, col)
		}
	}
	return out
}

// MeasuredValues returns the measured (uncensored) values of one column.
func MeasuredValues(cells []Cell) []float64 {
	out := make([]float64, 0, len(cells))
	for _, c := range cells {
		if c.Kind == Measured {
			out = append(out, c.Value)
		}
	}
	return out
}

func expressed(cells []Cell) bool {
	vals := MeasuredValues(cells)
	if len(vals) == 0 {
		return false
	}
	return floats.Max(vals) > 0
}
