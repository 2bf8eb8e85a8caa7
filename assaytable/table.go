// Package assaytable models assay result tables whose cells may be censored
// at an instrument's lower or upper detection limit.
//
// A Table is immutable: ordering, normalization, splitting and row removal
// all return new tables, so several views can be derived from one source.
package assaytable

import (
	"fmt"
	"sort"

	"github.com/carbocation/pfx"
	"golang.org/x/text/cases"
)

// Table holds one cell per (sample row, measured item column).
type Table struct {
	rows     []string
	rowIndex map[string]int

	// columns is the presentation order. original and alphabetical are the
	// two fixed orderings, restricted to the columns of this table.
	columns      []string
	original     []string
	alphabetical []string

	// cells maps a column to one cell per row.
	cells map[string][]Cell

	// Detection limits recorded per column.
	lower map[string]float64
	upper map[string]float64
}

// Empty returns a table with no rows and no columns.
func Empty() *Table {
	return &Table{
		rowIndex: map[string]int{},
		cells:    map[string][]Cell{},
		lower:    map[string]float64{},
		upper:    map[string]float64{},
	}
}

// New builds a table from row-major cells; cells[i][j] belongs to rows[i] and
// columns[j]. Each column's lower (upper) limit is the largest BelowLimit
// (AboveLimit) value it contains.
func New(rows, columns []string, cells [][]Cell) (*Table, error) {
	if len(cells) != len(rows) {
		return nil, pfx.Err(fmt.Errorf("%d rows of cells for %d row labels", len(cells), len(rows)))
	}

	t := Empty()
	t.rows = append([]string(nil), rows...)
	for i, row := range rows {
		if row == "" {
			return nil, pfx.Err(fmt.Errorf("row %d has an empty label", i+1))
		}
		if _, exists := t.rowIndex[row]; exists {
			return nil, pfx.Err(fmt.Errorf("row label %q appears more than once", row))
		}
		t.rowIndex[row] = i

		if len(cells[i]) != len(columns) {
			return nil, pfx.Err(fmt.Errorf("row %q has %d cells for %d columns", row, len(cells[i]), len(columns)))
		}
	}

	for j, col := range columns {
		if col == "" {
			return nil, pfx.Err(fmt.Errorf("column %d has an empty name", j+1))
		}
		if _, exists := t.cells[col]; exists {
			return nil, pfx.Err(fmt.Errorf("column %q appears more than once", col))
		}

		colCells := make([]Cell, len(rows))
		for i := range rows {
			c := cells[i][j]
			colCells[i] = c

			switch c.Kind {
			case BelowLimit:
				if v, seen := t.lower[col]; !seen || c.Value > v {
					t.lower[col] = c.Value
				}
			case AboveLimit:
				if v, seen := t.upper[col]; !seen || c.Value > v {
					t.upper[col] = c.Value
				}
			}
		}
		t.cells[col] = colCells
	}

	t.columns = append([]string(nil), columns...)
	t.original = append([]string(nil), columns...)
	t.alphabetical = alphabetical(columns)

	return t, nil
}

// alphabetical sorts names ignoring case, using Unicode case folding. Names
// that fold identically keep their original order.
func alphabetical(names []string) []string {
	fold := cases.Fold()
	keys := make(map[string]string, len(names))
	for _, n := range names {
		keys[n] = fold.String(n)
	}

	out := append([]string(nil), names...)
	sort.SliceStable(out, func(i, j int) bool {
		return keys[out[i]] < keys[out[j]]
	})

	return out
}

// derive returns a table over the given rows and columns sharing t's
// orderings and limits. cells must contain every column, with one cell per row
// of rows.
func (t *Table) derive(rows, columns []string, cells map[string][]Cell) *Table {
	out := Empty()
	out.rows = append([]string(nil), rows...)
	for i, row := range out.rows {
		out.rowIndex[row] = i
	}

	keep := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		keep[col] = struct{}{}
		out.cells[col] = cells[col]
		if v, exists := t.lower[col]; exists {
			out.lower[col] = v
		}
		if v, exists := t.upper[col]; exists {
			out.upper[col] = v
		}
	}

	out.columns = append([]string(nil), columns...)
	out.original = restrict(t.original, keep)
	out.alphabetical = restrict(t.alphabetical, keep)

	return out
}

func restrict(order []string, keep map[string]struct{}) []string {
	out := make([]string, 0, len(keep))
	for _, v := range order {
		if _, exists := keep[v]; exists {
			out = append(out, v)
		}
	}
	return out
}

// Rows returns the row labels in order.
func (t *Table) Rows() []string { return append([]string(nil), t.rows...) }

// Columns returns the column names in presentation order.
func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }

// OriginalOrder returns the columns in the order they were read.
func (t *Table) OriginalOrder() []string { return append([]string(nil), t.original...) }

// AlphabeticalOrder returns the columns sorted case-insensitively.
func (t *Table) AlphabeticalOrder() []string { return append([]string(nil), t.alphabetical...) }

func (t *Table) NumRows() int    { return len(t.rows) }
func (t *Table) NumColumns() int { return len(t.columns) }

// IsEmpty reports whether the table has no rows or no columns.
func (t *Table) IsEmpty() bool { return len(t.rows) == 0 || len(t.columns) == 0 }

func (t *Table) HasRow(row string) bool {
	_, exists := t.rowIndex[row]
	return exists
}

func (t *Table) HasColumn(col string) bool {
	_, exists := t.cells[col]
	return exists
}

// Cell returns the cell at row, col.
func (t *Table) Cell(row, col string) (Cell, bool) {
	i, exists := t.rowIndex[row]
	if !exists {
		return Cell{}, false
	}
	cells, exists := t.cells[col]
	if !exists {
		return Cell{}, false
	}
	return cells[i], true
}

// Column returns a copy of one column's cells, in row order.
func (t *Table) Column(col string) []Cell {
	return append([]Cell(nil), t.cells[col]...)
}

// Row returns a copy of one row's cells, in column presentation order.
func (t *Table) Row(row string) []Cell {
	i, exists := t.rowIndex[row]
	if !exists {
		return nil
	}

	out := make([]Cell, 0, len(t.columns))
	for _, col := range t.columns {
		out = append(out, t.cells[col][i])
	}
	return out
}

// LowerLimit returns the lower detection limit recorded for col, if any.
func (t *Table) LowerLimit(col string) (float64, bool) {
	v, exists := t.lower[col]
	return v, exists
}

// UpperLimit returns the upper detection limit recorded for col, if any.
func (t *Table) UpperLimit(col string) (float64, bool) {
	v, exists := t.upper[col]
	return v, exists
}

// LowerLimits returns a copy of the recorded lower limits by column.
func (t *Table) LowerLimits() map[string]float64 { return copyLimits(t.lower) }

// UpperLimits returns a copy of the recorded upper limits by column.
func (t *Table) UpperLimits() map[string]float64 { return copyLimits(t.upper) }

func copyLimits(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Values returns the legacy float matrix, one row per sample in column
// presentation order, with censored cells encoded as SentinelBelow or
// SentinelAbove.
func (t *Table) Values() [][]float64 {
	out := make([][]float64, len(t.rows))
	for i := range t.rows {
		out[i] = make([]float64, len(t.columns))
		for j, col := range t.columns {
			out[i][j] = t.cells[col][i].Sentinel()
		}
	}
	return out
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	cells := make(map[string][]Cell, len(t.cells))
	for col, v := range t.cells {
		cells[col] = append([]Cell(nil), v...)
	}
	return t.derive(t.rows, t.columns, cells)
}

// Ordered presents the columns alphabetically (ignoring case) or in the order
// they were read. Values are unchanged.
func (t *Table) Ordered(alphabetize bool) *Table {
	order := t.original
	if alphabetize {
		order = t.alphabetical
	}
	return t.derive(t.rows, order, t.cells)
}

// Select returns the named columns, in the given order.
func (t *Table) Select(columns []string) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if !t.HasColumn(col) {
			return nil, pfx.Err(fmt.Errorf("no column named %q", col))
		}
		if _, dup := seen[col]; dup {
			return nil, pfx.Err(fmt.Errorf("column %q selected more than once", col))
		}
		seen[col] = struct{}{}
	}
	return t.derive(t.rows, columns, t.cells), nil
}

// DropRow returns t without the named row. Dropping an absent row returns
// an unchanged copy. Recorded limits are kept: they describe the instrument,
// not the remaining samples.
func (t *Table) DropRow(row string) *Table {
	idx, exists := t.rowIndex[row]
	if !exists {
		return t.derive(t.rows, t.columns, t.cells)
	}

	rows := make([]string, 0, len(t.rows)-1)
	rows = append(rows, t.rows[:idx]...)
	rows = append(rows, t.rows[idx+1:]...)

	cells := make(map[string][]Cell, len(t.cells))
	for _, col := range t.columns {
		v := make([]Cell, 0, len(rows))
		v = append(v, t.cells[col][:idx]...)
		v = append(v, t.cells[col][idx+1:]...)
		cells[col] = v
	}

	return t.derive(rows, t.columns, cells)
}
