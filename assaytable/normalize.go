package assaytable

import "math"

// Normalize divides every measured, non-negative value by the reference row's
// value in the same column. Only columns where the reference row holds a
// positive measurement are kept. Censored cells and negative measurements are
// carried through unchanged, since a detection limit is not a quantity that
// can be rescaled.
//
// If referenceRow is not a row of t, the result is empty. If
// dropReferenceRow is set, the reference row is removed from the result.
func Normalize(t *Table, referenceRow string, dropReferenceRow bool) *Table {
	ri, exists := t.rowIndex[referenceRow]
	if !exists {
		return Empty()
	}

	kept := make([]string, 0, len(t.columns))
	cells := make(map[string][]Cell, len(t.columns))
	for _, col := range t.columns {
		ref := t.cells[col][ri]
		if !ref.Positive() {
			continue
		}

		out := make([]Cell, len(t.rows))
		for i, c := range t.cells[col] {
			if c.Kind != Measured || c.Value < 0 {
				out[i] = c
				continue
			}

			v := c.Value / ref.Value
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			out[i] = Measure(v)
		}

		kept = append(kept, col)
		cells[col] = out
	}

	normalized := t.derive(t.rows, kept, cells)
	if dropReferenceRow {
		return normalized.DropRow(referenceRow)
	}

	return normalized
}
