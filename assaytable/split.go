package assaytable

import (
	"fmt"

	"github.com/carbocation/pfx"
)

// Split partitions the columns of t, in presentation order, into consecutive
// chunks of at most maxColumnsPerChunk columns. Every chunk has all of t's
// rows.
func Split(t *Table, maxColumnsPerChunk int) ([]*Table, error) {
	if maxColumnsPerChunk < 1 {
		return nil, pfx.Err(fmt.Errorf("maxColumnsPerChunk must be at least 1, got %d", maxColumnsPerChunk))
	}

	n := len(t.columns)
	out := make([]*Table, 0, (n+maxColumnsPerChunk-1)/maxColumnsPerChunk)
	for start := 0; start < n; start += maxColumnsPerChunk {
		end := min(start+maxColumnsPerChunk, n)
		out = append(out, t.derive(t.rows, t.columns[start:end], t.cells))
	}

	return out, nil
}
