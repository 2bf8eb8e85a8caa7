package assaytable

import (
	"fmt"
	"strings"

	"github.com/carbocation/pfx"
)

// FromRecords builds a table from parsed rows of an input file. The first
// non-blank record is the header: its first cell names the sample column and
// the rest name the measured items. Header cells that are empty or start with
// "Unnamed" are dropped along with their column. Every other record is one
// sample: a label followed by one cell per item, where missing trailing cells
// read as zero.
func FromRecords(records [][]string) (*Table, error) {
	type column struct {
		Name     string
		Position int
	}

	var columns []column
	var rows []string
	var cells [][]Cell
	haveHeader := false

	for line, record := range records {
		if isBlank(record) {
			continue
		}

		if !haveHeader {
			haveHeader = true
			for pos := 1; pos < len(record); pos++ {
				name := strings.TrimSpace(record[pos])
				if name == "" || strings.HasPrefix(name, "Unnamed") {
					continue
				}
				columns = append(columns, column{Name: name, Position: pos})
			}
			continue
		}

		label := strings.TrimSpace(record[0])
		if label == "" {
			return nil, pfx.Err(fmt.Errorf("record %d: missing sample label", line+1))
		}

		rowCells := make([]Cell, len(columns))
		for j, col := range columns {
			text := ""
			if col.Position < len(record) {
				text = record[col.Position]
			}

			c, err := ParseCell(text)
			if err != nil {
				return nil, pfx.Err(fmt.Errorf("record %d, sample %q, item %q: %w", line+1, label, col.Name, err))
			}
			rowCells[j] = c
		}

		rows = append(rows, label)
		cells = append(cells, rowCells)
	}

	if !haveHeader {
		return nil, pfx.Err(fmt.Errorf("no header row found"))
	}

	names := make([]string, 0, len(columns))
	for _, col := range columns {
		names = append(names, col.Name)
	}

	return New(rows, names, cells)
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
