package chartconfig

import (
	"fmt"
	"strings"
)

// ParseOptionLine parses the charting options that may head an input table:
// cells of the form KEY or KEY=VALUE with case-insensitive keys. A bare KEY
// means true. Empty cells are skipped.
func ParseOptionLine(cells []string) (Set, error) {
	out := make(Set)

	for _, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			continue
		}

		parts := strings.SplitN(cell, "=", 2)
		key := normalizeKey(parts[0])
		if key == "" {
			return nil, fmt.Errorf("option %q has no name", cell)
		}

		if len(parts) == 1 {
			out[key] = true
			continue
		}

		out[key] = StrToBool(parts[1])
	}

	return out, nil
}

// IsOptionLine reports whether cells look like an option line rather than a
// column header: some cell names a known parameter or carries a KEY=VALUE
// pair. Misspelled keys on such a line are left for the merge to report. A
// line of empty cells is an option line with no options.
func IsOptionLine(cells []string) bool {
	empty := true
	for _, cell := range cells {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		empty = false

		if strings.Contains(cell, "=") || IsKnown(cell) {
			return true
		}
	}

	return empty
}
