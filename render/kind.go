package render

import (
	"fmt"
	"strings"
)

// Kind is a chart type.
type Kind int

const (
	BarChart Kind = iota
	Heatmap
)

func (k Kind) String() string {
	switch k {
	case BarChart:
		return "barchart"
	case Heatmap:
		return "heatmap"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts "barchart" or "heatmap", ignoring case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "barchart", "bar":
		return BarChart, nil
	case "heatmap":
		return Heatmap, nil
	}
	return BarChart, fmt.Errorf("Invalid plot type specified: %s", s)
}
