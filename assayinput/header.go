package assayinput

import (
	"fmt"
	"strings"
)

// HeaderMode says whether the first record of a file is an option line.
type HeaderMode int

const (
	// HeaderAuto treats the first record as an option line only when every
	// non-empty cell names a known parameter.
	HeaderAuto HeaderMode = iota

	// HeaderOptions always treats the first record as an option line.
	HeaderOptions

	// HeaderPlain never looks for an option line.
	HeaderPlain
)

func (m HeaderMode) String() string {
	switch m {
	case HeaderAuto:
		return "auto"
	case HeaderOptions:
		return "options"
	case HeaderPlain:
		return "plain"
	}
	return fmt.Sprintf("HeaderMode(%d)", int(m))
}

// ParseHeaderMode accepts auto, options or plain, ignoring case.
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return HeaderAuto, nil
	case "options":
		return HeaderOptions, nil
	case "plain":
		return HeaderPlain, nil
	}
	return HeaderAuto, fmt.Errorf("unknown header mode %q: expected auto, options or plain", s)
}
