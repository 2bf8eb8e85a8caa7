package chartconfig

import (
	"sort"
	"strings"
)

// Set is a raw mapping from lower-case parameter name to value. Values are
// bool, string, a number, or []string.
type Set map[string]interface{}

// Keys returns the keys of s in sorted order.
func (s Set) Keys() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// StrToBool turns "true", "yes", "on" (and "false", "no", "off") into booleans,
// ignoring case. Other strings are returned with leading whitespace removed.
// Values that are not strings are returned unchanged.
func StrToBool(v interface{}) interface{} {
	x, ok := v.(string)
	if !ok {
		return v
	}

	switch strings.ToUpper(strings.TrimSpace(x)) {
	case "TRUE", "YES", "ON":
		return true
	case "FALSE", "NO", "OFF":
		return false
	}

	return strings.TrimLeft(x, " \t")
}
