package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/carbocation/assayplot/chartconfig"
	"github.com/carbocation/assayplot/render"
)

// parseKinds resolves --type values. Unknown types are reported and skipped;
// it is an error only if none are left.
func parseKinds(types []string) ([]render.Kind, error) {
	seen := make(map[render.Kind]struct{})
	var out []render.Kind
	for _, t := range types {
		kind, err := render.ParseKind(t)
		if err != nil {
			log.Println(err)
			continue
		}
		if _, exists := seen[kind]; exists {
			continue
		}
		seen[kind] = struct{}{}
		out = append(out, kind)
	}

	if len(out) == 0 && len(types) > 0 {
		return nil, fmt.Errorf("no valid plot type in %v", types)
	}

	return out, nil
}

// parseOverrides reads --set values of the form key=value. A bare key means
// true, and a value with commas becomes a list.
func parseOverrides(sets []string) (chartconfig.Set, error) {
	out := make(chartconfig.Set, len(sets))
	for _, s := range sets {
		parts := strings.SplitN(s, "=", 2)
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		if key == "" {
			return nil, fmt.Errorf("--set %q: missing parameter name", s)
		}

		switch {
		case len(parts) == 1:
			out[key] = true
		case strings.Contains(parts[1], ","):
			out[key] = strings.Split(parts[1], ",")
		default:
			out[key] = parts[1]
		}
	}

	return out, nil
}
