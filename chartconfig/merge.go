package chartconfig

import (
	"log"
	"sort"
	"strings"
)

// Report describes what an override source did to the base during a merge.
type Report struct {
	Source      string
	Unknown     []string
	Overwritten []string
}

// Empty reports whether the merge neither ignored nor replaced anything.
func (r Report) Empty() bool {
	return len(r.Unknown) == 0 && len(r.Overwritten) == 0
}

// Log prints the report the way a user needs to see it: unknown keys first,
// since those usually mean a typo in the settings.
func (r Report) Log() {
	source := r.Source
	if source == "" {
		source = "the overrides"
	}

	if len(r.Unknown) > 0 {
		log.Printf("The following parameters from %s are unknown and will be ignored:\n\t%s\n", source, strings.Join(r.Unknown, " "))
	}
	if len(r.Overwritten) > 0 {
		log.Printf("The following parameters from %s will overwrite the default parameters:\n\t%s\n", source, strings.Join(r.Overwritten, " "))
	}
}

// MergeSets overlays overrides onto base. base must enumerate every legal key.
// Keys of overrides missing from base are reported as unknown and not
// applied; keys present in both are reported as overwritten and applied. The
// merged result has exactly the keys of base, with string values passed
// through StrToBool.
func MergeSets(base, overrides Set) (Set, Report) {
	merged := make(Set, len(base))
	for k, v := range base {
		merged[k] = v
	}

	var report Report
	for k, v := range overrides {
		key := normalizeKey(k)
		if _, exists := base[key]; !exists {
			report.Unknown = append(report.Unknown, key)
			continue
		}

		report.Overwritten = append(report.Overwritten, key)
		merged[key] = v
	}

	for k, v := range merged {
		merged[k] = StrToBool(v)
	}

	sort.Strings(report.Unknown)
	sort.Strings(report.Overwritten)

	return merged, report
}

// Merge overlays overrides onto base and decodes the result. The error is
// non-nil when a merged value cannot be used for its parameter.
func Merge(base Params, overrides Set, source string) (Params, Report, error) {
	merged, report := MergeSets(base.ToSet(), overrides)
	report.Source = source

	p, err := FromSet(merged)
	if err != nil {
		return base, report, err
	}

	return p, report, nil
}
