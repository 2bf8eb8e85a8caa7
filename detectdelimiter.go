package assayplot

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// delimiterPriority lists the delimiters that plate-reader exports actually
// use, in the order we prefer them when more than one looks plausible.
var delimiterPriority = []rune{',', '\t', ';', '|'}

// DetermineDelimiter returns the single most likely rune that would delimit the
// values in the reader, assuming a CSV-like file. Candidates the detector
// proposes that are not a known delimiter (decimal points, for example) are
// ignored. Falls back to a comma.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()
	delimiters := d.DetectDelimiter(r, '"')

	seen := make(map[rune]struct{}, len(delimiters))
	for _, v := range delimiters {
		if len(v) > 0 {
			seen[rune(v[0])] = struct{}{}
		}
	}

	for _, candidate := range delimiterPriority {
		if _, exists := seen[candidate]; exists {
			return candidate
		}
	}

	return ','
}
