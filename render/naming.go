package render

import (
	"fmt"
	"strings"
	"time"
)

// OutputBase names the output of one chart, without extension. Chunks of a
// split table are numbered from 1 as "stem-i of n"; a single chart is just
// "stem". With datestamp the name starts with the date as YYYYMMDD.
func OutputBase(stem string, chunk, total int, date time.Time, datestamp bool) string {
	name := stem
	if total > 1 {
		name = fmt.Sprintf("%s-%d of %d", stem, chunk, total)
	}

	if datestamp {
		name = date.Format("20060102") + " " + name
	}

	return name
}

// FileName appends the extension for format to base.
func FileName(base, format string) string {
	return base + "." + strings.ToLower(strings.TrimPrefix(format, "."))
}
