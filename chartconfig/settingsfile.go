package chartconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

// LoadSettingsFile reads a settings file. A file that does not exist is not
// an error: it is logged and yields a nil Set.
func LoadSettingsFile(path string) (Set, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Unable to load configuration file %s. File not found.\n", path)
		return nil, nil
	} else if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	log.Printf("Loading configuration file %s\n", path)

	out, err := ParseSettings(f)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return out, nil
}

// ParseSettings parses one parameter per line, written as `key` (meaning
// true) or `key,value1,value2,...`. Everything from the first # onward is a
// comment. A single value is kept as a string, several become a list, except
// for string parameters, which keep everything after the first comma as
// written. Keys are lower-cased; values keep their case.
func ParseSettings(r io.Reader) (Set, error) {
	out := make(Set)

	scanner := bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			// Line was just a comment
			continue
		}

		entries := strings.Split(line, ",")
		key := normalizeKey(entries[0])
		if key == "" {
			return nil, fmt.Errorf("line %d: missing parameter name in %q", lineNumber, line)
		}

		if len(entries) > 1 && isStringParam(key) {
			// Titles and labels may themselves contain commas.
			out[key] = strings.TrimSpace(line[strings.IndexByte(line, ',')+1:])
			continue
		}

		values := make([]string, 0, len(entries)-1)
		for _, v := range entries[1:] {
			values = append(values, strings.TrimSpace(v))
		}

		switch len(values) {
		case 0:
			out[key] = true
		case 1:
			out[key] = values[0]
		default:
			out[key] = values
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
