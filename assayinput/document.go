// Package assayinput locates, decodes and splits an assay input file into
// its option line and its table records.
package assayinput

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/carbocation/assayplot/assaytable"
	"github.com/carbocation/assayplot/chartconfig"
	"github.com/carbocation/pfx"
)

// Document is one input file, read but not yet interpreted as a table.
type Document struct {
	Path string
	Stem string

	// Options is nil when the file has no option line.
	Options chartconfig.Set

	Records [][]string
}

// Load reads path and separates its option line according to mode.
func Load(ctx context.Context, path string, client *storage.Client, mode HeaderMode) (*Document, error) {
	records, err := ReadRecords(ctx, path, client)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Path:    path,
		Stem:    Stem(path),
		Records: records,
	}

	if len(records) == 0 || !hasOptionLine(records[0], mode) {
		return doc, nil
	}

	options, err := chartconfig.ParseOptionLine(records[0])
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: option line: %w", path, err))
	}
	doc.Options = options
	doc.Records = records[1:]

	return doc, nil
}

func hasOptionLine(first []string, mode HeaderMode) bool {
	switch mode {
	case HeaderOptions:
		return true
	case HeaderPlain:
		return false
	}
	return chartconfig.IsOptionLine(first)
}

// Table interprets the document's records as a censored assay table.
func (d *Document) Table() (*assaytable.Table, error) {
	t, err := assaytable.FromRecords(d.Records)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", d.Path, err))
	}
	return t, nil
}
