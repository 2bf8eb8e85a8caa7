package assayinput

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/assayplot"
	"github.com/carbocation/pfx"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var compressionExtensions = map[string]struct{}{
	".gz":  {},
	".bz2": {},
	".xz":  {},
	".zip": {},
}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Stem returns the base name of path without its compression extension (if
// any) and then without its data extension: "plate 1.csv.gz" becomes
// "plate 1".
func Stem(path string) string {
	base := filepath.Base(path)
	if _, compressed := compressionExtensions[strings.ToLower(filepath.Ext(base))]; compressed {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// dataExtension is the lower-cased extension that decides the parser, after
// any compression extension has been removed.
func dataExtension(path string) (ext string, compressed bool) {
	base := filepath.Base(path)
	ext = strings.ToLower(filepath.Ext(base))
	if _, compressed = compressionExtensions[ext]; compressed {
		base = strings.TrimSuffix(base, filepath.Ext(base))
		ext = strings.ToLower(filepath.Ext(base))
	}
	return ext, compressed
}

// ReadRecords reads every record of a local or gs:// file. Workbooks (.xls,
// .xlsx) yield the rows of their first sheet; anything else is read as
// delimited text, decompressed first if it is compressed.
func ReadRecords(ctx context.Context, path string, client *storage.Client) ([][]string, error) {
	ext, compressed := dataExtension(path)

	var data []byte
	var err error
	if (ext == ".xls" || ext == ".xlsx") && !compressed {
		// An xlsx is itself a zip archive, so it must not be sniffed for
		// compression.
		data, err = readRaw(ctx, path, client)
	} else {
		data, err = assayplot.ReadAll(ctx, path, client)
	}
	if err != nil {
		return nil, pfx.Err(err)
	}

	var records [][]string
	switch ext {
	case ".xls":
		records, err = readXLS(bytes.NewReader(data))
	case ".xlsx":
		records, err = readXLSX(bytes.NewReader(data))
	default:
		records, err = readDelimited(data)
	}
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return records, nil
}

func readRaw(ctx context.Context, path string, client *storage.Client) ([]byte, error) {
	rc, err := assayplot.MaybeOpenFromGoogleStorage(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

func readDelimited(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(assayplot.NewQuoteFixReader(bytes.NewReader(data)))
	r.Comma = assayplot.DetermineDelimiter(bytes.NewReader(data))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	return r.ReadAll()
}

func readXLS(r io.ReadSeeker) ([][]string, error) {
	spreadsheet, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, err
	}

	if spreadsheet.NumSheets() < 1 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	sheet := spreadsheet.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("sheet 0 was nil")
	}

	output := make([][]string, 0, int(sheet.MaxRow)+1)
	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheet.Row(rowID)
		if row == nil {
			output = append(output, nil)
			continue
		}

		record := make([]string, 0, row.LastCol()+1)
		for colID := 0; colID <= row.LastCol(); colID++ {
			record = append(record, row.Col(colID))
		}
		output = append(output, trimTrailingEmpty(record))
	}

	return output, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < 1 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	return f.GetRows(sheets[0])
}

func trimTrailingEmpty(record []string) []string {
	end := len(record)
	for end > 0 && strings.TrimSpace(record[end-1]) == "" {
		end--
	}
	return record[:end]
}
