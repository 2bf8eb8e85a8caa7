package assayinput

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/assayplot/assaytable"
	"github.com/carbocation/assayplot/chartconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const plate = `log,alphabetize,title=Plate 1
Sample,IL6,TNF
S1,5,<2
S2,10,>300
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestStem(t *testing.T) {
	for _, v := range []struct {
		Path     string
		Expected string
	}{
		{"plate 1.csv", "plate 1"},
		{"/data/run/plate.csv.gz", "plate"},
		{"gs://bucket/runs/plate.xlsx", "plate"},
		{"plate.TSV.XZ", "plate"},
		{"plate", "plate"},
		{"v1.2.csv", "v1.2"},
	} {
		assert.Equal(t, v.Expected, Stem(v.Path), v.Path)
	}
}

func TestParseHeaderMode(t *testing.T) {
	for input, expected := range map[string]HeaderMode{
		"":        HeaderAuto,
		"AUTO":    HeaderAuto,
		"options": HeaderOptions,
		"Plain":   HeaderPlain,
	} {
		mode, err := ParseHeaderMode(input)
		require.NoError(t, err)
		assert.Equal(t, expected, mode)
	}

	_, err := ParseHeaderMode("sometimes")
	assert.Error(t, err)
	assert.Equal(t, "options", HeaderOptions.String())
}

func TestLoadOptionLine(t *testing.T) {
	path := writeFile(t, "plate.csv", []byte(plate))

	doc, err := Load(context.Background(), path, nil, HeaderAuto)
	require.NoError(t, err)

	assert.Equal(t, "plate", doc.Stem)
	assert.Equal(t, chartconfig.Set{"log": true, "alphabetize": true, "title": "Plate 1"}, doc.Options)
	require.Len(t, doc.Records, 3)
	assert.Equal(t, []string{"Sample", "IL6", "TNF"}, doc.Records[0])

	table, err := doc.Table()
	require.NoError(t, err)
	c, _ := table.Cell("S2", "TNF")
	assert.Equal(t, assaytable.Above(300), c)
}

func TestLoadHeaderModes(t *testing.T) {
	plain := writeFile(t, "plain.csv", []byte("Sample,IL6\nS1,5\n"))

	doc, err := Load(context.Background(), plain, nil, HeaderAuto)
	require.NoError(t, err)
	assert.Nil(t, doc.Options)
	assert.Len(t, doc.Records, 2)

	// Forcing options consumes the header as if it were options.
	doc, err = Load(context.Background(), plain, nil, HeaderOptions)
	require.NoError(t, err)
	assert.Equal(t, chartconfig.Set{"sample": true, "il6": true}, doc.Options)
	assert.Len(t, doc.Records, 1)

	withOptions := writeFile(t, "options.csv", []byte(plate))
	doc, err = Load(context.Background(), withOptions, nil, HeaderPlain)
	require.NoError(t, err)
	assert.Nil(t, doc.Options)
	assert.Len(t, doc.Records, 4)
}

func TestLoadOptionLineWithUnknownKey(t *testing.T) {
	path := writeFile(t, "typo.csv", []byte("log,titel=Plate 1\nSample,IL6\nS1,5\n"))

	doc, err := Load(context.Background(), path, nil, HeaderAuto)
	require.NoError(t, err)
	assert.Equal(t, chartconfig.Set{"log": true, "titel": "Plate 1"}, doc.Options)
	require.Len(t, doc.Records, 2)

	table, err := doc.Table()
	require.NoError(t, err)
	c, _ := table.Cell("S1", "IL6")
	assert.Equal(t, assaytable.Measure(5), c)
}

func TestLoadTabDelimitedWithBOM(t *testing.T) {
	data := append([]byte{0xef, 0xbb, 0xbf}, []byte("Sample\tIL6\tTNF\nS1\t5\t<2\nS2\t7\t8\n")...)
	path := writeFile(t, "plate.tsv", data)

	doc, err := Load(context.Background(), path, nil, HeaderAuto)
	require.NoError(t, err)

	table, err := doc.Table()
	require.NoError(t, err)
	assert.Equal(t, []string{"IL6", "TNF"}, table.Columns())
	assert.Equal(t, []string{"S1", "S2"}, table.Rows())
}

func TestLoadGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(plate))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	path := writeFile(t, "plate.csv.gz", buf.Bytes())

	doc, err := Load(context.Background(), path, nil, HeaderAuto)
	require.NoError(t, err)
	assert.Equal(t, "plate", doc.Stem)
	assert.Equal(t, "Plate 1", doc.Options["title"])
	assert.Len(t, doc.Records, 3)
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range [][]interface{}{
		{"Sample", "IL6", "TNF"},
		{"S1", 5, "<2"},
		{"S2", 10.5, "ND"},
	} {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "plate.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	doc, err := Load(context.Background(), path, nil, HeaderAuto)
	require.NoError(t, err)
	assert.Nil(t, doc.Options)

	table, err := doc.Table()
	require.NoError(t, err)
	assert.Equal(t, []assaytable.Cell{assaytable.Below(2), assaytable.Measure(0)}, table.Column("TNF"))
	assert.Equal(t, []assaytable.Cell{assaytable.Measure(5), assaytable.Measure(10.5)}, table.Column("IL6"))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), nil, HeaderAuto)
	assert.Error(t, err)

	_, err = Load(context.Background(), "gs://bucket/plate.csv", nil, HeaderAuto)
	assert.Error(t, err)

	bad := writeFile(t, "bad.csv", []byte("=5,log\nSample,IL6\n"))
	_, err = Load(context.Background(), bad, nil, HeaderOptions)
	assert.Error(t, err)

	doc, err := Load(context.Background(), writeFile(t, "cell.csv", []byte("Sample,IL6\nS1,lots\n")), nil, HeaderAuto)
	require.NoError(t, err)
	_, err = doc.Table()
	assert.Error(t, err)
}
