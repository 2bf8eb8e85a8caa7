package assaytable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressedColumns(t *testing.T) {
	table, err := FromRecords([][]string{
		{"Sample", "X", "Y", "Z", "W", "V"},
		{"s1", "<2", "<2", "0", ">50", "-3"},
		{"s2", "4", "<1", "ND", ">50", "-1"},
	})
	require.NoError(t, err)

	expressed := ExpressedColumns(table)
	unexpressed := UnexpressedColumns(table)

	assert.Equal(t, []string{"X"}, expressed)
	assert.Equal(t, []string{"Y", "Z", "W", "V"}, unexpressed)

	// Together they partition the columns.
	assert.ElementsMatch(t, table.Columns(), append(expressed, unexpressed...))
}

func TestExpressedColumnsEmpty(t *testing.T) {
	assert.Empty(t, ExpressedColumns(Empty()))
	assert.Empty(t, UnexpressedColumns(Empty()))
	assert.Empty(t, ExpressedButNotNormalizable(Empty(), Empty()))
}

func TestMeasuredValues(t *testing.T) {
	assert.Equal(t, []float64{3, 0}, MeasuredValues([]Cell{Below(1), Measure(3), Above(9), Measure(0)}))
}
