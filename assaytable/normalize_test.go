package assaytable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeExample(t *testing.T) {
	table := exampleTable(t)

	normalized := Normalize(table, "SampleA", false)
	assert.Equal(t, []string{"ItemX"}, normalized.Columns())
	assert.Equal(t, []string{"SampleA", "SampleB"}, normalized.Rows())
	assert.Equal(t, []Cell{Measure(1), Measure(2)}, normalized.Column("ItemX"))

	assert.Equal(t, []string{"ItemY"}, ExpressedButNotNormalizable(table, normalized))

	// The source keeps its values.
	assert.Equal(t, [][]float64{{5, -1}, {10, 8}}, table.Values())
}

func TestNormalizeDropReference(t *testing.T) {
	normalized := Normalize(exampleTable(t), "SampleA", true)

	assert.Equal(t, []string{"SampleB"}, normalized.Rows())
	assert.Equal(t, []Cell{Measure(2)}, normalized.Column("ItemX"))
}

func TestNormalizeMissingReference(t *testing.T) {
	normalized := Normalize(exampleTable(t), "Standard", false)

	assert.True(t, normalized.IsEmpty())
	assert.Equal(t, 0, normalized.NumRows())
	assert.Equal(t, 0, normalized.NumColumns())
}

func TestNormalizeCensoredAndNegative(t *testing.T) {
	table, err := FromRecords([][]string{
		{"Sample", "A", "B", "C", "D"},
		{"ref", "4", "0", ">50", "-2"},
		{"s1", "<1", "3", "7", "5"},
		{"s2", ">100", "1", "2", "6"},
		{"s3", "-8", "2", "3", "7"},
		{"s4", "2", "2", "3", "7"},
	})
	require.NoError(t, err)

	normalized := Normalize(table, "ref", false)

	// Only A has a positive measured reference.
	assert.Equal(t, []string{"A"}, normalized.Columns())
	assert.Equal(t, []Cell{Measure(1), Below(1), Above(100), Measure(-8), Measure(0.5)}, normalized.Column("A"))

	lower, _ := normalized.LowerLimit("A")
	upper, _ := normalized.UpperLimit("A")
	assert.Equal(t, 1.0, lower)
	assert.Equal(t, 100.0, upper)

	assert.ElementsMatch(t, []string{"B", "C", "D"}, ExpressedButNotNormalizable(table, normalized))
}

func TestNormalizeKeepsOrdering(t *testing.T) {
	table, err := FromRecords([][]string{
		{"Sample", "zeta", "Beta", "alpha"},
		{"ref", "1", "2", "4"},
		{"s1", "2", "2", "2"},
	})
	require.NoError(t, err)

	normalized := Normalize(table.Ordered(true), "ref", false)
	assert.Equal(t, []string{"alpha", "Beta", "zeta"}, normalized.Columns())
	assert.Equal(t, []string{"zeta", "Beta", "alpha"}, normalized.OriginalOrder())
	assert.Equal(t, []Cell{Measure(1), Measure(0.5)}, normalized.Column("alpha"))
}
