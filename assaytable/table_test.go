package assaytable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleTable(t *testing.T) *Table {
	t.Helper()

	table, err := FromRecords([][]string{
		{"Sample", "ItemX", "ItemY"},
		{"SampleA", "5", "<2"},
		{"SampleB", "10", "8"},
	})
	require.NoError(t, err)

	return table
}

func TestFromRecordsExample(t *testing.T) {
	table := exampleTable(t)

	assert.Equal(t, []string{"SampleA", "SampleB"}, table.Rows())
	assert.Equal(t, []string{"ItemX", "ItemY"}, table.Columns())

	c, exists := table.Cell("SampleA", "ItemY")
	require.True(t, exists)
	assert.Equal(t, Below(2), c)
	assert.Equal(t, -1.0, c.Sentinel())

	limit, exists := table.LowerLimit("ItemY")
	require.True(t, exists)
	assert.Equal(t, 2.0, limit)

	_, exists = table.LowerLimit("ItemX")
	assert.False(t, exists)
	_, exists = table.UpperLimit("ItemY")
	assert.False(t, exists)

	assert.Equal(t, []Cell{Measure(5), Measure(10)}, table.Column("ItemX"))
	assert.Equal(t, [][]float64{{5, -1}, {10, 8}}, table.Values())
}

func TestFromRecordsLimitIsMaximum(t *testing.T) {
	table, err := FromRecords([][]string{
		{"Sample", "IL6", "TNF"},
		{"s1", "<2", ">100"},
		{"s2", "<5", ">300"},
		{"s3", "<3", "40"},
	})
	require.NoError(t, err)

	lower, _ := table.LowerLimit("IL6")
	upper, _ := table.UpperLimit("TNF")
	assert.Equal(t, 5.0, lower)
	assert.Equal(t, 300.0, upper)

	// Every "<" cell keeps its own reported value.
	assert.Equal(t, []Cell{Below(2), Below(5), Below(3)}, table.Column("IL6"))
	assert.Equal(t, map[string]float64{"IL6": 5}, table.LowerLimits())
	assert.Equal(t, map[string]float64{"TNF": 300}, table.UpperLimits())
}

func TestFromRecordsLayout(t *testing.T) {
	table, err := FromRecords([][]string{
		{"", "", ""},
		{"Sample", "A", "", "Unnamed: 3", "B"},
		{"s1", "1", "junk", "junk", "2"},
		{},
		{"s2", "3"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, table.Columns())
	assert.Equal(t, []string{"s1", "s2"}, table.Rows())
	assert.Equal(t, []Cell{Measure(1), Measure(3)}, table.Column("A"))
	assert.Equal(t, []Cell{Measure(2), Measure(0)}, table.Column("B"))
}

func TestFromRecordsErrors(t *testing.T) {
	for name, records := range map[string][][]string{
		"no header":        {},
		"blank only":       {{"", " "}},
		"missing label":    {{"Sample", "A"}, {"", "1"}},
		"bad cell":         {{"Sample", "A"}, {"s1", "lots"}},
		"duplicate sample": {{"Sample", "A"}, {"s1", "1"}, {"s1", "2"}},
		"duplicate item":   {{"Sample", "A", "A"}, {"s1", "1", "2"}},
	} {
		_, err := FromRecords(records)
		assert.Error(t, err, name)
	}

	_, err := FromRecords([][]string{{"Sample", "IL6"}, {"Plate 1", "lots"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Plate 1")
	assert.Contains(t, err.Error(), "IL6")
	assert.Contains(t, err.Error(), "lots")
}

func TestNew(t *testing.T) {
	_, err := New([]string{"a"}, []string{"x", "y"}, [][]Cell{{Measure(1)}})
	assert.Error(t, err)

	_, err = New([]string{"a", "b"}, []string{"x"}, [][]Cell{{Measure(1)}})
	assert.Error(t, err)

	table, err := New(nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, table.IsEmpty())
}

func TestOrdered(t *testing.T) {
	table, err := New(
		[]string{"s1"},
		[]string{"beta", "Alpha", "gamma", "alpha"},
		[][]Cell{{Measure(1), Measure(2), Measure(3), Measure(4)}},
	)
	require.NoError(t, err)

	alpha := table.Ordered(true)
	assert.Equal(t, []string{"Alpha", "alpha", "beta", "gamma"}, alpha.Columns())
	assert.Equal(t, []Cell{Measure(2), Measure(4), Measure(1), Measure(3)}, alpha.Row("s1"))

	// Both orderings survive a round trip.
	assert.Equal(t, table.Columns(), alpha.Ordered(false).Columns())
	assert.Equal(t, alpha.AlphabeticalOrder(), table.AlphabeticalOrder())
	assert.Equal(t, []string{"beta", "Alpha", "gamma", "alpha"}, alpha.OriginalOrder())
}

func TestSelect(t *testing.T) {
	table := exampleTable(t)

	selected, err := table.Select([]string{"ItemY"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ItemY"}, selected.Columns())
	assert.Equal(t, []string{"ItemY"}, selected.OriginalOrder())
	limit, exists := selected.LowerLimit("ItemY")
	assert.True(t, exists)
	assert.Equal(t, 2.0, limit)

	_, err = table.Select([]string{"ItemZ"})
	assert.Error(t, err)
	_, err = table.Select([]string{"ItemX", "ItemX"})
	assert.Error(t, err)
}

func TestDropRow(t *testing.T) {
	table := exampleTable(t)

	dropped := table.DropRow("SampleA")
	assert.Equal(t, []string{"SampleB"}, dropped.Rows())
	assert.Equal(t, []Cell{Measure(8)}, dropped.Column("ItemY"))
	assert.False(t, dropped.HasRow("SampleA"))

	// The instrument's limit is still known.
	limit, exists := dropped.LowerLimit("ItemY")
	assert.True(t, exists)
	assert.Equal(t, 2.0, limit)

	// The source is untouched.
	assert.Equal(t, []string{"SampleA", "SampleB"}, table.Rows())

	assert.Equal(t, table.Rows(), table.DropRow("SampleC").Rows())
}

func TestClone(t *testing.T) {
	table := exampleTable(t)
	clone := table.Clone()

	assert.Equal(t, table.Values(), clone.Values())
	assert.Equal(t, table.LowerLimits(), clone.LowerLimits())

	// Mutating a returned column copy never reaches either table.
	col := clone.Column("ItemX")
	col[0] = Measure(99)
	assert.Equal(t, []Cell{Measure(5), Measure(10)}, table.Column("ItemX"))
	assert.Equal(t, []Cell{Measure(5), Measure(10)}, clone.Column("ItemX"))
}
