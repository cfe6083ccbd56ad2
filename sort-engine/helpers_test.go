package sortengine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	recordtable "tablesort/record-table"
)

// sortFunc adapts each entry point to a common shape for table-driven tests.
type sortFunc func(t *recordtable.Table, column string) error

var allSorts = []struct {
	name   string
	fn     sortFunc
	stable bool
}{
	{name: "quicksort", fn: QuickSort},
	{name: "mergesort", fn: func(t *recordtable.Table, c string) error { return MergeSort(t, c) }},
	{name: "mergesort-stable", fn: func(t *recordtable.Table, c string) error { return MergeSort(t, c, WithStableMerge()) }, stable: true},
	{name: "hybrid", fn: func(t *recordtable.Table, c string) error { return HybridSort(t, c, DefaultThreshold) }},
	{name: "hybrid-3", fn: func(t *recordtable.Table, c string) error { return HybridSort(t, c, 3) }},
	{name: "insertion", fn: InsertionSort, stable: true},
}

// keyedTable builds a table with an "id" column holding the original
// position and a "key" column holding the given values.
func keyedTable(t *testing.T, keys ...any) *recordtable.Table {
	t.Helper()
	rows := make([]recordtable.Row, len(keys))
	for i, k := range keys {
		rows[i] = recordtable.Row{int64(i), k}
	}
	tbl, err := recordtable.New(recordtable.Schema{Fields: []recordtable.Field{
		{Name: "id", Type: recordtable.Int64},
		{Name: "key", Type: recordtable.Int64},
	}}, rows)
	require.NoError(t, err)
	return tbl
}

func randomKeys(rng *rand.Rand, n, distinct int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = int64(rng.IntN(distinct))
	}
	return out
}

func ids(tbl *recordtable.Table) []int64 {
	out := make([]int64, tbl.Len())
	for i, r := range tbl.Rows {
		out[i] = r[0].(int64)
	}
	return out
}

func keys(tbl *recordtable.Table) []any {
	out := make([]any, tbl.Len())
	for i, r := range tbl.Rows {
		out[i] = r[1]
	}
	return out
}

func requireSorted(t *testing.T, tbl *recordtable.Table) {
	t.Helper()
	for i := 1; i < tbl.Len(); i++ {
		c, err := compareValues("key", tbl.Rows[i-1][1], tbl.Rows[i][1])
		require.NoError(t, err)
		require.LessOrEqual(t, c, 0, "rows %d and %d out of order: %v > %v", i-1, i, tbl.Rows[i-1][1], tbl.Rows[i][1])
	}
}

// requirePermutation checks that every original row is still present once
// and that row contents were not altered.
func requirePermutation(t *testing.T, before, after *recordtable.Table) {
	t.Helper()
	require.Equal(t, before.Len(), after.Len())
	byID := make(map[int64]recordtable.Row, before.Len())
	for _, r := range before.Rows {
		byID[r[0].(int64)] = r
	}
	seen := make(map[int64]bool, after.Len())
	for _, r := range after.Rows {
		id := r[0].(int64)
		require.False(t, seen[id], "row %d appears twice", id)
		seen[id] = true
		require.Equal(t, byID[id], r)
	}
}
