package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordtable "tablesort/record-table"
	sortengine "tablesort/sort-engine"
)

const pricesCSV = "item,price\nwidget,5\ngadget,3\ngizmo,8\nsprocket,3\n"

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunSortWritesSortedDataset(t *testing.T) {
	for _, algo := range []string{"quicksort", "mergesort", "hybrid", "Hybrid Sort (QuickSort + Insertion Sort)"} {
		t.Run(algo, func(t *testing.T) {
			input := writeInput(t, "prices.csv", pricesCSV)
			outDir := t.TempDir()

			var out bytes.Buffer
			err := runSort(context.Background(), &out, sortOptions{
				input:       input,
				output:      outDir,
				column:      "price",
				algorithm:   algo,
				threshold:   sortengine.DefaultThreshold,
				previewRows: 2,
			})
			require.NoError(t, err)

			text := out.String()
			assert.Contains(t, text, "Dataset preview:")
			assert.Contains(t, text, "Sorted dataset by price")
			assert.Contains(t, text, "Time taken: ")
			assert.Contains(t, text, "... 2 more rows")

			data, err := os.ReadFile(filepath.Join(outDir, defaultOutputName))
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			require.Len(t, lines, 5)
			assert.Equal(t, "item,price", lines[0])
			assert.True(t, strings.HasSuffix(lines[1], ",3"))
			assert.True(t, strings.HasSuffix(lines[2], ",3"))
			assert.Equal(t, "widget,5", lines[3])
			assert.Equal(t, "gizmo,8", lines[4])
		})
	}
}

func TestRunSortParquetOutput(t *testing.T) {
	input := writeInput(t, "prices.csv", pricesCSV)
	output := filepath.Join(t.TempDir(), "sorted.parquet")

	err := runSort(context.Background(), &bytes.Buffer{}, sortOptions{
		input:     input,
		output:    output,
		column:    "item",
		algorithm: "insertion",
	})
	require.NoError(t, err)

	tbl, err := recordtable.Load(context.Background(), output, recordtable.ParquetRows)
	require.NoError(t, err)
	items := make([]any, tbl.Len())
	for i, row := range tbl.Rows {
		items[i] = row[0]
	}
	assert.Equal(t, []any{"gadget", "gizmo", "sprocket", "widget"}, items)
}

func TestRunSortErrors(t *testing.T) {
	input := writeInput(t, "prices.csv", pricesCSV)

	err := runSort(context.Background(), &bytes.Buffer{}, sortOptions{input: input, column: "cost", algorithm: "mergesort"})
	require.ErrorIs(t, err, sortengine.ErrKeyNotFound)

	err = runSort(context.Background(), &bytes.Buffer{}, sortOptions{input: input, column: "price", algorithm: "bubble"})
	require.ErrorIs(t, err, sortengine.ErrUnknownAlgorithm)

	bad := writeInput(t, "bad.csv", "a,b\n1\n")
	err = runSort(context.Background(), &bytes.Buffer{}, sortOptions{input: bad, column: "a", algorithm: "quicksort"})
	require.ErrorIs(t, err, recordtable.ErrMalformedInput)

	mixed := writeInput(t, "mixed.csv", "a\n1\nx\n")
	err = runSort(context.Background(), &bytes.Buffer{}, sortOptions{input: mixed, column: "a", algorithm: "quicksort"})
	require.NoError(t, err, "a column with text cells is read as text")
}

func TestRunSortColumns(t *testing.T) {
	input := writeInput(t, "stock.csv", "item,price,qty\nwidget,5,1\ngadget,3,7\n")
	output := filepath.Join(t.TempDir(), "sorted.csv")

	err := runSort(context.Background(), &bytes.Buffer{}, sortOptions{
		input:     input,
		output:    output,
		column:    "price",
		columns:   []string{"price", "item"},
		algorithm: "quicksort",
	})
	require.NoError(t, err)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "price,item\n3,gadget\n5,widget\n", string(data))

	err = runSort(context.Background(), &bytes.Buffer{}, sortOptions{
		input:     input,
		column:    "price",
		columns:   []string{"item"},
		algorithm: "quicksort",
	})
	require.ErrorIs(t, err, sortengine.ErrKeyNotFound, "the sort column was not loaded")

	err = runSort(context.Background(), &bytes.Buffer{}, sortOptions{
		input:     input,
		column:    "price",
		columns:   []string{"price", "weight"},
		algorithm: "quicksort",
	})
	require.ErrorIs(t, err, recordtable.ErrColumnNotInSchema)
}

func TestRunSortHybridRejectsZeroThreshold(t *testing.T) {
	input := writeInput(t, "prices.csv", pricesCSV)

	err := runSort(context.Background(), &bytes.Buffer{}, sortOptions{input: input, column: "price", algorithm: "hybrid"})
	require.ErrorIs(t, err, sortengine.ErrInvalidThreshold)
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, defaultOutputName), outputPath(dir))

	file := filepath.Join(dir, "out.csv")
	assert.Equal(t, file, outputPath(file))
}

func TestSchemaAndPreviewCommands(t *testing.T) {
	input := writeInput(t, "prices.csv", pricesCSV)

	var out bytes.Buffer
	require.NoError(t, runSchema(context.Background(), &out, input, nil))
	assert.Equal(t, "Schema:\n  0. item: string\n  1. price: int64\n", out.String())

	out.Reset()
	require.NoError(t, runSchema(context.Background(), &out, input, []string{"PRICE"}))
	assert.Equal(t, "Schema:\n  0. price: int64\n", out.String())

	out.Reset()
	require.NoError(t, runPreview(context.Background(), &out, input, nil, 1))
	assert.Contains(t, out.String(), "widget")
	assert.Contains(t, out.String(), "... 3 more rows")

	out.Reset()
	require.NoError(t, runPreview(context.Background(), &out, input, []string{"price"}, 1))
	assert.NotContains(t, out.String(), "widget")

	require.Error(t, runSchema(context.Background(), &out, filepath.Join(t.TempDir(), "missing.csv"), nil))
}

func TestSortCommandEndToEnd(t *testing.T) {
	input := writeInput(t, "prices.csv", pricesCSV)
	output := filepath.Join(t.TempDir(), "sorted.csv")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"sort", "--input", input, "--column", "price", "--algorithm", "merge", "--stable-merge", "--output", output})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Time taken: ")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "item,price\ngadget,3\nsprocket,3\nwidget,5\ngizmo,8\n", string(data))
}
