package recordtable

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "data/history.csv", want: FormatCSV},
		{path: "HISTORY.CSV", want: FormatCSV},
		{path: "data/history.parquet", want: FormatParquet},
		{path: "history.pq", want: FormatParquet},
		{path: "history.json", wantErr: true},
		{path: "history", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			got, err := FormatOf(tc.path)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := weatherTable(t)

	path := filepath.Join(dir, "weather.parquet")
	require.NoError(t, Save(path, want))
	for _, pr := range []ParquetReader{ParquetRows, ParquetArrow} {
		got, err := Load(context.Background(), path, pr)
		require.NoError(t, err, "reader %s", pr)
		assert.Equal(t, want.Rows, got.Rows, "reader %s", pr)
	}

	csvPath := filepath.Join(dir, "prices.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("item,price\nb,2\na,1\n"), 0o644))
	got, err := Load(context.Background(), csvPath, ParquetRows)
	require.NoError(t, err)
	got.Rows[0], got.Rows[1] = got.Rows[1], got.Rows[0]

	out := filepath.Join(dir, "sorted.csv")
	require.NoError(t, Save(out, got))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "item,price\na,1\nb,2\n", string(data))
}

func TestLoadColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weather.parquet")
	require.NoError(t, Save(path, weatherTable(t)))
	csvPath := filepath.Join(dir, "weather.csv")
	require.NoError(t, Save(csvPath, weatherTable(t)))

	for _, tc := range []struct {
		path string
		pr   ParquetReader
	}{
		{path, ParquetRows},
		{path, ParquetArrow},
		{csvPath, ParquetRows},
	} {
		got, err := Load(context.Background(), tc.path, tc.pr, "Year", "country")
		require.NoError(t, err, "%s via %s", tc.path, tc.pr)
		assert.Equal(t, []string{"year", "country"}, got.Schema.Names(), "%s via %s", tc.path, tc.pr)
		require.Equal(t, 4, got.Len())
		assert.Equal(t, Row{int64(2021), "Angola"}, got.Rows[0], "%s via %s", tc.path, tc.pr)

		_, err = Load(context.Background(), tc.path, tc.pr, "altitude")
		require.ErrorIs(t, err, ErrColumnNotInSchema, "%s via %s", tc.path, tc.pr)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(context.Background(), "table.xlsx", ParquetRows)
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), ParquetRows)
	require.ErrorIs(t, err, os.ErrNotExist)
}
