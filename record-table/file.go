package recordtable

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ParquetReader selects which library decodes parquet input.
type ParquetReader string

const (
	ParquetRows  ParquetReader = "rows"
	ParquetArrow ParquetReader = "arrow"
)

// FormatOf picks a format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".parquet", ".pq":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Load reads a table from disk, choosing the decoder by extension. When
// columns are given only those are kept; parquet input pushes the projection
// down into the reader.
func Load(ctx context.Context, path string, pr ParquetReader, columns ...string) (*Table, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	switch format {
	case FormatCSV:
		t, err := ReadCSV(f)
		if err != nil || len(columns) == 0 {
			return t, err
		}
		return t.Project(columns...)
	default:
		if pr == ParquetArrow {
			return ReadParquetArrow(ctx, f, columns...)
		}
		st, err := f.Stat()
		if err != nil {
			return nil, err
		}
		return ReadParquet(f, st.Size(), columns...)
	}
}

// Save writes the table to disk in the format implied by the extension.
func Save(path string, t *Table) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatCSV:
		err = WriteCSV(f, t)
	default:
		err = WriteParquet(f, t)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
