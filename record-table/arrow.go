package recordtable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"
	"github.com/apache/arrow/go/v15/arrow/memory"
	pq "github.com/apache/arrow/go/v15/parquet"
	"github.com/apache/arrow/go/v15/parquet/file"
	"github.com/apache/arrow/go/v15/parquet/pqarrow"
)

const arrowBatchSize = 1024 * 8

// ReadParquetArrow loads a parquet file through the Arrow record reader.
// It produces the same table as ReadParquet for flat files; columns are
// matched by leaf path, case insensitive.
func ReadParquetArrow(ctx context.Context, r pq.ReaderAtSeeker, columns ...string) (*Table, error) {
	fileReader, err := file.NewParquetReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open parquet file: %v", ErrMalformedInput, err)
	}
	defer func() {
		_ = fileReader.Close()
	}()

	arrowReader, err := pqarrow.NewFileReader(
		fileReader,
		pqarrow.ArrowReadProperties{BatchSize: arrowBatchSize},
		memory.NewGoAllocator(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	var colIdx []int
	if len(columns) > 0 {
		colIdx, err = leafIndices(fileReader, columns)
		if err != nil {
			return nil, err
		}
	}

	rdr, err := arrowReader.GetRecordReader(ctx, colIdx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create record reader: %w", err)
	}
	defer rdr.Release()

	var (
		schema Schema
		kept   []int
	)
	for i, f := range rdr.Schema().Fields() {
		typ, ok := dataTypeOfArrow(f.Type)
		if !ok {
			continue
		}
		schema.Fields = append(schema.Fields, Field{Name: f.Name, Type: typ})
		kept = append(kept, i)
	}

	var rows []Row
	for rdr.Next() {
		rec := rdr.Record()
		n := int(rec.NumRows())
		for ri := 0; ri < n; ri++ {
			row := make(Row, len(kept))
			for k, ci := range kept {
				row[k] = arrowValue(rec.Column(ci), ri)
			}
			rows = append(rows, row)
		}
	}
	// the record reader reports io.EOF once the last batch has been read
	if err := rdr.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read arrow records: %w", err)
	}
	t, err := New(schema, rows)
	if err != nil || len(columns) == 0 {
		return t, err
	}
	// the record reader yields columns in file order
	return t.Project(columns...)
}

func leafIndices(fr *file.Reader, columns []string) ([]int, error) {
	sc := fr.MetaData().Schema
	idx := make([]int, 0, len(columns))
	for _, name := range columns {
		found := -1
		for i := 0; i < sc.NumColumns(); i++ {
			if strings.EqualFold(sc.Column(i).Path(), name) {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("column %q: %w", name, ErrColumnNotInSchema)
		}
		idx = append(idx, found)
	}
	return idx, nil
}

func dataTypeOfArrow(dt arrow.DataType) (DataType, bool) {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32:
		return Int64, true
	case arrow.FLOAT32, arrow.FLOAT64:
		return Float64, true
	case arrow.STRING, arrow.LARGE_STRING, arrow.BINARY:
		return String, true
	case arrow.BOOL:
		return Bool, true
	default:
		return String, false
	}
}

func arrowValue(arr arrow.Array, i int) any {
	if arr.IsNull(i) {
		return nil
	}
	switch a := arr.(type) {
	case *array.Int8:
		return Normalize(a.Value(i))
	case *array.Int16:
		return Normalize(a.Value(i))
	case *array.Int32:
		return Normalize(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return Normalize(a.Value(i))
	case *array.Uint16:
		return Normalize(a.Value(i))
	case *array.Uint32:
		return Normalize(a.Value(i))
	case *array.Float32:
		return Normalize(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Binary:
		return string(a.Value(i))
	case *array.Boolean:
		return a.Value(i)
	default:
		return nil
	}
}
