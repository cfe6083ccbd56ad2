package recordtable

import (
	"fmt"
	"io"
	"reflect"

	"github.com/parquet-go/parquet-go"
)

// parquetColumn pairs a table field with the Go type used to read or write it
// through a runtime-generated row struct.
type parquetColumn struct {
	field  Field
	goType reflect.Type
}

// ReadParquet loads a parquet file through parquet-go. When columns are given
// only those are read (projection push-down, case insensitive); otherwise every
// flat column is loaded. Nested columns and physical types without a scalar
// mapping are skipped.
func ReadParquet(r io.ReaderAt, size int64, columns ...string) (*Table, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open parquet file: %v", ErrMalformedInput, err)
	}

	cols := parquetColumns(f.Schema())
	if len(columns) > 0 {
		cols, err = pruneColumns(cols, columns)
		if err != nil {
			return nil, err
		}
	}

	typ := rowStructOf(cols)
	reader := parquet.NewReader(f, parquet.SchemaOf(reflect.New(typ).Interface()))
	defer func() {
		_ = reader.Close()
	}()

	schema := Schema{Fields: make([]Field, len(cols))}
	for i, c := range cols {
		schema.Fields[i] = c.field
	}

	rows := make([]Row, 0, reader.NumRows())
	for {
		entry := reflect.New(typ)
		if err := reader.Read(entry.Interface()); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to read parquet row %d: %w", len(rows), err)
		}
		v := entry.Elem()
		row := make(Row, v.NumField())
		for i := 0; i < v.NumField(); i++ {
			fv := v.Field(i)
			if fv.IsNil() {
				continue
			}
			row[i] = Normalize(fv.Elem().Interface())
		}
		rows = append(rows, row)
	}
	return New(schema, rows)
}

// WriteParquet serializes the table with parquet-go. Every column is written
// as optional so nil cells survive a round trip.
func WriteParquet(w io.Writer, t *Table) error {
	cols := make([]parquetColumn, len(t.Schema.Fields))
	for i, f := range t.Schema.Fields {
		cols[i] = parquetColumn{field: f, goType: goTypeFor(f.Type)}
	}
	typ := rowStructOf(cols)

	pw := parquet.NewWriter(w, parquet.SchemaOf(reflect.New(typ).Interface()))
	for ri, row := range t.Rows {
		entry := reflect.New(typ)
		v := entry.Elem()
		for ci, c := range cols {
			if ci >= len(row) || row[ci] == nil {
				continue
			}
			rv := reflect.ValueOf(Normalize(row[ci]))
			if rv.Kind() != c.goType.Kind() {
				_ = pw.Close()
				return fmt.Errorf("row %d column %q: value %v is not %s", ri, c.field.Name, row[ci], c.field.Type)
			}
			p := reflect.New(c.goType)
			p.Elem().Set(rv)
			v.Field(ci).Set(p)
		}
		if err := pw.Write(entry.Interface()); err != nil {
			_ = pw.Close()
			return fmt.Errorf("failed to write parquet row %d: %w", ri, err)
		}
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

func parquetColumns(schema *parquet.Schema) []parquetColumn {
	var cols []parquetColumn
	for _, field := range schema.Fields() {
		if !field.Leaf() {
			continue
		}
		var (
			typ    DataType
			goType reflect.Type
		)
		switch field.Type().Kind() {
		case parquet.Boolean:
			typ, goType = Bool, reflect.TypeOf(false)
		case parquet.Int32:
			typ, goType = Int64, reflect.TypeOf(int32(0))
		case parquet.Int64:
			typ, goType = Int64, reflect.TypeOf(int64(0))
		case parquet.Float:
			typ, goType = Float64, reflect.TypeOf(float32(0))
		case parquet.Double:
			typ, goType = Float64, reflect.TypeOf(float64(0))
		case parquet.ByteArray:
			typ, goType = String, reflect.TypeOf("")
		default:
			continue
		}
		cols = append(cols, parquetColumn{
			field:  Field{Name: field.Name(), Type: typ},
			goType: goType,
		})
	}
	return cols
}

func pruneColumns(cols []parquetColumn, names []string) ([]parquetColumn, error) {
	schema := Schema{Fields: make([]Field, len(cols))}
	byName := make(map[string]parquetColumn, len(cols))
	for i, c := range cols {
		schema.Fields[i] = c.field
		byName[c.field.Name] = c
	}
	schema.KeepFields(names...)
	if len(schema.Fields) < len(names) {
		return nil, fmt.Errorf("projection %v: %w", names, ErrColumnNotInSchema)
	}
	out := make([]parquetColumn, len(schema.Fields))
	for i, f := range schema.Fields {
		out[i] = byName[f.Name]
	}
	return out, nil
}

func goTypeFor(t DataType) reflect.Type {
	switch t {
	case Int64:
		return reflect.TypeOf(int64(0))
	case Float64:
		return reflect.TypeOf(float64(0))
	case Bool:
		return reflect.TypeOf(false)
	default:
		return reflect.TypeOf("")
	}
}

// rowStructOf creates a struct type at run time whose fields carry parquet
// tags for each column. Fields are pointers so that nulls are representable.
func rowStructOf(cols []parquetColumn) reflect.Type {
	fields := make([]reflect.StructField, len(cols))
	for i, c := range cols {
		fields[i] = reflect.StructField{
			Name: fmt.Sprintf("Col%d", i),
			Type: reflect.PointerTo(c.goType),
			Tag:  reflect.StructTag(`parquet:"` + c.field.Name + `,optional"`),
		}
	}
	return reflect.StructOf(fields)
}
