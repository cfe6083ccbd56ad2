package recordtable

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedInput    = errors.New("malformed input")
	ErrUnsupportedFormat = errors.New("unsupported table format")
	ErrColumnNotInSchema = errors.New("column not in schema")
)

type DataType int

const (
	String DataType = iota
	Int64
	Float64
	Bool
)

func (d DataType) String() string {
	switch d {
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case Bool:
		return "bool"
	default:
		return "string"
	}
}

type Field struct {
	Name string
	Type DataType
}

type Schema struct {
	Fields []Field
}

// Row holds one record, positionally aligned with Schema.Fields.
type Row []any

// Table is an ordered sequence of rows sharing one schema. Sorting reorders
// Rows in place and never touches row contents.
type Table struct {
	Schema Schema
	Rows   []Row
}

// New builds a table and rejects rows whose width differs from the schema.
func New(schema Schema, rows []Row) (*Table, error) {
	for i, r := range rows {
		if len(r) != len(schema.Fields) {
			return nil, fmt.Errorf("%w: row %d has %d values, schema has %d columns",
				ErrMalformedInput, i, len(r), len(schema.Fields))
		}
	}
	return &Table{Schema: schema, Rows: rows}, nil
}

func (t *Table) Len() int { return len(t.Rows) }

// Clone copies the row slice and each row so the copy can be reordered or
// edited independently.
func (t *Table) Clone() *Table {
	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = append(Row(nil), r...)
	}
	return &Table{Schema: t.Schema.Clone(), Rows: rows}
}

// Project narrows the table to the named columns, in request order. Names
// match case insensitively; an unknown name fails with ErrColumnNotInSchema.
func (t *Table) Project(names ...string) (*Table, error) {
	schema := t.Schema.Clone()
	schema.KeepFields(names...)
	if len(schema.Fields) != len(names) {
		return nil, fmt.Errorf("projection %v: %w", names, ErrColumnNotInSchema)
	}
	idx := make([]int, len(schema.Fields))
	for i, f := range schema.Fields {
		idx[i], _ = t.Schema.Index(f.Name)
	}
	rows := make([]Row, len(t.Rows))
	for ri, r := range t.Rows {
		row := make(Row, len(idx))
		for i, ci := range idx {
			if ci < len(r) {
				row[i] = r[ci]
			}
		}
		rows[ri] = row
	}
	return &Table{Schema: schema, Rows: rows}, nil
}

// Index returns the position of the column with exactly this name.
func (s Schema) Index(name string) (int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}

func (s Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func (s Schema) Clone() Schema {
	return Schema{Fields: append([]Field(nil), s.Fields...)}
}

// KeepFields prunes the schema to the requested names, in request order.
// Matching is case insensitive.
func (s *Schema) KeepFields(names ...string) {
	var wanted []Field
	for _, name := range names {
		for _, f := range s.Fields {
			if strings.EqualFold(name, f.Name) {
				wanted = append(wanted, f)
			}
		}
	}
	s.Fields = wanted
}

func (s Schema) String() string {
	var sb strings.Builder
	sb.WriteString("Schema:\n")
	for i, f := range s.Fields {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i, f.Name, f.Type))
	}
	return sb.String()
}
