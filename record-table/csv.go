package recordtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV loads a table from comma separated text. The first record is the
// header; every following record must carry the same number of fields.
// Column types are inferred from the non-empty cells of each column.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	headers, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header line", ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: failed to read CSV headers: %v", ErrMalformedInput, err)
	}
	seen := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		if h == "" {
			return nil, fmt.Errorf("%w: empty column name in header", ErrMalformedInput)
		}
		if _, dup := seen[h]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformedInput, h)
		}
		seen[h] = struct{}{}
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		records = append(records, rec)
	}

	schema := Schema{Fields: make([]Field, len(headers))}
	for i, h := range headers {
		schema.Fields[i] = Field{Name: h, Type: inferColumnType(records, i)}
	}

	rows := make([]Row, len(records))
	for ri, rec := range records {
		row := make(Row, len(rec))
		for ci, cell := range rec {
			row[ci] = convertCell(cell, schema.Fields[ci].Type)
		}
		rows[ri] = row
	}
	return New(schema, rows)
}

func inferColumnType(records [][]string, col int) DataType {
	allInt, allFloat, nonEmpty := true, true, false
	for _, rec := range records {
		cell := strings.TrimSpace(rec[col])
		if cell == "" {
			continue
		}
		nonEmpty = true
		if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
			allInt = false
		}
		if _, ok := parseFinite(cell); !ok {
			allFloat = false
			break
		}
	}
	switch {
	case !nonEmpty:
		return String
	case allInt:
		return Int64
	case allFloat:
		return Float64
	default:
		return String
	}
}

func convertCell(cell string, typ DataType) any {
	trimmed := strings.TrimSpace(cell)
	switch typ {
	case Int64, Float64:
		if trimmed == "" {
			return nil
		}
		v := parseCell(trimmed)
		if typ == Float64 {
			if i, ok := v.(int64); ok {
				return float64(i)
			}
		}
		return v
	default:
		return cell
	}
}

// WriteCSV serializes the table with a header line, preserving column order.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Schema.Names()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	record := make([]string, len(t.Schema.Fields))
	for i, row := range t.Rows {
		for ci := range record {
			record[ci] = ""
			if ci < len(row) {
				record[ci] = FormatValue(row[ci])
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
