package sortengine

import (
	"math"

	"golang.org/x/exp/constraints"

	recordtable "tablesort/record-table"
)

// Comparator orders two rows by a single column, returning -1, 0 or 1.
type Comparator func(a, b recordtable.Row) (int, error)

// Resolve builds the comparator for column. The column is looked up once in
// the schema; each comparison still checks that both rows are wide enough.
//
// Numbers compare numerically across int64 and float64, with NaN before every
// other number. Strings compare bytewise and false sorts before true. A nil
// cell sorts after every non-nil value. Any other pairing fails with
// ErrIncomparableValues.
func Resolve(t *recordtable.Table, column string) (Comparator, error) {
	idx, ok := t.Schema.Index(column)
	if !ok {
		return nil, &KeyNotFoundError{Column: column}
	}
	return func(a, b recordtable.Row) (int, error) {
		if idx >= len(a) || idx >= len(b) {
			return 0, &KeyNotFoundError{Column: column}
		}
		return compareValues(column, a[idx], b[idx])
	}, nil
}

func compareValues(column string, a, b any) (int, error) {
	a, b = recordtable.Normalize(a), recordtable.Normalize(b)
	switch x := a.(type) {
	case nil:
		if b == nil {
			return 0, nil
		}
		if isScalar(b) {
			return 1, nil
		}
	case int64:
		switch y := b.(type) {
		case int64:
			return compareOrdered(x, y), nil
		case float64:
			return compareIntFloat(x, y), nil
		case nil:
			return -1, nil
		}
	case float64:
		switch y := b.(type) {
		case float64:
			return compareOrdered(x, y), nil
		case int64:
			return -compareIntFloat(y, x), nil
		case nil:
			return -1, nil
		}
	case string:
		switch y := b.(type) {
		case string:
			return compareOrdered(x, y), nil
		case nil:
			return -1, nil
		}
	case bool:
		switch y := b.(type) {
		case bool:
			return compareBool(x, y), nil
		case nil:
			return -1, nil
		}
	}
	return 0, &IncomparableValuesError{Column: column, Left: a, Right: b}
}

// compareIntFloat orders an int64 against a float64 without rounding the int,
// which float64(i) would do above 2^53.
func compareIntFloat(i int64, f float64) int {
	switch {
	case math.IsNaN(f):
		return 1
	case f >= 1<<63:
		return -1
	case f < -1<<63:
		return 1
	}
	fl := math.Floor(f)
	if c := compareOrdered(i, int64(fl)); c != 0 {
		return c
	}
	if fl < f {
		return -1
	}
	return 0
}

func isScalar(v any) bool {
	switch v.(type) {
	case int64, float64, string, bool:
		return true
	default:
		return false
	}
}

func compareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	}
	// NaN is unordered; place it first and treat two NaNs as equal.
	aNaN, bNaN := isNaN(a), isNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return -1
	default:
		return 1
	}
}

func isNaN[T constraints.Ordered](x T) bool {
	return x != x
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
