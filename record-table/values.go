package recordtable

import (
	"fmt"
	"math"
	"strconv"
)

// Normalize widens a scalar to the canonical cell representation:
// int64, float64, string, bool or nil.
func Normalize(val any) any {
	switch v := val.(type) {
	case nil:
		return nil
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	case []byte:
		return string(v)
	case string, bool:
		return v
	default:
		return v
	}
}

// FormatValue renders a cell the way it is written to CSV.
func FormatValue(val any) string {
	switch v := Normalize(val).(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseCell tries integer, then float, then falls back to the raw text.
func parseCell(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, ok := parseFinite(s); ok {
		return f
	}
	return s
}

// parseFinite parses a float but rejects NaN and infinities, so words such as
// "nan" or "Inf" stay text.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
