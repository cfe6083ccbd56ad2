package sortengine

import (
	recordtable "tablesort/record-table"
)

type mergeConfig struct {
	stable bool
}

// MergeOption adjusts MergeSort.
type MergeOption func(*mergeConfig)

// WithStableMerge takes the left row first when two heads compare equal,
// which makes MergeSort stable. Without it the right row wins ties.
func WithStableMerge() MergeOption {
	return func(c *mergeConfig) {
		c.stable = true
	}
}

// MergeSort orders the table by column with top-down merge sort. It splits at
// len/2, sorts both halves and merges them through one auxiliary buffer.
// A left head is emitted only when strictly smaller than the right head
// unless WithStableMerge is given.
func MergeSort(t *recordtable.Table, column string, opts ...MergeOption) error {
	var cfg mergeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	cmp, err := Resolve(t, column)
	if err != nil {
		return err
	}
	buf := make([]recordtable.Row, len(t.Rows))
	return mergeSort(t.Rows, buf, cmp, cfg.stable)
}

func mergeSort(rows, buf []recordtable.Row, cmp Comparator, stable bool) error {
	if len(rows) <= 1 {
		return nil
	}
	mid := len(rows) / 2
	if err := mergeSort(rows[:mid], buf[:mid], cmp, stable); err != nil {
		return err
	}
	if err := mergeSort(rows[mid:], buf[mid:], cmp, stable); err != nil {
		return err
	}
	return merge(rows, buf[:len(rows)], mid, cmp, stable)
}

// merge combines the sorted runs rows[:mid] and rows[mid:]. On a comparison
// error rows is restored from buf so it remains a permutation of the input.
func merge(rows, buf []recordtable.Row, mid int, cmp Comparator, stable bool) error {
	copy(buf, rows)
	left, right := buf[:mid], buf[mid:]

	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		c, err := cmp(left[i], right[j])
		if err != nil {
			copy(rows, buf)
			return err
		}
		if c < 0 || (stable && c == 0) {
			rows[k] = left[i]
			i++
		} else {
			rows[k] = right[j]
			j++
		}
		k++
	}
	k += copy(rows[k:], left[i:])
	copy(rows[k:], right[j:])
	return nil
}
