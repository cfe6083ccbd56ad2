package sortengine

import (
	"fmt"

	recordtable "tablesort/record-table"
)

// DefaultThreshold is the range width below which HybridSort switches to
// insertion sort.
const DefaultThreshold = 10

// HybridSort is QuickSort that hands any range with high-low < threshold to
// insertion sort. threshold 1 behaves exactly like QuickSort and a threshold
// of at least the row count behaves exactly like InsertionSort.
func HybridSort(t *recordtable.Table, column string, threshold int) error {
	if threshold <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	cmp, err := Resolve(t, column)
	if err != nil {
		return err
	}
	return hybridSort(t.Rows, cmp, threshold)
}

func hybridSort(rows []recordtable.Row, cmp Comparator, threshold int) error {
	stack := pushSpan(nil, span{0, len(rows) - 1})
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.high-s.low < threshold {
			if err := insertionSort(rows[s.low:s.high+1], cmp); err != nil {
				return err
			}
			continue
		}
		p, err := partition(rows, s.low, s.high, cmp)
		if err != nil {
			return err
		}
		stack = pushHalves(stack, span{s.low, p - 1}, span{p + 1, s.high})
	}
	return nil
}

// InsertionSort orders the table by column. It is stable and linear on input
// that is already nearly sorted.
func InsertionSort(t *recordtable.Table, column string) error {
	cmp, err := Resolve(t, column)
	if err != nil {
		return err
	}
	return insertionSort(t.Rows, cmp)
}

func insertionSort(rows []recordtable.Row, cmp Comparator) error {
	for i := 1; i < len(rows); i++ {
		key := rows[i]
		j := i - 1
		for j >= 0 {
			c, err := cmp(rows[j], key)
			if err != nil {
				rows[j+1] = key
				return err
			}
			if c <= 0 {
				break
			}
			rows[j+1] = rows[j]
			j--
		}
		rows[j+1] = key
	}
	return nil
}
