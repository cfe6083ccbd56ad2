package sortengine

import (
	recordtable "tablesort/record-table"
)

// span is an inclusive index range [low, high] awaiting partitioning.
type span struct {
	low, high int
}

func (s span) size() int { return s.high - s.low + 1 }

// QuickSort orders the table by column with partition-exchange sort using the
// last element of each range as pivot. Rows equal to the pivot move to its
// left, so the sort is not stable. Already ordered input is the worst case.
func QuickSort(t *recordtable.Table, column string) error {
	cmp, err := Resolve(t, column)
	if err != nil {
		return err
	}
	return quickSort(t.Rows, cmp)
}

// quickSort walks pending ranges from an explicit stack instead of recursing.
// The larger half is pushed first so the stack stays logarithmic.
func quickSort(rows []recordtable.Row, cmp Comparator) error {
	stack := pushSpan(nil, span{0, len(rows) - 1})
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		p, err := partition(rows, s.low, s.high, cmp)
		if err != nil {
			return err
		}
		stack = pushHalves(stack, span{s.low, p - 1}, span{p + 1, s.high})
	}
	return nil
}

// partition places rows[high] at its final position p within [low, high] so
// that every row left of p compares <= pivot and every row right of it
// compares > pivot. It only swaps, so a failed comparison leaves a permutation.
func partition(rows []recordtable.Row, low, high int, cmp Comparator) (int, error) {
	pivot := rows[high]
	i := low - 1
	for j := low; j < high; j++ {
		c, err := cmp(rows[j], pivot)
		if err != nil {
			return 0, err
		}
		if c <= 0 {
			i++
			rows[i], rows[j] = rows[j], rows[i]
		}
	}
	rows[i+1], rows[high] = rows[high], rows[i+1]
	return i + 1, nil
}

// pushHalves pushes the two halves of a partitioned range, larger first.
func pushHalves(stack []span, left, right span) []span {
	if left.size() < right.size() {
		left, right = right, left
	}
	return pushSpan(pushSpan(stack, left), right)
}

// pushSpan drops ranges of fewer than two rows; they are already sorted.
func pushSpan(stack []span, s span) []span {
	if s.low >= s.high {
		return stack
	}
	return append(stack, s)
}
