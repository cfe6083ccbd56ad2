package sortengine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	recordtable "tablesort/record-table"
)

type Algorithm int

const (
	PartitionExchange Algorithm = iota
	Merge
	Hybrid
	Insertion
)

var algorithmNames = map[Algorithm]string{
	PartitionExchange: "quicksort",
	Merge:             "mergesort",
	Hybrid:            "hybrid",
	Insertion:         "insertion",
}

var algorithmLabels = map[Algorithm]string{
	PartitionExchange: "QuickSort",
	Merge:             "MergeSort",
	Hybrid:            "Hybrid Sort (QuickSort + Insertion Sort)",
	Insertion:         "Insertion Sort",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Label is the human readable name shown next to results.
func (a Algorithm) Label() string {
	if label, ok := algorithmLabels[a]; ok {
		return label
	}
	return a.String()
}

// ParseAlgorithm accepts a short name or a display label, case insensitive.
func ParseAlgorithm(s string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "quicksort", "quick", "partition-exchange":
		return PartitionExchange, nil
	case "mergesort", "merge":
		return Merge, nil
	case "hybrid", "hybridsort":
		return Hybrid, nil
	case "insertion", "insertionsort":
		return Insertion, nil
	}
	for a, label := range algorithmLabels {
		if strings.EqualFold(label, key) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Request selects the column and algorithm for one sort. Threshold applies to
// Hybrid only and must be positive. StableMerge applies to Merge only.
type Request struct {
	Column      string
	Algorithm   Algorithm
	Threshold   int
	StableMerge bool
}

func (r Request) sorter() (func(*recordtable.Table, string) error, error) {
	switch r.Algorithm {
	case PartitionExchange:
		return QuickSort, nil
	case Merge:
		var opts []MergeOption
		if r.StableMerge {
			opts = append(opts, WithStableMerge())
		}
		return func(t *recordtable.Table, column string) error {
			return MergeSort(t, column, opts...)
		}, nil
	case Hybrid:
		threshold := r.Threshold
		if threshold <= 0 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
		}
		return func(t *recordtable.Table, column string) error {
			return HybridSort(t, column, threshold)
		}, nil
	case Insertion:
		return InsertionSort, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, r.Algorithm)
	}
}

// Run sorts t in place as requested and times the sort. On failure t must be
// treated as invalid: it holds the same rows in an unspecified order.
func Run(t *recordtable.Table, req Request) (Result, error) {
	sortFn, err := req.sorter()
	if err != nil {
		return Result{}, err
	}
	elapsed, err := Measure(func() error {
		return sortFn(t, req.Column)
	})
	if err != nil {
		return Result{}, fmt.Errorf("%s by %q: %w", req.Algorithm, req.Column, err)
	}

	res := Result{
		RunID:     uuid.New(),
		Column:    req.Column,
		Algorithm: req.Algorithm,
		Rows:      t.Len(),
		Elapsed:   elapsed,
	}
	slog.Debug("Sorted table",
		slog.String("runID", res.RunID.String()),
		slog.String("algorithm", req.Algorithm.String()),
		slog.String("column", req.Column),
		slog.Int("rows", res.Rows),
		slog.Duration("elapsed", elapsed))
	return res, nil
}
