package sortengine

import (
	"errors"
	"fmt"
)

var (
	ErrKeyNotFound        = errors.New("key not found")
	ErrIncomparableValues = errors.New("incomparable values")
	ErrInvalidThreshold   = errors.New("threshold must be a positive integer")
	ErrUnknownAlgorithm   = errors.New("unknown sort algorithm")
)

// KeyNotFoundError reports a sort column that is absent from the schema or
// from a row.
type KeyNotFoundError struct {
	Column string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrKeyNotFound
}

// IncomparableValuesError reports two cells of the sort column that have no
// common ordering, e.g. a number and a string.
type IncomparableValuesError struct {
	Column      string
	Left, Right any
}

func (e *IncomparableValuesError) Error() string {
	return fmt.Sprintf("column %q: cannot compare %T(%v) with %T(%v)",
		e.Column, e.Left, e.Left, e.Right, e.Right)
}

func (e *IncomparableValuesError) Is(target error) bool {
	return target == ErrIncomparableValues
}
