package sortengine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Measure runs fn and reports its wall-clock duration from the monotonic
// clock. A failed run reports no duration.
func Measure(fn func() error) (time.Duration, error) {
	start := time.Now()
	if err := fn(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// Result describes one completed sort.
type Result struct {
	RunID     uuid.UUID
	Column    string
	Algorithm Algorithm
	Rows      int
	Elapsed   time.Duration
}

func (r Result) Seconds() float64 {
	return r.Elapsed.Seconds()
}

func (r Result) String() string {
	return fmt.Sprintf("Time taken: %.4f seconds", r.Seconds())
}
