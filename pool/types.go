package pool

import "context"

// ProcessFunc is a function type that defines how individual tasks are processed in the worker pool.
// It takes a context for cancellation control and a task of type T, returning a result of type R.
// If processing fails, it should return an error which will halt further processing.
//
// Type parameters:
//   - T: The type of input task to be processed
//   - R: The type of result produced after processing
type ProcessFunc[T any, R any] func(ctx context.Context, task T) (R, error)

// Result represents the outcome of processing a single task in the worker pool.
//
// Fields:
//   - Value: The result produced by processing the task
//   - Index: The position of the task in the input sequence, used to restore order
type Result[R any] struct {
	Value R
	Index int
}

// Order selects how a batch's results are collected.
type Order int

const (
	// Ordered collects results so that results[i] belongs to the i-th task.
	Ordered Order = iota

	// Unordered collects results as workers complete them.
	Unordered
)

func (o Order) String() string {
	switch o {
	case Ordered:
		return "ordered"
	case Unordered:
		return "unordered"
	}
	return "unknown"
}

// chunk is a contiguous run of tasks handed to a single worker.
// start is the index of tasks[0] in the input sequence.
type chunk[T any] struct {
	start int
	tasks []T
}
