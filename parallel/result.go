package parallel

import (
	"time"

	"github.com/utkarsh5026/boondh/pool"
)

// FailureKind classifies why a Map call produced no values.
type FailureKind int

const (
	// FailureNone means every item was processed.
	FailureNone FailureKind = iota
	// FailureInvocation means the task could not be invoked with its
	// arguments, for example a payload of the wrong type.
	FailureInvocation
	// FailureRuntime covers every other error, recovered panics and
	// cancellation included.
	FailureRuntime
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureInvocation:
		return "invocation"
	case FailureRuntime:
		return "runtime"
	default:
		return "unknown"
	}
}

// Result is the outcome of a Map call that got past configuration checks.
// Values holds one output per item when OK reports true and is nil otherwise.
type Result[R any] struct {
	Values  []R
	Err     error
	Failure FailureKind

	RunID     string
	Total     int
	Workers   int
	ChunkSize int
	Order     pool.Order
	Elapsed   time.Duration
}

// OK reports whether every item was processed.
func (r *Result[R]) OK() bool {
	return r.Failure == FailureNone
}

// Unwrap returns the values and the error that caused the failure, if any.
func (r *Result[R]) Unwrap() ([]R, error) {
	return r.Values, r.Err
}
