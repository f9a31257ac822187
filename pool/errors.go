package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrWorkerPanic is wrapped by the error reported for a task that panicked.
	ErrWorkerPanic = errors.New("worker panic")
)

// TaskError represents an error that occurred while processing one task.
type TaskError struct {
	Index int
	Err   error
}

// Error implements the error interface
func (e *TaskError) Error() string {
	return fmt.Sprintf("task %d failed: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error
func (e *TaskError) Unwrap() error {
	return e.Err
}

// NewTaskError creates a new TaskError
func NewTaskError(index int, err error) error {
	return &TaskError{
		Index: index,
		Err:   err,
	}
}

// TaskIndex returns the index of the failing task if err wraps a TaskError.
func TaskIndex(err error) (int, bool) {
	var taskErr *TaskError
	if errors.As(err, &taskErr) {
		return taskErr.Index, true
	}
	return 0, false
}
