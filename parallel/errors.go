package parallel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfig is wrapped by every error Map and Bind return for a call that can
// never work as written. These are reported before any worker starts.
var ErrConfig = errors.New("invalid parallel map configuration")

var (
	// ErrNilTask is returned when Map is given no task.
	ErrNilTask = fmt.Errorf("%w: task is nil", ErrConfig)

	// ErrNotIterable is returned when the payload source has nothing to iterate.
	ErrNotIterable = fmt.Errorf("%w: items should be iterable", ErrConfig)

	// ErrTotalRequired is returned when the item count cannot be measured and
	// no total was declared.
	ErrTotalRequired = fmt.Errorf("%w: need total", ErrConfig)

	// ErrTooFewItems is returned when the effective item count is not above 1.
	ErrTooFewItems = fmt.Errorf("%w: too few items", ErrConfig)

	// ErrUnknownParam is returned when the payload parameter is not declared
	// by the target function.
	ErrUnknownParam = fmt.Errorf("%w: unknown payload parameter", ErrConfig)

	// ErrArityMismatch is returned when the fixed arguments plus the payload do
	// not cover the declared parameters exactly.
	ErrArityMismatch = fmt.Errorf("%w: argument count mismatch", ErrConfig)

	// ErrNotFunc is returned when Bind is given something that is not a function.
	ErrNotFunc = fmt.Errorf("%w: target is not a function", ErrConfig)

	// ErrSignatureMismatch is returned when the declared signature does not
	// describe the target function's parameters or results.
	ErrSignatureMismatch = fmt.Errorf("%w: signature mismatch", ErrConfig)
)

// ErrInvocation marks a call whose arguments do not fit the target function.
// Map reports such failures as FailureInvocation.
var ErrInvocation = errors.New("invalid invocation")

// ErrInvalidChunkSize describes a chunk size request that could not be used.
// Map logs it as a warning and falls back to the automatic chunk size.
var ErrInvalidChunkSize = errors.New("invalid chunk size")

// InvocationError reports a bound task being invoked with arguments that do
// not fit its target function.
type InvocationError struct {
	Func   string
	Args   []any
	Kwargs Kwargs
	Reason string
}

// Error implements the error interface
func (e *InvocationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: make sure that args and kwargs provided are valid for %s function", ErrInvocation, e.Func)
	fmt.Fprintf(&b, " (args=%v, kwargs=%v): %s", e.Args, e.Kwargs, e.Reason)
	return b.String()
}

// Unwrap returns ErrInvocation so callers can match with errors.Is
func (e *InvocationError) Unwrap() error {
	return ErrInvocation
}
