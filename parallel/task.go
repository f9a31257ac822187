package parallel

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"
)

// Task is the statically typed descriptor of the function Map applies to each
// payload item. Build one with Func or Bind; the zero Task is not usable.
type Task[T, R any] struct {
	name string
	call func(ctx context.Context, item T) (R, error)
}

// Func wraps a single-argument function as a Task. No signature checks are
// needed because the function already receives exactly one payload item.
//
// Return an error wrapping ErrInvocation from fn to have Map report the
// failure as FailureInvocation rather than FailureRuntime.
func Func[T, R any](name string, fn func(ctx context.Context, item T) (R, error)) *Task[T, R] {
	return &Task[T, R]{name: name, call: fn}
}

// Name returns the name used in logs and diagnostics.
func (t *Task[T, R]) Name() string {
	return t.name
}

// Call invokes the task on one payload item.
func (t *Task[T, R]) Call(ctx context.Context, item T) (R, error) {
	return t.call(ctx, item)
}

// Signature lists the parameter names of a target function in declaration
// order. Go does not keep parameter names at run time, so the caller states
// them. A leading context.Context parameter is not listed.
type Signature []string

// Kwargs binds fixed arguments to parameters by name.
type Kwargs map[string]any

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

// binding is a target function with its fixed arguments laid out by parameter
// position. payload is the position filled by each item.
type binding struct {
	name    string
	fn      reflect.Value
	hasCtx  bool
	params  Signature
	payload int
	args    []any
	kwargs  Kwargs
	slots   []reflect.Value
	shape   string
}

// Bind builds a Task from an arbitrary function whose parameters are named by
// params. Each invocation passes args positionally from the first parameter,
// kwargs by name, and the payload item as the parameter called payload. The
// target may take a leading context.Context and may return either R or
// (R, error).
//
// Bind reports configuration errors immediately: an unknown payload name, a
// wrong number of fixed arguments, or a signature that does not describe fn.
// Arguments that have the right count but do not fit (a positional argument
// landing on the payload slot, an unknown keyword, an unassignable value) are
// invocation errors; the task fails with ErrInvocation whenever it runs, and
// Map catches that in its smoke test.
//
// Example:
//
//	func square(value int, sq bool) int { ... }
//
//	task, err := parallel.Bind[int, int]("square", square,
//	    parallel.Signature{"value", "sq"}, "value", nil, parallel.Kwargs{"sq": true})
func Bind[T, R any](name string, fn any, params Signature, payload string, args []any, kwargs Kwargs) (*Task[T, R], error) {
	payloadIdx := slices.Index(params, payload)
	if payloadIdx < 0 {
		return nil, fmt.Errorf("%w: %s is not an argument of %s function that you provided, parameters are %v",
			ErrUnknownParam, payload, name, []string(params))
	}

	if len(args)+len(kwargs)+1 != len(params) {
		return nil, fmt.Errorf("%w: %d + %d + 1 != %d, parameters are %v",
			ErrArityMismatch, len(args), len(kwargs), len(params), []string(params))
	}

	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: %s is %T", ErrNotFunc, name, fn)
	}

	b := &binding{
		name:    name,
		fn:      v,
		params:  params,
		payload: payloadIdx,
		args:    args,
		kwargs:  kwargs,
	}
	if err := checkSignature[R](b); err != nil {
		return nil, err
	}
	b.prepare()

	return &Task[T, R]{
		name: name,
		call: func(ctx context.Context, item T) (R, error) {
			return invoke[R](ctx, b, item)
		},
	}, nil
}

// checkSignature verifies the declared parameters and the result types of the
// target function against its reflected type.
func checkSignature[R any](b *binding) error {
	ft := b.fn.Type()
	if ft.IsVariadic() {
		return fmt.Errorf("%w: %s is variadic", ErrSignatureMismatch, b.name)
	}

	in := ft.NumIn()
	b.hasCtx = in > 0 && ft.In(0) == contextType && in == len(b.params)+1
	if !b.hasCtx && in != len(b.params) {
		return fmt.Errorf("%w: %s takes %d parameters but %d are declared (%v)",
			ErrSignatureMismatch, b.name, in, len(b.params), []string(b.params))
	}

	rt := reflect.TypeFor[R]()
	switch ft.NumOut() {
	case 2:
		if !ft.Out(1).Implements(errorType) {
			return fmt.Errorf("%w: second result of %s must be an error, got %s",
				ErrSignatureMismatch, b.name, ft.Out(1))
		}
		fallthrough
	case 1:
		if !ft.Out(0).AssignableTo(rt) {
			return fmt.Errorf("%w: %s returns %s, not assignable to %s",
				ErrSignatureMismatch, b.name, ft.Out(0), rt)
		}
	default:
		return fmt.Errorf("%w: %s must return R or (R, error), it returns %d values",
			ErrSignatureMismatch, b.name, ft.NumOut())
	}
	return nil
}

// prepare lays the fixed arguments out by parameter position. Anything that
// does not fit is recorded in shape and reported on every invocation.
func (b *binding) prepare() {
	b.slots = make([]reflect.Value, len(b.params))
	filled := make([]bool, len(b.params))
	var problems []string

	place := func(idx int, label string, arg any) {
		if idx == b.payload || filled[idx] {
			problems = append(problems, fmt.Sprintf("got multiple values for argument %q", b.params[idx]))
			return
		}
		filled[idx] = true
		v, err := b.argValue(idx, arg)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", label, err))
			return
		}
		b.slots[idx] = v
	}

	for i, arg := range b.args {
		place(i, fmt.Sprintf("positional argument %d", i), arg)
	}

	// Sorted for a stable diagnostic.
	names := make([]string, 0, len(b.kwargs))
	for name := range b.kwargs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		idx := slices.Index(b.params, name)
		if idx < 0 {
			problems = append(problems, fmt.Sprintf("got an unexpected keyword argument %q", name))
			continue
		}
		place(idx, fmt.Sprintf("keyword argument %q", name), b.kwargs[name])
	}

	b.shape = strings.Join(problems, "; ")
}

// argValue converts a fixed argument or payload item for parameter idx.
func (b *binding) argValue(idx int, arg any) (reflect.Value, error) {
	pt := b.paramType(idx)
	if arg == nil {
		switch pt.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(pt), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a valid %s", pt)
	}

	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(pt) {
		return reflect.Value{}, fmt.Errorf("%s is not assignable to parameter %q of type %s", v.Type(), b.params[idx], pt)
	}
	return v, nil
}

func (b *binding) paramType(idx int) reflect.Type {
	if b.hasCtx {
		return b.fn.Type().In(idx + 1)
	}
	return b.fn.Type().In(idx)
}

func (b *binding) invocationError(reason string) error {
	return &InvocationError{Func: b.name, Args: b.args, Kwargs: b.kwargs, Reason: reason}
}

// invoke calls the bound function with item in the payload slot.
func invoke[R any](ctx context.Context, b *binding, item any) (R, error) {
	var zero R
	if b.shape != "" {
		return zero, b.invocationError(b.shape)
	}

	pv, err := b.argValue(b.payload, item)
	if err != nil {
		return zero, b.invocationError(fmt.Sprintf("payload: %v", err))
	}

	in := make([]reflect.Value, 0, len(b.slots)+1)
	if b.hasCtx {
		in = append(in, reflect.ValueOf(&ctx).Elem())
	}
	for i, slot := range b.slots {
		if i == b.payload {
			slot = pv
		}
		in = append(in, slot)
	}

	out := b.fn.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return zero, out[1].Interface().(error)
	}
	result, _ := out[0].Interface().(R)
	return result, nil
}
