package parallel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(value int, sq bool) int {
	if sq {
		return value * value
	}
	return value
}

func TestBind(t *testing.T) {
	ctx := context.Background()

	t.Run("keyword argument", func(t *testing.T) {
		task, err := Bind[int, int]("square", square, Signature{"value", "sq"}, "value", nil, Kwargs{"sq": true})
		require.NoError(t, err)

		got, err := task.Call(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 49, got)
		assert.Equal(t, "square", task.Name())
	})

	t.Run("positional argument before payload", func(t *testing.T) {
		scale := func(factor, value int) int { return factor * value }
		task, err := Bind[int, int]("scale", scale, Signature{"factor", "value"}, "value", []any{3}, nil)
		require.NoError(t, err)

		got, err := task.Call(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, 15, got)
	})

	t.Run("leading context and error result", func(t *testing.T) {
		var seen context.Context
		parse := func(ctx context.Context, text string, base int) (int64, error) {
			seen = ctx
			var n int64
			_, err := fmt.Sscanf(text, "%d", &n)
			return n * int64(base), err
		}
		task, err := Bind[string, int64]("parse", parse, Signature{"text", "base"}, "text", nil, Kwargs{"base": 2})
		require.NoError(t, err)

		got, err := task.Call(ctx, "21")
		require.NoError(t, err)
		assert.Equal(t, int64(42), got)
		assert.Equal(t, ctx, seen)

		_, err = task.Call(ctx, "x")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrInvocation))
	})

	t.Run("nil fixed argument for pointer parameter", func(t *testing.T) {
		orDefault := func(value int, fallback *int) int {
			if fallback != nil {
				return *fallback
			}
			return value
		}
		task, err := Bind[int, int]("orDefault", orDefault, Signature{"value", "fallback"}, "value", nil, Kwargs{"fallback": nil})
		require.NoError(t, err)

		got, err := task.Call(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, got)
	})

	t.Run("interface result", func(t *testing.T) {
		task, err := Bind[int, any]("square", square, Signature{"value", "sq"}, "value", []any{}, Kwargs{"sq": false})
		require.NoError(t, err)

		got, err := task.Call(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, got)
	})
}

func TestBindConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		fn      any
		params  Signature
		payload string
		args    []any
		kwargs  Kwargs
		want    error
	}{
		{
			name:    "unknown payload name",
			fn:      square,
			params:  Signature{"value", "sq"},
			payload: "x",
			kwargs:  Kwargs{"sq": true},
			want:    ErrUnknownParam,
		},
		{
			name:    "too few fixed arguments",
			fn:      func(a, b, c int) int { return a + b + c },
			params:  Signature{"a", "b", "c"},
			payload: "c",
			args:    []any{1},
			want:    ErrArityMismatch,
		},
		{
			name:    "too many fixed arguments",
			fn:      square,
			params:  Signature{"value", "sq"},
			payload: "value",
			args:    []any{1},
			kwargs:  Kwargs{"sq": true},
			want:    ErrArityMismatch,
		},
		{
			name:    "not a function",
			fn:      42,
			params:  Signature{"value"},
			payload: "value",
			want:    ErrNotFunc,
		},
		{
			name:    "nil function",
			fn:      nil,
			params:  Signature{"value"},
			payload: "value",
			want:    ErrNotFunc,
		},
		{
			name:    "declared parameters do not match",
			fn:      func(a int) int { return a },
			params:  Signature{"a", "b"},
			payload: "a",
			kwargs:  Kwargs{"b": 1},
			want:    ErrSignatureMismatch,
		},
		{
			name:    "result type not assignable",
			fn:      func(a int) string { return "" },
			params:  Signature{"a"},
			payload: "a",
			want:    ErrSignatureMismatch,
		},
		{
			name:    "second result not an error",
			fn:      func(a int) (int, int) { return a, a },
			params:  Signature{"a"},
			payload: "a",
			want:    ErrSignatureMismatch,
		},
		{
			name:    "no result",
			fn:      func(a int) {},
			params:  Signature{"a"},
			payload: "a",
			want:    ErrSignatureMismatch,
		},
		{
			name:    "variadic",
			fn:      func(a ...int) int { return len(a) },
			params:  Signature{"a"},
			payload: "a",
			want:    ErrSignatureMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := Bind[int, int]("fn", tt.fn, tt.params, tt.payload, tt.args, tt.kwargs)
			require.Error(t, err)
			assert.Nil(t, task)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestBindInvocationErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []any
		kwargs Kwargs
		reason string
	}{
		{
			name:   "positional argument lands on payload",
			args:   []any{true},
			reason: `multiple values for argument "value"`,
		},
		{
			name:   "unknown keyword",
			kwargs: Kwargs{"square": true},
			reason: `unexpected keyword argument "square"`,
		},
		{
			name:   "keyword names the payload",
			kwargs: Kwargs{"value": 1},
			reason: `multiple values for argument "value"`,
		},
		{
			name:   "wrong argument type",
			kwargs: Kwargs{"sq": "yes"},
			reason: "string is not assignable",
		},
		{
			name:   "nil for value parameter",
			kwargs: Kwargs{"sq": nil},
			reason: "nil is not a valid bool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := Bind[int, int]("square", square, Signature{"value", "sq"}, "value", tt.args, tt.kwargs)
			require.NoError(t, err)

			_, err = task.Call(context.Background(), 2)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvocation)
			assert.NotErrorIs(t, err, ErrConfig)

			var invErr *InvocationError
			require.True(t, errors.As(err, &invErr))
			assert.Equal(t, "square", invErr.Func)
			assert.Contains(t, invErr.Reason, tt.reason)
			assert.True(t, strings.Contains(err.Error(), "square function"))
		})
	}
}

func TestBindPayloadTypeMismatch(t *testing.T) {
	task, err := Bind[any, int]("square", square, Signature{"value", "sq"}, "value", nil, Kwargs{"sq": true})
	require.NoError(t, err)

	got, err := task.Call(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 9, got)

	_, err = task.Call(context.Background(), "3")
	assert.ErrorIs(t, err, ErrInvocation)
}

func TestFunc(t *testing.T) {
	task := Func("double", func(_ context.Context, n int) (int, error) { return n * 2, nil })

	got, err := task.Call(context.Background(), 21)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, "double", task.Name())
}
