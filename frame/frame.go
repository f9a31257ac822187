// Package frame holds small tabular helpers: a row-oriented Frame, value
// frequency filters and a dummy frame for experiments.
package frame

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mitchellh/copystructure"
	"github.com/samber/lo"
)

var (
	// ErrColumnNotFound is returned when a frame has no column of that name.
	ErrColumnNotFound = errors.New("column not in frame")

	// ErrUncomparable is returned when a column holds values that cannot be
	// counted, such as slices or maps.
	ErrUncomparable = errors.New("column value is not comparable")
)

// Row maps column names to values. A missing or nil value is treated as absent.
type Row map[string]any

// Frame is a table of rows sharing a set of columns.
type Frame struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (f Frame) Len() int {
	return len(f.Rows)
}

// AssertColumn checks that f has a column called name.
func AssertColumn(f Frame, name string) error {
	if !lo.Contains(f.Columns, name) {
		return fmt.Errorf("%w: %s\ncolumns=%v", ErrColumnNotFound, name, f.Columns)
	}
	return nil
}

// Column returns the values of a column, with nil for rows that lack it.
func (f Frame) Column(name string) ([]any, error) {
	if err := AssertColumn(f, name); err != nil {
		return nil, err
	}
	return lo.Map(f.Rows, func(r Row, _ int) any { return r[name] }), nil
}

// MostFrequent returns the value that occurs most often in values. Ties go to
// the value seen first. It reports false for an empty slice.
func MostFrequent[T comparable](values []T) (T, bool) {
	var best T
	if len(values) == 0 {
		return best, false
	}

	counts := make(map[T]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	bestCount := 0
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best, true
}

// MostFrequent returns the most frequent non-nil value of a column. It
// reports false when the column holds no values.
func (f Frame) MostFrequent(column string) (any, bool, error) {
	values, err := f.Column(column)
	if err != nil {
		return nil, false, err
	}
	present, _, err := countValues(column, values)
	if err != nil {
		return nil, false, err
	}
	v, ok := MostFrequent(present)
	return v, ok, nil
}

// FilterValuesAboveFreq keeps the rows whose value in column occurs at least
// freq times in that column. Rows where the value is nil are dropped. The
// returned frame holds deep copies of the kept rows.
func FilterValuesAboveFreq(f Frame, column string, freq int) (Frame, error) {
	values, err := f.Column(column)
	if err != nil {
		return Frame{}, err
	}
	_, counts, err := countValues(column, values)
	if err != nil {
		return Frame{}, err
	}

	kept := lo.Filter(f.Rows, func(r Row, _ int) bool {
		v := r[column]
		return v != nil && counts[v] >= freq
	})

	copied, err := copystructure.Copy(kept)
	if err != nil {
		return Frame{}, fmt.Errorf("copy rows: %w", err)
	}
	return Frame{
		Columns: append([]string(nil), f.Columns...),
		Rows:    copied.([]Row),
	}, nil
}

// countValues drops nil values and counts the rest. Values whose dynamic type
// is comparable can still fail to hash, such as a struct with an interface
// field holding a slice; both cases are reported as ErrUncomparable.
func countValues(column string, values []any) (present []any, counts map[any]int, err error) {
	present = lo.Filter(values, func(v any, _ int) bool { return v != nil })
	for _, v := range present {
		if !reflect.TypeOf(v).Comparable() {
			return nil, nil, fmt.Errorf("%w: %s holds %T", ErrUncomparable, column, v)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			present, counts = nil, nil
			err = fmt.Errorf("%w: %s: %v", ErrUncomparable, column, r)
		}
	}()

	counts = make(map[any]int, len(present))
	for _, v := range present {
		counts[v]++
	}
	return present, counts, nil
}
