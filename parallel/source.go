package parallel

import (
	"iter"
	"slices"
)

// Source is the payload collection Map iterates. A source built from a slice
// has a measurable length and random access to its last item; sequences and
// channels have neither, so Map needs WithTotal for them.
type Source[T any] struct {
	seq  iter.Seq[T]
	size int
	last func() (T, bool)
}

// FromSlice returns a source over items.
func FromSlice[T any](items []T) Source[T] {
	return Source[T]{
		seq:  slices.Values(items),
		size: len(items),
		last: func() (T, bool) {
			if len(items) == 0 {
				var zero T
				return zero, false
			}
			return items[len(items)-1], true
		},
	}
}

// FromSeq returns a source over a lazily produced sequence. The sequence is
// consumed once, from a single goroutine.
func FromSeq[T any](seq iter.Seq[T]) Source[T] {
	return Source[T]{seq: seq, size: -1}
}

// FromChan returns a source that receives from ch until it is closed. If Map
// fails early, items still in the channel are left unread.
func FromChan[T any](ch <-chan T) Source[T] {
	if ch == nil {
		return Source[T]{size: -1}
	}
	return Source[T]{
		seq: func(yield func(T) bool) {
			for item := range ch {
				if !yield(item) {
					return
				}
			}
		},
		size: -1,
	}
}

// Len reports the number of items when it can be measured without consuming
// the source.
func (s Source[T]) Len() (int, bool) {
	if s.seq == nil || s.size < 0 {
		return 0, false
	}
	return s.size, true
}

// All returns the items as a sequence.
func (s Source[T]) All() iter.Seq[T] {
	return s.seq
}

func (s Source[T]) iterable() bool {
	return s.seq != nil
}

// lastItem returns the final item for sources with random access.
func (s Source[T]) lastItem() (T, bool) {
	if s.last == nil {
		var zero T
		return zero, false
	}
	return s.last()
}
