package pool

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// WorkerPool is a generic worker pool that maps a ProcessFunc over a batch of
// tasks with a fixed number of workers.
//
// Type parameters:
//   - T: The input task type
//   - R: The result type
type WorkerPool[T any, R any] struct {
	workerCount int
	taskBuffer  int
	chunkSize   int
	rateLimiter *rate.Limiter

	beforeTaskStart func(T)
	onTaskEnd       func(T, R, error)
}

// NewWorkerPool creates a new worker pool with the given options.
//
// Default configuration:
//   - workerCount: number of CPUs available to the process
//   - taskBuffer: equal to workerCount
//   - chunkSize: 1
//
// Example:
//
//	wp := NewWorkerPool[int, string](
//	    WithWorkerCount(10),
//	    WithChunkSize(32),
//	)
func NewWorkerPool[T any, R any](opts ...WorkerPoolOption) *WorkerPool[T, R] {
	cfg := createConfig(opts...)

	var zeroT T
	var zeroR R
	expectedTaskType := fmt.Sprintf("%T", zeroT)
	expectedResultType := fmt.Sprintf("%T", zeroR)

	beforeTaskStart, onTaskEnd := checkfuncs[T, R](cfg, expectedTaskType, expectedResultType)

	return &WorkerPool[T, R]{
		workerCount:     cfg.workerCount,
		taskBuffer:      cfg.taskBuffer,
		chunkSize:       cfg.chunkSize,
		rateLimiter:     cfg.rateLimiter,
		beforeTaskStart: beforeTaskStart,
		onTaskEnd:       onTaskEnd,
	}
}

// WorkerCount returns the maximum number of workers a batch may use.
func (wp *WorkerPool[T, R]) WorkerCount() int {
	return wp.workerCount
}

// ChunkSize returns the number of tasks handed to a worker at once.
func (wp *WorkerPool[T, R]) ChunkSize() int {
	return wp.chunkSize
}

// Process executes tasks concurrently and returns results in input order.
// If any task fails, the remaining work is cancelled, no results are returned
// and the first error is reported.
//
// Example:
//
//	tasks := []int{1, 2, 3, 4, 5}
//	results, err := wp.Process(ctx, tasks, func(ctx context.Context, n int) (string, error) {
//	    return fmt.Sprintf("processed %d", n), nil
//	})
func (wp *WorkerPool[T, R]) Process(
	ctx context.Context,
	tasks []T,
	processFn ProcessFunc[T, R],
) ([]R, error) {
	if len(tasks) == 0 {
		return []R{}, nil
	}
	return wp.process(ctx, slices.Values(tasks), len(tasks), processFn, Ordered)
}

// ProcessUnordered executes tasks concurrently and returns results in the order
// workers completed them. It fails in the same all-or-nothing way as Process.
func (wp *WorkerPool[T, R]) ProcessUnordered(
	ctx context.Context,
	tasks []T,
	processFn ProcessFunc[T, R],
) ([]R, error) {
	if len(tasks) == 0 {
		return []R{}, nil
	}
	return wp.process(ctx, slices.Values(tasks), len(tasks), processFn, Unordered)
}

// ProcessSeq executes tasks pulled from a sequence whose length may not be
// known up front. The sequence is consumed from a single goroutine, so it
// does not have to be safe for concurrent use.
func (wp *WorkerPool[T, R]) ProcessSeq(
	ctx context.Context,
	tasks iter.Seq[T],
	processFn ProcessFunc[T, R],
	order Order,
) ([]R, error) {
	return wp.process(ctx, tasks, 0, processFn, order)
}

func (wp *WorkerPool[T, R]) process(
	ctx context.Context,
	tasks iter.Seq[T],
	sizeHint int,
	processFn ProcessFunc[T, R],
	order Order,
) ([]R, error) {
	g, ctx := errgroup.WithContext(ctx)

	chunkChan := make(chan chunk[T], wp.taskBuffer)
	resultChan := make(chan Result[R], resultBuffer(wp.taskBuffer, wp.chunkSize, sizeHint))

	numWorkers := workersFor(wp.workerCount, wp.chunkSize, sizeHint)
	for range numWorkers {
		g.Go(func() error {
			return wp.worker(ctx, chunkChan, resultChan, processFn)
		})
	}

	g.Go(func() error {
		defer close(chunkChan)
		return wp.dispatch(ctx, tasks, chunkChan)
	})

	// Collect results asynchronously
	c := newCollector[R](order, sizeHint)
	var collectionWg sync.WaitGroup
	collectionWg.Add(1)
	go func() {
		defer collectionWg.Done()
		for result := range resultChan {
			c.add(result)
		}
	}()

	err := g.Wait()
	close(resultChan)
	collectionWg.Wait()

	if err != nil {
		return nil, err
	}
	return c.values, nil
}

// dispatch groups tasks into chunks and sends them to the workers.
func (wp *WorkerPool[T, R]) dispatch(ctx context.Context, tasks iter.Seq[T], chunkChan chan<- chunk[T]) error {
	send := func(c chunk[T]) error {
		select {
		case chunkChan <- c:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	newChunk := func(start int) chunk[T] {
		return chunk[T]{start: start, tasks: make([]T, 0, min(wp.chunkSize, maxChunkPrealloc))}
	}

	next := 0
	current := newChunk(0)
	for task := range tasks {
		current.tasks = append(current.tasks, task)
		next++
		if len(current.tasks) < wp.chunkSize {
			continue
		}
		if err := send(current); err != nil {
			return err
		}
		current = newChunk(next)
	}

	if len(current.tasks) > 0 {
		return send(current)
	}
	return nil
}

// collector gathers index-tagged results according to an Order.
type collector[R any] struct {
	order  Order
	values []R
}

func newCollector[R any](order Order, sizeHint int) *collector[R] {
	return &collector[R]{
		order:  order,
		values: make([]R, 0, max(sizeHint, 0)),
	}
}

func (c *collector[R]) add(r Result[R]) {
	if c.order == Unordered {
		c.values = append(c.values, r.Value)
		return
	}

	if n := r.Index + 1; n > len(c.values) {
		c.values = slices.Grow(c.values, n-len(c.values))[:n]
	}
	c.values[r.Index] = r.Value
}
