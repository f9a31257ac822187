// Package pool provides a small, generic worker pool for mapping a function
// over a batch of tasks.
//
// The primary type is WorkerPool[T, R], a fixed-size set of workers which
// process tasks of type T and return results of type R. Tasks are grouped into
// chunks and handed to workers over a bounded channel; each worker runs the
// tasks of a chunk one after another and reports index-tagged results on a
// collection channel.
//
// # Basic Usage
//
//	ctx := context.Background()
//	tasks := []int{1, 2, 3, 4}
//	wp := pool.NewWorkerPool[int, int](pool.WithWorkerCount(4))
//	results, err := wp.Process(ctx, tasks, func(ctx context.Context, t int) (int, error) {
//	    return t * 2, nil
//	})
//
// # Processing Modes
//
//   - Process: results in the same order as the input slice
//   - ProcessUnordered: results in completion order
//   - ProcessSeq: tasks from an iter.Seq whose length may be unknown, collected
//     in either Order
//
// # Chunking
//
// WithChunkSize groups consecutive tasks so that one channel hand-off carries
// several tasks. Larger chunks reduce dispatch overhead; smaller chunks spread
// uneven work more evenly across workers. The default is one task per chunk.
//
// # Hooks
//
//	wp := pool.NewWorkerPool[string, int](
//	    pool.WithOnTaskEnd(func(task string, n int, err error) {
//	        bar.Add(1)
//	    }),
//	)
//
// Hook types are checked against the pool's task and result types when the
// pool is built; a mismatch panics.
//
// # Error Handling
//
// The pool is all-or-nothing: when any task fails, the remaining work is
// cancelled and no results are returned. Task failures are reported as
// *TaskError values carrying the index of the failing task. Panics inside a
// task are recovered and converted to errors wrapping ErrWorkerPanic, with
// the stack trace attached. Tasks are never retried.
package pool
