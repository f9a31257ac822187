// Package parallel applies a function to every item of a collection on a
// fixed-size worker pool.
//
// A call is described by a Task, built either from a one-argument function
// with Func or from an arbitrary function with Bind, and a Source of payload
// items. Map validates the call, runs a smoke test on the last item when the
// source allows random access, resolves the chunk size and then fans the
// items out over a pool.WorkerPool:
//
//	task, err := parallel.Bind[int, int]("square", square,
//	    parallel.Signature{"value", "sq"}, "value", nil, parallel.Kwargs{"sq": true})
//	if err != nil {
//	    return err
//	}
//	res, err := parallel.Map(ctx, task, parallel.FromSlice(items),
//	    parallel.WithLogger(logger))
//
// # Chunk Size
//
// Unless told otherwise Map hands each worker max(1, floor(sqrt(total) *
// workers / 3)) items at a time. WithChunkSize and WithChunkSizeSpec override
// this; requests that cannot be honoured are logged and replaced by the
// automatic size.
//
// # Failures
//
// Configuration problems are returned as errors wrapping ErrConfig before any
// work starts. Once work has started the outcome is a Result: either one value
// per item, or no values and a FailureKind telling invocation errors apart
// from everything else. There are no retries and no partial results.
package parallel
