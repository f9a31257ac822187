package pool

import (
	"context"
	"fmt"
	"runtime"
)

// worker is the core worker function that processes chunks from the chunk channel.
// It returns the first task error, which cancels the rest of the batch.
func (wp *WorkerPool[T, R]) worker(
	ctx context.Context,
	chunkChan <-chan chunk[T],
	resultChan chan<- Result[R],
	processFn ProcessFunc[T, R],
) error {
	for {
		select {
		case c, ok := <-chunkChan:
			if !ok {
				return nil
			}
			for i, task := range c.tasks {
				if err := wp.runTask(ctx, c.start+i, task, resultChan, processFn); err != nil {
					return err
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// runTask processes a single task and publishes its index-tagged result.
func (wp *WorkerPool[T, R]) runTask(
	ctx context.Context,
	index int,
	task T,
	resultChan chan<- Result[R],
	processFn ProcessFunc[T, R],
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if wp.rateLimiter != nil {
		if err := wp.rateLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	if wp.beforeTaskStart != nil {
		wp.beforeTaskStart(task)
	}

	result, err := processWithRecovery(ctx, task, processFn)
	if wp.onTaskEnd != nil {
		wp.onTaskEnd(task, result, err)
	}
	if err != nil {
		return NewTaskError(index, err)
	}

	select {
	case resultChan <- Result[R]{Value: result, Index: index}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// processWithRecovery executes a task with panic recovery.
// If a panic occurs, it's converted to an error to prevent crashing the worker.
func processWithRecovery[T, R any](
	ctx context.Context,
	task T,
	processFn ProcessFunc[T, R],
) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrWorkerPanic, r, buf[:n])
		}
	}()

	return processFn(ctx, task)
}
