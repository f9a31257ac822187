package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/utkarsh5026/boondh/pool"
)

// Map applies task to every item of items on a worker pool created for this
// call and released before it returns.
//
// A non-nil error means the call was misconfigured and nothing ran; it wraps
// ErrConfig. Otherwise the returned Result either holds one value per item or
// reports why the batch failed. One failing item fails the whole batch and no
// partial values are returned.
//
// Example:
//
//	res, err := parallel.Map(ctx, task, parallel.FromSlice([]int{0, 1, 2, 3, 4}))
//	if err != nil {
//	    return err
//	}
//	values, err := res.Unwrap() // [0 1 4 9 16]
func Map[T, R any](ctx context.Context, task *Task[T, R], items Source[T], opts ...Option) (*Result[R], error) {
	cfg := newConfig(opts...)

	if task == nil || task.call == nil {
		return nil, ErrNilTask
	}
	if !items.iterable() {
		return nil, ErrNotIterable
	}

	total, err := effectiveTotal(items, cfg.total)
	if err != nil {
		return nil, err
	}

	res := &Result[R]{
		RunID:   uuid.NewString(),
		Total:   total,
		Workers: cfg.workers,
		Order:   cfg.order,
	}
	log := cfg.logger.With(
		zap.String("run_id", res.RunID),
		zap.String("func", task.Name()),
	)
	log.Info("cpus", zap.Int("workers", cfg.workers))

	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		log.Info("done",
			zap.Stringer("failure", res.Failure),
			zap.Duration("elapsed", res.Elapsed),
		)
	}()

	if !cfg.skipSmoke {
		if last, ok := items.lastItem(); ok {
			if err := smokeTest(ctx, task, last); err != nil {
				res.fail(log, err)
				return res, nil
			}
		}
	}

	chunkSize, err := ResolveChunkSize(cfg.chunkSpec, total, cfg.workers, cfg.divisor)
	if err != nil {
		log.Warn("falling back to automatic chunk size", zap.Error(err))
	}
	if chunkSize > total {
		log.Info("chunk size clamped to total",
			zap.Int("requested", chunkSize),
			zap.Int("total", total),
		)
		chunkSize = total
	}
	res.ChunkSize = chunkSize
	log.Info("chunk size resolved",
		zap.Int("chunk_size", chunkSize),
		zap.Int("total", total),
		zap.Stringer("order", cfg.order),
	)

	bar := newProgress(cfg, total, task.Name())
	defer func() { _ = bar.Finish() }()

	poolOpts := []pool.WorkerPoolOption{
		pool.WithWorkerCount(cfg.workers),
		pool.WithChunkSize(chunkSize),
		pool.WithOnTaskEnd(func(T, R, error) { _ = bar.Add(1) }),
	}
	if cfg.rps > 0 {
		poolOpts = append(poolOpts, pool.WithRateLimit(cfg.rps, cfg.burst))
	}
	wp := pool.NewWorkerPool[T, R](poolOpts...)

	values, err := wp.ProcessSeq(ctx, items.All(), task.Call, cfg.order)
	if err != nil {
		res.fail(log, err)
		return res, nil
	}

	if len(values) != total {
		log.Warn("processed item count differs from total",
			zap.Int("total", total),
			zap.Int("processed", len(values)),
		)
	}
	res.Values = values
	return res, nil
}

// effectiveTotal measures the source, or falls back to the declared total.
func effectiveTotal[T any](items Source[T], declared int) (int, error) {
	total, ok := items.Len()
	if !ok {
		if declared <= 0 {
			return 0, fmt.Errorf("%w: items have no length, pass WithTotal", ErrTotalRequired)
		}
		total = declared
	}
	if total <= 1 {
		return 0, fmt.Errorf("%w: len(items) should be > 1, but is %d", ErrTooFewItems, total)
	}
	return total, nil
}

// smokeTest invokes task once on item and discards the value.
func smokeTest[T, R any](ctx context.Context, task *Task[T, R], item T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", pool.ErrWorkerPanic, r, buf[:n])
		}
	}()

	_, err = task.Call(ctx, item)
	return err
}

func (r *Result[R]) fail(log *zap.Logger, err error) {
	r.Values = nil
	r.Err = err

	if errors.Is(err, ErrInvocation) {
		r.Failure = FailureInvocation
		log.Error("please make sure that args and kwargs provided are valid for the function", zap.Error(err))
		return
	}

	r.Failure = FailureRuntime
	attrs := []zap.Field{zap.Error(err)}
	if idx, ok := pool.TaskIndex(err); ok {
		attrs = append(attrs, zap.Int("index", idx))
	}
	log.Error("parallel map failed", attrs...)
}
