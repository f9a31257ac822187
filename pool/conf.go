package pool

import (
	"fmt"

	"golang.org/x/time/rate"
)

// WorkerPoolOption is a functional option for configuring the worker pool.
type WorkerPoolOption func(*workerPoolConfig)

type workerPoolConfig struct {
	workerCount int
	taskBuffer  int
	chunkSize   int
	rateLimiter *rate.Limiter

	beforeTaskStart     func(any)
	beforeTaskStartType string

	onTaskEnd           func(any, any, error)
	onTaskEndTaskType   string
	onTaskEndResultType string
}

// WithWorkerCount sets the number of concurrent workers.
// If not specified, defaults to the number of CPUs available to the process.
func WithWorkerCount(count int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithTaskBuffer sets the buffer size of the chunk channel, counted in chunks.
// If not specified, defaults to the number of workers.
func WithTaskBuffer(size int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if size >= 0 {
			cfg.taskBuffer = size
		}
	}
}

// WithChunkSize sets how many consecutive tasks are handed to a worker at once.
// Values below 1 are ignored and the default of 1 is kept.
func WithChunkSize(size int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if size > 0 {
			cfg.chunkSize = size
		}
	}
}

// WithRateLimit sets a rate limiter for controlling task throughput.
// tasksPerSecond specifies the maximum number of tasks to start per second.
// burst specifies the maximum number of tasks that can be started in a burst.
// If not specified, no rate limiting is applied.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithBeforeTaskStart registers a hook that runs on the worker goroutine
// right before each task is processed. T must match the pool's task type.
func WithBeforeTaskStart[T any](fn func(T)) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if fn == nil {
			return
		}
		var zero T
		cfg.beforeTaskStartType = fmt.Sprintf("%T", zero)
		cfg.beforeTaskStart = func(task any) {
			fn(as[T](task))
		}
	}
}

// WithOnTaskEnd registers a hook that runs on the worker goroutine after each
// task finishes, successfully or not. T and R must match the pool's task and
// result types. The hook runs concurrently from several workers.
func WithOnTaskEnd[T, R any](fn func(T, R, error)) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if fn == nil {
			return
		}
		var zeroT T
		var zeroR R
		cfg.onTaskEndTaskType = fmt.Sprintf("%T", zeroT)
		cfg.onTaskEndResultType = fmt.Sprintf("%T", zeroR)
		cfg.onTaskEnd = func(task, result any, err error) {
			fn(as[T](task), as[R](result), err)
		}
	}
}

// as converts a hook argument back to its static type. Nil interface values
// become the zero value instead of panicking.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
