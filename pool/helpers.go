package pool

import (
	"fmt"

	"github.com/utkarsh5026/boondh/internal/cpu"
)

// checkfuncs validates user-supplied hook functions against the pool's task and
// result types and returns typed wrappers for use within the worker pool.
//
// Panics:
//
//	If any hook's type does not match the expected task/result types.
//	The panic message describes the type mismatch.
func checkfuncs[T any, R any](
	cfg *workerPoolConfig,
	expectedTaskType, expectedResultType string,
) (
	beforeTaskStart func(T),
	onTaskEnd func(T, R, error),
) {
	if cfg.beforeTaskStart != nil {
		if cfg.beforeTaskStartType != expectedTaskType {
			panic(fmt.Sprintf("WithBeforeTaskStart hook expects task type %s, but pool processes type %s",
				cfg.beforeTaskStartType, expectedTaskType))
		}
		beforeTaskStart = func(task T) {
			cfg.beforeTaskStart(task)
		}
	}

	if cfg.onTaskEnd != nil {
		if cfg.onTaskEndTaskType != expectedTaskType {
			panic(fmt.Sprintf("WithOnTaskEnd hook expects task type %s, but pool processes type %s",
				cfg.onTaskEndTaskType, expectedTaskType))
		}
		if cfg.onTaskEndResultType != expectedResultType {
			panic(fmt.Sprintf("WithOnTaskEnd hook expects result type %s, but pool produces type %s",
				cfg.onTaskEndResultType, expectedResultType))
		}
		onTaskEnd = func(task T, result R, err error) {
			cfg.onTaskEnd(task, result, err)
		}
	}

	return beforeTaskStart, onTaskEnd
}

func createConfig(opts ...WorkerPoolOption) *workerPoolConfig {
	cfg := &workerPoolConfig{
		workerCount: cpu.Available(),
		taskBuffer:  0, // Will be set to workerCount if not specified
		chunkSize:   1,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.taskBuffer == 0 {
		cfg.taskBuffer = cfg.workerCount
	}

	return cfg
}

// workersFor returns how many workers are worth starting for sizeHint tasks.
// A non-positive sizeHint means the number of tasks is unknown.
func workersFor(workerCount, chunkSize, sizeHint int) int {
	if sizeHint <= 0 {
		return workerCount
	}
	chunks := 1 + (sizeHint-1)/chunkSize
	return max(1, min(workerCount, chunks))
}

// maxChunkPrealloc bounds the capacity reserved up front for one chunk. Larger
// chunks grow as tasks arrive.
const maxChunkPrealloc = 1024

// resultBuffer sizes the result channel: one chunk per buffered chunk, but
// never more than the batch holds.
func resultBuffer(taskBuffer, chunkSize, sizeHint int) int {
	chunks := max(taskBuffer, 1)
	if sizeHint > 0 {
		return min(chunks*min(chunkSize, sizeHint), sizeHint)
	}
	return chunks * min(chunkSize, maxChunkPrealloc)
}
