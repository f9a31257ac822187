// Package benchmarks measures the worker pool and the parallel map executor
// under different chunk sizes, orderings and workloads.
package benchmarks

import (
	"context"
	"fmt"
	"time"

	"github.com/utkarsh5026/boondh/parallel"
)

// modeConfig defines a benchmark configuration for a parallel.Map call
type modeConfig struct {
	name string
	opts []parallel.Option
}

// getModes returns ordered and unordered runs with automatic chunking
func getModes(workerCount int) []modeConfig {
	return []modeConfig{
		{
			name: "Ordered",
			opts: []parallel.Option{
				parallel.WithWorkers(workerCount),
				parallel.Ordered(true),
				parallel.WithoutProgress(),
			},
		},
		{
			name: "Unordered",
			opts: []parallel.Option{
				parallel.WithWorkers(workerCount),
				parallel.Ordered(false),
				parallel.WithoutProgress(),
			},
		},
	}
}

// getChunkPolicies returns fixed chunk sizes next to the automatic one
func getChunkPolicies(workerCount int) []modeConfig {
	policies := []modeConfig{
		{
			name: "Auto",
			opts: []parallel.Option{parallel.WithAutoChunkSize()},
		},
	}
	for _, size := range []int{1, 16, 128, 1024} {
		policies = append(policies, modeConfig{
			name: fmt.Sprintf("Chunk%d", size),
			opts: []parallel.Option{parallel.WithChunkSize(size)},
		})
	}
	for i := range policies {
		policies[i].opts = append(policies[i].opts,
			parallel.WithWorkers(workerCount),
			parallel.WithoutProgress(),
		)
	}
	return policies
}

func makeTasks(n int) []int {
	tasks := make([]int, n)
	for i := range tasks {
		tasks[i] = i
	}
	return tasks
}

// =============================================================================
// Benchmark Workload Generators
// =============================================================================

// cpuBoundWork simulates a CPU-intensive operation
func cpuBoundWork(iterations int) func(ctx context.Context, task int) (int, error) {
	return func(ctx context.Context, task int) (int, error) {
		result := 0
		for i := range iterations {
			result += i * task
		}
		return result, nil
	}
}

// ioBoundWork simulates an I/O operation with a delay
func ioBoundWork(delay time.Duration) func(ctx context.Context, task int) (int, error) {
	return func(ctx context.Context, task int) (int, error) {
		select {
		case <-time.After(delay):
			return task * 2, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

// mixedWork simulates a realistic workload with variable processing time
func mixedWork() func(ctx context.Context, task int) (int, error) {
	return func(ctx context.Context, task int) (int, error) {
		// Simulate variable processing time (0-1ms)
		delay := time.Duration(task%10) * 100 * time.Microsecond
		time.Sleep(delay)

		result := 0
		for i := range 1000 {
			result += i
		}
		return result + task, nil
	}
}

// scale is the bound target used to measure Bind against Func.
func scale(value, factor int) int {
	return value * factor
}
