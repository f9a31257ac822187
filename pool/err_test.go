package pool

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

func TestWorkerPool_Process_StopsOnError(t *testing.T) {
	runChunkingTest(t, func(t *testing.T, c chunkConfig) {
		pool := NewWorkerPool[int, int](c.opts...)

		tasks := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
		var processedCount atomic.Int32
		expectedErr := errors.New("error on task 5")

		processFn := func(ctx context.Context, task int) (int, error) {
			processedCount.Add(1)
			if task == 5 {
				return 0, expectedErr
			}
			return task * 2, nil
		}

		results, err := pool.Process(context.Background(), tasks, processFn)
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected %v, got %v", expectedErr, err)
		}

		if results != nil {
			t.Errorf("expected no partial results, got %v", results)
		}

		if processedCount.Load() == 0 {
			t.Error("expected some tasks to be processed")
		}
	}, 4)
}

func TestWorkerPool_Process_ErrorCarriesIndex(t *testing.T) {
	pool := NewWorkerPool[string, int](WithWorkerCount(2), WithChunkSize(2))

	tasks := []string{"1", "2", "x", "4"}
	_, err := pool.Process(context.Background(), tasks, func(ctx context.Context, task string) (int, error) {
		if task == "x" {
			return 0, errors.New("not a number")
		}
		return len(task), nil
	})

	index, ok := TaskIndex(err)
	if !ok {
		t.Fatalf("expected a TaskError, got %v", err)
	}
	if index != 2 {
		t.Errorf("expected failing index 2, got %d", index)
	}
	if !strings.Contains(err.Error(), "task 2 failed: not a number") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestWorkerPool_Process_PanicRecovery(t *testing.T) {
	runChunkingTest(t, func(t *testing.T, c chunkConfig) {
		pool := NewWorkerPool[int, int](c.opts...)

		_, err := pool.Process(context.Background(), []int{1, 2, 3, 4}, func(ctx context.Context, task int) (int, error) {
			if task == 3 {
				panic("task 3 exploded")
			}
			return task, nil
		})

		if !errors.Is(err, ErrWorkerPanic) {
			t.Fatalf("expected ErrWorkerPanic, got %v", err)
		}
		if !strings.Contains(err.Error(), "task 3 exploded") {
			t.Errorf("expected panic value in error, got %v", err)
		}
		if !strings.Contains(err.Error(), "stack trace:") {
			t.Errorf("expected stack trace in error, got %v", err)
		}
	}, 2)
}

func TestWorkerPool_ProcessUnordered_NoPartialResults(t *testing.T) {
	pool := NewWorkerPool[int, int](WithWorkerCount(3))

	tasks := make([]int, 50)
	for i := range tasks {
		tasks[i] = i
	}

	results, err := pool.ProcessUnordered(context.Background(), tasks, func(ctx context.Context, task int) (int, error) {
		if task == 42 {
			return 0, errors.New("bad item")
		}
		return task, nil
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if results != nil {
		t.Errorf("expected nil results, got %d values", len(results))
	}
}

func TestTaskIndex_NotTaskError(t *testing.T) {
	if _, ok := TaskIndex(errors.New("plain")); ok {
		t.Error("expected plain error not to carry a task index")
	}
	if _, ok := TaskIndex(nil); ok {
		t.Error("expected nil error not to carry a task index")
	}
}
