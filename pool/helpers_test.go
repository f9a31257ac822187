package pool

import "testing"

// chunkConfig defines a test configuration for a chunk size
type chunkConfig struct {
	name string
	opts []WorkerPoolOption
}

// getAllChunkings returns the chunk sizes every behavioural test runs under
func getAllChunkings(workerCount int) []chunkConfig {
	return []chunkConfig{
		{
			name: "SingleTask",
			opts: []WorkerPoolOption{
				WithWorkerCount(workerCount),
			},
		},
		{
			name: "SmallChunks",
			opts: []WorkerPoolOption{
				WithWorkerCount(workerCount),
				WithChunkSize(3),
			},
		},
		{
			name: "LargeChunks",
			opts: []WorkerPoolOption{
				WithWorkerCount(workerCount),
				WithChunkSize(64),
				WithTaskBuffer(1),
			},
		},
	}
}

// getAllChunkingsWithOpts returns all chunk configurations with additional options
func getAllChunkingsWithOpts(workerCount int, additionalOpts ...WorkerPoolOption) []chunkConfig {
	base := getAllChunkings(workerCount)
	for i := range base {
		base[i].opts = append(base[i].opts, additionalOpts...)
	}
	return base
}

func runChunkingTest(t *testing.T, testFunc func(t *testing.T, c chunkConfig), workerCount int, additionalOpts ...WorkerPoolOption) {
	for _, c := range getAllChunkingsWithOpts(workerCount, additionalOpts...) {
		t.Run(c.name, func(t *testing.T) {
			testFunc(t, c)
		})
	}
}
