package parallel

import (
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/utkarsh5026/boondh/internal/cpu"
	"github.com/utkarsh5026/boondh/pool"
)

// Option configures a single Map call.
type Option func(*config)

type config struct {
	total     int
	chunkSpec string
	order     pool.Order
	workers   int
	divisor   int
	logger    *zap.Logger
	skipSmoke bool

	progress     io.Writer
	progressDesc string
	noProgress   bool
	bar          progress

	rps   float64
	burst int
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		chunkSpec: AutoChunk,
		order:     pool.Ordered,
		workers:   cpu.Available(),
		divisor:   DefaultChunkDivisor,
		logger:    zap.NewNop(),
		progress:  os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithTotal declares the item count for sources whose length cannot be
// measured. It is ignored for measurable sources. Non-positive values are
// ignored.
func WithTotal(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.total = n
		}
	}
}

// WithChunkSize sets how many items a worker takes at once. Non-positive
// values fall back to the automatic size with a warning.
func WithChunkSize(n int) Option {
	return func(c *config) {
		c.chunkSpec = strconv.Itoa(n)
	}
}

// WithAutoChunkSize selects max(1, floor(sqrt(total) * workers / K)). This is
// the default.
func WithAutoChunkSize() Option {
	return func(c *config) {
		c.chunkSpec = AutoChunk
	}
}

// WithChunkSizeSpec accepts a textual chunk size request such as "auto" or
// "64", as it would arrive from a flag or config file. See ResolveChunkSize.
func WithChunkSizeSpec(spec string) Option {
	return func(c *config) {
		c.chunkSpec = spec
	}
}

// Ordered selects whether results follow input order (the default) or
// completion order.
func Ordered(ordered bool) Option {
	return func(c *config) {
		if ordered {
			c.order = pool.Ordered
		} else {
			c.order = pool.Unordered
		}
	}
}

// WithWorkers overrides the worker count, which defaults to the number of
// CPUs available to the process.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithChunkDivisor sets K in the automatic chunk size formula.
func WithChunkDivisor(k int) Option {
	return func(c *config) {
		if k > 0 {
			c.divisor = k
		}
	}
}

// WithLogger sets the logger Map reports to. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithProgressWriter sends the progress bar to w instead of stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.progress = w
		}
	}
}

// WithProgressDescription sets the label shown next to the progress bar.
func WithProgressDescription(desc string) Option {
	return func(c *config) {
		c.progressDesc = desc
	}
}

// WithoutProgress disables the progress bar.
func WithoutProgress() Option {
	return func(c *config) {
		c.noProgress = true
	}
}

// WithoutSmokeTest skips the trial invocation on the last item. Use it for
// tasks with side effects that must not run twice.
func WithoutSmokeTest() Option {
	return func(c *config) {
		c.skipSmoke = true
	}
}

// WithRateLimit caps invocations per second across all workers.
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(c *config) {
		c.rps = tasksPerSecond
		c.burst = burst
	}
}

// withProgress replaces the progress bar with p.
func withProgress(p progress) Option {
	return func(c *config) {
		c.bar = p
	}
}
