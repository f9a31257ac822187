package main

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"os/signal"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/utkarsh5026/boondh/parallel"
	"github.com/utkarsh5026/boondh/timing"
)

var (
	errSquareFailed = errors.New("square run failed")
	errInvalidFlag  = errors.New("invalid flag value")
)

func square(value int, sq bool) int {
	if sq {
		return value * value
	}
	return value
}

func runSquare(e *env, args []string) error {
	fs, cfgPath, logLevel := newFlagSet("square", e)
	n := fs.IntP("n", "n", 1_000_000, "square the integers 0..n-1")
	chunk := fs.StringP("chunk", "c", "", `chunk size, a positive integer or "auto" (overrides config)`)
	workers := fs.IntP("workers", "w", 0, "number of workers (overrides config)")
	unordered := fs.Bool("unordered", false, "collect results in completion order")
	identity := fs.Bool("identity", false, "return the values unchanged instead of squaring them")
	lazy := fs.Bool("lazy", false, "feed the values as a sequence with a declared total")
	noProgress := fs.Bool("no-progress", false, "hide the progress bar")
	if err := e.setup(fs, args, cfgPath, logLevel); err != nil {
		return err
	}
	defer e.logger.Sync()

	if *n < 0 {
		return fmt.Errorf("%w: --n must not be negative, got %d", errInvalidFlag, *n)
	}

	opts := e.cfg.MapOptions()
	if fs.Changed("chunk") {
		opts = append(opts, parallel.WithChunkSizeSpec(*chunk))
	}
	if fs.Changed("workers") {
		opts = append(opts, parallel.WithWorkers(*workers))
	}
	if *noProgress {
		opts = append(opts, parallel.WithoutProgress())
	}
	opts = append(opts,
		parallel.Ordered(!*unordered),
		parallel.WithLogger(e.logger),
		parallel.WithProgressWriter(e.stderr),
		parallel.WithProgressDescription("squaring"),
	)

	task, err := parallel.Bind[int, int]("square", square,
		parallel.Signature{"value", "sq"}, "value", nil, parallel.Kwargs{"sq": !*identity})
	if err != nil {
		return err
	}

	var items parallel.Source[int]
	if *lazy {
		items = parallel.FromSeq(count(*n))
		opts = append(opts, parallel.WithTotal(*n))
	} else {
		values := make([]int, *n)
		for i := range values {
			values[i] = i
		}
		items = parallel.FromSlice(values)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	timer := timing.StartTo(e.stdout, fmt.Sprintf("square %d", *n))
	res, err := parallel.Map(ctx, task, items, opts...)
	timer.Stop()
	if err != nil {
		return err
	}

	if err := renderRun(e, res); err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("%w (%s): %w", errSquareFailed, res.Failure, res.Err)
	}

	if len(res.Values) > 0 {
		last := res.Values[len(res.Values)-1]
		fmt.Fprintf(e.stdout, "first=%d last=%d\n", res.Values[0], last)
	}
	return nil
}

func count(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range n {
			if !yield(i) {
				return
			}
		}
	}
}

func renderRun(e *env, res *parallel.Result[int]) error {
	status := green.Sprint("ok")
	if !res.OK() {
		status = red.Sprint(res.Failure.String())
	}

	table := tablewriter.NewWriter(e.stdout)
	table.Header("Run", "Mode", "Items", "Workers", "Chunk Size", "Elapsed", "Status")
	if err := table.Append(
		res.RunID[:8],
		res.Order.String(),
		strconv.Itoa(res.Total),
		strconv.Itoa(res.Workers),
		strconv.Itoa(res.ChunkSize),
		res.Elapsed.String(),
		status,
	); err != nil {
		return err
	}
	return table.Render()
}
