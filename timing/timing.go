// Package timing reports how long a block of code took.
//
//	defer timing.Track("load stations")()
package timing

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

var bold = color.New(color.Bold)

// Timer measures one named block of code.
type Timer struct {
	name  string
	start time.Time
	out   io.Writer
}

// Start starts a timer that reports to color.Output, which is stdout.
func Start(name string) *Timer {
	return StartTo(color.Output, name)
}

// StartTo starts a timer that reports to w.
func StartTo(w io.Writer, name string) *Timer {
	return &Timer{name: name, start: time.Now(), out: w}
}

// Started returns when the timer was started.
func (t *Timer) Started() time.Time {
	return t.start
}

// Stop prints "[name] completed in N seconds.." with N rounded to whole
// seconds and returns the exact elapsed time.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	fmt.Fprintf(t.out, "%s completed in %.0f seconds..\n", bold.Sprintf("[%s]", t.name), elapsed.Seconds())
	return elapsed
}

// Track starts a timer and returns the function that stops it.
func Track(name string) func() {
	t := Start(name)
	return func() { t.Stop() }
}
