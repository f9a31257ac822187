//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Available returns the number of logical CPUs the current process may run on.
// It reads the scheduler affinity mask, so it honours taskset and cpuset
// restrictions, and falls back to runtime.NumCPU when the mask is unreadable.
func Available() int {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err != nil {
		return runtime.NumCPU()
	}

	if n := mask.Count(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}
