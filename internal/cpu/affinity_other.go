//go:build !linux

package cpu

import "runtime"

// Available returns the number of logical CPUs the current process may run on.
// Affinity masks are only consulted on Linux.
func Available() int {
	return runtime.NumCPU()
}
