package parallel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// AutoChunk requests the automatic chunk size.
	AutoChunk = "auto"

	// DefaultChunkDivisor is the K in max(1, floor(sqrt(total) * workers / K)).
	DefaultChunkDivisor = 3
)

// AutoChunkSize computes max(1, floor(sqrt(total) * workers / divisor)).
// A divisor below 1 is replaced by DefaultChunkDivisor.
func AutoChunkSize(total, workers, divisor int) int {
	if divisor < 1 {
		divisor = DefaultChunkDivisor
	}
	size := math.Sqrt(float64(max(total, 0))) * float64(workers) / float64(divisor)
	return max(1, int(math.Floor(size)))
}

// ResolveChunkSize turns a chunk size request into the size Map uses.
//
// An empty request or AutoChunk yields AutoChunkSize. A positive integer is used
// verbatim. Anything else also yields AutoChunkSize, together with an error
// wrapping ErrInvalidChunkSize that callers should surface as a warning.
func ResolveChunkSize(req string, total, workers, divisor int) (int, error) {
	auto := AutoChunkSize(total, workers, divisor)

	req = strings.TrimSpace(req)
	if req == "" || strings.EqualFold(req, AutoChunk) {
		return auto, nil
	}

	n, err := strconv.Atoi(req)
	if err != nil {
		return auto, fmt.Errorf("%w: %q is neither an integer nor %q, using %d", ErrInvalidChunkSize, req, AutoChunk, auto)
	}
	if n <= 0 {
		return auto, fmt.Errorf("%w: %d is not positive, using %d", ErrInvalidChunkSize, n, auto)
	}
	return n, nil
}
