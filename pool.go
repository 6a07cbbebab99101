package leasedoc

import "runtime"

// Worker pool sizing constants.
const (
	// MinPoolSize ensures at least one translation worker.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent calls to the text-generation service.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for rendering on the calling goroutines.
	cpuDivisor = 2
)

// ResolvePoolSize determines the translation worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
