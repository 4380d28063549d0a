package main

import "runtime"

// Worker sizing constants.
const (
	// minWorkers ensures at least one repository is processed.
	minWorkers = 1

	// maxWorkers caps concurrent API fan-out to stay polite to the
	// Bitbucket rate limiter.
	maxWorkers = 8
)

// resolveWorkers determines the worker count.
// Priority: explicit flag > GOMAXPROCS-based calculation.
func resolveWorkers(requested int) int {
	if requested > 0 {
		return requested
	}

	workers := runtime.GOMAXPROCS(0)
	if workers < minWorkers {
		return minWorkers
	}
	if workers > maxWorkers {
		return maxWorkers
	}
	return workers
}
