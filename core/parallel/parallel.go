// Package parallel fans index ranges out over CPU workers. Every function
// joins all workers before returning, so callers never observe partial
// results.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize divides the specified total number (items) according to the number of CPU cores,
// and executes the specified function (fn) in parallel for each range (start, end)
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	numWorkers := workers(items)

	// Calculate the number of items each worker handles (ceiling division)
	chunkSize := (items + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > items {
			end = items
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold performs parallelization only when the number of items exceeds the threshold
// If below threshold, normal sequential processing is performed
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// ParallelizeStrided calls fn(i) for every i in [0, items). Worker w handles
// w, w+W, w+2W, ... so that rows of a triangular workload, whose cost falls
// with the index, are spread evenly. Runs sequentially when items does not
// exceed threshold.
func ParallelizeStrided(items int, threshold int, fn func(i int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		for i := 0; i < items; i++ {
			fn(i)
		}
		return
	}

	numWorkers := workers(items)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func(offset int) {
			defer wg.Done()
			for i := offset; i < items; i += numWorkers {
				fn(i)
			}
		}(w)
	}
	wg.Wait()
}

func workers(items int) int {
	n := runtime.GOMAXPROCS(0)
	if n > items {
		n = items // No need for more workers than items
	}
	if n < 1 {
		n = 1
	}
	return n
}
