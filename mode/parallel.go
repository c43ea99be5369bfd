package mode

import (
	"runtime"
	"sync"
)

// blockTask computes the output block at index i given the full
// (read-only) input block slice. It must be safe to call concurrently
// for distinct i, each call touching only in[i] and whatever
// precomputed per-index state the caller closes over (counter, delta,
// or in[i-1]/iv for the chained-but-parallel decrypt directions).
type blockTask func(i int, in []byte) ([]byte, error)

// runParallel applies task to every block of in (length must be a
// multiple of the caller's block size; blockSize says how long each
// block is) and returns the results in input order. It partitions the
// N blocks into contiguous ranges, runs the first range synchronously
// on the caller's goroutine and the rest on spawned goroutines, and
// joins before returning, so output order is input order regardless
// of worker count, matching the engine's determinism guarantee.
//
// Worker count is min(GOMAXPROCS, ceil(N/MinBlocksPerWorker)), so small
// inputs never pay goroutine overhead for no benefit.
func runParallel(in []byte, blockSize int, task blockTask) ([]byte, error) {
	n := len(in) / blockSize
	if n == 0 {
		return nil, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if maxWorkers := (n + MinBlocksPerWorker - 1) / MinBlocksPerWorker; maxWorkers < workers {
		workers = maxWorkers
	}
	if workers < 1 {
		workers = 1
	}

	ranges := partition(n, workers)
	out := make([]byte, len(in))
	var firstErr error
	var errOnce sync.Once
	recordErr := func(err error) {
		if err == nil {
			return
		}
		errOnce.Do(func() { firstErr = err })
	}

	var wg sync.WaitGroup
	for idx, r := range ranges {
		start, end := r[0], r[1]
		run := func() {
			for i := start; i < end; i++ {
				result, err := task(i, in)
				if err != nil {
					recordErr(&WorkerError{Range: [2]int{start, end}, Err: err})
					return
				}
				copy(out[i*blockSize:(i+1)*blockSize], result)
			}
		}
		if idx == 0 {
			// The first range runs synchronously on the caller's own
			// goroutine rather than spawning one just for it.
			run()
			continue
		}
		wg.Add(1)
		go func(run func()) {
			defer wg.Done()
			run()
		}(run)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// partition splits [0,n) into at most workers contiguous, roughly
// equal ranges, never producing an empty range; n == 0 yields none.
func partition(n, workers int) [][2]int {
	if n <= 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	base := n / workers
	rem := n % workers
	ranges := make([][2]int, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		ranges = append(ranges, [2]int{start, start + size})
		start += size
	}
	return ranges
}
