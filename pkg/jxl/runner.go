package jxl

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// PoolRunner returns a RunnerFunc backed by a goroutine pool of the given
// size; workers <= 0 means GOMAXPROCS. It lets decoders and encoders run
// parallel sections on Go's scheduler when libjxl_threads is not linked in.
//
// The returned function blocks until every value in [start, end) has been
// processed, as the native contract requires.
func PoolRunner(workers int) RunnerFunc {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return func(init func(numThreads int) ParallelRetCode, run func(value uint32, thread int), start, end uint32) ParallelRetCode {
		if start >= end {
			return ParallelRetSuccess
		}
		n := workers
		if span := int(end - start); span < n {
			n = span
		}
		if rc := init(n); rc != ParallelRetSuccess {
			return rc
		}
		// Work stealing via a shared counter keeps the values balanced
		// even when per-value cost varies.
		next := int64(start)
		var wg sync.WaitGroup
		wg.Add(n)
		for thread := 0; thread < n; thread++ {
			go func(thread int) {
				defer wg.Done()
				for {
					v := atomic.AddInt64(&next, 1) - 1
					if v >= int64(end) {
						return
					}
					run(uint32(v), thread)
				}
			}(thread)
		}
		wg.Wait()
		return ParallelRetSuccess
	}
}

// SequentialRunner runs every value on the calling goroutine, in order. It
// is mainly useful for deterministic debugging.
func SequentialRunner() RunnerFunc {
	return func(init func(numThreads int) ParallelRetCode, run func(value uint32, thread int), start, end uint32) ParallelRetCode {
		if start >= end {
			return ParallelRetSuccess
		}
		if rc := init(1); rc != ParallelRetSuccess {
			return rc
		}
		for v := start; v < end; v++ {
			run(v, 0)
		}
		return ParallelRetSuccess
	}
}
