package jxl_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imagecodecs/jpegxl-go/pkg/jxl"
)

func TestPoolRunnerCoversRange(t *testing.T) {
	const start, end = 3, 203
	runner := jxl.PoolRunner(4)

	var hits [end]int32
	var workers int
	rc := runner(
		func(n int) jxl.ParallelRetCode {
			workers = n
			return jxl.ParallelRetSuccess
		},
		func(value uint32, thread int) {
			if thread < 0 || thread >= workers {
				t.Errorf("thread index %d outside [0, %d)", thread, workers)
			}
			atomic.AddInt32(&hits[value], 1)
		},
		start, end,
	)
	require.Equal(t, jxl.ParallelRetSuccess, rc)
	require.GreaterOrEqual(t, workers, 1)
	require.LessOrEqual(t, workers, 4)
	for v := 0; v < end; v++ {
		want := int32(0)
		if v >= start {
			want = 1
		}
		assert.Equalf(t, want, hits[v], "value %d run count", v)
	}
}

func TestPoolRunnerNarrowRangeCapsWorkers(t *testing.T) {
	runner := jxl.PoolRunner(8)

	var workers int
	rc := runner(
		func(n int) jxl.ParallelRetCode {
			workers = n
			return jxl.ParallelRetSuccess
		},
		func(uint32, int) {},
		10, 12,
	)
	require.Equal(t, jxl.ParallelRetSuccess, rc)
	assert.Equal(t, 2, workers, "worker count for a 2-value range")
}

func TestPoolRunnerInitAbort(t *testing.T) {
	runner := jxl.PoolRunner(2)

	ran := false
	rc := runner(
		func(int) jxl.ParallelRetCode { return jxl.ParallelRetError },
		func(uint32, int) { ran = true },
		0, 100,
	)
	assert.Equal(t, jxl.ParallelRetError, rc, "init's failure code must propagate")
	assert.False(t, ran, "run callback executed after init aborted")
}

func TestPoolRunnerEmptyRange(t *testing.T) {
	runner := jxl.PoolRunner(2)

	rc := runner(
		func(int) jxl.ParallelRetCode {
			t.Fatal("init called for empty range")
			return jxl.ParallelRetError
		},
		func(uint32, int) { t.Fatal("run called for empty range") },
		7, 7,
	)
	assert.Equal(t, jxl.ParallelRetSuccess, rc)
}

func TestSequentialRunnerIsOrdered(t *testing.T) {
	runner := jxl.SequentialRunner()

	var order []uint32
	rc := runner(
		func(n int) jxl.ParallelRetCode {
			assert.Equal(t, 1, n, "sequential worker count")
			return jxl.ParallelRetSuccess
		},
		func(value uint32, thread int) {
			assert.Equal(t, 0, thread)
			order = append(order, value)
		},
		5, 9,
	)
	require.Equal(t, jxl.ParallelRetSuccess, rc)
	assert.Equal(t, []uint32{5, 6, 7, 8}, order)
}
