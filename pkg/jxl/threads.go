package jxl

import (
	"runtime"

	"github.com/imagecodecs/jpegxl-go/internal/bindings"
)

// ThreadPool wraps the fixed-size native worker pool from libjxl_threads.
// Construction fails with ErrThreadsNotBuilt when that library is not linked
// in. One pool can serve several decoders and encoders, but it must outlive
// every handle it is installed on and be Closed exactly once afterwards.
type ThreadPool struct {
	raw    *bindings.ThreadRunner
	closed bool
}

// NewThreadPool creates a pool with numWorkers threads; zero picks the
// native library's default for this machine.
func NewThreadPool(numWorkers uint) (*ThreadPool, error) {
	raw, err := bindings.NewThreadRunner(numWorkers)
	if err != nil {
		return nil, err
	}
	p := &ThreadPool{raw: raw}
	runtime.SetFinalizer(p, func(p *ThreadPool) { _ = p.Close() })
	return p, nil
}

// Close destroys the pool. Every handle it was installed on must already be
// closed. Nil-safe and idempotent.
func (p *ThreadPool) Close() error {
	if p == nil || p.closed {
		return nil
	}
	p.raw.Destroy()
	p.closed = true
	runtime.SetFinalizer(p, nil)
	return nil
}

// DefaultWorkerCount reports the pool size the native library would pick on
// this machine, or zero when libjxl_threads is not linked in.
func DefaultWorkerCount() uint {
	return bindings.DefaultWorkerCount()
}

// ResizablePool wraps the native runner whose worker count can change
// between images. It starts at one worker; call Resize once the image
// dimensions are known, typically with SuggestedThreadCount.
type ResizablePool struct {
	raw    *bindings.ResizableRunner
	closed bool
}

// NewResizablePool creates a resizable pool. Fails with ErrThreadsNotBuilt
// when libjxl_threads is not linked in.
func NewResizablePool() (*ResizablePool, error) {
	raw, err := bindings.NewResizableRunner()
	if err != nil {
		return nil, err
	}
	p := &ResizablePool{raw: raw}
	runtime.SetFinalizer(p, func(p *ResizablePool) { _ = p.Close() })
	return p, nil
}

// Close destroys the pool. Nil-safe and idempotent.
func (p *ResizablePool) Close() error {
	if p == nil || p.closed {
		return nil
	}
	p.raw.Destroy()
	p.closed = true
	runtime.SetFinalizer(p, nil)
	return nil
}

// Resize sets the worker count. Must not overlap an in-flight decode or
// encode that uses this pool.
func (p *ResizablePool) Resize(n uint) error {
	if p == nil || p.closed {
		return ErrClosed
	}
	p.raw.SetThreadCount(n)
	return nil
}

// SuggestedThreadCount returns the native library's recommended worker count
// for an image of the given dimensions.
func SuggestedThreadCount(xsize, ysize uint64) uint {
	return bindings.SuggestedThreadCount(xsize, ysize)
}
