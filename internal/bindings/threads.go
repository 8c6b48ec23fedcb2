//go:build cgo && !windows && jxlthreads

package bindings

/*
#include <jxl/thread_parallel_runner.h>
#include <jxl/resizable_parallel_runner.h>
#include <jxl/decode.h>
#include <jxl/encode.h>

static JxlDecoderStatus jxlgo_decoder_set_thread_runner(JxlDecoder* dec, void* runner) {
	return JxlDecoderSetParallelRunner(dec, JxlThreadParallelRunner, runner);
}
static JxlEncoderStatus jxlgo_encoder_set_thread_runner(JxlEncoder* enc, void* runner) {
	return JxlEncoderSetParallelRunner(enc, JxlThreadParallelRunner, runner);
}
static JxlDecoderStatus jxlgo_decoder_set_resizable_runner(JxlDecoder* dec, void* runner) {
	return JxlDecoderSetParallelRunner(dec, JxlResizableParallelRunner, runner);
}
static JxlEncoderStatus jxlgo_encoder_set_resizable_runner(JxlEncoder* enc, void* runner) {
	return JxlEncoderSetParallelRunner(enc, JxlResizableParallelRunner, runner);
}
*/
import "C"

import (
	"errors"
	"unsafe"
)

// ThreadRunner is the native fixed-size thread pool from libjxl_threads. It
// must outlive every handle it is installed on and be destroyed exactly once.
type ThreadRunner struct {
	ptr unsafe.Pointer
}

// NewThreadRunner creates a pool with the given worker count; zero workers
// means the library's default for this machine.
func NewThreadRunner(numWorkers uint) (*ThreadRunner, error) {
	n := C.size_t(numWorkers)
	if numWorkers == 0 {
		n = C.JxlThreadParallelRunnerDefaultNumWorkerThreads()
	}
	ptr := C.JxlThreadParallelRunnerCreate(nil, n)
	if ptr == nil {
		return nil, errors.New("jpegxl: JxlThreadParallelRunnerCreate failed")
	}
	return &ThreadRunner{ptr: ptr}, nil
}

// Destroy releases the pool. Handles configured with it must already be gone.
func (r *ThreadRunner) Destroy() {
	if r.ptr == nil {
		return
	}
	C.JxlThreadParallelRunnerDestroy(r.ptr)
	r.ptr = nil
}

// DefaultWorkerCount reports the pool size the native library would pick.
func DefaultWorkerCount() uint {
	return uint(C.JxlThreadParallelRunnerDefaultNumWorkerThreads())
}

// SetThreadRunner installs the native pool as this decoder's runner.
func (d *Decoder) SetThreadRunner(r *ThreadRunner) DecoderStatus {
	if r == nil || r.ptr == nil {
		return DecError
	}
	return DecoderStatus(C.jxlgo_decoder_set_thread_runner(d.ptr, r.ptr))
}

// SetThreadRunner installs the native pool as this encoder's runner.
func (e *Encoder) SetThreadRunner(r *ThreadRunner) EncoderStatus {
	if r == nil || r.ptr == nil {
		return EncError
	}
	return EncoderStatus(C.jxlgo_encoder_set_thread_runner(e.ptr, r.ptr))
}

// ResizableRunner is the native runner whose worker count can be adjusted
// between images, typically after basic info revealed the image size.
type ResizableRunner struct {
	ptr unsafe.Pointer
}

// NewResizableRunner creates a resizable pool starting at one worker.
func NewResizableRunner() (*ResizableRunner, error) {
	ptr := C.JxlResizableParallelRunnerCreate(nil)
	if ptr == nil {
		return nil, errors.New("jpegxl: JxlResizableParallelRunnerCreate failed")
	}
	return &ResizableRunner{ptr: ptr}, nil
}

// Destroy releases the pool.
func (r *ResizableRunner) Destroy() {
	if r.ptr == nil {
		return
	}
	C.JxlResizableParallelRunnerDestroy(r.ptr)
	r.ptr = nil
}

// SetThreadCount resizes the pool. Must not be called while a decode or
// encode using this runner is in flight.
func (r *ResizableRunner) SetThreadCount(n uint) {
	C.JxlResizableParallelRunnerSetThreads(r.ptr, C.size_t(n))
}

// SuggestedThreadCount returns the library's recommended worker count for an
// image of the given dimensions.
func SuggestedThreadCount(xsize, ysize uint64) uint {
	return uint(C.JxlResizableParallelRunnerSuggestThreads(C.uint64_t(xsize), C.uint64_t(ysize)))
}

// SetResizableRunner installs the resizable pool as this decoder's runner.
func (d *Decoder) SetResizableRunner(r *ResizableRunner) DecoderStatus {
	if r == nil || r.ptr == nil {
		return DecError
	}
	return DecoderStatus(C.jxlgo_decoder_set_resizable_runner(d.ptr, r.ptr))
}

// SetResizableRunner installs the resizable pool as this encoder's runner.
func (e *Encoder) SetResizableRunner(r *ResizableRunner) EncoderStatus {
	if r == nil || r.ptr == nil {
		return EncError
	}
	return EncoderStatus(C.jxlgo_encoder_set_resizable_runner(e.ptr, r.ptr))
}

// ThreadsAvailable reports whether libjxl_threads is linked in.
func ThreadsAvailable() bool { return true }
