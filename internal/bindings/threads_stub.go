//go:build !cgo || windows || !jxlthreads

package bindings

// Stubs for builds without libjxl_threads. Constructors fail with
// ErrThreadsNotBuilt so callers can fall back to a Go runner or the native
// default.

type ThreadRunner struct{}

func NewThreadRunner(uint) (*ThreadRunner, error) { return nil, ErrThreadsNotBuilt }

func (r *ThreadRunner) Destroy() {}

func DefaultWorkerCount() uint { return 0 }

func (d *Decoder) SetThreadRunner(*ThreadRunner) DecoderStatus { return DecError }

func (e *Encoder) SetThreadRunner(*ThreadRunner) EncoderStatus { return EncError }

type ResizableRunner struct{}

func NewResizableRunner() (*ResizableRunner, error) { return nil, ErrThreadsNotBuilt }

func (r *ResizableRunner) Destroy() {}

func (r *ResizableRunner) SetThreadCount(uint) {}

func SuggestedThreadCount(uint64, uint64) uint { return 1 }

func (d *Decoder) SetResizableRunner(*ResizableRunner) DecoderStatus { return DecError }

func (e *Encoder) SetResizableRunner(*ResizableRunner) EncoderStatus { return EncError }

func ThreadsAvailable() bool { return false }
