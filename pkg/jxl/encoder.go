package jxl

import (
	"runtime"

	"github.com/imagecodecs/jpegxl-go/internal/bindings"
)

// Encoder owns a native encoder handle. The push-based flow is: SetBasicInfo,
// SetColorEncoding, AddImageFrame per frame through a FrameSettings handle,
// CloseInput, then ProcessOutput until EncSuccess.
//
// Close exactly once when done; afterwards every method fails with ErrClosed.
// Like Decoder, an Encoder must not be shared between goroutines without
// external synchronization.
type Encoder struct {
	raw    *bindings.Encoder
	closed bool

	pool      *ThreadPool
	resizable *ResizablePool
}

// FrameSettings is an options handle for adding frames. It is owned by its
// Encoder: the native library destroys it with the encoder, so it has no
// Close of its own and becomes invalid when the Encoder is closed or reset.
type FrameSettings struct {
	enc *Encoder
	raw *bindings.FrameSettings
}

// NewEncoder creates an encoder using the native library's default allocator.
func NewEncoder() (*Encoder, error) {
	return NewEncoderWithManager(nil)
}

// NewEncoderWithManager creates an encoder whose allocations go through mm.
func NewEncoderWithManager(mm *MemoryManager) (*Encoder, error) {
	raw, err := bindings.NewEncoder(mm)
	if err != nil {
		return nil, err
	}
	e := &Encoder{raw: raw}
	runtime.SetFinalizer(e, func(e *Encoder) { _ = e.Close() })
	return e, nil
}

// Close destroys the native handle and every FrameSettings created from it.
// Nil-safe and idempotent.
func (e *Encoder) Close() error {
	if e == nil || e.closed {
		return nil
	}
	e.raw.Destroy()
	e.closed = true
	e.pool = nil
	e.resizable = nil
	runtime.SetFinalizer(e, nil)
	return nil
}

func (e *Encoder) usable() error {
	if e == nil || e.closed {
		return ErrClosed
	}
	return nil
}

// Reset returns the handle to its initial state. Existing FrameSettings
// handles are invalidated.
func (e *Encoder) Reset() error {
	if err := e.usable(); err != nil {
		return err
	}
	e.raw.Reset()
	return nil
}

// encStatusErr folds an encoder status into an error, attaching the native
// detail code when the status is EncError.
func (e *Encoder) encStatusErr(st EncoderStatus) error {
	if st == EncSuccess {
		return nil
	}
	err := &EncoderStatusError{Status: st}
	if st == EncError {
		err.Code = e.raw.Error()
	}
	return err
}

// SetParallelRunner installs a Go-implemented parallel runner.
func (e *Encoder) SetParallelRunner(fn RunnerFunc) error {
	if err := e.usable(); err != nil {
		return err
	}
	if fn == nil {
		return &EncoderStatusError{Status: EncError, Code: EncErrAPIUsage}
	}
	return e.encStatusErr(e.raw.SetGoRunner(fn))
}

// SetThreadPool installs the native thread-pool runner. The caller keeps
// ownership of the pool and must not Close it before the encoder's last call.
func (e *Encoder) SetThreadPool(p *ThreadPool) error {
	if err := e.usable(); err != nil {
		return err
	}
	if p == nil || p.raw == nil {
		return &EncoderStatusError{Status: EncError, Code: EncErrAPIUsage}
	}
	if err := e.encStatusErr(e.raw.SetThreadRunner(p.raw)); err != nil {
		return err
	}
	e.pool = p
	return nil
}

// SetResizablePool installs the native resizable runner.
func (e *Encoder) SetResizablePool(p *ResizablePool) error {
	if err := e.usable(); err != nil {
		return err
	}
	if p == nil || p.raw == nil {
		return &EncoderStatusError{Status: EncError, Code: EncErrAPIUsage}
	}
	if err := e.encStatusErr(e.raw.SetResizableRunner(p.raw)); err != nil {
		return err
	}
	e.resizable = p
	return nil
}

// SetBasicInfo declares the image header. Start from NewBasicInfo so
// unspecified fields carry the native defaults rather than zero values.
func (e *Encoder) SetBasicInfo(info BasicInfo) error {
	if err := e.usable(); err != nil {
		return err
	}
	return e.encStatusErr(e.raw.SetBasicInfo(info))
}

// SetColorEncoding declares the color encoding of the frames to come.
func (e *Encoder) SetColorEncoding(c ColorEncoding) error {
	if err := e.usable(); err != nil {
		return err
	}
	return e.encStatusErr(e.raw.SetColorEncoding(c))
}

// NewFrameSettings creates a frame options handle, copying source when
// non-nil. The handle lives exactly as long as the encoder.
func (e *Encoder) NewFrameSettings(source *FrameSettings) (*FrameSettings, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	var src *bindings.FrameSettings
	if source != nil {
		src = source.raw
	}
	raw, err := e.raw.FrameSettings(src)
	if err != nil {
		return nil, err
	}
	return &FrameSettings{enc: e, raw: raw}, nil
}

// AddImageFrame appends one frame of pixels under these settings. The pixel
// slice is borrowed only for the duration of the call.
func (fs *FrameSettings) AddImageFrame(format PixelFormat, pixels []byte) error {
	if fs == nil || fs.enc == nil {
		return ErrClosed
	}
	if err := fs.enc.usable(); err != nil {
		return err
	}
	if len(pixels) == 0 {
		return &EncoderStatusError{Status: EncError, Code: EncErrAPIUsage}
	}
	return fs.enc.encStatusErr(fs.raw.AddImageFrame(format, pixels))
}

// CloseInput declares that no further frames will be added, allowing
// ProcessOutput to drain to EncSuccess.
func (e *Encoder) CloseInput() error {
	if err := e.usable(); err != nil {
		return err
	}
	e.raw.CloseInput()
	return nil
}

// ProcessOutput writes compressed bytes into out and returns how many were
// produced together with the encoder status. EncNeedMoreOutput is not an
// error: it means out filled up and the call should be repeated. The buffer
// is caller-owned and only written during the call.
func (e *Encoder) ProcessOutput(out []byte) (int, EncoderStatus, error) {
	if err := e.usable(); err != nil {
		return 0, EncError, err
	}
	n, st := e.raw.ProcessOutput(out)
	if st == EncError {
		return n, st, e.encStatusErr(st)
	}
	return n, st, nil
}

// Encode drains the encoder into a growing buffer after CloseInput, for
// callers that do not need streaming output.
func (e *Encoder) Encode() ([]byte, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	var compressed []byte
	chunk := make([]byte, 64*1024)
	for {
		n, st, err := e.ProcessOutput(chunk)
		if err != nil {
			return nil, err
		}
		compressed = append(compressed, chunk[:n]...)
		switch st {
		case EncSuccess:
			return compressed, nil
		case EncNeedMoreOutput:
			// keep going with the same scratch chunk
		default:
			return nil, e.encStatusErr(st)
		}
	}
}
