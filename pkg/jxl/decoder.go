package jxl

import (
	"runtime"

	"github.com/imagecodecs/jpegxl-go/internal/bindings"
)

// Decoder owns a native decoder handle and drives its pull-based state
// machine. The machine moves through need-more-input, basic-info,
// color-encoding, need-image-out-buffer, full-image and success, and can drop
// into a terminal error state from any of them; after that the handle can
// only be Closed.
//
// Memory management: call Close exactly once when done (it is nil-safe and
// idempotent; a finalizer exists as a safety net only). A Decoder must not be
// driven by more than one goroutine at a time; the native machine is not
// reentrant per handle.
type Decoder struct {
	raw    *bindings.Decoder
	closed bool
	failed bool

	// pool and resizable keep installed runners reachable while the native
	// handle may still call into them.
	pool      *ThreadPool
	resizable *ResizablePool
}

// NewDecoder creates a decoder using the native library's default allocator.
func NewDecoder() (*Decoder, error) {
	return NewDecoderWithManager(nil)
}

// NewDecoderWithManager creates a decoder whose allocations go through mm.
// The manager must stay valid until Close; the Decoder holds a reference to
// guarantee that on the Go side.
func NewDecoderWithManager(mm *MemoryManager) (*Decoder, error) {
	raw, err := bindings.NewDecoder(mm)
	if err != nil {
		return nil, err
	}
	d := &Decoder{raw: raw}
	runtime.SetFinalizer(d, func(d *Decoder) { _ = d.Close() })
	return d, nil
}

// Close destroys the native handle. After Close every other method fails
// with ErrClosed. Buffers previously handed to SetImageOutBuffer must no
// longer be read through decoder-provided pointers once Close returns; the
// caller's own slices of course remain valid.
func (d *Decoder) Close() error {
	if d == nil || d.closed {
		return nil
	}
	d.raw.Destroy()
	d.closed = true
	d.pool = nil
	d.resizable = nil
	runtime.SetFinalizer(d, nil)
	return nil
}

// usable gates methods on the closed and terminal-error states.
func (d *Decoder) usable() error {
	if d == nil || d.closed {
		return ErrClosed
	}
	if d.failed {
		return ErrFailed
	}
	return nil
}

// Reset returns the handle to its initial state, clearing a terminal error
// and any subscriptions, input and buffers.
func (d *Decoder) Reset() error {
	if d == nil || d.closed {
		return ErrClosed
	}
	d.raw.Reset()
	d.failed = false
	return nil
}

// Rewind prepares decoding again from the beginning of the stream, keeping
// subscriptions cheap to re-deliver.
func (d *Decoder) Rewind() error {
	if err := d.usable(); err != nil {
		return err
	}
	d.raw.Rewind()
	return nil
}

// SubscribeEvents selects the informational states ProcessInput stops at,
// as an OR of DecBasicInfo, DecColorEncoding, DecFrame, DecFullImage and
// friends. Must be called before the first ProcessInput.
func (d *Decoder) SubscribeEvents(events DecoderStatus) error {
	if err := d.usable(); err != nil {
		return err
	}
	return decStatusErr(d.raw.SubscribeEvents(events))
}

// SetParallelRunner installs a Go-implemented parallel runner. A nil runner
// is rejected; simply not calling this keeps the native library's own
// single-threaded default, which the binding never substitutes.
func (d *Decoder) SetParallelRunner(fn RunnerFunc) error {
	if err := d.usable(); err != nil {
		return err
	}
	if fn == nil {
		return &DecoderStatusError{Status: DecError}
	}
	return decStatusErr(d.raw.SetGoRunner(fn))
}

// SetThreadPool installs the native thread-pool runner. The pool must
// outlive the decoder's last call; the decoder keeps it reachable until
// Close, but the caller still owns (and must Close) the pool itself.
func (d *Decoder) SetThreadPool(p *ThreadPool) error {
	if err := d.usable(); err != nil {
		return err
	}
	if p == nil || p.raw == nil {
		return &DecoderStatusError{Status: DecError}
	}
	if st := d.raw.SetThreadRunner(p.raw); st != DecSuccess {
		return decStatusErr(st)
	}
	d.pool = p
	return nil
}

// SetResizablePool installs the native resizable runner, typically resized
// after basic info reveals the image dimensions.
func (d *Decoder) SetResizablePool(p *ResizablePool) error {
	if err := d.usable(); err != nil {
		return err
	}
	if p == nil || p.raw == nil {
		return &DecoderStatusError{Status: DecError}
	}
	if st := d.raw.SetResizableRunner(p.raw); st != DecSuccess {
		return decStatusErr(st)
	}
	d.resizable = p
	return nil
}

// SetInput hands compressed bytes to the decoder. The slice is borrowed
// until ReleaseInput (or Close): the native library reads it lazily from
// ProcessInput, so it must not be modified in between. Only one input span
// can be set at a time.
func (d *Decoder) SetInput(data []byte) error {
	if err := d.usable(); err != nil {
		return err
	}
	return decStatusErr(d.raw.SetInput(data))
}

// ReleaseInput detaches the current input and returns how many of its tail
// bytes were not yet consumed; resupply them in the next SetInput.
func (d *Decoder) ReleaseInput() (int, error) {
	if d == nil || d.closed {
		return 0, ErrClosed
	}
	return int(d.raw.ReleaseInput()), nil
}

// CloseInput marks the current input as the final bytes of the stream. A
// truncated stream then surfaces as an error status instead of an endless
// need-more-input.
func (d *Decoder) CloseInput() error {
	if err := d.usable(); err != nil {
		return err
	}
	d.raw.CloseInput()
	return nil
}

// ProcessInput advances the state machine and returns the state it stopped
// at: a subscribed informational status, DecNeedMoreInput,
// DecNeedImageOutBuffer, DecFullImage or DecSuccess. DecError is terminal:
// the returned error is non-nil, the handle is marked failed, and only Reset
// or Close are accepted afterwards. The call blocks until all native work,
// including parallel runner activity, has completed.
func (d *Decoder) ProcessInput() (DecoderStatus, error) {
	if err := d.usable(); err != nil {
		return DecError, err
	}
	st := d.raw.ProcessInput()
	if st == DecError {
		d.failed = true
		return st, &DecoderStatusError{Status: st}
	}
	return st, nil
}

// SizeHintBasicInfo estimates how many further input bytes are needed before
// basic info becomes available.
func (d *Decoder) SizeHintBasicInfo() int {
	if d == nil || d.closed {
		return 0
	}
	return int(d.raw.SizeHintBasicInfo())
}

// BasicInfo returns the image header. Valid once ProcessInput has returned
// DecBasicInfo; earlier calls yield an error status, never a crash.
func (d *Decoder) BasicInfo() (BasicInfo, error) {
	if err := d.usable(); err != nil {
		return BasicInfo{}, err
	}
	info, st := d.raw.GetBasicInfo()
	if st != DecSuccess {
		return BasicInfo{}, decStatusErr(st)
	}
	return info, nil
}

// FrameHeader returns the current frame's header. Valid once ProcessInput
// has returned DecFrame.
func (d *Decoder) FrameHeader() (FrameHeader, error) {
	if err := d.usable(); err != nil {
		return FrameHeader{}, err
	}
	h, st := d.raw.GetFrameHeader()
	if st != DecSuccess {
		return FrameHeader{}, decStatusErr(st)
	}
	return h, nil
}

// ColorEncoding returns the structured color encoding for target. Valid once
// ProcessInput has returned DecColorEncoding, and only when the stream's
// color metadata is representable without a raw ICC profile.
func (d *Decoder) ColorEncoding(target ColorProfileTarget) (ColorEncoding, error) {
	if err := d.usable(); err != nil {
		return ColorEncoding{}, err
	}
	c, st := d.raw.GetColorAsEncodedProfile(target)
	if st != DecSuccess {
		return ColorEncoding{}, decStatusErr(st)
	}
	return c, nil
}

// ICCProfile returns a copy of the ICC profile for target. The returned
// slice is owned by the caller; no native-owned pointer escapes.
func (d *Decoder) ICCProfile(target ColorProfileTarget) ([]byte, error) {
	if err := d.usable(); err != nil {
		return nil, err
	}
	icc, st := d.raw.ICCProfile(target)
	if st != DecSuccess {
		return nil, decStatusErr(st)
	}
	return icc, nil
}

// ImageOutBufferSize reports the byte length an output buffer must have for
// format. Valid once basic info is known.
func (d *Decoder) ImageOutBufferSize(format PixelFormat) (int, error) {
	if err := d.usable(); err != nil {
		return 0, err
	}
	n, st := d.raw.ImageOutBufferSize(format)
	if st != DecSuccess {
		return 0, decStatusErr(st)
	}
	return int(n), nil
}

// SetImageOutBuffer installs the caller-allocated, caller-owned pixel
// buffer the decoder writes into. It is only accepted in the
// DecNeedImageOutBuffer state; calling it earlier returns an error status.
// The buffer must stay untouched by the caller until DecFullImage.
func (d *Decoder) SetImageOutBuffer(format PixelFormat, buf []byte) error {
	if err := d.usable(); err != nil {
		return err
	}
	return decStatusErr(d.raw.SetImageOutBuffer(format, buf))
}

// FlushImage forces whatever pixels are decodable so far into the output
// buffer, for progressive display. An error status means nothing new could
// be flushed; it is not terminal.
func (d *Decoder) FlushImage() error {
	if err := d.usable(); err != nil {
		return err
	}
	return decStatusErr(d.raw.FlushImage())
}
