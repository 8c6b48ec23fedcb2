//go:build cgo && !windows

package bindings

/*
#include <stdlib.h>
#include <jxl/decode.h>
*/
import "C"

import (
	"errors"
	"runtime"
	"unsafe"
)

// Decoder wraps the native JxlDecoder opaque handle. The native state machine
// is not reentrant per handle; callers must not drive one Decoder from two
// goroutines concurrently. Destroy must be called exactly once; every method
// is invalid after it.
type Decoder struct {
	ptr *C.JxlDecoder

	// inPin and outPin keep the caller's input and output buffers pinned for
	// as long as the native library may hold their addresses. Input is
	// pinned from SetInput to ReleaseInput, output from SetImageOutBuffer
	// until the decoder is reset, rewound or destroyed.
	inPin     runtime.Pinner
	inPinned  bool
	outPin    runtime.Pinner
	outPinned bool

	// mm keeps a caller-supplied memory manager reachable for the handle's
	// whole lifetime, per the native contract.
	mm       *MemoryManager
	mmHandle handle

	// runnerHandle is the registry entry of an installed Go parallel
	// runner, held until Destroy.
	runnerHandle handle
}

// NewDecoder creates a decoder. A nil MemoryManager keeps the native
// library's default allocator.
func NewDecoder(mm *MemoryManager) (*Decoder, error) {
	d := &Decoder{}
	var cmm *C.JxlMemoryManager
	if mm != nil {
		var h handle
		cmm, h = mm.cTable()
		d.mm = mm
		d.mmHandle = h
	}
	d.ptr = C.JxlDecoderCreate(cmm)
	if d.ptr == nil {
		d.releaseMM()
		return nil, errors.New("jpegxl: JxlDecoderCreate failed")
	}
	return d, nil
}

func (d *Decoder) releaseMM() {
	if d.mmHandle != 0 {
		regDel(d.mmHandle)
		d.mmHandle = 0
	}
	d.mm = nil
}

func (d *Decoder) unpinInput() {
	if d.inPinned {
		d.inPin.Unpin()
		d.inPinned = false
	}
}

func (d *Decoder) unpinOutput() {
	if d.outPinned {
		d.outPin.Unpin()
		d.outPinned = false
	}
}

// Destroy releases the native handle. Any buffer addresses the handle held
// become unreferenced before the pins are dropped.
func (d *Decoder) Destroy() {
	if d.ptr == nil {
		return
	}
	C.JxlDecoderDestroy(d.ptr)
	d.ptr = nil
	d.unpinInput()
	d.unpinOutput()
	d.releaseMM()
	if d.runnerHandle != 0 {
		regDel(d.runnerHandle)
		d.runnerHandle = 0
	}
}

// Reset returns the decoder to its initial state, keeping the handle (and a
// configured memory manager) alive.
func (d *Decoder) Reset() {
	C.JxlDecoderReset(d.ptr)
	d.unpinInput()
	d.unpinOutput()
}

// Rewind prepares re-decoding from the start of a fully buffered stream.
func (d *Decoder) Rewind() {
	C.JxlDecoderRewind(d.ptr)
	d.unpinOutput()
}

// SubscribeEvents selects which informational states ProcessInput will stop
// at. The mask is an OR of the informational DecoderStatus codes.
func (d *Decoder) SubscribeEvents(events DecoderStatus) DecoderStatus {
	return DecoderStatus(C.JxlDecoderSubscribeEvents(d.ptr, C.int(events)))
}

// SizeHintBasicInfo reports how many further input bytes the decoder likely
// needs before basic info is available.
func (d *Decoder) SizeHintBasicInfo() uint {
	return uint(C.JxlDecoderSizeHintBasicInfo(d.ptr))
}

// SetInput hands data to the decoder. The slice is borrowed: the native
// library holds its address until ReleaseInput, so the buffer is pinned and
// the caller must not modify it in between. Only one input may be set at a
// time, per the native contract.
func (d *Decoder) SetInput(data []byte) DecoderStatus {
	if len(data) == 0 {
		return DecError
	}
	if d.inPinned {
		return DecError
	}
	d.inPin.Pin(&data[0])
	d.inPinned = true
	st := DecoderStatus(C.JxlDecoderSetInput(d.ptr,
		(*C.uint8_t)(unsafe.Pointer(&data[0])), C.size_t(len(data))))
	if st != DecSuccess {
		d.unpinInput()
	}
	return st
}

// ReleaseInput returns how many tail bytes of the current input were not yet
// consumed and unpins the input buffer. It is a no-op without a set input.
func (d *Decoder) ReleaseInput() uint {
	n := uint(C.JxlDecoderReleaseInput(d.ptr))
	d.unpinInput()
	return n
}

// CloseInput marks the current input as the last; the decoder will then fail
// with an error status instead of asking for more bytes at a truncation.
func (d *Decoder) CloseInput() {
	C.JxlDecoderCloseInput(d.ptr)
}

// ProcessInput advances the state machine until the next subscribed event,
// need-more-input, full image, or error. All native work, including any
// parallel runner activity, completes before this returns.
func (d *Decoder) ProcessInput() DecoderStatus {
	return DecoderStatus(C.JxlDecoderProcessInput(d.ptr))
}

// GetBasicInfo is valid once ProcessInput returned DecBasicInfo.
func (d *Decoder) GetBasicInfo() (BasicInfo, DecoderStatus) {
	var ci C.JxlBasicInfo
	st := DecoderStatus(C.JxlDecoderGetBasicInfo(d.ptr, &ci))
	if st != DecSuccess {
		return BasicInfo{}, st
	}
	return basicInfoFromC(&ci), st
}

// GetFrameHeader is valid once ProcessInput returned DecFrame.
func (d *Decoder) GetFrameHeader() (FrameHeader, DecoderStatus) {
	var ch C.JxlFrameHeader
	st := DecoderStatus(C.JxlDecoderGetFrameHeader(d.ptr, &ch))
	if st != DecSuccess {
		return FrameHeader{}, st
	}
	return FrameHeader{
		Duration:   uint32(ch.duration),
		Timecode:   uint32(ch.timecode),
		NameLength: uint32(ch.name_length),
		IsLast:     goBool(ch.is_last),
	}, st
}

// GetColorAsEncodedProfile is valid once ProcessInput returned
// DecColorEncoding, and only when the color metadata is representable as an
// encoded profile rather than raw ICC.
func (d *Decoder) GetColorAsEncodedProfile(target ColorProfileTarget) (ColorEncoding, DecoderStatus) {
	var cc C.JxlColorEncoding
	st := DecoderStatus(C.JxlDecoderGetColorAsEncodedProfile(d.ptr,
		C.JxlColorProfileTarget(target), &cc))
	if st != DecSuccess {
		return ColorEncoding{}, st
	}
	return colorEncodingFromC(&cc), st
}

// ICCProfile returns a copy of the ICC profile bytes. The native library owns
// the underlying data; the copy means no native-owned pointer escapes.
func (d *Decoder) ICCProfile(target ColorProfileTarget) ([]byte, DecoderStatus) {
	var size C.size_t
	st := DecoderStatus(C.JxlDecoderGetICCProfileSize(d.ptr,
		C.JxlColorProfileTarget(target), &size))
	if st != DecSuccess {
		return nil, st
	}
	if size == 0 {
		return nil, DecSuccess
	}
	buf := make([]byte, int(size))
	st = DecoderStatus(C.JxlDecoderGetColorAsICCProfile(d.ptr,
		C.JxlColorProfileTarget(target),
		(*C.uint8_t)(unsafe.Pointer(&buf[0])), size))
	if st != DecSuccess {
		return nil, st
	}
	return buf, DecSuccess
}

// ImageOutBufferSize reports the byte size an output buffer for format must
// have.
func (d *Decoder) ImageOutBufferSize(f PixelFormat) (uint, DecoderStatus) {
	cf := pixelFormatToC(f)
	var size C.size_t
	st := DecoderStatus(C.JxlDecoderImageOutBufferSize(d.ptr, &cf, &size))
	return uint(size), st
}

// SetImageOutBuffer installs the caller-owned pixel output buffer. The
// decoder only writes into it; it stays pinned until the image is done and
// the decoder is reset, rewound or destroyed. Calling this before the state
// machine reached need-image-out-buffer yields an error status from the
// native library.
func (d *Decoder) SetImageOutBuffer(f PixelFormat, buf []byte) DecoderStatus {
	if len(buf) == 0 {
		return DecError
	}
	cf := pixelFormatToC(f)
	d.outPin.Pin(&buf[0])
	d.outPinned = true
	st := DecoderStatus(C.JxlDecoderSetImageOutBuffer(d.ptr, &cf,
		unsafe.Pointer(&buf[0]), C.size_t(len(buf))))
	if st != DecSuccess {
		// Rejected buffers are not retained by the native side.
		d.unpinOutput()
	}
	return st
}

// FlushImage forces partial pixel output for progressive display; DecError
// here means nothing further could be flushed, not a broken stream.
func (d *Decoder) FlushImage() DecoderStatus {
	return DecoderStatus(C.JxlDecoderFlushImage(d.ptr))
}
