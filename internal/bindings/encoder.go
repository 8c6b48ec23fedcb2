//go:build cgo && !windows

package bindings

/*
#include <stdlib.h>
#include <jxl/encode.h>
*/
import "C"

import (
	"errors"
	"unsafe"
)

// Encoder wraps the native JxlEncoder opaque handle. Like the decoder it is
// single-owner: one goroutine at a time, Destroy exactly once.
type Encoder struct {
	ptr *C.JxlEncoder

	mm       *MemoryManager
	mmHandle handle

	runnerHandle handle
}

// FrameSettings is an options handle owned by its Encoder; the native library
// destroys it together with the encoder, so it has no Destroy of its own.
type FrameSettings struct {
	ptr *C.JxlEncoderFrameSettings
}

// NewEncoder creates an encoder. A nil MemoryManager keeps the native
// library's default allocator.
func NewEncoder(mm *MemoryManager) (*Encoder, error) {
	e := &Encoder{}
	var cmm *C.JxlMemoryManager
	if mm != nil {
		var h handle
		cmm, h = mm.cTable()
		e.mm = mm
		e.mmHandle = h
	}
	e.ptr = C.JxlEncoderCreate(cmm)
	if e.ptr == nil {
		if e.mmHandle != 0 {
			regDel(e.mmHandle)
		}
		return nil, errors.New("jpegxl: JxlEncoderCreate failed")
	}
	return e, nil
}

// Destroy releases the native handle and every FrameSettings created from it.
func (e *Encoder) Destroy() {
	if e.ptr == nil {
		return
	}
	C.JxlEncoderDestroy(e.ptr)
	e.ptr = nil
	if e.mmHandle != 0 {
		regDel(e.mmHandle)
		e.mmHandle = 0
	}
	e.mm = nil
	if e.runnerHandle != 0 {
		regDel(e.runnerHandle)
		e.runnerHandle = 0
	}
}

// Reset returns the encoder to its initial state, invalidating existing
// FrameSettings.
func (e *Encoder) Reset() {
	C.JxlEncoderReset(e.ptr)
}

// InitBasicInfo returns the native library's default-initialized BasicInfo.
func InitBasicInfo() (BasicInfo, error) {
	var ci C.JxlBasicInfo
	C.JxlEncoderInitBasicInfo(&ci)
	return basicInfoFromC(&ci), nil
}

// SetBasicInfo declares the image dimensions and sample format. Must come
// before color encoding and frames.
func (e *Encoder) SetBasicInfo(info BasicInfo) EncoderStatus {
	ci := basicInfoToC(info)
	return EncoderStatus(C.JxlEncoderSetBasicInfo(e.ptr, &ci))
}

// SetColorEncoding declares the color encoding of the input pixels.
func (e *Encoder) SetColorEncoding(c ColorEncoding) EncoderStatus {
	cc := colorEncodingToC(c)
	return EncoderStatus(C.JxlEncoderSetColorEncoding(e.ptr, &cc))
}

// FrameSettings creates an options handle for subsequent frames, copying the
// source settings when non-nil.
func (e *Encoder) FrameSettings(source *FrameSettings) (*FrameSettings, error) {
	var src *C.JxlEncoderFrameSettings
	if source != nil {
		src = source.ptr
	}
	fs := C.JxlEncoderFrameSettingsCreate(e.ptr, src)
	if fs == nil {
		return nil, errors.New("jpegxl: JxlEncoderFrameSettingsCreate failed")
	}
	return &FrameSettings{ptr: fs}, nil
}

// AddImageFrame appends one frame of pixels. The buffer is borrowed for the
// duration of the call only; the native library copies what it needs before
// returning, so no pinning beyond the call is required.
func (fs *FrameSettings) AddImageFrame(f PixelFormat, pixels []byte) EncoderStatus {
	if len(pixels) == 0 {
		return EncError
	}
	cf := pixelFormatToC(f)
	return EncoderStatus(C.JxlEncoderAddImageFrame(fs.ptr, &cf,
		unsafe.Pointer(&pixels[0]), C.size_t(len(pixels))))
}

// CloseInput declares that no further frames will be added, letting
// ProcessOutput run to completion.
func (e *Encoder) CloseInput() {
	C.JxlEncoderCloseInput(e.ptr)
}

// ProcessOutput writes compressed bytes into the caller-owned out buffer and
// reports how many were produced. EncNeedMoreOutput means out filled up and
// the call should be repeated with a fresh buffer. The buffer is only written
// during the call.
func (e *Encoder) ProcessOutput(out []byte) (int, EncoderStatus) {
	if len(out) == 0 {
		return 0, EncNeedMoreOutput
	}
	nextOut := (*C.uint8_t)(unsafe.Pointer(&out[0]))
	availOut := C.size_t(len(out))
	st := EncoderStatus(C.JxlEncoderProcessOutput(e.ptr, &nextOut, &availOut))
	return len(out) - int(availOut), st
}

// Error returns the detail code behind the most recent EncError.
func (e *Encoder) Error() EncoderError {
	return EncoderError(C.JxlEncoderGetError(e.ptr))
}
