//go:build !cgo || windows

package bindings

import "unsafe"

// Stub implementations for non-cgo builds and Windows. The package compiles
// and the pure-Go types stay usable; every native entry point reports
// ErrNotBuilt (or an error status) so callers and tests can skip.

func Available() bool { return false }

func DecoderVersion() (uint32, error) { return 0, ErrNotBuilt }

func EncoderVersion() (uint32, error) { return 0, ErrNotBuilt }

func SignatureCheck([]byte) (Signature, error) { return SigNotEnoughBytes, ErrNotBuilt }

func SRGBColorEncoding(bool) (ColorEncoding, error) { return ColorEncoding{}, ErrNotBuilt }

func InitBasicInfo() (BasicInfo, error) { return BasicInfo{}, ErrNotBuilt }

type MemoryManager struct {
	Alloc func(size uint) unsafe.Pointer
	Free  func(ptr unsafe.Pointer)
}

func Malloc(uint) unsafe.Pointer { return nil }

func Free(unsafe.Pointer) {}

type Decoder struct{}

func NewDecoder(*MemoryManager) (*Decoder, error) { return nil, ErrNotBuilt }

func (d *Decoder) Destroy() {}

func (d *Decoder) Reset() {}

func (d *Decoder) Rewind() {}

func (d *Decoder) SubscribeEvents(DecoderStatus) DecoderStatus { return DecError }

func (d *Decoder) SizeHintBasicInfo() uint { return 0 }

func (d *Decoder) SetInput([]byte) DecoderStatus { return DecError }

func (d *Decoder) ReleaseInput() uint { return 0 }

func (d *Decoder) CloseInput() {}

func (d *Decoder) ProcessInput() DecoderStatus { return DecError }

func (d *Decoder) GetBasicInfo() (BasicInfo, DecoderStatus) { return BasicInfo{}, DecError }

func (d *Decoder) GetFrameHeader() (FrameHeader, DecoderStatus) { return FrameHeader{}, DecError }

func (d *Decoder) GetColorAsEncodedProfile(ColorProfileTarget) (ColorEncoding, DecoderStatus) {
	return ColorEncoding{}, DecError
}

func (d *Decoder) ICCProfile(ColorProfileTarget) ([]byte, DecoderStatus) { return nil, DecError }

func (d *Decoder) ImageOutBufferSize(PixelFormat) (uint, DecoderStatus) { return 0, DecError }

func (d *Decoder) SetImageOutBuffer(PixelFormat, []byte) DecoderStatus { return DecError }

func (d *Decoder) FlushImage() DecoderStatus { return DecError }

func (d *Decoder) SetGoRunner(RunnerFunc) DecoderStatus { return DecError }

type Encoder struct{}

type FrameSettings struct{}

func NewEncoder(*MemoryManager) (*Encoder, error) { return nil, ErrNotBuilt }

func (e *Encoder) Destroy() {}

func (e *Encoder) Reset() {}

func (e *Encoder) SetBasicInfo(BasicInfo) EncoderStatus { return EncError }

func (e *Encoder) SetColorEncoding(ColorEncoding) EncoderStatus { return EncError }

func (e *Encoder) FrameSettings(*FrameSettings) (*FrameSettings, error) { return nil, ErrNotBuilt }

func (fs *FrameSettings) AddImageFrame(PixelFormat, []byte) EncoderStatus { return EncError }

func (e *Encoder) CloseInput() {}

func (e *Encoder) ProcessOutput([]byte) (int, EncoderStatus) { return 0, EncError }

func (e *Encoder) Error() EncoderError { return EncErrGeneric }

func (e *Encoder) SetGoRunner(RunnerFunc) EncoderStatus { return EncError }
