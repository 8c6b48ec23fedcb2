// Package bindings is the cgo boundary to the native libjxl codec. It
// declares the codec's status enumerations and value structs with their exact
// native discriminants and forwards the decoder/encoder state-machine calls
// one-to-one. This package should only be imported by pkg/jxl; all cgo
// complexity is isolated here.
package bindings

import "errors"

var (
	// ErrNotBuilt reports that the native bindings were not linked into the
	// current binary. Callers and tests use this to skip native paths.
	ErrNotBuilt = errors.New("jpegxl/internal/bindings: native bindings not built")

	// ErrCGONotEnabled signals that the package was compiled without cgo and
	// therefore cannot talk to the native library.
	ErrCGONotEnabled = errors.New("jpegxl/internal/bindings: cgo not enabled")

	// ErrThreadsNotBuilt reports that the thread-pool runner library was not
	// linked in (build without the jxlthreads tag).
	ErrThreadsNotBuilt = errors.New("jpegxl/internal/bindings: libjxl_threads not built in")
)

// DecoderStatus mirrors JxlDecoderStatus. The informational codes double as
// the event bitmask passed to SubscribeEvents, which is why they are sparse
// powers of two.
type DecoderStatus int32

const (
	DecSuccess              DecoderStatus = 0
	DecError                DecoderStatus = 1
	DecNeedMoreInput        DecoderStatus = 2
	DecNeedPreviewOutBuffer DecoderStatus = 3
	DecNeedImageOutBuffer   DecoderStatus = 5
	DecJPEGNeedMoreOutput   DecoderStatus = 6
	DecBoxNeedMoreOutput    DecoderStatus = 7
	DecBasicInfo            DecoderStatus = 0x40
	DecColorEncoding        DecoderStatus = 0x100
	DecPreviewImage         DecoderStatus = 0x200
	DecFrame                DecoderStatus = 0x400
	DecFullImage            DecoderStatus = 0x1000
	DecJPEGReconstruction   DecoderStatus = 0x2000
	DecBox                  DecoderStatus = 0x4000
	DecFrameProgression     DecoderStatus = 0x8000
)

func (s DecoderStatus) String() string {
	switch s {
	case DecSuccess:
		return "success"
	case DecError:
		return "error"
	case DecNeedMoreInput:
		return "need-more-input"
	case DecNeedPreviewOutBuffer:
		return "need-preview-out-buffer"
	case DecNeedImageOutBuffer:
		return "need-image-out-buffer"
	case DecJPEGNeedMoreOutput:
		return "jpeg-need-more-output"
	case DecBoxNeedMoreOutput:
		return "box-need-more-output"
	case DecBasicInfo:
		return "basic-info"
	case DecColorEncoding:
		return "color-encoding"
	case DecPreviewImage:
		return "preview-image"
	case DecFrame:
		return "frame"
	case DecFullImage:
		return "full-image"
	case DecJPEGReconstruction:
		return "jpeg-reconstruction"
	case DecBox:
		return "box"
	case DecFrameProgression:
		return "frame-progression"
	default:
		return "unknown"
	}
}

// EncoderStatus mirrors JxlEncoderStatus.
type EncoderStatus int32

const (
	EncSuccess        EncoderStatus = 0
	EncError          EncoderStatus = 1
	EncNeedMoreOutput EncoderStatus = 2
)

// EncoderError mirrors JxlEncoderError, the detail code behind EncError.
type EncoderError int32

const (
	EncErrOK           EncoderError = 0
	EncErrGeneric      EncoderError = 1
	EncErrOOM          EncoderError = 2
	EncErrJPEGBitstrm  EncoderError = 3
	EncErrBadInput     EncoderError = 4
	EncErrNotSupported EncoderError = 0x80
	EncErrAPIUsage     EncoderError = 0x81
)

// Signature mirrors JxlSignature, the result of sniffing a byte stream.
type Signature int32

const (
	SigNotEnoughBytes Signature = 0
	SigInvalid        Signature = 1
	SigCodestream     Signature = 2
	SigContainer      Signature = 3
)

// DataType mirrors JxlDataType. UINT32 existed in older ABIs but was removed
// before the supported range and is deliberately absent.
type DataType int32

const (
	TypeFloat   DataType = 0
	TypeUint8   DataType = 2
	TypeUint16  DataType = 3
	TypeFloat16 DataType = 5
)

// Endianness mirrors JxlEndianness.
type Endianness int32

const (
	NativeEndian Endianness = 0
	LittleEndian Endianness = 1
	BigEndian    Endianness = 2
)

// Orientation mirrors JxlOrientation (EXIF values 1-8).
type Orientation int32

const (
	OrientIdentity       Orientation = 1
	OrientFlipHorizontal Orientation = 2
	OrientRotate180      Orientation = 3
	OrientFlipVertical   Orientation = 4
	OrientTranspose      Orientation = 5
	OrientRotate90CW     Orientation = 6
	OrientAntiTranspose  Orientation = 7
	OrientRotate90CCW    Orientation = 8
)

// ColorSpace mirrors JxlColorSpace.
type ColorSpace int32

const (
	ColorSpaceRGB     ColorSpace = 0
	ColorSpaceGray    ColorSpace = 1
	ColorSpaceXYB     ColorSpace = 2
	ColorSpaceUnknown ColorSpace = 3
)

// WhitePoint mirrors JxlWhitePoint.
type WhitePoint int32

const (
	WhitePointD65    WhitePoint = 1
	WhitePointCustom WhitePoint = 2
	WhitePointE      WhitePoint = 10
	WhitePointDCI    WhitePoint = 11
)

// Primaries mirrors JxlPrimaries.
type Primaries int32

const (
	PrimariesSRGB   Primaries = 1
	PrimariesCustom Primaries = 2
	Primaries2100   Primaries = 9
	PrimariesP3     Primaries = 11
)

// TransferFunction mirrors JxlTransferFunction.
type TransferFunction int32

const (
	Transfer709     TransferFunction = 1
	TransferUnknown TransferFunction = 2
	TransferLinear  TransferFunction = 8
	TransferSRGB    TransferFunction = 13
	TransferPQ      TransferFunction = 16
	TransferDCI     TransferFunction = 17
	TransferHLG     TransferFunction = 18
	TransferGamma   TransferFunction = 65535
)

// RenderingIntent mirrors JxlRenderingIntent.
type RenderingIntent int32

const (
	IntentPerceptual RenderingIntent = 0
	IntentRelative   RenderingIntent = 1
	IntentSaturation RenderingIntent = 2
	IntentAbsolute   RenderingIntent = 3
)

// ColorProfileTarget mirrors JxlColorProfileTarget.
type ColorProfileTarget int32

const (
	ProfileOriginal ColorProfileTarget = 0
	ProfileData     ColorProfileTarget = 1
)

// PixelFormat mirrors JxlPixelFormat. Align is the scanline alignment in
// bytes; zero or one means packed.
type PixelFormat struct {
	NumChannels uint32
	DataType    DataType
	Endianness  Endianness
	Align       uint
}

// PreviewHeader mirrors JxlPreviewHeader.
type PreviewHeader struct {
	XSize uint32
	YSize uint32
}

// AnimationHeader mirrors JxlAnimationHeader.
type AnimationHeader struct {
	TPSNumerator   uint32
	TPSDenominator uint32
	NumLoops       uint32
	HaveTimecodes  bool
}

// FrameHeader carries the per-frame fields of JxlFrameHeader. Layer and crop
// information is not mapped.
type FrameHeader struct {
	// Duration is in animation ticks; zero for still images.
	Duration   uint32
	Timecode   uint32
	NameLength uint32
	IsLast     bool
}

// BasicInfo mirrors JxlBasicInfo field for field. It is produced by
// GetBasicInfo on decode and consumed by SetBasicInfo on encode; the cgo
// layer converts at the boundary so no native struct escapes.
type BasicInfo struct {
	HaveContainer         bool
	XSize                 uint32
	YSize                 uint32
	BitsPerSample         uint32
	ExponentBitsPerSample uint32
	IntensityTarget       float32
	MinNits               float32
	RelativeToMaxDisplay  bool
	LinearBelow           float32
	UsesOriginalProfile   bool
	HavePreview           bool
	HaveAnimation         bool
	Orientation           Orientation
	NumColorChannels      uint32
	NumExtraChannels      uint32
	AlphaBits             uint32
	AlphaExponentBits     uint32
	AlphaPremultiplied    bool
	Preview               PreviewHeader
	Animation             AnimationHeader
	IntrinsicXSize        uint32
	IntrinsicYSize        uint32
}

// XYValue is a CIE xy chromaticity coordinate pair.
type XYValue [2]float64

// ColorEncoding mirrors JxlColorEncoding.
type ColorEncoding struct {
	ColorSpace       ColorSpace
	WhitePoint       WhitePoint
	WhitePointXY     XYValue
	Primaries        Primaries
	PrimariesRedXY   XYValue
	PrimariesGreenXY XYValue
	PrimariesBlueXY  XYValue
	TransferFunction TransferFunction
	Gamma            float64
	RenderingIntent  RenderingIntent
}

// ParallelRetCode is the return type of parallel runner callbacks; zero is
// success, RunnerError is the conventional failure value the native library
// understands.
type ParallelRetCode int32

const (
	ParallelRetSuccess ParallelRetCode = 0
	ParallelRetError   ParallelRetCode = -1
)

// RunnerFunc is the Go shape of the native parallel runner callback: run
// every value in [start, end) across up to the runner's worker count. init
// receives the number of workers that will call run and returns non-zero to
// abort; run receives a value and the worker index executing it. The call
// must not return until all scheduled work finished.
type RunnerFunc func(init func(numThreads int) ParallelRetCode, run func(value uint32, thread int), start, end uint32) ParallelRetCode
