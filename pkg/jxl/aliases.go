package jxl

import "github.com/imagecodecs/jpegxl-go/internal/bindings"

// The value types and enumerations are declared once in the bindings layer,
// where their discriminants are pinned to the native ABI, and re-exported
// here as the public vocabulary.

// DecoderStatus enumerates every decoder state-machine result. The
// informational codes double as the SubscribeEvents bitmask.
type DecoderStatus = bindings.DecoderStatus

const (
	DecSuccess              = bindings.DecSuccess
	DecError                = bindings.DecError
	DecNeedMoreInput        = bindings.DecNeedMoreInput
	DecNeedPreviewOutBuffer = bindings.DecNeedPreviewOutBuffer
	DecNeedImageOutBuffer   = bindings.DecNeedImageOutBuffer
	DecJPEGNeedMoreOutput   = bindings.DecJPEGNeedMoreOutput
	DecBoxNeedMoreOutput    = bindings.DecBoxNeedMoreOutput
	DecBasicInfo            = bindings.DecBasicInfo
	DecColorEncoding        = bindings.DecColorEncoding
	DecPreviewImage         = bindings.DecPreviewImage
	DecFrame                = bindings.DecFrame
	DecFullImage            = bindings.DecFullImage
	DecJPEGReconstruction   = bindings.DecJPEGReconstruction
	DecBox                  = bindings.DecBox
	DecFrameProgression     = bindings.DecFrameProgression
)

// EncoderStatus enumerates encoder results.
type EncoderStatus = bindings.EncoderStatus

const (
	EncSuccess        = bindings.EncSuccess
	EncError          = bindings.EncError
	EncNeedMoreOutput = bindings.EncNeedMoreOutput
)

// EncoderError is the detail code behind an EncError status.
type EncoderError = bindings.EncoderError

const (
	EncErrOK           = bindings.EncErrOK
	EncErrGeneric      = bindings.EncErrGeneric
	EncErrOOM          = bindings.EncErrOOM
	EncErrBadInput     = bindings.EncErrBadInput
	EncErrNotSupported = bindings.EncErrNotSupported
	EncErrAPIUsage     = bindings.EncErrAPIUsage
)

// Signature is the result of sniffing the head of a byte stream.
type Signature = bindings.Signature

const (
	SigNotEnoughBytes = bindings.SigNotEnoughBytes
	SigInvalid        = bindings.SigInvalid
	SigCodestream     = bindings.SigCodestream
	SigContainer      = bindings.SigContainer
)

// Pixel and image descriptor types.
type (
	DataType        = bindings.DataType
	Endianness      = bindings.Endianness
	Orientation     = bindings.Orientation
	PixelFormat     = bindings.PixelFormat
	PreviewHeader   = bindings.PreviewHeader
	AnimationHeader = bindings.AnimationHeader
	FrameHeader     = bindings.FrameHeader
	BasicInfo       = bindings.BasicInfo
)

const (
	TypeFloat   = bindings.TypeFloat
	TypeUint8   = bindings.TypeUint8
	TypeUint16  = bindings.TypeUint16
	TypeFloat16 = bindings.TypeFloat16

	NativeEndian = bindings.NativeEndian
	LittleEndian = bindings.LittleEndian
	BigEndian    = bindings.BigEndian
)

// Color description types.
type (
	ColorSpace         = bindings.ColorSpace
	WhitePoint         = bindings.WhitePoint
	Primaries          = bindings.Primaries
	TransferFunction   = bindings.TransferFunction
	RenderingIntent    = bindings.RenderingIntent
	ColorProfileTarget = bindings.ColorProfileTarget
	ColorEncoding      = bindings.ColorEncoding
	XYValue            = bindings.XYValue
)

const (
	ColorSpaceRGB     = bindings.ColorSpaceRGB
	ColorSpaceGray    = bindings.ColorSpaceGray
	ColorSpaceXYB     = bindings.ColorSpaceXYB
	ColorSpaceUnknown = bindings.ColorSpaceUnknown

	TransferSRGB   = bindings.TransferSRGB
	TransferLinear = bindings.TransferLinear

	ProfileOriginal = bindings.ProfileOriginal
	ProfileData     = bindings.ProfileData
)

// Parallel runner plumbing. RunnerFunc matches the native callback shape
// one-to-one; see PoolRunner for a ready-made Go implementation.
type (
	ParallelRetCode = bindings.ParallelRetCode
	RunnerFunc      = bindings.RunnerFunc
)

const (
	ParallelRetSuccess = bindings.ParallelRetSuccess
	ParallelRetError   = bindings.ParallelRetError
)

// MemoryManager overrides the native allocator; see bindings.MemoryManager
// for the contract. It must outlive every handle configured with it.
type MemoryManager = bindings.MemoryManager

// Available reports whether the native library is linked into this binary.
func Available() bool { return bindings.Available() }

// ThreadsAvailable reports whether libjxl_threads is linked in (jxlthreads
// build tag).
func ThreadsAvailable() bool { return bindings.ThreadsAvailable() }

// SignatureCheck sniffs data for a JPEG XL codestream or container header.
// The input is only read during the call.
func SignatureCheck(data []byte) (Signature, error) {
	return bindings.SignatureCheck(data)
}

// SRGBColorEncoding returns the canonical sRGB color encoding, grayscale when
// isGray is set.
func SRGBColorEncoding(isGray bool) (ColorEncoding, error) {
	return bindings.SRGBColorEncoding(isGray)
}

// NewBasicInfo returns the native library's default-initialized BasicInfo,
// the required starting point before setting encode parameters.
func NewBasicInfo() (BasicInfo, error) {
	return bindings.InitBasicInfo()
}
