//go:build cgo && !windows

package bindings

/*
#include <jxl/types.h>
#include <jxl/codestream_header.h>
#include <jxl/color_encoding.h>
#include <jxl/decode.h>
#include <jxl/encode.h>
*/
import "C"

// The Go-side enumerations are declared by hand in types.go so they exist
// without cgo. Each line below indexes a one-element array with the
// difference between the Go constant and the header's value; any mismatch
// makes the index non-zero and the build fails.
var (
	_ = [1]struct{}{}[int(C.JXL_DEC_SUCCESS)-int(DecSuccess)]
	_ = [1]struct{}{}[int(C.JXL_DEC_ERROR)-int(DecError)]
	_ = [1]struct{}{}[int(C.JXL_DEC_NEED_MORE_INPUT)-int(DecNeedMoreInput)]
	_ = [1]struct{}{}[int(C.JXL_DEC_NEED_PREVIEW_OUT_BUFFER)-int(DecNeedPreviewOutBuffer)]
	_ = [1]struct{}{}[int(C.JXL_DEC_NEED_IMAGE_OUT_BUFFER)-int(DecNeedImageOutBuffer)]
	_ = [1]struct{}{}[int(C.JXL_DEC_JPEG_NEED_MORE_OUTPUT)-int(DecJPEGNeedMoreOutput)]
	_ = [1]struct{}{}[int(C.JXL_DEC_BOX_NEED_MORE_OUTPUT)-int(DecBoxNeedMoreOutput)]
	_ = [1]struct{}{}[int(C.JXL_DEC_BASIC_INFO)-int(DecBasicInfo)]
	_ = [1]struct{}{}[int(C.JXL_DEC_COLOR_ENCODING)-int(DecColorEncoding)]
	_ = [1]struct{}{}[int(C.JXL_DEC_PREVIEW_IMAGE)-int(DecPreviewImage)]
	_ = [1]struct{}{}[int(C.JXL_DEC_FRAME)-int(DecFrame)]
	_ = [1]struct{}{}[int(C.JXL_DEC_FULL_IMAGE)-int(DecFullImage)]
	_ = [1]struct{}{}[int(C.JXL_DEC_JPEG_RECONSTRUCTION)-int(DecJPEGReconstruction)]
	_ = [1]struct{}{}[int(C.JXL_DEC_BOX)-int(DecBox)]
	_ = [1]struct{}{}[int(C.JXL_DEC_FRAME_PROGRESSION)-int(DecFrameProgression)]

	_ = [1]struct{}{}[int(C.JXL_ENC_SUCCESS)-int(EncSuccess)]
	_ = [1]struct{}{}[int(C.JXL_ENC_ERROR)-int(EncError)]
	_ = [1]struct{}{}[int(C.JXL_ENC_NEED_MORE_OUTPUT)-int(EncNeedMoreOutput)]

	_ = [1]struct{}{}[int(C.JXL_ENC_ERR_OK)-int(EncErrOK)]
	_ = [1]struct{}{}[int(C.JXL_ENC_ERR_GENERIC)-int(EncErrGeneric)]
	_ = [1]struct{}{}[int(C.JXL_ENC_ERR_OOM)-int(EncErrOOM)]
	_ = [1]struct{}{}[int(C.JXL_ENC_ERR_JBRD)-int(EncErrJPEGBitstrm)]
	_ = [1]struct{}{}[int(C.JXL_ENC_ERR_BAD_INPUT)-int(EncErrBadInput)]
	_ = [1]struct{}{}[int(C.JXL_ENC_ERR_NOT_SUPPORTED)-int(EncErrNotSupported)]
	_ = [1]struct{}{}[int(C.JXL_ENC_ERR_API_USAGE)-int(EncErrAPIUsage)]

	_ = [1]struct{}{}[int(C.JXL_SIG_NOT_ENOUGH_BYTES)-int(SigNotEnoughBytes)]
	_ = [1]struct{}{}[int(C.JXL_SIG_INVALID)-int(SigInvalid)]
	_ = [1]struct{}{}[int(C.JXL_SIG_CODESTREAM)-int(SigCodestream)]
	_ = [1]struct{}{}[int(C.JXL_SIG_CONTAINER)-int(SigContainer)]

	_ = [1]struct{}{}[int(C.JXL_TYPE_FLOAT)-int(TypeFloat)]
	_ = [1]struct{}{}[int(C.JXL_TYPE_UINT8)-int(TypeUint8)]
	_ = [1]struct{}{}[int(C.JXL_TYPE_UINT16)-int(TypeUint16)]
	_ = [1]struct{}{}[int(C.JXL_TYPE_FLOAT16)-int(TypeFloat16)]

	_ = [1]struct{}{}[int(C.JXL_NATIVE_ENDIAN)-int(NativeEndian)]
	_ = [1]struct{}{}[int(C.JXL_LITTLE_ENDIAN)-int(LittleEndian)]
	_ = [1]struct{}{}[int(C.JXL_BIG_ENDIAN)-int(BigEndian)]

	_ = [1]struct{}{}[int(C.JXL_COLOR_SPACE_RGB)-int(ColorSpaceRGB)]
	_ = [1]struct{}{}[int(C.JXL_COLOR_SPACE_GRAY)-int(ColorSpaceGray)]
	_ = [1]struct{}{}[int(C.JXL_COLOR_SPACE_XYB)-int(ColorSpaceXYB)]
	_ = [1]struct{}{}[int(C.JXL_COLOR_SPACE_UNKNOWN)-int(ColorSpaceUnknown)]

	_ = [1]struct{}{}[int(C.JXL_WHITE_POINT_D65)-int(WhitePointD65)]
	_ = [1]struct{}{}[int(C.JXL_WHITE_POINT_CUSTOM)-int(WhitePointCustom)]
	_ = [1]struct{}{}[int(C.JXL_WHITE_POINT_E)-int(WhitePointE)]
	_ = [1]struct{}{}[int(C.JXL_WHITE_POINT_DCI)-int(WhitePointDCI)]

	_ = [1]struct{}{}[int(C.JXL_PRIMARIES_SRGB)-int(PrimariesSRGB)]
	_ = [1]struct{}{}[int(C.JXL_PRIMARIES_CUSTOM)-int(PrimariesCustom)]
	_ = [1]struct{}{}[int(C.JXL_PRIMARIES_2100)-int(Primaries2100)]
	_ = [1]struct{}{}[int(C.JXL_PRIMARIES_P3)-int(PrimariesP3)]

	_ = [1]struct{}{}[int(C.JXL_TRANSFER_FUNCTION_709)-int(Transfer709)]
	_ = [1]struct{}{}[int(C.JXL_TRANSFER_FUNCTION_UNKNOWN)-int(TransferUnknown)]
	_ = [1]struct{}{}[int(C.JXL_TRANSFER_FUNCTION_LINEAR)-int(TransferLinear)]
	_ = [1]struct{}{}[int(C.JXL_TRANSFER_FUNCTION_SRGB)-int(TransferSRGB)]
	_ = [1]struct{}{}[int(C.JXL_TRANSFER_FUNCTION_PQ)-int(TransferPQ)]
	_ = [1]struct{}{}[int(C.JXL_TRANSFER_FUNCTION_DCI)-int(TransferDCI)]
	_ = [1]struct{}{}[int(C.JXL_TRANSFER_FUNCTION_HLG)-int(TransferHLG)]
	_ = [1]struct{}{}[int(C.JXL_TRANSFER_FUNCTION_GAMMA)-int(TransferGamma)]

	_ = [1]struct{}{}[int(C.JXL_RENDERING_INTENT_PERCEPTUAL)-int(IntentPerceptual)]
	_ = [1]struct{}{}[int(C.JXL_RENDERING_INTENT_RELATIVE)-int(IntentRelative)]
	_ = [1]struct{}{}[int(C.JXL_RENDERING_INTENT_SATURATION)-int(IntentSaturation)]
	_ = [1]struct{}{}[int(C.JXL_RENDERING_INTENT_ABSOLUTE)-int(IntentAbsolute)]

	_ = [1]struct{}{}[int(C.JXL_COLOR_PROFILE_TARGET_ORIGINAL)-int(ProfileOriginal)]
	_ = [1]struct{}{}[int(C.JXL_COLOR_PROFILE_TARGET_DATA)-int(ProfileData)]
)
