//go:build cgo && !windows

package bindings

/*
#include <stdlib.h>
#include <jxl/types.h>
#include <jxl/codestream_header.h>
#include <jxl/color_encoding.h>
#include <jxl/decode.h>
#include <jxl/encode.h>
*/
import "C"

import (
	"sync"
	"unsafe"
)

// Registry of Go values referenced from native callbacks. The native side
// only ever sees a fake pointer carrying the handle value; cgo pointer rules
// forbid storing real Go pointers in C memory.
type handle uintptr

var (
	regMu   sync.Mutex
	regNext handle = 1
	reg            = map[handle]any{}
)

func regPut(v any) (handle, unsafe.Pointer) {
	regMu.Lock()
	h := regNext
	regNext++
	reg[h] = v
	regMu.Unlock()
	return h, unsafe.Pointer(uintptr(h))
}

func regGet(ptr unsafe.Pointer) (any, bool) {
	regMu.Lock()
	v, ok := reg[handle(uintptr(ptr))]
	regMu.Unlock()
	return v, ok
}

func regDel(h handle) {
	regMu.Lock()
	delete(reg, h)
	regMu.Unlock()
}

// DecoderVersion returns the runtime decoder version encoded as
// major*1_000_000 + minor*1_000 + patch.
func DecoderVersion() (uint32, error) {
	return uint32(C.JxlDecoderVersion()), nil
}

// EncoderVersion is DecoderVersion's encoder-side counterpart.
func EncoderVersion() (uint32, error) {
	return uint32(C.JxlEncoderVersion()), nil
}

// SignatureCheck sniffs the first bytes of a stream. The input is only read
// for the duration of the call.
func SignatureCheck(data []byte) (Signature, error) {
	if len(data) == 0 {
		return SigNotEnoughBytes, nil
	}
	sig := C.JxlSignatureCheck((*C.uint8_t)(unsafe.Pointer(&data[0])), C.size_t(len(data)))
	return Signature(sig), nil
}

// Available reports whether the native library is linked into this binary.
func Available() bool { return true }

func cBool(b bool) C.JXL_BOOL {
	if b {
		return 1
	}
	return 0
}

func goBool(b C.JXL_BOOL) bool { return b != 0 }

func pixelFormatToC(f PixelFormat) C.JxlPixelFormat {
	return C.JxlPixelFormat{
		num_channels: C.uint32_t(f.NumChannels),
		data_type:    C.JxlDataType(f.DataType),
		endianness:   C.JxlEndianness(f.Endianness),
		align:        C.size_t(f.Align),
	}
}

func basicInfoFromC(ci *C.JxlBasicInfo) BasicInfo {
	return BasicInfo{
		HaveContainer:         goBool(ci.have_container),
		XSize:                 uint32(ci.xsize),
		YSize:                 uint32(ci.ysize),
		BitsPerSample:         uint32(ci.bits_per_sample),
		ExponentBitsPerSample: uint32(ci.exponent_bits_per_sample),
		IntensityTarget:       float32(ci.intensity_target),
		MinNits:               float32(ci.min_nits),
		RelativeToMaxDisplay:  goBool(ci.relative_to_max_display),
		LinearBelow:           float32(ci.linear_below),
		UsesOriginalProfile:   goBool(ci.uses_original_profile),
		HavePreview:           goBool(ci.have_preview),
		HaveAnimation:         goBool(ci.have_animation),
		Orientation:           Orientation(ci.orientation),
		NumColorChannels:      uint32(ci.num_color_channels),
		NumExtraChannels:      uint32(ci.num_extra_channels),
		AlphaBits:             uint32(ci.alpha_bits),
		AlphaExponentBits:     uint32(ci.alpha_exponent_bits),
		AlphaPremultiplied:    goBool(ci.alpha_premultiplied),
		Preview: PreviewHeader{
			XSize: uint32(ci.preview.xsize),
			YSize: uint32(ci.preview.ysize),
		},
		Animation: AnimationHeader{
			TPSNumerator:   uint32(ci.animation.tps_numerator),
			TPSDenominator: uint32(ci.animation.tps_denominator),
			NumLoops:       uint32(ci.animation.num_loops),
			HaveTimecodes:  goBool(ci.animation.have_timecodes),
		},
		IntrinsicXSize: uint32(ci.intrinsic_xsize),
		IntrinsicYSize: uint32(ci.intrinsic_ysize),
	}
}

func basicInfoToC(info BasicInfo) C.JxlBasicInfo {
	var ci C.JxlBasicInfo
	// Start from the library's defaults so reserved padding stays valid.
	C.JxlEncoderInitBasicInfo(&ci)
	ci.have_container = cBool(info.HaveContainer)
	ci.xsize = C.uint32_t(info.XSize)
	ci.ysize = C.uint32_t(info.YSize)
	ci.bits_per_sample = C.uint32_t(info.BitsPerSample)
	ci.exponent_bits_per_sample = C.uint32_t(info.ExponentBitsPerSample)
	ci.intensity_target = C.float(info.IntensityTarget)
	ci.min_nits = C.float(info.MinNits)
	ci.relative_to_max_display = cBool(info.RelativeToMaxDisplay)
	ci.linear_below = C.float(info.LinearBelow)
	ci.uses_original_profile = cBool(info.UsesOriginalProfile)
	ci.have_preview = cBool(info.HavePreview)
	ci.have_animation = cBool(info.HaveAnimation)
	ci.orientation = C.JxlOrientation(info.Orientation)
	ci.num_color_channels = C.uint32_t(info.NumColorChannels)
	ci.num_extra_channels = C.uint32_t(info.NumExtraChannels)
	ci.alpha_bits = C.uint32_t(info.AlphaBits)
	ci.alpha_exponent_bits = C.uint32_t(info.AlphaExponentBits)
	ci.alpha_premultiplied = cBool(info.AlphaPremultiplied)
	ci.preview.xsize = C.uint32_t(info.Preview.XSize)
	ci.preview.ysize = C.uint32_t(info.Preview.YSize)
	ci.animation.tps_numerator = C.uint32_t(info.Animation.TPSNumerator)
	ci.animation.tps_denominator = C.uint32_t(info.Animation.TPSDenominator)
	ci.animation.num_loops = C.uint32_t(info.Animation.NumLoops)
	ci.animation.have_timecodes = cBool(info.Animation.HaveTimecodes)
	ci.intrinsic_xsize = C.uint32_t(info.IntrinsicXSize)
	ci.intrinsic_ysize = C.uint32_t(info.IntrinsicYSize)
	return ci
}

func colorEncodingFromC(cc *C.JxlColorEncoding) ColorEncoding {
	return ColorEncoding{
		ColorSpace:       ColorSpace(cc.color_space),
		WhitePoint:       WhitePoint(cc.white_point),
		WhitePointXY:     XYValue{float64(cc.white_point_xy[0]), float64(cc.white_point_xy[1])},
		Primaries:        Primaries(cc.primaries),
		PrimariesRedXY:   XYValue{float64(cc.primaries_red_xy[0]), float64(cc.primaries_red_xy[1])},
		PrimariesGreenXY: XYValue{float64(cc.primaries_green_xy[0]), float64(cc.primaries_green_xy[1])},
		PrimariesBlueXY:  XYValue{float64(cc.primaries_blue_xy[0]), float64(cc.primaries_blue_xy[1])},
		TransferFunction: TransferFunction(cc.transfer_function),
		Gamma:            float64(cc.gamma),
		RenderingIntent:  RenderingIntent(cc.rendering_intent),
	}
}

func colorEncodingToC(c ColorEncoding) C.JxlColorEncoding {
	var cc C.JxlColorEncoding
	cc.color_space = C.JxlColorSpace(c.ColorSpace)
	cc.white_point = C.JxlWhitePoint(c.WhitePoint)
	cc.white_point_xy[0] = C.double(c.WhitePointXY[0])
	cc.white_point_xy[1] = C.double(c.WhitePointXY[1])
	cc.primaries = C.JxlPrimaries(c.Primaries)
	cc.primaries_red_xy[0] = C.double(c.PrimariesRedXY[0])
	cc.primaries_red_xy[1] = C.double(c.PrimariesRedXY[1])
	cc.primaries_green_xy[0] = C.double(c.PrimariesGreenXY[0])
	cc.primaries_green_xy[1] = C.double(c.PrimariesGreenXY[1])
	cc.primaries_blue_xy[0] = C.double(c.PrimariesBlueXY[0])
	cc.primaries_blue_xy[1] = C.double(c.PrimariesBlueXY[1])
	cc.transfer_function = C.JxlTransferFunction(c.TransferFunction)
	cc.gamma = C.double(c.Gamma)
	cc.rendering_intent = C.JxlRenderingIntent(c.RenderingIntent)
	return cc
}

// SRGBColorEncoding returns the library's canonical sRGB (or grayscale sRGB)
// color encoding.
func SRGBColorEncoding(isGray bool) (ColorEncoding, error) {
	var cc C.JxlColorEncoding
	C.JxlColorEncodingSetToSRGB(&cc, cBool(isGray))
	return colorEncodingFromC(&cc), nil
}
