//go:build cgo && !windows

package bindings

/*
#include <jxl/parallel_runner.h>
#include <jxl/decode.h>
#include <jxl/encode.h>

extern JxlParallelRetCode jxlgoParallelRun(void* runner_opaque, void* jpegxl_opaque,
	JxlParallelRunInit init, JxlParallelRunFunction func,
	uint32_t start_range, uint32_t end_range);

// Bridges so Go code can invoke the native-supplied function pointers.
// Deliberately non-static: the trampoline lives in another file of this
// package.
JxlParallelRetCode jxlgo_call_init(JxlParallelRunInit init, void* jpegxl_opaque, size_t num_threads) {
	return init(jpegxl_opaque, num_threads);
}

void jxlgo_call_run(JxlParallelRunFunction func, void* jpegxl_opaque, uint32_t value, size_t thread_id) {
	func(jpegxl_opaque, value, thread_id);
}

static JxlDecoderStatus jxlgo_decoder_set_go_runner(JxlDecoder* dec, void* opaque) {
	return JxlDecoderSetParallelRunner(dec, jxlgoParallelRun, opaque);
}

static JxlEncoderStatus jxlgo_encoder_set_go_runner(JxlEncoder* enc, void* opaque) {
	return JxlEncoderSetParallelRunner(enc, jxlgoParallelRun, opaque);
}
*/
import "C"

// goRunner is the registry entry behind a caller-supplied RunnerFunc.
type goRunner struct {
	fn RunnerFunc
}

// SetGoRunner installs fn as the handle's parallel runner via the exported
// trampoline. The runner is called synchronously from inside ProcessInput and
// must not outlive expectations: it stays registered until Destroy. Not
// supplying any runner keeps the native library's built-in behavior.
func (d *Decoder) SetGoRunner(fn RunnerFunc) DecoderStatus {
	if fn == nil {
		return DecError
	}
	if d.runnerHandle != 0 {
		regDel(d.runnerHandle)
	}
	h, ptr := regPut(&goRunner{fn: fn})
	d.runnerHandle = h
	return DecoderStatus(C.jxlgo_decoder_set_go_runner(d.ptr, ptr))
}

// SetGoRunner mirrors the decoder variant for encode-side parallelism.
func (e *Encoder) SetGoRunner(fn RunnerFunc) EncoderStatus {
	if fn == nil {
		return EncError
	}
	if e.runnerHandle != 0 {
		regDel(e.runnerHandle)
	}
	h, ptr := regPut(&goRunner{fn: fn})
	e.runnerHandle = h
	return EncoderStatus(C.jxlgo_encoder_set_go_runner(e.ptr, ptr))
}
