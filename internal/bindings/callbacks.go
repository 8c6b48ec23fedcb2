//go:build cgo && !windows

package bindings

/*
#include <stdlib.h>
#include <jxl/parallel_runner.h>
#include <jxl/memory_manager.h>

extern JxlParallelRetCode jxlgo_call_init(JxlParallelRunInit init, void* jpegxl_opaque, size_t num_threads);
extern void jxlgo_call_run(JxlParallelRunFunction func, void* jpegxl_opaque, uint32_t value, size_t thread_id);
*/
import "C"

import "unsafe"

// jxlgoParallelRun is the fixed-shape parallel runner callback the native
// library invokes. It resolves the registered Go runner from the opaque
// handle and forwards start/end plus wrappers around the native init and run
// function pointers. Errors from individual work items propagate through the
// returned code exactly as the native contract defines.
//
//export jxlgoParallelRun
func jxlgoParallelRun(runnerOpaque, jpegxlOpaque unsafe.Pointer,
	init C.JxlParallelRunInit, fn C.JxlParallelRunFunction,
	start, end C.uint32_t) C.JxlParallelRetCode {
	v, ok := regGet(runnerOpaque)
	if !ok {
		return C.JxlParallelRetCode(ParallelRetError)
	}
	r, ok := v.(*goRunner)
	if !ok {
		return C.JxlParallelRetCode(ParallelRetError)
	}
	ret := r.fn(
		func(numThreads int) ParallelRetCode {
			return ParallelRetCode(C.jxlgo_call_init(init, jpegxlOpaque, C.size_t(numThreads)))
		},
		func(value uint32, thread int) {
			C.jxlgo_call_run(fn, jpegxlOpaque, C.uint32_t(value), C.size_t(thread))
		},
		uint32(start), uint32(end),
	)
	return C.JxlParallelRetCode(ret)
}

// jxlgoAlloc forwards the native library's allocation request to the
// registered Go memory manager, falling back to malloc when the manager
// declines to override allocation.
//
//export jxlgoAlloc
func jxlgoAlloc(opaque unsafe.Pointer, size C.size_t) unsafe.Pointer {
	v, ok := regGet(opaque)
	if !ok {
		return nil
	}
	m, ok := v.(*MemoryManager)
	if !ok {
		return nil
	}
	if m.Alloc == nil {
		return C.malloc(size)
	}
	return m.Alloc(uint(size))
}

// jxlgoFree mirrors jxlgoAlloc for release. Memory allocated through the
// manager must come back through it, never through any other allocator.
//
//export jxlgoFree
func jxlgoFree(opaque unsafe.Pointer, address unsafe.Pointer) {
	v, ok := regGet(opaque)
	if !ok {
		return
	}
	m, ok := v.(*MemoryManager)
	if !ok {
		return
	}
	if m.Free == nil {
		C.free(address)
		return
	}
	m.Free(address)
}
