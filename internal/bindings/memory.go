//go:build cgo && !windows

package bindings

/*
#include <stdlib.h>
#include <jxl/memory_manager.h>

extern void* jxlgoAlloc(void* opaque, size_t size);
extern void jxlgoFree(void* opaque, void* address);

static void jxlgo_init_mm(JxlMemoryManager* mm, void* opaque) {
	mm->opaque = opaque;
	mm->alloc = jxlgoAlloc;
	mm->free = jxlgoFree;
}
*/
import "C"

import "unsafe"

// MemoryManager overrides the native library's default allocator. Both
// functions must be non-nil together or nil together in practice; a nil
// field falls back to malloc/free. Memory returned by Alloc must be C
// memory (Malloc below, or equivalent), never Go memory, and the manager
// must stay alive as long as any handle configured with it - the handle
// wrappers keep a reference to guarantee that.
type MemoryManager struct {
	Alloc func(size uint) unsafe.Pointer
	Free  func(ptr unsafe.Pointer)
}

// cTable registers the manager and builds the native callback table around
// the exported trampolines. The native library copies the table on handle
// creation; the registry entry lives until the handle releases it.
func (m *MemoryManager) cTable() (*C.JxlMemoryManager, handle) {
	h, ptr := regPut(m)
	cmm := new(C.JxlMemoryManager)
	C.jxlgo_init_mm(cmm, ptr)
	return cmm, h
}

// Malloc allocates C memory for MemoryManager implementations.
func Malloc(size uint) unsafe.Pointer {
	return C.malloc(C.size_t(size))
}

// Free releases memory obtained from Malloc.
func Free(ptr unsafe.Pointer) {
	C.free(ptr)
}
