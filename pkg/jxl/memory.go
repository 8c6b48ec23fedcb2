package jxl

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/imagecodecs/jpegxl-go/internal/bindings"
)

// CountingManager is a MemoryManager that delegates to the C allocator while
// tracking live allocation and byte counts. It is safe for concurrent use by
// the native library's worker threads.
//
// The byte accounting keeps a small side table because the free callback
// only receives the address.
type CountingManager struct {
	allocs atomic.Int64
	frees  atomic.Int64
	bytes  atomic.Int64

	sizes sizeTable
}

// Manager returns the MemoryManager to pass to NewDecoderWithManager or
// NewEncoderWithManager. The CountingManager must outlive every handle
// created with it.
func (m *CountingManager) Manager() *MemoryManager {
	return &MemoryManager{
		Alloc: m.alloc,
		Free:  m.free,
	}
}

func (m *CountingManager) alloc(size uint) unsafe.Pointer {
	p := bindings.Malloc(size)
	if p == nil {
		return nil
	}
	m.allocs.Add(1)
	m.bytes.Add(int64(size))
	m.sizes.put(uintptr(p), size)
	return p
}

func (m *CountingManager) free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	if size, ok := m.sizes.take(uintptr(p)); ok {
		m.bytes.Add(-int64(size))
	}
	m.frees.Add(1)
	bindings.Free(p)
}

// Allocs returns the number of allocations served so far.
func (m *CountingManager) Allocs() int64 { return m.allocs.Load() }

// Frees returns the number of frees served so far.
func (m *CountingManager) Frees() int64 { return m.frees.Load() }

// LiveBytes returns the bytes currently allocated and not yet freed.
func (m *CountingManager) LiveBytes() int64 { return m.bytes.Load() }

// sizeTable maps allocation addresses to their sizes.
type sizeTable struct {
	mu sync.Mutex
	m  map[uintptr]uint
}

func (t *sizeTable) put(addr uintptr, size uint) {
	t.mu.Lock()
	if t.m == nil {
		t.m = make(map[uintptr]uint)
	}
	t.m[addr] = size
	t.mu.Unlock()
}

func (t *sizeTable) take(addr uintptr) (uint, bool) {
	t.mu.Lock()
	size, ok := t.m[addr]
	if ok {
		delete(t.m, addr)
	}
	t.mu.Unlock()
	return size, ok
}
