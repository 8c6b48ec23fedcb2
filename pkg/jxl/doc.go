// Package jxl exposes the raw binding surface of the native libjxl codec:
// opaque decoder and encoder handles, the decoder's pull-based state machine
// with its full status enumeration, the pixel and color descriptor types, and
// the callback tables for custom allocators and parallel execution.
//
// This package is deliberately low level. It performs no pixel conversion and
// offers no one-shot encode/decode helpers; it preserves the native call
// ordering so callers can inspect basic info and color metadata before
// committing an output buffer. Higher-level conveniences belong to consumers
// of this package.
//
// Handles are single-owner resources: Close every Decoder, Encoder and
// ThreadPool exactly once (Close is nil-safe and idempotent), and do not
// drive one handle from multiple goroutines concurrently. Binaries built
// without cgo, or without a resolved native library, compile fine; the
// constructors then fail with ErrNotBuilt.
package jxl
