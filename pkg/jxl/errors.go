package jxl

import (
	"errors"
	"fmt"

	"github.com/imagecodecs/jpegxl-go/internal/bindings"
)

// Sentinels surfaced by this package. ErrNotBuilt and ErrThreadsNotBuilt are
// the bindings layer's, re-exported so callers never import internal
// packages.
var (
	ErrNotBuilt        = bindings.ErrNotBuilt
	ErrThreadsNotBuilt = bindings.ErrThreadsNotBuilt

	// ErrClosed reports use of a handle after Close.
	ErrClosed = errors.New("jxl: handle is closed")

	// ErrFailed reports use of a decoder after it entered the terminal
	// error state. Such a handle cannot be reused; Close it.
	ErrFailed = errors.New("jxl: decoder is in the error state")

	// ErrVersionMismatch reports that the runtime library's version differs
	// from the one these bindings were written against in a way the native
	// ABI does not tolerate.
	ErrVersionMismatch = errors.New("jxl: native library version mismatch")
)

// DecoderStatusError wraps a non-success decoder status into an error.
type DecoderStatusError struct {
	Status DecoderStatus
}

func (e *DecoderStatusError) Error() string {
	return fmt.Sprintf("jxl: decoder: %s", e.Status)
}

// EncoderStatusError wraps a non-success encoder status, carrying the native
// detail code when one was available.
type EncoderStatusError struct {
	Status EncoderStatus
	Code   EncoderError
}

func (e *EncoderStatusError) Error() string {
	if e.Code != EncErrOK {
		return fmt.Sprintf("jxl: encoder: status %d (error code %#x)", e.Status, int32(e.Code))
	}
	return fmt.Sprintf("jxl: encoder: status %d", e.Status)
}

func decStatusErr(st DecoderStatus) error {
	if st == DecSuccess {
		return nil
	}
	return &DecoderStatusError{Status: st}
}
