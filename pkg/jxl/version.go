package jxl

import (
	"fmt"

	"github.com/coreos/go-semver/semver"

	"github.com/imagecodecs/jpegxl-go/internal/bindings"
)

// wrapperVersion is stamped by the release build via
// -ldflags "-X github.com/imagecodecs/jpegxl-go/pkg/jxl.wrapperVersion=v...".
var wrapperVersion = "dev"

// WrapperVersion returns the version of this binding package itself, not of
// the native library it links against.
func WrapperVersion() string {
	return wrapperVersion
}

// unpackVersion decodes the native library's packed version number,
// major*1000000 + minor*1000 + patch.
func unpackVersion(v uint32) *semver.Version {
	return &semver.Version{
		Major: int64(v / 1_000_000),
		Minor: int64(v / 1_000 % 1_000),
		Patch: int64(v % 1_000),
	}
}

// DecoderVersion returns the runtime version of the linked decoder library.
// Fails with ErrNotBuilt when no native library is linked in.
func DecoderVersion() (*semver.Version, error) {
	v, err := bindings.DecoderVersion()
	if err != nil {
		return nil, err
	}
	return unpackVersion(v), nil
}

// EncoderVersion returns the runtime version of the linked encoder library.
func EncoderVersion() (*semver.Version, error) {
	v, err := bindings.EncoderVersion()
	if err != nil {
		return nil, err
	}
	return unpackVersion(v), nil
}

// CheckVersion verifies at runtime that the loaded library falls inside
// [min, max) and that decoder and encoder report the same version, which
// catches a dynamic loader picking up mismatched shared objects. Either
// bound may be nil to skip that side of the check.
func CheckVersion(min, max *semver.Version) error {
	dec, err := DecoderVersion()
	if err != nil {
		return err
	}
	enc, err := EncoderVersion()
	if err != nil {
		return err
	}
	if *dec != *enc {
		return fmt.Errorf("%w: decoder %s, encoder %s", ErrVersionMismatch, dec, enc)
	}
	if min != nil && dec.LessThan(*min) {
		return fmt.Errorf("%w: runtime %s below minimum %s", ErrVersionMismatch, dec, min)
	}
	if max != nil && !dec.LessThan(*max) {
		return fmt.Errorf("%w: runtime %s at or above maximum %s", ErrVersionMismatch, dec, max)
	}
	return nil
}
