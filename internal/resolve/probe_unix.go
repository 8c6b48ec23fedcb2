//go:build darwin || linux

package resolve

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/coreos/go-semver/semver"
	"github.com/ebitengine/purego"
)

// LoadProbe dlopens the discovered libjxl out of libdir and asks it for the
// version it was actually built as. The native encoding packs the version as
// major*1_000_000 + minor*1_000 + patch.
func LoadProbe(libdir string) (*semver.Version, error) {
	name := "libjxl.so"
	if runtime.GOOS == "darwin" {
		name = "libjxl.dylib"
	}
	path := filepath.Join(libdir, name)

	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("load probe: %w", err)
	}
	defer purego.Dlclose(handle)

	// Dlsym first: RegisterLibFunc panics on a missing symbol, and a library
	// that is not what it claims to be should surface as a probe error.
	sym, err := purego.Dlsym(handle, "JxlDecoderVersion")
	if err != nil {
		return nil, fmt.Errorf("load probe: %s has no JxlDecoderVersion: %w", path, err)
	}
	var decoderVersion func() uint32
	purego.RegisterFunc(&decoderVersion, sym)
	v := decoderVersion()
	return &semver.Version{
		Major: int64(v / 1_000_000),
		Minor: int64(v / 1_000 % 1_000),
		Patch: int64(v % 1_000),
	}, nil
}
