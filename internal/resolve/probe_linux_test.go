//go:build linux

package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A directory with no library at all must fail as an error, never a panic.
func TestLoadProbeMissingLibrary(t *testing.T) {
	_, err := LoadProbe(t.TempDir())
	assert.Error(t, err)
}

// A loadable library that is not libjxl lacks JxlDecoderVersion; the probe
// must report that as an error so the resolver can skip the cross-check.
func TestLoadProbeMissingSymbol(t *testing.T) {
	var libc string
	for _, p := range []string{
		"/lib/x86_64-linux-gnu/libc.so.6",
		"/lib/aarch64-linux-gnu/libc.so.6",
		"/usr/lib64/libc.so.6",
		"/usr/lib/libc.so.6",
	} {
		if _, err := os.Stat(p); err == nil {
			libc = p
			break
		}
	}
	if libc == "" {
		t.Skip("no libc shared object found to impersonate libjxl")
	}

	dir := t.TempDir()
	require.NoError(t, os.Symlink(libc, filepath.Join(dir, "libjxl.so")))

	_, err := LoadProbe(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JxlDecoderVersion")
}
