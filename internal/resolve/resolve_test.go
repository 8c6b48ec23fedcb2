package resolve

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coreos/go-semver/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePkgConfig answers --modversion from the versions map and returns
// canned flags for everything the resolver asks about.
func fakePkgConfig(versions map[string]string) *PkgConfig {
	run := func(_ context.Context, _ string, args ...string) (string, error) {
		switch {
		case args[0] == "--modversion":
			v, ok := versions[args[1]]
			if !ok {
				return "", fmt.Errorf("Package %s was not found in the pkg-config search path", args[1])
			}
			return v, nil
		case args[0] == "--cflags":
			return "-I/usr/include", nil
		case args[0] == "--libs":
			libs := make([]string, 0, len(args)-1)
			for _, m := range args[1:] {
				libs = append(libs, "-l"+strings.TrimPrefix(m, "lib"))
			}
			return strings.Join(libs, " "), nil
		case strings.HasPrefix(args[0], "--variable="):
			return "", nil
		}
		return "", fmt.Errorf("unexpected pkg-config args %v", args)
	}
	return &PkgConfig{Bin: "pkg-config", Run: run}
}

// fakeTree writes the minimum of a bundled libjxl checkout that the builder
// inspects: a top-level CMakeLists.txt and the versioned lib/CMakeLists.txt.
func fakeTree(t *testing.T, version string) string {
	t.Helper()
	src := t.TempDir()
	parts := strings.SplitN(version, ".", 3)
	lib := fmt.Sprintf(
		"set(JPEGXL_MAJOR_VERSION %s)\nset(JPEGXL_MINOR_VERSION %s)\nset(JPEGXL_PATCH_VERSION %s)\n",
		parts[0], parts[1], parts[2])
	require.NoError(t, os.WriteFile(filepath.Join(src, "CMakeLists.txt"), []byte("project(JPEGXL)\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "lib", "CMakeLists.txt"), []byte(lib), 0o644))
	return src
}

// fakeCMake records every invocation and simulates the directory side
// effects of a real configure/build.
type fakeCMake struct {
	calls [][]string
}

func (f *fakeCMake) runner(t *testing.T) Runner {
	return func(_ context.Context, name string, args ...string) (string, error) {
		require.Equal(t, "cmake", name)
		f.calls = append(f.calls, args)
		if args[0] == "-B" || args[0] == "-S" {
			for i, a := range args {
				if a == "-B" && i+1 < len(args) {
					require.NoError(t, os.MkdirAll(filepath.Join(args[i+1], "lib"), 0o755))
				}
			}
		}
		return "", nil
	}
}

func (f *fakeCMake) flat() string {
	var b strings.Builder
	for _, c := range f.calls {
		b.WriteString(strings.Join(c, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func newTestResolver(pc *PkgConfig, b *VendoredBuilder) *Resolver {
	return &Resolver{
		PkgConfig: pc,
		Builder:   b,
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestResolvePrefersSystemOverVendoring(t *testing.T) {
	cm := &fakeCMake{}
	r := newTestResolver(
		fakePkgConfig(map[string]string{"libjxl": "0.10.2"}),
		&VendoredBuilder{Run: cm.runner(t)},
	)

	out, err := r.Resolve(context.Background(), Spec{
		AllowVendored: true,
		SourceDir:     fakeTree(t, "0.10.2"),
	})
	require.NoError(t, err)
	assert.Equal(t, KindSystem, out.Kind)
	assert.Equal(t, "0.10.2", out.Version.String())
	assert.Empty(t, out.ArtifactDir, "system outcome must not carry a vendored artifact path")
	assert.Empty(t, cm.calls, "vendored build must not run when a satisfying system library exists")
}

func TestResolveRejectsVersionOutOfRange(t *testing.T) {
	for _, v := range []string{"0.8.2", "0.12.0", "1.0.0"} {
		r := newTestResolver(fakePkgConfig(map[string]string{"libjxl": v}), nil)
		_, err := r.Resolve(context.Background(), Spec{})
		require.Error(t, err, v)
		assert.ErrorIs(t, err, ErrVersionOutOfRange, v)
		assert.ErrorIs(t, err, ErrVendoringDisabled, v)
	}
}

func TestResolveThreadsCapabilityIsAContract(t *testing.T) {
	// System libjxl present but no threads module: the capability is
	// unproven, so a threaded request must not use it.
	pc := fakePkgConfig(map[string]string{"libjxl": "0.10.2"})

	t.Run("vendoring disabled fails loudly", func(t *testing.T) {
		r := newTestResolver(pc, nil)
		_, err := r.Resolve(context.Background(), Spec{Threads: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrThreadsUnavailable)
	})

	t.Run("vendoring enabled falls through", func(t *testing.T) {
		cm := &fakeCMake{}
		r := newTestResolver(pc, &VendoredBuilder{Run: cm.runner(t)})
		out, err := r.Resolve(context.Background(), Spec{
			Threads:       true,
			AllowVendored: true,
			SourceDir:     fakeTree(t, "0.10.2"),
		})
		require.NoError(t, err)
		assert.Equal(t, KindVendored, out.Kind)
		assert.True(t, out.Threads)
	})

	t.Run("mismatched threads module version fails", func(t *testing.T) {
		r := newTestResolver(fakePkgConfig(map[string]string{
			"libjxl":         "0.10.2",
			"libjxl_threads": "0.9.1",
		}), nil)
		_, err := r.Resolve(context.Background(), Spec{Threads: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrThreadsUnavailable)
	})
}

func TestResolveThreadedSystemLibrary(t *testing.T) {
	r := newTestResolver(fakePkgConfig(map[string]string{
		"libjxl":         "0.10.2",
		"libjxl_threads": "0.10.2",
	}), nil)
	out, err := r.Resolve(context.Background(), Spec{Threads: true})
	require.NoError(t, err)
	assert.Equal(t, KindSystem, out.Kind)
	assert.True(t, out.Threads)
	assert.Contains(t, out.LDFlags, "-ljxl_threads")
	assert.ElementsMatch(t, []string{"jxlthreads"}, out.Tags())
}

func TestVendoredBuildForwardsThreadsFlag(t *testing.T) {
	cm := &fakeCMake{}
	r := newTestResolver(
		fakePkgConfig(nil), // no system library at all
		&VendoredBuilder{Run: cm.runner(t)},
	)
	out, err := r.Resolve(context.Background(), Spec{
		Threads:       true,
		AllowVendored: true,
		SourceDir:     fakeTree(t, "0.10.2"),
	})
	require.NoError(t, err)

	assert.Equal(t, KindVendored, out.Kind)
	assert.Contains(t, out.BuildFlags, "-DJPEGXL_THREADS=ON")
	assert.Contains(t, cm.flat(), "-DJPEGXL_THREADS=ON")
	assert.Contains(t, cm.flat(), "--target jxl_threads")
	assert.Contains(t, out.LDFlags, "-ljxl_threads")
	assert.ElementsMatch(t, []string{"jxlvendored", "jxlthreads"}, out.Tags())
	assert.NotEmpty(t, out.ArtifactDir)
}

func TestResolveFailureNamesAllStrategies(t *testing.T) {
	r := newTestResolver(fakePkgConfig(nil), &VendoredBuilder{Run: (&fakeCMake{}).runner(t)})
	_, err := r.Resolve(context.Background(), Spec{AllowVendored: true, SourceDir: t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSystemLibrary)
	assert.Contains(t, err.Error(), "discovery failed")
	assert.Contains(t, err.Error(), "vendored build failed")
}

func TestResolveProbeVersionMismatch(t *testing.T) {
	pc := fakePkgConfig(map[string]string{"libjxl": "0.10.2"})
	pc.Run = func(ctx context.Context, name string, args ...string) (string, error) {
		if strings.HasPrefix(args[0], "--variable=") {
			return "/usr/lib", nil
		}
		return fakePkgConfig(map[string]string{"libjxl": "0.10.2"}).Run(ctx, name, args...)
	}
	r := newTestResolver(pc, nil)
	r.Probe = func(libdir string) (*semver.Version, error) {
		return semver.New("0.8.0"), nil
	}
	_, err := r.Resolve(context.Background(), Spec{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionMismatch)
}

func TestResolveProbeLoadFailureIsNotFatal(t *testing.T) {
	pc := fakePkgConfig(map[string]string{"libjxl": "0.10.2"})
	r := newTestResolver(pc, nil)
	r.Probe = func(libdir string) (*semver.Version, error) {
		return nil, fmt.Errorf("dlopen: static-only install")
	}
	out, err := r.Resolve(context.Background(), Spec{})
	require.NoError(t, err)
	assert.Equal(t, KindSystem, out.Kind)
}

func TestVendoredBuildSkipsWhenUnchanged(t *testing.T) {
	cm := &fakeCMake{}
	b := &VendoredBuilder{Run: cm.runner(t)}
	spec := Spec{Threads: false, AllowVendored: true, SourceDir: fakeTree(t, "0.10.2")}

	_, err := b.Build(context.Background(), spec)
	require.NoError(t, err)
	first := len(cm.calls)
	require.Greater(t, first, 0)

	res, err := b.Build(context.Background(), spec)
	require.NoError(t, err)
	assert.Len(t, cm.calls, first, "unchanged tree must not be reconfigured or rebuilt")
	assert.Equal(t, "0.10.2", res.Version.String())
}

func TestSpecVersionBounds(t *testing.T) {
	spec := Spec{}
	assert.True(t, spec.versionOK(semver.New("0.9.0")))
	assert.True(t, spec.versionOK(semver.New("0.11.5")))
	assert.False(t, spec.versionOK(semver.New("0.8.9")))
	assert.False(t, spec.versionOK(semver.New("0.12.0")))

	spec = Spec{MinVersion: semver.New("0.10.0"), MaxVersion: semver.New("0.11.0")}
	assert.False(t, spec.versionOK(semver.New("0.9.3")))
	assert.True(t, spec.versionOK(semver.New("0.10.9")))
}
