package resolve

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/coreos/go-semver/semver"
)

const fingerprintFile = ".jxlconfig-fingerprint"

// BuildResult describes a completed vendored build.
type BuildResult struct {
	Version     *semver.Version
	CFlags      []string
	LDFlags     []string
	BuildFlags  []string
	ArtifactDir string
}

// VendoredBuilder drives a CMake build of the bundled libjxl tree. The
// threads capability flag is forwarded into the sub-build's target set so the
// produced artifact always matches the request.
type VendoredBuilder struct {
	Run Runner

	// CMake is the cmake executable; empty means "cmake" on PATH.
	CMake string
}

// NewVendoredBuilder returns a builder using the real cmake on PATH.
func NewVendoredBuilder() *VendoredBuilder {
	return &VendoredBuilder{Run: ExecRunner}
}

func (b *VendoredBuilder) cmake() string {
	if b.CMake != "" {
		return b.CMake
	}
	return "cmake"
}

func (b *VendoredBuilder) run(ctx context.Context, args ...string) (string, error) {
	r := b.Run
	if r == nil {
		r = ExecRunner
	}
	return r(ctx, b.cmake(), args...)
}

// configureFlags are the cmake cache entries for the sub-build. Everything
// except the library targets themselves is switched off; the result is a
// static library set the binding links with ${SRCDIR}-relative directives.
func configureFlags(threads bool) []string {
	flags := []string{
		"-DCMAKE_BUILD_TYPE=Release",
		"-DBUILD_SHARED_LIBS=OFF",
		"-DBUILD_TESTING=OFF",
		"-DJPEGXL_ENABLE_TOOLS=OFF",
		"-DJPEGXL_ENABLE_EXAMPLES=OFF",
		"-DJPEGXL_ENABLE_BENCHMARK=OFF",
		"-DJPEGXL_ENABLE_MANPAGES=OFF",
		"-DJPEGXL_ENABLE_JNI=OFF",
		"-DJPEGXL_ENABLE_SJPEG=OFF",
		"-DJPEGXL_ENABLE_OPENEXR=OFF",
	}
	if threads {
		flags = append(flags, "-DJPEGXL_THREADS=ON")
	}
	return flags
}

// Build configures and builds the bundled tree described by spec, skipping
// the compile entirely when the source tree and flags are unchanged since the
// previous run.
func (b *VendoredBuilder) Build(ctx context.Context, spec Spec) (*BuildResult, error) {
	src := spec.SourceDir
	if src == "" {
		return nil, errors.New("vendored build: no bundled source directory configured")
	}
	if _, err := os.Stat(filepath.Join(src, "CMakeLists.txt")); err != nil {
		return nil, fmt.Errorf("vendored build: bundled source tree missing or incomplete at %s: %w", src, err)
	}

	version, err := treeVersion(src)
	if err != nil {
		return nil, err
	}

	buildDir := spec.BuildDir
	if buildDir == "" {
		buildDir = filepath.Join(src, "build-go")
	}
	flags := configureFlags(spec.Threads)

	fp, err := fingerprint(src, flags)
	if err != nil {
		return nil, fmt.Errorf("vendored build: fingerprint: %w", err)
	}
	res := &BuildResult{
		Version:     version,
		BuildFlags:  flags,
		ArtifactDir: filepath.Join(buildDir, "lib"),
		CFlags: []string{
			"-I" + filepath.Join(src, "lib", "include"),
			"-I" + filepath.Join(buildDir, "lib", "include"),
		},
		LDFlags: linkFlags(filepath.Join(buildDir, "lib"), filepath.Join(buildDir, "third_party"), spec.Threads),
	}
	if upToDate(buildDir, fp) {
		return res, nil
	}

	if _, err := b.run(ctx, append([]string{"-S", src, "-B", buildDir}, flags...)...); err != nil {
		return nil, fmt.Errorf("vendored build: configure: %w", err)
	}
	targets := []string{"--build", buildDir, "--target", "jxl"}
	if spec.Threads {
		targets = append(targets, "--target", "jxl_threads")
	}
	if _, err := b.run(ctx, targets...); err != nil {
		return nil, fmt.Errorf("vendored build: compile: %w", err)
	}

	if err := os.WriteFile(filepath.Join(buildDir, fingerprintFile), []byte(fp), 0o644); err != nil {
		return nil, fmt.Errorf("vendored build: record fingerprint: %w", err)
	}
	return res, nil
}

// linkFlags lists what a static libjxl needs at link time, including its
// bundled highway and brotli dependencies.
func linkFlags(libDir, thirdPartyDir string, threads bool) []string {
	flags := []string{"-L" + libDir, "-L" + thirdPartyDir}
	if threads {
		flags = append(flags, "-ljxl_threads")
	}
	flags = append(flags,
		"-ljxl",
		"-ljxl_cms",
		"-lhwy",
		"-lbrotlidec", "-lbrotlienc", "-lbrotlicommon",
		"-lstdc++", "-lm",
	)
	return flags
}

var versionRe = regexp.MustCompile(`set\(JPEGXL_(MAJOR|MINOR|PATCH)_VERSION\s+(\d+)\)`)

// treeVersion reads the bundled tree's declared version out of its cmake
// metadata so the resolver can apply the same range check it applies to a
// discovered library.
func treeVersion(src string) (*semver.Version, error) {
	for _, rel := range []string{filepath.Join("lib", "CMakeLists.txt"), "CMakeLists.txt"} {
		data, err := os.ReadFile(filepath.Join(src, rel))
		if err != nil {
			continue
		}
		parts := map[string]int64{}
		for _, m := range versionRe.FindAllStringSubmatch(string(data), -1) {
			n, err := strconv.ParseInt(m[2], 10, 64)
			if err != nil {
				continue
			}
			parts[m[1]] = n
		}
		if len(parts) == 3 {
			return &semver.Version{
				Major: parts["MAJOR"],
				Minor: parts["MINOR"],
				Patch: parts["PATCH"],
			}, nil
		}
	}
	return nil, fmt.Errorf("vendored build: cannot determine bundled tree version under %s", src)
}

// fingerprint hashes the source tree metadata plus the configure flags. File
// contents are deliberately not read; path, size and mtime are enough to
// catch a changed checkout and keep the no-op path fast.
func fingerprint(src string, flags []string) (string, error) {
	h := xxhash.New()
	for _, f := range flags {
		_, _ = h.WriteString(f)
		_, _ = h.WriteString("\x00")
	}
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			// Build output and VCS metadata do not describe the sources.
			if name == ".git" || strings.HasPrefix(name, "build") {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		_, _ = h.WriteString(rel)
		var meta [16]byte
		binary.LittleEndian.PutUint64(meta[:8], uint64(info.Size()))
		binary.LittleEndian.PutUint64(meta[8:], uint64(info.ModTime().UnixNano()))
		_, _ = h.Write(meta[:])
		return nil
	})
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(h.Sum64(), 16), nil
}

// upToDate reports whether a previous build of the same inputs is still
// present in buildDir.
func upToDate(buildDir, fp string) bool {
	prev, err := os.ReadFile(filepath.Join(buildDir, fingerprintFile))
	if err != nil || string(prev) != fp {
		return false
	}
	_, err = os.Stat(filepath.Join(buildDir, "lib"))
	return err == nil
}
