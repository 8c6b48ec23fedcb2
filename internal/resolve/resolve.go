// Package resolve decides how a build obtains the native libjxl codec
// library: discover a version-compatible copy already installed on the host,
// or fall back to building the bundled source tree when the caller opted in.
// Exactly one Outcome is produced per invocation; downstream tooling turns it
// into cgo flags and build tags.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coreos/go-semver/semver"
)

// Library module names as published by libjxl's pkg-config files. The
// thread-pool runner ships as a separate library, which is what lets
// discovery prove threading support instead of guessing.
const (
	ModuleCore    = "libjxl"
	ModuleThreads = "libjxl_threads"
)

// Default supported version range. The lower bound pins the 0.9 ABI (color
// profile getters lost their pixel-format parameter in 0.9); the upper bound
// excludes the next series whose ABI is unreviewed.
var (
	DefaultMinVersion = semver.New("0.9.0")
	DefaultMaxVersion = semver.New("0.12.0")
)

// Spec captures one build invocation's requirements. It is constructed once
// from the caller's feature flags and never mutated during resolution.
type Spec struct {
	// MinVersion and MaxVersion bound the acceptable native library version:
	// MinVersion inclusive, MaxVersion exclusive. Nil fields take the package
	// defaults.
	MinVersion *semver.Version
	MaxVersion *semver.Version

	// Threads requests threaded-execution capability. It is a contract: a
	// resolution that cannot prove the capability must fail rather than
	// silently drop it.
	Threads bool

	// AllowVendored permits building the bundled source tree when no
	// satisfying system library exists.
	AllowVendored bool

	// SourceDir is the bundled libjxl source tree used for vendored builds.
	SourceDir string

	// BuildDir receives vendored build artifacts. Empty defaults to
	// SourceDir/build-go.
	BuildDir string
}

func (s Spec) minVersion() *semver.Version {
	if s.MinVersion != nil {
		return s.MinVersion
	}
	return DefaultMinVersion
}

func (s Spec) maxVersion() *semver.Version {
	if s.MaxVersion != nil {
		return s.MaxVersion
	}
	return DefaultMaxVersion
}

// versionOK reports whether v falls inside [min, max).
func (s Spec) versionOK(v *semver.Version) bool {
	return !v.LessThan(*s.minVersion()) && v.LessThan(*s.maxVersion())
}

// Kind discriminates the two resolution outcomes.
type Kind int

const (
	// KindSystem links against a discovered host library.
	KindSystem Kind = iota + 1
	// KindVendored links against an artifact built from the bundled tree.
	KindVendored
)

func (k Kind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindVendored:
		return "vendored"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the single result of a resolution. Exactly one variant is ever
// produced: Kind selects it, and the variant-specific fields of the other
// kind stay zero. The outcome has no runtime lifetime; it exists to be
// serialized into the build environment and discarded.
type Outcome struct {
	Kind    Kind
	Version *semver.Version

	// Threads records whether the resolved library carries threaded
	// execution. It is true only when the capability was proven.
	Threads bool

	// CFlags and LDFlags are the compiler and linker directives the cgo
	// build must use.
	CFlags  []string
	LDFlags []string

	// BuildFlags holds the flags forwarded into the vendored sub-build.
	// Empty for system outcomes.
	BuildFlags []string

	// ArtifactDir is where the vendored build placed its libraries. Empty
	// for system outcomes.
	ArtifactDir string
}

// Tags returns the build tags the binding layer keys its link directives on.
func (o *Outcome) Tags() []string {
	var tags []string
	if o.Kind == KindVendored {
		tags = append(tags, "jxlvendored")
	}
	if o.Threads {
		tags = append(tags, "jxlthreads")
	}
	return tags
}

// Sentinel resolution errors. They are wrapped into the final diagnostic so
// callers (and tests) can still pick the strategy failures apart.
var (
	ErrNoSystemLibrary    = errors.New("resolve: no system libjxl found")
	ErrVersionOutOfRange  = errors.New("resolve: system libjxl version outside supported range")
	ErrThreadsUnavailable = errors.New("resolve: threaded execution requested but not provided by system libjxl")
	ErrVendoringDisabled  = errors.New("resolve: vendored build disabled")
	ErrVersionMismatch    = errors.New("resolve: loaded library version disagrees with pkg-config")
)

// Probe loads a shared library from the discovery result and returns the
// decoder version it actually reports, as an extra cross-check on top of the
// pkg-config metadata. A nil Probe skips the check.
type Probe func(libdir string) (*semver.Version, error)

// Resolver runs the preferred-then-fallback decision procedure.
type Resolver struct {
	PkgConfig *PkgConfig
	Builder   *VendoredBuilder
	Probe     Probe
	Log       *slog.Logger
}

// NewResolver returns a Resolver wired to the real pkg-config and cmake
// binaries on PATH.
func NewResolver() *Resolver {
	return &Resolver{
		PkgConfig: NewPkgConfig(),
		Builder:   NewVendoredBuilder(),
		Probe:     LoadProbe,
		Log:       slog.Default(),
	}
}

func (r *Resolver) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// Resolve produces exactly one Outcome for spec or fails with a build-fatal
// error naming every strategy that was attempted. Discovery is always
// preferred over vendoring; vendoring never runs when a satisfying system
// library exists.
func (r *Resolver) Resolve(ctx context.Context, spec Spec) (*Outcome, error) {
	out, discoverErr := r.discover(ctx, spec)
	if discoverErr == nil {
		r.log().Info("resolved system libjxl",
			"version", out.Version.String(),
			"threads", out.Threads)
		return out, nil
	}
	r.log().Debug("system discovery failed", "err", discoverErr)

	if !spec.AllowVendored {
		return nil, fmt.Errorf(
			"resolve: no usable libjxl: discovery failed (%w) and vendoring is disabled (%w)",
			discoverErr, ErrVendoringDisabled)
	}

	out, vendorErr := r.vendor(ctx, spec)
	if vendorErr == nil {
		r.log().Info("resolved vendored libjxl",
			"version", out.Version.String(),
			"artifact_dir", out.ArtifactDir,
			"threads", out.Threads)
		return out, nil
	}

	return nil, fmt.Errorf(
		"resolve: no usable libjxl: discovery failed (%w); vendored build failed (%w)",
		discoverErr, vendorErr)
}

// discover queries the host's pkg-config database for a satisfying library.
// A threaded request additionally requires the separate threads module at a
// matching version; absence of that module means the capability is unproven
// and the whole discovery path fails.
func (r *Resolver) discover(ctx context.Context, spec Spec) (*Outcome, error) {
	if r.PkgConfig == nil {
		return nil, ErrNoSystemLibrary
	}

	version, err := r.PkgConfig.ModVersion(ctx, ModuleCore)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSystemLibrary, err)
	}
	if !spec.versionOK(version) {
		return nil, fmt.Errorf("%w: found %s, want >=%s <%s",
			ErrVersionOutOfRange, version, spec.minVersion(), spec.maxVersion())
	}

	modules := []string{ModuleCore}
	if spec.Threads {
		tv, err := r.PkgConfig.ModVersion(ctx, ModuleThreads)
		if err != nil {
			return nil, fmt.Errorf("%w: %s not registered: %v",
				ErrThreadsUnavailable, ModuleThreads, err)
		}
		if tv.Compare(*version) != 0 {
			return nil, fmt.Errorf("%w: %s is %s but %s is %s",
				ErrThreadsUnavailable, ModuleThreads, tv, ModuleCore, version)
		}
		modules = append(modules, ModuleThreads)
	}

	cflags, err := r.PkgConfig.CFlags(ctx, modules...)
	if err != nil {
		return nil, fmt.Errorf("resolve: pkg-config cflags: %w", err)
	}
	ldflags, err := r.PkgConfig.Libs(ctx, modules...)
	if err != nil {
		return nil, fmt.Errorf("resolve: pkg-config libs: %w", err)
	}

	if r.Probe != nil {
		if err := r.crossCheck(ctx, version); err != nil {
			return nil, err
		}
	}

	return &Outcome{
		Kind:    KindSystem,
		Version: version,
		Threads: spec.Threads,
		CFlags:  cflags,
		LDFlags: ldflags,
	}, nil
}

// crossCheck dlopens the discovered library and compares the version it
// reports at call time with what pkg-config claimed. A library that cannot be
// loaded (a static-only install, for instance) is logged and accepted; a
// library that loads and disagrees is rejected.
func (r *Resolver) crossCheck(ctx context.Context, claimed *semver.Version) error {
	libdir, err := r.PkgConfig.Variable(ctx, ModuleCore, "libdir")
	if err != nil || libdir == "" {
		r.log().Debug("skipping load probe, no libdir variable", "err", err)
		return nil
	}
	loaded, err := r.Probe(libdir)
	if err != nil {
		r.log().Debug("skipping load probe", "err", err)
		return nil
	}
	if loaded.Major != claimed.Major || loaded.Minor != claimed.Minor {
		return fmt.Errorf("%w: pkg-config says %s, loaded library reports %s",
			ErrVersionMismatch, claimed, loaded)
	}
	return nil
}

// vendor builds the bundled tree, forwarding the threads request into the
// sub-build so the produced artifact matches the caller's contract.
func (r *Resolver) vendor(ctx context.Context, spec Spec) (*Outcome, error) {
	if r.Builder == nil {
		return nil, errors.New("resolve: no vendored builder configured")
	}
	res, err := r.Builder.Build(ctx, spec)
	if err != nil {
		return nil, err
	}
	if !spec.versionOK(res.Version) {
		return nil, fmt.Errorf("resolve: bundled tree is version %s, outside supported range >=%s <%s",
			res.Version, spec.minVersion(), spec.maxVersion())
	}
	return &Outcome{
		Kind:        KindVendored,
		Version:     res.Version,
		Threads:     spec.Threads,
		CFlags:      res.CFlags,
		LDFlags:     res.LDFlags,
		BuildFlags:  res.BuildFlags,
		ArtifactDir: res.ArtifactDir,
	}, nil
}
