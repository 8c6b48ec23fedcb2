package resolve

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/coreos/go-semver/semver"
)

// Runner executes an external command and returns its trimmed stdout. It
// exists so tests can resolve against a fake pkg-config or cmake instead of
// the host's.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// ExecRunner runs the command for real, surfacing stderr in the error.
func ExecRunner(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
		}
		return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
	}
	return strings.TrimSpace(string(out)), nil
}

// PkgConfig queries the host's pkg-config database.
type PkgConfig struct {
	// Bin is the pkg-config executable. PKG_CONFIG in the environment
	// overrides it, matching autoconf convention.
	Bin string
	Run Runner
}

// NewPkgConfig returns a PkgConfig using the real binary on PATH.
func NewPkgConfig() *PkgConfig {
	bin := os.Getenv("PKG_CONFIG")
	if bin == "" {
		bin = "pkg-config"
	}
	return &PkgConfig{Bin: bin, Run: ExecRunner}
}

func (p *PkgConfig) run(ctx context.Context, args ...string) (string, error) {
	r := p.Run
	if r == nil {
		r = ExecRunner
	}
	bin := p.Bin
	if bin == "" {
		bin = "pkg-config"
	}
	return r(ctx, bin, args...)
}

// ModVersion returns the version a module reports, parsed as semver.
func (p *PkgConfig) ModVersion(ctx context.Context, module string) (*semver.Version, error) {
	out, err := p.run(ctx, "--modversion", module)
	if err != nil {
		return nil, err
	}
	v, err := semver.NewVersion(strings.TrimSpace(out))
	if err != nil {
		return nil, fmt.Errorf("pkg-config reported unparseable version %q for %s: %w", out, module, err)
	}
	return v, nil
}

// CFlags returns the compiler flags for the given modules.
func (p *PkgConfig) CFlags(ctx context.Context, modules ...string) ([]string, error) {
	out, err := p.run(ctx, append([]string{"--cflags"}, modules...)...)
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// Libs returns the linker flags for the given modules.
func (p *PkgConfig) Libs(ctx context.Context, modules ...string) ([]string, error) {
	out, err := p.run(ctx, append([]string{"--libs"}, modules...)...)
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

// Variable returns a single pkg-config variable such as libdir.
func (p *PkgConfig) Variable(ctx context.Context, module, name string) (string, error) {
	out, err := p.run(ctx, "--variable="+name, module)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
