package resolve

import (
	"strings"
	"testing"

	"github.com/coreos/go-semver/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeEnv(t *testing.T) {
	out := &Outcome{
		Kind:    KindVendored,
		Version: semver.New("0.10.2"),
		Threads: true,
		CFlags:  []string{"-I/opt/jxl/include"},
		LDFlags: []string{"-L/opt/jxl/lib", "-ljxl"},
	}

	var b strings.Builder
	require.NoError(t, out.WriteEnv(&b))
	env := b.String()

	assert.Contains(t, env, "CGO_ENABLED=1\n")
	assert.Contains(t, env, "CGO_CFLAGS=-I/opt/jxl/include\n")
	assert.Contains(t, env, "CGO_LDFLAGS=-L/opt/jxl/lib -ljxl\n")
	assert.Contains(t, env, "GOFLAGS=-tags=jxlvendored,jxlthreads\n")
}

func TestOutcomeEnvNoTags(t *testing.T) {
	out := &Outcome{Kind: KindSystem, Version: semver.New("0.9.1")}
	assert.NotContains(t, strings.Join(out.Env(), "\n"), "GOFLAGS")
}
