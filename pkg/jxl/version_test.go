package jxl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpackVersion(t *testing.T) {
	cases := []struct {
		packed uint32
		want   string
	}{
		{0, "0.0.0"},
		{9_000, "0.9.0"},
		{10_002, "0.10.2"},
		{1_002_003, "1.2.3"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, unpackVersion(c.packed).String(), "packed %d", c.packed)
	}
}

func TestWrapperVersionDefault(t *testing.T) {
	assert.Equal(t, "dev", WrapperVersion())
}

func TestVersionsRequireNativeLibrary(t *testing.T) {
	if Available() {
		t.Skip("native library linked in; stub behavior not reachable")
	}
	_, err := DecoderVersion()
	require.ErrorIs(t, err, ErrNotBuilt)
	require.ErrorIs(t, CheckVersion(nil, nil), ErrNotBuilt)
}
