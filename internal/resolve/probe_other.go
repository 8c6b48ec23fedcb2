//go:build !darwin && !linux

package resolve

import (
	"errors"

	"github.com/coreos/go-semver/semver"
)

// LoadProbe is unavailable off darwin/linux; the resolver treats that as
// "probe skipped", not as a discovery failure.
func LoadProbe(string) (*semver.Version, error) {
	return nil, errors.New("load probe: unsupported platform")
}
