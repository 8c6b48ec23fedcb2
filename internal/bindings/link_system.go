//go:build cgo && !windows && !jxlvendored

package bindings

// Default link mode: a system-installed libjxl located through pkg-config.
// Run cmd/jxlconfig first to validate the installation (version range,
// threading capability) with a readable diagnostic instead of a linker error.

// #cgo pkg-config: libjxl
import "C"
