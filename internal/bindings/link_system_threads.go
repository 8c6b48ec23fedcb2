//go:build cgo && !windows && !jxlvendored && jxlthreads

package bindings

// The jxlthreads tag adds the separately shipped thread-pool runner library.

// #cgo pkg-config: libjxl_threads
import "C"
