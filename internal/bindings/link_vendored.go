//go:build cgo && !windows && jxlvendored

package bindings

// Vendored link mode: static libraries produced by cmd/jxlconfig building the
// bundled libjxl tree into libjxl/build-go. The include path covers both the
// checked-in headers and the generated ones (jxl/version.h lands in the build
// tree).

/*
#cgo CFLAGS: -I${SRCDIR}/../../libjxl/lib/include -I${SRCDIR}/../../libjxl/build-go/lib/include
#cgo LDFLAGS: -L${SRCDIR}/../../libjxl/build-go/lib -L${SRCDIR}/../../libjxl/build-go/third_party
#cgo jxlthreads LDFLAGS: -ljxl_threads
#cgo LDFLAGS: -ljxl -ljxl_cms -lhwy -lbrotlidec -lbrotlienc -lbrotlicommon -lstdc++ -lm
*/
import "C"
