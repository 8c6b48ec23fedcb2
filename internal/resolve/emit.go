package resolve

import (
	"fmt"
	"io"
	"strings"
)

// Env renders the outcome as the environment the cgo build must run under.
// The build tags carry the capability and vendoring decisions into the
// binding layer's link-directive files.
func (o *Outcome) Env() []string {
	env := []string{
		"CGO_ENABLED=1",
		"CGO_CFLAGS=" + strings.Join(o.CFlags, " "),
		"CGO_LDFLAGS=" + strings.Join(o.LDFlags, " "),
	}
	if tags := o.Tags(); len(tags) > 0 {
		env = append(env, "GOFLAGS=-tags="+strings.Join(tags, ","))
	}
	return env
}

// WriteEnv writes Env in KEY=value lines, suitable for a dotenv file or for
// eval in a shell wrapper.
func (o *Outcome) WriteEnv(w io.Writer) error {
	for _, kv := range o.Env() {
		if _, err := fmt.Fprintln(w, kv); err != nil {
			return err
		}
	}
	return nil
}
