package symbol

import (
	"fmt"
	"strings"
)

// ResolutionError reports a reference that could not be turned into a value:
// malformed text, a missing file or module, a unit that failed to load, or an
// absent attribute.
type ResolutionError struct {
	Ref string
	// Field names the spec field that carried the reference, e.g. "tools[1]".
	// Resolvers leave it empty; spec builders fill it in.
	Field  string
	Reason string
	Err    error
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString("symbol: ")
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "resolve %q: %s", e.Ref, e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func resolutionError(ref, reason string, err error) *ResolutionError {
	return &ResolutionError{Ref: ref, Reason: reason, Err: err}
}
