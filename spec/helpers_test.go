package spec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kingrea/metadspy/runtime"
	"github.com/kingrea/metadspy/symbol"
)

// call is one constructor invocation seen by recordingRuntime.
type call struct {
	constructor string
	sig         runtime.Signature
	kw          runtime.Kwargs
}

// recordingRuntime records constructor calls and optionally rejects them.
type recordingRuntime struct {
	calls []call
	err   error
}

func (r *recordingRuntime) record(name string, sig runtime.Signature, kw runtime.Kwargs) (runtime.Module, error) {
	r.calls = append(r.calls, call{constructor: name, sig: sig, kw: kw})
	if r.err != nil {
		return nil, r.err
	}
	return name + "-module", nil
}

func (r *recordingRuntime) Predict(sig runtime.Signature, kw runtime.Kwargs) (runtime.Module, error) {
	return r.record("Predict", sig, kw)
}

func (r *recordingRuntime) ReAct(sig runtime.Signature, kw runtime.Kwargs) (runtime.Module, error) {
	return r.record("ReAct", sig, kw)
}

func (r *recordingRuntime) CodeAct(sig runtime.Signature, kw runtime.Kwargs) (runtime.Module, error) {
	return r.record("CodeAct", sig, kw)
}

func (r *recordingRuntime) ChainOfThought(sig runtime.Signature, kw runtime.Kwargs) (runtime.Module, error) {
	return r.record("ChainOfThought", sig, kw)
}

func (r *recordingRuntime) last(t *testing.T) call {
	t.Helper()
	require.NotEmpty(t, r.calls, "runtime constructor was not called")
	return r.calls[len(r.calls)-1]
}

// marker is a registry value that can be compared by identity.
type marker struct{ name string }

var (
	toolA         = &marker{name: "tool_a"}
	toolB         = &marker{name: "tool_b"}
	logCallback   = &marker{name: "log"}
	pyInterpreter = &marker{name: "python"}
)

func testRegistry() *symbol.Registry {
	reg := symbol.NewRegistry()
	reg.MustRegister("pkg.mod", "tool_a", toolA)
	reg.MustRegister("pkg.mod", "tool_b", toolB)
	reg.MustRegister("pkg.callbacks", "log", logCallback)
	reg.MustRegister("pkg.interp", "python", pyInterpreter)
	return reg
}

func testEnv() (Env, *recordingRuntime) {
	rt := &recordingRuntime{}
	return Env{Resolver: testRegistry(), Runtime: rt}, rt
}

func decode(t *testing.T, doc string) ModuleSpec {
	t.Helper()
	mod, err := Decode([]byte(doc))
	require.NoError(t, err)
	return mod
}

func requireSchemaError(t *testing.T, err error) *SchemaError {
	t.Helper()
	var serr *SchemaError
	require.True(t, errors.As(err, &serr), "expected SchemaError, got %T: %v", err, err)
	return serr
}

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %T: %v", err, err)
	return verr
}

func ptr[T any](v T) *T {
	return &v
}
