package spec

import (
	"fmt"
	"strings"
)

// SchemaError reports a document that does not have the shape of a module
// spec: unknown discriminator, missing required key, unknown or mistyped
// field.
type SchemaError struct {
	Module string
	Field  string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	return joinError(e.Module, e.Field, e.Reason, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ValidationError reports a present value that violates a declared
// constraint, such as a temperature outside [0, 2].
type ValidationError struct {
	Module string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return joinError(e.Module, e.Field, e.Reason, nil)
}

// BuildError reports a runtime constructor that rejected the assembled
// keywords. Err is the constructor's error, untouched.
type BuildError struct {
	Module string
	Kind   Kind
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("spec: module %s: build %s: %v", e.Module, e.Kind, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func joinError(module, field, reason string, err error) string {
	parts := []string{"spec"}
	if module != "" {
		parts = append(parts, "module "+module)
	}
	if field != "" {
		parts = append(parts, field)
	}
	if reason != "" {
		parts = append(parts, reason)
	}
	if err != nil {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, ": ")
}

// scoped stamps module and a field prefix onto schema and validation errors
// produced by nested types.
func scoped(err error, module, prefix string) error {
	switch e := err.(type) {
	case *SchemaError:
		if e.Module == "" {
			e.Module = module
		}
		e.Field = joinField(prefix, e.Field)
	case *ValidationError:
		if e.Module == "" {
			e.Module = module
		}
		e.Field = joinField(prefix, e.Field)
	}
	return err
}

func joinField(prefix, field string) string {
	switch {
	case prefix == "":
		return field
	case field == "":
		return prefix
	default:
		return prefix + "." + field
	}
}
