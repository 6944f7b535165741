package spec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/metadspy/runtime"
	"github.com/kingrea/metadspy/symbol"
)

// ModuleSpec is implemented by every module variant.
type ModuleSpec interface {
	// Kind returns the variant's discriminator tag.
	Kind() Kind
	// Info returns the attributes shared by every variant.
	Info() Base
	// Validate checks the spec, normalizing fields where the schema allows
	// more than one spelling.
	Validate() error
	// Build resolves the spec's references and calls the runtime constructor
	// for its kind. On failure no module is returned.
	Build(sig runtime.Signature, env Env) (runtime.Module, error)
}

// Base carries the attributes shared by every variant.
type Base struct {
	// Name identifies the built instance. Uniqueness is the caller's concern.
	Name string `yaml:"name"`
	Type Kind   `yaml:"type"`
	// Use names the signature the module implements; it is passed through.
	Use       string   `yaml:"use"`
	Callbacks []string `yaml:"callbacks,omitempty"`
}

// Info implements ModuleSpec.Info.
func (b *Base) Info() Base {
	clone := *b
	clone.Callbacks = append([]string(nil), b.Callbacks...)
	return clone
}

func (b *Base) validate(kind Kind) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Use = strings.TrimSpace(b.Use)
	if b.Name == "" {
		return &SchemaError{Field: "name", Reason: "is required"}
	}
	if b.Type != kind {
		return &SchemaError{Module: b.Name, Field: "type", Reason: fmt.Sprintf("expected %s, got %q", kind, b.Type)}
	}
	if b.Use == "" {
		return &SchemaError{Module: b.Name, Field: "use", Reason: "is required"}
	}
	if len(b.Callbacks) == 0 {
		b.Callbacks = nil
	}
	for idx, ref := range b.Callbacks {
		if strings.TrimSpace(ref) == "" {
			return &SchemaError{Module: b.Name, Field: fmt.Sprintf("callbacks[%d]", idx), Reason: "reference is empty"}
		}
	}
	return nil
}

// Env carries the collaborators a build needs.
type Env struct {
	Resolver symbol.Resolver
	Runtime  runtime.Constructors
}

func (e Env) validate() error {
	if e.Resolver == nil {
		return errors.New("spec: env: resolver is required")
	}
	if e.Runtime == nil {
		return errors.New("spec: env: runtime is required")
	}
	return nil
}

func (e Env) resolve(field, ref string) (any, error) {
	value, err := e.Resolver.Resolve(ref)
	if err == nil {
		return value, nil
	}
	var rerr *symbol.ResolutionError
	if !errors.As(err, &rerr) {
		return nil, &symbol.ResolutionError{Ref: ref, Field: field, Reason: "resolver failed", Err: err}
	}
	if rerr.Field == "" {
		rerr.Field = field
	}
	return nil, err
}

// resolveAll resolves refs in order. Order is part of the runtime contract.
func (e Env) resolveAll(field string, refs []string) ([]any, error) {
	values := make([]any, 0, len(refs))
	for idx, ref := range refs {
		value, err := e.resolve(fmt.Sprintf("%s[%d]", field, idx), ref)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

// setCallbacks forwards callbacks only when the spec lists some.
func (e Env) setCallbacks(kw *runtime.Kwargs, refs []string) error {
	if len(refs) == 0 {
		return nil
	}
	callbacks, err := e.resolveAll(runtime.KwCallbacks, refs)
	if err != nil {
		return err
	}
	kw.Set(runtime.KwCallbacks, callbacks)
	return nil
}

type constructor func(runtime.Signature, runtime.Kwargs) (runtime.Module, error)

func construct(name string, kind Kind, fn constructor, sig runtime.Signature, kw runtime.Kwargs) (runtime.Module, error) {
	mod, err := fn(sig, kw)
	if err != nil {
		return nil, &BuildError{Module: name, Kind: kind, Err: err}
	}
	return mod, nil
}
