package spec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kingrea/metadspy/runtime"
)

// DefaultRationaleFieldType means "keep the runtime's rationale type".
const DefaultRationaleFieldType = "str"

// ChainOfThoughtSpec describes a chain-of-thought module. Config is passed to
// the runtime verbatim.
type ChainOfThoughtSpec struct {
	Base               `yaml:",inline"`
	RationaleField     *string        `yaml:"rationale_field,omitempty"`
	RationaleFieldType string         `yaml:"rationale_field_type"`
	Config             map[string]any `yaml:"config,omitempty"`
}

// Kind implements ModuleSpec.
func (s *ChainOfThoughtSpec) Kind() Kind { return KindChainOfThought }

// Validate implements ModuleSpec. The rationale type must be one of the
// names runtime.LookupType knows.
func (s *ChainOfThoughtSpec) Validate() error {
	if err := s.Base.validate(KindChainOfThought); err != nil {
		return err
	}
	s.RationaleFieldType = strings.TrimSpace(s.RationaleFieldType)
	if s.RationaleFieldType == "" {
		s.RationaleFieldType = DefaultRationaleFieldType
	}
	if _, ok := runtime.LookupType(s.RationaleFieldType); !ok {
		return &ValidationError{
			Module: s.Name,
			Field:  "rationale_field_type",
			Reason: fmt.Sprintf("unknown type %q (want one of %s)", s.RationaleFieldType, strings.Join(runtime.TypeNames(), ", ")),
		}
	}
	if len(s.Config) == 0 {
		s.Config = nil
	}
	return nil
}

// Build starts from a copy of Config and layers the rationale overrides on top.
func (s *ChainOfThoughtSpec) Build(sig runtime.Signature, env Env) (runtime.Module, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	kw := runtime.NewKwargs()
	keys := make([]string, 0, len(s.Config))
	for key := range s.Config {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		kw.Set(key, s.Config[key])
	}
	if s.RationaleField != nil {
		kw.Set(runtime.KwRationaleField, *s.RationaleField)
	}
	if s.RationaleFieldType != "" && s.RationaleFieldType != DefaultRationaleFieldType {
		token, ok := runtime.LookupType(s.RationaleFieldType)
		if !ok {
			return nil, &ValidationError{Module: s.Name, Field: "rationale_field_type", Reason: fmt.Sprintf("unknown type %q", s.RationaleFieldType)}
		}
		kw.Set(runtime.KwRationaleFieldType, token)
	}
	return construct(s.Name, KindChainOfThought, env.Runtime.ChainOfThought, sig, kw)
}
