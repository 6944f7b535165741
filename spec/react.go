package spec

import (
	"fmt"
	"strings"

	"github.com/kingrea/metadspy/runtime"
)

// ReActSpec describes a reasoning-and-acting agent over an ordered tool list.
type ReActSpec struct {
	Base     `yaml:",inline"`
	Tools    []string `yaml:"tools"`
	MaxIters *int     `yaml:"max_iters,omitempty"`
}

// Kind implements ModuleSpec.
func (s *ReActSpec) Kind() Kind { return KindReAct }

// Validate implements ModuleSpec. The tool list must be present but may be
// empty; max_iters is not bounded here.
func (s *ReActSpec) Validate() error {
	if err := s.Base.validate(KindReAct); err != nil {
		return err
	}
	return validateTools(s.Name, s.Tools)
}

// Build resolves tools in order and forwards max_iters only when set.
func (s *ReActSpec) Build(sig runtime.Signature, env Env) (runtime.Module, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	tools, err := env.resolveAll(runtime.KwTools, s.Tools)
	if err != nil {
		return nil, err
	}
	kw := runtime.NewKwargs()
	kw.Set(runtime.KwTools, tools)
	if s.MaxIters != nil {
		kw.Set(runtime.KwMaxIters, *s.MaxIters)
	}
	if err := env.setCallbacks(&kw, s.Callbacks); err != nil {
		return nil, err
	}
	return construct(s.Name, KindReAct, env.Runtime.ReAct, sig, kw)
}

func validateTools(module string, tools []string) error {
	if tools == nil {
		return &SchemaError{Module: module, Field: "tools", Reason: "is required"}
	}
	for idx, ref := range tools {
		if strings.TrimSpace(ref) == "" {
			return &SchemaError{Module: module, Field: fmt.Sprintf("tools[%d]", idx), Reason: "reference is empty"}
		}
	}
	return nil
}
