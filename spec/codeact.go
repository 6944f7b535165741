package spec

import (
	"strings"

	"github.com/kingrea/metadspy/runtime"
)

// DefaultCodeActMaxIters is the iteration budget of a CodeAct module whose
// document does not set one.
const DefaultCodeActMaxIters = 5

// CodeActSpec describes a code-writing agent with tools and an optional
// interpreter backend.
type CodeActSpec struct {
	Base        `yaml:",inline"`
	Tools       []string `yaml:"tools"`
	MaxIters    int      `yaml:"max_iters"`
	Interpreter string   `yaml:"interpreter,omitempty"`
}

// NewCodeActSpec returns a CodeAct spec carrying the default iteration budget.
func NewCodeActSpec(name, use string, tools ...string) *CodeActSpec {
	return &CodeActSpec{
		Base:     Base{Name: name, Type: KindCodeAct, Use: use},
		Tools:    append([]string{}, tools...),
		MaxIters: DefaultCodeActMaxIters,
	}
}

// Kind implements ModuleSpec.
func (s *CodeActSpec) Kind() Kind { return KindCodeAct }

// Validate implements ModuleSpec.
func (s *CodeActSpec) Validate() error {
	if err := s.Base.validate(KindCodeAct); err != nil {
		return err
	}
	s.Interpreter = strings.TrimSpace(s.Interpreter)
	return validateTools(s.Name, s.Tools)
}

// Build always forwards max_iters and resolves the interpreter only when set.
func (s *CodeActSpec) Build(sig runtime.Signature, env Env) (runtime.Module, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	tools, err := env.resolveAll(runtime.KwTools, s.Tools)
	if err != nil {
		return nil, err
	}
	kw := runtime.NewKwargs()
	kw.Set(runtime.KwTools, tools)
	kw.Set(runtime.KwMaxIters, s.MaxIters)
	if s.Interpreter != "" {
		interpreter, err := env.resolve(runtime.KwInterpreter, s.Interpreter)
		if err != nil {
			return nil, err
		}
		kw.Set(runtime.KwInterpreter, interpreter)
	}
	if err := env.setCallbacks(&kw, s.Callbacks); err != nil {
		return nil, err
	}
	return construct(s.Name, KindCodeAct, env.Runtime.CodeAct, sig, kw)
}
