package spec

import "github.com/kingrea/metadspy/runtime"

// PredictSpec describes a basic single-step prediction module.
type PredictSpec struct {
	Base   `yaml:",inline"`
	Config PredictConfig `yaml:"config,omitempty"`
}

// Kind implements ModuleSpec.
func (s *PredictSpec) Kind() Kind { return KindPredict }

// Validate implements ModuleSpec.
func (s *PredictSpec) Validate() error {
	if err := s.Base.validate(KindPredict); err != nil {
		return err
	}
	if err := s.Config.Validate(); err != nil {
		return scoped(err, s.Name, "config")
	}
	return nil
}

// Build forwards resolved callbacks and every present config field.
func (s *PredictSpec) Build(sig runtime.Signature, env Env) (runtime.Module, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}
	kw := runtime.NewKwargs()
	if err := env.setCallbacks(&kw, s.Callbacks); err != nil {
		return nil, err
	}
	s.Config.apply(&kw)
	return construct(s.Name, KindPredict, env.Runtime.Predict, sig, kw)
}
