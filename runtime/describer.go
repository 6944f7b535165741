package runtime

// Descriptor is the module Describer hands back: which constructor was
// called, with which signature and keywords.
type Descriptor struct {
	Constructor string
	Signature   Signature
	Kwargs      Kwargs
}

// Describer implements Constructors without building anything executable.
// It is useful for dry runs and for checking what a spec would forward.
type Describer struct{}

func (Describer) Predict(sig Signature, kw Kwargs) (Module, error) {
	return &Descriptor{Constructor: "Predict", Signature: sig, Kwargs: kw}, nil
}

func (Describer) ReAct(sig Signature, kw Kwargs) (Module, error) {
	return &Descriptor{Constructor: "ReAct", Signature: sig, Kwargs: kw}, nil
}

func (Describer) CodeAct(sig Signature, kw Kwargs) (Module, error) {
	return &Descriptor{Constructor: "CodeAct", Signature: sig, Kwargs: kw}, nil
}

func (Describer) ChainOfThought(sig Signature, kw Kwargs) (Module, error) {
	return &Descriptor{Constructor: "ChainOfThought", Signature: sig, Kwargs: kw}, nil
}
