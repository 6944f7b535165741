package runtime

// Signature is an externally defined contract describing a module's input and
// output fields. It is passed through untouched.
type Signature = any

// Module is whatever a runtime constructor returns.
type Module = any

// NamedSignature is the simplest Signature: the name a document's "use" field
// refers to. Hosts without a richer signature model pass it straight through.
type NamedSignature string

// Keyword names recognised by the runtime constructors.
const (
	KwCallbacks          = "callbacks"
	KwTools              = "tools"
	KwMaxIters           = "max_iters"
	KwInterpreter        = "interpreter"
	KwTemperature        = "temperature"
	KwMaxTokens          = "max_tokens"
	KwStop               = "stop"
	KwRationaleField     = "rationale_field"
	KwRationaleFieldType = "rationale_field_type"
)

// Constructors builds runtime modules for each supported module kind. Every
// method receives only the keywords a spec decided to forward; absent keywords
// mean "use your own default".
type Constructors interface {
	Predict(sig Signature, kw Kwargs) (Module, error)
	ReAct(sig Signature, kw Kwargs) (Module, error)
	CodeAct(sig Signature, kw Kwargs) (Module, error)
	ChainOfThought(sig Signature, kw Kwargs) (Module, error)
}
