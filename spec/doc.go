// Package spec holds the declarative module specifications and the builders
// that turn them into runtime modules.
//
// A module spec is one of four variants selected by its "type" field:
//
//	name: answer
//	type: ReAct
//	use: QA
//	tools:
//	  - github.com/acme/tools:Search
//	  - ~/agents/tools.go::Calculator
//	max_iters: 8
//
// Decode validates a spec as soon as it is read. References are not resolved
// until Build is called, at which point every reference goes through the
// symbol.Resolver in Env and the assembled keywords go to the matching
// runtime.Constructors method.
package spec
