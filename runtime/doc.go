// Package runtime describes the contract between module specs and the host
// orchestration runtime that executes them.
//
// The runtime is an external collaborator. Specs never look inside a
// Signature or a Module; they only assemble keyword arguments and hand them to
// the matching Constructors method. Describer is a dry-run implementation used
// by the CLI and by tests.
package runtime
