// Package symbol turns string references into live values.
//
// Two reference forms are understood:
//
//	github.com/acme/tools:Search    module mode, split on the last ":"
//	~/agents/tools.go::Search       file mode, split on the first "::"
//
// Module references are answered by a Registry, a closed lookup table filled
// in by the host. File references are answered by a FileLoader, which
// evaluates the referenced Go source file with yaegi. Evaluating a file runs
// its top-level code: the FileLoader is a trust boundary, not a sandbox, and
// should be restricted to allow-listed directories.
package symbol
