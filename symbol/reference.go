package symbol

import "strings"

const (
	// FileDelimiter separates a filesystem path from the attribute name.
	FileDelimiter = "::"
	// ModuleDelimiter separates a module path from the attribute name.
	ModuleDelimiter = ":"
)

// Mode identifies how a reference is addressed.
type Mode int

const (
	ModeModule Mode = iota
	ModeFile
)

func (m Mode) String() string {
	switch m {
	case ModeModule:
		return "module"
	case ModeFile:
		return "file"
	default:
		return "unknown"
	}
}

// Reference is a parsed symbol reference.
type Reference struct {
	Raw  string
	Mode Mode
	// Path is the dotted module path in module mode and the filesystem path
	// in file mode.
	Path string
	Attr string
}

func (r Reference) String() string {
	return r.Raw
}

// ParseReference splits ref into its path and attribute. A reference that
// contains "::" is a file reference; anything else is split on the last ":".
func ParseReference(ref string) (Reference, error) {
	raw := strings.TrimSpace(ref)
	if raw == "" {
		return Reference{}, resolutionError(ref, "reference is empty", nil)
	}
	if path, attr, ok := strings.Cut(raw, FileDelimiter); ok {
		path, attr = strings.TrimSpace(path), strings.TrimSpace(attr)
		if path == "" || attr == "" {
			return Reference{}, resolutionError(ref, "file reference must look like <path>::<attribute>", nil)
		}
		return Reference{Raw: raw, Mode: ModeFile, Path: path, Attr: attr}, nil
	}
	idx := strings.LastIndex(raw, ModuleDelimiter)
	if idx < 0 {
		return Reference{}, resolutionError(ref, "module reference must look like <module.path>:<attribute>", nil)
	}
	path, attr := strings.TrimSpace(raw[:idx]), strings.TrimSpace(raw[idx+1:])
	if path == "" || attr == "" {
		return Reference{}, resolutionError(ref, "module reference must look like <module.path>:<attribute>", nil)
	}
	return Reference{Raw: raw, Mode: ModeModule, Path: path, Attr: attr}, nil
}
