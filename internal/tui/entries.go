package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kingrea/metadspy/runtime"
	"github.com/kingrea/metadspy/spec"
)

// Keyword is one assembled constructor keyword, rendered for display.
type Keyword struct {
	Name  string
	Value string
}

// Entry is one module of an inspected document.
type Entry struct {
	Name     string
	Kind     spec.Kind
	Use      string
	Keywords []Keyword
	Err      error
}

// Inspect builds every module of doc and records its keywords or the error
// that stopped it. Unlike spec.Builder.BuildAll it keeps going after a
// failure. The builder should be backed by runtime.Describer.
func Inspect(doc spec.Document, builder *spec.Builder) []Entry {
	entries := make([]Entry, 0, len(doc.Modules))
	for _, mod := range doc.Modules {
		info := mod.Info()
		entry := Entry{Name: info.Name, Kind: mod.Kind(), Use: info.Use}
		built, err := builder.Build(mod, runtime.NamedSignature(info.Use))
		switch {
		case err != nil:
			entry.Err = err
		default:
			desc, ok := built.(*runtime.Descriptor)
			if !ok {
				entry.Err = fmt.Errorf("tui: module %s: runtime returned %T, not a descriptor", info.Name, built)
				break
			}
			for _, name := range desc.Kwargs.Names() {
				value, _ := desc.Kwargs.Get(name)
				entry.Keywords = append(entry.Keywords, Keyword{Name: name, Value: FormatValue(value)})
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// FormatValue renders a keyword value on one line. Resolved objects are shown
// by type.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "<nil>"
	case string:
		return fmt.Sprintf("%q", v)
	case bool, int, int64, float32, float64:
		return fmt.Sprint(v)
	case runtime.TypeToken:
		return string(v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = FormatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + FormatValue(v[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%T", v)
	}
}
