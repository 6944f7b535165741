package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is an ordered collection of module specs, written either as a
// top-level sequence or under a "modules" key.
type Document struct {
	Modules []ModuleSpec
}

// DocumentFile pairs a parsed document with its on-disk source.
type DocumentFile struct {
	Document Document
	Path     string
}

// Lookup returns the module named name.
func (d Document) Lookup(name string) (ModuleSpec, bool) {
	for _, mod := range d.Modules {
		if mod.Info().Name == name {
			return mod, true
		}
	}
	return nil, false
}

// Names returns module names in document order.
func (d Document) Names() []string {
	names := make([]string, len(d.Modules))
	for i, mod := range d.Modules {
		names[i] = mod.Info().Name
	}
	return names
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Document) UnmarshalYAML(node *yaml.Node) error {
	doc, err := decodeDocumentNode(node)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Document) MarshalYAML() (any, error) {
	return struct {
		Modules []ModuleSpec `yaml:"modules"`
	}{Modules: d.Modules}, nil
}

// ParseDocument decodes and validates every module spec in data.
func ParseDocument(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, &SchemaError{Reason: "document is empty"}
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Document{}, &SchemaError{Reason: "decode document", Err: err}
	}
	return decodeDocumentNode(&node)
}

func decodeDocumentNode(node *yaml.Node) (Document, error) {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return Document{}, &SchemaError{Reason: "document is empty"}
		}
		node = node.Content[0]
	}
	items := node
	if node.Kind == yaml.MappingNode {
		fields := mappingFields(node)
		modules, ok := fields["modules"]
		if !ok || len(fields) != 1 {
			return Document{}, &SchemaError{Reason: fmt.Sprintf("line %d: document must contain only a modules list", node.Line)}
		}
		items = modules
	}
	if items.Kind != yaml.SequenceNode {
		return Document{}, &SchemaError{Reason: fmt.Sprintf("line %d: modules must be a list", items.Line)}
	}
	doc := Document{Modules: make([]ModuleSpec, 0, len(items.Content))}
	seen := make(map[string]int, len(items.Content))
	for idx, item := range items.Content {
		mod, err := DecodeNode(item)
		if err != nil {
			return Document{}, fmt.Errorf("spec: modules[%d]: %w", idx, err)
		}
		name := mod.Info().Name
		if prev, exists := seen[name]; exists {
			return Document{}, &SchemaError{Module: name, Field: fmt.Sprintf("modules[%d].name", idx), Reason: fmt.Sprintf("duplicates modules[%d]", prev)}
		}
		seen[name] = idx
		doc.Modules = append(doc.Modules, mod)
	}
	return doc, nil
}

// LoadFile reads a YAML or JSON document from disk.
func LoadFile(path string) (DocumentFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return DocumentFile{}, fmt.Errorf("spec: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return DocumentFile{}, fmt.Errorf("spec: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DocumentFile{}, fmt.Errorf("spec: read %s: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return DocumentFile{}, fmt.Errorf("spec: %s: %w", path, err)
	}
	return DocumentFile{Document: doc, Path: filepath.Clean(path)}, nil
}

// LoadDir parses every *.yaml, *.yml and *.json file in dir. Missing
// directories yield no documents.
func LoadDir(dir string) ([]DocumentFile, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("spec: read %s: %w", trimmed, err)
	}
	var files []DocumentFile
	for _, entry := range entries {
		if entry.IsDir() || !isDocumentFile(entry.Name()) {
			continue
		}
		file, err := LoadFile(filepath.Join(trimmed, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	if len(files) == 0 {
		return nil, nil
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func isDocumentFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") || strings.HasSuffix(lower, ".json")
}
