package spec

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

var requiredKeys = map[Kind][]string{
	KindPredict:        {"name", "use"},
	KindReAct:          {"name", "use", "tools"},
	KindCodeAct:        {"name", "use", "tools"},
	KindChainOfThought: {"name", "use"},
}

var (
	stringFields     = []string{"name", "use", "interpreter", "rationale_field", "rationale_field_type"}
	stringListFields = []string{"callbacks", "tools"}
)

// integerFields lists the integer-typed keys of each kind as paths from the
// module mapping.
var integerFields = map[Kind][][]string{
	KindPredict: {{"config", "max_tokens"}},
	KindReAct:   {{"max_iters"}},
	KindCodeAct: {{"max_iters"}},
}

// New returns an empty spec of the given kind with its defaults applied.
func New(kind Kind) (ModuleSpec, error) {
	switch kind {
	case KindPredict:
		return &PredictSpec{Base: Base{Type: kind}}, nil
	case KindReAct:
		return &ReActSpec{Base: Base{Type: kind}}, nil
	case KindCodeAct:
		return &CodeActSpec{Base: Base{Type: kind}, MaxIters: DefaultCodeActMaxIters}, nil
	case KindChainOfThought:
		return &ChainOfThoughtSpec{Base: Base{Type: kind}, RationaleFieldType: DefaultRationaleFieldType}, nil
	default:
		return nil, &SchemaError{Field: "type", Reason: fmt.Sprintf("unknown module type %q (want one of %s)", kind, kindList())}
	}
}

// Decode parses a single module spec from YAML or JSON and validates it.
func Decode(data []byte) (ModuleSpec, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &SchemaError{Reason: "payload is empty"}
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &SchemaError{Reason: "decode", Err: err}
	}
	return DecodeNode(&node)
}

// DecodeNode selects the variant named by the node's "type" key, decodes the
// node strictly into it and validates the result. Keys that do not belong to
// the selected variant are rejected.
func DecodeNode(node *yaml.Node) (ModuleSpec, error) {
	if node == nil {
		return nil, &SchemaError{Reason: "payload is empty"}
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, &SchemaError{Reason: "payload is empty"}
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, &SchemaError{Reason: fmt.Sprintf("line %d: module spec must be a mapping", node.Line)}
	}
	fields := mappingFields(node)
	name := ""
	if n, ok := fields["name"]; ok && n.Kind == yaml.ScalarNode {
		name = n.Value
	}
	typeNode, ok := fields["type"]
	if !ok {
		return nil, &SchemaError{Module: name, Field: "type", Reason: "is required"}
	}
	if typeNode.Kind != yaml.ScalarNode {
		return nil, &SchemaError{Module: name, Field: "type", Reason: "must be a string"}
	}
	kind, ok := ParseKind(typeNode.Value)
	if !ok {
		return nil, &SchemaError{Module: name, Field: "type", Reason: fmt.Sprintf("unknown module type %q (want one of %s)", typeNode.Value, kindList())}
	}
	for _, key := range requiredKeys[kind] {
		value, ok := fields[key]
		if !ok {
			return nil, &SchemaError{Module: name, Field: key, Reason: "is required"}
		}
		if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null" {
			return nil, &SchemaError{Module: name, Field: key, Reason: "must not be null"}
		}
	}
	if err := checkStrings(fields); err != nil {
		err.Module = name
		return nil, err
	}
	for _, path := range integerFields[kind] {
		if err := checkInteger(node, path); err != nil {
			return nil, &SchemaError{Module: name, Field: strings.Join(path, "."), Reason: err.Error()}
		}
	}
	spec, err := New(kind)
	if err != nil {
		return nil, err
	}
	if err := decodeStrict(node, spec); err != nil {
		return nil, &SchemaError{Module: name, Reason: fmt.Sprintf("decode %s", kind), Err: err}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Encode validates spec and renders it as YAML. Decoding the output yields an
// equal spec.
func Encode(spec ModuleSpec) ([]byte, error) {
	if spec == nil {
		return nil, errors.New("spec: encode: spec is nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("spec: encode %s: %w", spec.Info().Name, err)
	}
	return out, nil
}

func decodeStrict(node *yaml.Node, out any) error {
	payload, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(payload))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// checkStrings rejects scalars that yaml.v3 would otherwise stringify, such
// as "name: 123".
func checkStrings(fields map[string]*yaml.Node) *SchemaError {
	for _, key := range stringFields {
		value, ok := fields[key]
		if !ok || value.Kind != yaml.ScalarNode {
			continue
		}
		if tag := value.ShortTag(); tag != "!!str" && tag != "!!null" {
			return &SchemaError{Field: key, Reason: fmt.Sprintf("must be a string, got %q", value.Value)}
		}
	}
	for _, key := range stringListFields {
		value, ok := fields[key]
		if !ok || value.Kind != yaml.SequenceNode {
			continue
		}
		for idx, item := range value.Content {
			if item.Kind == yaml.ScalarNode && item.ShortTag() != "!!str" {
				return &SchemaError{Field: fmt.Sprintf("%s[%d]", key, idx), Reason: fmt.Sprintf("must be a string, got %q", item.Value)}
			}
		}
	}
	return nil
}

// checkInteger rejects a scalar at path that is not a whole number. yaml.v3
// would otherwise truncate 1.9 to 1 when decoding into an int.
func checkInteger(node *yaml.Node, path []string) error {
	for _, key := range path {
		if node.Kind != yaml.MappingNode {
			return nil
		}
		next, ok := mappingFields(node)[key]
		if !ok {
			return nil
		}
		node = next
	}
	if node.Kind != yaml.ScalarNode {
		return nil
	}
	switch node.ShortTag() {
	case "!!int", "!!null":
		return nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err == nil && !math.IsInf(f, 0) && f == math.Trunc(f) {
			return nil
		}
	}
	return fmt.Errorf("must be an integer, got %q", node.Value)
}

func mappingFields(node *yaml.Node) map[string]*yaml.Node {
	fields := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		fields[node.Content[i].Value] = node.Content[i+1]
	}
	return fields
}
