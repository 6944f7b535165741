package spec

import "strings"

// Kind is the discriminator tag of a module spec.
type Kind string

const (
	KindPredict        Kind = "Predict"
	KindReAct          Kind = "ReAct"
	KindCodeAct        Kind = "CodeAct"
	KindChainOfThought Kind = "ChainOfThought"
)

var kinds = []Kind{KindPredict, KindReAct, KindCodeAct, KindChainOfThought}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	return append([]Kind{}, kinds...)
}

// ParseKind matches s against the supported tags. Matching is exact.
func ParseKind(s string) (Kind, bool) {
	for _, kind := range kinds {
		if string(kind) == s {
			return kind, true
		}
	}
	return "", false
}

func kindList() string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return strings.Join(names, ", ")
}
