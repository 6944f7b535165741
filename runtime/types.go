package runtime

import (
	"sort"
	"strings"
)

// TypeToken names a concrete field type understood by the runtime, e.g. the
// type of a chain-of-thought rationale field.
type TypeToken string

const (
	TypeStr   TypeToken = "str"
	TypeInt   TypeToken = "int"
	TypeFloat TypeToken = "float"
	TypeBool  TypeToken = "bool"
	TypeList  TypeToken = "list"
	TypeDict  TypeToken = "dict"
)

var knownTypes = map[string]TypeToken{
	"str":   TypeStr,
	"int":   TypeInt,
	"float": TypeFloat,
	"bool":  TypeBool,
	"list":  TypeList,
	"dict":  TypeDict,
}

// LookupType maps a type name onto its token. Only the fixed set of names
// above is recognised; nothing is ever evaluated.
func LookupType(name string) (TypeToken, bool) {
	token, ok := knownTypes[strings.TrimSpace(name)]
	return token, ok
}

// TypeNames returns the recognised type names, sorted.
func TypeNames() []string {
	names := make([]string, 0, len(knownTypes))
	for name := range knownTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
