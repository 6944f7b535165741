package runtime

// Kwargs is an insertion-ordered keyword argument set.
type Kwargs struct {
	names  []string
	values map[string]any
}

// NewKwargs returns an empty keyword set.
func NewKwargs() Kwargs {
	return Kwargs{values: map[string]any{}}
}

// Set stores value under name. Re-setting a name keeps its original position.
func (k *Kwargs) Set(name string, value any) {
	if k.values == nil {
		k.values = map[string]any{}
	}
	if _, exists := k.values[name]; !exists {
		k.names = append(k.names, name)
	}
	k.values[name] = value
}

// Get returns the value stored under name.
func (k Kwargs) Get(name string) (any, bool) {
	value, ok := k.values[name]
	return value, ok
}

// Has reports whether name was set.
func (k Kwargs) Has(name string) bool {
	_, ok := k.values[name]
	return ok
}

// Names returns the keyword names in insertion order.
func (k Kwargs) Names() []string {
	return append([]string{}, k.names...)
}

// Len returns the number of keywords.
func (k Kwargs) Len() int {
	return len(k.names)
}

// Map returns a copy of the keyword set as a plain map.
func (k Kwargs) Map() map[string]any {
	out := make(map[string]any, len(k.values))
	for name, value := range k.values {
		out[name] = value
	}
	return out
}
