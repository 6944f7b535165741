package symbol

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is a closed lookup table of module-mode references. Hosts
// register every tool, callback and interpreter a document may name.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]map[string]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: map[string]map[string]any{}}
}

// Register installs value as modulePath:attr. Returns an error if the
// reference already exists.
func (r *Registry) Register(modulePath, attr string, value any) error {
	modulePath, attr = strings.TrimSpace(modulePath), strings.TrimSpace(attr)
	if modulePath == "" {
		return fmt.Errorf("symbol: module path is required")
	}
	if attr == "" {
		return fmt.Errorf("symbol: attribute is required for %s", modulePath)
	}
	if strings.Contains(attr, ModuleDelimiter) {
		return fmt.Errorf("symbol: attribute %q must not contain %q", attr, ModuleDelimiter)
	}
	if strings.Contains(modulePath, FileDelimiter) {
		return fmt.Errorf("symbol: module path %q must not contain %q", modulePath, FileDelimiter)
	}
	if value == nil {
		return fmt.Errorf("symbol: value is required for %s:%s", modulePath, attr)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	attrs, ok := r.modules[modulePath]
	if !ok {
		attrs = map[string]any{}
		r.modules[modulePath] = attrs
	}
	if _, exists := attrs[attr]; exists {
		return fmt.Errorf("symbol: %s:%s already registered", modulePath, attr)
	}
	attrs[attr] = value
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(modulePath, attr string, value any) {
	if err := r.Register(modulePath, attr, value); err != nil {
		panic(err)
	}
}

// Resolve implements Resolver for module references.
func (r *Registry) Resolve(ref string) (any, error) {
	parsed, err := ParseReference(ref)
	if err != nil {
		return nil, err
	}
	if parsed.Mode != ModeModule {
		return nil, resolutionError(ref, "registry only resolves module references", nil)
	}
	r.mu.RLock()
	attrs, ok := r.modules[parsed.Path]
	var value any
	var found bool
	if ok {
		value, found = attrs[parsed.Attr]
	}
	r.mu.RUnlock()
	if !ok {
		return nil, resolutionError(ref, fmt.Sprintf("unknown module %s", parsed.Path), nil)
	}
	if !found {
		return nil, resolutionError(ref, fmt.Sprintf("module %s has no attribute %s", parsed.Path, parsed.Attr), nil)
	}
	return value, nil
}

// References returns every registered reference, sorted.
func (r *Registry) References() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := make([]string, 0, len(r.modules))
	for modulePath, attrs := range r.modules {
		for attr := range attrs {
			refs = append(refs, modulePath+ModuleDelimiter+attr)
		}
	}
	sort.Strings(refs)
	return refs
}
