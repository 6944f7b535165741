package symbol

import "fmt"

// Resolver maps a reference onto a live value.
type Resolver interface {
	Resolve(ref string) (any, error)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(ref string) (any, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ref string) (any, error) {
	return f(ref)
}

// Router dispatches references to the resolver responsible for their mode.
// A nil Files resolver disables file references entirely.
type Router struct {
	Modules Resolver
	Files   Resolver
}

// NewRouter returns a Router over the given module and file resolvers.
func NewRouter(modules, files Resolver) *Router {
	return &Router{Modules: modules, Files: files}
}

// Resolve implements Resolver.
func (r *Router) Resolve(ref string) (any, error) {
	parsed, err := ParseReference(ref)
	if err != nil {
		return nil, err
	}
	var next Resolver
	switch parsed.Mode {
	case ModeFile:
		next = r.Files
	default:
		next = r.Modules
	}
	if next == nil {
		return nil, resolutionError(ref, fmt.Sprintf("%s references are disabled", parsed.Mode), nil)
	}
	return next.Resolve(parsed.Raw)
}

// Hook observes every resolution attempt.
type Hook func(ref Reference, err error)

// Observe wraps next so hook sees the outcome of each resolution.
func Observe(next Resolver, hook Hook) Resolver {
	if hook == nil {
		return next
	}
	return ResolverFunc(func(ref string) (any, error) {
		value, err := next.Resolve(ref)
		parsed, parseErr := ParseReference(ref)
		if parseErr != nil {
			parsed = Reference{Raw: ref}
		}
		hook(parsed, err)
		return value, err
	})
}
