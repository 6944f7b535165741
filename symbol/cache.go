package symbol

import "sync"

// Cache memoizes successful resolutions of next. Failures are never cached,
// so a reference that starts resolving later is picked up.
type Cache struct {
	next   Resolver
	mu     sync.RWMutex
	values map[string]any
}

// NewCache wraps next with a cache.
func NewCache(next Resolver) *Cache {
	return &Cache{next: next, values: map[string]any{}}
}

// Resolve implements Resolver.
func (c *Cache) Resolve(ref string) (any, error) {
	c.mu.RLock()
	value, ok := c.values[ref]
	c.mu.RUnlock()
	if ok {
		return value, nil
	}
	value, err := c.next.Resolve(ref)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	// Two callers may race on the first resolution; the first stored value wins.
	if existing, ok := c.values[ref]; ok {
		return existing, nil
	}
	c.values[ref] = value
	return value, nil
}

// Len returns the number of cached references.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.values)
}
