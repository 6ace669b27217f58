package session

import "sync"

// Cache keeps the lists fetched while building one view so sibling sections
// do not refetch them. It lives for a single request.
type Cache struct {
	mu    sync.Mutex
	lists map[string]any
}

func NewCache() *Cache {
	return &Cache{lists: map[string]any{}}
}

// Remember returns the cached list for kind, calling fetch on a miss.
// Failed fetches are not cached.
func Remember[T any](c *Cache, kind string, fetch func() ([]T, error)) ([]T, error) {
	if c == nil {
		return fetch()
	}
	c.mu.Lock()
	if v, ok := c.lists[kind].([]T); ok {
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	list, err := fetch()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.lists[kind] = list
	c.mu.Unlock()
	return list, nil
}
