package wheel

import "sync"

// Cache hands out one Renderer per size so the disc is rendered once.
type Cache struct {
	mu        sync.Mutex
	renderers map[int]*Renderer
}

// NewCache creates an empty renderer cache.
func NewCache() *Cache {
	return &Cache{renderers: make(map[int]*Renderer)}
}

// Get returns the renderer for size, creating it on first use.
// Sizes are clamped by NewGeometry before keying.
func (c *Cache) Get(size int) (*Renderer, error) {
	key := NewGeometry(size).Size

	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.renderers[key]; ok {
		return r, nil
	}
	r, err := NewRenderer(key)
	if err != nil {
		return nil, err
	}
	c.renderers[key] = r
	return r, nil
}

// Len returns the number of cached renderers.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.renderers)
}
