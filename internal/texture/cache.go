package texture

import (
	"image"
	"sync"
)

// Resolver resolves a texture path to a decoded NRGBA image.
type Resolver interface {
	Resolve(path string) *image.NRGBA
}

// ReleaseTracker observes texture releases. The scene lifecycle releases
// every texture of the outgoing model exactly once; tests hook this to
// assert no texture leaks across model switches.
type ReleaseTracker interface {
	Released(path string)
}

// Cache is a concurrency-safe texture cache keyed by filesystem path.
// Failed loads are cached as nil so missing textures are probed once.
type Cache struct {
	mu      sync.RWMutex
	items   map[string]*cacheEntry
	tracker ReleaseTracker
}

type cacheEntry struct {
	img *image.NRGBA // nil if the load attempt failed
}

// NewCache creates an empty texture cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]*cacheEntry)}
}

// SetTracker installs a release observer. Pass nil to remove it.
func (c *Cache) SetTracker(t ReleaseTracker) {
	c.mu.Lock()
	c.tracker = t
	c.mu.Unlock()
}

// Resolve loads and caches the texture at path. Returns nil if the file
// is missing or undecodable.
func (c *Cache) Resolve(path string) *image.NRGBA {
	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, _ := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img}
	c.mu.Unlock()

	return img
}

// Release drops the cached image for path and notifies the tracker.
// An uncached path still notifies: release accounting follows the model's
// texture list, not whether a lazy load ever happened.
func (c *Cache) Release(path string) {
	c.mu.Lock()
	delete(c.items, path)
	t := c.tracker
	c.mu.Unlock()
	if t != nil {
		t.Released(path)
	}
}

// Purge drops every cached texture. Called between unrelated models to
// prevent stale reuse.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.items = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
