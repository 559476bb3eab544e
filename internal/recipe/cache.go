// Package recipe provides the parsed-recipe cache.
package recipe

import (
	"sync"

	"github.com/mirepoix/souschef/internal/domain"
	"github.com/mirepoix/souschef/internal/logger"
)

// Cache holds parsed recipes keyed by source URL. A re-parse replaces the
// cached recipe wholesale. Safe for concurrent access.
type Cache struct {
	mu    sync.RWMutex
	byURL map[string]*domain.Recipe
	log   *logger.Logger
}

// NewCache creates an empty recipe cache.
func NewCache(log *logger.Logger) *Cache {
	return &Cache{
		byURL: make(map[string]*domain.Recipe),
		log:   log,
	}
}

// Get returns the cached recipe for url, if any.
func (c *Cache) Get(url string) (*domain.Recipe, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.byURL[url]
	return r, ok
}

// Put stores a recipe, replacing any prior parse of the same URL.
func (c *Cache) Put(url string, r *domain.Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byURL[url] = r
	c.log.Debug("cached recipe for %s (%d ingredients, %d steps)", url, len(r.Ingredients), len(r.Steps))
}

// Drop removes a cached recipe.
func (c *Cache) Drop(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byURL, url)
}

// Len returns how many recipes are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byURL)
}
