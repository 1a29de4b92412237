// ABOUTME: In-memory render cache that wraps a Markdown rendering function with sha256-keyed caching.
// ABOUTME: Supports TTL-based expiry, concurrent access, and manual cache clearing.
package render

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// RenderFunc is the signature for a rendering function that the cache wraps.
type RenderFunc func(ctx context.Context, source []byte) (Document, error)

type cacheEntry struct {
	doc       Document
	createdAt time.Time
}

// RenderCache wraps a rendering function with an in-memory cache keyed by
// the sha256 of the source. Entries expire after the configured TTL.
type RenderCache struct {
	renderFn RenderFunc
	ttl      time.Duration
	now      func() time.Time
	entries  map[string]*cacheEntry
	mu       sync.RWMutex
}

// NewRenderCache creates a RenderCache wrapping renderFn. A TTL of zero or
// less disables expiry.
func NewRenderCache(renderFn RenderFunc, ttl time.Duration) *RenderCache {
	return &RenderCache{
		renderFn: renderFn,
		ttl:      ttl,
		now:      time.Now,
		entries:  make(map[string]*cacheEntry),
	}
}

// Render returns the cached Document for source when present and fresh,
// otherwise renders and stores it. Errors are never cached.
func (c *RenderCache) Render(ctx context.Context, source []byte) (Document, error) {
	key := cacheKey(source)

	c.mu.RLock()
	if entry, ok := c.entries[key]; ok && c.fresh(entry) {
		doc := entry.doc
		c.mu.RUnlock()
		return doc, nil
	}
	c.mu.RUnlock()

	doc, err := c.renderFn(ctx, source)
	if err != nil {
		return Document{}, err
	}

	c.mu.Lock()
	c.entries[key] = &cacheEntry{doc: doc, createdAt: c.now()}
	c.mu.Unlock()

	return doc, nil
}

func (c *RenderCache) fresh(e *cacheEntry) bool {
	return c.ttl <= 0 || c.now().Sub(e.createdAt) < c.ttl
}

// Len returns the number of entries currently in the cache (including expired ones).
func (c *RenderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *RenderCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func cacheKey(source []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(source))
}
