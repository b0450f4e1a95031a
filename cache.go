package pubgen

import (
	"context"
	"sync"
)

// SiteCache holds the most recent successful build for the preview server.
type SiteCache struct {
	mu    sync.RWMutex
	site  *Site
	stale bool
	err   error
	load  func(context.Context) (*Site, error)
}

// NewSiteCache creates a SiteCache that builds with load on first use and
// after every Invalidate.
func NewSiteCache(load func(context.Context) (*Site, error)) *SiteCache {
	return &SiteCache{load: load}
}

// NewGeneratorCache creates a SiteCache that rebuilds the generator's content
// directory.
func NewGeneratorCache(g *Generator) *SiteCache {
	return NewSiteCache(func(ctx context.Context) (*Site, error) {
		site, _, err := g.BuildDir(ctx)
		return site, err
	})
}

func (c *SiteCache) valid() bool {
	return c.site != nil && !c.stale
}

// Invalidate marks the cache stale so the next read triggers a rebuild.
func (c *SiteCache) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// Site returns the cached site, rebuilding it if needed. It tries a read lock
// first and only takes the write lock for a rebuild. A failed rebuild keeps
// serving the previous site; the error is returned only when there is none.
func (c *SiteCache) Site(ctx context.Context) (*Site, error) {
	c.mu.RLock()
	if c.valid() {
		site := c.site
		c.mu.RUnlock()
		return site, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.site, nil
	}
	site, err := c.load(ctx)
	c.err = err
	if err != nil {
		if c.site != nil {
			c.stale = false
			return c.site, nil
		}
		return nil, err
	}
	c.site = site
	c.stale = false
	return site, nil
}

// Err returns the error of the last rebuild, if it failed.
func (c *SiteCache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}
