package storage

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type countEntry struct {
	n       int
	expires time.Time
}

// countCache memoizes result counts by predicate key. Concurrent misses for
// the same key share one query.
type countCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]countEntry
	group   singleflight.Group
	now     func() time.Time
}

func newCountCache(ttl time.Duration) *countCache {
	return &countCache{
		ttl:     ttl,
		entries: make(map[string]countEntry),
		now:     time.Now,
	}
}

// get returns the cached count for key or runs load. A shared load runs
// detached from the caller's cancellation, so one caller going away does not
// fail the others waiting on the same key; each caller still stops waiting
// when its own ctx is done.
func (c *countCache) get(ctx context.Context, key string, load func(context.Context) (int, error)) (int, error) {
	c.mu.Lock()
	ttl := c.ttl
	if e, ok := c.entries[key]; ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		return e.n, nil
	}
	c.mu.Unlock()

	if ttl <= 0 {
		return load(ctx)
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		n, err := load(shared)
		if err != nil {
			return 0, err
		}
		c.mu.Lock()
		if c.ttl > 0 {
			c.entries[key] = countEntry{n: n, expires: c.now().Add(c.ttl)}
		}
		c.mu.Unlock()
		return n, nil
	})

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int), nil
	}
}

func (c *countCache) setTTL(ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttl = ttl
	c.entries = make(map[string]countEntry)
}

func (c *countCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]countEntry)
}

func (c *countCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
