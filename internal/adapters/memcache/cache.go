// internal/adapters/memcache/cache.go
package memcache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"staysync/internal/adapters/observability"
)

// Cache is the in-process bucket store. Payloads are kept as JSON bytes so a
// Get always hands back an independent copy; callers can mutate what they got
// without corrupting the cached value.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	payload   []byte
	fetchedAt time.Time
}

type Option func(*Cache)

// WithClock overrides the timestamp source; tests use it to cross TTL
// boundaries without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func New(opts ...Option) *Cache {
	c := &Cache{entries: map[string]entry{}, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Cache) Get(ctx context.Context, bucket string, dst any) (bool, time.Time, error) {
	c.mu.RLock()
	e, ok := c.entries[bucket]
	c.mu.RUnlock()
	if !ok {
		observability.ObserveCache("memory", "miss")
		return false, time.Time{}, nil
	}
	if err := json.Unmarshal(e.payload, dst); err != nil {
		return false, time.Time{}, err
	}
	observability.ObserveCache("memory", "hit")
	return true, e.fetchedAt, nil
}

func (c *Cache) Put(ctx context.Context, bucket string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[bucket] = entry{payload: b, fetchedAt: c.now()}
	c.mu.Unlock()
	observability.ObserveCache("memory", "set")
	return nil
}

func (c *Cache) Del(ctx context.Context, bucket string) error {
	c.mu.Lock()
	delete(c.entries, bucket)
	c.mu.Unlock()
	observability.ObserveCache("memory", "del")
	return nil
}
