package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"staysync/internal/adapters/observability"
)

// Cache is the shared-process variant of the bucket cache: several app
// instances pointed at the same Redis see the same buckets. Entries carry
// their own fetched-at stamp because freshness is decided by the caller, not
// by Redis expiry; the retain duration only bounds how long dead buckets
// linger server-side.
type Cache struct {
	c      *redis.Client
	retain time.Duration
	now    func() time.Time
}

type envelope struct {
	FetchedAtMS int64           `json:"fetched_at_ms"`
	Payload     json.RawMessage `json:"payload"`
}

func New(addr, pass string, db int, retain time.Duration) *Cache {
	return &Cache{
		c:      redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		retain: retain,
		now:    time.Now,
	}
}

func (r *Cache) Get(ctx context.Context, bucket string, dst any) (bool, time.Time, error) {
	v, err := r.c.Get(ctx, bucket).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return false, time.Time{}, nil
	}
	if err != nil {
		return false, time.Time{}, err
	}
	var env envelope
	if err := json.Unmarshal(v, &env); err != nil {
		return false, time.Time{}, err
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		return false, time.Time{}, err
	}
	observability.ObserveCache("redis", "hit")
	return true, time.UnixMilli(env.FetchedAtMS), nil
}

func (r *Cache) Put(ctx context.Context, bucket string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b, _ := json.Marshal(envelope{FetchedAtMS: r.now().UnixMilli(), Payload: payload})
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, bucket, b, r.retain).Err()
}

func (r *Cache) Del(ctx context.Context, bucket string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, bucket).Err()
}
