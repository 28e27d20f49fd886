package app

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"staysync/internal/domain"
)

var (
	// ErrSuperseded is returned when a response resolves after a newer request
	// for the same query slot was issued; its payload must not be shown.
	ErrSuperseded = errors.New("superseded by a newer query")

	// ErrThrottled is returned when a debounced operation is dropped inside
	// its quiet period and no cached fallback exists.
	ErrThrottled = errors.New("throttled: inside quiet period")

	// ErrInFlight rejects a re-entrant wizard submission while the previous
	// one for the same step is still pending.
	ErrInFlight = errors.New("operation already in flight")
)

// cachestore is the shared read-through machinery: bucket cache plus TTL
// gating plus singleflight so two screens refreshing the same bucket at once
// produce one network call.
type cachestore struct {
	cache domain.Cache
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group
}

func newCachestore(cache domain.Cache, ttl time.Duration, now func() time.Time) *cachestore {
	if now == nil {
		now = time.Now
	}
	return &cachestore{cache: cache, ttl: ttl, now: now}
}

// fetchThrough serves bucket from cache while fresh, refetches otherwise.
// force bypasses freshness (pull-to-refresh) but still rewrites the cache.
// When a refetch returns a payload structurally equal to the cached one, the
// cached value is kept and only its timestamp renewed, so observers holding
// the old slice see no spurious replacement.
func fetchThrough[T any](ctx context.Context, s *cachestore, bucket string, force bool, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if !force {
		var cached T
		if ok, at, err := s.cache.Get(ctx, bucket, &cached); err == nil && ok && domain.Fresh(at, s.ttl, s.now()) {
			return cached, nil
		}
	}
	v, err, _ := s.group.Do(bucket, func() (any, error) {
		fresh, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		var cached T
		if ok, _, gerr := s.cache.Get(ctx, bucket, &cached); gerr == nil && ok && sameJSON(cached, fresh) {
			_ = s.cache.Put(ctx, bucket, cached)
			return cached, nil
		}
		_ = s.cache.Put(ctx, bucket, fresh)
		return fresh, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// sameJSON is the structural-equality check used for re-render suppression.
// It mirrors the serialize-and-compare the screens did; cheap enough for the
// list sizes involved and indifferent to unexported state.
func sameJSON(a, b any) bool {
	ab, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ab) == string(bb)
}
