package memcache_test

import (
	"context"
	"testing"
	"time"

	"staysync/internal/adapters/memcache"
	"staysync/internal/domain"
)

func TestCache_PutGetDel(t *testing.T) {
	ctx := context.Background()
	c := memcache.New()

	var out []string
	ok, _, err := c.Get(ctx, "popular", &out)
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Put(ctx, "popular", []string{"a", "b"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	ok, at, err := c.Get(ctx, "popular", &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if at.IsZero() {
		t.Fatalf("expected a fetchedAt timestamp")
	}
	if len(out) != 2 || out[0] != "a" {
		t.Fatalf("unexpected payload: %v", out)
	}

	// stored value must be independent of what the caller mutates
	out[0] = "mutated"
	var again []string
	_, _, _ = c.Get(ctx, "popular", &again)
	if again[0] != "a" {
		t.Fatalf("cache payload was aliased: %v", again)
	}

	if err := c.Del(ctx, "popular"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _, _ = c.Get(ctx, "popular", &out)
	if ok {
		t.Fatalf("expected miss after del")
	}
}

func TestCache_FreshnessBoundary(t *testing.T) {
	ctx := context.Background()
	t0 := time.Unix(1_700_000_000, 0)
	now := t0
	c := memcache.New(memcache.WithClock(func() time.Time { return now }))

	if err := c.Put(ctx, "popular", []string{"x"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	var out []string
	_, at, _ := c.Get(ctx, "popular", &out)

	ttl := 300_000 * time.Millisecond
	if !domain.Fresh(at, ttl, t0) {
		t.Fatalf("bucket must be fresh immediately after put")
	}
	if !domain.Fresh(at, ttl, t0.Add(299_999*time.Millisecond)) {
		t.Fatalf("bucket must still be fresh at ttl-1ms")
	}
	if domain.Fresh(at, ttl, t0.Add(300_001*time.Millisecond)) {
		t.Fatalf("bucket must be stale past ttl")
	}
	if domain.Fresh(time.Time{}, ttl, t0) {
		t.Fatalf("zero fetchedAt is never fresh")
	}
}

func TestCache_OverwriteRefreshesTimestamp(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	c := memcache.New(memcache.WithClock(func() time.Time { return now }))

	_ = c.Put(ctx, "nearby", 1)
	now = now.Add(10 * time.Minute)
	_ = c.Put(ctx, "nearby", 2)

	var got int
	_, at, _ := c.Get(ctx, "nearby", &got)
	if got != 2 {
		t.Fatalf("expected overwrite, got %d", got)
	}
	if !at.Equal(now) {
		t.Fatalf("expected refreshed fetchedAt, got %v", at)
	}
}
