package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"staysync/internal/domain"
)

// Catalog is the read side for accommodation browsing: bucket-cached listing
// feeds, detail and review lookups, and search with stale-response discard.
type Catalog struct {
	api   domain.CatalogAPI
	store *cachestore
	log   zerolog.Logger

	// nearby lookups follow the device location; a burst of fixes dispatches
	// at most one request per quiet period.
	nearbyGate *rate.Limiter

	mu  sync.Mutex
	seq map[string]uint64

	// review buckets are keyed by page limit, so eviction after a posted
	// review must cover every limit actually fetched, not a guessed set.
	reviewPages map[string]map[string]struct{}
}

type CatalogOption func(*Catalog)

func CatalogClock(now func() time.Time) CatalogOption {
	return func(c *Catalog) { c.store.now = now }
}

func NewCatalog(api domain.CatalogAPI, cache domain.Cache, ttl, nearbyQuiet time.Duration, log zerolog.Logger, opts ...CatalogOption) *Catalog {
	if nearbyQuiet <= 0 {
		nearbyQuiet = 800 * time.Millisecond
	}
	c := &Catalog{
		api:         api,
		store:       newCachestore(cache, ttl, nil),
		log:         log,
		nearbyGate:  rate.NewLimiter(rate.Every(nearbyQuiet), 1),
		seq:         map[string]uint64{},
		reviewPages: map[string]map[string]struct{}{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ---- bucket-cached feeds ----

func (c *Catalog) Popular(ctx context.Context, limit int, force bool) ([]domain.Accommodation, error) {
	return fetchThrough(ctx, c.store, "popular", force, func(ctx context.Context) ([]domain.Accommodation, error) {
		return c.api.Popular(ctx, limit)
	})
}

func (c *Catalog) Trending(ctx context.Context, days, limit int, force bool) ([]domain.Accommodation, error) {
	return fetchThrough(ctx, c.store, "trending", force, func(ctx context.Context) ([]domain.Accommodation, error) {
		return c.api.Trending(ctx, days, limit)
	})
}

func (c *Catalog) Recommended(ctx context.Context, limit int, force bool) ([]domain.Accommodation, error) {
	return fetchThrough(ctx, c.store, "recommended", force, func(ctx context.Context) ([]domain.Accommodation, error) {
		return c.api.Recommended(ctx, limit)
	})
}

func (c *Catalog) ByType(ctx context.Context, accType string, q domain.ListQuery, force bool) (domain.AccommodationsPage, error) {
	bucket := "type:" + accType
	return fetchThrough(ctx, c.store, bucket, force, func(ctx context.Context) (domain.AccommodationsPage, error) {
		return c.api.ListByType(ctx, accType, q)
	})
}

// Nearby is debounced: inside the quiet period a cached bucket is served even
// if stale; with nothing cached the call reports ErrThrottled. force skips
// the gate the way an explicit pull-to-refresh should.
func (c *Catalog) Nearby(ctx context.Context, q domain.NearbyQuery, force bool) (domain.AccommodationsPage, error) {
	if !force && !c.nearbyGate.Allow() {
		var cached domain.AccommodationsPage
		if ok, _, err := c.store.cache.Get(ctx, "nearby", &cached); err == nil && ok {
			return cached, nil
		}
		return domain.AccommodationsPage{}, ErrThrottled
	}
	return fetchThrough(ctx, c.store, "nearby", force, func(ctx context.Context) (domain.AccommodationsPage, error) {
		return c.api.ListNearby(ctx, q)
	})
}

func (c *Catalog) Cities(ctx context.Context, force bool) ([]string, error) {
	return fetchThrough(ctx, c.store, "cities", force, c.api.Cities)
}

func (c *Catalog) Countries(ctx context.Context, force bool) ([]string, error) {
	return fetchThrough(ctx, c.store, "countries", force, c.api.Countries)
}

// ---- search (latest-wins) ----

// Search is not cached; what matters is that a slow response for an older
// query never overwrites the result of a newer one. Each dispatch takes a
// sequence number for the slot and a response landing after a newer dispatch
// is discarded with ErrSuperseded.
func (c *Catalog) Search(ctx context.Context, query string, q domain.ListQuery) (domain.AccommodationsPage, error) {
	my := c.nextSeq("search")
	page, err := c.api.Search(ctx, query, q)
	if !c.isLatest("search", my) {
		return domain.AccommodationsPage{}, ErrSuperseded
	}
	if err != nil {
		return domain.AccommodationsPage{}, err
	}
	return page, nil
}

// ---- detail & reviews ----

func (c *Catalog) Accommodation(ctx context.Context, id string, force bool) (domain.Accommodation, error) {
	bucket := "accommodation:" + id
	return fetchThrough(ctx, c.store, bucket, force, func(ctx context.Context) (domain.Accommodation, error) {
		return c.api.GetAccommodation(ctx, id)
	})
}

func (c *Catalog) Reviews(ctx context.Context, accommodationID string, q domain.ListQuery, force bool) (domain.ReviewsPage, error) {
	bucket := reviewsBucket(accommodationID, q.Limit)
	c.rememberReviewBucket(accommodationID, bucket)
	return fetchThrough(ctx, c.store, bucket, force, func(ctx context.Context) (domain.ReviewsPage, error) {
		return c.api.ListReviews(ctx, accommodationID, q)
	})
}

// CreateReview posts the review and evicts the buckets it staled: the
// accommodation detail (aggregate rating) and every review page fetched for
// that accommodation so far.
func (c *Catalog) CreateReview(ctx context.Context, accommodationID string, rating float64, comment string) (domain.Review, error) {
	rev, err := c.api.CreateReview(ctx, accommodationID, rating, comment)
	if err != nil {
		return domain.Review{}, err
	}
	_ = c.store.cache.Del(ctx, "accommodation:"+accommodationID)
	for _, b := range c.reviewBucketsFor(accommodationID) {
		_ = c.store.cache.Del(ctx, b)
	}
	return rev, nil
}

func reviewsBucket(id string, limit int) string {
	return fmt.Sprintf("reviews:%s:%d", id, limit)
}

func (c *Catalog) rememberReviewBucket(id, bucket string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.reviewPages[id]
	if !ok {
		set = map[string]struct{}{}
		c.reviewPages[id] = set
	}
	set[bucket] = struct{}{}
}

func (c *Catalog) reviewBucketsFor(id string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.reviewPages[id]))
	for b := range c.reviewPages[id] {
		out = append(out, b)
	}
	return out
}

func (c *Catalog) nextSeq(slot string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq[slot]++
	return c.seq[slot]
}

func (c *Catalog) isLatest(slot string, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq[slot] == seq
}
