package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"staysync/internal/domain"
)

const favoritesBucket = "favorites"

// Favorites owns the set of favorited accommodation ids. Mutations are
// optimistic: the local set flips before the network call and rolls back if
// the call fails. Mutations for the same id are serialized on a per-id lock
// so a rapid double toggle waits instead of racing the rollback.
type Favorites struct {
	api   domain.FavoritesAPI
	cache domain.Cache
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger

	mu    sync.Mutex
	ids   map[string]struct{}
	locks map[string]*sync.Mutex
}

type FavoritesOption func(*Favorites)

func FavoritesClock(now func() time.Time) FavoritesOption {
	return func(f *Favorites) { f.now = now }
}

func NewFavorites(api domain.FavoritesAPI, cache domain.Cache, ttl time.Duration, log zerolog.Logger, opts ...FavoritesOption) *Favorites {
	f := &Favorites{
		api:   api,
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
		log:   log,
		ids:   map[string]struct{}{},
		locks: map[string]*sync.Mutex{},
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *Favorites) IsFavorited(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[id]
	return ok
}

// IDs returns the current favorite set, sorted for stable output.
func (f *Favorites) IDs() []string {
	f.mu.Lock()
	out := make([]string, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	f.mu.Unlock()
	sort.Strings(out)
	return out
}

// Fetch loads the favorite set, serving the cache bucket while fresh.
// force bypasses freshness (pull-to-refresh) and always hits the API.
func (f *Favorites) Fetch(ctx context.Context, force bool) error {
	if !force {
		var cached []string
		if ok, at, err := f.cache.Get(ctx, favoritesBucket, &cached); err == nil && ok && domain.Fresh(at, f.ttl, f.now()) {
			f.replace(cached)
			return nil
		}
	}
	list, err := f.api.ListFavorites(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	f.replace(ids)
	return f.cache.Put(ctx, favoritesBucket, ids)
}

// Add favorites id optimistically; rolls the set and cache bucket back when
// the API rejects it.
func (f *Favorites) Add(ctx context.Context, id string) error {
	l := f.lockFor(id)
	l.Lock()
	defer l.Unlock()

	if f.IsFavorited(id) {
		return nil
	}
	f.setMember(ctx, id, true)
	if err := f.api.AddFavorite(ctx, id); err != nil {
		f.log.Warn().Err(err).Str("id", id).Msg("add favorite failed, rolling back")
		f.setMember(ctx, id, false)
		return err
	}
	return nil
}

func (f *Favorites) Remove(ctx context.Context, id string) error {
	l := f.lockFor(id)
	l.Lock()
	defer l.Unlock()

	if !f.IsFavorited(id) {
		return nil
	}
	f.setMember(ctx, id, false)
	if err := f.api.RemoveFavorite(ctx, id); err != nil {
		f.log.Warn().Err(err).Str("id", id).Msg("remove favorite failed, rolling back")
		f.setMember(ctx, id, true)
		return err
	}
	return nil
}

// Reset drops all local favorite state; wired to the session's SignedOut event.
func (f *Favorites) Reset(ctx context.Context) {
	f.mu.Lock()
	f.ids = map[string]struct{}{}
	f.mu.Unlock()
	if err := f.cache.Del(ctx, favoritesBucket); err != nil {
		f.log.Warn().Err(err).Msg("favorites bucket eviction failed")
	}
}

func (f *Favorites) replace(ids []string) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	f.mu.Lock()
	f.ids = set
	f.mu.Unlock()
}

// setMember flips membership and mirrors the whole set into the cache bucket,
// keeping the rendered state and the bucket in lockstep.
func (f *Favorites) setMember(ctx context.Context, id string, member bool) {
	f.mu.Lock()
	if member {
		f.ids[id] = struct{}{}
	} else {
		delete(f.ids, id)
	}
	f.mu.Unlock()
	if err := f.cache.Put(ctx, favoritesBucket, f.IDs()); err != nil {
		f.log.Warn().Err(err).Msg("favorites bucket write failed")
	}
}

func (f *Favorites) lockFor(id string) *sync.Mutex {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.locks[id]
	if !ok {
		l = &sync.Mutex{}
		f.locks[id] = l
	}
	return l
}
