package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"staysync/internal/domain"
)

// Bookings is the read/cancel side of the booking lifecycle. Creation happens
// in the wizard; here bookings are listed (optionally by status), fetched and
// cancelled. Cancellation is a status transition on the server, so the only
// client-side effect is evicting the buckets it staled.
type Bookings struct {
	api   domain.BookingsAPI
	store *cachestore
	log   zerolog.Logger
}

type BookingsOption func(*Bookings)

func BookingsClock(now func() time.Time) BookingsOption {
	return func(b *Bookings) { b.store.now = now }
}

func NewBookings(api domain.BookingsAPI, cache domain.Cache, ttl time.Duration, log zerolog.Logger, opts ...BookingsOption) *Bookings {
	b := &Bookings{api: api, store: newCachestore(cache, ttl, nil), log: log}
	for _, o := range opts {
		o(b)
	}
	return b
}

// List returns the user's bookings, filtered by status when non-empty.
func (b *Bookings) List(ctx context.Context, status string, force bool) ([]domain.Booking, error) {
	return fetchThrough(ctx, b.store, bookingsBucket(status), force, func(ctx context.Context) ([]domain.Booking, error) {
		return b.api.ListBookings(ctx, status)
	})
}

func (b *Bookings) Get(ctx context.Context, id string, force bool) (domain.Booking, error) {
	return fetchThrough(ctx, b.store, "booking:"+id, force, func(ctx context.Context) (domain.Booking, error) {
		return b.api.GetBooking(ctx, id)
	})
}

func (b *Bookings) Cancel(ctx context.Context, id string) error {
	if err := b.api.CancelBooking(ctx, id); err != nil {
		return err
	}
	b.invalidate(ctx, id)
	return nil
}

// invalidate evicts the detail bucket and every status variant of the list;
// the next read refetches the post-transition state.
func (b *Bookings) invalidate(ctx context.Context, id string) {
	_ = b.store.cache.Del(ctx, "booking:"+id)
	for _, st := range []string{"", string(domain.BookingPending), string(domain.BookingConfirmed),
		string(domain.BookingCancelled), string(domain.BookingCompleted)} {
		_ = b.store.cache.Del(ctx, bookingsBucket(st))
	}
}

func bookingsBucket(status string) string {
	if status == "" {
		return "bookings:all"
	}
	return "bookings:" + status
}
