package domain

import (
	"context"
	"io"
	"time"
)

// TokenStore persists the bearer token. Persistence failures are swallowed and
// treated as "no token", so a broken store always fails closed to logged-out.
type TokenStore interface {
	Set(token string)
	Get() string
	Clear()
	IsAuthenticated() bool
}

// Cache is a bucket-keyed store for read-mostly collections. Freshness is the
// caller's call: Get reports when the bucket was written and the caller decides
// whether that is recent enough.
type Cache interface {
	Get(ctx context.Context, bucket string, dst any) (ok bool, fetchedAt time.Time, err error)
	Put(ctx context.Context, bucket string, v any) error
	Del(ctx context.Context, bucket string) error
}

// Fresh reports whether a bucket written at fetchedAt is still usable under ttl.
func Fresh(fetchedAt time.Time, ttl time.Duration, now time.Time) bool {
	return !fetchedAt.IsZero() && now.Sub(fetchedAt) < ttl
}

// The API surface is split the way the backend groups it: auth, profile,
// catalog, favorites, bookings. The HTTP client implements all five; each
// controller depends only on the slice it drives.

type AuthAPI interface {
	Register(ctx context.Context, reg Registration) (UserProfile, error)
	Login(ctx context.Context, email, password string) (AuthToken, error)
	CurrentUser(ctx context.Context) (UserProfile, error)
	RequestPasswordReset(ctx context.Context, email string) error
	Logout(ctx context.Context) error
}

type ProfileAPI interface {
	UpdateProfile(ctx context.Context, upd ProfileUpdate) (UserProfile, error)
	UploadProfileImage(ctx context.Context, filename string, r io.Reader) (UserProfile, error)
	UpdateLocation(ctx context.Context, loc LocationUpdate) (UserProfile, error)
}

type CatalogAPI interface {
	ListAccommodations(ctx context.Context, q ListQuery) (AccommodationsPage, error)
	ListByType(ctx context.Context, accType string, q ListQuery) (AccommodationsPage, error)
	ListNearby(ctx context.Context, q NearbyQuery) (AccommodationsPage, error)
	Search(ctx context.Context, query string, q ListQuery) (AccommodationsPage, error)
	Popular(ctx context.Context, limit int) ([]Accommodation, error)
	Trending(ctx context.Context, days, limit int) ([]Accommodation, error)
	Recommended(ctx context.Context, limit int) ([]Accommodation, error)
	GetAccommodation(ctx context.Context, id string) (Accommodation, error)
	ListReviews(ctx context.Context, accommodationID string, q ListQuery) (ReviewsPage, error)
	CreateReview(ctx context.Context, accommodationID string, rating float64, comment string) (Review, error)
	Cities(ctx context.Context) ([]string, error)
	Countries(ctx context.Context) ([]string, error)
}

type FavoritesAPI interface {
	ListFavorites(ctx context.Context) ([]Accommodation, error)
	AddFavorite(ctx context.Context, accommodationID string) error
	RemoveFavorite(ctx context.Context, accommodationID string) error
}

type BookingsAPI interface {
	CreateBooking(ctx context.Context, req BookingRequest) (Booking, error)
	ListBookings(ctx context.Context, status string) ([]Booking, error)
	GetBooking(ctx context.Context, id string) (Booking, error)
	CancelBooking(ctx context.Context, id string) error
	InitiatePayment(ctx context.Context, req PaymentRequest) (PaymentResult, error)
}
