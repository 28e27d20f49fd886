package app_test

import (
	"context"
	"io"

	"staysync/internal/domain"
)

// ---- fakes (func-field style: tests override only what they drive) ----

type memTokens struct{ tok string }

func (m *memTokens) Set(t string)          { m.tok = t }
func (m *memTokens) Get() string           { return m.tok }
func (m *memTokens) Clear()                { m.tok = "" }
func (m *memTokens) IsAuthenticated() bool { return m.tok != "" }

type fakeAuthAPI struct {
	registerFn func(ctx context.Context, reg domain.Registration) (domain.UserProfile, error)
	loginFn    func(ctx context.Context, email, password string) (domain.AuthToken, error)
	currentFn  func(ctx context.Context) (domain.UserProfile, error)
	logoutFn   func(ctx context.Context) error
}

func (f *fakeAuthAPI) Register(ctx context.Context, reg domain.Registration) (domain.UserProfile, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, reg)
	}
	return domain.UserProfile{}, nil
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (domain.AuthToken, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, email, password)
	}
	return domain.AuthToken{}, nil
}

func (f *fakeAuthAPI) CurrentUser(ctx context.Context) (domain.UserProfile, error) {
	if f.currentFn != nil {
		return f.currentFn(ctx)
	}
	return domain.UserProfile{}, nil
}

func (f *fakeAuthAPI) RequestPasswordReset(ctx context.Context, email string) error { return nil }

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	if f.logoutFn != nil {
		return f.logoutFn(ctx)
	}
	return nil
}

type fakeProfileAPI struct {
	updateFn   func(ctx context.Context, upd domain.ProfileUpdate) (domain.UserProfile, error)
	uploadFn   func(ctx context.Context, filename string, r io.Reader) (domain.UserProfile, error)
	locationFn func(ctx context.Context, loc domain.LocationUpdate) (domain.UserProfile, error)
}

func (f *fakeProfileAPI) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (domain.UserProfile, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, upd)
	}
	return domain.UserProfile{}, nil
}

func (f *fakeProfileAPI) UploadProfileImage(ctx context.Context, filename string, r io.Reader) (domain.UserProfile, error) {
	if f.uploadFn != nil {
		return f.uploadFn(ctx, filename, r)
	}
	return domain.UserProfile{}, nil
}

func (f *fakeProfileAPI) UpdateLocation(ctx context.Context, loc domain.LocationUpdate) (domain.UserProfile, error) {
	if f.locationFn != nil {
		return f.locationFn(ctx, loc)
	}
	return domain.UserProfile{}, nil
}

type fakeFavoritesAPI struct {
	listFn   func(ctx context.Context) ([]domain.Accommodation, error)
	addFn    func(ctx context.Context, id string) error
	removeFn func(ctx context.Context, id string) error
}

func (f *fakeFavoritesAPI) ListFavorites(ctx context.Context) ([]domain.Accommodation, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeFavoritesAPI) AddFavorite(ctx context.Context, id string) error {
	if f.addFn != nil {
		return f.addFn(ctx, id)
	}
	return nil
}

func (f *fakeFavoritesAPI) RemoveFavorite(ctx context.Context, id string) error {
	if f.removeFn != nil {
		return f.removeFn(ctx, id)
	}
	return nil
}

type fakeCatalogAPI struct {
	popularFn      func(ctx context.Context, limit int) ([]domain.Accommodation, error)
	searchFn       func(ctx context.Context, query string, q domain.ListQuery) (domain.AccommodationsPage, error)
	nearbyFn       func(ctx context.Context, q domain.NearbyQuery) (domain.AccommodationsPage, error)
	detailFn       func(ctx context.Context, id string) (domain.Accommodation, error)
	reviewsFn      func(ctx context.Context, accommodationID string, q domain.ListQuery) (domain.ReviewsPage, error)
	createReviewFn func(ctx context.Context, accommodationID string, rating float64, comment string) (domain.Review, error)
}

func (f *fakeCatalogAPI) ListAccommodations(ctx context.Context, q domain.ListQuery) (domain.AccommodationsPage, error) {
	return domain.AccommodationsPage{}, nil
}

func (f *fakeCatalogAPI) ListByType(ctx context.Context, accType string, q domain.ListQuery) (domain.AccommodationsPage, error) {
	return domain.AccommodationsPage{}, nil
}

func (f *fakeCatalogAPI) ListNearby(ctx context.Context, q domain.NearbyQuery) (domain.AccommodationsPage, error) {
	if f.nearbyFn != nil {
		return f.nearbyFn(ctx, q)
	}
	return domain.AccommodationsPage{}, nil
}

func (f *fakeCatalogAPI) Search(ctx context.Context, query string, q domain.ListQuery) (domain.AccommodationsPage, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, query, q)
	}
	return domain.AccommodationsPage{}, nil
}

func (f *fakeCatalogAPI) Popular(ctx context.Context, limit int) ([]domain.Accommodation, error) {
	if f.popularFn != nil {
		return f.popularFn(ctx, limit)
	}
	return nil, nil
}

func (f *fakeCatalogAPI) Trending(ctx context.Context, days, limit int) ([]domain.Accommodation, error) {
	return nil, nil
}

func (f *fakeCatalogAPI) Recommended(ctx context.Context, limit int) ([]domain.Accommodation, error) {
	return nil, nil
}

func (f *fakeCatalogAPI) GetAccommodation(ctx context.Context, id string) (domain.Accommodation, error) {
	if f.detailFn != nil {
		return f.detailFn(ctx, id)
	}
	return domain.Accommodation{}, nil
}

func (f *fakeCatalogAPI) ListReviews(ctx context.Context, accommodationID string, q domain.ListQuery) (domain.ReviewsPage, error) {
	if f.reviewsFn != nil {
		return f.reviewsFn(ctx, accommodationID, q)
	}
	return domain.ReviewsPage{}, nil
}

func (f *fakeCatalogAPI) CreateReview(ctx context.Context, accommodationID string, rating float64, comment string) (domain.Review, error) {
	if f.createReviewFn != nil {
		return f.createReviewFn(ctx, accommodationID, rating, comment)
	}
	return domain.Review{}, nil
}

func (f *fakeCatalogAPI) Cities(ctx context.Context) ([]string, error)    { return nil, nil }
func (f *fakeCatalogAPI) Countries(ctx context.Context) ([]string, error) { return nil, nil }

type fakeBookingsAPI struct {
	createFn  func(ctx context.Context, req domain.BookingRequest) (domain.Booking, error)
	listFn    func(ctx context.Context, status string) ([]domain.Booking, error)
	getFn     func(ctx context.Context, id string) (domain.Booking, error)
	cancelFn  func(ctx context.Context, id string) error
	paymentFn func(ctx context.Context, req domain.PaymentRequest) (domain.PaymentResult, error)
}

func (f *fakeBookingsAPI) CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	return domain.Booking{ID: "bk-fake"}, nil
}

func (f *fakeBookingsAPI) ListBookings(ctx context.Context, status string) ([]domain.Booking, error) {
	if f.listFn != nil {
		return f.listFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeBookingsAPI) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return domain.Booking{ID: id}, nil
}

func (f *fakeBookingsAPI) CancelBooking(ctx context.Context, id string) error {
	if f.cancelFn != nil {
		return f.cancelFn(ctx, id)
	}
	return nil
}

func (f *fakeBookingsAPI) InitiatePayment(ctx context.Context, req domain.PaymentRequest) (domain.PaymentResult, error) {
	if f.paymentFn != nil {
		return f.paymentFn(ctx, req)
	}
	return domain.PaymentResult{Status: "initiated"}, nil
}

func acc(id string) domain.Accommodation { return domain.Accommodation{ID: id, Name: "Acc " + id} }
