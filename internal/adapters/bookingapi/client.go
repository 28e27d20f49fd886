// internal/adapters/bookingapi/client.go
package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"staysync/internal/adapters/observability"
	"staysync/internal/domain"
)

// Client is the typed wrapper around the remote booking API. Every call
// attaches the bearer token when one is stored; calls without a token go out
// unauthenticated and the server decides. Failures map onto the domain error
// taxonomy and are never retried here — retry policy belongs to the caller.
type Client struct {
	base   string
	hc     *http.Client
	tokens domain.TokenStore
}

func New(base string, tokens domain.TokenStore) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		hc:     &http.Client{Timeout: 20 * time.Second},
		tokens: tokens,
	}
}

var (
	_ domain.AuthAPI      = (*Client)(nil)
	_ domain.ProfileAPI   = (*Client)(nil)
	_ domain.CatalogAPI   = (*Client)(nil)
	_ domain.FavoritesAPI = (*Client)(nil)
	_ domain.BookingsAPI  = (*Client)(nil)
)

// ---- auth ----

func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.UserProfile, error) {
	var out domain.UserProfile
	return out, c.postJSON(ctx, "auth.register", "/api/auth/register", reg, &out)
}

// Login exchanges credentials for a bearer token (password grant, form
// encoded) and persists it as a side effect.
func (c *Client) Login(ctx context.Context, email, password string) (domain.AuthToken, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)
	form.Set("grant_type", "password")

	var tok domain.AuthToken
	if err := c.postForm(ctx, "auth.token", "/api/auth/token", form, &tok); err != nil {
		return domain.AuthToken{}, err
	}
	c.tokens.Set(tok.AccessToken)
	return tok, nil
}

func (c *Client) CurrentUser(ctx context.Context) (domain.UserProfile, error) {
	var out domain.UserProfile
	return out, c.getJSON(ctx, "auth.me", "/api/auth/me", &out)
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	var out map[string]any
	return c.postJSON(ctx, "auth.password_reset", "/api/auth/request-password-reset", body, &out)
}

// Logout is client-side only: the server keeps no session, dropping the token
// is the whole operation.
func (c *Client) Logout(ctx context.Context) error {
	c.tokens.Clear()
	return nil
}

// ---- user profile ----

func (c *Client) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (domain.UserProfile, error) {
	var out domain.UserProfile
	return out, c.patchJSON(ctx, "users.profile", "/api/users/profile", upd, &out)
}

func (c *Client) UploadProfileImage(ctx context.Context, filename string, r io.Reader) (domain.UserProfile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return domain.UserProfile{}, err
	}
	if err := mw.Close(); err != nil {
		return domain.UserProfile{}, err
	}
	var out domain.UserProfile
	err = c.do(ctx, "users.profile_image", http.MethodPost, "/api/users/profile/image",
		mw.FormDataContentType(), &buf, &out)
	return out, err
}

func (c *Client) UpdateLocation(ctx context.Context, loc domain.LocationUpdate) (domain.UserProfile, error) {
	form := url.Values{}
	form.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	form.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	form.Set("address", loc.Address)

	var out domain.UserProfile
	return out, c.postForm(ctx, "users.location", "/api/users/location", form, &out)
}

// ---- accommodations ----

func (c *Client) ListAccommodations(ctx context.Context, q domain.ListQuery) (domain.AccommodationsPage, error) {
	var out domain.AccommodationsPage
	return out, c.getJSON(ctx, "accommodations.list", "/api/accommodations/"+listParams(q).encodeQuery(), &out)
}

func (c *Client) ListByType(ctx context.Context, accType string, q domain.ListQuery) (domain.AccommodationsPage, error) {
	var out domain.AccommodationsPage
	path := "/api/accommodations/" + url.PathEscape(accType) + listParams(q).encodeQuery()
	return out, c.getJSON(ctx, "accommodations.by_type", path, &out)
}

func (c *Client) ListNearby(ctx context.Context, q domain.NearbyQuery) (domain.AccommodationsPage, error) {
	v := params{}
	v.setFloat("latitude", q.Latitude)
	v.setFloat("longitude", q.Longitude)
	v.setInt("distance", q.Distance)
	v.setInt("page", q.Page)
	v.setInt("limit", q.Limit)

	var out domain.AccommodationsPage
	return out, c.getJSON(ctx, "accommodations.near_me", "/api/accommodations/near-me"+v.encodeQuery(), &out)
}

func (c *Client) Search(ctx context.Context, query string, q domain.ListQuery) (domain.AccommodationsPage, error) {
	v := listParams(q)
	v.set("query", query)

	var out domain.AccommodationsPage
	return out, c.getJSON(ctx, "accommodations.search", "/api/accommodations/search"+v.encodeQuery(), &out)
}

func (c *Client) Popular(ctx context.Context, limit int) ([]domain.Accommodation, error) {
	v := params{}
	v.setInt("limit", limit)
	var out []domain.Accommodation
	return out, c.getJSON(ctx, "accommodations.popular", "/api/accommodations/popular"+v.encodeQuery(), &out)
}

func (c *Client) Trending(ctx context.Context, days, limit int) ([]domain.Accommodation, error) {
	v := params{}
	v.setInt("days", days)
	v.setInt("limit", limit)
	var out []domain.Accommodation
	return out, c.getJSON(ctx, "accommodations.trending", "/api/accommodations/trending"+v.encodeQuery(), &out)
}

func (c *Client) Recommended(ctx context.Context, limit int) ([]domain.Accommodation, error) {
	v := params{}
	v.setInt("limit", limit)
	var out []domain.Accommodation
	return out, c.getJSON(ctx, "accommodations.recommended", "/api/accommodations/recommended"+v.encodeQuery(), &out)
}

func (c *Client) GetAccommodation(ctx context.Context, id string) (domain.Accommodation, error) {
	var out domain.Accommodation
	return out, c.getJSON(ctx, "accommodations.get", "/api/accommodations/"+url.PathEscape(id), &out)
}

func (c *Client) ListReviews(ctx context.Context, accommodationID string, q domain.ListQuery) (domain.ReviewsPage, error) {
	var out domain.ReviewsPage
	path := "/api/accommodations/" + url.PathEscape(accommodationID) + "/reviews" + listParams(q).encodeQuery()
	return out, c.getJSON(ctx, "accommodations.reviews", path, &out)
}

func (c *Client) CreateReview(ctx context.Context, accommodationID string, rating float64, comment string) (domain.Review, error) {
	body := map[string]any{"rating": rating, "comment": comment}
	var out domain.Review
	path := "/api/accommodations/" + url.PathEscape(accommodationID) + "/reviews"
	return out, c.postJSON(ctx, "accommodations.create_review", path, body, &out)
}

func (c *Client) Cities(ctx context.Context) ([]string, error) {
	var out []string
	return out, c.getJSON(ctx, "accommodations.cities", "/api/accommodations/cities/list", &out)
}

func (c *Client) Countries(ctx context.Context) ([]string, error) {
	var out []string
	return out, c.getJSON(ctx, "accommodations.countries", "/api/accommodations/countries/list", &out)
}

// ---- favorites ----

func (c *Client) ListFavorites(ctx context.Context) ([]domain.Accommodation, error) {
	var out []domain.Accommodation
	return out, c.getJSON(ctx, "favorites.list", "/api/users/favorites", &out)
}

func (c *Client) AddFavorite(ctx context.Context, accommodationID string) error {
	return c.do(ctx, "favorites.add", http.MethodPost,
		"/api/users/favorites/"+url.PathEscape(accommodationID), "", nil, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, accommodationID string) error {
	return c.do(ctx, "favorites.remove", http.MethodDelete,
		"/api/users/favorites/"+url.PathEscape(accommodationID), "", nil, nil)
}

// ---- bookings & payments ----

func (c *Client) CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	var out domain.Booking
	return out, c.postJSON(ctx, "bookings.create", "/api/bookings/", req, &out)
}

func (c *Client) ListBookings(ctx context.Context, status string) ([]domain.Booking, error) {
	v := params{}
	v.set("status", status)
	var out []domain.Booking
	return out, c.getJSON(ctx, "bookings.list", "/api/bookings/"+v.encodeQuery(), &out)
}

func (c *Client) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	var out domain.Booking
	return out, c.getJSON(ctx, "bookings.get", "/api/bookings/"+url.PathEscape(id), &out)
}

func (c *Client) CancelBooking(ctx context.Context, id string) error {
	return c.do(ctx, "bookings.cancel", http.MethodDelete,
		"/api/bookings/"+url.PathEscape(id), "", nil, nil)
}

func (c *Client) InitiatePayment(ctx context.Context, req domain.PaymentRequest) (domain.PaymentResult, error) {
	var out domain.PaymentResult
	return out, c.postJSON(ctx, "payments.initiate", "/api/payments/initiate", req, &out)
}

// ---- transport internals ----

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	return c.do(ctx, op, http.MethodGet, path, "", nil, out)
}

func (c *Client) postJSON(ctx context.Context, op, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, op, http.MethodPost, path, "application/json", bytes.NewReader(b), out)
}

func (c *Client) patchJSON(ctx context.Context, op, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, op, http.MethodPatch, path, "application/json", bytes.NewReader(b), out)
}

func (c *Client) postForm(ctx context.Context, op, path string, form url.Values, out any) error {
	return c.do(ctx, op, http.MethodPost, path,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()), out)
}

func (c *Client) do(ctx context.Context, op, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request %s: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "staysync/1.0")
	if tok := c.tokens.Get(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveAPI(op, method, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveAPI(op, method, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &domain.HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.DecodeError{Op: op, Err: err}
	}
	return nil
}

// params builds query strings, skipping zero values so URLs stay tidy.
type params struct{ v url.Values }

func (p *params) ensure() {
	if p.v == nil {
		p.v = url.Values{}
	}
}

func (p *params) set(k, s string) {
	if s == "" {
		return
	}
	p.ensure()
	p.v.Set(k, s)
}

func (p *params) setInt(k string, n int) {
	if n == 0 {
		return
	}
	p.ensure()
	p.v.Set(k, strconv.Itoa(n))
}

func (p *params) setFloat(k string, f float64) {
	p.ensure()
	p.v.Set(k, strconv.FormatFloat(f, 'f', -1, 64))
}

func (p params) encodeQuery() string {
	if len(p.v) == 0 {
		return ""
	}
	return "?" + p.v.Encode()
}

func listParams(q domain.ListQuery) params {
	p := params{}
	p.setInt("page", q.Page)
	p.setInt("limit", q.Limit)
	p.set("sort_by", q.SortBy)
	p.set("sort_order", q.SortOrder)
	return p
}
