package bookingapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"staysync/internal/adapters/bookingapi"
	"staysync/internal/domain"
)

func parseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parse query %q: %v", raw, err)
	}
	return v
}

func bytesReader(s string) io.Reader { return strings.NewReader(s) }

type memTokens struct{ tok string }

func (m *memTokens) Set(t string)          { m.tok = t }
func (m *memTokens) Get() string           { return m.tok }
func (m *memTokens) Clear()                { m.tok = "" }
func (m *memTokens) IsAuthenticated() bool { return m.tok != "" }

func TestClient_Login_StoresToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/token" || r.Method != http.MethodPost {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content type: %s", ct)
		}
		_ = r.ParseForm()
		if r.PostForm.Get("grant_type") != "password" || r.PostForm.Get("username") != "user@example.com" {
			t.Errorf("unexpected form: %v", r.PostForm)
		}
		_ = json.NewEncoder(w).Encode(domain.AuthToken{AccessToken: "tok-1", TokenType: "bearer"})
	}))
	defer ts.Close()

	tokens := &memTokens{}
	cl := bookingapi.New(ts.URL, tokens)

	got, err := cl.Login(context.Background(), "user@example.com", "rightpass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.AccessToken != "tok-1" {
		t.Fatalf("token: %+v", got)
	}
	if !tokens.IsAuthenticated() || tokens.Get() != "tok-1" {
		t.Fatalf("token not persisted: %q", tokens.Get())
	}
}

func TestClient_Login_401IsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"bad credentials"}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	tokens := &memTokens{}
	cl := bookingapi.New(ts.URL, tokens)

	_, err := cl.Login(context.Background(), "user@example.com", "wrongpass")
	var he *domain.HTTPError
	if !errors.As(err, &he) || he.Status != http.StatusUnauthorized {
		t.Fatalf("expected HTTPError 401, got %v", err)
	}
	if tokens.IsAuthenticated() {
		t.Fatalf("failed login must not store a token")
	}
}

func TestClient_BearerAttachedWhenPresent(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(domain.UserProfile{ID: "u1", Email: "a@b.com"})
	}))
	defer ts.Close()

	tokens := &memTokens{tok: "tok-77"}
	cl := bookingapi.New(ts.URL, tokens)

	u, err := cl.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if u.ID != "u1" {
		t.Fatalf("user: %+v", u)
	}
	if gotAuth != "Bearer tok-77" {
		t.Fatalf("auth header: %q", gotAuth)
	}

	// without a token the call goes out unauthenticated
	tokens.Clear()
	_, _ = cl.CurrentUser(context.Background())
	if gotAuth != "" {
		t.Fatalf("expected no auth header, got %q", gotAuth)
	}
}

func TestClient_DecodeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("not-json"))
	}))
	defer ts.Close()

	cl := bookingapi.New(ts.URL, &memTokens{})
	_, err := cl.Popular(context.Background(), 10)
	var de *domain.DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestClient_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // server gone: every call now fails at the transport

	cl := bookingapi.New(ts.URL, &memTokens{})
	_, err := cl.Popular(context.Background(), 10)
	var ne *domain.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestClient_QueryShapes(t *testing.T) {
	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(domain.AccommodationsPage{})
	}))
	defer ts.Close()

	cl := bookingapi.New(ts.URL, &memTokens{})
	ctx := context.Background()

	_, err := cl.ListNearby(ctx, domain.NearbyQuery{Latitude: 6.5, Longitude: 3.4, Distance: 5000, Limit: 20})
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if gotPath != "/api/accommodations/near-me" {
		t.Fatalf("path: %s", gotPath)
	}
	vals := parseQuery(t, gotQuery)
	if vals.Get("latitude") != "6.5" || vals.Get("distance") != "5000" || vals.Get("limit") != "20" {
		t.Fatalf("query: %s", gotQuery)
	}

	_, err = cl.Search(ctx, "lagos beachfront", domain.ListQuery{Limit: 5, SortBy: "rating", SortOrder: "desc"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	vals = parseQuery(t, gotQuery)
	if gotPath != "/api/accommodations/search" || vals.Get("query") != "lagos beachfront" || vals.Get("sort_by") != "rating" {
		t.Fatalf("search shape: %s?%s", gotPath, gotQuery)
	}

	_, err = cl.GetAccommodation(ctx, "acc42")
	if err == nil && gotPath != "/api/accommodations/acc42" {
		t.Fatalf("detail path: %s", gotPath)
	}
}

func TestClient_CancelBookingSendsDelete(t *testing.T) {
	var gotMethod, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	cl := bookingapi.New(ts.URL, &memTokens{tok: "t"})
	if err := cl.CancelBooking(context.Background(), "bk9"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/bookings/bk9" {
		t.Fatalf("got %s %s", gotMethod, gotPath)
	}
}

func TestClient_UploadProfileImageIsMultipart(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("multipart parse: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Errorf("file part: %v", err)
		} else {
			defer f.Close()
			if hdr.Filename != "avatar.png" {
				t.Errorf("filename: %s", hdr.Filename)
			}
		}
		_ = json.NewEncoder(w).Encode(domain.UserProfile{ID: "u1"})
	}))
	defer ts.Close()

	cl := bookingapi.New(ts.URL, &memTokens{tok: "t"})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	u, err := cl.UploadProfileImage(ctx, "avatar.png", bytesReader("png-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if u.ID != "u1" {
		t.Fatalf("user: %+v", u)
	}
}
