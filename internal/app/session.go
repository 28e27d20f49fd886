package app

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"staysync/internal/adapters/observability"
	"staysync/internal/domain"
)

type SessionState int

const (
	SessionUnknown SessionState = iota
	SessionAuthenticated
	SessionUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionAuthenticated:
		return "authenticated"
	case SessionUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// SessionEvent is emitted on state transitions. The presentation layer
// subscribes and decides what navigation means; the session itself knows
// nothing about screens.
type SessionEvent int

const (
	SignedIn SessionEvent = iota
	SignedOut
)

// Session owns authentication state, derived from the token store plus the
// auth API. Profile mutations live here too because the user object is owned
// exclusively by the session.
type Session struct {
	auth    domain.AuthAPI
	profile domain.ProfileAPI
	tokens  domain.TokenStore
	log     zerolog.Logger

	// location updates are debounced: a burst of GPS fixes dispatches once
	// per quiet period.
	locGate *rate.Limiter

	mu    sync.Mutex
	state SessionState
	user  *domain.UserProfile
	subs  []func(SessionEvent)
}

func NewSession(auth domain.AuthAPI, profile domain.ProfileAPI, tokens domain.TokenStore, locationQuiet time.Duration, log zerolog.Logger) *Session {
	if locationQuiet <= 0 {
		locationQuiet = 800 * time.Millisecond
	}
	return &Session{
		auth:    auth,
		profile: profile,
		tokens:  tokens,
		log:     log,
		locGate: rate.NewLimiter(rate.Every(locationQuiet), 1),
		state:   SessionUnknown,
	}
}

// Subscribe registers an observer for sign-in/sign-out transitions.
// Observers are called outside the session lock, in registration order.
func (s *Session) Subscribe(fn func(SessionEvent)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the session's profile object. The same pointer is kept across
// refreshes whose payload is structurally unchanged.
func (s *Session) User() *domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Start resolves the initial Unknown state: a stored token is probed with
// CurrentUser; any failure clears the token and lands in Unauthenticated.
// Token validity is only ever discovered this lazily.
func (s *Session) Start(ctx context.Context) {
	if !s.tokens.IsAuthenticated() {
		s.setState(SessionUnauthenticated, nil)
		return
	}
	u, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("startup token probe failed, clearing token")
		s.tokens.Clear()
		s.setState(SessionUnauthenticated, nil)
		return
	}
	s.setState(SessionAuthenticated, &u)
}

// Register creates the account. The new user is not signed in; the flow
// returns to the sign-in step, mirroring the registration screen.
func (s *Session) Register(ctx context.Context, reg domain.Registration) error {
	if _, err := s.auth.Register(ctx, reg); err != nil {
		s.log.Warn().Err(err).Str("email", reg.Email).Msg("registration failed")
		return err
	}
	return nil
}

func (s *Session) RequestPasswordReset(ctx context.Context, email string) error {
	return s.auth.RequestPasswordReset(ctx, email)
}

// Login exchanges credentials for a token, then loads the profile. On any
// failure the session state is left as it was and the error is surfaced.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if _, err := s.auth.Login(ctx, email, password); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("login failed")
		return err
	}
	u, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	s.setState(SessionAuthenticated, &u)
	observability.ObserveSession("signed_in")
	s.emit(SignedIn)
	return nil
}

func (s *Session) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("logout failed")
	}
	s.setState(SessionUnauthenticated, nil)
	observability.ObserveSession("signed_out")
	s.emit(SignedOut)
}

// RefreshUser refetches the profile. A no-op unless authenticated. Any
// failure is treated as session invalidation and triggers an implicit logout;
// a 401 is the expected expiry path and is not reported as an error.
func (s *Session) RefreshUser(ctx context.Context) error {
	if s.State() != SessionAuthenticated {
		return nil
	}
	u, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("user refresh failed, invalidating session")
		s.Logout(ctx)
		if domain.IsUnauthorized(err) {
			return nil
		}
		return err
	}
	s.replaceUser(&u)
	return nil
}

func (s *Session) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) error {
	if s.State() != SessionAuthenticated {
		return &domain.ValidationError{Field: "session", Reason: "not signed in"}
	}
	u, err := s.profile.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	s.replaceUser(&u)
	return nil
}

func (s *Session) UploadProfileImage(ctx context.Context, filename string, r io.Reader) error {
	if s.State() != SessionAuthenticated {
		return &domain.ValidationError{Field: "session", Reason: "not signed in"}
	}
	u, err := s.profile.UploadProfileImage(ctx, filename, r)
	if err != nil {
		return err
	}
	s.replaceUser(&u)
	return nil
}

// UpdateLocation dispatches at most once per quiet period; calls landing
// inside the window are dropped, matching how a stream of GPS fixes is meant
// to be coalesced.
func (s *Session) UpdateLocation(ctx context.Context, loc domain.LocationUpdate) error {
	if s.State() != SessionAuthenticated {
		return &domain.ValidationError{Field: "session", Reason: "not signed in"}
	}
	if !s.locGate.Allow() {
		s.log.Debug().Msg("location update dropped inside quiet period")
		return nil
	}
	u, err := s.profile.UpdateLocation(ctx, loc)
	if err != nil {
		return err
	}
	s.replaceUser(&u)
	return nil
}

func (s *Session) setState(st SessionState, u *domain.UserProfile) {
	s.mu.Lock()
	s.state = st
	s.user = u
	s.mu.Unlock()
}

// replaceUser swaps the profile only when it structurally changed, keeping
// the old pointer stable for observers comparing identity.
func (s *Session) replaceUser(u *domain.UserProfile) {
	s.mu.Lock()
	if s.user == nil || !sameJSON(s.user, u) {
		s.user = u
	}
	s.mu.Unlock()
}

func (s *Session) emit(ev SessionEvent) {
	s.mu.Lock()
	subs := make([]func(SessionEvent), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}
