package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for authentication and session operations.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrNoRefreshToken  = errors.New("no refresh token available")
)

// TokenPair is the token endpoint's response shape. RefreshToken may be empty
// when the backend does not rotate it.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// TokenStore persists the bearer token pair across runs. Implementations
// return empty strings, not errors, when a slot is unset, and Clear must be
// safe to call at any time, including when nothing is stored.
type TokenStore interface {
	AccessToken() (string, error)
	RefreshToken() (string, error)
	// Save persists the access token and, when present, the refresh token.
	// An empty refresh token leaves the stored one untouched.
	Save(pair TokenPair) error
	Clear() error
}

// TokenInspector inspects a bearer token without verifying its signature.
type TokenInspector interface {
	// Expired reports whether the token's expiry claim is in the past. Tokens
	// with no readable expiry are reported as not expired; the backend settles
	// those on the next authenticated call.
	Expired(token string, now time.Time) bool
}

// AuthAPI defines the backend token endpoints.
type AuthAPI interface {
	// Token performs the password grant: form-encoded username and password.
	Token(ctx context.Context, username, password string) (TokenPair, error)
	// Refresh exchanges a refresh token for a new pair.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

// AuthService exchanges credentials for tokens and persists them.
type AuthService interface {
	// Login performs the password grant and persists the returned pair. No
	// state is persisted when the grant fails.
	Login(ctx context.Context, email, password string) (TokenPair, error)
	// Refresh renews the pair using the stored refresh token, failing fast
	// with ErrNoRefreshToken when none is stored.
	Refresh(ctx context.Context) (TokenPair, error)
	// Register creates a participant and persists the returned token when the
	// backend includes one.
	Register(ctx context.Context, reg Registration) (*Participant, error)
}

// SessionState is the session lifecycle: restoring until the persisted token
// has been settled, then authenticated or unauthenticated.
type SessionState string

const (
	StateRestoring       SessionState = "restoring"
	StateAuthenticated   SessionState = "authenticated"
	StateUnauthenticated SessionState = "unauthenticated"
)

// SessionService owns the process-wide authentication state. All session
// mutations go through Restore, Login and Logout; consumers only read.
type SessionService interface {
	// Restore settles the initial restoring state from the persisted token:
	// no token means unauthenticated with no network traffic, a token means
	// the profile fetch decides. A failed fetch evicts the token.
	Restore(ctx context.Context) SessionState
	// Login authenticates and loads the profile. On failure the session state
	// is left unchanged and the error is returned for display.
	Login(ctx context.Context, email, password string) (*Participant, error)
	// Logout evicts the token and clears the profile. Safe in any state.
	Logout()
	// Expire drops an authenticated session after its token was rejected by
	// the backend. Idempotent; a no-op in any other state.
	Expire()
	CurrentUser() *Participant
	State() SessionState
}
