package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"qrcheckctl/internal/domain"
)

// session owns the process-wide authentication state. It starts in the
// restoring state and settles via Restore; after that only Login, Logout and
// Expire move it. Reads and writes are serialized, so a late Expire from an
// in-flight request cannot interleave with a newer transition.
type session struct {
	auth      domain.AuthService
	people    domain.ParticipantAPI
	tokens    domain.TokenStore
	inspector domain.TokenInspector
	clock     func() time.Time
	log       *slog.Logger

	mu    sync.Mutex
	state domain.SessionState
	user  *domain.Participant
}

// NewSessionService creates a SessionService in the restoring state. The
// inspector is optional; without one every stored token is settled by the
// profile fetch.
func NewSessionService(
	auth domain.AuthService,
	people domain.ParticipantAPI,
	tokens domain.TokenStore,
	inspector domain.TokenInspector,
	log *slog.Logger,
) domain.SessionService {
	return &session{
		auth:      auth,
		people:    people,
		tokens:    tokens,
		inspector: inspector,
		clock:     time.Now,
		log:       log,
		state:     domain.StateRestoring,
	}
}

func (s *session) Restore(ctx context.Context) domain.SessionState {
	token, err := s.tokens.AccessToken()
	if err != nil {
		s.log.Warn("token store unreadable, treating session as unauthenticated", "error", err)
		return s.become(domain.StateUnauthenticated, nil)
	}
	if token == "" {
		// No token, no network traffic: straight to unauthenticated.
		return s.become(domain.StateUnauthenticated, nil)
	}

	if s.inspector != nil && s.inspector.Expired(token, s.clock()) {
		if err := s.tokens.Clear(); err != nil {
			s.log.Warn("failed to evict expired token", "error", err)
		}
		s.log.Info("stored token already expired, session not restored")
		return s.become(domain.StateUnauthenticated, nil)
	}

	user, err := s.people.Profile(ctx)
	if err != nil {
		// Any failure here means the token cannot prove a session; evict it.
		if err := s.tokens.Clear(); err != nil {
			s.log.Warn("failed to evict rejected token", "error", err)
		}
		s.log.Info("session restore failed, token evicted", "error", err)
		return s.become(domain.StateUnauthenticated, nil)
	}
	return s.become(domain.StateAuthenticated, user)
}

func (s *session) Login(ctx context.Context, email, password string) (*domain.Participant, error) {
	if _, err := s.auth.Login(ctx, email, password); err != nil {
		// State unchanged; the caller displays the failure.
		return nil, err
	}
	user, err := s.people.Profile(ctx)
	if err != nil {
		return nil, err
	}
	s.become(domain.StateAuthenticated, user)
	s.log.Info("session authenticated", "participant", user.PublicID)
	return user, nil
}

func (s *session) Logout() {
	if err := s.tokens.Clear(); err != nil {
		// Logout must not fail; an unreadable store still ends the session.
		s.log.Warn("failed to clear tokens on logout", "error", err)
	}
	s.become(domain.StateUnauthenticated, nil)
}

func (s *session) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.StateAuthenticated {
		return
	}
	s.state = domain.StateUnauthenticated
	s.user = nil
	s.log.Info("session expired")
}

func (s *session) CurrentUser() *domain.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *session) become(state domain.SessionState, user *domain.Participant) domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
	return state
}
