package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"qrcheckctl/internal/domain"
)

type authService struct {
	api    domain.AuthAPI
	people domain.ParticipantAPI
	tokens domain.TokenStore
	log    *slog.Logger
}

// NewAuthService creates an AuthService over the token endpoints and the
// token store. Tokens are only persisted after the backend accepted the grant.
func NewAuthService(api domain.AuthAPI, people domain.ParticipantAPI, tokens domain.TokenStore, log *slog.Logger) domain.AuthService {
	return &authService{
		api:    api,
		people: people,
		tokens: tokens,
		log:    log,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.TokenPair{}, domain.ErrMissingCredentials
	}

	pair, err := s.api.Token(ctx, email, password)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if err := s.tokens.Save(pair); err != nil {
		return domain.TokenPair{}, fmt.Errorf("persist tokens: %w", err)
	}
	s.log.Debug("login succeeded", "user", email)
	return pair, nil
}

func (s *authService) Refresh(ctx context.Context) (domain.TokenPair, error) {
	refresh, err := s.tokens.RefreshToken()
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("read refresh token: %w", err)
	}
	if refresh == "" {
		return domain.TokenPair{}, domain.ErrNoRefreshToken
	}

	pair, err := s.api.Refresh(ctx, refresh)
	if err != nil {
		return domain.TokenPair{}, err
	}
	// Save keeps the previous refresh token when the backend did not rotate it.
	if err := s.tokens.Save(pair); err != nil {
		return domain.TokenPair{}, fmt.Errorf("persist refreshed tokens: %w", err)
	}
	return pair, nil
}

func (s *authService) Register(ctx context.Context, reg domain.Registration) (*domain.Participant, error) {
	reg.Normalize()
	if reg.Email == "" || reg.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidRegistration)
	}

	result, err := s.people.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	if result.Token != nil {
		if err := s.tokens.Save(*result.Token); err != nil {
			return nil, fmt.Errorf("persist registration token: %w", err)
		}
		s.log.Debug("registration returned a token, participant logged in", "user", reg.Email)
	}
	return &result.Participant, nil
}
