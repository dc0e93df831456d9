package api

import (
	"context"
	"fmt"

	"qrcheckctl/internal/domain"
)

// Profile returns the authenticated participant's profile.
func (c *Client) Profile(ctx context.Context) (*domain.Participant, error) {
	var participant domain.Participant
	if err := c.getJSON(ctx, "/meu-perfil", &participant); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &participant, nil
}

// Register creates a participant. Some backend deployments log the new
// participant in directly; the returned token pair is passed along when present.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.RegistrationResult, error) {
	var reply struct {
		domain.Participant
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
	}
	if err := c.postJSON(ctx, "/admin/participantes/cadastro", reg, &reply, false); err != nil {
		return nil, fmt.Errorf("register participant: %w", err)
	}

	result := &domain.RegistrationResult{Participant: reply.Participant}
	if reply.AccessToken != "" {
		result.Token = &domain.TokenPair{
			AccessToken:  reply.AccessToken,
			RefreshToken: reply.RefreshToken,
			TokenType:    reply.TokenType,
		}
	}
	return result, nil
}

// Occupations lists the selectable occupations for registration.
func (c *Client) Occupations(ctx context.Context) ([]domain.Occupation, error) {
	var occupations []domain.Occupation
	if err := c.getJSON(ctx, "/ocupacoes/listar", &occupations); err != nil {
		return nil, fmt.Errorf("list occupations: %w", err)
	}
	return occupations, nil
}

// Needs lists the selectable accessibility needs for registration.
func (c *Client) Needs(ctx context.Context) ([]domain.Need, error) {
	var needs []domain.Need
	if err := c.getJSON(ctx, "/necessidades/listar", &needs); err != nil {
		return nil, fmt.Errorf("list needs: %w", err)
	}
	return needs, nil
}
