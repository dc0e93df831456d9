package api

import (
	"context"
	"fmt"
	"net/url"

	"qrcheckctl/internal/domain"
)

// Token performs the password grant against /auth/token. The backend accepts
// an email (or CPF) in the username field.
func (c *Client) Token(ctx context.Context, username, password string) (domain.TokenPair, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var pair domain.TokenPair
	if err := c.postForm(ctx, "/auth/token", form, &pair); err != nil {
		return domain.TokenPair{}, fmt.Errorf("token grant: %w", err)
	}
	return pair, nil
}

// Refresh exchanges a refresh token for a new pair against /auth/refresh.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	form := url.Values{}
	form.Set("refresh_token", refreshToken)

	var pair domain.TokenPair
	if err := c.postForm(ctx, "/auth/refresh", form, &pair); err != nil {
		return domain.TokenPair{}, fmt.Errorf("token refresh: %w", err)
	}
	return pair, nil
}
