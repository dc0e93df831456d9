package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"qrcheckctl/internal/domain"
)

// Client wraps outbound calls to the backend. Authenticated requests carry
// the stored bearer token; an unauthenticated-class response evicts the token
// exactly once and short-circuits the caller with domain.ErrUnauthenticated.
type Client struct {
	baseURL string
	hc      *http.Client
	tokens  domain.TokenStore
	log     *slog.Logger

	mu             sync.Mutex // guards eviction and the hook below
	onUnauthorized func()
}

// NewClient returns a Client for the given base URL. A nil http.Client falls
// back to http.DefaultClient.
func NewClient(baseURL string, hc *http.Client, tokens domain.TokenStore, log *slog.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      hc,
		tokens:  tokens,
		log:     log,
	}
}

// OnUnauthorized registers a hook fired after a 401 evicts the stored token.
// The hook runs at most once per eviction, no matter how many in-flight
// requests fail with the same token.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// send performs a request against the backend. When authenticated is true the
// stored access token is attached as a bearer credential. A JSON response body
// is decoded into out when out is non-nil.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, authenticated bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	var sent string
	if authenticated {
		tok, err := c.tokens.AccessToken()
		if err != nil {
			return fmt.Errorf("read access token: %w", err)
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
			sent = tok
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && sent != "" {
		// The credential we sent is no longer accepted. Evict it and tell the
		// caller to stop treating this response as data.
		c.evict(sent)
		return domain.ErrUnauthenticated
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// evict clears the stored token pair if it still holds the token that was
// rejected. Concurrent rejections of the same token evict and fire the hook
// only once: the losers observe an empty or changed slot and do nothing.
func (c *Client) evict(rejected string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.tokens.AccessToken()
	if err != nil || current == "" || current != rejected {
		return
	}
	if err := c.tokens.Clear(); err != nil {
		c.log.Warn("failed to clear rejected token", "error", err)
		return
	}
	c.log.Info("session expired, token evicted")
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.send(ctx, http.MethodGet, path, nil, "", true, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any, authenticated bool) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	return c.send(ctx, http.MethodPost, path, strings.NewReader(string(payload)), "application/json", authenticated, out)
}

// postForm submits form-encoded fields without a bearer credential; it is
// used by the token endpoints, which authenticate by their own payload.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.send(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", false, out)
}
