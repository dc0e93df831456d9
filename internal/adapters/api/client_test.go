package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrcheckctl/internal/adapters/storage"
	"qrcheckctl/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, domain.TokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := storage.NewMemoryTokenStore()
	return NewClient(srv.URL, srv.Client(), tokens, testLogger()), tokens
}

func TestAuthenticatedRequestCarriesBearerToken(t *testing.T) {
	var gotAuth string
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"id_public":"7a9f1f2e-8a1d-4f7b-9c3e-2f6d5a4b3c21","nome":"Ana","sobrenome":"Souza"}`))
	}))
	require.NoError(t, tokens.Save(domain.TokenPair{AccessToken: "tok-123"}))

	_, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestUnauthorizedResponseEvictsTokenOnce(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, tokens.Save(domain.TokenPair{AccessToken: "stale", RefreshToken: "stale-refresh"}))

	var expirations int
	client.OnUnauthorized(func() { expirations++ })

	_, err := client.Profile(context.Background())
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, 1, expirations)

	access, _ := tokens.AccessToken()
	refresh, _ := tokens.RefreshToken()
	assert.Empty(t, access)
	assert.Empty(t, refresh)

	// The slot is already empty; another 401 is an ordinary error and the
	// hook must not fire again.
	_, err = client.Profile(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, 1, expirations)
}

func TestLoginFailureDoesNotTouchStoredTokens(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"CPF/Email ou senha incorretos."}`))
	}))
	require.NoError(t, tokens.Save(domain.TokenPair{AccessToken: "existing"}))

	var expirations int
	client.OnUnauthorized(func() { expirations++ })

	_, err := client.Token(context.Background(), "ana@example.com", "wrong")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "CPF/Email ou senha incorretos.", apiErr.Message)
	assert.Zero(t, expirations)

	access, _ := tokens.AccessToken()
	assert.Equal(t, "existing", access)
}

func TestTokenGrantIsFormEncoded(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ana@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "s3cret", r.PostForm.Get("password"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"access_token":"new","refresh_token":"new-refresh","token_type":"bearer"}`))
	}))

	pair, err := client.Token(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "new", pair.AccessToken)
	assert.Equal(t, "new-refresh", pair.RefreshToken)
	assert.Equal(t, "bearer", pair.TokenType)
}

func TestEnrollConflictMapsToAlreadyEnrolled(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"Participante já está associado a este evento."}`))
	}))
	require.NoError(t, tokens.Save(domain.TokenPair{AccessToken: "tok"}))

	err := client.Enroll(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
}

func TestValidationErrorsMapPerField(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[
			{"loc":["body","email"],"msg":"value is not a valid email address"},
			{"loc":["body","cpf"],"msg":"CPF inválido"}
		]}`))
	}))

	_, err := client.Register(context.Background(), domain.Registration{})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "value is not a valid email address", apiErr.Fields["email"])
	assert.Equal(t, "CPF inválido", apiErr.Fields["cpf"])
}

func TestRegisterReturnsOptionalToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/participantes/cadastro", r.URL.Path)
		w.Write([]byte(`{
			"id_public":"7a9f1f2e-8a1d-4f7b-9c3e-2f6d5a4b3c21",
			"nome":"Ana","sobrenome":"Souza","email":"ana@example.com",
			"access_token":"fresh","token_type":"bearer"
		}`))
	}))

	result, err := client.Register(context.Background(), domain.Registration{Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", result.Participant.Name)
	require.NotNil(t, result.Token)
	assert.Equal(t, "fresh", result.Token.AccessToken)
}

func TestMissingEventMapsToNotFound(t *testing.T) {
	client, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Evento não encontrado."}`))
	}))
	require.NoError(t, tokens.Save(domain.TokenPair{AccessToken: "tok"}))

	_, err := client.GetEvent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransportFailureIsWrapped(t *testing.T) {
	tokens := storage.NewMemoryTokenStore()
	client := NewClient("http://127.0.0.1:1", &http.Client{}, tokens, testLogger())

	_, err := client.ListEvents(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestErrorStringsAreReadable(t *testing.T) {
	err := &Error{Status: 502, Message: "bad gateway"}
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "bad gateway")
	assert.True(t, errors.As(error(err), new(*Error)))
}
