package gameapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu     sync.Mutex
	tokens map[string]string
	ttls   map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{tokens: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tok, ok := m.tokens[key]
	return tok, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[key] = token
	m.ttls[key] = ttl
	return nil
}

func TestTokenSource_Static(t *testing.T) {
	ts := NewTokenSource(Config{AccessToken: "static"}, nil)
	tok, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static", tok)
}

func TestTokenSource_NoCredentials(t *testing.T) {
	ts := NewTokenSource(Config{}, nil)
	_, err := ts.Token(context.Background())
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestTokenSource_ClientCredentials(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "id", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		_, _ = w.Write([]byte(`{"access_token": "FAKE_TOKEN_123", "expires_in": 86399}`))
	}))
	defer srv.Close()

	cache := newMemoryCache()
	ts := NewTokenSource(Config{ClientID: "id", ClientSecret: "secret", OAuthURL: srv.URL}, cache)

	tok, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FAKE_TOKEN_123", tok)

	// Second call is served from the cache
	tok, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "FAKE_TOKEN_123", tok)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 86399*time.Second-time.Minute, cache.ttls["token:us:id"])
}

func TestTokenSource_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	ts := NewTokenSource(Config{ClientID: "id", ClientSecret: "bad", OAuthURL: srv.URL}, nil)
	_, err := ts.Token(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}
