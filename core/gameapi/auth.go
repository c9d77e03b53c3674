package gameapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrNoCredentials is returned when neither a static token nor client credentials are configured.
var ErrNoCredentials = errors.New("no access token or client credentials configured")

// tokenExpirySkew is subtracted from expires_in before caching.
const tokenExpirySkew = time.Minute

// TokenCache stores issued access tokens between runs.
type TokenCache interface {
	Get(ctx context.Context, key string) (token string, found bool, err error)
	Set(ctx context.Context, key, token string, ttl time.Duration) error
}

// TokenSource issues bearer tokens through the client credentials flow.
type TokenSource struct {
	cfg   Config
	http  *http.Client
	cache TokenCache
	group singleflight.Group
}

// NewTokenSource creates a TokenSource. cache may be nil.
func NewTokenSource(cfg Config, cache TokenCache) *TokenSource {
	return &TokenSource{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.Timeout()},
		cache: cache,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Token returns the configured static token, a cached token, or a freshly issued one.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	if s.cfg.AccessToken != "" {
		return s.cfg.AccessToken, nil
	}
	if s.cfg.ClientID == "" || s.cfg.ClientSecret == "" {
		return "", ErrNoCredentials
	}

	key := "token:" + s.cfg.region() + ":" + s.cfg.ClientID
	if s.cache != nil {
		// A cache outage falls through to the token endpoint
		if token, found, err := s.cache.Get(ctx, key); err == nil && found {
			return token, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		resp, err := s.request(ctx)
		if err != nil {
			return "", err
		}
		if s.cache != nil && resp.ExpiresIn > 0 {
			ttl := time.Duration(resp.ExpiresIn)*time.Second - tokenExpirySkew
			if ttl > 0 {
				_ = s.cache.Set(ctx, key, resp.AccessToken, ttl)
			}
		}
		return resp.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *TokenSource) request(ctx context.Context) (*tokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.oauthURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: s.cfg.oauthURL()}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, errors.New("token response has no access_token")
	}
	return &tr, nil
}
