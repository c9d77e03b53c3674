package gameapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// ErrNotJSONObject is returned when a response body is not a JSON object.
var ErrNotJSONObject = errors.New("response body is not a JSON object")

// StatusError reports a non-success HTTP status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Client performs authenticated GET requests against the game API.
// A single Client is safe for concurrent use.
type Client struct {
	http      *http.Client
	endpoints Endpoints
	timeout   time.Duration
}

// NewClient creates a Client with a pooled transport sized for concurrent profile lookups.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout()
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{
		http:      &http.Client{Transport: transport},
		endpoints: NewEndpoints(cfg),
		timeout:   timeout,
	}
}

// Endpoints returns the URL builder used by the client.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// GetJSON issues a bearer-authorized GET and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, url, token string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// CharacterProfile fetches the profile summary document of one character.
func (c *Client) CharacterProfile(ctx context.Context, token, realmSlug, characterName string) (map[string]any, error) {
	var doc any
	if err := c.GetJSON(ctx, c.endpoints.CharacterProfile(realmSlug, characterName), token, &doc); err != nil {
		return nil, err
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, ErrNotJSONObject
	}
	return obj, nil
}

// CurrentSeasonID returns current_season.id from the PvP season index.
func (c *Client) CurrentSeasonID(ctx context.Context, token string) (int, error) {
	var index SeasonIndex
	if err := c.GetJSON(ctx, c.endpoints.SeasonIndex(), token, &index); err != nil {
		return 0, err
	}
	if index.CurrentSeason == nil || index.CurrentSeason.ID <= 0 {
		return 0, errors.New("season index has no current_season.id")
	}
	return index.CurrentSeason.ID, nil
}

// Leaderboard fetches the full leaderboard of one season and bracket.
func (c *Client) Leaderboard(ctx context.Context, token string, seasonID int, bracket string) (*LeaderboardResponse, error) {
	var lb LeaderboardResponse
	if err := c.GetJSON(ctx, c.endpoints.Leaderboard(seasonID, bracket), token, &lb); err != nil {
		return nil, err
	}
	return &lb, nil
}
