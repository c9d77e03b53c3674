package gameapi

import (
	"fmt"
	"time"
)

// Config holds configuration for the remote game API.
type Config struct {
	// Region selects the regional API host (us, eu, kr, tw).
	Region string `mapstructure:"region" default:"us"`
	// Locale is sent with every data and profile request.
	Locale string `mapstructure:"locale" default:"en_US"`
	// PvPNamespace overrides the dynamic namespace used for season and leaderboard data.
	PvPNamespace string `mapstructure:"pvp_namespace" default:""`
	// ProfileNamespace overrides the namespace used for character profiles.
	ProfileNamespace string `mapstructure:"profile_namespace" default:""`
	// ClientID is the OAuth client id for the client credentials flow.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the OAuth client secret.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// AccessToken is a pre-issued bearer token; when set no token is requested.
	AccessToken string `mapstructure:"access_token" default:""`
	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// BaseURL overrides the API host, e.g. for a local stub.
	BaseURL string `mapstructure:"base_url" default:""`
	// OAuthURL overrides the token endpoint.
	OAuthURL string `mapstructure:"oauth_url" default:""`
}

// Timeout returns the per-request timeout, defaulting to 10 seconds.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) region() string {
	if c.Region == "" {
		return "us"
	}
	return c.Region
}

func (c Config) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("https://%s.api.blizzard.com", c.region())
}

func (c Config) oauthURL() string {
	if c.OAuthURL != "" {
		return c.OAuthURL
	}
	return fmt.Sprintf("https://%s.battle.net/oauth/token", c.region())
}

func (c Config) locale() string {
	if c.Locale == "" {
		return "en_US"
	}
	return c.Locale
}

func (c Config) pvpNamespace() string {
	if c.PvPNamespace != "" {
		return c.PvPNamespace
	}
	return "dynamic-" + c.region()
}

func (c Config) profileNamespace() string {
	if c.ProfileNamespace != "" {
		return c.ProfileNamespace
	}
	return "profile-" + c.region()
}
