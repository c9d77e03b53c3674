package gameapi

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoints builds resource URLs for the configured region.
type Endpoints struct {
	cfg Config
}

// NewEndpoints creates an Endpoints for cfg.
func NewEndpoints(cfg Config) Endpoints {
	return Endpoints{cfg: cfg}
}

// SeasonIndex returns the PvP season index URL.
func (e Endpoints) SeasonIndex() string {
	return e.build("/data/wow/pvp-season/index", e.cfg.pvpNamespace())
}

// Leaderboard returns the leaderboard URL for one season and bracket.
func (e Endpoints) Leaderboard(seasonID int, bracket string) string {
	path := fmt.Sprintf("/data/wow/pvp-season/%d/pvp-leaderboard/%s", seasonID, url.PathEscape(bracket))
	return e.build(path, e.cfg.pvpNamespace())
}

// CharacterProfile returns the profile summary URL of a character.
// The name segment is case-sensitive remotely and must be lowercase.
func (e Endpoints) CharacterProfile(realmSlug, characterName string) string {
	path := fmt.Sprintf("/profile/wow/character/%s/%s",
		url.PathEscape(realmSlug), url.PathEscape(strings.ToLower(characterName)))
	return e.build(path, e.cfg.profileNamespace())
}

func (e Endpoints) build(path, namespace string) string {
	q := url.Values{}
	q.Set("namespace", namespace)
	q.Set("locale", e.cfg.locale())
	return strings.TrimRight(e.cfg.baseURL(), "/") + path + "?" + q.Encode()
}
