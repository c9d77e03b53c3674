// Package gameapi is a small client for the game's public web API.
//
// It builds the season index, leaderboard and character profile URLs for a region,
// performs bearer-authorized GET requests returning decoded JSON, and issues access
// tokens through the OAuth client credentials flow.
//
// Credential handling is explicit: callers obtain a token from a TokenSource once and
// pass the string to every request. A TokenSource returns a configured static token
// first, then a cached token (see core/cache), and only then calls the token endpoint.
package gameapi
