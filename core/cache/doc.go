// Package cache wires the optional Redis cache.
//
// The only consumer is the game API token source: issued access tokens are
// kept in Redis under a prefixed key so consecutive batch runs reuse them
// until they expire. When no Redis URL is configured the token source runs
// without a cache.
package cache
