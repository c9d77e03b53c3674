package cache

// Config holds configuration for the optional Redis cache.
type Config struct {
	// RedisURL is a redis:// URL or a host:port address. Empty disables the cache.
	RedisURL string `mapstructure:"redis_url" default:""`
	// KeyPrefix is prepended to every key written by this application.
	KeyPrefix string `mapstructure:"key_prefix" default:"pvp-pipeline:"`
}

// Enabled reports whether a Redis address is configured.
func (c Config) Enabled() bool {
	return c.RedisURL != ""
}
