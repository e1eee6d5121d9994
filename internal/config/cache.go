package config

import "time"

// CacheConfig drives the Redis response cache on the menu listing.  Keys
// always carry the tenant, so one restaurant never reads another's cached
// price list, and every menu write drops the tenant's keys.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* variables.  The TTL stays short because a
// stale entry only delays what the operator sees.
func LoadCacheConfig() CacheConfig {
	c := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      envSet("CACHE_METHODS", "GET"),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache:menu"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 256<<10),
	}
	if c.TTL <= 0 {
		c.Enabled = false
	}
	return c
}
