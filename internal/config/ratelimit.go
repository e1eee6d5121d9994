package config

import "time"

// RateLimitConfig configures the Redis token bucket in front of the
// inbound webhooks.  The automation platform and the payment provider
// share one budget per source address unless KeyStrategy says otherwise.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int           // bucket size, also the allowed burst
	RefillTokens   int           // tokens added every RefillInterval
	RefillInterval time.Duration
	TTL            time.Duration // idle buckets expire after this
	KeyStrategy    string        // ip | route | ip_route | tenant_route
	Prefix         string
	Debug          bool // log every decision
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    envStr("RATE_LIMIT_KEY_STRATEGY", "ip"),
		Prefix:         envStr("RATE_LIMIT_PREFIX", "rl:webhooks"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	}.normalized()
}

// normalized clamps values the Lua script cannot work with.  A bucket must
// outlive at least a few refills or it would reset to full on every call.
func (c RateLimitConfig) normalized() RateLimitConfig {
	c.Capacity = max(c.Capacity, 1)
	c.RefillTokens = max(c.RefillTokens, 1)
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	c.TTL = max(c.TTL, 5*c.RefillInterval)
	return c
}
