package domaincheck

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

func keyDomain(fqdn string) string { return "domain:" + fqdn }

// CachedLookup is a cache-aside Lookup backed by Redis. Only successful
// answers are cached; cache errors fall through to the primary lookup.
type CachedLookup struct {
	primary Lookup
	redis   *redis.Client
	ttl     time.Duration
}

// NewCachedLookup wraps primary with a Redis cache holding answers for ttl.
func NewCachedLookup(primary Lookup, client *redis.Client, ttl time.Duration) *CachedLookup {
	return &CachedLookup{primary: primary, redis: client, ttl: ttl}
}

// Available returns the cached answer for fqdn or asks the primary lookup.
func (c *CachedLookup) Available(ctx context.Context, fqdn string) (bool, error) {
	if val, err := c.redis.Get(ctx, keyDomain(fqdn)).Result(); err == nil {
		switch val {
		case "1":
			return true, nil
		case "0":
			return false, nil
		}
	}
	available, err := c.primary.Available(ctx, fqdn)
	if err != nil {
		return false, err
	}
	val := "0"
	if available {
		val = "1"
	}
	_ = c.redis.Set(ctx, keyDomain(fqdn), val, c.ttl).Err()
	return available, nil
}

var _ Lookup = (*CachedLookup)(nil)
