package config

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// LookupCache holds geography lookups (states, districts, sub-districts,
// villages). Projection results are never cached.
var LookupCache *cache.Cache

// InitCache creates LookupCache with the given TTL. Expired entries are
// swept at twice the TTL.
func InitCache(ttl time.Duration) *cache.Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	LookupCache = cache.New(ttl, 2*ttl)
	return LookupCache
}

func ClearAllCaches() {
	if LookupCache != nil {
		LookupCache.Flush()
	}
}
