package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/iitbhu2k25/DSS-Nextjs/models"
)

// CachedLocations serves geography lookups from an in-process cache, falling
// back to the wrapped store on a miss. Entries expire with the cache's default
// TTL. Errors are never cached.
type CachedLocations struct {
	store LocationStore
	cache *cache.Cache
}

func NewCachedLocations(store LocationStore, c *cache.Cache) *CachedLocations {
	return &CachedLocations{store: store, cache: c}
}

func (c *CachedLocations) States(ctx context.Context) ([]models.State, error) {
	key := cacheKey("states")
	if v, ok := c.cache.Get(key); ok {
		return v.([]models.State), nil
	}
	states, err := c.store.States(ctx)
	if err != nil {
		return nil, err
	}
	c.set(key, states)
	return states, nil
}

func (c *CachedLocations) Districts(ctx context.Context, stateCode int64) ([]models.District, error) {
	key := cacheKey("districts", stateCode)
	if v, ok := c.cache.Get(key); ok {
		return v.([]models.District), nil
	}
	districts, err := c.store.Districts(ctx, stateCode)
	if err != nil {
		return nil, err
	}
	c.set(key, districts)
	return districts, nil
}

func (c *CachedLocations) Subdistricts(ctx context.Context, districtCodes []int64) ([]models.Subdistrict, error) {
	codes := NormalizeCodes(districtCodes)
	key := cacheKey("subdistricts", codes...)
	if v, ok := c.cache.Get(key); ok {
		return v.([]models.Subdistrict), nil
	}
	subdistricts, err := c.store.Subdistricts(ctx, codes)
	if err != nil {
		return nil, err
	}
	c.set(key, subdistricts)
	return subdistricts, nil
}

func (c *CachedLocations) Villages(ctx context.Context, subdistrictCodes []int64) ([]models.VillageRecord, error) {
	codes := NormalizeCodes(subdistrictCodes)
	key := cacheKey("villages", codes...)
	if v, ok := c.cache.Get(key); ok {
		return v.([]models.VillageRecord), nil
	}
	villages, err := c.store.Villages(ctx, codes)
	if err != nil {
		return nil, err
	}
	c.set(key, villages)
	return villages, nil
}

func (c *CachedLocations) set(key string, value interface{}) {
	c.cache.Set(key, value, cache.DefaultExpiration)
	log.Debug().Str("key", key).Msg("lookup cached")
}

// NormalizeCodes returns codes sorted ascending with duplicates removed.
func NormalizeCodes(codes []int64) []int64 {
	out := make([]int64, 0, len(codes))
	seen := make(map[int64]struct{}, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func cacheKey(prefix string, codes ...int64) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, c := range codes {
		fmt.Fprintf(&b, ":%d", c)
	}
	return b.String()
}
