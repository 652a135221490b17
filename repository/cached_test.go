package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iitbhu2k25/DSS-Nextjs/models"
)

type countingStore struct {
	calls     map[string]int
	lastCodes []int64
	err       error
}

func newCountingStore() *countingStore {
	return &countingStore{calls: map[string]int{}}
}

func (s *countingStore) States(context.Context) ([]models.State, error) {
	s.calls["states"]++
	if s.err != nil {
		return nil, s.err
	}
	return []models.State{{StateCode: 9, StateName: "Uttar Pradesh"}}, nil
}

func (s *countingStore) Districts(_ context.Context, stateCode int64) ([]models.District, error) {
	s.calls["districts"]++
	return []models.District{{DistrictCode: 187, DistrictName: "Varanasi", StateCode: stateCode}}, s.err
}

func (s *countingStore) Subdistricts(_ context.Context, codes []int64) ([]models.Subdistrict, error) {
	s.calls["subdistricts"]++
	s.lastCodes = codes
	return []models.Subdistrict{{SubdistrictCode: 980, SubdistrictName: "Pindra", DistrictCode: codes[0]}}, s.err
}

func (s *countingStore) Villages(_ context.Context, codes []int64) ([]models.VillageRecord, error) {
	s.calls["villages"]++
	s.lastCodes = codes
	return []models.VillageRecord{{VillageCode: 1, VillageName: "Rampur", SubdistrictCode: codes[0]}}, s.err
}

func newTestCache() *cache.Cache {
	return cache.New(time.Minute, 10*time.Minute)
}

func TestCachedLocations_HitsStoreOnce(t *testing.T) {
	store := newCountingStore()
	c := NewCachedLocations(store, newTestCache())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		states, err := c.States(ctx)
		require.NoError(t, err)
		assert.Len(t, states, 1)

		districts, err := c.Districts(ctx, 9)
		require.NoError(t, err)
		assert.Equal(t, int64(9), districts[0].StateCode)
	}

	assert.Equal(t, 1, store.calls["states"])
	assert.Equal(t, 1, store.calls["districts"])

	_, err := c.Districts(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, store.calls["districts"])
}

func TestCachedLocations_NormalizesCodeLists(t *testing.T) {
	store := newCountingStore()
	c := NewCachedLocations(store, newTestCache())
	ctx := context.Background()

	_, err := c.Villages(ctx, []int64{981, 980, 981})
	require.NoError(t, err)
	assert.Equal(t, []int64{980, 981}, store.lastCodes)

	_, err = c.Villages(ctx, []int64{980, 981})
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls["villages"])

	_, err = c.Subdistricts(ctx, []int64{187, 180})
	require.NoError(t, err)
	_, err = c.Subdistricts(ctx, []int64{180, 187, 187})
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls["subdistricts"])
	assert.Equal(t, []int64{180, 187}, store.lastCodes)
}

func TestCachedLocations_DoesNotCacheErrors(t *testing.T) {
	store := newCountingStore()
	store.err = errors.New("db down")
	c := NewCachedLocations(store, newTestCache())

	_, err := c.States(context.Background())
	require.Error(t, err)

	store.err = nil
	states, err := c.States(context.Background())
	require.NoError(t, err)
	assert.Len(t, states, 1)
	assert.Equal(t, 2, store.calls["states"])
}

func TestCachedLocations_Flush(t *testing.T) {
	store := newCountingStore()
	lookups := newTestCache()
	c := NewCachedLocations(store, lookups)

	_, _ = c.States(context.Background())
	lookups.Flush()
	_, _ = c.States(context.Background())

	assert.Equal(t, 2, store.calls["states"])
}

func TestNormalizeCodes(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 5}, NormalizeCodes([]int64{5, 1, 2, 5, 1}))
	assert.Empty(t, NormalizeCodes(nil))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "states", cacheKey("states"))
	assert.Equal(t, "villages:980:981", cacheKey("villages", 980, 981))
}
