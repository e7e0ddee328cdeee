package alias

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempBoltCache(t *testing.T) *BoltCache {
	t.Helper()
	dir := t.TempDir()
	cache, err := OpenBoltCache(filepath.Join(dir, "sub", "aliases.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestBoltCache_PutAndGet(t *testing.T) {
	cache := tempBoltCache(t)
	res := &Resolution{Alias: testAlias, Address: testAddress, TxID: testTxID, BlockHeight: 792419}

	_, err := cache.Get(testAlias)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Put(res))
	got, err := cache.Get(testAlias)
	require.NoError(t, err)
	assert.Equal(t, res, got)

	n, err := cache.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBoltCache_PutInvalid(t *testing.T) {
	cache := tempBoltCache(t)
	assert.ErrorIs(t, cache.Put(nil), ErrNilParam)
	assert.ErrorIs(t, cache.Put(&Resolution{Alias: "BAD"}), ErrInvalidName)
}

func TestBoltCache_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.db")
	cache, err := OpenBoltCache(path)
	require.NoError(t, err)
	require.NoError(t, cache.Put(&Resolution{Alias: testAlias, Address: testAddress}))
	require.NoError(t, cache.Close())

	reopened, err := OpenBoltCache(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get(testAlias)
	require.NoError(t, err)
	assert.Equal(t, testAddress, got.Address)
}

func TestCachedResolver(t *testing.T) {
	var hits atomic.Int32
	srv := indexer(t, &hits)
	r := &CachedResolver{
		Next:  NewHTTPResolver(srv.URL, WithRateLimit(0)),
		Cache: tempBoltCache(t),
	}

	for i := 0; i < 3; i++ {
		res, err := r.Resolve(context.Background(), "twelvechar12.xec")
		require.NoError(t, err)
		assert.Equal(t, testAddress, res.Address)
	}
	assert.Equal(t, int32(1), hits.Load(), "only the first lookup reaches the indexer")
}

func TestCachedResolver_FailuresNotCached(t *testing.T) {
	var hits atomic.Int32
	srv := indexer(t, &hits)
	cache := tempBoltCache(t)
	r := &CachedResolver{Next: NewHTTPResolver(srv.URL, WithRateLimit(0)), Cache: cache}

	for i := 0; i < 2; i++ {
		_, err := r.Resolve(context.Background(), "notregistered")
		assert.ErrorIs(t, err, ErrNotRegistered)
	}
	assert.Equal(t, int32(2), hits.Load())

	n, err := cache.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCachedResolver_Nil(t *testing.T) {
	_, err := (&CachedResolver{}).Resolve(context.Background(), testAlias)
	assert.ErrorIs(t, err, ErrNilParam)
}
