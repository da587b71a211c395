package publicapi

import (
	"context"
	"errors"
	"testing"
	"time"

	"authsvc/internal/models"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	entries []models.PublicEntry
	err     error
	calls   int
}

func (s *countingSource) Entries(context.Context) ([]models.PublicEntry, error) {
	s.calls++
	return s.entries, s.err
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return mr, rdb
}

func TestCachedSource_MissThenHit(t *testing.T) {
	mr, rdb := setupRedis(t)
	upstream := &countingSource{entries: []models.PublicEntry{{API: "Cat Facts", Category: "Animals"}}}
	src := NewCachedSource(upstream, rdb, time.Minute, nil)

	first, err := src.Entries(context.Background())
	require.NoError(t, err)
	second, err := src.Entries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, upstream.calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(entriesCacheKey))
	assert.Equal(t, time.Minute, mr.TTL(entriesCacheKey))
}

func TestCachedSource_ExpiryRefetches(t *testing.T) {
	mr, rdb := setupRedis(t)
	upstream := &countingSource{entries: []models.PublicEntry{{API: "Dogs"}}}
	src := NewCachedSource(upstream, rdb, time.Minute, nil)

	_, err := src.Entries(context.Background())
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = src.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}

func TestCachedSource_UpstreamErrorNotCached(t *testing.T) {
	mr, rdb := setupRedis(t)
	upstream := &countingSource{err: errors.New("upstream down")}
	src := NewCachedSource(upstream, rdb, time.Minute, nil)

	_, err := src.Entries(context.Background())
	require.Error(t, err)
	assert.False(t, mr.Exists(entriesCacheKey))
}

func TestCachedSource_RedisDownFallsThrough(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	upstream := &countingSource{entries: []models.PublicEntry{{API: "Books"}}}
	src := NewCachedSource(upstream, rdb, time.Minute, nil)

	entries, err := src.Entries(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, upstream.calls)
}

func TestCachedSource_CorruptEntryRefetches(t *testing.T) {
	mr, rdb := setupRedis(t)
	require.NoError(t, mr.Set(entriesCacheKey, "{not json"))

	upstream := &countingSource{entries: []models.PublicEntry{{API: "Jokes"}}}
	src := NewCachedSource(upstream, rdb, time.Minute, nil)

	entries, err := src.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jokes", entries[0].API)
	assert.Equal(t, 1, upstream.calls)
}

func TestNewRedisClient(t *testing.T) {
	mr, _ := setupRedis(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = NewRedisClient(context.Background(), "")
	assert.Error(t, err)

	_, err = NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}
