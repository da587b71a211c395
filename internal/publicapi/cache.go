package publicapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"authsvc/internal/logger"
	"authsvc/internal/models"

	"github.com/redis/go-redis/v9"
)

const entriesCacheKey = "publicapi:entries"

// Source is anything that yields the directory; *Client implements it.
type Source interface {
	Entries(ctx context.Context) ([]models.PublicEntry, error)
}

// CachedSource serves the directory from redis and refills it from the
// upstream on a miss. Redis failures are logged and bypassed.
type CachedSource struct {
	next  Source
	redis *redis.Client
	ttl   time.Duration
	log   *logger.Logger
}

func NewCachedSource(next Source, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CachedSource {
	if log == nil {
		log = logger.Nop()
	}
	return &CachedSource{next: next, redis: rdb, ttl: ttl, log: log}
}

func (s *CachedSource) Entries(ctx context.Context) ([]models.PublicEntry, error) {
	if entries, ok := s.load(ctx); ok {
		return entries, nil
	}

	entries, err := s.next.Entries(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, entries)
	return entries, nil
}

func (s *CachedSource) load(ctx context.Context) ([]models.PublicEntry, bool) {
	raw, err := s.redis.Get(ctx, entriesCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warnw("publicapi_cache_get_failed", "err", err)
		}
		return nil, false
	}
	var entries []models.PublicEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.log.Warnw("publicapi_cache_decode_failed", "err", err)
		return nil, false
	}
	return entries, true
}

func (s *CachedSource) store(ctx context.Context, entries []models.PublicEntry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		s.log.Warnw("publicapi_cache_encode_failed", "err", err)
		return
	}
	if err := s.redis.Set(ctx, entriesCacheKey, raw, s.ttl).Err(); err != nil {
		s.log.Warnw("publicapi_cache_set_failed", "err", err)
	}
}

// NewRedisClient parses url, connects and verifies connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
