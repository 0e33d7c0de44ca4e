// Package redis caches rendered query pages and the last ingestion
// report. Everything here is best effort: the memory index is the
// read path of record, and a Redis outage only costs cache hits.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for the query cache and run stats.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// CacheQueryPage stores a rendered query result page.
func (s *Store) CacheQueryPage(ctx context.Context, query string, payload []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, QueryKey(query), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache query page: %w", err)
	}
	return nil
}

// GetCachedQueryPage retrieves a cached page. A cache miss returns
// nil, nil.
func (s *Store) GetCachedQueryPage(ctx context.Context, query string) ([]byte, error) {
	payload, err := s.client.Get(ctx, QueryKey(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached query page: %w", err)
	}
	return payload, nil
}

// FlushQueryCache drops every cached page. Called after any commit so
// readers never see pre-mutation results.
func (s *Store) FlushQueryCache(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixQuery+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush query cache: %w", err)
	}
	return nil
}
