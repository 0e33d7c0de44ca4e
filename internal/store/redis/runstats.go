package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SaveLastRun stores the JSON report of the most recent ingestion run.
// No TTL: the last report stays until the next run replaces it.
func (s *Store) SaveLastRun(ctx context.Context, report []byte) error {
	if err := s.client.Set(ctx, KeyLastRun, report, 0).Err(); err != nil {
		return fmt.Errorf("failed to save ingest report: %w", err)
	}
	return nil
}

// GetLastRun retrieves the last ingestion report, or nil, nil when no
// run has been recorded yet.
func (s *Store) GetLastRun(ctx context.Context) ([]byte, error) {
	payload, err := s.client.Get(ctx, KeyLastRun).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ingest report: %w", err)
	}
	return payload, nil
}
