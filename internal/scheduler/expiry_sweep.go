package scheduler

import (
	"context"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
	"github.com/hiredeck/hiredeck/internal/index"
	"github.com/hiredeck/hiredeck/internal/lifecycle"
	"github.com/hiredeck/hiredeck/internal/logger"
	filestore "github.com/hiredeck/hiredeck/internal/store/file"
	redisstore "github.com/hiredeck/hiredeck/internal/store/redis"
)

// ExpirySweeper periodically transitions active jobs past their
// expiry to expired. Safe to re-run: a sweep over already-swept data
// commits nothing.
type ExpirySweeper struct {
	store    *filestore.Store
	index    *index.MemoryIndex
	cache    *redisstore.Store // nil when Redis is unavailable
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewExpirySweeper creates the sweeper.
func NewExpirySweeper(
	store *filestore.Store,
	idx *index.MemoryIndex,
	cache *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
) *ExpirySweeper {
	return &ExpirySweeper{
		store:    store,
		index:    idx,
		cache:    cache,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one sweep immediately, then sweeps on every tick.
func (es *ExpirySweeper) Start(ctx context.Context) error {
	if err := es.Sweep(ctx); err != nil {
		es.logger.Warn("initial expiry sweep failed", logger.Error(err))
	}

	ticker := time.NewTicker(es.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := es.Sweep(ctx); err != nil {
					es.logger.Error("expiry sweep failed", logger.Error(err))
				}
			case <-es.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the sweeper.
func (es *ExpirySweeper) Stop() {
	close(es.stopCh)
}

// Sweep expires overdue active records in one store critical section.
// When nothing is overdue the store is not rewritten at all, which is
// what makes repeated sweeps free.
func (es *ExpirySweeper) Sweep(ctx context.Context) error {
	now := time.Now()
	expired := 0

	// Cheap read-only pre-check against the index before taking the
	// store's critical section.
	overdue := false
	for _, j := range es.index.All() {
		if j.Status == domain.StatusActive && j.ExpiredBy(now) {
			overdue = true
			break
		}
	}
	if !overdue {
		es.index.MarkSweep(now)
		es.logger.Debug("no jobs to expire")
		return nil
	}

	next, err := es.store.Mutate(func(jobs []*domain.Job) ([]*domain.Job, error) {
		expired = lifecycle.SweepExpired(jobs, now)
		return jobs, nil
	})
	if err != nil {
		return err
	}

	es.index.Replace(next)
	es.index.MarkSweep(now)

	if expired > 0 {
		es.logger.Info("expiry sweep completed",
			logger.Int("expired", expired))
		if es.cache != nil {
			if err := es.cache.FlushQueryCache(ctx); err != nil {
				es.logger.Warn("failed to flush query cache after sweep", logger.Error(err))
			}
		}
	}

	return nil
}
