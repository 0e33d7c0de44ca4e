package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
	"github.com/hiredeck/hiredeck/internal/index"
	"github.com/hiredeck/hiredeck/internal/logger"
	"github.com/hiredeck/hiredeck/internal/normalize"
	"github.com/hiredeck/hiredeck/internal/sources"
	filestore "github.com/hiredeck/hiredeck/internal/store/file"
	redisstore "github.com/hiredeck/hiredeck/internal/store/redis"
)

// Pipeline wires producers through normalize -> dedupe -> merge ->
// commit. One Run is one ingestion cycle across all producers.
type Pipeline struct {
	producers     []sources.Producer
	store         *filestore.Store
	index         *index.MemoryIndex
	cache         *redisstore.Store // nil when Redis is unavailable
	logger        logger.Logger
	ttl           time.Duration
	sourceTimeout time.Duration
	now           func() time.Time
}

// NewPipeline creates an ingestion pipeline. cache may be nil.
func NewPipeline(
	producers []sources.Producer,
	store *filestore.Store,
	idx *index.MemoryIndex,
	cache *redisstore.Store,
	log logger.Logger,
	ttl time.Duration,
	sourceTimeout time.Duration,
) *Pipeline {
	if ttl <= 0 {
		ttl = normalize.DefaultTTL
	}
	return &Pipeline{
		producers:     producers,
		store:         store,
		index:         idx,
		cache:         cache,
		logger:        log,
		ttl:           ttl,
		sourceTimeout: sourceTimeout,
		now:           time.Now,
	}
}

// Run executes one ingestion cycle. Producer failures and per-record
// validation failures are isolated and reported; only a store write
// failure marks the run itself as failed, and in that case previously
// committed state is untouched.
func (p *Pipeline) Run(ctx context.Context) *RunReport {
	now := p.now()
	report := &RunReport{StartedAt: now}

	var incoming []*domain.Job
	for _, prod := range p.producers {
		sr := p.runProducer(ctx, prod, now, &incoming)
		report.Sources = append(report.Sources, sr)
		report.Skipped += sr.Skipped
	}

	if len(incoming) == 0 {
		p.logger.Info("ingest cycle produced no records, nothing to commit")
		report.FinishedAt = p.now()
		p.publishReport(ctx, report)
		return report
	}

	next, err := p.store.Mutate(func(existing []*domain.Job) ([]*domain.Job, error) {
		batch := Dedupe(existing, incoming, now, p.ttl)
		report.Inserted = len(batch.Inserts)
		report.Updated = len(batch.Updates)
		report.FallbackMerges = batch.FallbackMerges
		return Apply(existing, batch), nil
	})
	if err != nil {
		var werr *filestore.WriteError
		if errors.As(err, &werr) {
			p.logger.Error("ingest commit failed, batch not applied",
				logger.String("op", werr.Op),
				logger.Error(werr.Err))
		} else {
			p.logger.Error("ingest commit failed", logger.Error(err))
		}
		report.Err = err.Error()
		report.FinishedAt = p.now()
		p.publishReport(ctx, report)
		return report
	}

	p.index.Replace(next)
	p.index.MarkIngest(now)

	if report.FallbackMerges > 0 {
		p.logger.Warn("heuristic merges without url identity, review for collisions",
			logger.Int("count", report.FallbackMerges))
	}
	p.logger.Info("ingest cycle committed",
		logger.Int("inserted", report.Inserted),
		logger.Int("updated", report.Updated),
		logger.Int("skipped", report.Skipped),
		logger.Int("total", len(next)))

	report.FinishedAt = p.now()
	p.publishReport(ctx, report)
	return report
}

// runProducer fetches and normalizes one producer's batch, appending
// good records to incoming.
func (p *Pipeline) runProducer(ctx context.Context, prod sources.Producer, now time.Time, incoming *[]*domain.Job) SourceReport {
	sr := SourceReport{Source: prod.Name()}

	fetchCtx := ctx
	if p.sourceTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, p.sourceTimeout)
		defer cancel()
	}

	raws, err := prod.Fetch(fetchCtx)
	if err != nil {
		// Degrades to zero records from this source for this cycle.
		p.logger.Warn("producer failed, skipping for this cycle",
			logger.String("source", string(prod.Name())),
			logger.Error(err))
		sr.Err = err.Error()
		return sr
	}
	sr.Fetched = len(raws)

	for _, raw := range raws {
		job, err := normalize.Normalize(raw, prod.Name(), now, p.ttl)
		if err != nil {
			var verr *normalize.ValidationError
			if errors.As(err, &verr) {
				p.logger.Debug("skipping invalid record",
					logger.String("source", string(prod.Name())),
					logger.String("field", verr.Field))
				sr.Skipped++
				continue
			}
			sr.Skipped++
			continue
		}
		*incoming = append(*incoming, job)
	}

	return sr
}

// publishReport pushes the run report to Redis and drops stale cached
// query pages. Best effort on both counts.
func (p *Pipeline) publishReport(ctx context.Context, report *RunReport) {
	if p.cache == nil {
		return
	}
	if err := p.cache.FlushQueryCache(ctx); err != nil {
		p.logger.Warn("failed to flush query cache", logger.Error(err))
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := p.cache.SaveLastRun(ctx, payload); err != nil {
		p.logger.Warn("failed to publish ingest report", logger.Error(err))
	}
}
