// Package scheduler runs the periodic jobs: ingestion cycles on a
// cron spec and expiry sweeps on a ticker.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/hiredeck/hiredeck/internal/ingest"
	"github.com/hiredeck/hiredeck/internal/logger"
)

// IngestCycle triggers pipeline runs on a cron schedule, plus an
// immediate run at startup and on manual trigger.
type IngestCycle struct {
	cron          *cron.Cron
	pipeline      *ingest.Pipeline
	logger        logger.Logger
	spec          string // cron spec, ex: "@every 6h"
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewIngestCycle creates the scheduled ingestion driver.
// manualTrigger allows the admin endpoint to force a cycle.
func NewIngestCycle(
	pipeline *ingest.Pipeline,
	log logger.Logger,
	spec string,
	manualTrigger chan struct{},
) *IngestCycle {
	return &IngestCycle{
		cron:          cron.New(),
		pipeline:      pipeline,
		logger:        log,
		spec:          spec,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start registers the cron job, starts the scheduler and runs one
// cycle immediately so the store is populated without waiting for the
// first tick.
func (ic *IngestCycle) Start(ctx context.Context) error {
	if _, err := ic.cron.AddFunc(ic.spec, func() { ic.run(ctx) }); err != nil {
		return fmt.Errorf("invalid ingest cron spec %q: %w", ic.spec, err)
	}
	ic.cron.Start()

	go ic.run(ctx)

	go func() {
		for {
			select {
			case <-ic.manualTrigger:
				ic.logger.Info("manual ingest triggered")
				ic.run(ctx)
			case <-ic.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the cron scheduler and the trigger listener.
func (ic *IngestCycle) Stop() {
	ic.cron.Stop()
	close(ic.stopCh)
}

func (ic *IngestCycle) run(ctx context.Context) {
	report := ic.pipeline.Run(ctx)
	if report.Err != "" {
		ic.logger.Error("ingest cycle failed",
			logger.String("error", report.Err))
		return
	}
	ic.logger.Info("ingest cycle finished",
		logger.Int("sources", len(report.Sources)),
		logger.Int("inserted", report.Inserted),
		logger.Int("updated", report.Updated),
		logger.Int("skipped", report.Skipped),
		logger.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)))
}
