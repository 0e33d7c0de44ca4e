package ingest

import (
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
)

// SourceReport is the per-producer outcome of one ingestion cycle.
// A producer failure is isolated here; it never aborts the cycle.
type SourceReport struct {
	Source  domain.Source `json:"source"`
	Fetched int           `json:"fetched"`
	Skipped int           `json:"skipped"` // records that failed validation
	Err     string        `json:"error,omitempty"`
}

// RunReport summarizes one ingestion run for logging and the admin
// status endpoint.
type RunReport struct {
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Sources    []SourceReport `json:"sources"`

	Inserted       int    `json:"inserted"`
	Updated        int    `json:"updated"`
	Skipped        int    `json:"skipped"`
	FallbackMerges int    `json:"fallbackMerges"`
	Err            string `json:"error,omitempty"` // set when the commit itself failed
}
