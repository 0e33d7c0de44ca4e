// Package sources defines the producer boundary: every ingestion
// source (external API, RSS feed, seed file, employer submission)
// adapts its own wire shape into RawJob and exposes itself as a
// Producer. Per-source quirks stay behind the adapter; the pipeline
// only ever sees RawJob.
package sources

import (
	"context"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
)

// RawJob is the least-common-denominator input shape consumed by the
// normalizer. Only Title, Company and Location are expected; all other
// fields are optional hints the normalizer will derive when absent.
type RawJob struct {
	// SourceID is the producer's own identifier for this posting, if any.
	SourceID string

	Title       string
	Company     string
	Location    string
	Description string
	Salary      string
	URL         string

	// PostedDate is the raw date text as the source delivered it.
	// The normalizer parses it leniently and fails closed to "now".
	PostedDate string

	// ExpiresAt overrides the computed expiry when non-zero.
	ExpiresAt time.Time

	// Explicit classification from the source. Empty string / nil means
	// "not supplied": the normalizer derives a value and will never
	// overwrite one the source set.
	Category   string
	JobType    string
	Remote     *bool
	EntryLevel *bool

	// EmployerID is set for employer-submitted jobs only.
	EmployerID string
}

// Producer supplies a batch of raw jobs for one ingestion cycle.
// A failed or timed-out producer degrades to zero records from that
// source; it never aborts the other producers in the same cycle.
type Producer interface {
	Name() domain.Source
	Fetch(ctx context.Context) ([]RawJob, error)
}
