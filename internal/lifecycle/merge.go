// Package lifecycle owns the job state machine: how a re-observed
// posting merges into its existing record, how postings age out, and
// how admin bulk actions override the organic lifecycle.
package lifecycle

import (
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
)

// Merge folds a new observation into an existing record and returns
// the merged copy. The old record is never mutated.
//
// Identity and history are immutable: ID and PostedDate always come
// from the old record. Content fields are refreshed from the
// observation only where the old record is empty, so a prior manual
// edit or richer description is never clobbered by a sparser
// re-scrape.
//
// A fingerprint match means the source still lists the job, so an
// expired or inactive record is reactivated with a fresh expiry.
func Merge(old, obs *domain.Job, now time.Time, ttl time.Duration) *domain.Job {
	merged := old.Clone()

	merged.Title = fillIfEmpty(old.Title, obs.Title)
	merged.Company = fillIfEmpty(old.Company, obs.Company)
	merged.Location = fillIfEmpty(old.Location, obs.Location)
	merged.Description = fillIfEmpty(old.Description, obs.Description)
	merged.Salary = fillIfEmpty(old.Salary, obs.Salary)
	merged.URL = fillIfEmpty(old.URL, obs.URL)
	merged.Category = fillIfEmpty(old.Category, obs.Category)
	merged.JobType = fillIfEmpty(old.JobType, obs.JobType)

	if old.Status == domain.StatusExpired || old.Status == domain.StatusInactive {
		merged.Status = domain.StatusActive
		merged.ExpiresAt = now.Add(ttl)
	}

	merged.UpdatedAt = now
	return merged
}

func fillIfEmpty(old, observed string) string {
	if old != "" {
		return old
	}
	return observed
}
