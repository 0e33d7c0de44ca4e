// Package normalize converts raw producer records into canonical
// domain.Job values: validation, id assignment, date parsing and
// keyword classification. Pure over its inputs; the clock is a
// parameter so ingestion runs are reproducible in tests.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hiredeck/hiredeck/internal/domain"
	"github.com/hiredeck/hiredeck/internal/sources"
)

// DefaultTTL is the posting lifetime applied when no explicit expiry
// is supplied.
const DefaultTTL = 30 * 24 * time.Hour

// ValidationError reports a raw record missing a required field.
// Callers skip and report the record; it is never fatal to a batch.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// dateLayouts are tried in order when parsing source-provided dates.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts one raw record into a canonical Job.
//
// Returns a *ValidationError when title or company is empty after
// trimming. Unparseable posted dates fail closed to now; a missing
// timestamp must never block ingestion. ttl <= 0 falls back to
// DefaultTTL.
func Normalize(raw sources.RawJob, src domain.Source, now time.Time, ttl time.Duration) (*domain.Job, error) {
	title := strings.TrimSpace(raw.Title)
	company := strings.TrimSpace(raw.Company)
	location := strings.TrimSpace(raw.Location)
	description := strings.TrimSpace(raw.Description)

	if title == "" {
		return nil, &ValidationError{Field: "title"}
	}
	if company == "" {
		return nil, &ValidationError{Field: "company"}
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	posted := parseDate(raw.PostedDate, now)

	expires := raw.ExpiresAt
	if expires.IsZero() {
		expires = posted.Add(ttl)
	}

	job := &domain.Job{
		ID:          jobID(raw.SourceID, src, now),
		Title:       title,
		Company:     company,
		Location:    location,
		Description: description,
		Salary:      strings.TrimSpace(raw.Salary),
		URL:         strings.TrimSpace(raw.URL),
		Source:      src,
		EmployerID:  raw.EmployerID,
		Status:      domain.StatusActive,
		PostedDate:  posted,
		ExpiresAt:   expires,
		UpdatedAt:   now,
	}

	// Source-supplied classification wins; derive only what is missing.
	job.Category = raw.Category
	if job.Category == "" {
		job.Category = domain.ClassifyCategory(title, description)
	}
	job.JobType = raw.JobType
	if job.JobType == "" {
		job.JobType = domain.ClassifyJobType(title, description)
	}
	if raw.Remote != nil {
		job.Remote = *raw.Remote
	} else {
		job.Remote = domain.IsRemote(title, description, location)
	}
	if raw.EntryLevel != nil {
		job.EntryLevel = *raw.EntryLevel
	} else {
		job.EntryLevel = domain.IsEntryLevel(title, description)
	}

	return job, nil
}

// jobID keeps a source-provided id as-is; otherwise it generates an
// opaque id embedding the source tag and ingestion timestamp so ids
// from different sources can never collide.
func jobID(sourceID string, src domain.Source, now time.Time) string {
	if id := strings.TrimSpace(sourceID); id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d-%s", src, now.Unix(), uuid.NewString())
}

func parseDate(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return now
}
