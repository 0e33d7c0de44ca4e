package domain

import "time"

// Source tags where a job record was produced.
// Informational only: it never participates in identity or dedup.
type Source string

const (
	SourceIndeed    Source = "indeed"
	SourceLinkedIn  Source = "linkedin"
	SourceZip       Source = "ziprecruiter"
	SourceAdzuna    Source = "adzuna"
	SourceRSS       Source = "rss"
	SourceManual    Source = "manual"
	SourceEmployer  Source = "employer"
	SourceGenerated Source = "generated"
)

// Job is the canonical job posting record.
//
// It is NOT tied to any producer shape. All inputs (API fetches, RSS
// items, seed files, employer submissions) are normalized into this
// structure before touching the store.
//
// A Job is uniquely identified within the store by its ID; duplicate
// detection across observations uses Fingerprint instead.
type Job struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// Assigned at normalization time and never reassigned.
	ID string `json:"id"`

	// ─────────────────────────────
	// Posting content
	// ─────────────────────────────

	// Title is the job title. Required, non-empty after trim.
	Title string `json:"title"`

	// Company is the hiring company name. Required, non-empty after trim.
	Company string `json:"company"`

	// Location is the free-text posting location. Required.
	Location string `json:"location"`

	// Description is the free-text posting body. May be empty.
	Description string `json:"description,omitempty"`

	// Salary is the free-text salary range, if the source provided one.
	Salary string `json:"salary,omitempty"`

	// URL is the canonical apply link. Primary dedup signal when present.
	URL string `json:"url,omitempty"`

	// ─────────────────────────────
	// Provenance & observation
	// ─────────────────────────────

	// Source indicates which producer this record came from.
	Source Source `json:"source"`

	// EmployerID references the owning employer for employer-submitted
	// jobs. Empty for scraped/imported/generated records.
	EmployerID string `json:"employerId,omitempty"`

	// ─────────────────────────────
	// Classification (derived unless the source supplied them)
	// ─────────────────────────────

	// Category is the normalized job category, ex: "Marketing".
	Category string `json:"category"`

	// JobType is the employment type, ex: "full-time".
	JobType string `json:"jobType"`

	// Remote marks postings that allow remote work.
	Remote bool `json:"remote"`

	// EntryLevel marks postings suitable for candidates without experience.
	EntryLevel bool `json:"entryLevel"`

	// ─────────────────────────────
	// Lifecycle
	// ─────────────────────────────

	// Status is active, inactive or expired. Derived by the expiry
	// sweep, overridable by admin bulk actions.
	Status Status `json:"status"`

	// Featured and Urgent are admin/employer-controlled flags.
	// They never affect dedup or expiry.
	Featured bool `json:"featured,omitempty"`
	Urgent   bool `json:"urgent,omitempty"`

	// PostedDate is when the job was first observed or posted.
	// Immutable once set.
	PostedDate time.Time `json:"postedDate"`

	// ExpiresAt is PostedDate + TTL unless explicitly overridden.
	ExpiresAt time.Time `json:"expiresAt"`

	// UpdatedAt is set on every mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy. Job has no reference-typed fields, so a
// value copy is sufficient.
func (j *Job) Clone() *Job {
	cp := *j
	return &cp
}

// ExpiredBy reports whether the posting is past its expiry at now.
func (j *Job) ExpiredBy(now time.Time) bool {
	return !j.ExpiresAt.IsZero() && !now.Before(j.ExpiresAt)
}
