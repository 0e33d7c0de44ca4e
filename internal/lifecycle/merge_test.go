package lifecycle

import (
	"testing"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
)

var (
	mergeNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	mergeTTL = 30 * 24 * time.Hour
)

func TestMergePreservesIdentity(t *testing.T) {
	posted := mergeNow.Add(-72 * time.Hour)
	old := &domain.Job{
		ID:         "orig-1",
		Title:      "Engineer",
		Company:    "Acme",
		Status:     domain.StatusActive,
		PostedDate: posted,
	}
	obs := &domain.Job{
		ID:         "new-9",
		Title:      "Engineer",
		Company:    "Acme",
		PostedDate: mergeNow,
	}

	merged := Merge(old, obs, mergeNow, mergeTTL)

	if merged.ID != "orig-1" {
		t.Errorf("Merge() ID = %q, want orig-1 (identity is immutable)", merged.ID)
	}
	if !merged.PostedDate.Equal(posted) {
		t.Errorf("Merge() PostedDate = %v, want original %v", merged.PostedDate, posted)
	}
	if !merged.UpdatedAt.Equal(mergeNow) {
		t.Errorf("Merge() UpdatedAt = %v, want %v", merged.UpdatedAt, mergeNow)
	}
}

func TestMergeFillsOnlyEmptyFields(t *testing.T) {
	old := &domain.Job{
		ID:          "1",
		Title:       "Engineer",
		Company:     "Acme",
		Description: "hand-curated description",
		Status:      domain.StatusActive,
	}
	obs := &domain.Job{
		Title:       "Engineer",
		Company:     "Acme",
		Description: "sparse re-scrape",
		Salary:      "$120k",
		URL:         "https://jobs.acme.com/1",
	}

	merged := Merge(old, obs, mergeNow, mergeTTL)

	if merged.Description != "hand-curated description" {
		t.Errorf("Merge() clobbered Description: %q", merged.Description)
	}
	if merged.Salary != "$120k" {
		t.Errorf("Merge() Salary = %q, want filled from observation", merged.Salary)
	}
	if merged.URL != "https://jobs.acme.com/1" {
		t.Errorf("Merge() URL = %q, want filled from observation", merged.URL)
	}
}

func TestMergeReactivates(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusExpired, domain.StatusInactive} {
		t.Run(string(status), func(t *testing.T) {
			old := &domain.Job{
				ID:        "1",
				Title:     "Engineer",
				Company:   "Acme",
				Status:    status,
				ExpiresAt: mergeNow.Add(-24 * time.Hour),
			}
			obs := &domain.Job{Title: "Engineer", Company: "Acme"}

			merged := Merge(old, obs, mergeNow, mergeTTL)

			if merged.Status != domain.StatusActive {
				t.Errorf("Merge() Status = %q, want active after re-observation", merged.Status)
			}
			want := mergeNow.Add(mergeTTL)
			if !merged.ExpiresAt.Equal(want) {
				t.Errorf("Merge() ExpiresAt = %v, want refreshed %v", merged.ExpiresAt, want)
			}
		})
	}
}

func TestMergeActiveKeepsExpiry(t *testing.T) {
	expires := mergeNow.Add(10 * 24 * time.Hour)
	old := &domain.Job{ID: "1", Title: "Engineer", Company: "Acme",
		Status: domain.StatusActive, ExpiresAt: expires}
	obs := &domain.Job{Title: "Engineer", Company: "Acme"}

	merged := Merge(old, obs, mergeNow, mergeTTL)
	if !merged.ExpiresAt.Equal(expires) {
		t.Errorf("Merge() ExpiresAt = %v, want unchanged %v for active record", merged.ExpiresAt, expires)
	}
}

func TestMergeDoesNotMutateOld(t *testing.T) {
	old := &domain.Job{ID: "1", Title: "Engineer", Company: "Acme",
		Status: domain.StatusExpired}
	obs := &domain.Job{Title: "Engineer", Company: "Acme", Salary: "$90k"}

	_ = Merge(old, obs, mergeNow, mergeTTL)

	if old.Status != domain.StatusExpired || old.Salary != "" {
		t.Errorf("Merge() mutated the old record: %+v", old)
	}
}
