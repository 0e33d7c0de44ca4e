package ingest

import (
	"testing"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
)

var (
	dedupeNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	dedupeTTL = 30 * 24 * time.Hour
)

func activeJob(id, title, company, url string) *domain.Job {
	return &domain.Job{
		ID:      id,
		Title:   title,
		Company: company,
		URL:     url,
		Status:  domain.StatusActive,
	}
}

func TestDedupeAllNew(t *testing.T) {
	incoming := []*domain.Job{
		activeJob("a", "Engineer", "Acme", "https://x.com/1"),
		activeJob("b", "Barista", "Coffee Co", "https://x.com/2"),
	}

	batch := Dedupe(nil, incoming, dedupeNow, dedupeTTL)

	if len(batch.Inserts) != 2 || len(batch.Updates) != 0 {
		t.Errorf("Dedupe() = %d inserts, %d updates, want 2/0", len(batch.Inserts), len(batch.Updates))
	}
}

func TestDedupeMatchBecomesUpdate(t *testing.T) {
	existing := []*domain.Job{
		activeJob("old-1", "Engineer", "Acme", "https://x.com/1"),
	}
	incoming := []*domain.Job{
		activeJob("new-1", "Senior Engineer", "Acme", "https://x.com/1"),
		activeJob("new-2", "Barista", "Coffee Co", "https://x.com/2"),
	}

	batch := Dedupe(existing, incoming, dedupeNow, dedupeTTL)

	if len(batch.Updates) != 1 || len(batch.Inserts) != 1 {
		t.Fatalf("Dedupe() = %d inserts, %d updates, want 1/1", len(batch.Inserts), len(batch.Updates))
	}
	if batch.Updates[0].ID != "old-1" {
		t.Errorf("merged update ID = %q, want the existing record's old-1", batch.Updates[0].ID)
	}
	if batch.FallbackMerges != 0 {
		t.Errorf("FallbackMerges = %d, want 0 for url matches", batch.FallbackMerges)
	}
}

func TestDedupeFallbackMergeCounted(t *testing.T) {
	existing := []*domain.Job{
		{ID: "old-1", Title: "Barista", Company: "Coffee Co", Location: "Seattle", Status: domain.StatusActive},
	}
	incoming := []*domain.Job{
		{ID: "new-1", Title: "Barista", Company: "Coffee Co", Location: "Seattle", Status: domain.StatusActive},
	}

	batch := Dedupe(existing, incoming, dedupeNow, dedupeTTL)

	if len(batch.Updates) != 1 {
		t.Fatalf("Dedupe() updates = %d, want 1", len(batch.Updates))
	}
	if batch.FallbackMerges != 1 {
		t.Errorf("FallbackMerges = %d, want 1 for url-less match", batch.FallbackMerges)
	}
}

func TestDedupeBatchInternalDuplicates(t *testing.T) {
	// Two producers observe the same posting in one cycle.
	incoming := []*domain.Job{
		activeJob("a", "Engineer", "Acme", "https://x.com/1"),
		{ID: "b", Title: "Engineer", Company: "Acme", URL: "https://x.com/1",
			Salary: "$150k", Status: domain.StatusActive},
	}

	batch := Dedupe(nil, incoming, dedupeNow, dedupeTTL)

	if len(batch.Inserts) != 1 {
		t.Fatalf("Dedupe() inserts = %d, want 1 folded record", len(batch.Inserts))
	}
	got := batch.Inserts[0]
	if got.ID != "a" {
		t.Errorf("folded insert ID = %q, want first observation's a", got.ID)
	}
	if got.Salary != "$150k" {
		t.Errorf("folded insert Salary = %q, want filled from second observation", got.Salary)
	}
}

func TestDedupeBatchInternalDuplicateOfUpdate(t *testing.T) {
	existing := []*domain.Job{
		activeJob("old-1", "Engineer", "Acme", "https://x.com/1"),
	}
	incoming := []*domain.Job{
		activeJob("new-1", "Engineer", "Acme", "https://x.com/1"),
		{ID: "new-2", Title: "Engineer", Company: "Acme", URL: "https://x.com/1",
			Description: "full posting text", Status: domain.StatusActive},
	}

	batch := Dedupe(existing, incoming, dedupeNow, dedupeTTL)

	if len(batch.Updates) != 1 || len(batch.Inserts) != 0 {
		t.Fatalf("Dedupe() = %d inserts, %d updates, want 0/1", len(batch.Inserts), len(batch.Updates))
	}
	got := batch.Updates[0]
	if got.ID != "old-1" {
		t.Errorf("update ID = %q, want old-1", got.ID)
	}
	if got.Description != "full posting text" {
		t.Errorf("update Description = %q, want folded from second observation", got.Description)
	}
}

func TestDedupeReactivatesExpired(t *testing.T) {
	existing := []*domain.Job{
		{ID: "old-1", Title: "Engineer", Company: "Acme", URL: "https://x.com/1",
			Status: domain.StatusExpired, ExpiresAt: dedupeNow.Add(-time.Hour)},
	}
	incoming := []*domain.Job{
		activeJob("new-1", "Engineer", "Acme", "https://x.com/1"),
	}

	batch := Dedupe(existing, incoming, dedupeNow, dedupeTTL)

	if len(batch.Updates) != 1 {
		t.Fatalf("Dedupe() updates = %d, want 1", len(batch.Updates))
	}
	got := batch.Updates[0]
	if got.Status != domain.StatusActive {
		t.Errorf("reobserved job status = %q, want active", got.Status)
	}
	if !got.ExpiresAt.Equal(dedupeNow.Add(dedupeTTL)) {
		t.Errorf("reobserved job ExpiresAt = %v, want refreshed", got.ExpiresAt)
	}
}

func TestDedupeDoesNotMutateExisting(t *testing.T) {
	existing := []*domain.Job{
		activeJob("old-1", "Engineer", "Acme", "https://x.com/1"),
	}
	incoming := []*domain.Job{
		{ID: "new-1", Title: "Engineer", Company: "Acme", URL: "https://x.com/1",
			Salary: "$99k", Status: domain.StatusActive},
	}

	_ = Dedupe(existing, incoming, dedupeNow, dedupeTTL)

	if existing[0].Salary != "" {
		t.Errorf("Dedupe() mutated existing record: %+v", existing[0])
	}
}

func TestApply(t *testing.T) {
	existing := []*domain.Job{
		activeJob("1", "Engineer", "Acme", "https://x.com/1"),
		activeJob("2", "Barista", "Coffee Co", "https://x.com/2"),
	}
	merged := activeJob("1", "Engineer", "Acme", "https://x.com/1")
	merged.Salary = "$130k"

	out := Apply(existing, Batch{
		Updates: []*domain.Job{merged},
		Inserts: []*domain.Job{activeJob("3", "Nurse", "Hospital", "https://x.com/3")},
	})

	if len(out) != 3 {
		t.Fatalf("Apply() len = %d, want 3", len(out))
	}
	if out[0].Salary != "$130k" {
		t.Errorf("Apply() did not replace job 1 in place")
	}
	if out[2].ID != "3" {
		t.Errorf("Apply() insert not appended, got %q last", out[2].ID)
	}
}
