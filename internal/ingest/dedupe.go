// Package ingest runs the write path: normalized records from every
// producer are deduplicated against the store and against each other,
// merged, and committed as one atomic snapshot replace.
package ingest

import (
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
	"github.com/hiredeck/hiredeck/internal/lifecycle"
)

// Batch is the outcome of deduplicating one incoming batch: records
// to insert and merged records to write back over existing ones.
type Batch struct {
	Inserts []*domain.Job
	Updates []*domain.Job

	// FallbackMerges counts merges decided by the title+company+location
	// heuristic rather than a URL match. These can be false positives
	// and are surfaced for audit.
	FallbackMerges int
}

// Dedupe matches incoming normalized records against the existing
// collection by fingerprint. A match becomes a merged update; a miss
// becomes an insert. Later records matching an earlier record of the
// same batch fold into it, so any single call yields at most one
// record per fingerprint. existing is never mutated.
func Dedupe(existing, incoming []*domain.Job, now time.Time, ttl time.Duration) Batch {
	byFingerprint := make(map[string]*domain.Job, len(existing))
	for _, j := range existing {
		fp := domain.Fingerprint(j)
		if _, dup := byFingerprint[fp]; !dup {
			byFingerprint[fp] = j
		}
	}

	var batch Batch
	insertAt := make(map[string]int)
	updateAt := make(map[string]int)

	for _, rec := range incoming {
		fp := domain.Fingerprint(rec)
		fallback := !domain.HasUsableURL(rec)

		switch {
		case contains(insertAt, fp):
			i := insertAt[fp]
			batch.Inserts[i] = lifecycle.Merge(batch.Inserts[i], rec, now, ttl)
			if fallback {
				batch.FallbackMerges++
			}

		case contains(updateAt, fp):
			i := updateAt[fp]
			batch.Updates[i] = lifecycle.Merge(batch.Updates[i], rec, now, ttl)
			if fallback {
				batch.FallbackMerges++
			}

		default:
			if old, ok := byFingerprint[fp]; ok {
				batch.Updates = append(batch.Updates, lifecycle.Merge(old, rec, now, ttl))
				updateAt[fp] = len(batch.Updates) - 1
				if fallback {
					batch.FallbackMerges++
				}
				continue
			}
			batch.Inserts = append(batch.Inserts, rec)
			insertAt[fp] = len(batch.Inserts) - 1
		}
	}

	return batch
}

// Apply folds a deduplicated batch into the collection: updates
// replace their existing record by ID, inserts are appended, both in
// the order produced.
func Apply(existing []*domain.Job, batch Batch) []*domain.Job {
	byID := make(map[string]int, len(existing))
	out := make([]*domain.Job, len(existing))
	for i, j := range existing {
		out[i] = j
		byID[j.ID] = i
	}

	for _, u := range batch.Updates {
		if i, ok := byID[u.ID]; ok {
			out[i] = u
		}
	}
	out = append(out, batch.Inserts...)
	return out
}

func contains(m map[string]int, key string) bool {
	_, ok := m[key]
	return ok
}
