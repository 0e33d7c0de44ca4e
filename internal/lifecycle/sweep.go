package lifecycle

import (
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
)

// SweepExpired transitions every active record past its expiry to
// expired, in place, and returns the number of transitions.
//
// Idempotent: a second sweep over the same data changes nothing.
// Records are never deleted; expired jobs stay queryable by explicit
// filter.
func SweepExpired(jobs []*domain.Job, now time.Time) int {
	count := 0
	for _, j := range jobs {
		if j.Status != domain.StatusActive {
			continue
		}
		if !j.ExpiredBy(now) {
			continue
		}
		j.Status = domain.StatusExpired
		j.UpdatedAt = now
		count++
	}
	return count
}
