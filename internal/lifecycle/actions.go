package lifecycle

import (
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
)

// Action is an admin bulk override.
type Action string

const (
	ActionActivate   Action = "activate"
	ActionDeactivate Action = "deactivate"
	ActionFeature    Action = "feature"
	ActionUnfeature  Action = "unfeature"
	ActionUrgent     Action = "urgent"
	ActionUnurgent   Action = "unurgent"
	ActionDelete     Action = "delete"
)

// ActionResult counts what a bulk action did.
type ActionResult struct {
	Applied int `json:"applied"`
	Deleted int `json:"deleted"`
	Skipped int `json:"skipped"` // unknown ids or unknown action
}

// ApplyBulkAction applies one action to every id in ids and returns
// the resulting collection. activate/deactivate set status directly,
// bypassing expiry computation: a manual override wins until the next
// organic re-ingest or sweep. delete removes records entirely.
// An unknown action is a per-record no-op, not a batch failure.
func ApplyBulkAction(jobs []*domain.Job, ids []string, action Action, now time.Time) ([]*domain.Job, ActionResult) {
	var res ActionResult

	targets := make(map[string]bool, len(ids))
	for _, id := range ids {
		targets[id] = true
	}

	out := make([]*domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if !targets[j.ID] {
			out = append(out, j)
			continue
		}
		delete(targets, j.ID)

		if action == ActionDelete {
			res.Deleted++
			continue
		}

		if apply(j, action) {
			j.UpdatedAt = now
			res.Applied++
		} else {
			res.Skipped++
		}
		out = append(out, j)
	}

	// Ids that matched nothing in the store.
	res.Skipped += len(targets)

	return out, res
}

func apply(j *domain.Job, action Action) bool {
	switch action {
	case ActionActivate:
		j.Status = domain.StatusActive
	case ActionDeactivate:
		j.Status = domain.StatusInactive
	case ActionFeature:
		j.Featured = true
	case ActionUnfeature:
		j.Featured = false
	case ActionUrgent:
		j.Urgent = true
	case ActionUnurgent:
		j.Urgent = false
	default:
		return false
	}
	return true
}
