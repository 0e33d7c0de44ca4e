package lifecycle

import (
	"testing"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
)

func actionFixture() []*domain.Job {
	return []*domain.Job{
		{ID: "1", Status: domain.StatusActive},
		{ID: "2", Status: domain.StatusExpired},
		{ID: "3", Status: domain.StatusActive, Featured: true},
	}
}

func TestApplyBulkActionActivate(t *testing.T) {
	now := time.Now()
	out, res := ApplyBulkAction(actionFixture(), []string{"2"}, ActionActivate, now)

	if res.Applied != 1 || res.Deleted != 0 || res.Skipped != 0 {
		t.Errorf("result = %+v, want 1 applied", res)
	}
	for _, j := range out {
		if j.ID == "2" && j.Status != domain.StatusActive {
			t.Errorf("job 2 status = %q, want active", j.Status)
		}
	}
}

func TestApplyBulkActionDelete(t *testing.T) {
	out, res := ApplyBulkAction(actionFixture(), []string{"1", "3"}, ActionDelete, time.Now())

	if res.Deleted != 2 {
		t.Errorf("deleted = %d, want 2", res.Deleted)
	}
	if len(out) != 1 || out[0].ID != "2" {
		t.Errorf("remaining = %d jobs, want only job 2", len(out))
	}
}

func TestApplyBulkActionFlagToggles(t *testing.T) {
	tests := []struct {
		action Action
		check  func(j *domain.Job) bool
	}{
		{ActionFeature, func(j *domain.Job) bool { return j.Featured }},
		{ActionUnfeature, func(j *domain.Job) bool { return !j.Featured }},
		{ActionUrgent, func(j *domain.Job) bool { return j.Urgent }},
		{ActionUnurgent, func(j *domain.Job) bool { return !j.Urgent }},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			out, res := ApplyBulkAction(actionFixture(), []string{"1"}, tt.action, time.Now())
			if res.Applied != 1 {
				t.Fatalf("applied = %d, want 1", res.Applied)
			}
			for _, j := range out {
				if j.ID == "1" && !tt.check(j) {
					t.Errorf("%s did not take effect on job 1", tt.action)
				}
			}
		})
	}
}

func TestApplyBulkActionUnknownIDs(t *testing.T) {
	out, res := ApplyBulkAction(actionFixture(), []string{"1", "ghost", "phantom"}, ActionDeactivate, time.Now())

	if res.Applied != 1 {
		t.Errorf("applied = %d, want 1", res.Applied)
	}
	if res.Skipped != 2 {
		t.Errorf("skipped = %d, want 2 unknown ids", res.Skipped)
	}
	if len(out) != 3 {
		t.Errorf("collection size = %d, want unchanged 3", len(out))
	}
}

func TestApplyBulkActionUnknownAction(t *testing.T) {
	out, res := ApplyBulkAction(actionFixture(), []string{"1"}, Action("explode"), time.Now())

	if res.Applied != 0 || res.Skipped != 1 {
		t.Errorf("result = %+v, want 1 skipped", res)
	}
	if len(out) != 3 {
		t.Errorf("collection size = %d, want unchanged 3", len(out))
	}
}
