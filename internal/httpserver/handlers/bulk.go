package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
	"github.com/hiredeck/hiredeck/internal/httpserver/deps"
	"github.com/hiredeck/hiredeck/internal/lifecycle"
	"github.com/hiredeck/hiredeck/internal/logger"
)

type bulkRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids"`
}

// BulkAction applies an admin action (activate, deactivate, feature,
// unfeature, urgent, unurgent, delete) to a set of job ids in one
// store commit.
func BulkAction(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if len(req.IDs) == 0 {
			writeError(w, http.StatusBadRequest, "ids is required")
			return
		}

		now := time.Now()
		var result lifecycle.ActionResult

		next, err := d.Store.Mutate(func(jobs []*domain.Job) ([]*domain.Job, error) {
			out, res := lifecycle.ApplyBulkAction(jobs, req.IDs, lifecycle.Action(req.Action), now)
			result = res
			return out, nil
		})
		if err != nil {
			d.Logger.Error("bulk action commit failed",
				logger.String("action", req.Action),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "commit failed, no changes applied")
			return
		}

		d.MemoryIndex.Replace(next)
		if d.Cache != nil {
			if err := d.Cache.FlushQueryCache(r.Context()); err != nil {
				d.Logger.Warn("failed to flush query cache after bulk action", logger.Error(err))
			}
		}

		d.Logger.Info("bulk action applied",
			logger.String("action", req.Action),
			logger.Int("ids", len(req.IDs)),
			logger.Int("applied", result.Applied),
			logger.Int("deleted", result.Deleted),
			logger.Int("skipped", result.Skipped))

		writeJSON(w, http.StatusOK, result)
	}
}
