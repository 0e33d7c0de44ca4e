package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/hiredeck/hiredeck/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	JobsLoaded *int   `json:"jobs_loaded,omitempty"`
	LastIngest string `json:"last_ingest,omitempty"`
	LastSweep  string `json:"last_sweep,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports component status: job store freshness, sweep
// recency and Redis availability.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobCount := d.MemoryIndex.Count()

		components := map[string]componentStatus{
			"store": {
				OK:         jobCount > 0,
				JobsLoaded: &jobCount,
				LastIngest: formatTime(d.MemoryIndex.LastIngest()),
				LastSweep:  formatTime(d.MemoryIndex.LastSweep()),
			},
			"redis": checkRedis(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("2006-01-02 15:04:05")
}

func determineMode(components map[string]componentStatus) string {
	if store, exists := components["store"]; exists && !store.OK {
		return "empty" // no jobs loaded yet
	}
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded" // no query cache, no run reports
	}
	return "ok"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Impact: "query-cache-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Impact: "query-cache-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Impact: "query-cache-enabled",
	}
}
