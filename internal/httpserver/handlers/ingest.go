package handlers

import (
	"net/http"

	"github.com/hiredeck/hiredeck/internal/httpserver/deps"
	"github.com/hiredeck/hiredeck/internal/logger"
)

// TriggerIngest forces an immediate ingestion cycle.
func TriggerIngest(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.IngestTrigger <- struct{}{}:
			d.Logger.Info("manual ingest triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]string{"status": "triggered"})
		default:
			d.Logger.Warn("ingest already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeError(w, http.StatusTooManyRequests, "ingest already in progress")
		}
	}
}

// LastIngestRun returns the report of the most recent ingestion run.
func LastIngestRun(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Cache == nil {
			writeError(w, http.StatusServiceUnavailable, "run reports unavailable without redis")
			return
		}
		payload, err := d.Cache.GetLastRun(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load run report")
			return
		}
		if payload == nil {
			writeError(w, http.StatusNotFound, "no ingestion run recorded yet")
			return
		}
		writeRawJSON(w, http.StatusOK, payload)
	}
}
