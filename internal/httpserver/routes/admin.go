package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hiredeck/hiredeck/internal/httpserver/deps"
	"github.com/hiredeck/hiredeck/internal/httpserver/handlers"
	"github.com/hiredeck/hiredeck/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	admin := r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	)
	admin.Post("/api/admin/jobs/bulk", handlers.BulkAction(d))
	admin.Post("/api/admin/ingest", handlers.TriggerIngest(d))
	admin.Get("/api/admin/ingest/last", handlers.LastIngestRun(d))
}
