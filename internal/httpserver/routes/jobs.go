package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hiredeck/hiredeck/internal/httpserver/deps"
	"github.com/hiredeck/hiredeck/internal/httpserver/handlers"
	"github.com/hiredeck/hiredeck/internal/httpserver/mw"
)

func init() { Register(registerJobs) }

func registerJobs(r chi.Router, d deps.Deps) {
	pub := r.With(mw.RateLimit(d.RateLimit))
	pub.Get("/api/jobs", handlers.ListJobs(d))
	pub.Get("/api/jobs/{id}", handlers.GetJob(d))
}
