package handlers

import (
	"net/http"

	"github.com/hiredeck/hiredeck/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
	Jobs  int  `json:"jobs"`
}

// Readyz reports ready once the first ingest has populated the index.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, readyzResponse{
			Ready: !d.MemoryIndex.LastIngest().IsZero(),
			Jobs:  d.MemoryIndex.Count(),
		})
	}
}
