package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hiredeck/hiredeck/internal/domain"
	"github.com/hiredeck/hiredeck/internal/httpserver/deps"
	"github.com/hiredeck/hiredeck/internal/logger"
)

// ListJobs serves the public job listing with filtering, sorting and
// offset pagination. Result pages are cached in Redis keyed by the
// canonical filter string; any commit flushes that cache.
func ListJobs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		f := parseFilter(r)
		cacheKey := filterKey(f)

		if d.Cache != nil {
			if payload, err := d.Cache.GetCachedQueryPage(ctx, cacheKey); err == nil && payload != nil {
				d.Logger.Debug("query cache hit", logger.String("key", cacheKey))
				writeRawJSON(w, http.StatusOK, payload)
				return
			}
		}

		page := domain.ApplyFilter(d.MemoryIndex.All(), f)

		payload, err := json.Marshal(page)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to encode results")
			return
		}

		if d.Cache != nil {
			if err := d.Cache.CacheQueryPage(ctx, cacheKey, payload, d.QueryCacheTTL); err != nil {
				d.Logger.Debug("failed to cache query page", logger.Error(err))
			}
		}

		writeRawJSON(w, http.StatusOK, payload)
	}
}

// GetJob serves a single record by id.
func GetJob(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		job, ok := d.MemoryIndex.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		writeJSON(w, http.StatusOK, job)
	}
}

func parseFilter(r *http.Request) domain.Filter {
	q := r.URL.Query()
	return domain.Filter{
		Search:   strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
		Company:  strings.TrimSpace(q.Get("company")),
		Location: strings.TrimSpace(q.Get("location")),
		Status:   strings.TrimSpace(q.Get("status")),
		Page:     atoiDefault(q.Get("page"), 1),
		Limit:    atoiDefault(q.Get("limit"), domain.DefaultPageLimit),
	}
}

// filterKey renders the filter as a canonical cache key so equivalent
// requests share a cache entry regardless of parameter order.
func filterKey(f domain.Filter) string {
	return fmt.Sprintf("q=%s|cat=%s|co=%s|loc=%s|st=%s|p=%d|l=%d",
		strings.ToLower(f.Search), strings.ToLower(f.Category),
		strings.ToLower(f.Company), strings.ToLower(f.Location),
		f.Status, f.Page, f.Limit)
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
