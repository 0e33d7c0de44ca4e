package domain

import (
	"sort"
	"strings"
)

const (
	// DefaultPageLimit is used when the caller supplies no limit.
	DefaultPageLimit = 20
	// MaxPageLimit caps the page size regardless of what was asked.
	MaxPageLimit = 100
)

// Filter is the read-side query contract. Zero-valued fields impose
// no constraint. String matching is case-insensitive substring,
// except Status which is an exact state ("all" disables it).
type Filter struct {
	Search   string // matched against title, company and description
	Category string
	Company  string
	Location string
	Status   string // "", "active", "inactive", "expired", "all" ("" = active)
	Page     int    // 1-based
	Limit    int
}

// Page is one page of filtered results.
type Page struct {
	Items      []*Job `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	HasMore    bool   `json:"hasMore"`
}

// ApplyFilter filters, sorts and paginates jobs. It never mutates its
// input; the returned items alias the input records and must be
// treated as read-only by consumers.
//
// Sort order is descending by posted date, with zero dates last.
func ApplyFilter(jobs []*Job, f Filter) Page {
	status := f.Status
	if status == "" {
		// Public listings never show expired jobs by accident.
		status = string(StatusActive)
	}

	matched := make([]*Job, 0, len(jobs))
	for _, j := range jobs {
		if status != "all" && string(j.Status) != status {
			continue
		}
		if !matchesSearch(j, f.Search) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(j.Category, f.Category) {
			continue
		}
		if f.Company != "" && !containsFold(j.Company, f.Company) {
			continue
		}
		if f.Location != "" && !containsFold(j.Location, f.Location) {
			continue
		}
		matched = append(matched, j)
	}

	sort.SliceStable(matched, func(a, b int) bool {
		ta, tb := matched[a].PostedDate, matched[b].PostedDate
		if ta.IsZero() {
			return false
		}
		if tb.IsZero() {
			return true
		}
		return ta.After(tb)
	})

	return paginate(matched, f.Page, f.Limit)
}

func matchesSearch(j *Job, search string) bool {
	if search == "" {
		return true
	}
	return containsFold(j.Title, search) ||
		containsFold(j.Company, search) ||
		containsFold(j.Description, search)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func paginate(jobs []*Job, page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	total := len(jobs)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Page{
		Items:      jobs[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		HasMore:    page*limit < total,
	}
}
