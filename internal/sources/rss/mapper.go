package rss

import (
	"strings"

	"github.com/hiredeck/hiredeck/internal/sources"
)

// mapItem adapts one feed item into the common raw-job shape.
//
// Job feeds rarely carry a dedicated company field; the convention is
// either "Company: Job Title" or "Job Title at Company" in the item
// title, falling back to the channel title as publisher.
func mapItem(ch channel, it item) sources.RawJob {
	title, company := splitTitle(it.Title)
	if company == "" {
		company = strings.TrimSpace(ch.Title)
	}

	raw := sources.RawJob{
		SourceID:    strings.TrimSpace(it.GUID),
		Title:       title,
		Company:     company,
		Description: it.Description,
		URL:         strings.TrimSpace(it.Link),
		PostedDate:  it.PubDate,
	}

	// Some feeds tag the location or category as <category> entries.
	for _, c := range it.Categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if raw.Location == "" && looksLikeLocation(c) {
			raw.Location = c
		}
	}

	return raw
}

// splitTitle pulls a company name out of the item title when the feed
// uses one of the two common conventions.
func splitTitle(s string) (title, company string) {
	s = strings.TrimSpace(s)

	if i := strings.Index(s, ": "); i > 0 {
		return strings.TrimSpace(s[i+2:]), strings.TrimSpace(s[:i])
	}
	if i := strings.LastIndex(s, " at "); i > 0 {
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+4:])
	}
	return s, ""
}

func looksLikeLocation(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "remote") ||
		strings.Contains(s, ", ") // "Austin, TX" style tags
}
