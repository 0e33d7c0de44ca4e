// Package adzuna fetches job postings from the Adzuna public API and
// adapts them into the common raw-job shape.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
	"github.com/hiredeck/hiredeck/internal/sources"
)

const (
	pageSize    = 50
	maxPages    = 3 // max 150 results per cycle
	httpTimeout = 15 * time.Second
)

// apiBase is a var so tests can point the producer at a local server.
var apiBase = "https://api.adzuna.com/v1/api/jobs"

// Producer fetches job offers from the Adzuna public API.
// With empty credentials Fetch returns (nil, nil) so the pipeline
// simply records zero results for this source.
type Producer struct {
	appID    string
	appKey   string
	country  string // "us", "gb", "fr", …
	query    string // "what" search term
	location string // "where" term
	client   *http.Client
}

// New constructs a producer with a shared HTTP client.
func New(appID, appKey, country, query, location string) *Producer {
	return &Producer{
		appID:    appID,
		appKey:   appKey,
		country:  country,
		query:    query,
		location: location,
		client:   &http.Client{Timeout: httpTimeout},
	}
}

func (p *Producer) Name() domain.Source { return domain.SourceAdzuna }

// Fetch retrieves all available offers for the configured search,
// iterating through pages until no more results or maxPages.
func (p *Producer) Fetch(ctx context.Context) ([]sources.RawJob, error) {
	if p.appID == "" || p.appKey == "" {
		return nil, nil
	}

	var raws []sources.RawJob
	for page := 1; page <= maxPages; page++ {
		batch, err := p.fetchPage(ctx, page)
		if err != nil {
			return raws, fmt.Errorf("page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break // No more results
		}
		for _, result := range batch {
			raws = append(raws, mapResult(result))
		}
		if len(batch) < pageSize {
			break // Last page
		}
	}

	return raws, nil
}

func (p *Producer) fetchPage(ctx context.Context, page int) ([]adzunaResult, error) {
	endpoint := fmt.Sprintf("%s/%s/search/%d", apiBase, p.country, page)

	params := url.Values{}
	params.Set("app_id", p.appID)
	params.Set("app_key", p.appKey)
	params.Set("results_per_page", strconv.Itoa(pageSize))
	params.Set("what", p.query)
	params.Set("where", p.location)
	params.Set("content-type", "application/json")
	params.Set("sort_by", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	var parsed adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return parsed.Results, nil
}
