// Package rss imports job postings from RSS 2.0 feeds. Parsing uses
// encoding/xml directly; job feeds only exercise a handful of RSS
// fields and the schema is tiny.
package rss

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
	"github.com/hiredeck/hiredeck/internal/sources"
)

const httpTimeout = 15 * time.Second

// maxFeedBytes caps how much of a feed we are willing to read.
const maxFeedBytes = 10 << 20

// Producer imports one or more RSS feeds as a single source.
// A failing feed is skipped; the remaining feeds still contribute.
type Producer struct {
	urls   []string
	client *http.Client
}

// New constructs a producer over the given feed URLs.
func New(urls []string) *Producer {
	return &Producer{
		urls:   urls,
		client: &http.Client{Timeout: httpTimeout},
	}
}

func (p *Producer) Name() domain.Source { return domain.SourceRSS }

// Fetch downloads and parses every configured feed. It returns an
// error only when all feeds failed; partial results win otherwise.
func (p *Producer) Fetch(ctx context.Context) ([]sources.RawJob, error) {
	var raws []sources.RawJob
	var lastErr error
	failed := 0

	for _, feedURL := range p.urls {
		parsed, err := p.fetchFeed(ctx, feedURL)
		if err != nil {
			failed++
			lastErr = fmt.Errorf("feed %s: %w", feedURL, err)
			continue
		}
		for _, it := range parsed.Channel.Items {
			raws = append(raws, mapItem(parsed.Channel, it))
		}
	}

	if failed > 0 && failed == len(p.urls) {
		return nil, lastErr
	}
	return raws, nil
}

func (p *Producer) fetchFeed(ctx context.Context, feedURL string) (*feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return parseFeed(data)
}

func parseFeed(data []byte) (*feed, error) {
	var parsed feed
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse feed xml: %w", err)
	}
	return &parsed, nil
}
