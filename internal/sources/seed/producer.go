// Package seed loads manually curated or generated job postings from
// a YAML file. The file is re-read on every ingestion cycle so edits
// are picked up without a restart.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hiredeck/hiredeck/internal/domain"
	"github.com/hiredeck/hiredeck/internal/sources"
)

// Producer reads a seed file of job postings.
type Producer struct {
	filePath string
}

// New creates a seed-file producer.
func New(filePath string) *Producer {
	return &Producer{
		filePath: filePath,
	}
}

func (p *Producer) Name() domain.Source { return domain.SourceManual }

// Fetch reads and parses the seed file.
func (p *Producer) Fetch(ctx context.Context) ([]sources.RawJob, error) {
	parsed, err := Load(p.filePath)
	if err != nil {
		return nil, err
	}

	raws := make([]sources.RawJob, 0, len(parsed.Jobs))
	for _, entry := range parsed.Jobs {
		raws = append(raws, mapEntry(entry))
	}
	return raws, nil
}

// Load reads and parses a seed file.
func Load(filePath string) (*File, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var parsed File
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return &parsed, nil
}

func mapEntry(e Entry) sources.RawJob {
	return sources.RawJob{
		SourceID:    e.ID,
		Title:       e.Title,
		Company:     e.Company,
		Location:    e.Location,
		Description: e.Description,
		Salary:      e.Salary,
		URL:         e.URL,
		PostedDate:  e.Posted,
		Category:    e.Category,
		JobType:     e.JobType,
		Remote:      e.Remote,
		EntryLevel:  e.EntryLevel,
		EmployerID:  e.EmployerID,
	}
}
