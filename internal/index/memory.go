// Package index keeps the current job collection in memory so reads
// never touch disk. The file store is the source of truth; the index
// is rebuilt from it after every committed mutation.
package index

import (
	"sync"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
)

// MemoryIndex provides in-memory lookup over the job collection.
type MemoryIndex struct {
	mu         sync.RWMutex
	jobs       map[string]*domain.Job // ID -> Job
	lastIngest time.Time              // timestamp of last ingest commit
	lastSweep  time.Time              // timestamp of last expiry sweep
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		jobs: make(map[string]*domain.Job),
	}
}

// Replace swaps the whole collection. Called after every store commit
// so the index mirrors persisted state exactly.
func (idx *MemoryIndex) Replace(jobs []*domain.Job) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.jobs = make(map[string]*domain.Job, len(jobs))
	for _, j := range jobs {
		idx.jobs[j.ID] = j
	}
}

// Get retrieves a job by ID.
func (idx *MemoryIndex) Get(id string) (*domain.Job, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	j, ok := idx.jobs[id]
	return j, ok
}

// All returns every job in the collection.
func (idx *MemoryIndex) All() []*domain.Job {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	jobs := make([]*domain.Job, 0, len(idx.jobs))
	for _, j := range idx.jobs {
		jobs = append(jobs, j)
	}
	return jobs
}

// Count returns the number of jobs in the collection.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.jobs)
}

// MarkIngest records the time of the last committed ingest.
func (idx *MemoryIndex) MarkIngest(t time.Time) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.lastIngest = t
}

// MarkSweep records the time of the last expiry sweep.
func (idx *MemoryIndex) MarkSweep(t time.Time) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.lastSweep = t
}

// LastIngest returns the timestamp of the last committed ingest.
func (idx *MemoryIndex) LastIngest() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastIngest
}

// LastSweep returns the timestamp of the last expiry sweep.
func (idx *MemoryIndex) LastSweep() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastSweep
}
