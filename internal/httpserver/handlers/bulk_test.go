package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hiredeck/hiredeck/internal/domain"
	"github.com/hiredeck/hiredeck/internal/httpserver/deps"
	"github.com/hiredeck/hiredeck/internal/index"
	"github.com/hiredeck/hiredeck/internal/lifecycle"
	"github.com/hiredeck/hiredeck/internal/logger"
	filestore "github.com/hiredeck/hiredeck/internal/store/file"
)

func bulkDeps(t *testing.T, jobs []*domain.Job) deps.Deps {
	t.Helper()

	store := filestore.New(filepath.Join(t.TempDir(), "jobs.json"), "", 0)
	if err := store.Replace(jobs); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	idx := index.NewMemoryIndex()
	idx.Replace(jobs)

	return deps.Deps{
		Logger:      logger.New("error", false),
		StartTime:   time.Now(),
		MemoryIndex: idx,
		Store:       store,
	}
}

func TestBulkActionDeactivate(t *testing.T) {
	d := bulkDeps(t, []*domain.Job{
		{ID: "1", Status: domain.StatusActive},
		{ID: "2", Status: domain.StatusActive},
	})

	body := strings.NewReader(`{"action":"deactivate","ids":["1"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/bulk", body)
	rec := httptest.NewRecorder()
	BulkAction(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var res lifecycle.ActionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Applied != 1 {
		t.Errorf("applied = %d, want 1", res.Applied)
	}

	// Index reflects the commit.
	j, ok := d.MemoryIndex.Get("1")
	if !ok || j.Status != domain.StatusInactive {
		t.Errorf("index job 1 = %+v, want inactive", j)
	}

	// So does the store.
	persisted, err := d.Store.Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	for _, pj := range persisted {
		if pj.ID == "1" && pj.Status != domain.StatusInactive {
			t.Errorf("persisted job 1 status = %q, want inactive", pj.Status)
		}
	}
}

func TestBulkActionDelete(t *testing.T) {
	d := bulkDeps(t, []*domain.Job{
		{ID: "1", Status: domain.StatusActive},
		{ID: "2", Status: domain.StatusActive},
	})

	body := strings.NewReader(`{"action":"delete","ids":["1","2"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/bulk", body)
	rec := httptest.NewRecorder()
	BulkAction(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if d.MemoryIndex.Count() != 0 {
		t.Errorf("index count = %d, want 0 after delete", d.MemoryIndex.Count())
	}
}

func TestBulkActionBadRequests(t *testing.T) {
	d := bulkDeps(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"action":`},
		{"empty ids", `{"action":"activate","ids":[]}`},
		{"missing ids", `{"action":"activate"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/jobs/bulk", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			BulkAction(d)(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestTriggerIngest(t *testing.T) {
	d := testDeps(t, nil)
	d.IngestTrigger = make(chan struct{}, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/ingest", nil)
	rec := httptest.NewRecorder()
	TriggerIngest(d)(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("first trigger status = %d, want 202", rec.Code)
	}

	// Channel is full: a second trigger is rejected until the cycle runs.
	rec = httptest.NewRecorder()
	TriggerIngest(d)(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second trigger status = %d, want 429", rec.Code)
	}

	select {
	case <-d.IngestTrigger:
	default:
		t.Error("trigger channel should hold one pending cycle")
	}
}

func TestLastIngestRunWithoutCache(t *testing.T) {
	d := testDeps(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ingest/last", nil)
	rec := httptest.NewRecorder()
	LastIngestRun(d)(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 without redis", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	d := testDeps(t, nil)
	d.Version = "1.2.3"

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	Healthz(d)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res healthzResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Status != "ok" || res.Version != "1.2.3" {
		t.Errorf("response = %+v", res)
	}
}

func TestReadyz(t *testing.T) {
	d := testDeps(t, []*domain.Job{{ID: "1"}})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	Readyz(d)(rec, req)

	var res readyzResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Ready {
		t.Error("ready = true before any ingest")
	}
	if res.Jobs != 1 {
		t.Errorf("jobs = %d, want 1", res.Jobs)
	}

	d.MemoryIndex.MarkIngest(time.Now())
	rec = httptest.NewRecorder()
	Readyz(d)(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Ready {
		t.Error("ready = false after ingest")
	}
}
