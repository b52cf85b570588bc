package pdfrender

import (
	"log/slog"
	"sync"
	"time"

	"github.com/contratoseguro/contratos/internal/cache"
	"github.com/contratoseguro/contratos/internal/compose"
	"github.com/google/uuid"
)

// JobStatus is the observable state of a render job. The browser polls
// it to flip the download affordance from "generating" to ready.
type JobStatus string

const (
	StatusGenerating JobStatus = "generating"
	StatusDone       JobStatus = "done"
	StatusFailed     JobStatus = "failed"
)

// Job holds the outcome of one render. A failed job keeps its error
// message for the advisory; the caller may start a new job with the
// same document (failure is retry-eligible, never sticky).
type Job struct {
	mu       sync.Mutex
	ID       string
	Filename string
	status   JobStatus
	data     []byte
	errMsg   string
}

// Snapshot returns the current status, artifact bytes and error
// message without racing the render goroutine.
func (j *Job) Snapshot() (JobStatus, []byte, string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status, j.data, j.errMsg
}

func (j *Job) finish(data []byte, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err != nil {
		j.status = StatusFailed
		j.errMsg = err.Error()
		return
	}
	j.status = StatusDone
	j.data = data
}

// Jobs runs renders asynchronously and keeps finished artifacts around
// long enough for the browser to download them.
type Jobs struct {
	renderer Renderer
	cache    *cache.Cache
}

const jobTTL = 30 * time.Minute

func NewJobs(renderer Renderer, c *cache.Cache) *Jobs {
	return &Jobs{renderer: renderer, cache: c}
}

// Start kicks off a render and returns the job identifier immediately.
func (js *Jobs) Start(doc compose.Document) string {
	job := &Job{
		ID:       uuid.NewString(),
		Filename: doc.Filename,
		status:   StatusGenerating,
	}
	js.cache.Set(job.ID, job, jobTTL)

	go func() {
		data, err := js.renderer.Render(doc)
		job.finish(data, err)
		if err != nil {
			slog.Error("Render job failed", "job", job.ID, "filename", job.Filename, "error", err)
			return
		}
		slog.Info("Render job finished", "job", job.ID, "filename", job.Filename, "bytes", len(data))
	}()

	return job.ID
}

// Get returns the job for id, or false if unknown or expired.
func (js *Jobs) Get(id string) (*Job, bool) {
	v, ok := js.cache.Get(id)
	if !ok {
		return nil, false
	}
	job, ok := v.(*Job)
	return job, ok
}
