package pipeline

import (
	"sync"
	"time"
)

type jobTable struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

func newJobTable() *jobTable {
	return &jobTable{jobs: make(map[string]*Job)}
}

func (t *jobTable) create(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.jobs[id] = &Job{
		ID:          id,
		Status:      StatusProcessing,
		CurrentStep: "Initializing",
		StartedAt:   time.Now(),
	}
}

// advance moves a processing job forward. Progress never decreases.
func (t *jobTable) advance(id string, progress float64, step string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[id]
	if !ok || job.Status != StatusProcessing {
		return
	}
	job.Progress = max(job.Progress, progress)
	job.CurrentStep = step
}

func (t *jobTable) fail(id string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[id]
	if !ok {
		job = &Job{ID: id, StartedAt: time.Now()}
		t.jobs[id] = job
	}
	job.Status = StatusFailed
	job.Error = err.Error()
}

func (t *jobTable) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.jobs, id)
}

func (t *jobTable) get(id string) (Job, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	job, ok := t.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

func (t *jobTable) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.jobs)
}

// running counts jobs still processing. Failed records stay in the table
// and are excluded.
func (t *jobTable) running() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, job := range t.jobs {
		if job.Status == StatusProcessing {
			n++
		}
	}
	return n
}
