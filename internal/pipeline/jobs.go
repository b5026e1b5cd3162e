package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the state of a study-material job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single document through the pipeline.
type Job struct {
	mu sync.Mutex

	ID       string    `json:"job_id"`
	Filename string    `json:"filename"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Percent  int       `json:"percent"`

	Notes     string   `json:"notes,omitempty"`
	Questions string   `json:"questions,omitempty"`
	Errors    []string `json:"errors,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData  []byte
	chunkSize int
	overlap   int
}

// NewJob creates a queued job holding the uploaded PDF bytes.
func NewJob(filename string, data []byte) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Filename:  filename,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
		fileData:  data,
	}
}

// SetProgress records the pipeline milestone the job reached.
func (j *Job) SetProgress(status JobStatus, phase string, percent int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.Percent = percent
	j.UpdatedAt = time.Now()
}

// SetResult stores the generated artifacts.
func (j *Job) SetResult(notes, questions string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Notes = notes
	j.Questions = questions
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Errors = append(j.Errors, err)
	j.UpdatedAt = time.Now()
}

// SetChunking overrides the chunk parameters for this job.
func (j *Job) SetChunking(size, overlap int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.chunkSize = size
	j.overlap = overlap
}

// Chunking returns the per-job chunk overrides (zero means use defaults).
func (j *Job) Chunking() (size, overlap int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.chunkSize, j.overlap
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// releaseFileData drops the upload bytes once processing is done.
func (j *Job) releaseFileData() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = nil
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	Filename  string    `json:"filename"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Percent   int       `json:"percent"`
	Notes     string    `json:"notes,omitempty"`
	Questions string    `json:"questions,omitempty"`
	Errors    []string  `json:"errors"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:        j.ID,
		Filename:  j.Filename,
		Status:    j.Status,
		Phase:     j.Phase,
		Percent:   j.Percent,
		Notes:     j.Notes,
		Questions: j.Questions,
		Errors:    errs,
	}
}

// touchedAt returns the last update time under the job lock, so readers
// outside the job (the store's TTL sweep) don't race with workers.
func (j *Job) touchedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.touchedAt()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
