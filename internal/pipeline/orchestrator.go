package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Iam-jayant/cram-ai/internal/config"
	"github.com/Iam-jayant/cram-ai/internal/extractor"
)

// Orchestrator manages the asynchronous study-material pipeline behind the
// HTTP API: a bounded queue, a worker pool, and a TTL'd job store.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	runner *Runner
	log    *slog.Logger
	cfg    config.Config

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, runner *Runner, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:   NewJobStore(cfg.JobTTL),
		queue:  make(chan *Job, cfg.MaxQueueSize),
		runner: runner,
		log:    log,
		cfg:    cfg,
	}
}

// Start launches worker goroutines and the job-store cleanup loop.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.process(workerCtx, job)
				}
			}
		}()
	}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline. Submissions arriving after Stop
// are rejected rather than sent to the closed queue.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	o.mu.Unlock()

	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	// The send below never blocks, so holding the lock across it keeps
	// Stop's close of the queue ordered after any in-flight send.
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		job.SetProgress(StatusFailed, "shutting_down", 0)
		return fmt.Errorf("pipeline is shutting down")
	}

	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetProgress(StatusFailed, "queue_full", 0)
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// process runs one job through the pipeline. Uploaded bytes are written to a
// temp file because the PDF reader needs a seekable file of known size.
func (o *Orchestrator) process(ctx context.Context, job *Job) {
	log := o.log.With("job_id", job.ID, "filename", job.Filename)
	defer job.releaseFileData()

	tmp, err := os.CreateTemp("", "cramai-*.pdf")
	if err != nil {
		log.Error("temp file failed", "error", err)
		job.AddError(err.Error())
		job.SetProgress(StatusFailed, "staging", 0)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(job.FileData()); err != nil {
		tmp.Close()
		log.Error("temp write failed", "error", err)
		job.AddError(err.Error())
		job.SetProgress(StatusFailed, "staging", 0)
		return
	}
	tmp.Close()

	runner := o.runner.WithChunking(job.Chunking())
	result, err := runner.Run(ctx, extractor.Path(tmpPath), func(phase string, percent int) {
		job.SetProgress(StatusProcessing, phase, percent)
	})
	if err != nil {
		log.Error("pipeline failed", "error", err)
		job.AddError(err.Error())
		job.SetProgress(StatusFailed, "failed", job.Snapshot().Percent)
		return
	}

	job.SetResult(result.Notes, result.Questions)
	job.SetProgress(StatusCompleted, "done", 100)
	log.Info("job complete",
		"pages", result.Pages,
		"chunks", result.Chunks,
		"content_chars", result.ContentChars,
	)
}
