package pipeline

import (
	"testing"
	"time"
)

func TestNewJob_Defaults(t *testing.T) {
	job := NewJob("lecture.pdf", []byte("%PDF"))
	if job.ID == "" {
		t.Error("expected generated job ID")
	}
	if job.Status != StatusQueued || job.Phase != "queued" {
		t.Errorf("expected queued state, got %s/%s", job.Status, job.Phase)
	}
	if string(job.FileData()) != "%PDF" {
		t.Error("file data not retained")
	}
}

func TestNewJob_UniqueIDs(t *testing.T) {
	a := NewJob("a.pdf", nil)
	b := NewJob("b.pdf", nil)
	if a.ID == b.ID {
		t.Errorf("expected distinct IDs, both %q", a.ID)
	}
}

func TestJob_ProgressTransitions(t *testing.T) {
	job := NewJob("doc.pdf", nil)

	transitions := []struct {
		status  JobStatus
		phase   string
		percent int
	}{
		{StatusProcessing, "extracting", 10},
		{StatusProcessing, "cleaned", 50},
		{StatusProcessing, "notes", 80},
		{StatusCompleted, "done", 100},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		time.Sleep(time.Millisecond)
		job.SetProgress(tr.status, tr.phase, tr.percent)

		snap := job.Snapshot()
		if snap.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, snap.Status)
		}
		if snap.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, snap.Phase)
		}
		if snap.Percent != tr.percent {
			t.Errorf("expected percent %d, got %d", tr.percent, snap.Percent)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetProgress(%q)", tr.phase)
		}
	}
}

func TestJob_SetResult(t *testing.T) {
	job := NewJob("doc.pdf", nil)
	job.SetResult("notes body", "questions body")
	snap := job.Snapshot()
	if snap.Notes != "notes body" || snap.Questions != "questions body" {
		t.Errorf("result not stored: %+v", snap)
	}
}

func TestJob_AddError(t *testing.T) {
	job := NewJob("doc.pdf", nil)
	job.AddError("extract: bad xref")
	job.AddError("second failure")

	snap := job.Snapshot()
	if len(snap.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Errors))
	}
	if snap.Errors[0] != "extract: bad xref" {
		t.Errorf("expected first error %q, got %q", "extract: bad xref", snap.Errors[0])
	}
}

func TestJob_SnapshotHasEmptyErrorSlice(t *testing.T) {
	snap := NewJob("doc.pdf", nil).Snapshot()
	if snap.Errors == nil {
		t.Error("expected non-nil error slice in snapshot")
	}
}

func TestJob_ChunkingOverrides(t *testing.T) {
	job := NewJob("doc.pdf", nil)
	if size, overlap := job.Chunking(); size != 0 || overlap != 0 {
		t.Errorf("expected zero overrides, got %d/%d", size, overlap)
	}
	job.SetChunking(500, 50)
	size, overlap := job.Chunking()
	if size != 500 || overlap != 50 {
		t.Errorf("expected 500/50, got %d/%d", size, overlap)
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("doc.pdf", nil)
	store.Put(job)

	if got := store.Get(job.ID); got != job {
		t.Error("expected stored job back")
	}
	if got := store.Get("missing"); got != nil {
		t.Errorf("expected nil for unknown ID, got %+v", got)
	}
}

func TestJobStore_CleanupEvictsExpired(t *testing.T) {
	store := NewJobStore(10 * time.Millisecond)
	job := NewJob("doc.pdf", nil)
	store.Put(job)

	time.Sleep(20 * time.Millisecond)
	store.Cleanup()

	if store.Get(job.ID) != nil {
		t.Error("expected expired job to be evicted")
	}
}

func TestJobStore_CleanupKeepsFresh(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("doc.pdf", nil)
	store.Put(job)
	store.Cleanup()
	if store.Get(job.ID) == nil {
		t.Error("fresh job was evicted")
	}
}

// Cleanup runs on a ticker while workers update jobs; the sweep must read
// UpdatedAt under the job lock. Run with -race.
func TestJobStore_CleanupConcurrentWithProgress(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("doc.pdf", nil)
	store.Put(job)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			job.SetProgress(StatusProcessing, "extracting", i%100)
		}
	}()
	for i := 0; i < 200; i++ {
		store.Cleanup()
	}
	<-done

	if store.Get(job.ID) == nil {
		t.Error("active job was evicted")
	}
}
