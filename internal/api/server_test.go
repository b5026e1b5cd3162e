package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Iam-jayant/cram-ai/internal/chunker"
	"github.com/Iam-jayant/cram-ai/internal/compose"
	"github.com/Iam-jayant/cram-ai/internal/config"
	"github.com/Iam-jayant/cram-ai/internal/generate"
	"github.com/Iam-jayant/cram-ai/internal/pipeline"
)

func testServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{
		APIKey:          apiKey,
		WorkerCount:     1,
		MaxQueueSize:    4,
		MaxUploadBytes:  1 << 20,
		ChunkSize:       1000,
		ChunkOverlap:    200,
		MaxContentChars: 8000,
	}
	gen := generate.NewService(nil, "", "", compose.DefaultOptions(), log)
	runner := pipeline.NewRunner(gen, chunker.DefaultConfig(), cfg.MaxContentChars, log)
	orch := pipeline.NewOrchestrator(cfg, runner, log)
	// Workers are not started: submitted jobs stay queued, which is enough
	// for handler tests.
	return NewServer(orch, log, cfg)
}

func multipartUpload(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuth_RequiredWhenKeyConfigured(t *testing.T) {
	s := testServer(t, "secret")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/study/abc/status", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/study/abc/status", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/study/abc/status", nil)
	req.Header.Set("Authorization", "Bearer secret")
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with valid token and unknown job, got %d", rec.Code)
	}
}

func TestAuth_DisabledWhenKeyEmpty(t *testing.T) {
	s := testServer(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/study/abc/status", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 (no auth), got %d", rec.Code)
	}
}

func TestStudy_RejectsNonPDF(t *testing.T) {
	s := testServer(t, "")
	body, ctype := multipartUpload(t, "file", "notes.docx", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/study", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "only PDF") {
		t.Errorf("unexpected error body: %s", rec.Body.String())
	}
}

func TestStudy_MissingFile(t *testing.T) {
	s := testServer(t, "")
	body, ctype := multipartUpload(t, "other", "doc.pdf", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/study", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStudy_AcceptsPDFAndReportsQueued(t *testing.T) {
	s := testServer(t, "")
	body, ctype := multipartUpload(t, "file", "lecture.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/api/study", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		JobID   string `json:"job_id"`
		Status  string `json:"status"`
		PollURL string `json:"poll_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.JobID == "" {
		t.Fatal("expected job_id in response")
	}
	if resp.Status != string(pipeline.StatusQueued) {
		t.Errorf("expected queued status, got %q", resp.Status)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.PollURL, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status poll: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), resp.JobID) {
		t.Errorf("status body missing job id: %s", rec.Body.String())
	}
}

func TestStudyResult_ConflictUntilCompleted(t *testing.T) {
	s := testServer(t, "")
	body, ctype := multipartUpload(t, "file", "lecture.pdf", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest(http.MethodPost, "/api/study", body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("upload: expected 202, got %d", rec.Code)
	}
	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/study/"+resp.JobID+"/result", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 while queued, got %d", rec.Code)
	}

	// Complete the job and fetch artifacts.
	job := s.orchestrator.GetJob(resp.JobID)
	if job == nil {
		t.Fatal("job not found in store")
	}
	job.SetResult("# 📝 Study Notes\n\n## Key Points\n\n• a point\n", "# ❓ Practice Questions\n\n1. [Understanding] Explain.\n")
	job.SetProgress(pipeline.StatusCompleted, "done", 100)

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/study/"+resp.JobID+"/result", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("result: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Study Notes") || !strings.Contains(rec.Body.String(), "Practice Questions") {
		t.Errorf("result body missing artifacts: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/study/"+resp.JobID+"/notes", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("notes: expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("notes: expected markdown content type, got %q", ct)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/study/"+resp.JobID+"/questions?format=html", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("questions html: expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("questions: expected html content type, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<h1>") {
		t.Errorf("questions html missing heading: %s", rec.Body.String())
	}
}

func TestBatchStudy_MixedFiles(t *testing.T) {
	s := testServer(t, "")
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range []string{"a.pdf", "b.txt"} {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write([]byte("%PDF-1.4 fake"))
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/study/batch", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Jobs) != 2 {
		t.Fatalf("expected 2 job entries, got %d", len(resp.Jobs))
	}
	if _, ok := resp.Jobs[0]["job_id"]; !ok {
		t.Errorf("expected job_id for pdf entry: %v", resp.Jobs[0])
	}
	if _, ok := resp.Jobs[1]["error"]; !ok {
		t.Errorf("expected error for txt entry: %v", resp.Jobs[1])
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"../../etc/passwd": "passwd",
		"notes.pdf":        "notes.pdf",
		"a/b/c.pdf":        "c.pdf",
		"":                 "unnamed",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
