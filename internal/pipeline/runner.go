// Package pipeline chains extraction, cleaning, chunking, and composition
// into study-material jobs, and manages their lifecycle behind an in-memory
// queue.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Iam-jayant/cram-ai/internal/chunker"
	"github.com/Iam-jayant/cram-ai/internal/cleaner"
	"github.com/Iam-jayant/cram-ai/internal/compose"
	"github.com/Iam-jayant/cram-ai/internal/extractor"
	"github.com/Iam-jayant/cram-ai/internal/generate"
)

// Coarse progress percentages reported at fixed pipeline milestones.
const (
	pctExtractStart = 10
	pctExtracted    = 40
	pctCleaned      = 50
	pctChunked      = 60
	pctNotes        = 80
	pctQuestions    = 95
	pctDone         = 100
)

// Result is the terminal artifact of one pipeline run.
type Result struct {
	Notes        string
	Questions    string
	Pages        int
	Chunks       int
	ContentChars int
}

// Runner executes the full pipeline synchronously for one document.
type Runner struct {
	gen             *generate.Service
	chunkCfg        chunker.Config
	maxContentChars int
	log             *slog.Logger
}

func NewRunner(gen *generate.Service, chunkCfg chunker.Config, maxContentChars int, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	if maxContentChars <= 0 {
		maxContentChars = 8000
	}
	return &Runner{
		gen:             gen,
		chunkCfg:        chunkCfg,
		maxContentChars: maxContentChars,
		log:             log,
	}
}

// Run processes the PDF at ref end to end. report, when non-nil, receives
// the milestone phase names and percentages as the pipeline advances. An
// unreadable file is an error; a readable PDF without a text layer completes
// with warning artifacts instead.
func (r *Runner) Run(ctx context.Context, ref extractor.Ref, report func(phase string, percent int)) (Result, error) {
	step := func(phase string, pct int) {
		if report != nil {
			report(phase, pct)
		}
	}

	step("extracting", pctExtractStart)
	pages, err := extractor.ExtractPages(ref)
	if err != nil {
		if errors.Is(err, extractor.ErrNoExtractableText) {
			r.log.Warn("pdf has no extractable text", "error", err)
			step("done", pctDone)
			return Result{Notes: compose.NoTextWarning, Questions: compose.NoTextWarning}, nil
		}
		return Result{}, err
	}
	step("extracted", pctExtracted)

	cleaned := cleaner.Clean(extractor.JoinPages(pages))
	step("cleaned", pctCleaned)

	chunks := chunker.Split(cleaned, r.chunkCfg)
	content := SelectContent(chunks, cleaned, r.maxContentChars)
	step("chunked", pctChunked)

	notes := r.gen.Notes(ctx, content)
	step("notes", pctNotes)

	questions := r.gen.Questions(ctx, content)
	step("questions", pctQuestions)

	step("done", pctDone)
	return Result{
		Notes:        notes,
		Questions:    questions,
		Pages:        len(pages),
		Chunks:       len(chunks),
		ContentChars: len(content),
	}, nil
}

// WithChunking returns a copy of the runner using the given chunk overrides;
// zero values keep the runner's defaults.
func (r *Runner) WithChunking(size, overlap int) *Runner {
	if size <= 0 && overlap <= 0 {
		return r
	}
	clone := *r
	if size > 0 {
		clone.chunkCfg.ChunkSize = size
	}
	if overlap > 0 && overlap < clone.chunkCfg.ChunkSize {
		clone.chunkCfg.ChunkOverlap = overlap
	}
	return &clone
}

// SelectContent accumulates chunk text up to maxChars for heuristic analysis.
// When chunking yielded nothing (short documents), it falls back to the
// cleaned text itself, truncated at a word boundary.
func SelectContent(chunks []string, cleaned string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = 8000
	}
	if len(chunks) == 0 {
		return truncateAtWord(cleaned, maxChars)
	}
	var sb strings.Builder
	for _, c := range chunks {
		if sb.Len() >= maxChars {
			break
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(c)
	}
	return truncateAtWord(sb.String(), maxChars)
}

func truncateAtWord(s string, maxChars int) string {
	if len(s) <= maxChars {
		return s
	}
	cut := s[:maxChars]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut
}
