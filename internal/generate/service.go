// Package generate produces the final notes and questions strings. A remote
// generator is used when configured; the local heuristic composers are the
// always-available fallback, so the service contract matches the composers'
// "always returns a string" guarantee.
package generate

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Iam-jayant/cram-ai/internal/compose"
)

// Generator produces study text from a rendered prompt. The Anthropic client
// implements it; tests supply mocks.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service resolves each generation request through the remote generator when
// one is configured, falling back to the local composers on any failure.
// With no remote generator it behaves identically to local-only mode.
type Service struct {
	remote          Generator
	notesPrompt     PromptTemplate
	questionsPrompt PromptTemplate
	opts            compose.Options
	log             *slog.Logger
	backoff         func(attempt int) time.Duration
}

// NewService builds a Service. remote may be nil for local-only operation.
func NewService(remote Generator, notesPrompt, questionsPrompt PromptTemplate, opts compose.Options, log *slog.Logger) *Service {
	if opts.MinContentLength <= 0 {
		opts = compose.DefaultOptions()
	}
	if notesPrompt == "" {
		notesPrompt = DefaultNotesPrompt
	}
	if questionsPrompt == "" {
		questionsPrompt = DefaultQuestionsPrompt
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		remote:          remote,
		notesPrompt:     notesPrompt,
		questionsPrompt: questionsPrompt,
		opts:            opts,
		log:             log,
		backoff:         Backoff,
	}
}

// Notes returns the study notes string for content. Never returns an error;
// failures surface as warning- or error-prefixed strings per the composer
// contract.
func (s *Service) Notes(ctx context.Context, content string) string {
	return s.generate(ctx, s.notesPrompt, content, func() string {
		return compose.Notes(content, s.opts)
	})
}

// Questions returns the practice questions string for content.
func (s *Service) Questions(ctx context.Context, content string) string {
	return s.generate(ctx, s.questionsPrompt, content, func() string {
		return compose.Questions(content, s.opts)
	})
}

func (s *Service) generate(ctx context.Context, tmpl PromptTemplate, content string, local func() string) string {
	// The length gate applies before any remote call; the local composer
	// produces the canonical warning.
	if s.remote == nil || len(strings.TrimSpace(content)) < s.opts.MinContentLength {
		return local()
	}

	out, err := s.generateWithRetry(ctx, tmpl.Render(content))
	if err != nil {
		s.log.Warn("remote generation failed, using local composer", "error", err)
		return local()
	}
	if strings.TrimSpace(out) == "" {
		return local()
	}
	return out
}

func (s *Service) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		out, err := s.remote.Generate(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !IsRetryable(err) || attempt == MaxRetries-1 {
			break
		}
		select {
		case <-time.After(s.backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}
