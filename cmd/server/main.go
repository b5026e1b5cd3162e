package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Iam-jayant/cram-ai/internal/api"
	"github.com/Iam-jayant/cram-ai/internal/chunker"
	"github.com/Iam-jayant/cram-ai/internal/compose"
	"github.com/Iam-jayant/cram-ai/internal/config"
	"github.com/Iam-jayant/cram-ai/internal/generate"
	"github.com/Iam-jayant/cram-ai/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Remote generation is optional. Without a key the service runs in
	// local heuristic mode.
	var remote generate.Generator
	var anthropic *generate.AnthropicClient
	if cfg.AnthropicAPIKey != "" {
		anthropic = generate.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		remote = anthropic
		log.Info("remote generation enabled", "model", anthropic.Model())
	} else {
		log.Info("remote generation disabled, using local heuristics")
	}

	gen := generate.NewService(
		remote,
		generate.LoadPrompt(cfg.NotesPromptPath, generate.DefaultNotesPrompt),
		generate.LoadPrompt(cfg.QuestionsPromptPath, generate.DefaultQuestionsPrompt),
		compose.Options{MinContentLength: cfg.MinContentLength},
		log,
	)

	chunkCfg := chunker.Config{
		ChunkSize:     cfg.ChunkSize,
		ChunkOverlap:  cfg.ChunkOverlap,
		MinChunkChars: chunker.DefaultConfig().MinChunkChars,
	}
	runner := pipeline.NewRunner(gen, chunkCfg, cfg.MaxContentChars, log)

	orch := pipeline.NewOrchestrator(cfg, runner, log)
	orch.Start(ctx)

	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		// Stop accepting uploads before closing the work queue, so no
		// request can submit to a stopped pipeline.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()

		if anthropic != nil {
			anthropic.Close()
		}
	}()

	log.Info("starting cram-ai", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
