package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Iam-jayant/cram-ai/internal/chunker"
	"github.com/Iam-jayant/cram-ai/internal/compose"
	"github.com/Iam-jayant/cram-ai/internal/config"
	"github.com/Iam-jayant/cram-ai/internal/extractor"
	"github.com/Iam-jayant/cram-ai/internal/generate"
	"github.com/Iam-jayant/cram-ai/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate <file.pdf>",
	Short: "Generate study notes and practice questions from a PDF",
	Long: `Generate runs the full study pipeline on a single PDF: extract text,
clean it, chunk it, and compose notes plus practice questions. Results go
to stdout unless --notes-out / --questions-out are given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		logLevel := slog.LevelWarn
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logLevel = slog.LevelDebug
		}
		log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

		var remote generate.Generator
		if cfg.AnthropicAPIKey != "" {
			client := generate.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
			defer client.Close()
			remote = client
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
		if v, _ := cmd.Flags().GetInt("chunk-size"); v > 0 {
			chunkCfg.ChunkSize = v
		}
		if v, _ := cmd.Flags().GetInt("overlap"); v >= 0 && v < chunkCfg.ChunkSize {
			chunkCfg.ChunkOverlap = v
		}

		runner := pipeline.NewRunner(gen, chunkCfg, cfg.MaxContentChars, log)

		result, err := runner.Run(cmd.Context(), extractor.Path(args[0]), func(phase string, percent int) {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", percent, phase)
		})
		if err != nil {
			return err
		}

		notesOut, _ := cmd.Flags().GetString("notes-out")
		questionsOut, _ := cmd.Flags().GetString("questions-out")

		if err := writeArtifact(notesOut, result.Notes); err != nil {
			return err
		}
		if err := writeArtifact(questionsOut, result.Questions); err != nil {
			return err
		}
		return nil
	},
}

// writeArtifact writes to the given path, or to stdout when path is empty.
func writeArtifact(path, content string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, content+"\n\n")
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func init() {
	generateCmd.Flags().String("notes-out", "", "write study notes to this file instead of stdout")
	generateCmd.Flags().String("questions-out", "", "write practice questions to this file instead of stdout")
	generateCmd.Flags().Int("chunk-size", 0, "words per chunk (default from CHUNK_SIZE)")
	generateCmd.Flags().Int("overlap", -1, "words of overlap between chunks")
	generateCmd.Flags().Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(generateCmd)
}
