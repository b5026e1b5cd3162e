// Package main is the entry point for the cramai CLI.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cramai CLI.
var rootCmd = &cobra.Command{
	Use:   "cramai",
	Short: "Turn PDF study material into notes and practice questions",
	Long: `cramai extracts text from a PDF, cleans and chunks it, and produces
markdown study notes plus practice questions. Without an Anthropic API key
it runs fully offline on heuristic extraction.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		godotenv.Load()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
