// Package cmd provides the studyowl CLI.
//
// Commands:
//   - ingest: upload PDFs into a course's index
//   - ask: semantic search over a course's material
//   - serve: HTTP API server
//   - version: build and configuration info
//
// Signal handling and graceful shutdown are implemented via context
// cancellation.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/studyowl/studyowl/internal/log"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "studyowl",
	Short: "studyowl - course material indexing and retrieval",
	Long: `studyowl turns course PDFs into a searchable knowledge base.

Upload lecture notes and textbooks into per-course collections, then
ask questions and get back the most relevant passages with their
sources.`,
	SilenceUsage: true,
}

// Execute is the main entry point for the studyowl CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// newLogger builds the process logger from the --debug flag and the
// DEBUG environment variable.
func newLogger() log.Logger {
	level := slog.LevelInfo
	if debug || os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level})
}
