package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <course> <file.pdf>...",
	Short: "Index PDFs into a course's knowledge base",
	Long: `Ingest extracts text from each PDF, splits it into overlapping
chunks, embeds them, and stores them under the course's collection.

A file that cannot be read is reported and skipped; the remaining
files are still indexed.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger()
	system, _, err := setup(ctx, logger)
	if err != nil {
		return err
	}

	course, files := args[0], args[1:]

	total, failed := 0, 0
	for _, path := range files {
		count, err := ingestOne(ctx, system, course, path)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "  %s: %v\n", filepath.Base(path), err)
			continue
		}
		total += count
		fmt.Printf("  %s: %d chunks indexed\n", filepath.Base(path), count)
	}

	fmt.Printf("\nCourse %q: %d chunks indexed from %d of %d files\n",
		course, total, len(files)-failed, len(files))

	if failed == len(files) {
		return fmt.Errorf("all %d files failed", len(files))
	}
	return nil
}

func ingestOne(ctx context.Context, system ingester, course, path string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}
	return system.IngestFile(ctx, course, abs, filepath.Base(abs))
}

// ingester is the slice of the pipeline runIngest needs.
type ingester interface {
	IngestFile(ctx context.Context, courseName, path, filename string) (int, error)
}
