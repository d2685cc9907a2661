package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studyowl/studyowl/internal/config"
)

// Version information (injected at build time via ldflags)
var (
	AppVersion = "development"
	BuildTime  = "unknown"
	GitCommit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and configuration information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runVersion()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion() error {
	fmt.Printf("studyowl %s\n", AppVersion)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Println("Configuration:")
	fmt.Printf("  Embedder model: %s (dimension %d)\n", cfg.EmbedderModel, cfg.EmbedderDimension)
	fmt.Printf("  Chunk size: %d (overlap %d)\n", cfg.ChunkSize, cfg.ChunkOverlap)
	fmt.Printf("  Storage dir: %s\n", cfg.StorageDir)
	fmt.Printf("  Top-k: %d\n", cfg.TopK)

	// Report the API key without printing it.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && len(key) >= 8 {
		fmt.Printf("  GEMINI_API_KEY: %s...%s (configured)\n", key[:4], key[len(key)-4:])
	} else if key != "" {
		fmt.Println("  GEMINI_API_KEY: (configured)")
	} else {
		fmt.Println("  GEMINI_API_KEY: Not set")
		fmt.Println()
		fmt.Println("Hint: export GEMINI_API_KEY=your-api-key")
	}

	return nil
}
