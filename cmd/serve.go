package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/studyowl/studyowl/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve [addr]",
	Short: "Start the HTTP API server",
	Long: `Serve exposes the pipeline over HTTP:

  POST /api/courses/{course}/documents  upload PDFs
  POST /api/courses/{course}/query      semantic search
  GET  /health, /ready                  probes

addr defaults to the configured server_addr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger()
	system, cfg, err := setup(ctx, logger)
	if err != nil {
		return err
	}

	addr := cfg.ServerAddr
	if len(args) == 1 {
		addr = args[0]
	}

	srv := api.NewServer(system, logger)
	if err := srv.Run(ctx, addr); err != nil {
		return fmt.Errorf("HTTP server: %w", err)
	}
	return nil
}
