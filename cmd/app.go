package cmd

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"

	"github.com/studyowl/studyowl/internal/config"
	"github.com/studyowl/studyowl/internal/log"
	"github.com/studyowl/studyowl/internal/rag"
)

// setup loads configuration, initializes the Gemini embedder, and
// builds the retrieval pipeline. All commands that touch the index go
// through here so they share one wiring path.
func setup(ctx context.Context, logger log.Logger) (*rag.System, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validating config: %w", err)
	}

	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	embedder := googlegenai.GoogleAIEmbedder(g, cfg.EmbedderModel)
	if embedder == nil {
		return nil, nil, fmt.Errorf("embedder %q not found", cfg.EmbedderModel)
	}

	system, err := rag.NewSystem(cfg, embedder, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing pipeline: %w", err)
	}
	return system, cfg, nil
}
