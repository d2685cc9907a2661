package config

import (
	"fmt"
	"os"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
//
// Validation is deliberately strict and runs before any document is
// processed: a bad overlap/chunk-size combination would otherwise only
// show up as a non-terminating chunking loop mid-batch.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	// 1. API key (required by the embedding backend)
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY environment variable is required\n"+
			"Get your API key at: https://ai.google.dev/gemini-api/docs/api-key",
			ErrMissingAPIKey)
	}

	// 2. Chunking: overlap must be strictly smaller than the chunk size,
	// otherwise the sliding window cannot advance.
	if c.ChunkSize < 1 {
		return fmt.Errorf("%w: chunk_size must be positive, got %d", ErrInvalidChunkSize, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk_overlap must not be negative, got %d", ErrInvalidChunkOverlap, c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap (%d) must be smaller than chunk_size (%d)",
			ErrInvalidChunkOverlap, c.ChunkOverlap, c.ChunkSize)
	}

	// 3. Embedder
	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: embedder_model cannot be empty", ErrInvalidEmbedderModel)
	}
	if c.EmbedderDimension < 1 {
		return fmt.Errorf("%w: embedder_dimension must be positive, got %d",
			ErrInvalidEmbedderDimension, c.EmbedderDimension)
	}

	// 4. Retrieval
	if c.TopK < 1 || c.TopK > MaxTopK {
		return fmt.Errorf("%w: must be between 1 and %d, got %d", ErrInvalidTopK, MaxTopK, c.TopK)
	}

	// 5. Storage
	if c.StorageDir == "" {
		return fmt.Errorf("%w: storage_dir cannot be empty", ErrInvalidStorageDir)
	}

	return nil
}
