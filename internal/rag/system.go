package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/firebase/genkit/go/ai"

	"github.com/studyowl/studyowl/internal/chunk"
	"github.com/studyowl/studyowl/internal/config"
	"github.com/studyowl/studyowl/internal/extract"
	"github.com/studyowl/studyowl/internal/knowledge"
)

// ErrExtraction indicates a PDF could not be opened or parsed. It is
// recoverable: the file produced zero chunks, and sibling files in the
// same upload batch must still be processed.
var ErrExtraction = errors.New("pdf extraction failed")

// System is the retrieval pipeline: it processes uploaded PDFs into
// chunks, indexes them under a course namespace, and answers top-k
// semantic queries.
//
// Construction is fail-fast: invalid chunking parameters or a missing
// embedder surface from NewSystem before any document is touched.
type System struct {
	extractor *extract.Extractor
	splitter  *chunk.Splitter
	store     *knowledge.Store
	topK      int
	logger    *slog.Logger
}

// NewSystem builds the pipeline from configuration. The embedder is the
// process-wide shared model handle; it is injected rather than loaded
// here so the indexing and query paths share one instance.
func NewSystem(cfg *config.Config, embedder ai.Embedder, logger *slog.Logger) (*System, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}
	if logger == nil {
		logger = slog.Default()
	}

	splitter, err := chunk.NewSplitter(
		chunk.WithSize(cfg.ChunkSize),
		chunk.WithOverlap(cfg.ChunkOverlap),
	)
	if err != nil {
		return nil, fmt.Errorf("configuring chunker: %w", err)
	}

	store, err := knowledge.NewStore(cfg.StorageDir, embedder, cfg.EmbedderDimension, logger)
	if err != nil {
		return nil, fmt.Errorf("opening knowledge store: %w", err)
	}

	topK := cfg.TopK
	if topK < 1 {
		topK = config.DefaultTopK
	}

	return &System{
		extractor: extract.New(logger.With("component", "extract")),
		splitter:  splitter,
		store:     store,
		topK:      topK,
		logger:    logger,
	}, nil
}

// Process extracts and chunks a single PDF. filename is the declared
// upload name and becomes the source label on every chunk.
//
// An unreadable PDF returns ErrExtraction; a readable PDF with no text
// returns zero chunks and no error. Neither outcome should abort the
// caller's batch.
func (s *System) Process(path, filename string) ([]chunk.Chunk, error) {
	text, err := s.extractor.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if strings.TrimSpace(text) == "" {
		s.logger.Warn("no text extracted", "file", filename)
		return nil, nil
	}

	chunks := s.splitter.Split(text, filename)
	s.logger.Info("document chunked", "file", filename, "chunks", len(chunks))
	return chunks, nil
}

// Index embeds chunks in one batch and upserts them into the course's
// collection. A nil or empty chunk slice is a no-op.
func (s *System) Index(ctx context.Context, courseName string, chunks []chunk.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	records := make([]knowledge.Record, len(chunks))
	for i, c := range chunks {
		records[i] = knowledge.Record{
			Source:  c.Source,
			ChunkID: c.ID,
			Text:    c.Text,
		}
	}

	if err := s.store.Add(ctx, courseName, records); err != nil {
		return fmt.Errorf("indexing %d chunks for course %q: %w", len(chunks), courseName, err)
	}
	return nil
}

// IngestFile runs the full write path for one PDF and returns the
// number of chunks indexed.
func (s *System) IngestFile(ctx context.Context, courseName, path, filename string) (int, error) {
	chunks, err := s.Process(path, filename)
	if err != nil {
		return 0, err
	}
	if err := s.Index(ctx, courseName, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// Retrieve answers a semantic query against a course's material.
// k <= 0 falls back to the configured default; k is capped at
// config.MaxTopK to bound query latency. An empty result means the
// course has no relevant (or no indexed) material; it is not an error.
func (s *System) Retrieve(ctx context.Context, courseName, query string, k int) ([]knowledge.RetrievedChunk, error) {
	if k < 1 {
		k = s.topK
	}
	if k > config.MaxTopK {
		k = config.MaxTopK
	}

	results, err := s.store.Search(ctx, courseName, query, k)
	if err != nil {
		return nil, fmt.Errorf("retrieving for course %q: %w", courseName, err)
	}

	s.logger.Debug("retrieval complete",
		"course", courseName,
		"k", k,
		"results", len(results))
	return results, nil
}

// CourseChunkCount reports how many records a course's collection
// holds. Used by status surfaces.
func (s *System) CourseChunkCount(courseName string) (int, error) {
	return s.store.Count(courseName)
}

// CollectionCount reports how many course collections exist.
func (s *System) CollectionCount() int {
	return s.store.Collections()
}
