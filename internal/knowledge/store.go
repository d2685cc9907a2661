package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"

	"github.com/firebase/genkit/go/ai"
	chromem "github.com/philippgille/chromem-go"
)

var (
	// ErrNoEmbedder indicates the store was constructed without an
	// embedder. Fatal at construction time.
	ErrNoEmbedder = errors.New("embedder is required")

	// ErrDimension indicates an embedding whose length does not match
	// the configured vector dimension.
	ErrDimension = errors.New("embedding dimension mismatch")
)

// Store manages per-course collections of embedded chunks with
// nearest-neighbor search, persisted on disk.
//
// The embedder handle is process-wide shared state: loaded once,
// injected here and into every other component that embeds text. The
// underlying chromem collections serialize their own writes, so Store
// is safe for concurrent use; concurrent upserts of the same record id
// resolve to last-write-wins.
type Store struct {
	db        *chromem.DB
	embedder  ai.Embedder
	dimension int
	logger    *slog.Logger
}

// NewStore opens (or creates) the persistent vector database rooted at
// dir. dimension is the vector length produced by the embedder's model;
// every stored and queried vector is validated against it.
func NewStore(dir string, embedder ai.Embedder, dimension int, logger *slog.Logger) (*Store, error) {
	if embedder == nil {
		return nil, ErrNoEmbedder
	}
	if dimension < 1 {
		return nil, fmt.Errorf("%w: dimension must be positive, got %d", ErrDimension, dimension)
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("opening vector database at %q: %w", dir, err)
	}

	return &Store{
		db:        db,
		embedder:  embedder,
		dimension: dimension,
		logger:    logger,
	}, nil
}

// Add embeds records in one batch and upserts them into the course's
// collection, creating the collection if needed.
//
// Record ids derive from (course, source, chunk id): re-adding the same
// source with the same chunk boundaries replaces prior records rather
// than duplicating them.
func (s *Store) Add(ctx context.Context, courseName string, records []Record) error {
	if len(records) == 0 {
		s.logger.Debug("no records to add", "course", courseName)
		return nil
	}

	col, err := s.collection(courseName)
	if err != nil {
		return err
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}

	// One model call per document batch, not per chunk.
	vecs, err := EmbedTexts(ctx, s.embedder, texts)
	if err != nil {
		return err
	}

	docs := make([]chromem.Document, len(records))
	for i, r := range records {
		if len(vecs[i]) != s.dimension {
			return fmt.Errorf("%w: model returned %d dimensions, store configured for %d",
				ErrDimension, len(vecs[i]), s.dimension)
		}
		docs[i] = chromem.Document{
			ID:        RecordID(courseName, r.Source, r.ChunkID),
			Content:   r.Text,
			Embedding: vecs[i],
			Metadata: map[string]string{
				"source":   r.Source,
				"chunk_id": strconv.Itoa(r.ChunkID),
			},
		}
	}

	if err := col.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("upserting %d records into %q: %w", len(docs), col.Name, err)
	}

	s.logger.Debug("records indexed",
		"course", courseName,
		"collection", col.Name,
		"count", len(docs))
	return nil
}

// Search embeds the query and returns up to k nearest chunks from the
// course's collection, best-first.
//
// An empty or never-populated collection yields an empty result, not an
// error: lazy creation on query is the expected path for a course that
// has no material yet.
func (s *Store) Search(ctx context.Context, courseName, query string, k int) ([]RetrievedChunk, error) {
	col, err := s.collection(courseName)
	if err != nil {
		return nil, err
	}

	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if k < 1 {
		k = 1
	}
	// chromem rejects nResults larger than the collection.
	if k > count {
		k = count
	}

	vecs, err := EmbedTexts(ctx, s.embedder, []string{query})
	if err != nil {
		return nil, err
	}

	results, err := col.QueryEmbedding(ctx, vecs[0], k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection %q: %w", col.Name, err)
	}

	chunks := make([]RetrievedChunk, len(results))
	for i, r := range results {
		chunks[i] = RetrievedChunk{
			Text:   r.Content,
			Source: r.Metadata["source"],
			// chromem reports cosine similarity; expose a distance so
			// lower stays "more similar".
			Distance: 1 - r.Similarity,
		}
	}
	return chunks, nil
}

// Count returns the number of records indexed for the course.
func (s *Store) Count(courseName string) (int, error) {
	col, err := s.collection(courseName)
	if err != nil {
		return 0, err
	}
	return col.Count(), nil
}

// Collections returns the number of course collections in the store.
// Used by readiness checks.
func (s *Store) Collections() int {
	return len(s.db.ListCollections())
}

// collection lazily resolves and opens the course's collection.
func (s *Store) collection(courseName string) (*chromem.Collection, error) {
	name := ResolveCollection(courseName)
	col, err := s.db.GetOrCreateCollection(name, nil, NewEmbeddingFunc(s.embedder))
	if err != nil {
		return nil, fmt.Errorf("opening collection %q: %w", name, err)
	}
	return col, nil
}

// RecordID derives the stable record identifier for a chunk. The id is
// unique per (course, source, chunk id) and sanitized to [A-Za-z0-9_-],
// which makes re-uploads of an identical file an idempotent upsert.
func RecordID(courseName, source string, chunkID int) string {
	raw := fmt.Sprintf("%s_%s_%d", courseName, source, chunkID)
	id := make([]byte, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_', c == '-':
			id[i] = c
		default:
			id[i] = '_'
		}
	}
	return string(id)
}
