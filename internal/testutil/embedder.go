// Package testutil provides shared test doubles for the retrieval
// pipeline.
package testutil

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"sync"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
)

// HashEmbedder is a deterministic ai.Embedder for tests. It hashes the
// lowercased tokens of each input into a fixed-dimension bag-of-words
// vector, so texts sharing words get higher cosine similarity. The same
// input always yields the same vector, which lets tests assert ranking
// without a real model.
//
// Safe for concurrent use.
type HashEmbedder struct {
	// Dim is the vector dimension. Defaults to 64 when zero.
	Dim int

	mu    sync.Mutex
	calls int
}

// Name implements ai.Embedder.
func (e *HashEmbedder) Name() string { return "hash-embedder" }

// Register implements ai.Embedder. No-op for testing.
func (e *HashEmbedder) Register(api.Registry) {}

// Embed implements ai.Embedder.
func (e *HashEmbedder) Embed(_ context.Context, req *ai.EmbedRequest) (*ai.EmbedResponse, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()

	embeddings := make([]*ai.Embedding, len(req.Input))
	for i, doc := range req.Input {
		var text strings.Builder
		for _, part := range doc.Content {
			text.WriteString(part.Text)
		}
		embeddings[i] = &ai.Embedding{Embedding: e.vector(text.String())}
	}
	return &ai.EmbedResponse{Embeddings: embeddings}, nil
}

// Calls returns how many Embed calls were made, for asserting batch
// behavior (one call per document batch, not per chunk).
func (e *HashEmbedder) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func (e *HashEmbedder) vector(text string) []float32 {
	dim := e.Dim
	if dim == 0 {
		dim = 64
	}

	v := make([]float32, dim)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,;:!?()[]\"'")
		if tok == "" {
			continue
		}
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		v[h.Sum32()%uint32(dim)]++ //nolint:gosec // dim is a small positive test constant
	}

	// Normalize so cosine similarity behaves; all-stopword inputs get a
	// fixed non-zero vector instead of NaN.
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		v[0] = 1
		return v
	}
	inv := float32(1 / math.Sqrt(norm))
	for i := range v {
		v[i] *= inv
	}
	return v
}

// FailingEmbedder is an ai.Embedder whose Embed always returns Err.
// Used to exercise embedding-failure paths.
type FailingEmbedder struct {
	Err error
}

// Name implements ai.Embedder.
func (e *FailingEmbedder) Name() string { return "failing-embedder" }

// Register implements ai.Embedder. No-op for testing.
func (e *FailingEmbedder) Register(api.Registry) {}

// Embed implements ai.Embedder.
func (e *FailingEmbedder) Embed(context.Context, *ai.EmbedRequest) (*ai.EmbedResponse, error) {
	return nil, e.Err
}
