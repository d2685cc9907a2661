package knowledge

import (
	"context"
	"errors"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	chromem "github.com/philippgille/chromem-go"
)

// ErrEmbedding indicates that the underlying embedding model call
// failed. It is distinct from an empty search result: an embedding
// failure means indexing or querying did not complete and must not be
// treated as "zero relevant chunks".
var ErrEmbedding = errors.New("embedding failed")

// NewEmbeddingFunc creates a chromem-go EmbeddingFunc from a Genkit
// ai.Embedder. The returned function bridges Genkit's embedding API
// with chromem-go's requirements.
//
// Note: chromem-go normalizes vectors itself, so no manual
// normalization is needed.
func NewEmbeddingFunc(embedder ai.Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vecs, err := EmbedTexts(ctx, embedder, []string{text})
		if err != nil {
			return nil, err
		}
		return vecs[0], nil
	}
}

// EmbedTexts embeds a batch of texts in a single model call and returns
// one vector per input, in order.
//
// Indexing throughput depends on batching: the model call overhead is
// paid once per document batch, not once per chunk. Queries pass a
// single-element batch.
func EmbedTexts(ctx context.Context, embedder ai.Embedder, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	input := make([]*ai.Document, len(texts))
	for i, t := range texts {
		input[i] = ai.DocumentFromText(t, nil)
	}

	resp, err := embedder.Embed(ctx, &ai.EmbedRequest{Input: input})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs",
			ErrEmbedding, len(resp.Embeddings), len(texts))
	}

	vecs := make([][]float32, len(texts))
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Embedding) == 0 {
			return nil, fmt.Errorf("%w: empty embedding at index %d", ErrEmbedding, i)
		}
		vecs[i] = e.Embedding
	}
	return vecs, nil
}
