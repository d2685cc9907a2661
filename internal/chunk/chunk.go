// Package chunk splits extracted document text into overlapping,
// sentence-boundary-aware segments sized for embedding.
//
// The splitter walks the text in a sliding window. When the window does
// not reach the end of the text, the right edge is pulled back to the
// last sentence-ending period or newline inside the window, but only if
// that break point lies past the window midpoint; an early break would
// otherwise produce degenerate, over-short chunks. Consecutive chunks
// share Overlap characters of context.
package chunk

import (
	"errors"
	"fmt"
	"strings"
)

// Default chunking parameters, tuned for embedding-model input sizes.
const (
	DefaultSize    = 1000
	DefaultOverlap = 200
)

// ErrInvalidOverlap indicates overlap >= size, which would stop the
// sliding window from advancing.
var ErrInvalidOverlap = errors.New("chunk overlap must be smaller than chunk size")

// Chunk is one unit of indexed text. Chunks are immutable once created:
// re-uploading a document produces a fresh chunk sequence.
type Chunk struct {
	// Text is the whitespace-trimmed chunk content. Never empty.
	Text string

	// Source is the file name the chunk was extracted from.
	Source string

	// ID is the 0-based position within a single document's chunk
	// sequence, assigned in extraction order.
	ID int
}

// Splitter splits text into overlapping chunks.
// A Splitter is stateless after construction and safe for concurrent
// use across documents.
type Splitter struct {
	size    int
	overlap int
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithSize sets the target chunk length in characters.
func WithSize(size int) Option {
	return func(s *Splitter) {
		s.size = size
	}
}

// WithOverlap sets the number of characters repeated between
// consecutive chunks.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		s.overlap = overlap
	}
}

// NewSplitter creates a Splitter.
// It fails fast on overlap >= size or a non-positive size: these are
// configuration errors that must surface at construction time, not as a
// non-terminating loop mid-batch.
func NewSplitter(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		size:    DefaultSize,
		overlap: DefaultOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.size < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", s.size)
	}
	if s.overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must not be negative, got %d", s.overlap)
	}
	if s.overlap >= s.size {
		return nil, fmt.Errorf("%w: overlap %d, size %d", ErrInvalidOverlap, s.overlap, s.size)
	}
	return s, nil
}

// Size returns the configured target chunk length.
func (s *Splitter) Size() int { return s.size }

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int { return s.overlap }

// Split chunks text into an ordered sequence labeled with source.
// Empty input produces no chunks; input shorter than the chunk size
// produces exactly one. Chunk IDs are sequential starting at 0.
//
// Offsets are counted in runes, not bytes, so multi-byte characters are
// never split mid-encoding.
func (s *Splitter) Split(text, source string) []Chunk {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}

	chunks := make([]Chunk, 0, n/(s.size-s.overlap)+1)
	start := 0

	for start < n {
		end := start + s.size

		if end >= n {
			// Final window: take the remainder as-is.
			appendChunk(&chunks, runes[start:n], source)
			break
		}

		// Prefer a sentence boundary over the hard cutoff, but only if
		// it falls past the window midpoint.
		if bp := lastBreak(runes[start:end]); bp > s.size/2 {
			end = start + bp + 1
		}

		appendChunk(&chunks, runes[start:end], source)

		next := end - s.overlap
		if next <= start {
			// Degenerate boundary placement; force progress.
			next = end
		}
		start = next
	}

	return chunks
}

// appendChunk trims and appends a chunk, skipping whitespace-only
// windows so that Chunk.Text is never empty.
func appendChunk(chunks *[]Chunk, window []rune, source string) {
	text := strings.TrimSpace(string(window))
	if text == "" {
		return
	}
	*chunks = append(*chunks, Chunk{
		Text:   text,
		Source: source,
		ID:     len(*chunks),
	})
}

// lastBreak returns the index of the last sentence-ending period or
// newline in window, or -1 if there is none.
func lastBreak(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == '.' || window[i] == '\n' {
			return i
		}
	}
	return -1
}
