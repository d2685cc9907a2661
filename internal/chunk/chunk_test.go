package chunk

import (
	"errors"
	"strings"
	"testing"
)

func TestNewSplitter_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			opts:    nil,
			wantErr: false,
		},
		{
			name:    "custom valid sizes",
			opts:    []Option{WithSize(20), WithOverlap(5)},
			wantErr: false,
		},
		{
			name:    "zero overlap is valid",
			opts:    []Option{WithSize(100), WithOverlap(0)},
			wantErr: false,
		},
		{
			name:    "overlap equals size",
			opts:    []Option{WithSize(100), WithOverlap(100)},
			wantErr: true,
		},
		{
			name:    "overlap exceeds size",
			opts:    []Option{WithSize(100), WithOverlap(150)},
			wantErr: true,
		},
		{
			name:    "zero size",
			opts:    []Option{WithSize(0)},
			wantErr: true,
		},
		{
			name:    "negative overlap",
			opts:    []Option{WithOverlap(-1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSplitter(tt.opts...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected construction error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSplitter() error = %v", err)
			}
			if s == nil {
				t.Fatal("NewSplitter() returned nil splitter")
			}
		})
	}
}

func TestNewSplitter_OverlapSentinel(t *testing.T) {
	_, err := NewSplitter(WithSize(10), WithOverlap(10))
	if !errors.Is(err, ErrInvalidOverlap) {
		t.Fatalf("error = %v, want ErrInvalidOverlap", err)
	}
}

func TestSplit_Empty(t *testing.T) {
	s := mustSplitter(t, WithSize(100), WithOverlap(20))

	if got := s.Split("", "doc.pdf"); len(got) != 0 {
		t.Errorf("Split(empty) = %d chunks, want 0", len(got))
	}
	if got := s.Split("   \n\t  ", "doc.pdf"); len(got) != 0 {
		t.Errorf("Split(whitespace) = %d chunks, want 0", len(got))
	}
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	s := mustSplitter(t, WithSize(1000), WithOverlap(200))

	chunks := s.Split("A short lecture note.", "notes.pdf")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want exactly 1", len(chunks))
	}
	if chunks[0].Text != "A short lecture note." {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
	if chunks[0].ID != 0 {
		t.Errorf("chunk id = %d, want 0", chunks[0].ID)
	}
	if chunks[0].Source != "notes.pdf" {
		t.Errorf("chunk source = %q, want notes.pdf", chunks[0].Source)
	}
}

func TestSplit_SentenceBoundaries(t *testing.T) {
	// Small windows around three sentences: boundaries should land at
	// or near the periods and ids must be sequential from 0.
	s := mustSplitter(t, WithSize(20), WithOverlap(5))

	text := "Sentence one. Sentence two. Sentence three."
	chunks := s.Split(text, "doc.pdf")

	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want at least 3", len(chunks))
	}
	if chunks[0].Text != "Sentence one." {
		t.Errorf("first chunk = %q, want %q (break at first period)", chunks[0].Text, "Sentence one.")
	}
	for i, c := range chunks {
		if c.ID != i {
			t.Errorf("chunk %d has id %d, want sequential ids", i, c.ID)
		}
		if c.Text == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if !strings.Contains(text, c.Text) {
			t.Errorf("chunk %d %q is not a substring of the input", i, c.Text)
		}
	}

	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last.Text) {
		t.Errorf("last chunk %q does not end the input", last.Text)
	}
}

func TestSplit_CountLowerBound(t *testing.T) {
	// Chunking a text of length L with size S produces at least
	// ceil(L/S) chunks.
	tests := []struct {
		name    string
		size    int
		overlap int
		length  int
	}{
		{"no overlap", 50, 0, 500},
		{"default ratio", 100, 20, 1000},
		{"large overlap", 10, 7, 200},
		{"single window", 100, 20, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSplitter(t, WithSize(tt.size), WithOverlap(tt.overlap))
			text := strings.Repeat("x", tt.length)

			chunks := s.Split(text, "doc.pdf")

			lower := (tt.length + tt.size - 1) / tt.size
			if len(chunks) < lower {
				t.Errorf("got %d chunks, want at least %d", len(chunks), lower)
			}
		})
	}
}

func TestSplit_TerminatesWithEarlyBreaks(t *testing.T) {
	// Periods just past the window midpoint plus an overlap larger than
	// the break distance could stall the window; Split must still
	// terminate and cover the text.
	s := mustSplitter(t, WithSize(10), WithOverlap(7))
	text := strings.Repeat("abcdef.xyz", 20)

	chunks := s.Split(text, "doc.pdf")

	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	last := chunks[len(chunks)-1].Text
	if !strings.HasSuffix(text, last) {
		t.Errorf("last chunk %q does not reach the end of the text", last)
	}
}

func TestSplit_Coverage(t *testing.T) {
	// The union of chunk ranges covers the whole text: the first chunk
	// starts it, the last chunk ends it, and every chunk is a substring.
	s := mustSplitter(t, WithSize(30), WithOverlap(10))
	text := "The mitochondrion is the powerhouse of the cell. It produces ATP. Cellular respiration occurs within it. Oxygen is consumed in the process."

	chunks := s.Split(text, "bio.pdf")
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want several", len(chunks))
	}

	if !strings.HasPrefix(text, chunks[0].Text) {
		t.Errorf("first chunk %q does not start the text", chunks[0].Text)
	}
	if !strings.HasSuffix(text, chunks[len(chunks)-1].Text) {
		t.Errorf("last chunk %q does not end the text", chunks[len(chunks)-1].Text)
	}

	// Consecutive chunks must not leave gaps: each chunk has to begin
	// at or before the previous chunk's end (the sentences in this text
	// are unique, so Index recovers each chunk's true position).
	prevEnd := 0
	for i, c := range chunks {
		start := strings.Index(text, c.Text)
		if start < 0 {
			t.Fatalf("chunk %d not found in text", i)
		}
		if start > prevEnd {
			if skipped := text[prevEnd:start]; strings.TrimSpace(skipped) != "" {
				t.Errorf("gap before chunk %d: skipped %q", i, skipped)
			}
		}
		if end := start + len(c.Text); end > prevEnd {
			prevEnd = end
		}
	}
	if prevEnd != len(text) {
		t.Errorf("chunks cover up to byte %d, want %d", prevEnd, len(text))
	}
}

func TestSplit_MultiByteSafe(t *testing.T) {
	// Rune-based windows must never split a multi-byte character.
	s := mustSplitter(t, WithSize(10), WithOverlap(2))
	text := strings.Repeat("数学は楽しい。", 10)

	for i, c := range s.Split(text, "math.pdf") {
		if !strings.Contains(text, c.Text) {
			t.Errorf("chunk %d %q contains broken runes", i, c.Text)
		}
	}
}

func mustSplitter(t *testing.T, opts ...Option) *Splitter {
	t.Helper()
	s, err := NewSplitter(opts...)
	if err != nil {
		t.Fatalf("NewSplitter: %v", err)
	}
	return s
}
