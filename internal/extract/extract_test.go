package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/studyowl/studyowl/internal/log"
)

func TestExtract_MissingFile(t *testing.T) {
	e := New(log.NewNop())

	text, err := e.Extract(filepath.Join(t.TempDir(), "nope.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if text != "" {
		t.Errorf("text = %q, want empty on failure", text)
	}
}

func TestExtract_MalformedPDF(t *testing.T) {
	// A file that is not a PDF must produce empty text plus an error,
	// never a panic: one bad upload must not take down the batch.
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf"), 0o600); err != nil {
		t.Fatal(err)
	}

	e := New(log.NewNop())
	text, err := e.Extract(path)
	if err == nil {
		t.Fatal("expected error for malformed pdf")
	}
	if text != "" {
		t.Errorf("text = %q, want empty on failure", text)
	}
}

func TestNew_NilLogger(t *testing.T) {
	if e := New(nil); e == nil || e.logger == nil {
		t.Fatal("New(nil) must fall back to the default logger")
	}
}

func TestPageMarker(t *testing.T) {
	tests := []struct {
		page int
		want string
	}{
		{1, "--- Page 1 ---"},
		{42, "--- Page 42 ---"},
	}

	for _, tt := range tests {
		got := PageMarker(tt.page)
		if !strings.Contains(got, tt.want) {
			t.Errorf("PageMarker(%d) = %q, want contains %q", tt.page, got, tt.want)
		}
		if !strings.HasPrefix(got, "\n\n") || !strings.HasSuffix(got, "\n\n") {
			t.Errorf("PageMarker(%d) = %q, want blank lines around the marker", tt.page, got)
		}
	}
}
