// Package extract pulls plain text out of uploaded course PDFs.
//
// Extraction uses go-fitz (MuPDF). Each page's text is preceded by a
// "--- Page N ---" marker so that downstream consumers can cite page
// numbers. Extraction failures are recovered locally: the caller gets
// an empty string plus the error, which propagates as "no content to
// index" rather than aborting a whole upload batch.
package extract

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Extractor extracts plain text from PDF files.
type Extractor struct {
	logger *slog.Logger
}

// New creates a new Extractor.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract returns the concatenated text of every page in the PDF at
// path, with a 1-based page marker before each page.
//
// On failure it returns an empty string together with the error. The
// document handle is released via defer regardless of outcome.
func (e *Extractor) Extract(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		e.logger.Warn("pdf extraction failed", "path", path, "error", err)
		return "", fmt.Errorf("opening pdf %q: %w", path, err)
	}
	defer func() {
		_ = doc.Close()
	}()

	var b strings.Builder
	for i := range doc.NumPage() {
		pageText, err := doc.Text(i)
		if err != nil {
			// A single unreadable page must not lose the rest of the document.
			e.logger.Warn("skipping unreadable page", "path", path, "page", i+1, "error", err)
			continue
		}
		b.WriteString(PageMarker(i + 1))
		b.WriteString(pageText)
	}

	return b.String(), nil
}

// PageMarker formats the boundary marker inserted before the text of
// page n (1-based).
func PageMarker(n int) string {
	return fmt.Sprintf("\n\n--- Page %d ---\n\n", n)
}
