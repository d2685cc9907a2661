package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{Level: slog.LevelInfo})

	logger.Info("indexing started", "course", "intro_to_cs")

	out := buf.String()
	if !strings.Contains(out, "indexing started") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "course=intro_to_cs") {
		t.Errorf("output missing attribute: %q", out)
	}
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Config{JSON: true})

	logger.Info("chunked document", "chunks", 12)

	out := buf.String()
	if !strings.Contains(out, `"msg":"chunked document"`) {
		t.Errorf("expected JSON output, got %q", out)
	}
	if !strings.Contains(out, `"chunks":12`) {
		t.Errorf("expected JSON attribute, got %q", out)
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     slog.Level
		logFn     func(Logger)
		wantEmpty bool
	}{
		{
			name:      "debug suppressed at info level",
			level:     slog.LevelInfo,
			logFn:     func(l Logger) { l.Debug("hidden") },
			wantEmpty: true,
		},
		{
			name:      "debug emitted at debug level",
			level:     slog.LevelDebug,
			logFn:     func(l Logger) { l.Debug("visible") },
			wantEmpty: false,
		},
		{
			name:      "warn emitted at info level",
			level:     slog.LevelInfo,
			logFn:     func(l Logger) { l.Warn("visible") },
			wantEmpty: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&buf, Config{Level: tt.level})

			tt.logFn(logger)

			if got := buf.Len() == 0; got != tt.wantEmpty {
				t.Errorf("empty output = %v, want %v (output: %q)", got, tt.wantEmpty, buf.String())
			}
		})
	}
}

func TestNewNop_DiscardsOutput(t *testing.T) {
	logger := NewNop()
	if logger == nil {
		t.Fatal("NewNop returned nil")
	}
	// Must not panic at any level.
	logger.Debug("discarded")
	logger.Error("discarded")
}
