package api

import (
	"log/slog"
	"net/http"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	pipeline Pipeline
	logger   *slog.Logger
}

// NewHealthHandler creates a new health handler. pipeline backs the
// readiness check; it may be nil, which reports not ready.
func NewHealthHandler(pipeline Pipeline, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{pipeline: pipeline, logger: logger}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.liveness)
	mux.HandleFunc("GET /ready", h.readiness)
}

// liveness reports 200 OK whenever the process is alive.
func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readiness reports 200 OK once the pipeline and its index are usable.
// The count probe touches the persistent store, so a corrupt or
// unreadable index directory surfaces here rather than on first upload.
func (h *HealthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	if h.pipeline == nil {
		http.Error(w, "pipeline not configured", http.StatusServiceUnavailable)
		return
	}
	if _, err := h.pipeline.CourseChunkCount("readiness-probe"); err != nil {
		h.logger.Error("readiness check failed", "error", err)
		http.Error(w, "index not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
