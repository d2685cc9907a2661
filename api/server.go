// Package api exposes the document pipeline over HTTP.
//
// Endpoints:
//
//	POST /api/courses/{course}/documents  →  upload PDFs into a course
//	POST /api/courses/{course}/query      →  semantic search over a course
//	GET  /health                          →  liveness probe
//	GET  /ready                           →  readiness probe
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: HTTP middleware (logging, recovery)
//   - health.go: Health check endpoints (/health, /ready)
//   - course.go: Document upload and query endpoints
//   - response.go: JSON response helpers
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/studyowl/studyowl/internal/knowledge"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:8400"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	// This prevents Slowloris attacks (CWE-400).
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	// Uploads carry whole PDFs, so this is generous.
	ReadTimeout = 120 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout = 60 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Pipeline is the slice of the retrieval system the handlers need.
// rag.System satisfies it; tests substitute a stub.
type Pipeline interface {
	IngestFile(ctx context.Context, courseName, path, filename string) (int, error)
	Retrieve(ctx context.Context, courseName, query string, k int) ([]knowledge.RetrievedChunk, error)
	CourseChunkCount(courseName string) (int, error)
}

// Server is the HTTP server for the course material API.
type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger

	// Handlers
	health *HealthHandler
	course *CourseHandler
}

// NewServer creates a new HTTP server with all routes registered.
// pipeline may be nil, in which case the course endpoints report 503
// and only the liveness probe is useful.
func NewServer(pipeline Pipeline, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	s := &Server{
		mux:    mux,
		logger: logger,
		health: NewHealthHandler(pipeline, logger),
		course: NewCourseHandler(pipeline, logger),
	}

	s.health.RegisterRoutes(mux)
	s.course.RegisterRoutes(mux)

	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery → logging → handler
func (s *Server) Handler() http.Handler {
	return chain(s.mux, recoveryMiddleware(s.logger), loggingMiddleware(s.logger))
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
