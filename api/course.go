package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Upload and query validation constants.
const (
	// MaxUploadBytes bounds a whole multipart upload request.
	MaxUploadBytes = 100 << 20

	// MaxMemoryBytes is the in-memory buffer for multipart parsing;
	// larger parts spill to temporary files.
	MaxMemoryBytes = 16 << 20

	// MaxCourseNameLength bounds the course path segment.
	MaxCourseNameLength = 200

	// MaxQueryLength bounds the query text.
	MaxQueryLength = 4096
)

// CourseHandler handles document upload and query endpoints for a course.
type CourseHandler struct {
	pipeline Pipeline
	logger   *slog.Logger
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(pipeline Pipeline, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{pipeline: pipeline, logger: logger}
}

// RegisterRoutes registers course routes on the given mux.
func (h *CourseHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/courses/{course}/documents", h.upload)
	mux.HandleFunc("POST /api/courses/{course}/query", h.query)
}

// FileResult reports the outcome for one uploaded file. A failed file
// carries an error message and zero chunks; it never aborts the batch.
type FileResult struct {
	Filename string `json:"filename"`
	Chunks   int    `json:"chunks"`
	Error    string `json:"error,omitempty"`
}

// UploadResponse is the response body for a document upload.
type UploadResponse struct {
	Course      string       `json:"course"`
	Files       []FileResult `json:"files"`
	TotalChunks int          `json:"total_chunks"`
}

// upload ingests one or more PDFs into a course.
//
// Request: multipart/form-data with one or more "files" parts.
// Each file is extracted, chunked, embedded, and indexed; a file that
// fails (not a PDF, unreadable, embedding error) is reported in its
// FileResult while the rest of the batch proceeds.
func (h *CourseHandler) upload(w http.ResponseWriter, r *http.Request) {
	if h.pipeline == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", "pipeline not configured")
		return
	}

	course, ok := courseName(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxMemoryBytes); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "expected multipart form upload")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", "no files in upload (use form field \"files\")")
		return
	}

	tmpDir, err := os.MkdirTemp("", "studyowl-upload-*")
	if err != nil {
		h.logger.Error("failed to create upload dir", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to stage upload")
		return
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	resp := UploadResponse{Course: course, Files: make([]FileResult, 0, len(headers))}
	for i, fh := range headers {
		result := h.ingestOne(r, course, tmpDir, i, fh)
		resp.TotalChunks += result.Chunks
		resp.Files = append(resp.Files, result)
	}

	h.logger.Info("upload complete",
		"course", course,
		"files", len(resp.Files),
		"chunks", resp.TotalChunks)
	writeJSON(w, http.StatusOK, resp)
}

// ingestOne stages a single multipart file on disk and runs it through
// the pipeline. Failures come back as the FileResult's Error.
func (h *CourseHandler) ingestOne(r *http.Request, course, tmpDir string, i int, fh *multipart.FileHeader) FileResult {
	name := filepath.Base(fh.Filename)
	result := FileResult{Filename: name}

	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		result.Error = "only PDF files are accepted"
		return result
	}

	path, err := h.stage(tmpDir, i, fh)
	if err != nil {
		h.logger.Warn("failed to stage file", "file", name, "error", err)
		result.Error = "failed to read uploaded file"
		return result
	}

	count, err := h.pipeline.IngestFile(r.Context(), course, path, name)
	if err != nil {
		h.logger.Warn("file ingestion failed", "course", course, "file", name, "error", err)
		result.Error = err.Error()
		return result
	}

	result.Chunks = count
	return result
}

// stage copies a multipart part into tmpDir so the PDF parser can read
// it from a real file path.
func (h *CourseHandler) stage(tmpDir string, i int, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	path := filepath.Join(tmpDir, "upload-"+strconv.Itoa(i)+".pdf")
	dst, err := os.Create(path) // #nosec G304 -- path is built from a fresh MkdirTemp dir
	if err != nil {
		return "", err
	}

	_, err = io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// QueryRequest is the request body for a course query.
type QueryRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

// QueryResponse is the response body for a course query. An empty
// Results slice with a Message means the course has no relevant
// material; callers must not treat it as an error.
type QueryResponse struct {
	Course  string        `json:"course"`
	Query   string        `json:"query"`
	Results []ChunkResult `json:"results"`
	Message string        `json:"message,omitempty"`
}

// ChunkResult is one retrieved passage with its provenance.
type ChunkResult struct {
	Text     string  `json:"text"`
	Source   string  `json:"source"`
	Distance float32 `json:"distance"`
}

// query answers a semantic question against a course's indexed material.
//
// Request body: {"query": "...", "k": 5}. k is optional; the server
// default applies when it is absent or non-positive.
func (h *CourseHandler) query(w http.ResponseWriter, r *http.Request) {
	if h.pipeline == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", "pipeline not configured")
		return
	}

	course, ok := courseName(w, r)
	if !ok {
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "query is required")
		return
	}
	if len(req.Query) > MaxQueryLength {
		writeError(w, http.StatusBadRequest, "bad_request", "query too long")
		return
	}

	chunks, err := h.pipeline.Retrieve(r.Context(), course, req.Query, req.K)
	if err != nil {
		h.logger.Error("retrieval failed", "course", course, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "retrieval failed")
		return
	}

	resp := QueryResponse{
		Course:  course,
		Query:   req.Query,
		Results: make([]ChunkResult, 0, len(chunks)),
	}
	for _, c := range chunks {
		resp.Results = append(resp.Results, ChunkResult{Text: c.Text, Source: c.Source, Distance: c.Distance})
	}
	if len(resp.Results) == 0 {
		resp.Message = "no relevant material found for this course"
	}

	writeJSON(w, http.StatusOK, resp)
}

// courseName extracts and validates the {course} path segment. It
// writes the error response itself when validation fails.
func courseName(w http.ResponseWriter, r *http.Request) (string, bool) {
	course := strings.TrimSpace(r.PathValue("course"))
	if course == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "course name is required")
		return "", false
	}
	if len(course) > MaxCourseNameLength {
		writeError(w, http.StatusBadRequest, "bad_request", "course name too long")
		return "", false
	}
	return course, true
}
