package httpserver

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"med-lab/contract"
	"med-lab/domain/document"
	"med-lab/errors"
)

type uploadResponse struct {
	Message    string    `json:"message"`
	DocumentID uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
}

// POST /api/documents
// Multipart body with a "file" part. The upload is queued; ingestion runs
// on the worker pool, so the returned ID names the job, not a chunk.
func (rt *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, rt.maxUploadBytes)

	data, filename, err := filePart(req)
	if err != nil {
		return err
	}

	job := contract.IngestJob{
		ID:       uuid.New(),
		Filename: filename,
		Data:     data,
		QueuedAt: time.Now().UTC(),
	}
	if err := rt.uploads.Submit(req.Context(), job); err != nil {
		return err
	}

	return respondJSON(w, http.StatusAccepted, uploadResponse{
		Message:    "Document queued for processing",
		DocumentID: job.ID,
		Filename:   job.Filename,
	})
}

// POST /api/analyze
// Classifies the uploaded image synchronously without storing anything.
func (rt *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, rt.maxUploadBytes)

	data, filename, err := filePart(req)
	if err != nil {
		return err
	}

	return respondJSON(w, http.StatusOK, rt.documents.Analyze(data, filename))
}

type documentsResponse struct {
	Documents []string `json:"documents"`
}

// GET /api/documents
func (rt *Router) handleListDocuments(w http.ResponseWriter, _ *http.Request) error {
	sources, err := rt.documents.ListDocuments()
	if err != nil {
		return err
	}
	if sources == nil {
		sources = []string{}
	}
	return respondJSON(w, http.StatusOK, documentsResponse{Documents: sources})
}

type deleteResponse struct {
	Message       string `json:"message"`
	ChunksDeleted int    `json:"chunks_deleted"`
}

// DELETE /api/documents/{source}
func (rt *Router) handleDeleteDocument(w http.ResponseWriter, req *http.Request) error {
	deleted, err := rt.documents.DeleteDocument(chi.URLParam(req, "source"))
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, deleteResponse{
		Message:       "Document deleted successfully",
		ChunksDeleted: deleted,
	})
}

type searchResult struct {
	ID          uuid.UUID         `json:"id"`
	Source      string            `json:"source"`
	ContentType string            `json:"content_type"`
	Content     string            `json:"content"`
	Index       int               `json:"index"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
	Total   uint64         `json:"total"`
}

// GET /api/search?q=&source=&offset=
func (rt *Router) handleSearch(w http.ResponseWriter, req *http.Request) error {
	query := req.URL.Query().Get("q")
	if query == "" {
		return errors.ErrEmptyQuery
	}
	source := req.URL.Query().Get("source")
	offset, _ := strconv.Atoi(req.URL.Query().Get("offset"))

	chunks, total, err := rt.documents.Search(req.Context(), query, source, offset)
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, searchResponse{
		Results: toSearchResults(chunks),
		Total:   total,
	})
}

// toSearchResults keeps stored embeddings off the wire.
func toSearchResults(chunks []document.Chunk) []searchResult {
	return lo.Map(chunks, func(chunk document.Chunk, _ int) searchResult {
		return searchResult{
			ID:          chunk.ID,
			Source:      chunk.Source,
			ContentType: string(chunk.ContentType),
			Content:     chunk.Content,
			Index:       chunk.Index,
			Metadata:    chunk.Metadata,
			CreatedAt:   chunk.CreatedAt,
		}
	})
}

// filePart reads the uploaded file from a multipart request. The filename
// is cut down to its base so client paths never reach the store.
func filePart(req *http.Request) ([]byte, string, error) {
	file, header, err := req.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", errors.ErrMissingFile, err)
	}
	defer file.Close()
	if header.Filename == "" {
		return nil, "", fmt.Errorf("%w: no filename", errors.ErrMissingFile)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}
	return data, filepath.Base(header.Filename), nil
}
