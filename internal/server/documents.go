package server

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/docuscan/docintake/internal/common"
)

// uploads and OCR text are capped well above any realistic scan
const maxUploadBytes = 32 << 20
const maxTextBytes = 8 << 20

// handleUpload accepts a multipart upload (field "file") and registers the
// document with status UPLOADED.
// POST /api/documents
func (s *Service) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, common.NewAppError("INVALID_INPUT", "expected multipart form with a file field", common.ErrInvalidInput))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, common.NewAppError("INVALID_INPUT", "file field is required", common.ErrInvalidInput))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, common.WrapError(err, "read upload"))
		return
	}

	doc, err := s.store.SaveDocument(r.Context(), header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

// GET /api/documents/{id}
func (s *Service) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, common.NewAppError("INVALID_INPUT", "id must be a UUID", common.ErrInvalidInput))
		return
	}
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleSaveText stores OCR output for a document. The body is the plain
// text itself.
// PUT /api/documents/{id}/text
func (s *Service) handleSaveText(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, common.NewAppError("INVALID_INPUT", "id must be a UUID", common.ErrInvalidInput))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxTextBytes))
	if err != nil {
		writeError(w, common.WrapError(err, "read body"))
		return
	}

	if err := s.store.SaveText(r.Context(), id, string(body)); err != nil {
		writeError(w, err)
		return
	}

	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
