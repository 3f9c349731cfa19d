package handler

import (
	"context"
	"log/slog"
	"net/http"

	library "satchel/internal/domain/models/library"
	libSvc "satchel/internal/domain/services/library"
	"satchel/internal/httputil"
)

// FileHandler handles file record HTTP requests
type FileHandler struct {
	fileService libSvc.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService libSvc.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// CreateFile attaches a new file record to an existing folder
// POST /api/files
func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req library.CreateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OwnerID = ownerID

	file, err := h.fileService.CreateFile(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// GetFile retrieves a file record by ID
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	file, err := h.fileService.GetFile(r.Context(), id, ownerID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// UpdateFile renames and/or moves a file record
// PATCH /api/files/{id}
func (h *FileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	var req library.UpdateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OwnerID = ownerID

	file, err := h.fileService.UpdateFile(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile removes a single file record
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), id, ownerID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LinkSubject sets the weak subject reference on a file
// PUT /api/files/{id}/subject
func (h *FileHandler) LinkSubject(w http.ResponseWriter, r *http.Request) {
	h.link(w, r, h.fileService.LinkSubject)
}

// LinkUnit sets the weak unit reference on a file
// PUT /api/files/{id}/unit
func (h *FileHandler) LinkUnit(w http.ResponseWriter, r *http.Request) {
	h.link(w, r, h.fileService.LinkUnit)
}

func (h *FileHandler) link(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, fileID string, req *library.LinkRequest) (*library.File, error)) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	var req library.LinkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OwnerID = ownerID

	file, err := fn(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}
