package handler

import (
	"log/slog"
	"net/http"

	library "satchel/internal/domain/models/library"
	libSvc "satchel/internal/domain/services/library"
	"satchel/internal/httputil"
)

// BulkHandler applies a move or delete to a whole selection
type BulkHandler struct {
	bulkService libSvc.BulkService
	logger      *slog.Logger
}

// NewBulkHandler creates a new bulk handler
func NewBulkHandler(bulkService libSvc.BulkService, logger *slog.Logger) *BulkHandler {
	return &BulkHandler{
		bulkService: bulkService,
		logger:      logger,
	}
}

type bulkMoveRequest struct {
	Selection     library.Selection `json:"selection"`
	DestinationID string            `json:"destination_id"`
}

type bulkDeleteRequest struct {
	Selection library.Selection `json:"selection"`
}

// BulkMove moves every selected folder and file into the destination folder.
// Rejected members are reported as skipped, never abort the batch.
// POST /api/bulk/move
func (h *BulkHandler) BulkMove(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req bulkMoveRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Selection.Count() == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "selection is empty")
		return
	}
	if req.DestinationID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "destination_id is required")
		return
	}

	report, err := h.bulkService.BulkMove(r.Context(), ownerID, req.Selection, req.DestinationID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}

// BulkDelete deletes every selected folder (recursively) and file.
// POST /api/bulk/delete
func (h *BulkHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req bulkDeleteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Selection.Count() == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "selection is empty")
		return
	}

	report, err := h.bulkService.BulkDelete(r.Context(), ownerID, req.Selection)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}
