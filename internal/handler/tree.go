package handler

import (
	"log/slog"
	"net/http"

	library "satchel/internal/domain/models/library"
	libSvc "satchel/internal/domain/services/library"
	"satchel/internal/httputil"
)

// TreeHandler handles HTTP requests for tree views
type TreeHandler struct {
	treeService  libSvc.TreeService
	bootstrapper libSvc.RootBootstrapper
	logger       *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService libSvc.TreeService, bootstrapper libSvc.RootBootstrapper, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService:  treeService,
		bootstrapper: bootstrapper,
		logger:       logger,
	}
}

// GetTree returns the nested folder/file tree for the authenticated owner.
// The root is created on first access, so a brand-new owner gets a tree with
// an empty root rather than a 404.
// GET /api/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	if _, err := h.bootstrapper.EnsureRoot(r.Context(), ownerID); err != nil {
		handleError(w, err)
		return
	}

	tree, err := h.treeService.GetTree(r.Context(), ownerID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// ListDestinations returns every folder root-first depth-first, annotated
// with which are invalid targets for the move in progress.
// GET /api/tree/destinations?moving_kind=folder&moving_id={id}
func (h *TreeHandler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var moving *library.Item
	if id := r.URL.Query().Get("moving_id"); id != "" {
		kind := library.ItemKind(r.URL.Query().Get("moving_kind"))
		if kind != library.KindFolder && kind != library.KindFile {
			httputil.RespondError(w, http.StatusBadRequest, "moving_kind must be folder or file")
			return
		}
		moving = &library.Item{Kind: kind, ID: id}
	}

	destinations, err := h.treeService.ListDestinations(r.Context(), ownerID, moving)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, destinations)
}

// GetRoot returns the owner's root folder, creating it on first access
// GET /api/tree/root
func (h *TreeHandler) GetRoot(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	root, err := h.bootstrapper.EnsureRoot(r.Context(), ownerID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, root)
}
