package handler

import (
	"log/slog"
	"net/http"

	libSvc "satchel/internal/domain/services/library"
	"satchel/internal/httputil"
)

// SearchHandler handles name search requests
type SearchHandler struct {
	searchService libSvc.SearchService
	logger        *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService libSvc.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search filters every folder and file name by case-insensitive substring.
// A blank or missing q deactivates the search and returns no matches.
// GET /api/search?q={query}
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requireOwner(w, r)
	if !ok {
		return
	}

	results, err := h.searchService.Search(r.Context(), ownerID, r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}
