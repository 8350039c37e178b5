package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/casahub/backend/internal/middleware"
	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/services"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search runs one fuzzy query across every entity category. Guests get the
// default visibility rules; logged-in viewers additionally have their blocked
// users filtered out.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Query parameter q is required"))
		return
	}

	viewerID := middleware.GetUserID(r.Context())
	results, err := h.searchService.Search(r.Context(), q, viewerID, pagination(r))
	if err != nil {
		log.Printf("[Search] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Search failed"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(results))
}
