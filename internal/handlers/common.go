package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/query"
	"github.com/casahub/backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// pagination pulls page/limit from the query string with the shared defaults.
func pagination(r *http.Request) query.Pagination {
	return query.ParsePagination(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
}

// writePage renders a paginated list result. A page beyond the last one is a
// client error, but the response still carries the real totals and an empty
// data array so clients can recover without a second request.
func writePage(w http.ResponseWriter, data interface{}, info models.PageInfo, err error, failMsg string) {
	payload := models.PagedData{Data: data, PageInfo: info}
	if errors.Is(err, services.ErrPageOutOfRange) {
		resp := models.NewErrorResponse("Page number out of range")
		resp.Data = payload
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(failMsg))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(payload))
}
