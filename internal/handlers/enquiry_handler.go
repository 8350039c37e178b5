package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/casahub/backend/internal/middleware"
	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/services"
)

type EnquiryHandler struct {
	enquiryService *services.EnquiryService
	userService    *services.UserService
}

func NewEnquiryHandler(enquiryService *services.EnquiryService, userService *services.UserService) *EnquiryHandler {
	return &EnquiryHandler{enquiryService: enquiryService, userService: userService}
}

func (h *EnquiryHandler) CreateEnquiry(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateEnquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		log.Printf("[CreateEnquiry] Validation errors: %v", errors)
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	enquiry, err := h.enquiryService.Create(r.Context(), userID, &req)
	if err != nil {
		log.Printf("[CreateEnquiry] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create enquiry"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(enquiry))
}

// ListOpenEnquiries serves professionals the enquiries they may respond to.
// Fresh enquiries are reserved for the caller's pincode; stale ones are open.
// ListOpenEnquiries serves the enquiries the caller may act on. The pincode
// that unlocks fresh enquiries comes from the caller's stored profile, never
// from the request; callers without a pincode on file only see older ones.
func (h *EnquiryHandler) ListOpenEnquiries(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		log.Printf("[ListOpenEnquiries] Failed to load user %s: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list enquiries"))
		return
	}

	enquiries, info, err := h.enquiryService.ListOpen(r.Context(), user.Address.Pincode, r.URL.Query().Get("type"), pagination(r))
	writePage(w, enquiries, info, err, "Failed to list enquiries")
}

func (h *EnquiryHandler) ListMyEnquiries(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	enquiries, info, err := h.enquiryService.ListMine(r.Context(), userID, pagination(r))
	writePage(w, enquiries, info, err, "Failed to list enquiries")
}
