package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/casahub/backend/internal/middleware"
	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/services"
)

type InstantServiceHandler struct {
	instantService *services.InstantServiceService
}

func NewInstantServiceHandler(instantService *services.InstantServiceService) *InstantServiceHandler {
	return &InstantServiceHandler{instantService: instantService}
}

func (h *InstantServiceHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.instantService.ListCategories(r.Context())
	if err != nil {
		log.Printf("[ListInstantCategories] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list service categories"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(categories))
}

func (h *InstantServiceHandler) BookService(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.OrderInstantServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		log.Printf("[BookService] Validation errors: %v", errors)
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	booking, err := h.instantService.Book(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Service category not found"))
		case errors.Is(err, services.ErrInvalidService):
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Service not offered for this subcategory"))
		case errors.Is(err, services.ErrAddressNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Delivery address not found"))
		default:
			log.Printf("[BookService] Service error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to book service"))
		}
		return
	}

	log.Printf("[BookService] Booking created: %s", booking.ID)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(booking))
}

func (h *InstantServiceHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	bookings, info, err := h.instantService.ListMine(r.Context(), userID, pagination(r))
	writePage(w, bookings, info, err, "Failed to list bookings")
}
