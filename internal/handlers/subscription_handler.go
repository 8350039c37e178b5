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

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.subscriptionService.ListPlans(r.Context())
	if err != nil {
		log.Printf("[ListPlans] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list plans"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(plans))
}

func (h *SubscriptionHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	order, err := h.subscriptionService.CreateOrder(r.Context(), userID, req.Duration)
	if err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Plan not found"))
			return
		}
		log.Printf("[CreateSubscriptionOrder] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create subscription order"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(order))
}

// CompleteRegistration finalizes signup: profile fields plus either a coupon
// (free tier) or a verified payment (paid tiers).
func (h *SubscriptionHandler) CompleteRegistration(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CompleteRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		log.Printf("[CompleteRegistration] Validation errors: %v", errors)
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	user, err := h.subscriptionService.CompleteRegistration(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCoupon):
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid or missing coupon code"))
		case errors.Is(err, services.ErrInvalidTier):
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid subscription type"))
		case errors.Is(err, services.ErrBadSignature):
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Payment signature verification failed"))
		case errors.Is(err, services.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
		default:
			log.Printf("[CompleteRegistration] Service error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to complete registration"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

func (h *SubscriptionHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.VerifySubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	user, err := h.subscriptionService.VerifyPayment(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadSignature):
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Payment signature verification failed"))
		case errors.Is(err, services.ErrPlanNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Plan not found"))
		default:
			log.Printf("[VerifySubscription] Service error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to verify payment"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}
