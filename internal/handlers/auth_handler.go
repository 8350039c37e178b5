package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req models.RequestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	if err := h.authService.RequestOTP(r.Context(), req.PhoneNumber); err != nil {
		log.Printf("[RequestOTP] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to send OTP"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "OTP sent"}))
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	auth, err := h.authService.VerifyOTP(r.Context(), req.PhoneNumber, req.OTP)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired OTP"))
			return
		}
		log.Printf("[VerifyOTP] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to verify OTP"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(auth))
}

func (h *AuthHandler) VerifyFirebaseOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyFirebaseOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	auth, err := h.authService.VerifyFirebaseOTP(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOTP) {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid ID token"))
			return
		}
		log.Printf("[VerifyFirebaseOTP] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to verify token"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(auth))
}
