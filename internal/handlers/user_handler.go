package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/casahub/backend/internal/middleware"
	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/query"
	"github.com/casahub/backend/internal/services"
)

type UserHandler struct {
	userService       *services.UserService
	visibilityService *services.VisibilityService
	moderationService *services.ModerationService
}

func NewUserHandler(userService *services.UserService, visibilityService *services.VisibilityService, moderationService *services.ModerationService) *UserHandler {
	return &UserHandler{
		userService:       userService,
		visibilityService: visibilityService,
		moderationService: moderationService,
	}
}

// GetMe returns the caller's profile with their listings attached.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.userService.GetWithListings(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
			return
		}
		log.Printf("[GetMe] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
			return
		}
		log.Printf("[UpdateProfile] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update profile"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

// GetUser returns a public profile with listings.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	user, err := h.userService.GetWithListings(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
			return
		}
		log.Printf("[GetUser] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get user"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

// ListUsers lists users by role and type with the viewer's visibility rules
// applied. Works for guests and logged-in viewers alike.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	vis := h.visibilityService.Compute(r.Context(), viewerID)

	filter := query.UserFilter{
		Roles: r.URL.Query()["role"],
		Types: r.URL.Query()["type"],
	}

	users, info, err := h.userService.ListByRoleType(r.Context(), filter, vis, pagination(r))
	writePage(w, users, info, err, "Failed to list users")
}

func (h *UserHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.BlockUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	blocked, err := h.userService.Block(r.Context(), userID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfBlock):
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Cannot block yourself"))
		case errors.Is(err, services.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
		default:
			log.Printf("[BlockUser] Service error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to block user"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(blocked))
}

func (h *UserHandler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.BlockUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	blocked, err := h.userService.Unblock(r.Context(), userID, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotBlocked):
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("User is not blocked"))
		case errors.Is(err, services.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
		default:
			log.Printf("[UnblockUser] Service error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to unblock user"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(blocked))
}

// FlagUser reports another user. Each account can flag a user once.
func (h *UserHandler) FlagUser(w http.ResponseWriter, r *http.Request) {
	flaggedBy := middleware.GetUserID(r.Context())
	targetID := chi.URLParam(r, "userId")

	var req models.FlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	state, err := h.moderationService.Flag(r.Context(), services.KindUser, targetID, flaggedBy, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateFlag):
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Already flagged by you"))
		case errors.Is(err, services.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
		default:
			log.Printf("[FlagUser] Service error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to flag user"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(state))
}

// ClearUserFlags wipes a user's flags and lifts the violation. Admin only.
func (h *UserHandler) ClearUserFlags(w http.ResponseWriter, r *http.Request) {
	targetID := chi.URLParam(r, "userId")

	state, err := h.moderationService.ClearFlags(r.Context(), services.KindUser, targetID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
			return
		}
		log.Printf("[ClearUserFlags] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to clear flags"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(state))
}

func (h *UserHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.AddAddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	addresses, err := h.userService.AddAddress(r.Context(), userID, &req)
	if err != nil {
		log.Printf("[AddAddress] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to add address"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(addresses))
}

func (h *UserHandler) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	addressID := chi.URLParam(r, "addressId")

	addresses, err := h.userService.RemoveAddress(r.Context(), userID, addressID)
	if err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Address not found"))
			return
		}
		log.Printf("[RemoveAddress] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to remove address"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(addresses))
}

func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.DeleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	if err := h.userService.DeleteAccount(r.Context(), userID, req.Reason); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
			return
		}
		log.Printf("[DeleteAccount] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete account"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Account deleted"}))
}
