package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/casahub/backend/internal/middleware"
	"github.com/casahub/backend/internal/models"
	"github.com/casahub/backend/internal/services"
)

type PostHandler struct {
	postService       *services.PostService
	visibilityService *services.VisibilityService
	moderationService *services.ModerationService
}

func NewPostHandler(postService *services.PostService, visibilityService *services.VisibilityService, moderationService *services.ModerationService) *PostHandler {
	return &PostHandler{
		postService:       postService,
		visibilityService: visibilityService,
		moderationService: moderationService,
	}
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		log.Printf("[CreatePost] Validation errors: %v", errors)
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	post, err := h.postService.Create(r.Context(), userID, &req)
	if err != nil {
		log.Printf("[CreatePost] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create post"))
		return
	}

	log.Printf("[CreatePost] Post created: %s", post.ID)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(post))
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		log.Printf("[GetPost] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(post))
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	postID := chi.URLParam(r, "postId")

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
			return
		}
		log.Printf("[DeletePost] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete post"))
		return
	}
	if post.CreatedByID != userID {
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Not authorized to delete this post"))
		return
	}

	if _, err := h.postService.Delete(r.Context(), postID); err != nil {
		log.Printf("[DeletePost] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete post"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Post deleted"}))
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	vis := h.visibilityService.Compute(r.Context(), viewerID)

	posts, info, err := h.postService.List(r.Context(), vis, pagination(r))
	writePage(w, posts, info, err, "Failed to list posts")
}

func (h *PostHandler) ListMyPosts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	q := r.URL.Query()
	posts, info, err := h.postService.ListMine(r.Context(), userID, pagination(r), q.Get("sortBy"), q.Get("order"))
	writePage(w, posts, info, err, "Failed to list posts")
}

// FlagPost reports a post. One flag per account per post.
func (h *PostHandler) FlagPost(w http.ResponseWriter, r *http.Request) {
	flaggedBy := middleware.GetUserID(r.Context())
	postID := chi.URLParam(r, "postId")

	var req models.FlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	state, err := h.moderationService.Flag(r.Context(), services.KindPost, postID, flaggedBy, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateFlag):
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Already flagged by you"))
		case errors.Is(err, services.ErrPostNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
		default:
			log.Printf("[FlagPost] Service error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to flag post"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(state))
}

// ListFlaggedPosts is the admin moderation queue: every post carrying at
// least one flag.
func (h *PostHandler) ListFlaggedPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.ListFlagged(r.Context())
	if err != nil {
		log.Printf("[ListFlaggedPosts] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list flagged posts"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(posts))
}

// HandleFlaggedPost resolves a moderation queue entry: delete removes the
// post, ignore clears its flags and restores visibility.
func (h *PostHandler) HandleFlaggedPost(w http.ResponseWriter, r *http.Request) {
	var req models.HandleFlaggedPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	switch req.Action {
	case models.FlagActionDelete:
		if _, err := h.postService.Delete(r.Context(), req.PostID); err != nil {
			if errors.Is(err, services.ErrPostNotFound) {
				writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
				return
			}
			log.Printf("[HandleFlaggedPost] Service error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete post"))
			return
		}
		writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Post deleted"}))
	case models.FlagActionIgnore:
		state, err := h.moderationService.ClearFlags(r.Context(), services.KindPost, req.PostID)
		if err != nil {
			if errors.Is(err, services.ErrPostNotFound) {
				writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Post not found"))
				return
			}
			log.Printf("[HandleFlaggedPost] Service error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to clear flags"))
			return
		}
		writeJSON(w, http.StatusOK, models.NewSuccessResponse(state))
	default:
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Unknown action"))
	}
}
