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

type ProjectHandler struct {
	projectService    *services.ProjectService
	visibilityService *services.VisibilityService
	moderationService *services.ModerationService
}

func NewProjectHandler(projectService *services.ProjectService, visibilityService *services.VisibilityService, moderationService *services.ModerationService) *ProjectHandler {
	return &ProjectHandler{
		projectService:    projectService,
		visibilityService: visibilityService,
		moderationService: moderationService,
	}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		log.Printf("[CreateProject] Validation errors: %v", errors)
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	project, err := h.projectService.Create(r.Context(), userID, &req)
	if err != nil {
		log.Printf("[CreateProject] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create project"))
		return
	}

	log.Printf("[CreateProject] Project created: %s", project.ID)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(project))
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")

	project, err := h.projectService.GetByID(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Project not found"))
			return
		}
		log.Printf("[GetProject] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get project"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(project))
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	projectID := chi.URLParam(r, "projectId")

	project, err := h.projectService.GetByID(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Project not found"))
			return
		}
		log.Printf("[DeleteProject] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete project"))
		return
	}
	if project.CreatedByID != userID {
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Not authorized to delete this project"))
		return
	}

	if _, err := h.projectService.Delete(r.Context(), projectID); err != nil {
		log.Printf("[DeleteProject] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete project"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Project deleted"}))
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	vis := h.visibilityService.Compute(r.Context(), viewerID)

	q := r.URL.Query()
	if search := q.Get("q"); search != "" {
		projects, info, err := h.projectService.Filter(r.Context(), query.ProjectFilter{Query: search}, vis, pagination(r), q.Get("sortBy"), q.Get("order"))
		writePage(w, projects, info, err, "Failed to list projects")
		return
	}
	projects, info, err := h.projectService.List(r.Context(), vis, pagination(r), q.Get("sortBy"), q.Get("order"))
	writePage(w, projects, info, err, "Failed to list projects")
}

func (h *ProjectHandler) ListMyProjects(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	q := r.URL.Query()
	projects, info, err := h.projectService.ListMine(r.Context(), userID, pagination(r), q.Get("sortBy"), q.Get("order"))
	writePage(w, projects, info, err, "Failed to list projects")
}

// FilterProjectsRequest is the body of the multi-dimensional filter endpoint.
// Every field is optional; omitted ones add no criteria.
type FilterProjectsRequest struct {
	Query            string   `json:"query"`
	SellerNames      []string `json:"sellerNames"`
	SellerPhones     []string `json:"sellerPhoneNumbers"`
	ProjectTypes     []string `json:"projectTypes"`
	Locations        []string `json:"locations"`
	ConstructionType []string `json:"constructionTypes"`
	HouseTypes       []string `json:"houseTypes"`
	Styles           []string `json:"styles"`
	Titles           []string `json:"titles"`
	Bathrooms        []string `json:"numberOfBathrooms"`
	MinArea          *float64 `json:"minAreaSquareFeet"`
	MaxArea          *float64 `json:"maxAreaSquareFeet"`
	MinCost          *float64 `json:"minCost"`
	MaxCost          *float64 `json:"maxCost"`
	Ownership        []string `json:"propertyOwnership"`
	TransactionTypes []string `json:"transactionTypes"`
	PlotSizes        []string `json:"plotSizes"`
	BoundaryWall     *bool    `json:"boundaryWall"`
	CornerProperty   *bool    `json:"cornerProperty"`
	PropertyAges     []int    `json:"propertyAges"`
	Tags             []string `json:"tags"`
}

func (h *ProjectHandler) FilterProjects(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	vis := h.visibilityService.Compute(r.Context(), viewerID)

	var req FilterProjectsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	filter := query.ProjectFilter{
		Query:            req.Query,
		SellerNames:      req.SellerNames,
		SellerPhones:     req.SellerPhones,
		ProjectTypes:     req.ProjectTypes,
		Locations:        req.Locations,
		ConstructionType: req.ConstructionType,
		HouseTypes:       req.HouseTypes,
		Styles:           req.Styles,
		Titles:           req.Titles,
		Bathrooms:        req.Bathrooms,
		MinArea:          req.MinArea,
		MaxArea:          req.MaxArea,
		MinCost:          req.MinCost,
		MaxCost:          req.MaxCost,
		Ownership:        req.Ownership,
		TransactionTypes: req.TransactionTypes,
		PlotSizes:        req.PlotSizes,
		BoundaryWall:     req.BoundaryWall,
		CornerProperty:   req.CornerProperty,
		PropertyAges:     req.PropertyAges,
		Tags:             req.Tags,
	}

	q := r.URL.Query()
	projects, info, err := h.projectService.Filter(r.Context(), filter, vis, pagination(r), q.Get("sortBy"), q.Get("order"))
	writePage(w, projects, info, err, "Failed to filter projects")
}

// ListProjectsByIDs resolves a saved/favorites list of project ids.
func (h *ProjectHandler) ListProjectsByIDs(w http.ResponseWriter, r *http.Request) {
	var req models.ListByIDsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	q := r.URL.Query()
	projects, info, err := h.projectService.ListByIDs(r.Context(), req.IDs, pagination(r), q.Get("sortBy"), q.Get("order"))
	writePage(w, projects, info, err, "Failed to list projects")
}

// FlagProject reports a project listing. One flag per account per project.
func (h *ProjectHandler) FlagProject(w http.ResponseWriter, r *http.Request) {
	flaggedBy := middleware.GetUserID(r.Context())
	projectID := chi.URLParam(r, "projectId")

	var req models.FlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	state, err := h.moderationService.Flag(r.Context(), services.KindProject, projectID, flaggedBy, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateFlag):
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Already flagged by you"))
		case errors.Is(err, services.ErrProjectNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Project not found"))
		default:
			log.Printf("[FlagProject] Service error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to flag project"))
		}
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(state))
}

// ClearProjectFlags wipes a project's flags and lifts the violation. Admin only.
func (h *ProjectHandler) ClearProjectFlags(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")

	state, err := h.moderationService.ClearFlags(r.Context(), services.KindProject, projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Project not found"))
			return
		}
		log.Printf("[ClearProjectFlags] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to clear flags"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(state))
}
