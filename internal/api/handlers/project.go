package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/proftrack/internal/api/dto"
	"github.com/pratik-mahalle/proftrack/internal/domain/project"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/utils"
)

// ProjectHandler serves the project CRUD API
type ProjectHandler struct {
	service project.Service
	logger  *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service project.Service, log *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		logger:  log,
	}
}

// List returns the caller's projects with pagination
// @Summary List projects
// @Tags Projects
// @Produce json
// @Param status query string false "Filter by status (planned, active, completed)"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.ProjectDTO}
// @Failure 403 {object} utils.ErrorResponse "Subscription required"
// @Security BearerAuth
// @Router /api/projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	status := r.URL.Query().Get("status")
	switch status {
	case "", project.StatusPlanned, project.StatusActive, project.StatusCompleted:
	default:
		utils.WriteError(w, errors.BadRequest("Invalid status filter"))
		return
	}

	page := utils.ParsePaginationParams(r)
	projects, total, err := h.service.List(r.Context(), userID, project.Filter{Status: status}, page.PageSize, page.Offset)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list projects")
		return
	}

	utils.WriteSuccess(w, http.StatusOK,
		utils.NewPaginatedResponse(dto.ProjectsToDTO(projects), page.Page, page.PageSize, total))
}

// Get returns a single project
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} dto.ProjectDTO
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{id} [get]
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	p, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get project")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ProjectToDTO(p))
}

// Create creates a project
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "Project"
// @Success 201 {object} dto.ProjectDTO
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	p := req.ToProject(userID)
	if err := h.service.Create(r.Context(), p); err != nil {
		writeServiceError(w, h.logger, err, "Failed to create project")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.ProjectToDTO(p))
}

// Update applies a partial update
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Changed fields"
// @Success 200 {object} dto.ProjectDTO
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	var req dto.UpdateProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	p, err := h.service.Update(r.Context(), userID, id, req.ToPatch())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update project")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ProjectToDTO(p))
}

// Delete removes a project
// @Summary Delete project
// @Tags Projects
// @Param id path int true "Project ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete project")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Project deleted successfully", nil)
}
