package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/proftrack/internal/api/dto"
	"github.com/pratik-mahalle/proftrack/internal/domain/referee"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/utils"
)

// RefereeHandler serves the referee CRUD API
type RefereeHandler struct {
	service referee.Service
	logger  *logger.Logger
}

// NewRefereeHandler creates a new referee handler
func NewRefereeHandler(service referee.Service, log *logger.Logger) *RefereeHandler {
	return &RefereeHandler{
		service: service,
		logger:  log,
	}
}

// List returns the caller's referees
// @Summary List referees
// @Tags Referees
// @Produce json
// @Param project_id query int false "Only referees linked to this project"
// @Success 200 {object} []dto.RefereeDTO
// @Security BearerAuth
// @Router /api/referees [get]
func (h *RefereeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	projectID, err := queryInt64(r, "project_id")
	if err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	refs, err := h.service.List(r.Context(), userID, referee.Filter{ProjectID: projectID})
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list referees")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.RefereesToDTO(refs))
}

// Get returns a single referee
// @Summary Get referee
// @Tags Referees
// @Produce json
// @Param id path int true "Referee ID"
// @Success 200 {object} dto.RefereeDTO
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/referees/{id} [get]
func (h *RefereeHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	ref, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get referee")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.RefereeToDTO(ref))
}

// Create adds a referee
// @Summary Create referee
// @Tags Referees
// @Accept json
// @Produce json
// @Param request body dto.CreateRefereeRequest true "Referee"
// @Success 201 {object} dto.RefereeDTO
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/referees [post]
func (h *RefereeHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateRefereeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	ref := req.ToReferee(userID)
	if err := h.service.Create(r.Context(), ref); err != nil {
		writeServiceError(w, h.logger, err, "Failed to create referee")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.RefereeToDTO(ref))
}

// Update applies a partial update
// @Summary Update referee
// @Tags Referees
// @Accept json
// @Produce json
// @Param id path int true "Referee ID"
// @Param request body dto.UpdateRefereeRequest true "Changed fields"
// @Success 200 {object} dto.RefereeDTO
// @Security BearerAuth
// @Router /api/referees/{id} [put]
func (h *RefereeHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	var req dto.UpdateRefereeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	ref, err := h.service.Update(r.Context(), userID, id, req.ToPatch())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update referee")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.RefereeToDTO(ref))
}

// Delete removes a referee
// @Summary Delete referee
// @Tags Referees
// @Param id path int true "Referee ID"
// @Success 200 {object} utils.SuccessResponse
// @Security BearerAuth
// @Router /api/referees/{id} [delete]
func (h *RefereeHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		writeServiceError(w, h.logger, err, "Failed to delete referee")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Referee deleted successfully", nil)
}
