package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/proftrack/internal/api/dto"
	"github.com/pratik-mahalle/proftrack/internal/domain/report"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/utils"
)

// ReportHandler serves report CRUD plus AI drafting and export
type ReportHandler struct {
	service report.Service
	logger  *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service report.Service, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  log,
	}
}

// List returns the caller's reports with pagination
// @Summary List reports
// @Tags Reports
// @Produce json
// @Param project_id query int false "Filter by project"
// @Param kind query string false "Filter by kind"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.ReportDTO}
// @Security BearerAuth
// @Router /api/reports [get]
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	projectID, err := queryInt64(r, "project_id")
	if err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	filter := report.Filter{
		ProjectID: projectID,
		Kind:      r.URL.Query().Get("kind"),
		Status:    r.URL.Query().Get("status"),
	}
	page := utils.ParsePaginationParams(r)

	reports, total, err := h.service.List(r.Context(), userID, filter, page.PageSize, page.Offset)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list reports")
		return
	}

	utils.WriteSuccess(w, http.StatusOK,
		utils.NewPaginatedResponse(dto.ReportsToDTO(reports), page.Page, page.PageSize, total))
}

// Get returns a single report
// @Summary Get report
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} dto.ReportDTO
// @Failure 404 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/reports/{id} [get]
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	rep, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get report")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ReportToDTO(rep))
}

// Create stores a hand-written report
// @Summary Create report
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body dto.CreateReportRequest true "Report"
// @Success 201 {object} dto.ReportDTO
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/reports [post]
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	rep := req.ToReport(userID)
	if err := h.service.Create(r.Context(), rep); err != nil {
		writeServiceError(w, h.logger, err, "Failed to create report")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.ReportToDTO(rep))
}

// Update applies a partial update
// @Summary Update report
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param request body dto.UpdateReportRequest true "Changed fields"
// @Success 200 {object} dto.ReportDTO
// @Security BearerAuth
// @Router /api/reports/{id} [put]
func (h *ReportHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	var req dto.UpdateReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	rep, err := h.service.Update(r.Context(), userID, id, req.ToPatch())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update report")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ReportToDTO(rep))
}

// Delete removes a report
// @Summary Delete report
// @Tags Reports
// @Param id path int true "Report ID"
// @Success 200 {object} utils.SuccessResponse
// @Security BearerAuth
// @Router /api/reports/{id} [delete]
func (h *ReportHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		writeServiceError(w, h.logger, err, "Failed to delete report")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Report deleted successfully", nil)
}

// Generate drafts a report for a project with the AI writer
// @Summary Generate report
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body dto.GenerateReportRequest true "Project and report kind"
// @Success 201 {object} dto.ReportDTO
// @Failure 502 {object} utils.ErrorResponse "AI provider failed"
// @Failure 503 {object} utils.ErrorResponse "No AI provider configured"
// @Security BearerAuth
// @Router /api/reports/generate [post]
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.GenerateReportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	rep, err := h.service.Generate(r.Context(), userID, req.ProjectID, req.Kind)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to generate report")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.ReportToDTO(rep))
}

// Export uploads the report to the archive
// @Summary Export report
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} dto.ReportExportDTO
// @Failure 503 {object} utils.ErrorResponse "No archive configured"
// @Security BearerAuth
// @Router /api/reports/{id}/export [post]
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "")
		return
	}

	exp, err := h.service.Export(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to export report")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ReportExportDTO{ReportID: exp.ReportID, Location: exp.Location})
}
