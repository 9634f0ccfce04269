package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/proftrack/internal/api/dto"
	"github.com/pratik-mahalle/proftrack/internal/domain/subscription"
	"github.com/pratik-mahalle/proftrack/internal/domain/user"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/utils"
)

// ProfileHandler serves the signed-in user's profile and billing view
type ProfileHandler struct {
	users  user.Service
	ledger subscription.Ledger
	logger *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(users user.Service, ledger subscription.Ledger, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		users:  users,
		ledger: ledger,
		logger: log,
	}
}

// Get returns the caller's profile
// @Summary Get profile
// @Tags Profile
// @Produce json
// @Success 200 {object} dto.ProfileDTO
// @Failure 401 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load profile")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ProfileToDTO(u))
}

// Update changes the caller's display name
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.ProfileDTO
// @Failure 400 {object} utils.ErrorResponse
// @Security BearerAuth
// @Router /api/profile [put]
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, h.logger, err, "Invalid profile update")
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), userID, req.DisplayName)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update profile")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.ProfileToDTO(u))
}

// BillingStatus explains whether the caller's subscription grants access
// @Summary Billing status
// @Tags Billing
// @Produce json
// @Success 200 {object} dto.BillingStatusDTO
// @Security BearerAuth
// @Router /api/billing/status [get]
func (h *ProfileHandler) BillingStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	access, err := h.ledger.Access(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load billing status")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.BillingStatusFromAccess(access))
}
