package handler

import (
	"net/http"

	"medibook-api/internal/delivery/http/middleware"
	"medibook-api/internal/usecase"
	"medibook-api/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// PatientSummary handles the patient dashboard counts
// @Summary Patient dashboard
// @Description Appointment counts per status for the calling patient
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patient/dashboard [get]
func (h *DashboardHandler) PatientSummary(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	summary, err := h.dashboardUsecase.PatientSummary(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard summary")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", summary)
}

// DoctorSummary handles the doctor dashboard counts
// @Summary Doctor dashboard
// @Description Appointment counts per status for the calling doctor
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctor/dashboard [get]
func (h *DashboardHandler) DoctorSummary(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	summary, err := h.dashboardUsecase.DoctorSummary(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard summary")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", summary)
}

// AdminStats handles the admin system-wide stats
// @Summary Admin dashboard
// @Description System-wide doctor and appointment counts
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/dashboard [get]
func (h *DashboardHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardUsecase.AdminStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get admin stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats retrieved successfully", stats)
}
