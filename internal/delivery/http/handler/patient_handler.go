package handler

import (
	"encoding/json"
	"net/http"

	"medibook-api/internal/delivery/dto"
	"medibook-api/internal/delivery/http/middleware"
	"medibook-api/internal/usecase"
	"medibook-api/pkg/response"
	"medibook-api/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientProfileUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientProfileUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// GetOwnProfile handles the patient's own profile view
// @Summary Get own patient profile
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patient/profile [get]
func (h *PatientHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patient, err := h.patientUsecase.GetOwnProfile(r.Context(), session)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to get patient profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient profile retrieved successfully", patient)
}

// UpdateOwnProfile handles the patient's profile edits
// @Summary Update own patient profile
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdatePatientProfileRequest true "Update Patient Profile Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /patient/profile [put]
func (h *PatientHandler) UpdateOwnProfile(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdatePatientProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.UpdateProfile(r.Context(), session, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to update patient profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient profile updated successfully", patient)
}
