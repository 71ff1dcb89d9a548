package handler

import (
	"encoding/json"
	"net/http"

	"medibook-api/internal/delivery/dto"
	"medibook-api/internal/delivery/http/middleware"
	"medibook-api/internal/usecase"
	"medibook-api/pkg/response"
	"medibook-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorDirectoryUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorDirectoryUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// Search handles the public doctor directory
// @Summary Search doctors
// @Description Search verified doctors by specialization, name, fee range, and experience
// @Tags Doctors
// @Produce json
// @Param specialization query string false "Specialization filter"
// @Param search query string false "Name substring, case-insensitive"
// @Param min_fee query string false "Minimum consultation fee"
// @Param max_fee query string false "Maximum consultation fee"
// @Param min_experience query int false "Minimum years of experience"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := searchQueryFromRequest(r)

	doctors, err := h.doctorUsecase.Search(r.Context(), query)
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// SearchAll handles the admin doctor directory, unverified included
// @Summary Search all doctors
// @Description Search every doctor regardless of verification status
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/doctors [get]
func (h *DoctorHandler) SearchAll(w http.ResponseWriter, r *http.Request) {
	query := searchQueryFromRequest(r)

	doctors, err := h.doctorUsecase.SearchAll(r.Context(), query)
	if err != nil {
		h.writeSearchError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// Get handles fetching a single doctor's public card
// @Summary Get a doctor
// @Description Get a doctor's public profile by user id
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// ListPending handles the admin verification queue
// @Summary List unverified doctors
// @Description List doctors awaiting verification
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/doctors/pending [get]
func (h *DoctorHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.ListPending(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list pending doctors")
		return
	}

	response.Success(w, http.StatusOK, "Pending doctors retrieved successfully", doctors)
}

// Verify handles admin verification of a doctor
// @Summary Verify a doctor
// @Description Mark a doctor as verified so patients can book them
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id}/verify [post]
func (h *DoctorHandler) Verify(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.Verify(r.Context(), session, id)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to verify doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor verified successfully", doctor)
}

// GetOwnProfile handles the doctor's own profile view
// @Summary Get own doctor profile
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctor/profile [get]
func (h *DoctorHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctor, err := h.doctorUsecase.GetOwnProfile(r.Context(), session)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor profile not found")
		default:
			response.InternalServerError(w, "Failed to get doctor profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile retrieved successfully", doctor)
}

// UpdateOwnProfile handles the doctor's self-service profile edits
// @Summary Update own doctor profile
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateDoctorProfileRequest true "Update Doctor Profile Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctor/profile [put]
func (h *DoctorHandler) UpdateOwnProfile(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateDoctorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.UpdateProfile(r.Context(), session, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor profile not found")
		case usecase.ErrInvalidFee:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update doctor profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile updated successfully", doctor)
}

func (h *DoctorHandler) writeSearchError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrInvalidFee, usecase.ErrInvalidExperience:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, "Failed to search doctors")
	}
}

func searchQueryFromRequest(r *http.Request) *dto.DoctorSearchQuery {
	q := r.URL.Query()
	return &dto.DoctorSearchQuery{
		Specialization: q.Get("specialization"),
		Search:         q.Get("search"),
		MinFee:         q.Get("min_fee"),
		MaxFee:         q.Get("max_fee"),
		MinExperience:  q.Get("min_experience"),
	}
}
