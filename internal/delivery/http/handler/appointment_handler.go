package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"medibook-api/internal/delivery/dto"
	"medibook-api/internal/domain/entity"
	"medibook-api/internal/delivery/http/middleware"
	"medibook-api/internal/usecase"
	"medibook-api/pkg/response"
	"medibook-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Book handles appointment booking by a patient
// @Summary Book an appointment
// @Description Book a doctor for a date and half-hour time slot
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookAppointmentRequest true "Book Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), session, &req)
	if err != nil {
		switch err {
		case usecase.ErrUnknownDoctor:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorNotVerified:
			response.Error(w, http.StatusUnprocessableEntity, "Doctor is not yet verified", nil)
		case usecase.ErrSlotConflict:
			response.Error(w, http.StatusConflict, "Slot is already booked", nil)
		case usecase.ErrInvalidDate, usecase.ErrInvalidTimeSlot, usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// Confirm handles appointment confirmation by the appointed doctor
// @Summary Confirm an appointment
// @Description Move a pending appointment to confirmed
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /appointments/{id}/confirm [put]
func (h *AppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.Confirm, "Appointment confirmed successfully")
}

// Cancel handles appointment cancellation
// @Summary Cancel an appointment
// @Description Cancel a pending or confirmed appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /appointments/{id}/cancel [put]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.appointmentUsecase.Cancel, "Appointment cancelled successfully")
}

// Complete handles appointment completion with a prescription
// @Summary Complete an appointment
// @Description Move a confirmed appointment to completed, recording the prescription
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.CompleteAppointmentRequest true "Complete Appointment Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /appointments/{id}/complete [put]
func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CompleteAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Complete(r.Context(), session, id, &req)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to complete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", appointment)
}

// UpdatePrescription handles prescription edits after completion
// @Summary Update a prescription
// @Description Update the prescription attached to a completed appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.PrescriptionRequest true "Prescription Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id}/prescription [put]
func (h *AppointmentHandler) UpdatePrescription(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.PrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdatePrescription(r.Context(), session, id, &req)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to update prescription")
		return
	}

	response.Success(w, http.StatusOK, "Prescription updated successfully", appointment)
}

// Get handles fetching a single appointment
// @Summary Get an appointment
// @Description Get appointment details; only the involved patient, doctor, or an admin may view it
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), session, id)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// ListMine handles the caller's own appointment list
// @Summary List own appointments
// @Description List the caller's appointments, newest date first
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var (
		list *dto.AppointmentListResponse
		err  error
	)
	switch {
	case session.IsDoctor():
		list, err = h.appointmentUsecase.ListForDoctor(r.Context(), session)
	case session.IsAdmin():
		list, err = h.appointmentUsecase.ListAll(r.Context())
	default:
		list, err = h.appointmentUsecase.ListForPatient(r.Context(), session)
	}
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", list)
}

// ListAll handles the admin view of every appointment
// @Summary List all appointments
// @Description List every appointment in the system
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/appointments [get]
func (h *AppointmentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.appointmentUsecase.ListAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", list)
}

type transitionFn func(ctx context.Context, session *entity.Session, id uuid.UUID) (*dto.AppointmentResponse, error)

func (h *AppointmentHandler) transition(w http.ResponseWriter, r *http.Request, fn transitionFn, message string) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := fn(r.Context(), session, id)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, message, appointment)
}

func (h *AppointmentHandler) writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrUnknownAppointment:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrNotAppointmentActor:
		response.Forbidden(w, "Appointment does not belong to you")
	case usecase.ErrInvalidTransition:
		response.Error(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case usecase.ErrMissingPrescription:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
