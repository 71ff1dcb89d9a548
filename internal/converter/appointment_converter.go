package converter

import (
	"medibook-api/internal/delivery/dto"
	"medibook-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:        appointment.ID,
		PatientID: appointment.PatientID,
		DoctorID:  appointment.DoctorID,
		Date:      appointment.Date.Format("2006-01-02"),
		TimeSlot:  appointment.TimeSlot,
		Reason:    appointment.Reason,
		Notes:     appointment.Notes,
		Fee:       appointment.Fee,
		Status:    string(appointment.Status),
		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}

	// Include related info when preloaded
	if appointment.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}
	if appointment.Patient.UserID != uuid.Nil {
		response.Patient = PatientToResponse(&appointment.Patient)
	}
	if appointment.Prescription != nil {
		response.Prescription = PrescriptionToResponse(appointment.Prescription)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// PrescriptionToResponse converts a Prescription entity to its DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	return &dto.PrescriptionResponse{
		Diagnosis:    prescription.Diagnosis,
		Medicines:    prescription.Medicines,
		Instructions: prescription.Instructions,
		UpdatedAt:    prescription.UpdatedAt,
	}
}

// SummaryToResponse converts an AppointmentSummary to its DTO
func SummaryToResponse(summary entity.AppointmentSummary) dto.DashboardSummaryResponse {
	return dto.DashboardSummaryResponse{
		Total:     summary.Total,
		Pending:   summary.Pending,
		Confirmed: summary.Confirmed,
		Completed: summary.Completed,
		Cancelled: summary.Cancelled,
	}
}
