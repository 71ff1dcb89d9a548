package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required"` // Format: YYYY-MM-DD
	TimeSlot string    `json:"time_slot" validate:"required"`
	Reason   string    `json:"reason" validate:"omitempty,max=500"`
	Notes    string    `json:"notes" validate:"omitempty,max=1000"`
}

type PrescriptionRequest struct {
	Diagnosis    string `json:"diagnosis" validate:"omitempty,max=500"`
	Medicines    string `json:"medicines" validate:"omitempty"`
	Instructions string `json:"instructions" validate:"omitempty"`
}

type CompleteAppointmentRequest struct {
	Prescription PrescriptionRequest `json:"prescription" validate:"required"`
}

// Response DTOs

type PrescriptionResponse struct {
	Diagnosis    string    `json:"diagnosis"`
	Medicines    string    `json:"medicines"`
	Instructions string    `json:"instructions,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AppointmentResponse struct {
	ID           uuid.UUID             `json:"id"`
	PatientID    uuid.UUID             `json:"patient_id"`
	DoctorID     uuid.UUID             `json:"doctor_id"`
	Date         string                `json:"date"`
	TimeSlot     string                `json:"time_slot"`
	Reason       string                `json:"reason,omitempty"`
	Notes        string                `json:"notes,omitempty"`
	Fee          decimal.Decimal       `json:"fee"`
	Status       string                `json:"status"`
	Doctor       *DoctorResponse       `json:"doctor,omitempty"`
	Patient      *PatientResponse      `json:"patient,omitempty"`
	Prescription *PrescriptionResponse `json:"prescription,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
