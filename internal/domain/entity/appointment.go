package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// appointmentTransitions is the single source of truth for the appointment
// state machine. Any transition not listed here is rejected; handlers and
// usecases never check statuses inline.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// IsValid checks the status is one of the four enumerated values
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// CanTransitionTo checks the transition table for a permitted edge
func (s AppointmentStatus) CanTransitionTo(to AppointmentStatus) bool {
	for _, next := range appointmentTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Appointment represents a patient visit reservation with a doctor.
// Rows are never deleted; cancellation and completion are terminal statuses.
type Appointment struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Date      time.Time         `gorm:"type:date;not null;index" json:"date"`
	TimeSlot  string            `gorm:"type:varchar(5);not null" json:"time_slot"`
	Reason    string            `gorm:"type:varchar(500)" json:"reason,omitempty"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`
	Fee       decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"fee"`
	Status    AppointmentStatus `gorm:"type:appointment_status;not null;default:'pending';index" json:"status"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor       DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Prescription *Prescription  `gorm:"foreignKey:AppointmentID" json:"prescription,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment is awaiting doctor confirmation
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsConfirmed checks if the appointment has been confirmed by the doctor
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// AppointmentSummary holds per-status counts for a set of appointments
type AppointmentSummary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// SummarizeAppointments counts appointments by status. Total is the sum of
// the four buckets, so a status outside the enum is not silently absorbed.
func SummarizeAppointments(appointments []Appointment) AppointmentSummary {
	var summary AppointmentSummary
	for _, a := range appointments {
		switch a.Status {
		case AppointmentStatusPending:
			summary.Pending++
		case AppointmentStatusConfirmed:
			summary.Confirmed++
		case AppointmentStatusCompleted:
			summary.Completed++
		case AppointmentStatusCancelled:
			summary.Cancelled++
		}
	}
	summary.Total = summary.Pending + summary.Confirmed + summary.Completed + summary.Cancelled
	return summary
}
