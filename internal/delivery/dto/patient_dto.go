package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdatePatientProfileRequest struct {
	FullName         string `json:"full_name" validate:"omitempty,min=2"`
	PhoneNumber      string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	BloodGroup       string `json:"blood_group" validate:"omitempty,max=5"`
	Address          string `json:"address" validate:"omitempty"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty,max=100"`
}

// Response DTOs

type PatientProfileResponse struct {
	PhoneNumber      string `json:"phone_number,omitempty"`
	DateOfBirth      string `json:"date_of_birth"`
	Gender           string `json:"gender"`
	BloodGroup       string `json:"blood_group,omitempty"`
	Address          string `json:"address,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

type PatientResponse struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	DateOfBirth      string    `json:"date_of_birth"`
	Gender           string    `json:"gender"`
	BloodGroup       string    `json:"blood_group,omitempty"`
	Address          string    `json:"address,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
