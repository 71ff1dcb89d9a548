package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// DoctorSearchQuery mirrors the GET /doctors query parameters. Unset fields
// match everything.
type DoctorSearchQuery struct {
	Specialization string `json:"specialization" validate:"omitempty"`
	Search         string `json:"search" validate:"omitempty"`
	MinFee         string `json:"min_fee" validate:"omitempty"`
	MaxFee         string `json:"max_fee" validate:"omitempty"`
	MinExperience  string `json:"min_experience" validate:"omitempty"`
}

type UpdateDoctorProfileRequest struct {
	FullName        string  `json:"full_name" validate:"omitempty,min=2"`
	Specialization  string  `json:"specialization" validate:"omitempty"`
	Qualification   string  `json:"qualification" validate:"omitempty"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,gte=0"`
	ConsultationFee *string `json:"consultation_fee" validate:"omitempty"`
	HospitalName    string  `json:"hospital_name" validate:"omitempty"`
	HospitalAddress string  `json:"hospital_address" validate:"omitempty"`
	About           string  `json:"about" validate:"omitempty"`
}

// Response DTOs

type DoctorProfileResponse struct {
	LicenseNumber   string          `json:"license_number"`
	Specialization  string          `json:"specialization"`
	Qualification   string          `json:"qualification,omitempty"`
	ExperienceYears int             `json:"experience_years"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	HospitalName    string          `json:"hospital_name,omitempty"`
	HospitalAddress string          `json:"hospital_address,omitempty"`
	About           string          `json:"about,omitempty"`
	Verified        bool            `json:"verified"`
	VerifiedAt      *time.Time      `json:"verified_at,omitempty"`
}

type DoctorResponse struct {
	ID              uuid.UUID       `json:"id"`
	Email           string          `json:"email"`
	FullName        string          `json:"full_name"`
	Specialization  string          `json:"specialization"`
	Qualification   string          `json:"qualification,omitempty"`
	ExperienceYears int             `json:"experience_years"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	HospitalName    string          `json:"hospital_name,omitempty"`
	HospitalAddress string          `json:"hospital_address,omitempty"`
	About           string          `json:"about,omitempty"`
	Verified        bool            `json:"verified"`
	VerifiedAt      *time.Time      `json:"verified_at,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
