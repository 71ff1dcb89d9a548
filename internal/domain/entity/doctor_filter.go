package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DoctorFilter is a domain-level filter for doctor discovery. An unset field
// matches everything; set fields compose by logical AND. Used by the
// directory usecase to avoid coupling with delivery DTOs.
type DoctorFilter struct {
	Specialization string           // exact match, case-insensitive
	NameQuery      string           // case-insensitive substring on the user's full name
	MinFee         *decimal.Decimal // inclusive
	MaxFee         *decimal.Decimal // inclusive
	MinExperience  *int             // inclusive
}

// Matches evaluates every set predicate against the doctor
func (f *DoctorFilter) Matches(doctor *DoctorProfile) bool {
	if f == nil {
		return true
	}
	if f.Specialization != "" && !strings.EqualFold(f.Specialization, doctor.Specialization) {
		return false
	}
	if f.NameQuery != "" && !strings.Contains(strings.ToLower(doctor.User.FullName), strings.ToLower(f.NameQuery)) {
		return false
	}
	if f.MinFee != nil && doctor.ConsultationFee.LessThan(*f.MinFee) {
		return false
	}
	if f.MaxFee != nil && doctor.ConsultationFee.GreaterThan(*f.MaxFee) {
		return false
	}
	if f.MinExperience != nil && doctor.ExperienceYears < *f.MinExperience {
		return false
	}
	return true
}
