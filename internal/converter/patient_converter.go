package converter

import (
	"medibook-api/internal/delivery/dto"
	"medibook-api/internal/domain/entity"
)

// PatientToResponse converts a PatientProfile entity to PatientResponse DTO
func PatientToResponse(patient *entity.PatientProfile) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:               patient.UserID,
		Email:            patient.User.Email,
		FullName:         patient.User.FullName,
		PhoneNumber:      patient.PhoneNumber,
		DateOfBirth:      patient.DateOfBirth.Format("2006-01-02"),
		Gender:           patient.Gender,
		BloodGroup:       patient.BloodGroup,
		Address:          patient.Address,
		EmergencyContact: patient.EmergencyContact,
		CreatedAt:        patient.User.CreatedAt,
		UpdatedAt:        patient.User.UpdatedAt,
	}
}

// PatientProfileToResponse converts profile fields only, for embedding in a
// user response
func PatientProfileToResponse(patient *entity.PatientProfile) *dto.PatientProfileResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientProfileResponse{
		PhoneNumber:      patient.PhoneNumber,
		DateOfBirth:      patient.DateOfBirth.Format("2006-01-02"),
		Gender:           patient.Gender,
		BloodGroup:       patient.BloodGroup,
		Address:          patient.Address,
		EmergencyContact: patient.EmergencyContact,
	}
}
