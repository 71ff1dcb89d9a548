package converter

import (
	"medibook-api/internal/delivery/dto"
	"medibook-api/internal/domain/entity"
)

// DoctorToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.DoctorProfile) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              doctor.UserID,
		Email:           doctor.User.Email,
		FullName:        doctor.User.FullName,
		Specialization:  doctor.Specialization,
		Qualification:   doctor.Qualification,
		ExperienceYears: doctor.ExperienceYears,
		ConsultationFee: doctor.ConsultationFee,
		HospitalName:    doctor.HospitalName,
		HospitalAddress: doctor.HospitalAddress,
		About:           doctor.About,
		Verified:        doctor.Verified,
		VerifiedAt:      doctor.VerifiedAt,
	}
}

// DoctorsToResponses converts a slice of DoctorProfile entities to DTOs
func DoctorsToResponses(doctors []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		resp := DoctorToResponse(&doctor)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// DoctorProfileToResponse converts profile fields only, for embedding in a
// user response
func DoctorProfileToResponse(doctor *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorProfileResponse{
		LicenseNumber:   doctor.LicenseNumber,
		Specialization:  doctor.Specialization,
		Qualification:   doctor.Qualification,
		ExperienceYears: doctor.ExperienceYears,
		ConsultationFee: doctor.ConsultationFee,
		HospitalName:    doctor.HospitalName,
		HospitalAddress: doctor.HospitalAddress,
		About:           doctor.About,
		Verified:        doctor.Verified,
		VerifiedAt:      doctor.VerifiedAt,
	}
}
