package usecase

import (
	"context"
	"testing"

	"medibook-api/internal/delivery/dto"
	"medibook-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type directoryFixture struct {
	usecase    DoctorDirectoryUsecase
	doctorRepo *MockDoctorProfileRepository
	audit      *MockAuditService
}

func newDirectoryFixture(t *testing.T) *directoryFixture {
	t.Helper()

	doctorRepo := new(MockDoctorProfileRepository)
	audit := new(MockAuditService)

	return &directoryFixture{
		usecase:    NewDoctorDirectoryUsecase(newTestDB(t), newTestLogger(), doctorRepo, audit),
		doctorRepo: doctorRepo,
		audit:      audit,
	}
}

func directoryDoctor(name, specialization, fee string, years int) entity.DoctorProfile {
	active := true
	id := uuid.New()
	return entity.DoctorProfile{
		UserID:          id,
		Specialization:  specialization,
		ConsultationFee: decimal.RequireFromString(fee),
		ExperienceYears: years,
		Verified:        true,
		User:            entity.User{ID: id, FullName: name, IsActive: &active},
	}
}

// The directory fixture used across the search tests.
func directoryDoctors() []entity.DoctorProfile {
	return []entity.DoctorProfile{
		directoryDoctor("Dr. Asha Rao", "Cardiology", "800.00", 15),
		directoryDoctor("Dr. Brian Patel", "Cardiology", "500.00", 8),
		directoryDoctor("Dr. Carla Mendes", "Dermatology", "350.00", 5),
		directoryDoctor("Dr. Dinesh Kumar", "Orthopedics", "600.00", 20),
		directoryDoctor("Dr. Elena Petrova", "Dermatology", "450.00", 12),
	}
}

func searchNames(resp *dto.DoctorListResponse) []string {
	names := make([]string, len(resp.Doctors))
	for i, d := range resp.Doctors {
		names[i] = d.FullName
	}
	return names
}

func TestSearchNoFilterReturnsAll(t *testing.T) {
	f := newDirectoryFixture(t)
	f.doctorRepo.On("FindAll", mock.Anything, true).Return(directoryDoctors(), nil)

	resp, err := f.usecase.Search(context.Background(), &dto.DoctorSearchQuery{})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.Total)
}

func TestSearchBySpecialization(t *testing.T) {
	f := newDirectoryFixture(t)
	f.doctorRepo.On("FindAll", mock.Anything, true).Return(directoryDoctors(), nil)

	resp, err := f.usecase.Search(context.Background(), &dto.DoctorSearchQuery{Specialization: "dermatology"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Dr. Carla Mendes", "Dr. Elena Petrova"}, searchNames(resp))
}

func TestSearchByName(t *testing.T) {
	f := newDirectoryFixture(t)
	f.doctorRepo.On("FindAll", mock.Anything, true).Return(directoryDoctors(), nil)

	resp, err := f.usecase.Search(context.Background(), &dto.DoctorSearchQuery{Search: "pEt"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Dr. Elena Petrova"}, searchNames(resp))
}

func TestSearchByFeeRange(t *testing.T) {
	f := newDirectoryFixture(t)
	f.doctorRepo.On("FindAll", mock.Anything, true).Return(directoryDoctors(), nil)

	resp, err := f.usecase.Search(context.Background(), &dto.DoctorSearchQuery{MinFee: "450", MaxFee: "600"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Dr. Brian Patel", "Dr. Dinesh Kumar", "Dr. Elena Petrova"}, searchNames(resp))
}

func TestSearchByMinExperience(t *testing.T) {
	f := newDirectoryFixture(t)
	f.doctorRepo.On("FindAll", mock.Anything, true).Return(directoryDoctors(), nil)

	resp, err := f.usecase.Search(context.Background(), &dto.DoctorSearchQuery{MinExperience: "12"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Dr. Asha Rao", "Dr. Dinesh Kumar", "Dr. Elena Petrova"}, searchNames(resp))
}

func TestSearchFiltersCompose(t *testing.T) {
	f := newDirectoryFixture(t)
	f.doctorRepo.On("FindAll", mock.Anything, true).Return(directoryDoctors(), nil)

	resp, err := f.usecase.Search(context.Background(), &dto.DoctorSearchQuery{
		Specialization: "Cardiology",
		MaxFee:         "600",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Dr. Brian Patel"}, searchNames(resp))
}

func TestSearchNoMatchesIsEmptyNotError(t *testing.T) {
	f := newDirectoryFixture(t)
	f.doctorRepo.On("FindAll", mock.Anything, true).Return(directoryDoctors(), nil)

	resp, err := f.usecase.Search(context.Background(), &dto.DoctorSearchQuery{Specialization: "Neurology"})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Doctors)
}

func TestSearchRejectsMalformedBounds(t *testing.T) {
	f := newDirectoryFixture(t)

	_, err := f.usecase.Search(context.Background(), &dto.DoctorSearchQuery{MinFee: "cheap"})
	assert.ErrorIs(t, err, ErrInvalidFee)

	_, err = f.usecase.Search(context.Background(), &dto.DoctorSearchQuery{MinExperience: "senior"})
	assert.ErrorIs(t, err, ErrInvalidExperience)

	f.doctorRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

func TestSearchAllIncludesUnverified(t *testing.T) {
	f := newDirectoryFixture(t)
	f.doctorRepo.On("FindAll", mock.Anything, false).Return(directoryDoctors(), nil)

	_, err := f.usecase.SearchAll(context.Background(), &dto.DoctorSearchQuery{})

	require.NoError(t, err)
	f.doctorRepo.AssertCalled(t, "FindAll", mock.Anything, false)
}

func TestVerifyMarksDoctor(t *testing.T) {
	f := newDirectoryFixture(t)
	admin := adminSession()
	doctor := directoryDoctor("Dr. New Hire", "Cardiology", "400.00", 3)
	doctor.Verified = false

	f.doctorRepo.On("FindByUserID", mock.Anything, doctor.UserID).Return(&doctor, nil)
	f.doctorRepo.On("Verify", mock.Anything, doctor.UserID, mock.Anything).Return(int64(1), nil)
	f.audit.On("LogUpdate", mock.Anything, mock.Anything, &admin.UserID, entity.AuditActionDoctorVerify, "doctor_profile", doctor.UserID.String(), false, true).Return(nil)

	_, err := f.usecase.Verify(context.Background(), admin, doctor.UserID)

	require.NoError(t, err)
	f.doctorRepo.AssertExpectations(t)
	f.audit.AssertExpectations(t)
}

func TestVerifyAlreadyVerifiedIsNoOp(t *testing.T) {
	f := newDirectoryFixture(t)
	doctor := directoryDoctor("Dr. Asha Rao", "Cardiology", "800.00", 15)

	f.doctorRepo.On("FindByUserID", mock.Anything, doctor.UserID).Return(&doctor, nil)
	f.doctorRepo.On("Verify", mock.Anything, doctor.UserID, mock.Anything).Return(int64(0), nil)

	_, err := f.usecase.Verify(context.Background(), adminSession(), doctor.UserID)

	require.NoError(t, err)
	f.audit.AssertNotCalled(t, "LogUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyUnknownDoctor(t *testing.T) {
	f := newDirectoryFixture(t)
	id := uuid.New()

	f.doctorRepo.On("FindByUserID", mock.Anything, id).Return(nil, nil)

	_, err := f.usecase.Verify(context.Background(), adminSession(), id)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestUpdateProfileCannotTouchVerifiedFlag(t *testing.T) {
	f := newDirectoryFixture(t)
	doctor := directoryDoctor("Dr. Asha Rao", "Cardiology", "800.00", 15)
	doctor.Verified = false
	session := doctorSession(doctor.UserID)

	f.doctorRepo.On("FindByUserID", mock.Anything, doctor.UserID).Return(&doctor, nil)
	f.doctorRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.DoctorProfile) bool {
		return !p.Verified
	})).Return(nil)
	f.audit.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionDoctorProfileUpdate, "doctor_profile", doctor.UserID.String(), mock.Anything, mock.Anything).Return(nil)

	newFee := "900.00"
	resp, err := f.usecase.UpdateProfile(context.Background(), session, &dto.UpdateDoctorProfileRequest{
		ConsultationFee: &newFee,
	})

	require.NoError(t, err)
	assert.False(t, resp.Verified)
	assert.True(t, resp.ConsultationFee.Equal(decimal.RequireFromString("900.00")))
}

func TestUpdateProfileRejectsNegativeFee(t *testing.T) {
	f := newDirectoryFixture(t)
	doctor := directoryDoctor("Dr. Asha Rao", "Cardiology", "800.00", 15)

	f.doctorRepo.On("FindByUserID", mock.Anything, doctor.UserID).Return(&doctor, nil)

	bad := "-10"
	_, err := f.usecase.UpdateProfile(context.Background(), doctorSession(doctor.UserID), &dto.UpdateDoctorProfileRequest{
		ConsultationFee: &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidFee)
	f.doctorRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
