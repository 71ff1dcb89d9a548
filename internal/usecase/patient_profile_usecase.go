package usecase

import (
	"context"
	"errors"

	"medibook-api/internal/converter"
	"medibook-api/internal/delivery/dto"
	"medibook-api/internal/domain/entity"
	"medibook-api/internal/domain/repository"
	"medibook-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient profile not found")

type PatientProfileUsecase interface {
	GetOwnProfile(ctx context.Context, session *entity.Session) (*dto.PatientResponse, error)
	UpdateProfile(ctx context.Context, session *entity.Session, req *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error)
}

type patientProfileUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientProfileRepository
	auditService service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientProfileUsecase) GetOwnProfile(ctx context.Context, session *entity.Session) (*dto.PatientResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByUserID(db, session.UserID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", session.UserID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientProfileUsecase) UpdateProfile(ctx context.Context, session *entity.Session, req *dto.UpdatePatientProfileRequest) (*dto.PatientResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByUserID(db, session.UserID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", session.UserID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.FullName != "" {
		patient.User.FullName = req.FullName
	}
	if req.PhoneNumber != "" {
		patient.PhoneNumber = req.PhoneNumber
	}
	if req.BloodGroup != "" {
		patient.BloodGroup = req.BloodGroup
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.EmergencyContact != "" {
		patient.EmergencyContact = req.EmergencyContact
	}

	if err := u.patientRepo.Update(db, patient); err != nil {
		u.log.Warnf("Failed to update patient profile %s: %+v", session.UserID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, db, &session.UserID, entity.AuditActionPatientProfileUpdate,
		"patient_profile", session.UserID.String(), nil, req)

	return converter.PatientToResponse(patient), nil
}
