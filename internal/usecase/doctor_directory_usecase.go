package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"medibook-api/internal/converter"
	"medibook-api/internal/delivery/dto"
	"medibook-api/internal/domain/entity"
	"medibook-api/internal/domain/repository"
	"medibook-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrInvalidFee        = errors.New("invalid fee value")
	ErrInvalidExperience = errors.New("invalid experience value")
)

// DoctorDirectoryUsecase governs who is visible and bookable. The filter
// predicates live on entity.DoctorFilter so the rule set stays a pure
// function of doctors and filter; the repository only narrows the candidate
// set (active accounts, verified-only for the public view).
type DoctorDirectoryUsecase interface {
	// Search is the patient-facing view: unverified doctors are excluded
	Search(ctx context.Context, query *dto.DoctorSearchQuery) (*dto.DoctorListResponse, error)
	// SearchAll is the admin view: unverified doctors are included
	SearchAll(ctx context.Context, query *dto.DoctorSearchQuery) (*dto.DoctorListResponse, error)
	Get(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error)
	ListPending(ctx context.Context) (*dto.DoctorListResponse, error)
	Verify(ctx context.Context, session *entity.Session, doctorUserID uuid.UUID) (*dto.DoctorResponse, error)
	GetOwnProfile(ctx context.Context, session *entity.Session) (*dto.DoctorResponse, error)
	UpdateProfile(ctx context.Context, session *entity.Session, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error)
}

type doctorDirectoryUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorProfileRepository
	auditService service.AuditService
}

func NewDoctorDirectoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) DoctorDirectoryUsecase {
	return &doctorDirectoryUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

func (u *doctorDirectoryUsecase) Search(ctx context.Context, query *dto.DoctorSearchQuery) (*dto.DoctorListResponse, error) {
	return u.search(ctx, query, true)
}

func (u *doctorDirectoryUsecase) SearchAll(ctx context.Context, query *dto.DoctorSearchQuery) (*dto.DoctorListResponse, error) {
	return u.search(ctx, query, false)
}

func (u *doctorDirectoryUsecase) search(ctx context.Context, query *dto.DoctorSearchQuery, onlyVerified bool) (*dto.DoctorListResponse, error) {
	filter, err := buildDoctorFilter(query)
	if err != nil {
		return nil, err
	}

	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), onlyVerified)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	matched := make([]entity.DoctorProfile, 0, len(doctors))
	for _, doctor := range doctors {
		if filter.Matches(&doctor) {
			matched = append(matched, doctor)
		}
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(matched),
		Total:   len(matched),
	}, nil
}

func (u *doctorDirectoryUsecase) Get(ctx context.Context, userID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", userID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorDirectoryUsecase) ListPending(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindPending(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find pending doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// Verify marks a doctor as verified. Verifying an already-verified doctor is
// a no-op, not an error.
func (u *doctorDirectoryUsecase) Verify(ctx context.Context, session *entity.Session, doctorUserID uuid.UUID) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByUserID(db, doctorUserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorUserID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	affected, err := u.doctorRepo.Verify(db, doctorUserID, time.Now().UTC())
	if err != nil {
		u.log.Warnf("Failed to verify doctor %s: %+v", doctorUserID, err)
		return nil, err
	}
	if affected > 0 {
		u.auditService.LogUpdate(ctx, db, &session.UserID, entity.AuditActionDoctorVerify,
			"doctor_profile", doctorUserID.String(), false, true)
		u.log.Infof("Doctor verified: %s by admin %s", doctorUserID, session.UserID)
	}

	doctor, err = u.doctorRepo.FindByUserID(db, doctorUserID)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorDirectoryUsecase) GetOwnProfile(ctx context.Context, session *entity.Session) (*dto.DoctorResponse, error) {
	return u.Get(ctx, session.UserID)
}

// UpdateProfile handles the doctor's self-service fields. The verified flag
// is not reachable from here.
func (u *doctorDirectoryUsecase) UpdateProfile(ctx context.Context, session *entity.Session, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByUserID(db, session.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", session.UserID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.FullName != "" {
		doctor.User.FullName = req.FullName
	}
	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}
	if req.Qualification != "" {
		doctor.Qualification = req.Qualification
	}
	if req.ExperienceYears != nil {
		doctor.ExperienceYears = *req.ExperienceYears
	}
	if req.ConsultationFee != nil {
		fee, err := decimal.NewFromString(*req.ConsultationFee)
		if err != nil || fee.IsNegative() {
			return nil, ErrInvalidFee
		}
		doctor.ConsultationFee = fee
	}
	if req.HospitalName != "" {
		doctor.HospitalName = req.HospitalName
	}
	if req.HospitalAddress != "" {
		doctor.HospitalAddress = req.HospitalAddress
	}
	if req.About != "" {
		doctor.About = req.About
	}

	if err := u.doctorRepo.Update(db, doctor); err != nil {
		u.log.Warnf("Failed to update doctor profile %s: %+v", session.UserID, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, db, &session.UserID, entity.AuditActionDoctorProfileUpdate,
		"doctor_profile", session.UserID.String(), nil, req)

	return converter.DoctorToResponse(doctor), nil
}

// buildDoctorFilter parses the query string fields into the domain filter
func buildDoctorFilter(query *dto.DoctorSearchQuery) (*entity.DoctorFilter, error) {
	filter := &entity.DoctorFilter{}
	if query == nil {
		return filter, nil
	}

	filter.Specialization = query.Specialization
	filter.NameQuery = query.Search

	if query.MinFee != "" {
		fee, err := decimal.NewFromString(query.MinFee)
		if err != nil {
			return nil, ErrInvalidFee
		}
		filter.MinFee = &fee
	}
	if query.MaxFee != "" {
		fee, err := decimal.NewFromString(query.MaxFee)
		if err != nil {
			return nil, ErrInvalidFee
		}
		filter.MaxFee = &fee
	}
	if query.MinExperience != "" {
		years, err := strconv.Atoi(query.MinExperience)
		if err != nil || years < 0 {
			return nil, ErrInvalidExperience
		}
		filter.MinExperience = &years
	}

	return filter, nil
}
