package usecase

import (
	"context"

	"medibook-api/internal/converter"
	"medibook-api/internal/delivery/dto"
	"medibook-api/internal/domain/entity"
	"medibook-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DashboardUsecase derives per-role summary counts from appointment state.
// Pure aggregation over the lifecycle, no side effects.
type DashboardUsecase interface {
	PatientSummary(ctx context.Context, session *entity.Session) (*dto.DashboardSummaryResponse, error)
	DoctorSummary(ctx context.Context, session *entity.Session) (*dto.DashboardSummaryResponse, error)
	AdminStats(ctx context.Context) (*dto.AdminStatsResponse, error)
}

type dashboardUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorProfileRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
	}
}

func (u *dashboardUsecase) PatientSummary(ctx context.Context, session *entity.Session) (*dto.DashboardSummaryResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), session.UserID)
	if err != nil {
		u.log.Warnf("Failed to load appointments for patient %s: %+v", session.UserID, err)
		return nil, err
	}

	summary := converter.SummaryToResponse(entity.SummarizeAppointments(appointments))
	return &summary, nil
}

func (u *dashboardUsecase) DoctorSummary(ctx context.Context, session *entity.Session) (*dto.DashboardSummaryResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), session.UserID)
	if err != nil {
		u.log.Warnf("Failed to load appointments for doctor %s: %+v", session.UserID, err)
		return nil, err
	}

	summary := converter.SummaryToResponse(entity.SummarizeAppointments(appointments))
	return &summary, nil
}

func (u *dashboardUsecase) AdminStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	db := u.db.WithContext(ctx)

	total, err := u.doctorRepo.Count(db)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}
	verified, err := u.doctorRepo.CountByVerified(db, true)
	if err != nil {
		u.log.Warnf("Failed to count verified doctors: %+v", err)
		return nil, err
	}
	pending, err := u.doctorRepo.CountByVerified(db, false)
	if err != nil {
		u.log.Warnf("Failed to count pending doctors: %+v", err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load all appointments: %+v", err)
		return nil, err
	}

	return &dto.AdminStatsResponse{
		TotalDoctors:    total,
		VerifiedDoctors: verified,
		PendingDoctors:  pending,
		Appointments:    converter.SummaryToResponse(entity.SummarizeAppointments(appointments)),
	}, nil
}
