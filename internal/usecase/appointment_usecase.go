package usecase

import (
	"context"
	"errors"
	"time"

	"medibook-api/internal/converter"
	"medibook-api/internal/delivery/dto"
	"medibook-api/internal/domain/entity"
	"medibook-api/internal/domain/repository"
	"medibook-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrUnknownAppointment  = errors.New("appointment not found")
	ErrUnknownDoctor       = errors.New("doctor not found")
	ErrDoctorNotVerified   = errors.New("doctor is not verified")
	ErrSlotConflict        = errors.New("slot is already booked")
	ErrInvalidDate         = errors.New("appointment date is in the past")
	ErrInvalidTimeSlot     = errors.New("time slot is not a valid half-hour slot")
	ErrInvalidTransition   = errors.New("appointment status does not allow this transition")
	ErrMissingPrescription = errors.New("prescription must not be empty")
	ErrNotAppointmentActor = errors.New("appointment does not belong to you")
)

// AppointmentUsecase owns the appointment lifecycle. Every mutation receives
// the caller's session explicitly and re-checks ownership here; route-level
// role gating alone is not trusted for per-row access.
type AppointmentUsecase interface {
	Book(ctx context.Context, session *entity.Session, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Confirm(ctx context.Context, session *entity.Session, id uuid.UUID) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, session *entity.Session, id uuid.UUID) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, session *entity.Session, id uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdatePrescription(ctx context.Context, session *entity.Session, id uuid.UUID, req *dto.PrescriptionRequest) (*dto.AppointmentResponse, error)
	Get(ctx context.Context, session *entity.Session, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListForPatient(ctx context.Context, session *entity.Session) (*dto.AppointmentListResponse, error)
	ListForDoctor(ctx context.Context, session *entity.Session) (*dto.AppointmentListResponse, error)
	ListAll(ctx context.Context) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorProfileRepository
	slotHold        service.SlotHoldService
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
	slotHold service.SlotHoldService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		slotHold:        slotHold,
		auditService:    auditService,
	}
}

// Book creates a new PENDING appointment for the calling patient.
//
// Flow:
// 1. Validate the time slot and the date (today or later)
// 2. Resolve the doctor; must exist, be active and verified
// 3. Idempotent retry: the caller's own live booking for this slot is
//    returned as-is instead of conflicting with itself
// 4. Acquire the Redis slot hold (atomic, serializes concurrent bookers)
// 5. Re-check the slot against the DB, snapshot the fee, insert
// 6. If the insert fails -> compensate: release the hold
func (u *appointmentUsecase) Book(ctx context.Context, session *entity.Session, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !entity.IsValidTimeSlot(req.TimeSlot) {
		return nil, ErrInvalidTimeSlot
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrInvalidDate
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByUserID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !(doctor.User.IsActive != nil && *doctor.User.IsActive) {
		return nil, ErrUnknownDoctor
	}
	if !doctor.Verified {
		return nil, ErrDoctorNotVerified
	}

	// A retry of an already-succeeded booking returns the existing row
	existing, err := u.appointmentRepo.FindActiveByPatientSlot(db, session.UserID, req.DoctorID, date, req.TimeSlot)
	if err != nil {
		u.log.Warnf("Failed to check existing booking: %+v", err)
		return nil, err
	}
	if existing != nil {
		return converter.AppointmentToResponse(existing), nil
	}

	// Critical section: concurrent bookers for the same slot are decided
	// here, before any row is written
	if err := u.slotHold.Acquire(ctx, req.DoctorID, date, req.TimeSlot); err != nil {
		if errors.Is(err, service.ErrSlotHeld) {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed slot hold for doctor %s %s %s: %+v", req.DoctorID, req.Date, req.TimeSlot, err)
		return nil, err
	}

	occupant, err := u.appointmentRepo.FindActiveBySlot(db, req.DoctorID, date, req.TimeSlot)
	if err != nil {
		u.log.Warnf("Failed to check slot occupancy: %+v", err)
		u.releaseHold(req.DoctorID, date, req.TimeSlot)
		return nil, err
	}
	if occupant != nil {
		// The slot is genuinely taken; the hold mirrors that occupancy
		// and is released when the occupant reaches a terminal state
		return nil, ErrSlotConflict
	}

	appointment := &entity.Appointment{
		PatientID: session.UserID,
		DoctorID:  req.DoctorID,
		Date:      date,
		TimeSlot:  req.TimeSlot,
		Reason:    req.Reason,
		Notes:     req.Notes,
		Fee:       doctor.ConsultationFee,
		Status:    entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(db, appointment); err != nil {
		u.log.Errorf("Failed to insert appointment, compensating slot hold: %+v", err)
		u.releaseHold(req.DoctorID, date, req.TimeSlot)
		if isDuplicateKeyError(err, "active_slot") {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	u.auditService.LogCreate(ctx, db, &session.UserID, entity.AuditActionAppointmentBook,
		"appointment", appointment.ID.String(), appointment)

	u.log.Infof("Appointment booked: id=%s, doctor=%s, date=%s, slot=%s", appointment.ID, req.DoctorID, req.Date, req.TimeSlot)

	full, err := u.appointmentRepo.FindByID(db, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// Confirm moves PENDING to CONFIRMED. Only the owning doctor or an admin
// may confirm.
func (u *appointmentUsecase) Confirm(ctx context.Context, session *entity.Session, id uuid.UUID) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.findAppointment(db, id)
	if err != nil {
		return nil, err
	}

	if !session.IsAdmin() && !(session.IsDoctor() && appointment.DoctorID == session.UserID) {
		return nil, ErrNotAppointmentActor
	}

	if err := u.transition(ctx, db, session, appointment, entity.AppointmentStatusConfirmed, entity.AuditActionAppointmentConfirm); err != nil {
		return nil, err
	}

	return u.reload(db, id)
}

// Cancel moves PENDING or CONFIRMED to CANCELLED. The owning patient, the
// owning doctor, and an admin may cancel; the slot becomes free again.
func (u *appointmentUsecase) Cancel(ctx context.Context, session *entity.Session, id uuid.UUID) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.findAppointment(db, id)
	if err != nil {
		return nil, err
	}

	owning := (session.IsPatient() && appointment.PatientID == session.UserID) ||
		(session.IsDoctor() && appointment.DoctorID == session.UserID)
	if !session.IsAdmin() && !owning {
		return nil, ErrNotAppointmentActor
	}

	if err := u.transition(ctx, db, session, appointment, entity.AppointmentStatusCancelled, entity.AuditActionAppointmentCancel); err != nil {
		return nil, err
	}

	u.releaseHold(appointment.DoctorID, appointment.Date, appointment.TimeSlot)

	return u.reload(db, id)
}

// Complete moves CONFIRMED to COMPLETED and attaches the prescription.
// Only the owning doctor may complete.
func (u *appointmentUsecase) Complete(ctx context.Context, session *entity.Session, id uuid.UUID, req *dto.CompleteAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.findAppointment(db, id)
	if err != nil {
		return nil, err
	}

	if !(session.IsDoctor() && appointment.DoctorID == session.UserID) {
		return nil, ErrNotAppointmentActor
	}

	if !appointment.Status.CanTransitionTo(entity.AppointmentStatusCompleted) {
		return nil, ErrInvalidTransition
	}

	prescription := &entity.Prescription{
		AppointmentID: appointment.ID,
		Diagnosis:     req.Prescription.Diagnosis,
		Medicines:     req.Prescription.Medicines,
		Instructions:  req.Prescription.Instructions,
	}
	if prescription.IsEmpty() {
		return nil, ErrMissingPrescription
	}

	affected, err := u.appointmentRepo.Complete(db, id, prescription)
	if err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", id, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}

	u.auditService.LogUpdate(ctx, db, &session.UserID, entity.AuditActionAppointmentComplete,
		"appointment", id.String(), string(appointment.Status), string(entity.AppointmentStatusCompleted))

	u.releaseHold(appointment.DoctorID, appointment.Date, appointment.TimeSlot)

	u.log.Infof("Appointment completed: id=%s, doctor=%s", id, session.UserID)
	return u.reload(db, id)
}

// UpdatePrescription lets the owning doctor revise the prescription of an
// already COMPLETED appointment. The appointment status itself stays frozen.
func (u *appointmentUsecase) UpdatePrescription(ctx context.Context, session *entity.Session, id uuid.UUID, req *dto.PrescriptionRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.findAppointment(db, id)
	if err != nil {
		return nil, err
	}

	if !(session.IsDoctor() && appointment.DoctorID == session.UserID) {
		return nil, ErrNotAppointmentActor
	}
	if appointment.Status != entity.AppointmentStatusCompleted {
		return nil, ErrInvalidTransition
	}

	prescription := &entity.Prescription{
		AppointmentID: appointment.ID,
		Diagnosis:     req.Diagnosis,
		Medicines:     req.Medicines,
		Instructions:  req.Instructions,
	}
	if prescription.IsEmpty() {
		return nil, ErrMissingPrescription
	}

	if err := u.appointmentRepo.SavePrescription(db, prescription); err != nil {
		u.log.Warnf("Failed to update prescription for appointment %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, db, &session.UserID, entity.AuditActionPrescriptionUpdate,
		"prescription", id.String(), appointment.Prescription, prescription)

	return u.reload(db, id)
}

// Get returns a single appointment, visible only to its patient, its doctor,
// or an admin.
func (u *appointmentUsecase) Get(ctx context.Context, session *entity.Session, id uuid.UUID) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.findAppointment(db, id)
	if err != nil {
		return nil, err
	}

	owning := appointment.PatientID == session.UserID || appointment.DoctorID == session.UserID
	if !session.IsAdmin() && !owning {
		return nil, ErrNotAppointmentActor
	}

	return converter.AppointmentToResponse(appointment), nil
}

// ListForPatient returns all appointments of the calling patient
func (u *appointmentUsecase) ListForPatient(ctx context.Context, session *entity.Session) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), session.UserID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", session.UserID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// ListForDoctor returns all appointments of the calling doctor
func (u *appointmentUsecase) ListForDoctor(ctx context.Context, session *entity.Session) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), session.UserID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", session.UserID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// ListAll returns every appointment; routing restricts this to admins
func (u *appointmentUsecase) ListAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) findAppointment(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrUnknownAppointment
	}
	return appointment, nil
}

// transition applies one edge of the state machine. The table decides
// legality; the conditional update decides races.
func (u *appointmentUsecase) transition(ctx context.Context, db *gorm.DB, session *entity.Session, appointment *entity.Appointment, to entity.AppointmentStatus, action string) error {
	from := appointment.Status
	if !from.CanTransitionTo(to) {
		return ErrInvalidTransition
	}

	affected, err := u.appointmentRepo.UpdateStatus(db, appointment.ID, from, to)
	if err != nil {
		u.log.Warnf("Failed to transition appointment %s from %s to %s: %+v", appointment.ID, from, to, err)
		return err
	}
	if affected == 0 {
		return ErrInvalidTransition
	}

	u.auditService.LogUpdate(ctx, db, &session.UserID, action,
		"appointment", appointment.ID.String(), string(from), string(to))

	u.log.Infof("Appointment %s: %s -> %s by %s", appointment.ID, from, to, session.UserID)
	return nil
}

func (u *appointmentUsecase) reload(db *gorm.DB, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", id, err)
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

// releaseHold frees the Redis slot hold with its own timeout; failures are
// non-fatal since the hold TTL bounds the damage.
func (u *appointmentUsecase) releaseHold(doctorID uuid.UUID, date time.Time, timeSlot string) {
	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.slotHold.Release(releaseCtx, doctorID, date, timeSlot); err != nil {
		u.log.Warnf("Failed to release slot hold for doctor %s (non-fatal): %+v", doctorID, err)
	}
}
