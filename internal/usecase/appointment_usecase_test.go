package usecase

import (
	"context"
	"testing"
	"time"

	"medibook-api/internal/delivery/dto"
	"medibook-api/internal/domain/entity"
	"medibook-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	usecase         AppointmentUsecase
	appointmentRepo *MockAppointmentRepository
	doctorRepo      *MockDoctorProfileRepository
	slotHold        *MockSlotHoldService
	audit           *MockAuditService
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	appointmentRepo := new(MockAppointmentRepository)
	doctorRepo := new(MockDoctorProfileRepository)
	slotHold := new(MockSlotHoldService)
	audit := new(MockAuditService)

	return &appointmentFixture{
		usecase:         NewAppointmentUsecase(newTestDB(t), newTestLogger(), appointmentRepo, doctorRepo, slotHold, audit),
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		slotHold:        slotHold,
		audit:           audit,
	}
}

func patientSession() *entity.Session {
	return &entity.Session{UserID: uuid.New(), RoleID: entity.RoleIDPatient}
}

func doctorSession(userID uuid.UUID) *entity.Session {
	return &entity.Session{UserID: userID, RoleID: entity.RoleIDDoctor}
}

func adminSession() *entity.Session {
	return &entity.Session{UserID: uuid.New(), RoleID: entity.RoleIDAdmin}
}

func verifiedDoctor(userID uuid.UUID) *entity.DoctorProfile {
	active := true
	return &entity.DoctorProfile{
		UserID:          userID,
		Specialization:  "Cardiology",
		ConsultationFee: decimal.RequireFromString("500.00"),
		Verified:        true,
		User:            entity.User{ID: userID, IsActive: &active},
	}
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	session := patientSession()
	doctorID := uuid.New()
	req := &dto.BookAppointmentRequest{
		DoctorID: doctorID,
		Date:     futureDate(),
		TimeSlot: "10:00",
		Reason:   "Chest pain",
	}

	f.doctorRepo.On("FindByUserID", mock.Anything, doctorID).Return(verifiedDoctor(doctorID), nil)
	f.appointmentRepo.On("FindActiveByPatientSlot", mock.Anything, session.UserID, doctorID, mock.Anything, "10:00").Return(nil, nil)
	f.slotHold.On("Acquire", mock.Anything, doctorID, mock.Anything, "10:00").Return(nil)
	f.appointmentRepo.On("FindActiveBySlot", mock.Anything, doctorID, mock.Anything, "10:00").Return(nil, nil)
	f.appointmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Appointment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Appointment).ID = uuid.New()
		}).Return(nil)
	f.audit.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionAppointmentBook, "appointment", mock.Anything, mock.Anything).Return(nil)
	f.appointmentRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	resp, err := f.usecase.Book(context.Background(), session, req)

	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusPending), resp.Status)
	assert.Equal(t, session.UserID, resp.PatientID)
	assert.Equal(t, doctorID, resp.DoctorID)
	// Fee is snapshotted from the doctor's profile at booking time
	assert.True(t, resp.Fee.Equal(decimal.RequireFromString("500.00")))
	f.appointmentRepo.AssertExpectations(t)
	f.slotHold.AssertExpectations(t)
}

func TestBookRejectsInvalidTimeSlot(t *testing.T) {
	f := newAppointmentFixture(t)

	for _, slot := range []string{"13:00", "09:15", "8:00", ""} {
		_, err := f.usecase.Book(context.Background(), patientSession(), &dto.BookAppointmentRequest{
			DoctorID: uuid.New(),
			Date:     futureDate(),
			TimeSlot: slot,
		})
		assert.ErrorIs(t, err, ErrInvalidTimeSlot, "slot %q", slot)
	}
}

func TestBookRejectsPastDate(t *testing.T) {
	f := newAppointmentFixture(t)

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := f.usecase.Book(context.Background(), patientSession(), &dto.BookAppointmentRequest{
		DoctorID: uuid.New(),
		Date:     yesterday,
		TimeSlot: "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.usecase.Book(context.Background(), patientSession(), &dto.BookAppointmentRequest{
		DoctorID: uuid.New(),
		Date:     "not-a-date",
		TimeSlot: "10:00",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBookRejectsUnknownDoctor(t *testing.T) {
	f := newAppointmentFixture(t)
	doctorID := uuid.New()

	f.doctorRepo.On("FindByUserID", mock.Anything, doctorID).Return(nil, nil)

	_, err := f.usecase.Book(context.Background(), patientSession(), &dto.BookAppointmentRequest{
		DoctorID: doctorID,
		Date:     futureDate(),
		TimeSlot: "10:00",
	})
	assert.ErrorIs(t, err, ErrUnknownDoctor)
}

func TestBookRejectsUnverifiedDoctor(t *testing.T) {
	f := newAppointmentFixture(t)
	doctorID := uuid.New()
	doctor := verifiedDoctor(doctorID)
	doctor.Verified = false

	f.doctorRepo.On("FindByUserID", mock.Anything, doctorID).Return(doctor, nil)

	_, err := f.usecase.Book(context.Background(), patientSession(), &dto.BookAppointmentRequest{
		DoctorID: doctorID,
		Date:     futureDate(),
		TimeSlot: "10:00",
	})
	assert.ErrorIs(t, err, ErrDoctorNotVerified)
}

func TestBookSlotConflictWhenHoldTaken(t *testing.T) {
	f := newAppointmentFixture(t)
	session := patientSession()
	doctorID := uuid.New()

	f.doctorRepo.On("FindByUserID", mock.Anything, doctorID).Return(verifiedDoctor(doctorID), nil)
	f.appointmentRepo.On("FindActiveByPatientSlot", mock.Anything, session.UserID, doctorID, mock.Anything, "10:00").Return(nil, nil)
	f.slotHold.On("Acquire", mock.Anything, doctorID, mock.Anything, "10:00").Return(service.ErrSlotHeld)

	_, err := f.usecase.Book(context.Background(), session, &dto.BookAppointmentRequest{
		DoctorID: doctorID,
		Date:     futureDate(),
		TimeSlot: "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	f.appointmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookSlotConflictWhenSlotOccupied(t *testing.T) {
	f := newAppointmentFixture(t)
	session := patientSession()
	doctorID := uuid.New()
	occupant := &entity.Appointment{ID: uuid.New(), Status: entity.AppointmentStatusConfirmed}

	f.doctorRepo.On("FindByUserID", mock.Anything, doctorID).Return(verifiedDoctor(doctorID), nil)
	f.appointmentRepo.On("FindActiveByPatientSlot", mock.Anything, session.UserID, doctorID, mock.Anything, "10:00").Return(nil, nil)
	f.slotHold.On("Acquire", mock.Anything, doctorID, mock.Anything, "10:00").Return(nil)
	f.appointmentRepo.On("FindActiveBySlot", mock.Anything, doctorID, mock.Anything, "10:00").Return(occupant, nil)

	_, err := f.usecase.Book(context.Background(), session, &dto.BookAppointmentRequest{
		DoctorID: doctorID,
		Date:     futureDate(),
		TimeSlot: "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	f.appointmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookRetryReturnsExistingBooking(t *testing.T) {
	f := newAppointmentFixture(t)
	session := patientSession()
	doctorID := uuid.New()
	existing := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: session.UserID,
		DoctorID:  doctorID,
		TimeSlot:  "10:00",
		Status:    entity.AppointmentStatusPending,
	}

	f.doctorRepo.On("FindByUserID", mock.Anything, doctorID).Return(verifiedDoctor(doctorID), nil)
	f.appointmentRepo.On("FindActiveByPatientSlot", mock.Anything, session.UserID, doctorID, mock.Anything, "10:00").Return(existing, nil)

	resp, err := f.usecase.Book(context.Background(), session, &dto.BookAppointmentRequest{
		DoctorID: doctorID,
		Date:     futureDate(),
		TimeSlot: "10:00",
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, resp.ID)
	f.slotHold.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.appointmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestConfirmByOwningDoctor(t *testing.T) {
	f := newAppointmentFixture(t)
	doctorID := uuid.New()
	appointment := &entity.Appointment{
		ID:       uuid.New(),
		DoctorID: doctorID,
		Status:   entity.AppointmentStatusPending,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	f.appointmentRepo.On("UpdateStatus", mock.Anything, appointment.ID, entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed).Return(int64(1), nil)
	f.audit.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionAppointmentConfirm, "appointment", appointment.ID.String(), mock.Anything, mock.Anything).Return(nil)

	_, err := f.usecase.Confirm(context.Background(), doctorSession(doctorID), appointment.ID)

	require.NoError(t, err)
	f.appointmentRepo.AssertExpectations(t)
}

func TestConfirmByAdmin(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := &entity.Appointment{
		ID:       uuid.New(),
		DoctorID: uuid.New(),
		Status:   entity.AppointmentStatusPending,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	f.appointmentRepo.On("UpdateStatus", mock.Anything, appointment.ID, entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed).Return(int64(1), nil)
	f.audit.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionAppointmentConfirm, "appointment", appointment.ID.String(), mock.Anything, mock.Anything).Return(nil)

	_, err := f.usecase.Confirm(context.Background(), adminSession(), appointment.ID)

	require.NoError(t, err)
	f.appointmentRepo.AssertExpectations(t)
}

func TestConfirmByOtherDoctorRejected(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := &entity.Appointment{
		ID:       uuid.New(),
		DoctorID: uuid.New(),
		Status:   entity.AppointmentStatusPending,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := f.usecase.Confirm(context.Background(), doctorSession(uuid.New()), appointment.ID)
	assert.ErrorIs(t, err, ErrNotAppointmentActor)
	f.appointmentRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmTwiceRejected(t *testing.T) {
	f := newAppointmentFixture(t)
	doctorID := uuid.New()
	appointment := &entity.Appointment{
		ID:       uuid.New(),
		DoctorID: doctorID,
		Status:   entity.AppointmentStatusConfirmed,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := f.usecase.Confirm(context.Background(), doctorSession(doctorID), appointment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirmLostRaceRejected(t *testing.T) {
	f := newAppointmentFixture(t)
	doctorID := uuid.New()
	appointment := &entity.Appointment{
		ID:       uuid.New(),
		DoctorID: doctorID,
		Status:   entity.AppointmentStatusPending,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	// Another session moved the row first; zero affected rows
	f.appointmentRepo.On("UpdateStatus", mock.Anything, appointment.ID, entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed).Return(int64(0), nil)

	_, err := f.usecase.Confirm(context.Background(), doctorSession(doctorID), appointment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelByOwningPatientReleasesHold(t *testing.T) {
	f := newAppointmentFixture(t)
	session := patientSession()
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: session.UserID,
		DoctorID:  uuid.New(),
		TimeSlot:  "10:00",
		Status:    entity.AppointmentStatusConfirmed,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	f.appointmentRepo.On("UpdateStatus", mock.Anything, appointment.ID, entity.AppointmentStatusConfirmed, entity.AppointmentStatusCancelled).Return(int64(1), nil)
	f.audit.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(), mock.Anything, mock.Anything).Return(nil)
	f.slotHold.On("Release", mock.Anything, appointment.DoctorID, appointment.Date, "10:00").Return(nil)

	_, err := f.usecase.Cancel(context.Background(), session, appointment.ID)

	require.NoError(t, err)
	f.slotHold.AssertExpectations(t)
}

func TestCancelByUnrelatedPatientRejected(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Status:    entity.AppointmentStatusPending,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := f.usecase.Cancel(context.Background(), patientSession(), appointment.ID)
	assert.ErrorIs(t, err, ErrNotAppointmentActor)
}

func TestCancelCompletedRejected(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		Status:    entity.AppointmentStatusCompleted,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := f.usecase.Cancel(context.Background(), adminSession(), appointment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCompleteRequiresPrescription(t *testing.T) {
	f := newAppointmentFixture(t)
	doctorID := uuid.New()
	appointment := &entity.Appointment{
		ID:       uuid.New(),
		DoctorID: doctorID,
		Status:   entity.AppointmentStatusConfirmed,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := f.usecase.Complete(context.Background(), doctorSession(doctorID), appointment.ID, &dto.CompleteAppointmentRequest{})
	assert.ErrorIs(t, err, ErrMissingPrescription)
	f.appointmentRepo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteStoresPrescription(t *testing.T) {
	f := newAppointmentFixture(t)
	doctorID := uuid.New()
	appointment := &entity.Appointment{
		ID:       uuid.New(),
		DoctorID: doctorID,
		TimeSlot: "10:00",
		Status:   entity.AppointmentStatusConfirmed,
	}
	req := &dto.CompleteAppointmentRequest{
		Prescription: dto.PrescriptionRequest{
			Diagnosis: "Hypertension",
			Medicines: "Amlodipine 5mg",
		},
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	f.appointmentRepo.On("Complete", mock.Anything, appointment.ID, mock.MatchedBy(func(p *entity.Prescription) bool {
		return p.AppointmentID == appointment.ID && p.Diagnosis == "Hypertension"
	})).Return(int64(1), nil)
	f.audit.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionAppointmentComplete, "appointment", appointment.ID.String(), mock.Anything, mock.Anything).Return(nil)
	f.slotHold.On("Release", mock.Anything, doctorID, appointment.Date, "10:00").Return(nil)

	_, err := f.usecase.Complete(context.Background(), doctorSession(doctorID), appointment.ID, req)

	require.NoError(t, err)
	f.appointmentRepo.AssertExpectations(t)
}

func TestCompleteByAdminRejected(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := &entity.Appointment{
		ID:       uuid.New(),
		DoctorID: uuid.New(),
		Status:   entity.AppointmentStatusConfirmed,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	// Completing records clinical facts; only the appointed doctor may do it
	_, err := f.usecase.Complete(context.Background(), adminSession(), appointment.ID, &dto.CompleteAppointmentRequest{
		Prescription: dto.PrescriptionRequest{Diagnosis: "x", Medicines: "y"},
	})
	assert.ErrorIs(t, err, ErrNotAppointmentActor)
}

func TestCompletePendingRejected(t *testing.T) {
	f := newAppointmentFixture(t)
	doctorID := uuid.New()
	appointment := &entity.Appointment{
		ID:       uuid.New(),
		DoctorID: doctorID,
		Status:   entity.AppointmentStatusPending,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := f.usecase.Complete(context.Background(), doctorSession(doctorID), appointment.ID, &dto.CompleteAppointmentRequest{
		Prescription: dto.PrescriptionRequest{Diagnosis: "x", Medicines: "y"},
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdatePrescriptionOnlyAfterCompletion(t *testing.T) {
	f := newAppointmentFixture(t)
	doctorID := uuid.New()
	appointment := &entity.Appointment{
		ID:       uuid.New(),
		DoctorID: doctorID,
		Status:   entity.AppointmentStatusConfirmed,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := f.usecase.UpdatePrescription(context.Background(), doctorSession(doctorID), appointment.ID, &dto.PrescriptionRequest{
		Diagnosis: "Revised", Medicines: "Updated",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetVisibilityRules(t *testing.T) {
	f := newAppointmentFixture(t)
	patientID := uuid.New()
	doctorID := uuid.New()
	appointment := &entity.Appointment{
		ID:        uuid.New(),
		PatientID: patientID,
		DoctorID:  doctorID,
		Status:    entity.AppointmentStatusPending,
	}

	f.appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	_, err := f.usecase.Get(context.Background(), &entity.Session{UserID: patientID, RoleID: entity.RoleIDPatient}, appointment.ID)
	assert.NoError(t, err)

	_, err = f.usecase.Get(context.Background(), doctorSession(doctorID), appointment.ID)
	assert.NoError(t, err)

	_, err = f.usecase.Get(context.Background(), adminSession(), appointment.ID)
	assert.NoError(t, err)

	_, err = f.usecase.Get(context.Background(), patientSession(), appointment.ID)
	assert.ErrorIs(t, err, ErrNotAppointmentActor)
}

func TestGetUnknownAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	id := uuid.New()

	f.appointmentRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := f.usecase.Get(context.Background(), adminSession(), id)
	assert.ErrorIs(t, err, ErrUnknownAppointment)
}

// Lifecycle walk: book, confirm, complete, then verify the terminal state
// rejects further edges. FindByID expectations are declared Once, in call
// order, so each step sees the state the previous step produced.
func TestAppointmentLifecycle(t *testing.T) {
	f := newAppointmentFixture(t)
	session := patientSession()
	doctorID := uuid.New()
	appointmentID := uuid.New()

	snapshot := func(status entity.AppointmentStatus) *entity.Appointment {
		return &entity.Appointment{
			ID:        appointmentID,
			PatientID: session.UserID,
			DoctorID:  doctorID,
			TimeSlot:  "14:00",
			Status:    status,
		}
	}

	f.doctorRepo.On("FindByUserID", mock.Anything, doctorID).Return(verifiedDoctor(doctorID), nil)
	f.appointmentRepo.On("FindActiveByPatientSlot", mock.Anything, session.UserID, doctorID, mock.Anything, "14:00").Return(nil, nil)
	f.slotHold.On("Acquire", mock.Anything, doctorID, mock.Anything, "14:00").Return(nil)
	f.slotHold.On("Release", mock.Anything, doctorID, mock.Anything, "14:00").Return(nil)
	f.appointmentRepo.On("FindActiveBySlot", mock.Anything, doctorID, mock.Anything, "14:00").Return(nil, nil)
	f.appointmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Appointment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Appointment).ID = appointmentID
		}).Return(nil)
	f.appointmentRepo.On("UpdateStatus", mock.Anything, appointmentID, entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed).Return(int64(1), nil)
	f.appointmentRepo.On("Complete", mock.Anything, appointmentID, mock.Anything).Return(int64(1), nil)
	f.audit.On("LogCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.audit.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	// book reload, confirm lookup, confirm reload, complete lookup,
	// complete reload, then two lookups against the terminal row
	f.appointmentRepo.On("FindByID", mock.Anything, appointmentID).Return(snapshot(entity.AppointmentStatusPending), nil).Twice()
	f.appointmentRepo.On("FindByID", mock.Anything, appointmentID).Return(snapshot(entity.AppointmentStatusConfirmed), nil).Twice()
	f.appointmentRepo.On("FindByID", mock.Anything, appointmentID).Return(snapshot(entity.AppointmentStatusCompleted), nil)

	resp, err := f.usecase.Book(context.Background(), session, &dto.BookAppointmentRequest{
		DoctorID: doctorID,
		Date:     futureDate(),
		TimeSlot: "14:00",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusPending), resp.Status)

	resp, err = f.usecase.Confirm(context.Background(), doctorSession(doctorID), appointmentID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusConfirmed), resp.Status)

	resp, err = f.usecase.Complete(context.Background(), doctorSession(doctorID), appointmentID, &dto.CompleteAppointmentRequest{
		Prescription: dto.PrescriptionRequest{Diagnosis: "Hypertension", Medicines: "Amlodipine 5mg"},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), resp.Status)

	// Terminal: neither confirm nor cancel may leave completed
	_, err = f.usecase.Confirm(context.Background(), doctorSession(doctorID), appointmentID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.usecase.Cancel(context.Background(), doctorSession(doctorID), appointmentID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
