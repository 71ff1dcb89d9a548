package usecase

import (
	"context"
	"testing"
	"time"

	"medibook-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// newTestDB builds a *gorm.DB that never reaches a real database; every query
// goes through mocked repositories instead.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)
	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// MockAppointmentRepository is a mock implementation of AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(db, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(db, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(db, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(db, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	args := m.Called(db)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindActiveBySlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error) {
	args := m.Called(db, doctorID, date, timeSlot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindActiveByPatientSlot(db *gorm.DB, patientID, doctorID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error) {
	args := m.Called(db, patientID, doctorID, date, timeSlot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	args := m.Called(db, id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) Complete(db *gorm.DB, id uuid.UUID, prescription *entity.Prescription) (int64, error) {
	args := m.Called(db, id, prescription)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) SavePrescription(db *gorm.DB, prescription *entity.Prescription) error {
	args := m.Called(db, prescription)
	return args.Error(0)
}

// MockDoctorProfileRepository is a mock implementation of DoctorProfileRepository
type MockDoctorProfileRepository struct {
	mock.Mock
}

func (m *MockDoctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *MockDoctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	args := m.Called(db, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DoctorProfile), args.Error(1)
}

func (m *MockDoctorProfileRepository) FindAll(db *gorm.DB, onlyVerified bool) ([]entity.DoctorProfile, error) {
	args := m.Called(db, onlyVerified)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DoctorProfile), args.Error(1)
}

func (m *MockDoctorProfileRepository) FindPending(db *gorm.DB) ([]entity.DoctorProfile, error) {
	args := m.Called(db)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.DoctorProfile), args.Error(1)
}

func (m *MockDoctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *MockDoctorProfileRepository) Verify(db *gorm.DB, userID uuid.UUID, at time.Time) (int64, error) {
	args := m.Called(db, userID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDoctorProfileRepository) CountByVerified(db *gorm.DB, verified bool) (int64, error) {
	args := m.Called(db, verified)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDoctorProfileRepository) Count(db *gorm.DB) (int64, error) {
	args := m.Called(db)
	return args.Get(0).(int64), args.Error(1)
}

// MockPatientProfileRepository is a mock implementation of PatientProfileRepository
type MockPatientProfileRepository struct {
	mock.Mock
}

func (m *MockPatientProfileRepository) Create(db *gorm.DB, profile *entity.PatientProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

func (m *MockPatientProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	args := m.Called(db, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PatientProfile), args.Error(1)
}

func (m *MockPatientProfileRepository) Update(db *gorm.DB, profile *entity.PatientProfile) error {
	args := m.Called(db, profile)
	return args.Error(0)
}

// MockSlotHoldService is a mock implementation of service.SlotHoldService
type MockSlotHoldService struct {
	mock.Mock
}

func (m *MockSlotHoldService) Acquire(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string) error {
	args := m.Called(ctx, doctorID, date, timeSlot)
	return args.Error(0)
}

func (m *MockSlotHoldService) Release(ctx context.Context, doctorID uuid.UUID, date time.Time, timeSlot string) error {
	args := m.Called(ctx, doctorID, date, timeSlot)
	return args.Error(0)
}

// MockAuditService is a mock implementation of service.AuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) LogCreate(ctx context.Context, db *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	args := m.Called(ctx, db, userID, action, entityName, entityID, newValue)
	return args.Error(0)
}

func (m *MockAuditService) LogUpdate(ctx context.Context, db *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	args := m.Called(ctx, db, userID, action, entityName, entityID, oldValue, newValue)
	return args.Error(0)
}
