package repository

import (
	"time"

	"medibook-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	// FindActiveBySlot returns the non-terminal appointment occupying the
	// (doctor, date, slot) triple, or nil when the slot is free.
	FindActiveBySlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error)
	// FindActiveByPatientSlot resolves idempotent booking retries: the
	// caller's own non-terminal appointment for the same triple, if any.
	FindActiveByPatientSlot(db *gorm.DB, patientID, doctorID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error)
	// UpdateStatus performs the transition atomically: the row is updated
	// only while still in the expected from status. Returns affected rows;
	// 0 means the appointment moved concurrently and the transition lost.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	// Complete transitions CONFIRMED to COMPLETED and stores the
	// prescription in one transaction.
	Complete(db *gorm.DB, id uuid.UUID, prescription *entity.Prescription) (int64, error)
	SavePrescription(db *gorm.DB, prescription *entity.Prescription) error
}
