package repository

import (
	"errors"
	"time"

	"medibook-api/internal/domain/entity"
	domainRepo "medibook-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.
		Preload("Doctor.User").
		Preload("Patient.User").
		Preload("Prescription").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Preload("Doctor.User").
		Preload("Prescription").
		Where("patient_id = ?", patientID).
		Order("date DESC, time_slot DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Preload("Patient.User").
		Preload("Prescription").
		Where("doctor_id = ?", doctorID).
		Order("date ASC, time_slot ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Preload("Doctor.User").
		Preload("Patient.User").
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveBySlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.
		Where("doctor_id = ? AND date = ? AND time_slot = ? AND status IN ?",
			doctorID, date, timeSlot,
			[]entity.AppointmentStatus{entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed}).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindActiveByPatientSlot(db *gorm.DB, patientID, doctorID uuid.UUID, date time.Time, timeSlot string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.
		Where("patient_id = ? AND doctor_id = ? AND date = ? AND time_slot = ? AND status IN ?",
			patientID, doctorID, date, timeSlot,
			[]entity.AppointmentStatus{entity.AppointmentStatusPending, entity.AppointmentStatusConfirmed}).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// UpdateStatus moves the appointment along one edge of the state machine
// ONLY while the row still holds the expected from status. Affected rows 0
// means a concurrent transition won; the caller reports InvalidTransition.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// Complete writes the terminal transition and the prescription as one unit;
// a failed prescription insert rolls the status back.
func (r *appointmentRepository) Complete(db *gorm.DB, id uuid.UUID, prescription *entity.Prescription) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Appointment{}).
			Where("id = ? AND status = ?", id, entity.AppointmentStatusConfirmed).
			Update("status", entity.AppointmentStatusCompleted)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "appointment_id"}},
			UpdateAll: true,
		}).Create(prescription).Error
	})
	return affected, err
}

func (r *appointmentRepository) SavePrescription(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "appointment_id"}},
		UpdateAll: true,
	}).Create(prescription).Error
}
