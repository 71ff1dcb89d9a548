package repository

import (
	"errors"
	"time"

	"medibook-api/internal/domain/entity"
	domainRepo "medibook-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindAll(db *gorm.DB, onlyVerified bool) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	query := db.
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ?", true)

	if onlyVerified {
		query = query.Where("doctor_profiles.verified = ?", true)
	}

	err := query.
		Preload("User").
		Order("users.full_name ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) FindPending(db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.Preload("User").
		Where("verified = ?", false).
		Order("user_id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Update persists the profile together with the loaded User row, so
// full name edits land in the users table.
func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Session(&gorm.Session{FullSaveAssociations: true}).Save(profile).Error
}

// Verify atomically flips the verified flag ONLY while still unverified.
// Returns affected rows: 1 = verified now, 0 = was already verified.
func (r *doctorProfileRepository) Verify(db *gorm.DB, userID uuid.UUID, at time.Time) (int64, error) {
	result := db.Model(&entity.DoctorProfile{}).
		Where("user_id = ? AND verified = ?", userID, false).
		Updates(map[string]interface{}{"verified": true, "verified_at": at})
	return result.RowsAffected, result.Error
}

func (r *doctorProfileRepository) CountByVerified(db *gorm.DB, verified bool) (int64, error) {
	var count int64
	err := db.Model(&entity.DoctorProfile{}).Where("verified = ?", verified).Count(&count).Error
	return count, err
}

func (r *doctorProfileRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.DoctorProfile{}).Count(&count).Error
	return count, err
}
