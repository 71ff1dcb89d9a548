package repository

import (
	"time"

	"medibook-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	// FindAll returns doctor profiles with their user preloaded. When
	// onlyVerified is set, unverified doctors are excluded at the query.
	FindAll(db *gorm.DB, onlyVerified bool) ([]entity.DoctorProfile, error)
	FindPending(db *gorm.DB) ([]entity.DoctorProfile, error)
	Update(db *gorm.DB, profile *entity.DoctorProfile) error
	// Verify flips the verified flag for an unverified doctor. Returns
	// affected rows: 0 means the doctor was already verified.
	Verify(db *gorm.DB, userID uuid.UUID, at time.Time) (int64, error)
	CountByVerified(db *gorm.DB, verified bool) (int64, error)
	Count(db *gorm.DB) (int64, error)
}
