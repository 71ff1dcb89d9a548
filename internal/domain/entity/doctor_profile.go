package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data.
// Verified is set only through the admin verify flow; an unverified doctor
// may log in but is not bookable by patients.
type DoctorProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Qualification   string          `gorm:"type:varchar(255)" json:"qualification,omitempty"`
	ExperienceYears int             `gorm:"not null;default:0" json:"experience_years"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"consultation_fee"`
	HospitalName    string          `gorm:"type:varchar(255)" json:"hospital_name,omitempty"`
	HospitalAddress string          `gorm:"type:varchar(500)" json:"hospital_address,omitempty"`
	About           string          `gorm:"type:text" json:"about,omitempty"`
	Verified        bool            `gorm:"not null;default:false;index" json:"verified"`
	VerifiedAt      *time.Time      `gorm:"type:timestamptz" json:"verified_at,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// IsBookable reports whether patients may book this doctor
func (d *DoctorProfile) IsBookable() bool {
	return d.Verified && d.User.IsActive != nil && *d.User.IsActive
}
