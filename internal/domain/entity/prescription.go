package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prescription is the detail object a doctor attaches when completing an
// appointment. Tied 1:1 to the appointment that produced it.
type Prescription struct {
	AppointmentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"appointment_id"`
	Diagnosis     string    `gorm:"type:varchar(500);not null" json:"diagnosis"`
	Medicines     string    `gorm:"type:text;not null" json:"medicines"`
	Instructions  string    `gorm:"type:text" json:"instructions,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// IsEmpty reports whether the prescription carries no usable content
func (p *Prescription) IsEmpty() bool {
	return strings.TrimSpace(p.Diagnosis) == "" && strings.TrimSpace(p.Medicines) == ""
}
