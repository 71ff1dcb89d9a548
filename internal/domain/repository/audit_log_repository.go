package repository

import (
	"medibook-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, auditLog *entity.AuditLog) error
	FindRecent(db *gorm.DB, limit, offset int) ([]entity.AuditLog, int64, error)
}
